package gsat

import "errors"

// Error describes a failure of the command Cmd on the device Dev.
type Error struct {
	Dev string
	Cmd string
	Err error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Cmd == "" {
		return e.Dev + ": " + e.Err.Error()
	}
	return e.Dev + ": " + e.Cmd + ": " + e.Err.Error()
}

// Timeout reports whether the error was caused by an unanswered command.
func (e *Error) Timeout() bool {
	return errors.Is(e.Err, ErrTimeout)
}

type timeoutError struct{}

func (e *timeoutError) Error() string { return "timeout" }
func (e *timeoutError) Timeout() bool { return true }

// Errors that may be returned in the Error.Err field.
var (
	ErrTimeout      = &timeoutError{}
	ErrRejected     = errors.New("unknown command")
	ErrModule       = errors.New("module error")
	ErrRetries      = errors.New("retries exhausted")
	ErrLineOverflow = errors.New("response line overflow")
	ErrNoPeer       = errors.New("no UDP peer")
)
