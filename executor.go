package gsat

import (
	"fmt"
	"strconv"
)

// Phase is the phase of the command exchange.
type Phase uint8

const (
	Idle             Phase = iota // nothing submitted since power on
	Bootstrapping                 // a bootstrap command is outstanding
	AwaitingResponse              // the user command is outstanding
	Succeeded                     // the module answered OK
	Failed                        // rejected or out of retries
)

var phaseNames = [...]string{
	Idle:             "Idle",
	Bootstrapping:    "Bootstrapping",
	AwaitingResponse: "AwaitingResponse",
	Succeeded:        "Succeeded",
	Failed:           "Failed",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Phase(" + strconv.Itoa(int(p)) + ")"
}

// State describes the outstanding command. Step is the remaining bootstrap
// step count (3, 2, 1) in the Bootstrapping phase. Retries is the number of
// retransmissions left for the outstanding command.
type State struct {
	Phase   Phase
	Step    int
	Retries int
}

// Busy reports whether s has a command outstanding.
func (s State) Busy() bool {
	return s.Phase == Bootstrapping || s.Phase == AwaitingResponse
}

func (s State) String() string {
	switch s.Phase {
	case Bootstrapping:
		return fmt.Sprintf("Bootstrapping(%d, retries=%d)", s.Step, s.Retries)
	case AwaitingResponse:
		return fmt.Sprintf("AwaitingResponse(retries=%d)", s.Retries)
	}
	return s.Phase.String()
}

// Submit sends the command k with the optional parameter to the module. Any
// outstanding command is abandoned. If the bootstrap sequence has not
// completed yet it is sent first and k follows it. An unknown k fails
// immediately and nothing is sent.
func (d *Device) Submit(k Kind, param ...string) {
	d.kind = k
	d.param = ""
	if len(param) != 0 {
		d.param = param[0]
	}
	d.err = nil
	d.cause = nil
	d.errSeen = false
	if !k.Valid() {
		d.state = State{Phase: Failed}
		d.countdown = 0
		d.err = &Error{d.name, k.String(), ErrRejected}
		d.metrics.incFailures()
		d.log.Warn("command rejected", "kind", int(k))
		return
	}
	d.retries = d.budget
	d.execute()
}

// execute (re)transmits the outstanding command. It is the only place that
// consumes the retry budget.
func (d *Device) execute() {
	if d.retries <= 0 {
		if d.boot == 0 {
			d.fail()
			return
		}
		d.log.Warn("bootstrap command skipped", "cmd", bootCommands[d.boot])
		d.boot--
		d.retries = d.budget
	}
	d.retries--
	d.errSeen = false
	d.countdown = d.timeout
	d.resetLine()
	d.data = d.data[:0]

	var line string
	if d.boot > 0 {
		line = bootCommands[d.boot]
		d.state = State{Bootstrapping, d.boot, d.retries}
	} else {
		line, _ = cmdLine(d.kind, d.param)
		if d.kind == Disassociate {
			d.connected = false
		}
		d.state = State{AwaitingResponse, 0, d.retries}
	}
	d.log.Debug("tx", "cmd", line, "retries", d.retries)
	d.metrics.incTx()
	d.txbuf = appendLine(d.txbuf[:0], line)
	d.write(line, d.txbuf)
}

// retry retransmits the outstanding command after cause.
func (d *Device) retry(cause error) {
	d.cause = cause
	d.metrics.incRetries()
	d.log.Debug("retry", "state", d.state, "cause", cause)
	d.execute()
}

func (d *Device) fail() {
	cmd := d.kind.String()
	d.state = State{Phase: Failed}
	d.countdown = 0
	if d.cause != nil {
		d.err = &Error{d.name, cmd, fmt.Errorf("%w: %w", ErrRetries, d.cause)}
	} else {
		d.err = &Error{d.name, cmd, ErrRetries}
	}
	d.metrics.incFailures()
	d.log.Warn("command failed", "cmd", cmd, "error", d.err)
}

// tick advances the timeout countdown of the outstanding command.
func (d *Device) tick() {
	if d.countdown <= 0 {
		return
	}
	d.countdown--
	if d.countdown == 0 {
		d.metrics.incTimeouts()
		d.retry(ErrTimeout)
	}
}

// resultOK handles an OK line.
func (d *Device) resultOK() {
	if !d.state.Busy() {
		return
	}
	if d.boot > 0 {
		d.boot--
		d.retries = d.budget
		d.execute()
		return
	}
	d.countdown = 0
	d.errSeen = false
	d.cause = nil
	d.state = State{Phase: Succeeded}
}

// resultError handles an ERROR line.
func (d *Device) resultError() {
	if !d.state.Busy() {
		return
	}
	d.metrics.incModuleErrors()
	d.retry(ErrModule)
	if d.state.Phase == Failed {
		d.errSeen = true
	}
}
