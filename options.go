package gsat

import (
	"fmt"

	"github.com/embeddedgo/gsat/logger"
)

// Default configuration.
const (
	DefaultTimeout  = 100 // Poll calls
	DefaultRetries  = 3
	DefaultLineSize = 256 // bytes
)

const (
	MaxRetries  = 31
	MinLineSize = 16
)

// Option configures a Device.
type Option func(*Device) error

// WithTimeout sets the number of Poll calls after which an unanswered command
// is retransmitted.
func WithTimeout(ticks int) Option {
	return func(d *Device) error {
		if ticks < 1 {
			return fmt.Errorf("timeout %d out of range [1, inf)", ticks)
		}
		d.timeout = ticks
		return nil
	}
}

// WithRetries sets the number of transmissions of a command before it fails.
func WithRetries(n int) Option {
	return func(d *Device) error {
		if n < 1 || n > MaxRetries {
			return fmt.Errorf("retries %d out of range [1, %d]", n, MaxRetries)
		}
		d.budget = n
		return nil
	}
}

// WithLineSize sets the capacity of the receive line buffer. Longer lines and
// datagram frames are truncated and reported as ErrLineOverflow.
func WithLineSize(n int) Option {
	return func(d *Device) error {
		if n < MinLineSize {
			return fmt.Errorf("line size %d out of range [%d, inf)", n, MinLineSize)
		}
		d.line = make([]byte, 0, n)
		return nil
	}
}

// WithPower sets the switch used by PowerOn and PowerOff.
func WithPower(p PowerSwitch) Option {
	return func(d *Device) error {
		d.power = p
		return nil
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l logger.Logger) Option {
	return func(d *Device) error {
		if l == nil {
			l = logger.Nop()
		}
		d.log = l
		return nil
	}
}
