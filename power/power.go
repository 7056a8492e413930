// Package power switches the module supply with a GPIO pin.
package power

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Pin drives a GPIO output connected to the module power switch.
type Pin struct {
	out       gpio.PinOut
	activeLow bool
}

// New returns a switch driving out. If activeLow is true the module is
// powered while out is low.
func New(out gpio.PinOut, activeLow bool) *Pin {
	return &Pin{out: out, activeLow: activeLow}
}

// Open initializes the host drivers and returns a switch driving the pin
// registered under name (e.g. "GPIO17").
func Open(name string, activeLow bool) (*Pin, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("power: failed to initialize periph host: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("power: unknown pin %s", name)
	}
	return New(p, activeLow), nil
}

// Set turns the module power on or off.
func (p *Pin) Set(on bool) error {
	if err := p.out.Out(gpio.Level(on != p.activeLow)); err != nil {
		return fmt.Errorf("power: %s: %w", p.out, err)
	}
	return nil
}
