// Package gsat is a driver for the GainSpan GS1011 WiFi module controlled with
// AT commands over a UART. The driver never blocks: the caller submits one
// command at a time and calls Poll periodically. Poll consumes received bytes,
// settles the outstanding command and unframes inbound UDP datagrams.
package gsat

import (
	"io"
	"strings"

	"github.com/embeddedgo/gsat/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

// Port is the byte stream connected to the module UART. Buffered and ReadByte
// must not block: Poll reads only as many bytes as Buffered reports.
type Port interface {
	io.Writer
	io.ByteReader
	Buffered() int
}

// PowerSwitch controls the power supply of the module.
type PowerSwitch interface {
	Set(on bool) error
}

// Device is a driver for the GainSpan GS1011 WiFi module. It is not safe for
// concurrent use except for the Metrics, Peer and Peers methods. All progress
// happens inside Poll which should be called periodically.
type Device struct {
	name    string
	port    Port
	power   PowerSwitch
	log     logger.Logger
	metrics Metrics
	txbuf   []byte

	// command executor
	timeout   int
	budget    int
	kind      Kind
	param     string
	state     State
	boot      int
	retries   int
	countdown int
	errSeen   bool
	cause     error
	err       error

	// response demultiplexer
	line      []byte
	overflow  bool
	esc       bool
	inFrame   bool
	connected bool
	data      []string
	inbound   []Datagram
	last      Peer
	peers     *xsync.MapOf[byte, Peer]
}

// NewDevice returns a driver for the module connected to port. Name is used
// in errors and log messages. The device starts in the Idle state with the
// bootstrap sequence (AT, ATV1, ATE0) pending.
func NewDevice(name string, port Port, opts ...Option) (*Device, error) {
	d := &Device{
		name:    name,
		port:    port,
		log:     logger.Nop(),
		timeout: DefaultTimeout,
		budget:  DefaultRetries,
		line:    make([]byte, 0, DefaultLineSize),
		boot:    bootSteps,
		peers:   xsync.NewMapOf[byte, Peer](),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, &Error{name, "", err}
		}
	}
	d.log = d.log.With("dev", name)
	return d, nil
}

// PowerOn turns the module power on and resets the driver state. The
// bootstrap sequence will be sent again before the next command.
func (d *Device) PowerOn() error {
	if d.power != nil {
		if err := d.power.Set(true); err != nil {
			return &Error{d.name, "power on", err}
		}
	}
	d.state = State{}
	d.boot = bootSteps
	d.countdown = 0
	d.connected = false
	d.esc = false
	d.inFrame = false
	d.resetLine()
	d.log.Info("power on")
	return nil
}

// PowerOff turns the module power off.
func (d *Device) PowerOff() error {
	if d.power != nil {
		if err := d.power.Set(false); err != nil {
			return &Error{d.name, "power off", err}
		}
	}
	d.connected = false
	d.esc = false
	d.inFrame = false
	d.log.Info("power off")
	return nil
}

// Poll consumes all bytes available in the port and advances the command
// timeout by one tick.
func (d *Device) Poll() {
	for d.port.Buffered() > 0 {
		b, err := d.port.ReadByte()
		if err != nil {
			d.err = &Error{d.name, "read", err}
			d.log.Error("read failed", "error", err)
			break
		}
		d.feed(b)
	}
	d.tick()
}

// State returns the state of the last submitted command.
func (d *Device) State() State {
	return d.state
}

// Busy reports whether a command was sent and its result is not known yet.
func (d *Device) Busy() bool {
	return d.state.Busy()
}

// OK reports whether the last command succeeded.
func (d *Device) OK() bool {
	return d.state.Phase == Succeeded
}

// Failed reports whether the last command failed.
func (d *Device) Failed() bool {
	return d.state.Phase == Failed
}

// HasError reports whether the last command failed because the module
// answered ERROR to its final transmission.
func (d *Device) HasError() bool {
	return d.errSeen
}

// Connected reports whether the module reported CONNECT and the driver
// unframes UDP datagrams.
func (d *Device) Connected() bool {
	return d.connected
}

// Err returns the most recent error recorded by the driver or nil. Submit
// clears it.
func (d *Device) Err() error {
	return d.err
}

// Data returns the non-result lines received in response to the last
// transmitted command, joined by newlines.
func (d *Device) Data() string {
	return strings.TrimSpace(strings.Join(d.data, "\n"))
}

// Available reports whether there are received datagrams to read.
func (d *Device) Available() bool {
	return len(d.inbound) != 0
}

// Read returns all received datagrams in arrival order and empties the
// receive queue.
func (d *Device) Read() []Datagram {
	q := d.inbound
	d.inbound = nil
	return q
}

// ReadString works like Read but returns the payloads joined by newlines.
func (d *Device) ReadString() string {
	q := d.Read()
	if len(q) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, dg := range q {
		if i != 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(dg.Payload)
	}
	return strings.TrimSpace(sb.String())
}

// LastPeer returns the sender of the most recently received datagram.
func (d *Device) LastPeer() (Peer, bool) {
	return d.last, d.last != Peer{}
}

// Peer returns the last known sender for the connection id cid. It may be
// called concurrently with other methods.
func (d *Device) Peer(cid byte) (Peer, bool) {
	return d.peers.Load(cid)
}

// Peers returns a snapshot of the last known sender of every connection id.
// It may be called concurrently with other methods.
func (d *Device) Peers() map[byte]Peer {
	m := make(map[byte]Peer, d.peers.Size())
	d.peers.Range(func(cid byte, p Peer) bool {
		m[cid] = p
		return true
	})
	return m
}

// Metrics returns the device counters. They may be read concurrently.
func (d *Device) Metrics() *Metrics {
	return &d.metrics
}

func (d *Device) write(what string, p []byte) bool {
	if _, err := d.port.Write(p); err != nil {
		d.err = &Error{d.name, what, err}
		d.log.Error("write failed", "cmd", what, "error", err)
		return false
	}
	return true
}
