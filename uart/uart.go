// Package uart adapts a serial port to the non-blocking gsat.Port interface.
//
// A background goroutine reads the port into a bounded buffer so the driver
// can poll it without blocking.
package uart

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"
)

// DefaultBufferSize is the receive buffer size used by Open.
const DefaultBufferSize = 1024

// ErrEmpty is returned by ReadByte when there is nothing buffered.
var ErrEmpty = errors.New("uart: receive buffer empty")

// Port buffers the bytes received from an io.ReadWriteCloser. Buffered,
// ReadByte and Dropped may be called concurrently with the reader goroutine.
type Port struct {
	rw      io.ReadWriteCloser
	done    chan struct{}
	mu      sync.Mutex
	buf     []byte
	r       int // read index into buf
	size    int
	dropped int
	err     error
}

// New starts reading rw into a buffer of size bytes. Bytes received while
// the buffer is full are dropped.
func New(rw io.ReadWriteCloser, size int) *Port {
	p := &Port{
		rw:   rw,
		done: make(chan struct{}),
		buf:  make([]byte, 0, size),
		size: size,
	}
	go p.run()
	return p
}

// Open opens the serial device name in 8N1 mode at baud bits per second.
func Open(name string, baud int) (*Port, error) {
	sp, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("uart: open %s: %w", name, err)
	}
	return New(sp, DefaultBufferSize), nil
}

func (p *Port) run() {
	defer close(p.done)
	var b [64]byte
	for {
		n, err := p.rw.Read(b[:])
		p.mu.Lock()
		if p.r > 0 {
			p.buf = p.buf[:copy(p.buf, p.buf[p.r:])]
			p.r = 0
		}
		if room := p.size - len(p.buf); n > room {
			p.dropped += n - room
			n = room
		}
		p.buf = append(p.buf, b[:n]...)
		if err != nil {
			p.err = err
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()
	}
}

// Buffered returns the number of bytes that can be read without blocking.
func (p *Port) Buffered() int {
	p.mu.Lock()
	n := len(p.buf) - p.r
	p.mu.Unlock()
	return n
}

// ReadByte returns the oldest buffered byte.
func (p *Port) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.r == len(p.buf) {
		if p.err != nil {
			return 0, p.err
		}
		return 0, ErrEmpty
	}
	b := p.buf[p.r]
	p.r++
	if p.r == len(p.buf) {
		p.buf = p.buf[:0]
		p.r = 0
	}
	return b, nil
}

func (p *Port) Write(b []byte) (int, error) {
	return p.rw.Write(b)
}

// Dropped returns the number of bytes lost because the buffer was full.
func (p *Port) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Err returns the error that stopped the reader goroutine, if any.
func (p *Port) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Close closes the underlying port and waits for the reader goroutine.
func (p *Port) Close() error {
	err := p.rw.Close()
	<-p.done
	return err
}
