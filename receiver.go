package gsat

import (
	"strings"
)

const (
	cr  = 13
	esc = 27
)

// feed passes one received byte through the demultiplexer.
//
// Outside the connected mode the bytes are collected into lines terminated by
// CR. In the connected mode the module additionally sends UDP datagrams
// framed as ESC 'u' ... ESC 'E'. A CR inside such a frame is payload.
func (d *Device) feed(b byte) {
	if d.connected {
		// The response countdown keeps running while frames arrive.
		if d.esc {
			d.esc = false
			switch b {
			case 'u':
				d.resetLine()
				d.inFrame = true
				return
			case 'E':
				d.endFrame()
				return
			}
			d.appendByte(esc)
		}
		if b == esc {
			d.esc = true
			return
		}
	}
	if b == cr && !d.inFrame {
		d.endLine()
		return
	}
	d.appendByte(b)
}

func (d *Device) appendByte(b byte) {
	if len(d.line) < cap(d.line) {
		d.line = append(d.line, b)
		return
	}
	if !d.overflow {
		d.overflow = true
		d.err = &Error{d.name, "", ErrLineOverflow}
		d.metrics.incOverflows()
		d.log.Warn("line overflow", "size", cap(d.line))
	}
}

func (d *Device) resetLine() {
	d.line = d.line[:0]
	d.overflow = false
}

// endLine classifies the completed line. The substring checks run in the
// order OK, ERROR, CONNECT so a line containing both OK and ERROR is OK.
func (d *Device) endLine() {
	line := strings.TrimSpace(string(d.line))
	d.resetLine()
	if line == "" {
		return
	}
	d.log.Debug("rx", "line", line)
	switch {
	case strings.Contains(line, "OK"):
		d.resultOK()
	case strings.Contains(line, "ERROR"):
		d.resultError()
	case strings.Contains(line, "CONNECT"):
		d.connected = true
		d.esc = false
		d.inFrame = false
		d.inbound = nil
		d.log.Info("connected", "line", line)
	default:
		d.data = append(d.data, line)
	}
}

// endFrame parses the collected frame as an inbound UDP datagram.
func (d *Device) endFrame() {
	d.inFrame = false
	dg, ok := parseDatagram(string(d.line))
	d.resetLine()
	if !ok {
		d.log.Debug("empty datagram frame")
		return
	}
	if dg.Peer != (Peer{}) {
		d.last = dg.Peer
		d.peers.Store(dg.Peer.CID, dg.Peer)
	}
	d.inbound = append(d.inbound, dg)
	d.metrics.incDatagramsIn()
	d.log.Debug("rx udp", "peer", dg.Peer, "payload", dg.Payload)
}
