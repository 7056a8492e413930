package gsat

import (
	"net/netip"
	"strconv"
	"strings"
)

// Peer is the remote end of a UDP exchange as reported by the module.
type Peer struct {
	CID  byte   // connection id assigned by the module
	IP   string // textual IP address
	Port string // textual port number
}

func (p Peer) String() string {
	return string(p.CID) + p.IP + ":" + p.Port
}

// AddrPort parses the peer address.
func (p Peer) AddrPort() (netip.AddrPort, error) {
	ip, err := netip.ParseAddr(p.IP)
	if err != nil {
		return netip.AddrPort{}, err
	}
	port, err := strconv.ParseUint(p.Port, 10, 16)
	if err != nil {
		return netip.AddrPort{}, err
	}
	return netip.AddrPortFrom(ip, uint16(port)), nil
}

// Datagram is a received UDP datagram. Trailing control bytes of the frame
// are not part of Payload.
type Datagram struct {
	Peer    Peer
	Payload string
}

// parseDatagram parses an unframed datagram of the form
//
//	<cid><ip> <port>\t<payload>
//
// Missing fields are left empty. A frame that is empty after trimming the
// trailing control bytes is rejected.
func parseDatagram(frame string) (Datagram, bool) {
	frame = strings.TrimRightFunc(frame, isControl)
	if frame == "" {
		return Datagram{}, false
	}
	head, payload, _ := strings.Cut(frame, "\t")
	var dg Datagram
	if head != "" {
		dg.Peer.CID = head[0]
		dg.Peer.IP, dg.Peer.Port, _ = strings.Cut(head[1:], " ")
	}
	dg.Payload = payload
	return dg, true
}

func isControl(r rune) bool {
	return r < ' ' || r == 0x7f
}

// appendDatagram appends msg framed for the module as
//
//	ESC 'U' <cid><ip>:<port>:<msg> ESC 'E'
func appendDatagram(buf []byte, p Peer, msg string) []byte {
	buf = append(buf, esc, 'U', p.CID)
	buf = append(buf, p.IP...)
	buf = append(buf, ':')
	buf = append(buf, p.Port...)
	buf = append(buf, ':')
	buf = append(buf, msg...)
	return append(buf, esc, 'E')
}

// WriteUDP sends msg to the sender of the most recently received datagram.
func (d *Device) WriteUDP(msg string) error {
	p, ok := d.LastPeer()
	if !ok {
		return &Error{d.name, "udp", ErrNoPeer}
	}
	return d.WriteUDPTo(p, msg)
}

// WriteUDPTo sends msg to p.
func (d *Device) WriteUDPTo(p Peer, msg string) error {
	d.txbuf = appendDatagram(d.txbuf[:0], p, msg)
	d.log.Debug("tx udp", "peer", p, "payload", msg)
	if !d.write("udp", d.txbuf) {
		return d.err
	}
	d.metrics.incDatagramsOut()
	return nil
}
