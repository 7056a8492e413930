package gsat

import "sync/atomic"

// Metrics contains the device counters. They can be used as the value of
// a prometheus CounterFunc.
type Metrics struct {
	// TxCount is the number of command lines written, retransmissions included.
	TxCount atomic.Uint64
	// RetryCount is the number of retransmissions after ERROR or timeout.
	RetryCount atomic.Uint64
	// TimeoutCount is the number of expired response countdowns.
	TimeoutCount atomic.Uint64
	// ModuleErrorCount is the number of ERROR lines for outstanding commands.
	ModuleErrorCount atomic.Uint64
	// FailureCount is the number of commands that ended Failed.
	FailureCount atomic.Uint64
	// DatagramRecvCount is the number of unframed inbound datagrams.
	DatagramRecvCount atomic.Uint64
	// DatagramSendCount is the number of datagrams written.
	DatagramSendCount atomic.Uint64
	// OverflowCount is the number of lines or frames longer than the buffer.
	OverflowCount atomic.Uint64
}

func (m *Metrics) incTx()           { m.TxCount.Add(1) }
func (m *Metrics) incRetries()      { m.RetryCount.Add(1) }
func (m *Metrics) incTimeouts()     { m.TimeoutCount.Add(1) }
func (m *Metrics) incModuleErrors() { m.ModuleErrorCount.Add(1) }
func (m *Metrics) incFailures()     { m.FailureCount.Add(1) }
func (m *Metrics) incDatagramsIn()  { m.DatagramRecvCount.Add(1) }
func (m *Metrics) incDatagramsOut() { m.DatagramSendCount.Add(1) }
func (m *Metrics) incOverflows()    { m.OverflowCount.Add(1) }
