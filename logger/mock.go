package logger

import (
	"github.com/stretchr/testify/mock"
)

// MockLogger is a Logger for driver tests. Each Debug, Info, Warn and Error
// call is recorded as the message plus one []any argument holding the
// key/value pairs, so a test can expect the "tx" line of a command with
// m.AssertCalled(t, "Debug", "tx", []any{"cmd", "AT", "retries", 2}).
// Expectations must be set with On before the device logs anything.
type MockLogger struct {
	mock.Mock
}

var _ Logger = (*MockLogger)(nil)

// NewMockLogger returns a MockLogger without expectations.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Debug(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Info(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Warn(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Error(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

// With does not record the call. It returns m so the messages of the
// device logger, which is derived with With("dev", name), land in m.
func (m *MockLogger) With(keyValues ...any) Logger {
	return m
}
