package power

import (
	"testing"

	"github.com/embeddedgo/gsat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

var _ gsat.PowerSwitch = (*Pin)(nil)

func TestSet(t *testing.T) {
	tests := []struct {
		name      string
		activeLow bool
		on, off   gpio.Level
	}{
		{"active high", false, gpio.High, gpio.Low},
		{"active low", true, gpio.Low, gpio.High},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pin := &gpiotest.Pin{N: "GPIO17", Num: 17}
			p := New(pin, tt.activeLow)
			require.NoError(t, p.Set(true))
			assert.Equal(t, tt.on, pin.Read())
			require.NoError(t, p.Set(false))
			assert.Equal(t, tt.off, pin.Read())
		})
	}
}

type testSink struct{}

func (testSink) Write(p []byte) (int, error) { return len(p), nil }
func (testSink) ReadByte() (byte, error)     { return 0, nil }
func (testSink) Buffered() int               { return 0 }

func TestDevicePower(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO17", Num: 17}
	d, err := gsat.NewDevice("gs0", testSink{}, gsat.WithPower(New(pin, false)))
	require.NoError(t, err)
	require.NoError(t, d.PowerOn())
	assert.Equal(t, gpio.High, pin.Read())
	require.NoError(t, d.PowerOff())
	assert.Equal(t, gpio.Low, pin.Read())
}
