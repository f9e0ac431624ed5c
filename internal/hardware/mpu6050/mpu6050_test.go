package mpu6050

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
)

var errNack = errors.New("i2c: no acknowledge")

// fakeBus is an in-memory register file for one device.
type fakeBus struct {
	// regs holds register contents.
	regs map[byte]byte
	// writes records register writes in order.
	writes [][2]byte
	// err fails every operation when set.
	err error
}

// newFakeBus returns a bus whose device answers WHO_AM_I with id.
func newFakeBus(id byte) *fakeBus {
	return &fakeBus{
		regs: map[byte]byte{regWhoAmI: id},
	}
}

func (b *fakeBus) ReadFromReg(addr, reg byte, value []byte) error {
	if b.err != nil {
		return b.err
	}

	for i := range value {
		value[i] = b.regs[reg+byte(i)]
	}

	return nil
}

func (b *fakeBus) ReadByteFromReg(addr, reg byte) (byte, error) {
	if b.err != nil {
		return 0, b.err
	}

	return b.regs[reg], nil
}

func (b *fakeBus) WriteByteToReg(addr, reg, value byte) error {
	if b.err != nil {
		return b.err
	}

	b.writes = append(b.writes, [2]byte{reg, value})
	b.regs[reg] = value

	return nil
}

// TestProbe checks wake-up, identity check and failure wrapping.
func TestProbe(t *testing.T) {
	t.Parallel()

	bus := newFakeBus(0x68)
	require.NoError(t, New(bus, DefaultAddress, zap.NewNop().Sugar()).Probe())
	require.Equal(t, [][2]byte{{regPwrMgmt1, clockPLLGyroX}}, bus.writes)

	// AD0 high changes bit 0 only.
	require.NoError(t, New(newFakeBus(0x69), 0x69, zap.NewNop().Sugar()).Probe())

	err := New(newFakeBus(0x71), DefaultAddress, zap.NewNop().Sugar()).Probe()
	require.ErrorIs(t, err, vibration.ErrSensorUnavailable)

	bus = newFakeBus(0x68)
	bus.err = errNack

	err = New(bus, DefaultAddress, zap.NewNop().Sugar()).Probe()
	require.ErrorIs(t, err, vibration.ErrSensorUnavailable)
	require.ErrorIs(t, err, errNack)
}

// TestConfigure verifies the AFS_SEL encoding.
func TestConfigure(t *testing.T) {
	t.Parallel()

	cases := map[int]byte{2: 0x00, 4: 0x08, 8: 0x10, 16: 0x18}
	for fullScale, want := range cases {
		bus := newFakeBus(0x68)
		require.NoError(t, New(bus, DefaultAddress, zap.NewNop().Sugar()).Configure(fullScale))
		require.Equal(t, want, bus.regs[regAccelConfig])
	}

	require.Error(t, New(newFakeBus(0x68), DefaultAddress, zap.NewNop().Sugar()).Configure(6))
}

// TestRead decodes big-endian signed axis values.
func TestRead(t *testing.T) {
	t.Parallel()

	bus := newFakeBus(0x68)
	// X = 0x0100 (256), Y = 0xFF00 (-256), Z = 0x4000 (16384).
	for i, v := range []byte{0x01, 0x00, 0xFF, 0x00, 0x40, 0x00} {
		bus.regs[regAccelXOutH+byte(i)] = v
	}

	sample, err := New(bus, DefaultAddress, zap.NewNop().Sugar()).Read()
	require.NoError(t, err)
	require.Equal(t, vibration.RawSample{X: 256, Y: -256, Z: 16384}, sample)

	bus.err = errNack

	_, err = New(bus, DefaultAddress, zap.NewNop().Sugar()).Read()
	require.ErrorIs(t, err, vibration.ErrSampleReadFailed)
}
