// Package mpu6050 reads the accelerometer of an InvenSense MPU6050 over I2C.
package mpu6050

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
)

// Register map, see the MPU-6000/6050 register map rev 4.2.
const (
	// DefaultAddress is the device address with AD0 low.
	DefaultAddress = 0x68

	regAccelConfig = 0x1C
	regAccelXOutH  = 0x3B
	regPwrMgmt1    = 0x6B
	regWhoAmI      = 0x75

	// whoAmIMask keeps bits 6:1 of WHO_AM_I, which do not depend on AD0.
	whoAmIMask = 0x7E
	whoAmI     = 0x68

	// clockPLLGyroX wakes the device and selects the X gyro PLL as clock source.
	clockPLLGyroX = 0x01

	// accelBytes is the length of the ACCEL_XOUT_H..ACCEL_ZOUT_L burst.
	accelBytes = 6
)

// Bus is the subset of embd.I2CBus the driver uses.
type Bus interface {
	ReadFromReg(addr, reg byte, value []byte) error
	ReadByteFromReg(addr, reg byte) (byte, error)
	WriteByteToReg(addr, reg, value byte) error
}

// Device is an MPU6050 on an I2C bus.
type Device struct {
	// bus is the I2C bus the device sits on.
	bus Bus
	// address is the 7-bit device address.
	address byte
	// log receives bus traces.
	log *zap.SugaredLogger
	// buf holds the last accelerometer burst.
	buf [accelBytes]byte
}

// New returns a driver for the device at address on bus.
func New(bus Bus, address byte, log *zap.SugaredLogger) *Device {
	return &Device{
		bus:     bus,
		address: address,
		log:     log,
	}
}

// Probe wakes the device and checks its identity.
// Failures wrap vibration.ErrSensorUnavailable.
func (d *Device) Probe() error {
	if err := d.bus.WriteByteToReg(d.address, regPwrMgmt1, clockPLLGyroX); err != nil {
		return fmt.Errorf("wake mpu6050 at 0x%02x: %w: %w", d.address, vibration.ErrSensorUnavailable, err)
	}

	id, err := d.bus.ReadByteFromReg(d.address, regWhoAmI)
	if err != nil {
		return fmt.Errorf("read WHO_AM_I: %w: %w", vibration.ErrSensorUnavailable, err)
	}

	if id&whoAmIMask != whoAmI {
		return fmt.Errorf("unexpected WHO_AM_I 0x%02x: %w", id, vibration.ErrSensorUnavailable)
	}

	d.log.Debugw("MPU6050 found", "address", d.address, "who_am_i", id)

	return nil
}

// Configure selects the accelerometer full-scale range (2, 4, 8 or 16 g).
func (d *Device) Configure(fullScale int) error {
	var afsSel byte

	switch fullScale {
	case 2:
		afsSel = 0
	case 4:
		afsSel = 1
	case 8:
		afsSel = 2
	case 16:
		afsSel = 3
	default:
		return fmt.Errorf("unsupported full-scale range ±%dg", fullScale)
	}

	if err := d.bus.WriteByteToReg(d.address, regAccelConfig, afsSel<<3); err != nil {
		return fmt.Errorf("write ACCEL_CONFIG: %w: %w", vibration.ErrSensorUnavailable, err)
	}

	d.log.Debugw("MPU6050 range configured", "full_scale_g", fullScale)

	return nil
}

// Read returns one accelerometer sample. Failures wrap vibration.ErrSampleReadFailed.
func (d *Device) Read() (vibration.RawSample, error) {
	if err := d.bus.ReadFromReg(d.address, regAccelXOutH, d.buf[:]); err != nil {
		return vibration.RawSample{}, fmt.Errorf("read accelerometer: %w: %w", vibration.ErrSampleReadFailed, err)
	}

	return vibration.RawSample{
		X: word(d.buf[0], d.buf[1]),
		Y: word(d.buf[2], d.buf[3]),
		Z: word(d.buf[4], d.buf[5]),
	}, nil
}

// word decodes a big-endian two's complement register pair.
func word(hi, lo byte) int16 {
	return int16(uint16(hi)<<8 | uint16(lo))
}
