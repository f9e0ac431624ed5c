// Package gpio drives Raspberry Pi output lines through /dev/gpiomem.
package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
	"go.uber.org/zap"

	"github.com/oshokin/vibration-alarm/internal/domain/output"
)

// line is the part of rpio.Pin the board uses.
type line interface {
	Output()
	Write(state rpio.State)
}

// Board owns a fixed set of output lines. It implements output.DigitalOutput.
type Board struct {
	// lines maps configured pins to their drivers.
	lines map[output.Pin]line
	// log receives pin traces.
	log *zap.SugaredLogger
	// release unmaps the GPIO memory.
	release func() error
}

// Open maps the GPIO memory and configures pins as outputs driven low.
func Open(log *zap.SugaredLogger, pins ...output.Pin) (*Board, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	board := newBoard(log, func(p output.Pin) line {
		return rpio.Pin(uint8(p))
	}, pins...)
	board.release = rpio.Close

	return board, nil
}

// newBoard sets every pin up through the provided factory.
func newBoard(log *zap.SugaredLogger, factory func(output.Pin) line, pins ...output.Pin) *Board {
	board := &Board{
		lines: make(map[output.Pin]line, len(pins)),
		log:   log,
	}

	for _, pin := range pins {
		l := factory(pin)
		l.Output()
		l.Write(rpio.Low)

		board.lines[pin] = l
	}

	return board
}

// Set drives pin high or low. Unknown pins are logged and ignored.
func (b *Board) Set(pin output.Pin, level output.Level) {
	l, ok := b.lines[pin]
	if !ok {
		b.log.Warnw("Write to unconfigured pin ignored", "pin", pin)

		return
	}

	state := rpio.Low
	if level == output.On {
		state = rpio.High
	}

	l.Write(state)
	b.log.Debugw("Pin set", "pin", pin, "level", level.String())
}

// Close drives all lines low and releases the GPIO memory.
func (b *Board) Close() error {
	for _, l := range b.lines {
		l.Write(rpio.Low)
	}

	if b.release == nil {
		return nil
	}

	if err := b.release(); err != nil {
		return fmt.Errorf("close gpio: %w", err)
	}

	return nil
}
