// Package output describes the digital output lines driven by the monitor:
// the alarm indicator, the buzzer and the status indicator.
package output

// Pin identifies a digital output line (a BCM GPIO number on a Raspberry Pi).
type Pin int

// Level is the logical state of an output line.
type Level bool

const (
	// Off deasserts a line.
	Off Level = false
	// On asserts a line.
	On Level = true
)

// String returns "on" or "off".
func (l Level) String() string {
	if l {
		return "on"
	}

	return "off"
}

// DigitalOutput sets output lines. Writes are fire-and-forget.
type DigitalOutput interface {
	Set(pin Pin, level Level)
}

// Recorder is an in-memory DigitalOutput that remembers every write.
// The simulation driver and tests use it to inspect output history.
type Recorder struct {
	// Writes lists all writes in order.
	Writes []Write
	// levels is the latest level of every pin written so far.
	levels map[Pin]Level
}

// Write is a single recorded output change.
type Write struct {
	Pin   Pin
	Level Level
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		levels: make(map[Pin]Level),
	}
}

// Set records the write.
func (r *Recorder) Set(pin Pin, level Level) {
	r.Writes = append(r.Writes, Write{Pin: pin, Level: level})
	r.levels[pin] = level
}

// Level returns the latest level of pin, Off if it was never written.
func (r *Recorder) Level(pin Pin) Level {
	return r.levels[pin]
}

// Count returns how many times pin was set to level.
func (r *Recorder) Count(pin Pin, level Level) int {
	n := 0

	for _, w := range r.Writes {
		if w.Pin == pin && w.Level == level {
			n++
		}
	}

	return n
}
