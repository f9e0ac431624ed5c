package alarm

import (
	"time"

	"github.com/oshokin/vibration-alarm/internal/domain/output"
)

// Transition is the outcome of one evaluation of the machine.
type Transition int

const (
	// None means the status did not change.
	None Transition = iota
	// Activated means the machine went from Idle to Active.
	Activated
	// Deactivated means the alarm window expired.
	Deactivated
)

// String returns a lowercase name of the transition.
func (t Transition) String() string {
	switch t {
	case None:
		return "none"
	case Activated:
		return "activated"
	case Deactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}

// Pins names the output lines the machine drives.
type Pins struct {
	// Indicator is the alarm LED.
	Indicator output.Pin
	// Buzzer is the audible alarm.
	Buzzer output.Pin
}

// Options configures a Machine.
type Options struct {
	// Threshold is the intensity, in g, that must be exceeded to activate.
	Threshold float64
	// Duration is how long the alarm stays active once triggered.
	Duration time.Duration
	// Pins are the alarm indicator and buzzer lines.
	Pins Pins
	// Pattern is the buzzer sequence played on activation.
	Pattern Pattern
}

// Machine owns the alarm State and its output side effects.
// It is not safe for concurrent use; the monitoring loop is its only caller.
type Machine struct {
	// opts is the immutable configuration.
	opts Options
	// out drives the indicator.
	out output.DigitalOutput
	// buzzer plays the beep pattern.
	buzzer *Sequencer
	// state is the current alarm state.
	state State
}

// NewMachine creates an Idle machine.
func NewMachine(opts Options, out output.DigitalOutput) *Machine {
	return &Machine{
		opts:   opts,
		out:    out,
		buzzer: NewSequencer(opts.Pattern, opts.Pins.Buzzer, out),
	}
}

// Evaluate feeds the intensity measured at now.
//
// An Idle machine activates when intensity exceeds the threshold. Breaches
// while Active are ignored: they neither restart the buzzer nor extend the
// window. Expiry is then checked in the same call, as Tick does.
func (m *Machine) Evaluate(now time.Time, intensity float64) Transition {
	if intensity > m.opts.Threshold && m.state.Status == Idle {
		m.activate(now)

		return Activated
	}

	return m.Tick(now)
}

// Tick advances the buzzer pattern and closes the alarm once
// now - ActivatedAt exceeds the configured duration.
func (m *Machine) Tick(now time.Time) Transition {
	if m.state.Status != Active {
		return None
	}

	if now.Sub(m.state.ActivatedAt) > m.opts.Duration {
		m.deactivate()

		return Deactivated
	}

	m.buzzer.Advance(now)

	return None
}

// Reset forces the machine Idle with both outputs off.
func (m *Machine) Reset() {
	m.deactivate()
}

// State returns a copy of the current state.
func (m *Machine) State() *State {
	return m.state.Clone()
}

// Threshold returns the configured activation threshold.
func (m *Machine) Threshold() float64 {
	return m.opts.Threshold
}

// activate opens the alarm window.
func (m *Machine) activate(now time.Time) {
	m.state.Status = Active
	m.state.ActivatedAt = now
	m.state.Activations++

	m.out.Set(m.opts.Pins.Indicator, output.On)
	m.buzzer.Start(now)
}

// deactivate closes the window and deasserts both lines unconditionally.
func (m *Machine) deactivate() {
	m.state.Status = Idle
	m.state.ActivatedAt = time.Time{}

	m.out.Set(m.opts.Pins.Indicator, output.Off)
	m.buzzer.Stop()
}
