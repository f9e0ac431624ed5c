package alarm

import (
	"time"

	"github.com/oshokin/vibration-alarm/internal/domain/output"
)

// Pattern is an audible beep sequence: Beeps repetitions of (On, Off).
type Pattern struct {
	// Beeps is the number of repetitions.
	Beeps int
	// On is how long the buzzer sounds in each repetition.
	On time.Duration
	// Off is the silence after each beep.
	Off time.Duration
}

// DefaultPattern is three 200ms beeps separated by 100ms of silence.
func DefaultPattern() Pattern {
	return Pattern{
		Beeps: 3,
		On:    200 * time.Millisecond,
		Off:   100 * time.Millisecond,
	}
}

// Total returns the duration of the whole pattern.
func (p Pattern) Total() time.Duration {
	return time.Duration(p.Beeps) * (p.On + p.Off)
}

// phases returns how many timed phases the pattern has.
func (p Pattern) phases() int {
	return 2 * p.Beeps
}

// phaseDuration returns the length of phase i; even phases sound, odd ones are silent.
func (p Pattern) phaseDuration(i int) time.Duration {
	if i%2 == 0 {
		return p.On
	}

	return p.Off
}

// phaseLevel returns the buzzer level during phase i.
func phaseLevel(i int) output.Level {
	return output.Level(i%2 == 0)
}

// Sequencer plays a Pattern on a buzzer pin without blocking.
// Start opens phase 0; every Advance call moves to the phase the clock has
// reached and writes the buzzer only when its level changes.
type Sequencer struct {
	// pattern is the sequence being played.
	pattern Pattern
	// pin is the buzzer line.
	pin output.Pin
	// out drives the buzzer.
	out output.DigitalOutput

	// running is true between Start and the end of the last phase.
	running bool
	// phase is the index of the current phase.
	phase int
	// phaseStartedAt is when the current phase began.
	phaseStartedAt time.Time
	// level is the last level written to the buzzer.
	level output.Level
}

// NewSequencer creates an idle sequencer for pattern on pin.
func NewSequencer(pattern Pattern, pin output.Pin, out output.DigitalOutput) *Sequencer {
	return &Sequencer{
		pattern: pattern,
		pin:     pin,
		out:     out,
	}
}

// Running reports whether the pattern is still playing.
func (s *Sequencer) Running() bool {
	return s.running
}

// Start begins the pattern at now, restarting it if it was already playing.
func (s *Sequencer) Start(now time.Time) {
	if s.pattern.Beeps <= 0 {
		return
	}

	s.running = true
	s.phase = 0
	s.phaseStartedAt = now
	s.write(phaseLevel(0))
}

// Advance moves the pattern forward to now. Phases that fully elapsed since
// the previous call are skipped without touching the buzzer, keeping the
// pattern anchored to its start time.
func (s *Sequencer) Advance(now time.Time) {
	if !s.running {
		return
	}

	for d := s.pattern.phaseDuration(s.phase); now.Sub(s.phaseStartedAt) >= d; d = s.pattern.phaseDuration(s.phase) {
		s.phaseStartedAt = s.phaseStartedAt.Add(d)
		s.phase++

		if s.phase >= s.pattern.phases() {
			s.running = false
			s.write(output.Off)

			return
		}
	}

	s.write(phaseLevel(s.phase))
}

// Stop ends the pattern and forces the buzzer off.
func (s *Sequencer) Stop() {
	s.running = false
	s.level = output.Off
	s.out.Set(s.pin, output.Off)
}

// write sets the buzzer when its level changes.
func (s *Sequencer) write(level output.Level) {
	if s.level == level {
		return
	}

	s.level = level
	s.out.Set(s.pin, level)
}
