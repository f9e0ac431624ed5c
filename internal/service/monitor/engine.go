package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oshokin/vibration-alarm/internal/domain/alarm"
	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
	"github.com/oshokin/vibration-alarm/internal/logger"
	"github.com/oshokin/vibration-alarm/internal/service/reporter"
)

// SampleSource delivers raw accelerometer samples.
type SampleSource interface {
	Read() (vibration.RawSample, error)
}

// EngineOptions configures the monitoring loop.
type EngineOptions struct {
	// Offset is the calibration result.
	Offset vibration.Offset
	// ScaleFactor is the sensor sensitivity in LSB/g.
	ScaleFactor float64
	// CycleDelay is the pause after every cycle.
	CycleDelay time.Duration
	// ReportInterval is the reading report cadence.
	ReportInterval time.Duration
	// MaxReadFailures ends Run after this many consecutive failed reads; zero never does.
	MaxReadFailures int
}

// Snapshot is the state published at the end of a cycle.
type Snapshot struct {
	// Cycle is the number of the cycle that produced the snapshot.
	Cycle uint64
	// At is the cycle timestamp.
	At time.Time
	// Reading is the latest successful reading; zero until HasReading.
	Reading vibration.Reading
	// HasReading is false until the first successful read.
	HasReading bool
	// Alarm is the alarm state after the cycle.
	Alarm alarm.State
	// Reports is the number of report lines emitted so far.
	Reports uint64
	// ReadFailures is the total number of failed reads.
	ReadFailures uint64
}

// Engine is the monitoring loop context. Only the goroutine running Step or
// Run may mutate it; Snapshot is safe from any goroutine.
type Engine struct {
	// opts is the immutable loop configuration.
	opts EngineOptions
	// source supplies samples.
	source SampleSource
	// machine is the alarm state machine.
	machine *alarm.Machine
	// reporter prints readings on its cadence.
	reporter *reporter.Reporter
	// clock times cycles and pauses.
	clock Clock

	// cycles counts executed cycles.
	cycles uint64
	// failedInRow counts consecutive failed reads.
	failedInRow int
	// readFailures counts all failed reads.
	readFailures uint64
	// last is the latest successful reading.
	last vibration.Reading
	// hasReading is true after the first successful read.
	hasReading bool

	// snapshot is the latest published state.
	snapshot atomic.Pointer[Snapshot]
}

// NewEngine wires an engine; the report cadence starts at clock.Now().
func NewEngine(opts EngineOptions, source SampleSource, machine *alarm.Machine, clock Clock) *Engine {
	e := &Engine{
		opts:     opts,
		source:   source,
		machine:  machine,
		reporter: reporter.New(opts.ReportInterval, clock.Now()),
		clock:    clock,
	}

	e.publish(clock.Now())

	return e
}

// Step runs one cycle: read, analyze, alarm, report, in that order.
// A failed read skips analysis and reporting but still polls the alarm window.
// It returns an error wrapping vibration.ErrSampleReadFailed once
// MaxReadFailures consecutive reads have failed.
func (e *Engine) Step(ctx context.Context) error {
	now := e.clock.Now()
	e.cycles++

	defer e.publish(now)

	sample, err := e.source.Read()
	if err != nil {
		return e.readFailed(ctx, now, err)
	}

	e.failedInRow = 0

	reading := vibration.Analyze(sample, e.opts.Offset, e.opts.ScaleFactor)
	e.last = reading
	e.hasReading = true

	e.logTransition(ctx, e.machine.Evaluate(now, reading.Intensity), reading)
	e.reporter.MaybeReport(ctx, now, reading)

	return nil
}

// Run executes cycles until ctx is done or reads keep failing.
// Both alarm outputs are off when it returns.
func (e *Engine) Run(ctx context.Context) error {
	defer e.machine.Reset()

	for ctx.Err() == nil {
		if err := e.Step(ctx); err != nil {
			return err
		}

		if err := e.clock.Sleep(ctx, e.opts.CycleDelay); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}

			return fmt.Errorf("cycle pause: %w", err)
		}
	}

	return nil
}

// Snapshot returns the state published by the latest cycle.
func (e *Engine) Snapshot() Snapshot {
	return *e.snapshot.Load()
}

// readFailed applies the read-failure policy for one cycle.
func (e *Engine) readFailed(ctx context.Context, now time.Time, err error) error {
	e.failedInRow++
	e.readFailures++

	e.logTransition(ctx, e.machine.Tick(now), e.last)

	logger.WarnKV(ctx, "Sample read failed, skipping cycle",
		"consecutive", e.failedInRow,
		"error", err,
	)

	if e.opts.MaxReadFailures > 0 && e.failedInRow >= e.opts.MaxReadFailures {
		return fmt.Errorf("%d consecutive reads failed: %w: %w", e.failedInRow, vibration.ErrSampleReadFailed, err)
	}

	return nil
}

// logTransition prints the operator lines for alarm changes.
func (e *Engine) logTransition(ctx context.Context, tr alarm.Transition, reading vibration.Reading) {
	switch tr {
	case alarm.Activated:
		logger.Warn(ctx, reporter.FormatAlarm(reading.Intensity))
	case alarm.Deactivated:
		logger.InfoKV(ctx, "Alarm cleared", "activations", e.machine.State().Activations)
	case alarm.None:
	}
}

// publish stores an immutable copy of the current state.
func (e *Engine) publish(at time.Time) {
	e.snapshot.Store(&Snapshot{
		Cycle:        e.cycles,
		At:           at,
		Reading:      e.last,
		HasReading:   e.hasReading,
		Alarm:        *e.machine.State(),
		Reports:      e.reporter.Reports(),
		ReadFailures: e.readFailures,
	})
}
