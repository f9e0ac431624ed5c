package reporter

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
	"github.com/oshokin/vibration-alarm/internal/logger"
)

// Reporter emits a reading line whenever more than one interval has passed
// since the previous report.
type Reporter struct {
	// interval is the report cadence.
	interval time.Duration
	// lastReportAt is the schedule anchor of the previous report.
	lastReportAt time.Time
	// reports counts emitted lines.
	reports uint64
}

// New creates a Reporter whose first report is due one interval after start.
func New(interval time.Duration, start time.Time) *Reporter {
	return &Reporter{
		interval:     interval,
		lastReportAt: start,
	}
}

// Due reports whether now is strictly more than interval past last.
func Due(now, last time.Time, interval time.Duration) bool {
	return now.Sub(last) > interval
}

// MaybeReport logs reading if a report is due at now and returns whether it did.
//
// The anchor advances by whole intervals rather than jumping to now, so a
// cycle period that does not divide the interval does not stretch the cadence.
func (r *Reporter) MaybeReport(ctx context.Context, now time.Time, reading vibration.Reading) bool {
	if !Due(now, r.lastReportAt, r.interval) {
		return false
	}

	if r.interval > 0 {
		elapsed := now.Sub(r.lastReportAt)
		r.lastReportAt = r.lastReportAt.Add(elapsed - elapsed%r.interval)
	} else {
		r.lastReportAt = now
	}

	r.reports++

	logger.Info(ctx, FormatReading(reading))

	return true
}

// Reports returns the number of emitted report lines.
func (r *Reporter) Reports() uint64 {
	return r.reports
}

// FormatReading renders the per-cycle report line.
func FormatReading(reading vibration.Reading) string {
	return fmt.Sprintf(
		"Acc X: %.3f g | Acc Y: %.3f g | Acc Z: %.3f g | Magnitudine: %.3f g | Vibrazione: %.3f g",
		reading.X,
		reading.Y,
		reading.Z,
		reading.Magnitude,
		reading.Intensity,
	)
}

// FormatAlarm renders the line printed once per alarm activation.
func FormatAlarm(intensity float64) string {
	return fmt.Sprintf("ALLARME! Vibrazione rilevata: %.2f g", intensity)
}
