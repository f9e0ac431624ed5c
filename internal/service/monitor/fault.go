package monitor

import (
	"context"
	"time"

	"github.com/oshokin/vibration-alarm/internal/domain/output"
)

// faultBlinkPeriod is the half-period of the status LED blink in fault mode.
const faultBlinkPeriod = 200 * time.Millisecond

// Fault blinks pin until ctx is done, then leaves it off. It signals that
// the monitor never became operational.
func Fault(ctx context.Context, out output.DigitalOutput, pin output.Pin, clock Clock, period time.Duration) {
	if period <= 0 {
		period = faultBlinkPeriod
	}

	level := output.On

	for {
		out.Set(pin, level)

		if err := clock.Sleep(ctx, period); err != nil {
			out.Set(pin, output.Off)

			return
		}

		level = !level
	}
}
