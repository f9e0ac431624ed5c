package simulation

import (
	"go.uber.org/zap"

	"github.com/oshokin/vibration-alarm/internal/domain/output"
)

// Outputs records output writes and traces them to the log.
type Outputs struct {
	*output.Recorder

	// log receives one line per write.
	log *zap.SugaredLogger
	// names labels pins in the trace.
	names map[output.Pin]string
}

// NewOutputs returns logged outputs; names labels known pins.
func NewOutputs(log *zap.SugaredLogger, names map[output.Pin]string) *Outputs {
	return &Outputs{
		Recorder: output.NewRecorder(),
		log:      log,
		names:    names,
	}
}

// Set records and logs the write.
func (o *Outputs) Set(pin output.Pin, level output.Level) {
	o.Recorder.Set(pin, level)
	o.log.Debugw("Output changed", "pin", pin, "line", o.names[pin], "level", level.String())
}
