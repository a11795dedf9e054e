package sim

import (
	"go.uber.org/zap"

	"github.com/san-kum/dynfilter/dynamo"
)

// ModeLogger logs every switch between stabilization schemes.
type ModeLogger struct {
	log     *zap.Logger
	last    dynamo.Mode
	started bool
}

func NewModeLogger(log *zap.Logger) *ModeLogger {
	return &ModeLogger{log: log}
}

func (l *ModeLogger) OnStep(s Sample) {
	if s.Step == 0 {
		l.started = false
		return
	}
	if l.started && s.Mode == l.last {
		return
	}
	l.log.Debug("stabilization mode",
		zap.Int("step", s.Step),
		zap.Float64("t", s.Time),
		zap.Float64("dt", s.Dt),
		zap.Stringer("mode", s.Mode),
	)
	l.last, l.started = s.Mode, true
}
