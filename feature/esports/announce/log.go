package announce

import (
	"context"

	"esports-tracker/feature/esports/model"

	"go.uber.org/zap"
)

// LogSink writes announcements to the application log.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink logging through logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Announce logs m.
func (s *LogSink) Announce(_ context.Context, m *model.Match) error {
	s.logger.Info("Match updated",
		zap.String("match", m.ID()),
		zap.String("bracket", m.BracketID()),
		zap.String("blue", m.Blue()),
		zap.String("red", m.Red()),
		zap.String("winner", m.Winner()))
	return nil
}
