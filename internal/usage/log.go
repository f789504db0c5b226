package usage

import (
	"context"

	"go.uber.org/zap"
)

// LogRecorder writes each event as a structured log line.
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder creates a recorder backed by logger.
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogRecorder{logger: logger}
}

// Record implements Recorder.
func (l *LogRecorder) Record(_ context.Context, event Event) error {
	if err := event.Normalize(); err != nil {
		return err
	}
	l.logger.Info("calculator used",
		zap.String("op", "usage.LogRecorder.Record"),
		zap.String("id", event.ID),
		zap.String("calculatorType", event.CalculatorType),
		zap.ByteString("inputData", event.InputData),
		zap.ByteString("resultData", event.ResultData),
		zap.Time("createdAt", event.CreatedAt),
	)
	return nil
}
