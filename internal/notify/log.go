package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the log instead of sending them.
// Stands in for a real gateway in development and local runs.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier returns a Notifier that logs every send.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(ctx context.Context, target, message string) error {
	n.log.Info("sending notification", zap.String("target", target), zap.String("message", message))
	return nil
}
