// Package alert holds the upcoming-deadline reminder hook. Notifications are
// passive: the only Notifier logs the alert and delivers nothing.
package alert

import (
	"context"

	"go.uber.org/zap"
)

type Kind string

const (
	KindExam Kind = "exam"
	KindWeek Kind = "week"
)

// Alert is one reminder. Tag identifies it for de-duplication by a
// delivering notifier.
type Alert struct {
	Kind  Kind
	Title string
	Body  string
	Tag   string
}

type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// LogNotifier records alerts in the log and does nothing else.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, a Alert) error {
	n.log.Info("passive alert",
		zap.String("title", a.Title),
		zap.String("body", a.Body),
		zap.String("tag", a.Tag),
	)
	return nil
}
