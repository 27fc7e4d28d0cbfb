package notifier

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

// Fanout delivers each event to its required sinks and, once they all
// succeed, to its best-effort sinks. Only required failures are returned, so
// a caller that retries on error never repeats a best-effort delivery.
type Fanout struct {
	required   []domain.NotificationSink
	bestEffort []domain.NotificationSink
}

func NewFanout(required ...domain.NotificationSink) *Fanout {
	return &Fanout{required: required}
}

// WithBestEffort adds sinks whose failures are logged and otherwise ignored.
func (f *Fanout) WithBestEffort(sinks ...domain.NotificationSink) *Fanout {
	f.bestEffort = append(f.bestEffort, sinks...)
	return f
}

func (f *Fanout) Emit(ctx context.Context, event domain.NotificationEvent) error {
	var errs []error
	for _, sink := range f.required {
		if err := sink.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, sink := range f.bestEffort {
		if err := sink.Emit(ctx, event); err != nil {
			slog.WarnContext(ctx, "best-effort notification sink failed",
				slog.String("kind", event.Kind.String()),
				slog.String("reminder_id", event.ReminderID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}
