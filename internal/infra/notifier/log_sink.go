package notifier

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

// LogSink writes each notification as a structured log line.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Emit(ctx context.Context, event domain.NotificationEvent) error {
	attrs := []any{
		slog.String("kind", event.Kind.String()),
		slog.String("reminder_id", event.ReminderID),
		slog.String("owner_id", event.OwnerID),
		slog.String("title", event.Title),
		slog.Time("due_date", event.DueDate),
	}
	if event.Kind == domain.EventKindNearLocation {
		attrs = append(attrs,
			slog.String("location_name", event.LocationName),
			slog.Float64("distance_meters", event.DistanceMeters),
		)
	}

	slog.InfoContext(ctx, "reminder notification", attrs...)
	return nil
}
