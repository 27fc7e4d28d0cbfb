package proximity

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/geo"
	"github.com/KasumiMercury/primind-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder/internal/observability/tracing"
)

type Service struct {
	reminderRepo    domain.ReminderRepository
	sink            domain.NotificationSink
	reminderMetrics *metrics.ReminderMetrics
}

func NewService(
	reminderRepo domain.ReminderRepository,
	sink domain.NotificationSink,
	reminderMetrics *metrics.ReminderMetrics,
) *Service {
	return &Service{
		reminderRepo:    reminderRepo,
		sink:            sink,
		reminderMetrics: reminderMetrics,
	}
}

// Check triggers every untriggered, incomplete location reminder whose radius
// contains point. An empty ownerID checks reminders of every owner.
//
// A reminder whose flag update fails is logged and left out of the result; it
// stays armed and may trigger on a later call.
func (s *Service) Check(ctx context.Context, point geo.Point, ownerID string, now time.Time) (*Result, error) {
	ctx, span := tracing.StartProximityCheckSpan(ctx, ownerID)
	defer span.End()
	startedAt := time.Now()

	candidates, err := s.reminderRepo.Find(ctx, domain.ProximityCandidateFilter(ownerID))
	if err != nil {
		tracing.RecordProximityCheckResult(span, 0, 0, 0, err)
		return nil, fmt.Errorf("failed to find location reminders: %w", err)
	}

	result := &Result{
		Triggered: make([]TriggeredReminder, 0),
	}

	for _, reminder := range candidates {
		if !reminder.AwaitsLocationTrigger() {
			continue
		}
		if ownerID != "" && reminder.OwnerID != ownerID {
			continue
		}
		result.CandidateCount++

		target := geo.Point{Lat: reminder.Location.Latitude, Lon: reminder.Location.Longitude}
		radius := reminder.Location.EffectiveRadius()

		within, distance := geo.Within(point, target, radius)
		if !within {
			continue
		}

		slog.InfoContext(ctx, "user is near reminder location",
			slog.String("reminder_id", reminder.ID),
			slog.String("location_name", reminder.Location.Name),
			slog.Float64("distance_m", math.Round(distance)),
			slog.Float64("radius_m", radius),
		)

		reminder.MarkLocationNotified(now)
		if err := s.reminderRepo.MarkLocationNotified(ctx, reminder); err != nil {
			slog.WarnContext(ctx, "failed to persist location notified flag",
				slog.String("reminder_id", reminder.ID),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			if s.reminderMetrics != nil {
				s.reminderMetrics.RecordNotificationFailure(ctx, domain.EventKindNearLocation.String(), "save")
			}
			continue
		}

		s.emit(ctx, domain.NewNearLocationEvent(reminder, distance, now))

		result.Triggered = append(result.Triggered, TriggeredReminder{
			ID:           reminder.ID,
			Title:        reminder.Title,
			Description:  reminder.Description,
			LocationName: reminder.Location.Name,
			Distance:     int64(math.Round(distance)),
		})
	}

	tracing.RecordProximityCheckResult(span, result.CandidateCount, len(result.Triggered), result.FailedCount, nil)
	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordProximityCheck(ctx, ownerID != "", len(result.Triggered), time.Since(startedAt))
	}

	slog.DebugContext(ctx, "proximity check completed",
		slog.Float64("latitude", point.Lat),
		slog.Float64("longitude", point.Lon),
		slog.Int("candidates", result.CandidateCount),
		slog.Int("triggered", len(result.Triggered)),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

// emit is best effort: the flag is already persisted and the caller receives
// the reminder in the synchronous result regardless.
func (s *Service) emit(ctx context.Context, event domain.NotificationEvent) {
	if s.sink == nil {
		return
	}

	if err := s.sink.Emit(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to emit location notification",
			slog.String("reminder_id", event.ReminderID),
			slog.String("error", err.Error()),
		)
		if s.reminderMetrics != nil {
			s.reminderMetrics.RecordNotificationFailure(ctx, event.Kind.String(), "emit")
		}
		return
	}

	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordNotificationEmitted(ctx, event.Kind.String())
	}
}
