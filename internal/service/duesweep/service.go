package duesweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder/internal/observability/tracing"
)

type Service struct {
	reminderRepo    domain.ReminderRepository
	sink            domain.NotificationSink
	lookahead       time.Duration
	reminderMetrics *metrics.ReminderMetrics
}

func NewService(
	reminderRepo domain.ReminderRepository,
	sink domain.NotificationSink,
	lookahead time.Duration,
	reminderMetrics *metrics.ReminderMetrics,
) *Service {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &Service{
		reminderRepo:    reminderRepo,
		sink:            sink,
		lookahead:       lookahead,
		reminderMetrics: reminderMetrics,
	}
}

func (s *Service) Lookahead() time.Duration {
	return s.lookahead
}

// Run sweeps at the current wall-clock time. It is the scheduler job.
func (s *Service) Run(ctx context.Context) {
	if _, err := s.Sweep(ctx, time.Now()); err != nil {
		slog.ErrorContext(ctx, "due sweep failed",
			slog.String("error", err.Error()),
		)
	}
}

// Sweep notifies every reminder falling due in [now, now+lookahead] that is
// neither notified nor completed, then marks it notified. A failure on one
// reminder is logged and the sweep continues with the next one.
func (s *Service) Sweep(ctx context.Context, now time.Time) (*Result, error) {
	from := now.UTC()
	to := from.Add(s.lookahead)

	ctx, span := tracing.StartDueSweepSpan(ctx, from, to)
	defer span.End()
	startedAt := time.Now()

	reminders, err := s.reminderRepo.Find(ctx, domain.DueSoonFilter(from, to))
	if err != nil {
		tracing.RecordDueSweepResult(span, 0, 0, 0, err)
		if s.reminderMetrics != nil {
			s.reminderMetrics.RecordSweep(ctx, "error", time.Since(startedAt))
		}
		return nil, fmt.Errorf("failed to find due reminders: %w", err)
	}

	result := &Result{
		From:    from,
		To:      to,
		Results: make([]ResultItem, 0, len(reminders)),
	}

	for _, reminder := range reminders {
		// The store filter is authoritative, but a stale index must not re-notify.
		if !reminder.IsDueWithin(from, to) {
			continue
		}
		result.MatchedCount++

		item := ResultItem{
			ReminderID: reminder.ID,
			OwnerID:    reminder.OwnerID,
			Title:      reminder.Title,
			DueDate:    reminder.DueDate,
			Success:    true,
		}

		if err := s.notify(ctx, reminder, now); err != nil {
			item.Success = false
			item.Error = err.Error()
			result.FailedCount++
		} else {
			result.NotifiedCount++
		}

		result.Results = append(result.Results, item)
	}

	tracing.RecordDueSweepResult(span, result.MatchedCount, result.NotifiedCount, result.FailedCount, nil)
	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordSweep(ctx, "success", time.Since(startedAt))
	}

	slog.InfoContext(ctx, "due sweep completed",
		slog.Time("from", from),
		slog.Time("to", to),
		slog.Int("matched", result.MatchedCount),
		slog.Int("notified", result.NotifiedCount),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

func (s *Service) notify(ctx context.Context, reminder *domain.Reminder, now time.Time) error {
	event := domain.NewDueSoonEvent(reminder, now)

	// Emit first: a failed emit leaves the reminder unnotified so the next tick retries it.
	if err := s.sink.Emit(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to emit due notification",
			slog.String("reminder_id", reminder.ID),
			slog.String("error", err.Error()),
		)
		if s.reminderMetrics != nil {
			s.reminderMetrics.RecordNotificationFailure(ctx, event.Kind.String(), "emit")
		}
		return fmt.Errorf("emit: %w", err)
	}

	// Only the flag is written, and only while the due date is still the one
	// that was notified; a deleted or rescheduled reminder is left alone.
	reminder.MarkNotified(now)
	if err := s.reminderRepo.MarkNotified(ctx, reminder); err != nil {
		slog.WarnContext(ctx, "failed to persist notified flag",
			slog.String("reminder_id", reminder.ID),
			slog.String("error", err.Error()),
		)
		if s.reminderMetrics != nil {
			s.reminderMetrics.RecordNotificationFailure(ctx, event.Kind.String(), "save")
		}
		return fmt.Errorf("save: %w", err)
	}

	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordNotificationEmitted(ctx, event.Kind.String())
	}

	slog.InfoContext(ctx, "reminder due soon",
		slog.String("reminder_id", reminder.ID),
		slog.String("owner_id", reminder.OwnerID),
		slog.String("title", reminder.Title),
		slog.Time("due_date", reminder.DueDate),
	)

	return nil
}
