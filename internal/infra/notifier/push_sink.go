package notifier

import (
	"context"
	"fmt"
	"math"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/infra/taskqueue"
)

// PushSink hands notifications to the push delivery worker through the task queue.
type PushSink struct {
	queue taskqueue.TaskQueue
}

func NewPushSink(queue taskqueue.TaskQueue) *PushSink {
	return &PushSink{queue: queue}
}

func (s *PushSink) Emit(ctx context.Context, event domain.NotificationEvent) error {
	if _, err := s.queue.EnqueueNotification(ctx, toTask(event)); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

func toTask(event domain.NotificationEvent) *taskqueue.NotificationTask {
	return &taskqueue.NotificationTask{
		ReminderID:     event.ReminderID,
		OwnerID:        event.OwnerID,
		Kind:           event.Kind.String(),
		Title:          event.Title,
		Description:    event.Description,
		DueDate:        event.DueDate,
		LocationName:   event.LocationName,
		DistanceMeters: int64(math.Round(event.DistanceMeters)),
	}
}
