package notifier

import (
	"context"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

// RecordingSink appends every notification to the event history.
type RecordingSink struct {
	recorder domain.NotificationEventRecorder
}

func NewRecordingSink(recorder domain.NotificationEventRecorder) *RecordingSink {
	return &RecordingSink{recorder: recorder}
}

func (s *RecordingSink) Emit(ctx context.Context, event domain.NotificationEvent) error {
	return s.recorder.RecordEvents(ctx, []domain.NotificationEventRecord{
		domain.NewNotificationEventRecord(event),
	})
}
