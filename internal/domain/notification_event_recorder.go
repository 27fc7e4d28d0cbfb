package domain

import (
	"context"
	"time"
)

type NotificationEventRecord struct {
	Kind           string
	ReminderID     string
	OwnerID        string
	DistanceMeters float64
	DueDate        time.Time
	OccurredAt     time.Time
}

func NewNotificationEventRecord(ev NotificationEvent) NotificationEventRecord {
	return NotificationEventRecord{
		Kind:           ev.Kind.String(),
		ReminderID:     ev.ReminderID,
		OwnerID:        ev.OwnerID,
		DistanceMeters: ev.DistanceMeters,
		DueDate:        ev.DueDate,
		OccurredAt:     ev.OccurredAt,
	}
}

// NotificationEventRecorder keeps a history of emitted notifications for analysis.
type NotificationEventRecorder interface {
	RecordEvents(ctx context.Context, records []NotificationEventRecord) error
	Flush(ctx context.Context) error
	Close() error
}
