package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification.go -destination=notification_mock.go -package=domain

// EventKind identifies which check produced a notification.
type EventKind string

const (
	EventKindDueSoon      EventKind = "due_soon"
	EventKindNearLocation EventKind = "near_location"
)

func (k EventKind) String() string {
	return string(k)
}

type NotificationEvent struct {
	Kind         EventKind
	ReminderID   string
	OwnerID      string
	Title        string
	Description  string
	DueDate      time.Time
	LocationName string
	// DistanceMeters is set for near_location events only.
	DistanceMeters float64
	OccurredAt     time.Time
}

func NewDueSoonEvent(r *Reminder, now time.Time) NotificationEvent {
	return NotificationEvent{
		Kind:        EventKindDueSoon,
		ReminderID:  r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		OccurredAt:  now.UTC(),
	}
}

func NewNearLocationEvent(r *Reminder, distance float64, now time.Time) NotificationEvent {
	ev := NotificationEvent{
		Kind:           EventKindNearLocation,
		ReminderID:     r.ID,
		OwnerID:        r.OwnerID,
		Title:          r.Title,
		Description:    r.Description,
		DueDate:        r.DueDate,
		DistanceMeters: distance,
		OccurredAt:     now.UTC(),
	}
	if r.Location != nil {
		ev.LocationName = r.Location.Name
	}
	return ev
}

// NotificationSink surfaces a notification to the owner (log line, push task, ...).
type NotificationSink interface {
	Emit(ctx context.Context, event NotificationEvent) error
}
