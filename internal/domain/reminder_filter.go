package domain

import "time"

// ReminderFilter selects reminders. Nil pointer fields are not constrained.
type ReminderFilter struct {
	OwnerID          string
	DueFrom          *time.Time
	DueTo            *time.Time
	Completed        *bool
	Notified         *bool
	LocationNotified *bool
	HasLocation      bool
}

func (f ReminderFilter) Matches(r *Reminder) bool {
	if f.OwnerID != "" && r.OwnerID != f.OwnerID {
		return false
	}
	if f.DueFrom != nil && r.DueDate.Before(*f.DueFrom) {
		return false
	}
	if f.DueTo != nil && r.DueDate.After(*f.DueTo) {
		return false
	}
	if f.Completed != nil && r.Completed != *f.Completed {
		return false
	}
	if f.Notified != nil && r.Notified != *f.Notified {
		return false
	}
	if f.LocationNotified != nil && r.LocationNotified != *f.LocationNotified {
		return false
	}
	if f.HasLocation && r.Location == nil {
		return false
	}
	return true
}

// DueSoonFilter selects reminders the due-time sweep should notify.
func DueSoonFilter(from, to time.Time) ReminderFilter {
	notNotified := false
	notCompleted := false
	return ReminderFilter{
		DueFrom:   &from,
		DueTo:     &to,
		Notified:  &notNotified,
		Completed: &notCompleted,
	}
}

// ProximityCandidateFilter selects reminders a proximity check may trigger.
// An empty ownerID searches every owner.
func ProximityCandidateFilter(ownerID string) ReminderFilter {
	notNotified := false
	notCompleted := false
	return ReminderFilter{
		OwnerID:          ownerID,
		HasLocation:      true,
		LocationNotified: &notNotified,
		Completed:        &notCompleted,
	}
}
