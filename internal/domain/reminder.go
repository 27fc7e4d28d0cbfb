package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

type Reminder struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	DueDate          time.Time `json:"due_date"`
	Completed        bool      `json:"completed"`
	Notified         bool      `json:"notified"`
	Priority         Priority  `json:"priority"`
	Location         *Location `json:"location,omitempty"`
	LocationNotified bool      `json:"location_notified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type NewReminderParams struct {
	OwnerID     string
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
	Location    *Location
}

func NewReminder(p NewReminderParams, now time.Time) (*Reminder, error) {
	priority := p.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	r := &Reminder{
		ID:          uuid.NewString(),
		OwnerID:     p.OwnerID,
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		DueDate:     p.DueDate.UTC(),
		Priority:    priority,
		Location:    p.Location,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reminder) Validate() error {
	if r.OwnerID == "" {
		return ErrOwnerRequired
	}
	if r.Title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(r.Title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(r.Description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if r.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	if !r.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reminder) HasLocation() bool {
	return r.Location != nil
}

// IsDueWithin reports whether the reminder is still waiting for its due-time
// notification and falls due in [from, to].
func (r *Reminder) IsDueWithin(from, to time.Time) bool {
	if r.Notified || r.Completed {
		return false
	}
	return !r.DueDate.Before(from) && !r.DueDate.After(to)
}

// AwaitsLocationTrigger reports whether a proximity match may still fire.
func (r *Reminder) AwaitsLocationTrigger() bool {
	return r.Location != nil && !r.LocationNotified && !r.Completed
}

func (r *Reminder) MarkNotified(now time.Time) {
	r.Notified = true
	r.UpdatedAt = now.UTC()
}

func (r *Reminder) MarkLocationNotified(now time.Time) {
	r.LocationNotified = true
	r.UpdatedAt = now.UTC()
}

// Reschedule moves the due date and re-arms the due-time notification.
func (r *Reminder) Reschedule(dueDate time.Time) {
	if r.DueDate.Equal(dueDate) {
		return
	}
	r.DueDate = dueDate.UTC()
	r.Notified = false
}

// Relocate replaces the location and re-arms the proximity notification when it changed.
func (r *Reminder) Relocate(loc *Location) {
	if r.Location.Equal(loc) {
		return
	}
	r.Location = loc
	r.LocationNotified = false
}
