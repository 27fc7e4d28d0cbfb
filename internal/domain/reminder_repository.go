package domain

import "context"

//go:generate mockgen -source=reminder_repository.go -destination=reminder_repository_mock.go -package=domain

// ReminderRepository persists reminders. Find returns matches ordered by due date ascending.
//
// The notified and locationNotified flags belong to MarkNotified and
// MarkLocationNotified. Save keeps the stored flags and only clears one when
// the due date or location it guards has changed.
type ReminderRepository interface {
	Find(ctx context.Context, filter ReminderFilter) ([]*Reminder, error)
	FindByID(ctx context.Context, id string) (*Reminder, error)
	// Create inserts a new reminder and fails with ErrReminderAlreadyExists if the id is taken.
	Create(ctx context.Context, reminder *Reminder) error
	// Save updates an existing reminder and fails with ErrReminderNotFound if it is gone.
	Save(ctx context.Context, reminder *Reminder) error
	// MarkNotified sets notified=true while the stored due date still equals
	// reminder.DueDate, and fails with ErrReminderChanged otherwise.
	MarkNotified(ctx context.Context, reminder *Reminder) error
	// MarkLocationNotified sets locationNotified=true while the stored location
	// still equals reminder.Location, and fails with ErrReminderChanged otherwise.
	MarkLocationNotified(ctx context.Context, reminder *Reminder) error
	Delete(ctx context.Context, reminder *Reminder) error
}
