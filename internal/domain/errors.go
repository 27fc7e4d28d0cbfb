package domain

import "errors"

var (
	ErrReminderNotFound      = errors.New("reminder not found")
	ErrReminderAlreadyExists = errors.New("reminder already exists")
	ErrReminderChanged       = errors.New("reminder was rescheduled or moved since it was loaded")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrSessionNotFound       = errors.New("session not found")
	ErrInvalidCredentials    = errors.New("invalid email or password")

	ErrOwnerRequired      = errors.New("owner is required")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title cannot be more than 100 characters")
	ErrDescriptionTooLong = errors.New("description cannot be more than 500 characters")
	ErrDueDateRequired    = errors.New("due date is required")
	ErrInvalidPriority    = errors.New("priority must be one of low, medium, high")

	ErrPartialLocation     = errors.New("location must include name, latitude, and longitude, or be empty")
	ErrLocationNameTooLong = errors.New("location name cannot be more than 200 characters")
	ErrInvalidLatitude     = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude    = errors.New("longitude must be between -180 and 180")
	ErrInvalidRadius       = errors.New("radius must be between 10 and 5000 meters")
)

// IsValidationError reports whether err is one of the reminder/location validation errors.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrOwnerRequired, ErrTitleRequired, ErrTitleTooLong, ErrDescriptionTooLong,
		ErrDueDateRequired, ErrInvalidPriority, ErrPartialLocation, ErrLocationNameTooLong,
		ErrInvalidLatitude, ErrInvalidLongitude, ErrInvalidRadius,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
