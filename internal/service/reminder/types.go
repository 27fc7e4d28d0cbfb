package reminder

import (
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

type CreateInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    string
	Location    *domain.Location
}

// LocationUpdate replaces the reminder's location when Set is true.
// A nil Value with Set clears it.
type LocationUpdate struct {
	Set   bool
	Value *domain.Location
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
	Priority    *string
	Location    LocationUpdate
}

type ListOptions struct {
	Completed *bool
}
