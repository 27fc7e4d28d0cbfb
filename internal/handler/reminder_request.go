package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/service/reminder"
)

type LocationRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=200"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Radius    *float64 `json:"radius" binding:"omitempty,min=10,max=5000"`
}

func (r *LocationRequest) toDomain() (*domain.Location, error) {
	if r == nil {
		return nil, nil
	}
	return domain.NewLocation(domain.LocationInput{
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Radius:    r.Radius,
	})
}

// OptionalLocation tells an absent "location" key apart from an explicit null.
type OptionalLocation struct {
	Set   bool
	Value *LocationRequest
}

func (o *OptionalLocation) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	o.Value = &LocationRequest{}
	return json.Unmarshal(data, o.Value)
}

type CreateReminderRequest struct {
	Title       string           `json:"title" binding:"required,max=100"`
	Description string           `json:"description" binding:"max=500"`
	DueDate     *time.Time       `json:"due_date" binding:"required"`
	Priority    string           `json:"priority" binding:"omitempty,oneof=low medium high"`
	Location    *LocationRequest `json:"location"`
}

func (r *CreateReminderRequest) toInput() (reminder.CreateInput, error) {
	loc, err := r.Location.toDomain()
	if err != nil {
		return reminder.CreateInput{}, err
	}
	return reminder.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     *r.DueDate,
		Priority:    r.Priority,
		Location:    loc,
	}, nil
}

type UpdateReminderRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	DueDate     *time.Time       `json:"due_date"`
	Completed   *bool            `json:"completed"`
	Priority    *string          `json:"priority" binding:"omitempty,oneof=low medium high"`
	Location    OptionalLocation `json:"location"`
}

func (r *UpdateReminderRequest) toInput() (reminder.UpdateInput, error) {
	in := reminder.UpdateInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Completed:   r.Completed,
		Priority:    r.Priority,
	}

	if r.Location.Set {
		loc, err := r.Location.Value.toDomain()
		if err != nil {
			return reminder.UpdateInput{}, err
		}
		in.Location = reminder.LocationUpdate{Set: true, Value: loc}
	}

	return in, nil
}

type ListRemindersQuery struct {
	Completed *bool `form:"completed"`
}

type CheckLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}
