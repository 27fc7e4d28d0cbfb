package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultRadiusMeters = 100
	MinRadiusMeters     = 10
	MaxRadiusMeters     = 5000
	MaxLocationNameLen  = 200
)

// Location is the place a reminder is attached to. A reminder either has no
// location (nil) or a complete one; there is no partially filled Location.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// LocationInput carries the optional location fields as they arrive from a client.
type LocationInput struct {
	Name      *string
	Latitude  *float64
	Longitude *float64
	Radius    *float64
}

// IsEmpty reports whether none of name, latitude and longitude is present.
func (in LocationInput) IsEmpty() bool {
	return !in.hasName() && in.Latitude == nil && in.Longitude == nil
}

func (in LocationInput) hasName() bool {
	return in.Name != nil && strings.TrimSpace(*in.Name) != ""
}

// NewLocation builds a Location from optional fields. It returns (nil, nil)
// when none of name, latitude and longitude is set, and ErrPartialLocation
// when only some of them are.
func NewLocation(in LocationInput) (*Location, error) {
	if in.IsEmpty() {
		return nil, nil
	}
	if !in.hasName() || in.Latitude == nil || in.Longitude == nil {
		return nil, ErrPartialLocation
	}

	loc := &Location{
		Name:      strings.TrimSpace(*in.Name),
		Latitude:  *in.Latitude,
		Longitude: *in.Longitude,
		Radius:    DefaultRadiusMeters,
	}
	if in.Radius != nil {
		loc.Radius = *in.Radius
	}

	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}

func (l *Location) Validate() error {
	if utf8.RuneCountInString(l.Name) > MaxLocationNameLen {
		return ErrLocationNameTooLong
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return ErrInvalidLongitude
	}
	if l.Radius < MinRadiusMeters || l.Radius > MaxRadiusMeters {
		return ErrInvalidRadius
	}
	return nil
}

// EffectiveRadius falls back to DefaultRadiusMeters for records stored without a radius.
func (l *Location) EffectiveRadius() float64 {
	if l.Radius <= 0 {
		return DefaultRadiusMeters
	}
	return l.Radius
}

func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return l == other
	}
	return *l == *other
}
