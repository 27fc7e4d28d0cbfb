package domain

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   LocationInput
		wantNil bool
		wantErr error
		want    *Location
	}{
		{
			name:    "no fields is accepted as no location",
			input:   LocationInput{},
			wantNil: true,
		},
		{
			name:    "blank name only is treated as empty",
			input:   LocationInput{Name: ptr("   ")},
			wantNil: true,
		},
		{
			name:    "latitude only is rejected",
			input:   LocationInput{Latitude: ptr(37.7749)},
			wantErr: ErrPartialLocation,
		},
		{
			name:    "name and latitude without longitude is rejected",
			input:   LocationInput{Name: ptr("Office"), Latitude: ptr(37.7749)},
			wantErr: ErrPartialLocation,
		},
		{
			name:    "coordinates without name is rejected",
			input:   LocationInput{Latitude: ptr(37.7749), Longitude: ptr(-122.4194)},
			wantErr: ErrPartialLocation,
		},
		{
			name:  "full location gets default radius",
			input: LocationInput{Name: ptr(" Office "), Latitude: ptr(37.7749), Longitude: ptr(-122.4194)},
			want:  &Location{Name: "Office", Latitude: 37.7749, Longitude: -122.4194, Radius: DefaultRadiusMeters},
		},
		{
			name:  "explicit radius is kept",
			input: LocationInput{Name: ptr("Gym"), Latitude: ptr(0.0), Longitude: ptr(0.0), Radius: ptr(250.0)},
			want:  &Location{Name: "Gym", Latitude: 0, Longitude: 0, Radius: 250},
		},
		{
			name:    "latitude out of range",
			input:   LocationInput{Name: ptr("X"), Latitude: ptr(91.0), Longitude: ptr(0.0)},
			wantErr: ErrInvalidLatitude,
		},
		{
			name:    "longitude out of range",
			input:   LocationInput{Name: ptr("X"), Latitude: ptr(0.0), Longitude: ptr(-180.5)},
			wantErr: ErrInvalidLongitude,
		},
		{
			name:    "radius below minimum",
			input:   LocationInput{Name: ptr("X"), Latitude: ptr(0.0), Longitude: ptr(0.0), Radius: ptr(5.0)},
			wantErr: ErrInvalidRadius,
		},
		{
			name:    "radius above maximum",
			input:   LocationInput{Name: ptr("X"), Latitude: ptr(0.0), Longitude: ptr(0.0), Radius: ptr(5001.0)},
			wantErr: ErrInvalidRadius,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLocation(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if got != nil {
					t.Errorf("expected nil location on error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil location, got %+v", got)
				}
				return
			}
			if *got != *tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLocationEffectiveRadius(t *testing.T) {
	if r := (&Location{Radius: 0}).EffectiveRadius(); r != DefaultRadiusMeters {
		t.Errorf("expected default radius for zero value, got %v", r)
	}
	if r := (&Location{Radius: 300}).EffectiveRadius(); r != 300 {
		t.Errorf("expected 300, got %v", r)
	}
}

func TestLocationEqual(t *testing.T) {
	a := &Location{Name: "A", Latitude: 1, Longitude: 2, Radius: 100}
	b := &Location{Name: "A", Latitude: 1, Longitude: 2, Radius: 100}
	var none *Location

	if !a.Equal(b) {
		t.Error("expected equal locations")
	}
	if a.Equal(none) || none.Equal(a) {
		t.Error("expected location and nil to differ")
	}
	if !none.Equal(nil) {
		t.Error("expected nil locations to be equal")
	}
}
