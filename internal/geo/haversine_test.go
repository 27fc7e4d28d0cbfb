package geo

import (
	"math"
	"testing"
)

func TestDistanceSamePointIsZero(t *testing.T) {
	points := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 37.7749, Lon: -122.4194},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 90, Lon: 0},
		{Lat: -90, Lon: 180},
	}

	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	pairs := []struct {
		a, b Point
	}{
		{Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 1}},
		{Point{Lat: 37.7749, Lon: -122.4194}, Point{Lat: 34.0522, Lon: -118.2437}},
		{Point{Lat: 51.5074, Lon: -0.1278}, Point{Lat: 35.6762, Lon: 139.6503}},
		{Point{Lat: -45, Lon: 179.9}, Point{Lat: -45, Lon: -179.9}},
	}

	for _, p := range pairs {
		ab := Distance(p.a, p.b)
		ba := Distance(p.b, p.a)
		if math.Abs(ab-ba) > 1e-6 {
			t.Errorf("Distance not symmetric: %v -> %v = %v, reverse = %v", p.a, p.b, ab, ba)
		}
	}
}

func TestDistanceKnownFixtures(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		expected  float64
		tolerance float64
	}{
		{
			name:      "one degree of longitude on the equator",
			a:         Point{Lat: 0, Lon: 0},
			b:         Point{Lat: 0, Lon: 1},
			expected:  111195,
			tolerance: 50,
		},
		{
			name:      "one degree of latitude",
			a:         Point{Lat: 0, Lon: 0},
			b:         Point{Lat: 1, Lon: 0},
			expected:  111195,
			tolerance: 50,
		},
		{
			name:      "short hop in San Francisco",
			a:         Point{Lat: 37.7749, Lon: -122.4194},
			b:         Point{Lat: 37.7750, Lon: -122.4195},
			expected:  14,
			tolerance: 2,
		},
		{
			name:      "San Francisco to Los Angeles",
			a:         Point{Lat: 37.7749, Lon: -122.4194},
			b:         Point{Lat: 34.0522, Lon: -118.2437},
			expected:  559120,
			tolerance: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("Distance() = %.1f, want %.1f ± %.1f", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	center := Point{Lat: 37.7749, Lon: -122.4194}

	near := Point{Lat: 37.7750, Lon: -122.4195}
	if ok, d := Within(center, near, 100); !ok {
		t.Errorf("expected point %.1fm away to be within 100m", d)
	}

	// ~0.0045 degrees of latitude is ~500m
	far := Point{Lat: 37.7794, Lon: -122.4194}
	if ok, d := Within(center, far, 100); ok {
		t.Errorf("expected point %.1fm away to be outside 100m", d)
	}
}
