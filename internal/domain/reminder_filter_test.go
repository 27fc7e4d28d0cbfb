package domain

import (
	"testing"
	"time"
)

func TestDueSoonFilterMatches(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	filter := DueSoonFilter(now, now.Add(5*time.Minute))

	tests := []struct {
		name     string
		reminder Reminder
		expected bool
	}{
		{name: "due soon", reminder: Reminder{DueDate: now.Add(3 * time.Minute)}, expected: true},
		{name: "notified", reminder: Reminder{DueDate: now.Add(3 * time.Minute), Notified: true}, expected: false},
		{name: "completed", reminder: Reminder{DueDate: now.Add(3 * time.Minute), Completed: true}, expected: false},
		{name: "too late", reminder: Reminder{DueDate: now.Add(10 * time.Minute)}, expected: false},
		{name: "in the past", reminder: Reminder{DueDate: now.Add(-time.Minute)}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Matches(&tt.reminder); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestProximityCandidateFilterMatches(t *testing.T) {
	loc := &Location{Name: "Office", Latitude: 37.7749, Longitude: -122.4194, Radius: 100}

	tests := []struct {
		name     string
		ownerID  string
		reminder Reminder
		expected bool
	}{
		{name: "candidate", reminder: Reminder{OwnerID: "u1", Location: loc}, expected: true},
		{name: "no location", reminder: Reminder{OwnerID: "u1"}, expected: false},
		{name: "already triggered", reminder: Reminder{OwnerID: "u1", Location: loc, LocationNotified: true}, expected: false},
		{name: "completed", reminder: Reminder{OwnerID: "u1", Location: loc, Completed: true}, expected: false},
		{name: "scoped to owner", ownerID: "u1", reminder: Reminder{OwnerID: "u1", Location: loc}, expected: true},
		{name: "other owner", ownerID: "u2", reminder: Reminder{OwnerID: "u1", Location: loc}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := ProximityCandidateFilter(tt.ownerID)
			if got := filter.Matches(&tt.reminder); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}
