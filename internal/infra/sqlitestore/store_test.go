package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

var baseTime = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "reminders.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})
	return store
}

func newReminder(id, owner string, due time.Time, loc *domain.Location) *domain.Reminder {
	return &domain.Reminder{
		ID:        id,
		OwnerID:   owner,
		Title:     "reminder " + id,
		DueDate:   due,
		Priority:  domain.PriorityMedium,
		Location:  loc,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

func TestReminderRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(openTestStore(t))

	loc := &domain.Location{Name: "Office", Latitude: 37.7749, Longitude: -122.4194, Radius: 150}
	reminder := newReminder("r-1", "user-1", baseTime.Add(90*time.Second), loc)
	reminder.Priority = domain.PriorityHigh

	if err := repo.Create(ctx, reminder); err != nil {
		t.Fatalf("failed to create reminder: %v", err)
	}

	got, err := repo.FindByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.DueDate.Equal(reminder.DueDate) || got.Priority != domain.PriorityHigh {
		t.Errorf("unexpected reminder: %+v", got)
	}
	if !got.Location.Equal(loc) {
		t.Errorf("expected location %+v, got %+v", loc, got.Location)
	}

	reminder.MarkLocationNotified(baseTime.Add(time.Minute))
	reminder.Relocate(nil)
	if err := repo.Save(ctx, reminder); err != nil {
		t.Fatalf("failed to update reminder: %v", err)
	}

	got, err = repo.FindByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location != nil {
		t.Errorf("expected location to be cleared, got %+v", got.Location)
	}
	if !got.UpdatedAt.Equal(baseTime.Add(time.Minute)) {
		t.Errorf("expected updated_at to change, got %v", got.UpdatedAt)
	}
}

func TestReminderRepositoryFind(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(openTestStore(t))

	loc := &domain.Location{Name: "Gym", Latitude: 35.0, Longitude: 139.0, Radius: 100}

	dueSoon := newReminder("due-soon", "user-1", baseTime.Add(3*time.Minute), nil)
	later := newReminder("later", "user-1", baseTime.Add(2*time.Hour), loc)
	notified := newReminder("notified", "user-2", baseTime.Add(2*time.Minute), nil)
	notified.Notified = true
	completed := newReminder("completed", "user-2", baseTime.Add(4*time.Minute), loc)
	completed.Completed = true
	located := newReminder("located", "user-2", baseTime.Add(-time.Hour), loc)

	for _, r := range []*domain.Reminder{dueSoon, later, notified, completed, located} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("failed to create %s: %v", r.ID, err)
		}
	}

	tests := []struct {
		name     string
		filter   domain.ReminderFilter
		expected []string
	}{
		{
			name:     "due soon window",
			filter:   domain.DueSoonFilter(baseTime, baseTime.Add(5*time.Minute)),
			expected: []string{"due-soon"},
		},
		{
			name:     "owner sorted by due date",
			filter:   domain.ReminderFilter{OwnerID: "user-2"},
			expected: []string{"located", "notified", "completed"},
		},
		{
			name:     "proximity candidates",
			filter:   domain.ProximityCandidateFilter(""),
			expected: []string{"located", "later"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Find(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d reminders, got %d", len(tt.expected), len(got))
			}
			for i, id := range tt.expected {
				if got[i].ID != id {
					t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestReminderRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(openTestStore(t))

	reminder := newReminder("r-1", "user-1", baseTime, nil)
	if err := repo.Create(ctx, reminder); err != nil {
		t.Fatalf("failed to create reminder: %v", err)
	}

	if err := repo.Delete(ctx, reminder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, reminder); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected ErrReminderNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, "r-1"); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected ErrReminderNotFound, got %v", err)
	}
}

func TestReminderRepositoryCreateAndSaveScope(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(openTestStore(t))

	reminder := newReminder("r-1", "user-1", baseTime, nil)
	if err := repo.Save(ctx, reminder); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected Save of an unknown reminder to fail with ErrReminderNotFound, got %v", err)
	}
	if err := repo.Create(ctx, reminder); err != nil {
		t.Fatalf("failed to create reminder: %v", err)
	}
	if err := repo.Create(ctx, reminder); !errors.Is(err, domain.ErrReminderAlreadyExists) {
		t.Errorf("expected ErrReminderAlreadyExists, got %v", err)
	}
}

func TestReminderRepositoryMarkNotifiedAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(openTestStore(t))

	loc := &domain.Location{Name: "Office", Latitude: 37.7749, Longitude: -122.4194, Radius: 150}
	if err := repo.Create(ctx, newReminder("r-1", "user-1", baseTime.Add(time.Minute), loc)); err != nil {
		t.Fatalf("failed to create reminder: %v", err)
	}

	found, err := repo.Find(ctx, domain.ReminderFilter{OwnerID: "user-1"})
	if err != nil || len(found) != 1 {
		t.Fatalf("unexpected find result: %v, %v", found, err)
	}
	loaded := found[0]

	if err := repo.Delete(ctx, loaded); err != nil {
		t.Fatalf("failed to delete reminder: %v", err)
	}

	loaded.MarkNotified(baseTime.Add(2 * time.Minute))
	if err := repo.MarkNotified(ctx, loaded); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected ErrReminderNotFound, got %v", err)
	}
	loaded.MarkLocationNotified(baseTime.Add(2 * time.Minute))
	if err := repo.MarkLocationNotified(ctx, loaded); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected ErrReminderNotFound, got %v", err)
	}

	if _, err := repo.FindByID(ctx, "r-1"); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected deleted reminder to stay deleted, got %v", err)
	}
}

func TestReminderRepositoryMarkNotifiedAfterEdit(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(openTestStore(t))

	loc := &domain.Location{Name: "Office", Latitude: 37.7749, Longitude: -122.4194, Radius: 150}
	if err := repo.Create(ctx, newReminder("r-1", "user-1", baseTime.Add(time.Minute), loc)); err != nil {
		t.Fatalf("failed to create reminder: %v", err)
	}

	loaded, err := repo.FindByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edited := *loaded
	edited.Title = "moved"
	edited.DueDate = baseTime.Add(24 * time.Hour)
	edited.Location = &domain.Location{Name: "Home", Latitude: 35.0, Longitude: 139.0, Radius: 100}
	if err := repo.Save(ctx, &edited); err != nil {
		t.Fatalf("failed to save edit: %v", err)
	}

	loaded.MarkNotified(baseTime.Add(2 * time.Minute))
	if err := repo.MarkNotified(ctx, loaded); !errors.Is(err, domain.ErrReminderChanged) {
		t.Errorf("expected ErrReminderChanged, got %v", err)
	}
	loaded.MarkLocationNotified(baseTime.Add(2 * time.Minute))
	if err := repo.MarkLocationNotified(ctx, loaded); !errors.Is(err, domain.ErrReminderChanged) {
		t.Errorf("expected ErrReminderChanged, got %v", err)
	}

	got, err := repo.FindByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "moved" || !got.DueDate.Equal(edited.DueDate) || !got.Location.Equal(edited.Location) {
		t.Errorf("edit was overwritten: %+v", got)
	}
	if got.Notified || got.LocationNotified {
		t.Errorf("edited reminder must stay armed: %+v", got)
	}
}

func TestReminderRepositorySaveKeepsNotificationFlags(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(openTestStore(t))

	loc := &domain.Location{Name: "Office", Latitude: 37.7749, Longitude: -122.4194, Radius: 150}
	reminder := newReminder("r-1", "user-1", baseTime.Add(time.Minute), loc)
	if err := repo.Create(ctx, reminder); err != nil {
		t.Fatalf("failed to create reminder: %v", err)
	}

	// An editor holding a copy loaded before the flags were written.
	stale := *reminder

	reminder.MarkNotified(baseTime.Add(time.Minute))
	if err := repo.MarkNotified(ctx, reminder); err != nil {
		t.Fatalf("failed to mark notified: %v", err)
	}
	reminder.MarkLocationNotified(baseTime.Add(time.Minute))
	if err := repo.MarkLocationNotified(ctx, reminder); err != nil {
		t.Fatalf("failed to mark location notified: %v", err)
	}

	stale.Title = "renamed"
	if err := repo.Save(ctx, &stale); err != nil {
		t.Fatalf("failed to save edit: %v", err)
	}

	got, err := repo.FindByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "renamed" {
		t.Errorf("expected title to change, got %q", got.Title)
	}
	if !got.Notified || !got.LocationNotified {
		t.Errorf("expected flags to survive an unrelated edit: %+v", got)
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestStore(t))

	user := &domain.User{ID: "user-1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: baseTime}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	dup := &domain.User{ID: "user-2", Name: "Eve", Email: "alice@example.com", PasswordHash: "x", CreatedAt: baseTime}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}

	got, err := repo.FindByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "user-1" || !got.CreatedAt.Equal(baseTime) {
		t.Errorf("unexpected user: %+v", got)
	}

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	repo := &sessionRepository{db: store.db, now: func() time.Time { return baseTime }}

	if err := repo.SaveSession(ctx, "tok", "user-1", time.Hour); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}

	userID, err := repo.GetSessionUserID(ctx, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %s", userID)
	}

	repo.now = func() time.Time { return baseTime.Add(2 * time.Hour) }
	if _, err := repo.GetSessionUserID(ctx, "tok"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}
