package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

var fixedNow = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

func newTestService(repo domain.ReminderRepository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func ptr[T any](v T) *T {
	return &v
}

func storedReminder() *domain.Reminder {
	return &domain.Reminder{
		ID:        "reminder-1",
		OwnerID:   "user-1",
		Title:     "Dentist",
		DueDate:   fixedNow.Add(24 * time.Hour),
		Priority:  domain.PriorityHigh,
		Notified:  true,
		CreatedAt: fixedNow.Add(-time.Hour),
		UpdatedAt: fixedNow.Add(-time.Hour),
		Location: &domain.Location{
			Name: "Clinic", Latitude: 35.0, Longitude: 139.0, Radius: 200,
		},
		LocationNotified: true,
	}
}

func TestCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockReminderRepository(ctrl)
	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *domain.Reminder) error {
			if r.OwnerID != "user-1" {
				t.Errorf("unexpected owner: %s", r.OwnerID)
			}
			if r.Priority != domain.PriorityMedium {
				t.Errorf("expected default priority, got %s", r.Priority)
			}
			return nil
		})

	svc := newTestService(mockRepo)

	r, err := svc.Create(context.Background(), "user-1", CreateInput{
		Title:   "  Call mom ",
		DueDate: fixedNow.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Call mom" {
		t.Errorf("expected trimmed title, got %q", r.Title)
	}
	if !r.CreatedAt.Equal(fixedNow) {
		t.Errorf("unexpected created_at: %v", r.CreatedAt)
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockReminderRepository(ctrl)
	svc := newTestService(mockRepo)

	tests := []struct {
		name    string
		input   CreateInput
		wantErr error
	}{
		{name: "missing title", input: CreateInput{DueDate: fixedNow}, wantErr: domain.ErrTitleRequired},
		{name: "missing due date", input: CreateInput{Title: "x"}, wantErr: domain.ErrDueDateRequired},
		{name: "bad priority", input: CreateInput{Title: "x", DueDate: fixedNow, Priority: "urgent"}, wantErr: domain.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGet_OtherOwnerIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockReminderRepository(ctrl)
	mockRepo.EXPECT().FindByID(gomock.Any(), "reminder-1").Return(storedReminder(), nil)

	svc := newTestService(mockRepo)

	_, err := svc.Get(context.Background(), "user-2", "reminder-1")
	if !errors.Is(err, domain.ErrReminderNotFound) {
		t.Fatalf("expected ErrReminderNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	newDue := fixedNow.Add(48 * time.Hour)
	newLocation := &domain.Location{Name: "New clinic", Latitude: 35.1, Longitude: 139.1, Radius: 100}

	tests := []struct {
		name   string
		input  UpdateInput
		verify func(t *testing.T, r *domain.Reminder)
	}{
		{
			name:  "title and completed",
			input: UpdateInput{Title: ptr(" Dentist appt "), Completed: ptr(true)},
			verify: func(t *testing.T, r *domain.Reminder) {
				if r.Title != "Dentist appt" || !r.Completed {
					t.Errorf("unexpected reminder: %+v", r)
				}
				if !r.Notified || !r.LocationNotified {
					t.Error("unrelated updates must keep notification flags")
				}
			},
		},
		{
			name:  "rescheduling re-arms due notification",
			input: UpdateInput{DueDate: &newDue},
			verify: func(t *testing.T, r *domain.Reminder) {
				if !r.DueDate.Equal(newDue) || r.Notified {
					t.Errorf("expected rescheduled and unnotified, got %+v", r)
				}
			},
		},
		{
			name:  "moving the location re-arms proximity",
			input: UpdateInput{Location: LocationUpdate{Set: true, Value: newLocation}},
			verify: func(t *testing.T, r *domain.Reminder) {
				if !r.Location.Equal(newLocation) || r.LocationNotified {
					t.Errorf("expected relocated and armed, got %+v", r)
				}
			},
		},
		{
			name:  "clearing the location",
			input: UpdateInput{Location: LocationUpdate{Set: true}},
			verify: func(t *testing.T, r *domain.Reminder) {
				if r.Location != nil {
					t.Errorf("expected no location, got %+v", r.Location)
				}
			},
		},
		{
			name:  "priority change",
			input: UpdateInput{Priority: ptr("low")},
			verify: func(t *testing.T, r *domain.Reminder) {
				if r.Priority != domain.PriorityLow {
					t.Errorf("expected low priority, got %s", r.Priority)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := domain.NewMockReminderRepository(ctrl)
			mockRepo.EXPECT().FindByID(gomock.Any(), "reminder-1").Return(storedReminder(), nil)
			mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

			svc := newTestService(mockRepo)

			r, err := svc.Update(context.Background(), "user-1", "reminder-1", tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.UpdatedAt.Equal(fixedNow) {
				t.Errorf("expected updated_at to be bumped, got %v", r.UpdatedAt)
			}
			tt.verify(t, r)
		})
	}
}

func TestUpdate_RejectsInvalidValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockReminderRepository(ctrl)
	mockRepo.EXPECT().FindByID(gomock.Any(), "reminder-1").Return(storedReminder(), nil)

	svc := newTestService(mockRepo)

	_, err := svc.Update(context.Background(), "user-1", "reminder-1", UpdateInput{Title: ptr("")})
	if !errors.Is(err, domain.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockReminderRepository(ctrl)
	mockRepo.EXPECT().FindByID(gomock.Any(), "reminder-1").Return(storedReminder(), nil)
	mockRepo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *domain.Reminder) error {
			if r.ID != "reminder-1" {
				t.Errorf("unexpected reminder deleted: %s", r.ID)
			}
			return nil
		})

	svc := newTestService(mockRepo)

	if err := svc.Delete(context.Background(), "user-1", "reminder-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockReminderRepository(ctrl)
	mockRepo.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, domain.ErrReminderNotFound)

	svc := newTestService(mockRepo)

	err := svc.Delete(context.Background(), "user-1", "missing")
	if !errors.Is(err, domain.ErrReminderNotFound) {
		t.Fatalf("expected ErrReminderNotFound, got %v", err)
	}
}

func TestList_PassesOwnerAndCompletedFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockReminderRepository(ctrl)
	mockRepo.EXPECT().
		Find(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f domain.ReminderFilter) ([]*domain.Reminder, error) {
			if f.OwnerID != "user-1" {
				t.Errorf("unexpected owner filter: %q", f.OwnerID)
			}
			if f.Completed == nil || *f.Completed {
				t.Error("expected completed=false filter")
			}
			return []*domain.Reminder{storedReminder()}, nil
		})

	svc := newTestService(mockRepo)

	reminders, err := svc.List(context.Background(), "user-1", ListOptions{Completed: ptr(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reminders) != 1 {
		t.Errorf("expected 1 reminder, got %d", len(reminders))
	}
}
