package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

type Service struct {
	reminderRepo domain.ReminderRepository
	now          func() time.Time
}

func NewService(reminderRepo domain.ReminderRepository) *Service {
	return &Service{
		reminderRepo: reminderRepo,
		now:          time.Now,
	}
}

func (s *Service) List(ctx context.Context, ownerID string, opts ListOptions) ([]*domain.Reminder, error) {
	reminders, err := s.reminderRepo.Find(ctx, domain.ReminderFilter{
		OwnerID:   ownerID,
		Completed: opts.Completed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// Get returns ErrReminderNotFound for reminders owned by someone else.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*domain.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder.OwnerID != ownerID {
		return nil, domain.ErrReminderNotFound
	}
	return reminder, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.Reminder, error) {
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}

	reminder, err := domain.NewReminder(domain.NewReminderParams{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		Location:    in.Location,
	}, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	slog.InfoContext(ctx, "reminder created",
		slog.String("reminder_id", reminder.ID),
		slog.String("owner_id", ownerID),
		slog.Bool("has_location", reminder.HasLocation()),
	)

	return reminder, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (*domain.Reminder, error) {
	reminder, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		reminder.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		reminder.Description = strings.TrimSpace(*in.Description)
	}
	if in.DueDate != nil {
		reminder.Reschedule(*in.DueDate)
	}
	if in.Completed != nil {
		reminder.Completed = *in.Completed
	}
	if in.Priority != nil {
		priority, err := domain.ParsePriority(*in.Priority)
		if err != nil {
			return nil, err
		}
		reminder.Priority = priority
	}
	if in.Location.Set {
		reminder.Relocate(in.Location.Value)
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}
	reminder.UpdatedAt = s.now().UTC()

	if err := s.reminderRepo.Save(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to save reminder: %w", err)
	}

	slog.InfoContext(ctx, "reminder updated",
		slog.String("reminder_id", reminder.ID),
		slog.String("owner_id", ownerID),
	)

	return reminder, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	reminder, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.reminderRepo.Delete(ctx, reminder); err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	slog.InfoContext(ctx, "reminder deleted",
		slog.String("reminder_id", id),
		slog.String("owner_id", ownerID),
	)

	return nil
}
