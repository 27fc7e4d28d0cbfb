package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewUserRepository(client)

	t.Run("create and find", func(t *testing.T) {
		testutil.FlushRedis(ctx, t, client)

		user := &domain.User{
			ID:           "user-1",
			Name:         "Alice",
			Email:        "alice@example.com",
			PasswordHash: "hash",
			CreatedAt:    baseTime,
		}
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		byID, err := repo.FindByID(ctx, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if byID.Email != "alice@example.com" || byID.PasswordHash != "hash" {
			t.Errorf("unexpected user: %+v", byID)
		}

		byEmail, err := repo.FindByEmail(ctx, "Alice@Example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if byEmail.ID != "user-1" {
			t.Errorf("expected user-1, got %s", byEmail.ID)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		testutil.FlushRedis(ctx, t, client)

		first := &domain.User{ID: "user-1", Name: "A", Email: "a@example.com", CreatedAt: baseTime}
		second := &domain.User{ID: "user-2", Name: "B", Email: "a@example.com", CreatedAt: baseTime}

		if err := repo.Create(ctx, first); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		if err := repo.Create(ctx, second); !errors.Is(err, domain.ErrUserAlreadyExists) {
			t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
		}

		if _, err := repo.FindByID(ctx, "user-2"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected the duplicate not to be stored, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		testutil.FlushRedis(ctx, t, client)

		if _, err := repo.FindByID(ctx, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestSessionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSessionRepository(client)

	if err := repo.SaveSession(ctx, "token-1", "user-1", time.Hour); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}

	userID, err := repo.GetSessionUserID(ctx, "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %s", userID)
	}

	ttl, err := client.TTL(ctx, "session:token-1").Result()
	if err != nil {
		t.Fatalf("failed to read ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("expected ttl within an hour, got %v", ttl)
	}

	if err := repo.DeleteSession(ctx, "token-1"); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}
	if _, err := repo.GetSessionUserID(ctx, "token-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
