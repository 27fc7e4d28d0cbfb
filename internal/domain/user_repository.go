package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=user_repository.go -destination=user_repository_mock.go -package=domain

type UserRepository interface {
	// Create fails with ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type SessionRepository interface {
	SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error
	// GetSessionUserID returns ErrSessionNotFound for unknown or expired tokens.
	GetSessionUserID(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}
