package auth

import (
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

const (
	DefaultTokenTTL   = 30 * 24 * time.Hour
	MinPasswordLength = 6
	// MaxPasswordBytes is the bcrypt input limit. It counts bytes, not runes.
	MaxPasswordBytes = 72

	tokenBytes = 32
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is the result of a successful register or login.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}
