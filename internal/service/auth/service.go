package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

type Service struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	tokenTTL    time.Duration
	bcryptCost  int
	now         func() time.Time
}

func NewService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	tokenTTL time.Duration,
) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokenTTL:    tokenTTL,
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)

	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(name, email, string(hash), s.now())
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
	)

	return s.issueSession(ctx, user)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, domain.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		slog.InfoContext(ctx, "login rejected",
			slog.String("user_id", user.ID),
		)
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

// Authenticate resolves a bearer token to its user. Unknown, expired and
// orphaned tokens all yield ErrSessionNotFound.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	userID, err := s.sessionRepo.GetSessionUserID(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *Service) issueSession(ctx context.Context, user *domain.User) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.SaveSession(ctx, token, user.ID, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &Session{
		User:      user,
		Token:     token,
		ExpiresAt: s.now().Add(s.tokenTTL).UTC(),
	}, nil
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
