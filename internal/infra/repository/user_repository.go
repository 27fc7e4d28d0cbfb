package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user:email:"
)

type userRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

type userRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) domain.UserRepository {
	return &userRepository{
		client: client,
	}
}

// Create claims the email index with SETNX before writing the document so
// two registrations racing on one address cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" || user.Email == "" {
		return ErrInvalidUserData
	}

	data, err := json.Marshal(userRecord{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
	})
	if err != nil {
		return ErrInvalidUserData
	}

	claimed, err := r.client.SetNX(ctx, userEmailKeyPrefix+user.Email, user.ID, 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return domain.ErrUserAlreadyExists
	}

	if err := r.client.Set(ctx, userKeyPrefix+user.ID, data, 0).Err(); err != nil {
		// Release the email so the user can retry.
		r.client.Del(ctx, userEmailKeyPrefix+user.Email)
		return err
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	data, err := r.client.Get(ctx, userKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var record userRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidUserData
	}

	return &domain.User{
		ID:           record.ID,
		Name:         record.Name,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
	}, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, err := r.client.Get(ctx, userEmailKeyPrefix+domain.NormalizeEmail(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return r.FindByID(ctx, id)
}
