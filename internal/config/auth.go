package config

import (
	"os"
	"strconv"
	"time"
)

const (
	authTokenTTLHoursEnv = "AUTH_TOKEN_TTL_HOURS"

	defaultAuthTokenTTLHours = 30 * 24
)

type AuthConfig struct {
	TokenTTL time.Duration
}

func LoadAuthConfig() (*AuthConfig, error) {
	hours := defaultAuthTokenTTLHours
	if v := os.Getenv(authTokenTTLHoursEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidTokenTTL
		}
		hours = parsed
	}

	return &AuthConfig{
		TokenTTL: time.Duration(hours) * time.Hour,
	}, nil
}
