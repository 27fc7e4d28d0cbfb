package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "TASK_QUEUE_NAME", "TASK_QUEUE_MAX_RETRIES",
		"STORE_BACKEND", "SQLITE_PATH", "REDIS_ADDR", "REDIS_DB",
		"SWEEP_SCHEDULE", "SWEEP_LOOKAHEAD_MINUTES", "SWEEP_DISABLED", "SWEEP_TOKEN", "AUTH_TOKEN_TTL_HOURS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.Store.Backend != StoreBackendRedis {
		t.Errorf("expected redis backend, got %s", cfg.Store.Backend)
	}
	if cfg.Redis.Addr != defaultRedisAddr {
		t.Errorf("expected default redis addr, got %s", cfg.Redis.Addr)
	}
	if cfg.Sweep.Schedule != "* * * * *" {
		t.Errorf("expected every-minute schedule, got %q", cfg.Sweep.Schedule)
	}
	if cfg.Sweep.Lookahead != 5*time.Minute {
		t.Errorf("expected 5m lookahead, got %v", cfg.Sweep.Lookahead)
	}
	if cfg.Sweep.Token != "" {
		t.Error("expected no sweep token by default")
	}
	if cfg.Auth.TokenTTL != 30*24*time.Hour {
		t.Errorf("expected 30 day token ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.TaskQueue.MaxRetries != 3 || cfg.TaskQueue.QueueName != "default" {
		t.Errorf("unexpected task queue config: %+v", cfg.TaskQueue)
	}

	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadSweepToken(t *testing.T) {
	t.Setenv("SWEEP_TOKEN", "operator-secret")

	cfg, err := LoadSweepConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Token != "operator-secret" {
		t.Errorf("expected sweep token to be loaded, got %q", cfg.Token)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "bad redis db", env: map[string]string{"REDIS_DB": "x"}, wantErr: ErrInvalidRedisDB},
		{name: "negative redis db", env: map[string]string{"REDIS_DB": "-1"}, wantErr: ErrInvalidRedisDB},
		{name: "bad redis pool size", env: map[string]string{"REDIS_POOL_SIZE": "many"}, wantErr: ErrInvalidRedisPoolSize},
		{name: "bad redis dial timeout", env: map[string]string{"REDIS_DIAL_TIMEOUT_SECONDS": "0"}, wantErr: ErrInvalidRedisDialTimeout},
		{name: "bad lookahead", env: map[string]string{"SWEEP_LOOKAHEAD_MINUTES": "0"}, wantErr: ErrInvalidSweepLookahead},
		{name: "bad token ttl", env: map[string]string{"AUTH_TOKEN_TTL_HOURS": "-1"}, wantErr: ErrInvalidTokenTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateForRun(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store: &StoreConfig{Backend: StoreBackendRedis},
			Redis: &RedisConfig{Addr: "localhost:6379"},
			Sweep: &SweepConfig{Schedule: "* * * * *", Lookahead: 5 * time.Minute},
			Auth:  &AuthConfig{TokenTTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Store.Backend = "mongo" },
			wantErr: []error{ErrInvalidStoreBackend},
		},
		{
			name: "sqlite ignores redis",
			mutate: func(c *Config) {
				c.Store = &StoreConfig{Backend: StoreBackendSQLite, SQLitePath: "x.db"}
				c.Redis.Addr = ""
			},
		},
		{
			name: "multiple problems are joined",
			mutate: func(c *Config) {
				c.Redis.Addr = ""
				c.Sweep.Schedule = "every minute"
			},
			wantErr: []error{ErrRedisAddrMissing, ErrInvalidSweepSchedule},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := ValidateForRun(cfg)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("expected %v in %v", want, err)
				}
			}
		})
	}
}
