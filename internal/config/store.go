package config

import (
	"os"
	"strings"
)

const (
	storeBackendEnv = "STORE_BACKEND"
	sqlitePathEnv   = "SQLITE_PATH"

	defaultSQLitePath = "reminders.db"
)

type StoreBackend string

const (
	StoreBackendRedis  StoreBackend = "redis"
	StoreBackendSQLite StoreBackend = "sqlite"
)

type StoreConfig struct {
	Backend    StoreBackend
	SQLitePath string
}

func LoadStoreConfig() *StoreConfig {
	backend := StoreBackend(strings.ToLower(os.Getenv(storeBackendEnv)))
	if backend == "" {
		backend = StoreBackendRedis
	}

	path := os.Getenv(sqlitePathEnv)
	if path == "" {
		path = defaultSQLitePath
	}

	return &StoreConfig{
		Backend:    backend,
		SQLitePath: path,
	}
}

func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case StoreBackendRedis:
		return nil
	case StoreBackendSQLite:
		if c.SQLitePath == "" {
			return ErrSQLitePathMissing
		}
		return nil
	default:
		return ErrInvalidStoreBackend
	}
}
