package config

import (
	"os"
	"strconv"
	"time"
)

const (
	redisAddrEnv        = "REDIS_ADDR"
	redisPasswordEnv    = "REDIS_PASSWORD"
	redisDBEnv          = "REDIS_DB"
	redisTLSEnv         = "REDIS_TLS"
	redisPoolSizeEnv    = "REDIS_POOL_SIZE"
	redisDialTimeoutEnv = "REDIS_DIAL_TIMEOUT_SECONDS"

	defaultRedisAddr        = "localhost:6379"
	defaultRedisDialTimeout = 5 * time.Second
)

// RedisConfig configures the Redis store backend. PoolSize 0 keeps the
// go-redis default.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	TLS         bool
	PoolSize    int
	DialTimeout time.Duration
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:        os.Getenv(redisAddrEnv),
		Password:    os.Getenv(redisPasswordEnv),
		TLS:         os.Getenv(redisTLSEnv) == "true",
		DialTimeout: defaultRedisDialTimeout,
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultRedisAddr
	}

	if raw := os.Getenv(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = db
	}

	if raw := os.Getenv(redisPoolSizeEnv); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 0 {
			return nil, ErrInvalidRedisPoolSize
		}
		cfg.PoolSize = size
	}

	if raw := os.Getenv(redisDialTimeoutEnv); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, ErrInvalidRedisDialTimeout
		}
		cfg.DialTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
