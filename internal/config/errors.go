package config

import "errors"

var (
	ErrGCloudProjectIDMissing  = errors.New("GCLOUD_PROJECT_ID is required")
	ErrGCloudLocationIDMissing = errors.New("GCLOUD_LOCATION_ID is required")
	ErrGCloudQueueIDMissing    = errors.New("GCLOUD_QUEUE_ID is required")
	ErrGCloudTargetURLMissing  = errors.New("GCLOUD_TARGET_URL is required")
	ErrInvalidMaxRetries       = errors.New("TASK_QUEUE_MAX_RETRIES must be positive")

	ErrRedisAddrMissing        = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB          = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidRedisPoolSize    = errors.New("REDIS_POOL_SIZE must be a non-negative integer")
	ErrInvalidRedisDialTimeout = errors.New("REDIS_DIAL_TIMEOUT_SECONDS must be a positive integer")
	ErrInvalidStoreBackend     = errors.New("STORE_BACKEND must be one of redis, sqlite")
	ErrSQLitePathMissing       = errors.New("SQLITE_PATH is required when STORE_BACKEND is sqlite")
	ErrInvalidSweepSchedule    = errors.New("SWEEP_SCHEDULE must be a valid five-field cron expression")
	ErrInvalidSweepLookahead   = errors.New("SWEEP_LOOKAHEAD_MINUTES must be a positive integer")
	ErrInvalidTokenTTL         = errors.New("AUTH_TOKEN_TTL_HOURS must be a positive integer")
)
