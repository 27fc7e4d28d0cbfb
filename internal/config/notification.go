package config

import (
	"os"
	"strconv"
	"time"

	"github.com/adhocore/gronx"
)

const (
	sweepScheduleEnv         = "SWEEP_SCHEDULE"
	sweepLookaheadMinutesEnv = "SWEEP_LOOKAHEAD_MINUTES"
	sweepDisabledEnv         = "SWEEP_DISABLED"
	sweepTokenEnv            = "SWEEP_TOKEN"

	defaultSweepSchedule         = "* * * * *"
	defaultSweepLookaheadMinutes = 5
)

type SweepConfig struct {
	Schedule  string
	Lookahead time.Duration
	// Disabled turns off the in-process schedule; POST /api/v1/sweep still works.
	Disabled bool
	// Token guards POST /api/v1/sweep. The endpoint is not mounted when empty.
	Token string
}

func LoadSweepConfig() (*SweepConfig, error) {
	schedule := os.Getenv(sweepScheduleEnv)
	if schedule == "" {
		schedule = defaultSweepSchedule
	}

	lookahead := defaultSweepLookaheadMinutes
	if v := os.Getenv(sweepLookaheadMinutesEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidSweepLookahead
		}
		lookahead = parsed
	}

	return &SweepConfig{
		Schedule:  schedule,
		Lookahead: time.Duration(lookahead) * time.Minute,
		Disabled:  os.Getenv(sweepDisabledEnv) == "true",
		Token:     os.Getenv(sweepTokenEnv),
	}, nil
}

func (c *SweepConfig) Validate() error {
	if !gronx.New().IsValid(c.Schedule) {
		return ErrInvalidSweepSchedule
	}
	if c.Lookahead <= 0 {
		return ErrInvalidSweepLookahead
	}
	return nil
}
