package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "SEGCHECK_"

// envOverrides lists the settings that may be overridden from the environment.
// Unset variables leave the pointer nil so file values survive.
type envOverrides struct {
	SegmentsDir    *string  `env:"SEGMENTS_DIR"`
	ValidationsDir *string  `env:"VALIDATIONS_DIR"`
	StateDir       *string  `env:"STATE_DIR"`
	Threshold      *float64 `env:"THRESHOLD"`
	LogLevel       *string  `env:"LOG_LEVEL"`
	LogFormat      *string  `env:"LOG_FORMAT"`
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.ParseWithOptions(&overrides, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if overrides.SegmentsDir != nil {
		c.Paths.SegmentsDir = *overrides.SegmentsDir
	}
	if overrides.ValidationsDir != nil {
		c.Paths.ValidationsDir = *overrides.ValidationsDir
	}
	if overrides.StateDir != nil {
		c.Paths.StateDir = *overrides.StateDir
	}
	if overrides.Threshold != nil {
		c.Consensus.Threshold = *overrides.Threshold
	}
	if overrides.LogLevel != nil {
		c.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		c.Logging.Format = *overrides.LogFormat
	}
	return nil
}
