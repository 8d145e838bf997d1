package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/headway/internal/errors"
)

var validModes = map[string]bool{
	ModeAuto:   true,
	ModeAlways: true,
	ModeNever:  true,
}

// Validate checks the settings and returns structured error messages.
func Validate(cfg *Config) error {
	if !validModes[cfg.Interactive] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid interactive mode '%s'", cfg.Interactive),
			"Use one of: auto, always, never")
	}
	if !validModes[cfg.Color] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid color mode '%s'", cfg.Color),
			"Use one of: auto, always, never")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"interval", cfg.Interval},
		{"idle_period", cfg.IdlePeriod},
		{"animation_period", cfg.AnimationPeriod},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s must be positive, got %s", d.name, d.value),
				"Use a duration like 20ms or 1s")
		}
	}

	return nil
}
