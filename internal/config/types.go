package config

import "time"

// Terminal mode values for Interactive and Color.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// Config holds the runtime settings for progress rendering.
type Config struct {
	// Interactive selects the overlay renderer: auto probes stdout,
	// always forces cursor control, never prints bars only when they end.
	Interactive string `yaml:"interactive" mapstructure:"interactive"`

	// Color controls escape-coded colour output. auto follows Interactive
	// and honours NO_COLOR.
	Color string `yaml:"color" mapstructure:"color"`

	// Strict panics on aggregation invariant violations instead of clamping.
	Strict bool `yaml:"strict" mapstructure:"strict"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug" mapstructure:"debug"`

	// Interval is how long the renderer sleeps between checks.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// IdlePeriod forces a redraw when nothing is animating.
	IdlePeriod time.Duration `yaml:"idle_period" mapstructure:"idle_period"`

	// AnimationPeriod forces a redraw while a bar is animating.
	AnimationPeriod time.Duration `yaml:"animation_period" mapstructure:"animation_period"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Interactive:     ModeAuto,
		Color:           ModeAuto,
		Interval:        20 * time.Millisecond,
		IdlePeriod:      200 * time.Millisecond,
		AnimationPeriod: 33 * time.Millisecond,
	}
}
