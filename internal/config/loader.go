package config

import (
	"os"
	"strings"

	"github.com/rileyhilliard/headway/internal/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override (HEADWAY_STRICT, ...).
	EnvPrefix = "HEADWAY"
	// ConfigEnv names an optional YAML config file.
	ConfigEnv = "HEADWAY_CONFIG"
)

// Load reads settings from defaults, the optional YAML file at path
// (falling back to $HEADWAY_CONFIG), and HEADWAY_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found: "+path,
					"Check the path, or unset "+ConfigEnv)
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Durations look like 20ms or 1s; modes are auto, always or never")
	}

	cfg.Interactive = strings.ToLower(strings.TrimSpace(cfg.Interactive))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads settings from the environment only, returning the defaults
// if they are unusable. Library code calls this and can't surface errors.
func FromEnv() *Config {
	cfg, err := Load("")
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("interactive", def.Interactive)
	v.SetDefault("color", def.Color)
	v.SetDefault("strict", def.Strict)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("interval", def.Interval.String())
	v.SetDefault("idle_period", def.IdlePeriod.String())
	v.SetDefault("animation_period", def.AnimationPeriod.String())
}

// yamlView is the on-disk shape: durations as human strings.
type yamlView struct {
	Interactive     string `yaml:"interactive"`
	Color           string `yaml:"color"`
	Strict          bool   `yaml:"strict"`
	Debug           bool   `yaml:"debug"`
	Interval        string `yaml:"interval"`
	IdlePeriod      string `yaml:"idle_period"`
	AnimationPeriod string `yaml:"animation_period"`
}

// Marshal renders the settings as YAML accepted by Load.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(yamlView{
		Interactive:     cfg.Interactive,
		Color:           cfg.Color,
		Strict:          cfg.Strict,
		Debug:           cfg.Debug,
		Interval:        cfg.Interval.String(),
		IdlePeriod:      cfg.IdlePeriod.String(),
		AnimationPeriod: cfg.AnimationPeriod.String(),
	})
}
