// Package config loads beatgen settings from file and environment.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/dygy/beatgen/internal/pattern"
)

// Defaults are the generation settings used when a flag or request
// field is not given.
type Defaults struct {
	Style         string  `mapstructure:"style"`
	TimeSignature string  `mapstructure:"time_signature"`
	BPM           int     `mapstructure:"bpm"`
	Bars          int     `mapstructure:"bars"`
	Complexity    float64 `mapstructure:"complexity"`
	Dynamics      float64 `mapstructure:"dynamics"`
	Kit           string  `mapstructure:"kit"`
}

// Config is the full application configuration.
type Config struct {
	Port       int      `mapstructure:"port"`
	SampleRate int      `mapstructure:"sample_rate"`
	Defaults   Defaults `mapstructure:"defaults"`
}

// Load reads beatgen.yaml from the working directory (or the explicit
// path when given) and merges BEATGEN_* environment variables on top.
// A missing config file is fine; defaults cover everything.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("sample_rate", 44100)
	v.SetDefault("defaults.style", "rock")
	v.SetDefault("defaults.time_signature", "4/4")
	v.SetDefault("defaults.bpm", 120)
	v.SetDefault("defaults.bars", 4)
	v.SetDefault("defaults.complexity", 0.5)
	v.SetDefault("defaults.dynamics", 0.5)
	v.SetDefault("defaults.kit", "")

	v.SetEnvPrefix("BEATGEN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("beatgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/beatgen")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Settings converts the configured defaults into generator settings.
func (c *Config) Settings() pattern.Settings {
	return pattern.Settings{
		Style:         pattern.ParseStyle(c.Defaults.Style),
		TimeSignature: pattern.ParseTimeSignature(c.Defaults.TimeSignature),
		BPM:           c.Defaults.BPM,
		Bars:          c.Defaults.Bars,
		Complexity:    c.Defaults.Complexity,
		Dynamics:      c.Defaults.Dynamics,
	}
}
