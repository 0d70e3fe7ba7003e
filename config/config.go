// Package config loads simulation configuration from TOML, overlaying an
// optional file on top of built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/scenecore/parameter"
	"github.com/lixenwraith/scenecore/spawn"
)

// Engine holds tick loop settings.
type Engine struct {
	TickInterval Duration `toml:"tick_interval"`
	StartPaused  bool     `toml:"start_paused"`
}

// Log holds logger settings.
type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Jobs holds background worker settings.
type Jobs struct {
	Workers int `toml:"workers"`
}

// Pool declares one spawn template's pool sizing.
type Pool struct {
	Name string `toml:"name"`
	spawn.Config
}

// Config is the root configuration.
type Config struct {
	Engine Engine `toml:"engine"`
	Log    Log    `toml:"log"`
	Jobs   Jobs   `toml:"jobs"`
	Pools  []Pool `toml:"pools"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: Engine{
			TickInterval: Duration{parameter.DefaultTickInterval},
			StartPaused:  false,
		},
		Log: Log{
			Level:       "info",
			Development: false,
		},
		Jobs: Jobs{
			Workers: parameter.DefaultJobWorkers,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults
// unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// PoolConfig returns the configured pool sizing for a template, or the
// package default when the template is not listed.
func (c *Config) PoolConfig(name string) spawn.Config {
	for _, p := range c.Pools {
		if p.Name == name {
			return p.Config
		}
	}
	return spawn.DefaultConfig()
}

// NewLogger builds a zap logger from the log section.
func NewLogger(l Log) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return nil, fmt.Errorf("config: log level %q: %w", l.Level, err)
	}
	var zc zap.Config
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Duration wraps time.Duration for TOML string values like "50ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
