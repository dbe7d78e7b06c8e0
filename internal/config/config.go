// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the blocksim YAML configuration.
//
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/db47h/blocksim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the blocksim configuration.
//
type Config struct {
	Engine  Engine  `yaml:"engine"`
	Logging Logging `yaml:"logging"`
	Editor  Editor  `yaml:"editor"`
}

// Engine configures the simulation engine.
//
type Engine struct {
	SettleLimit int `yaml:"settle_limit"`
}

// Logging configures the zap logger.
//
type Logging struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// Editor configures block placement in the editor.
//
type Editor struct {
	Grid  int            `yaml:"grid"`
	Spawn blocksim.Point `yaml:"spawn"`
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		Engine:  Engine{SettleLimit: blocksim.DefaultSettleLimit},
		Logging: Logging{Level: "info"},
		Editor: Editor{
			Grid:  20,
			Spawn: blocksim.Point{X: 500, Y: 300},
		},
	}
}

// Environment variables overriding the configuration file.
const (
	EnvSettleLimit = "BLOCKSIM_SETTLE_LIMIT"
	EnvLogLevel    = "BLOCKSIM_LOG_LEVEL"
)

// Load loads the configuration from a YAML file. Fields missing from the file
// keep their default value. A missing file yields the default configuration.
//
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "read config")
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		if path != "" {
			err = errors.Wrap(err, path)
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSettleLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, EnvSettleLimit)
		}
		c.Engine.SettleLimit = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}

var levels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	if c.Engine.SettleLimit < 1 {
		return errors.Errorf("invalid engine.settle_limit %d", c.Engine.SettleLimit)
	}
	if c.Editor.Grid < 1 {
		return errors.Errorf("invalid editor.grid %d", c.Editor.Grid)
	}
	for _, l := range levels {
		if c.Logging.Level == l {
			return nil
		}
	}
	return errors.Errorf("invalid logging.level %q (valid: %v)", c.Logging.Level, levels)
}

// Save writes the configuration to a YAML file, creating its directory if
// needed.
//
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Snap rounds p to the nearest point of the placement grid.
//
func (e Editor) Snap(p blocksim.Point) blocksim.Point {
	return blocksim.Point{X: snap(p.X, e.Grid), Y: snap(p.Y, e.Grid)}
}

func snap(v, g int) int {
	if g <= 1 {
		return v
	}
	if v < 0 {
		return -snap(-v, g)
	}
	return (v + g/2) / g * g
}
