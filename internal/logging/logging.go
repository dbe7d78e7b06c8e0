// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logging builds the zap logger used by the blocksim command.
//
package logging

import (
	"github.com/db47h/blocksim/internal/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config returns the zap configuration for cfg. The development setting
// selects the console encoder, otherwise JSON is used. Verbose forces the
// debug level.
//
func Config(cfg config.Logging, verbose bool) (zap.Config, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zc, errors.Wrap(err, "logging.level")
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}
	return zc, nil
}

// New builds a logger from cfg.
//
func New(cfg config.Logging, verbose bool) (*zap.Logger, error) {
	zc, err := Config(cfg, verbose)
	if err != nil {
		return nil, err
	}
	l, err := zc.Build()
	return l, errors.Wrap(err, "build logger")
}
