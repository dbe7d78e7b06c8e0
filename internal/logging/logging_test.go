// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/blocksim/internal/config"
	"github.com/db47h/blocksim/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	zc, err := logging.Config(config.Logging{Level: "warn"}, false)
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, zc.Level.Level())
	assert.Equal(t, "json", zc.Encoding)

	zc, err = logging.Config(config.Logging{Level: "warn", Development: true}, true)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, zc.Level.Level())
	assert.Equal(t, "console", zc.Encoding)

	_, err = logging.Config(config.Logging{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestNew_file(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sim.log")
	l, err := logging.New(config.Logging{Level: "info", File: name}, false)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("tick")
	_ = l.Sync()

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"tick"`)
	assert.NotContains(t, string(data), "hidden")
}
