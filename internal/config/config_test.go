package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 5*time.Second, cfg.UndoWindow)
	assert.Zero(t, cfg.SimulatedLatency)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("port: 9000\nundo_window: 8s\nstore_backend: sqlite\n"), 0o600))
	t.Setenv("PORT", "9100")
	t.Setenv("SIMULATED_LATENCY", "250ms")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 8*time.Second, cfg.UndoWindow)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, 250*time.Millisecond, cfg.SimulatedLatency)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("nope.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	good := Config{Port: 8080, StoreBackend: BackendMemory, UndoWindow: time.Second, LogLevel: "info", LogFormat: FormatText}
	require.NoError(t, good.Validate())

	tests := []struct {
		name string
		mod  func(*Config)
		want error
	}{
		{"port", func(c *Config) { c.Port = 0 }, ErrInvalidPort},
		{"backend", func(c *Config) { c.StoreBackend = "redis" }, ErrInvalidBackend},
		{"window", func(c *Config) { c.UndoWindow = 0 }, ErrInvalidWindow},
		{"latency", func(c *Config) { c.SimulatedLatency = -time.Second }, ErrInvalidLatency},
		{"level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLevel},
		{"format", func(c *Config) { c.LogFormat = "xml" }, ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := good
			tt.mod(&c)
			assert.ErrorIs(t, c.Validate(), tt.want)
		})
	}
}

func TestLevel(t *testing.T) {
	lvl, err := Config{LogLevel: "debug"}.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
	lvl, err = Config{LogLevel: "warning"}.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}
