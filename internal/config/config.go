// Package config loads server settings from the environment, an optional
// .env file and an optional staffdesk.yaml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"

	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrInvalidPort    = errors.New("port must be between 1 and 65535")
	ErrInvalidBackend = errors.New("store backend must be memory or sqlite")
	ErrInvalidWindow  = errors.New("undo window must be positive")
	ErrInvalidLatency = errors.New("simulated latency cannot be negative")
	ErrInvalidLevel   = errors.New("log level must be debug, info, warn or error")
	ErrInvalidFormat  = errors.New("log format must be text or json")
)

// Keys double as yaml keys; the env names are the upper-cased forms.
const (
	keyPort      = "port"
	keyBackend   = "store_backend"
	keyDBPath    = "db_path"
	keyWindow    = "undo_window"
	keyLatency   = "simulated_latency"
	keyLogLevel  = "log_level"
	keyLogFormat = "log_format"
	keySeedFile  = "seed_file"
	keyOrg       = "org_name"
)

type Config struct {
	Port             int
	StoreBackend     string
	DBPath           string
	UndoWindow       time.Duration
	SimulatedLatency time.Duration
	LogLevel         string
	LogFormat        string
	// SeedFile, when set, overrides sections of the built-in sample data.
	SeedFile string
	OrgName  string
}

func defaults(v *viper.Viper) {
	v.SetDefault(keyPort, 8080)
	v.SetDefault(keyBackend, BackendMemory)
	v.SetDefault(keyDBPath, "file:staffdesk?mode=memory&cache=shared")
	v.SetDefault(keyWindow, 5*time.Second)
	v.SetDefault(keyLatency, time.Duration(0))
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, FormatText)
	v.SetDefault(keySeedFile, "")
	v.SetDefault(keyOrg, "Staff Desk")
}

// Load reads .env (if present), then file (or ./staffdesk.yaml when file is
// empty), then the environment. Later sources win.
func Load(file string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	v := viper.New()
	defaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("staffdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Port:             v.GetInt(keyPort),
		StoreBackend:     strings.ToLower(v.GetString(keyBackend)),
		DBPath:           v.GetString(keyDBPath),
		UndoWindow:       v.GetDuration(keyWindow),
		SimulatedLatency: v.GetDuration(keyLatency),
		LogLevel:         strings.ToLower(v.GetString(keyLogLevel)),
		LogFormat:        strings.ToLower(v.GetString(keyLogFormat)),
		SeedFile:         v.GetString(keySeedFile),
		OrgName:          v.GetString(keyOrg),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, ErrInvalidPort)
	}
	if c.StoreBackend != BackendMemory && c.StoreBackend != BackendSQLite {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBackend, c.StoreBackend))
	}
	if c.UndoWindow <= 0 {
		errs = append(errs, ErrInvalidWindow)
	}
	if c.SimulatedLatency < 0 {
		errs = append(errs, ErrInvalidLatency)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != FormatText && c.LogFormat != FormatJSON {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidFormat, c.LogFormat))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, c.LogLevel)
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
