// Package config loads deployment configuration from an optional YAML
// file with environment-variable overrides. The knobs here are the
// genuine policy differences observed between survey deployments
// (identifier length, window enforcement, completeness gating), not
// tuning parameters.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/seojoohe-netizen/ai-survey/internal/utils"
)

type WindowConfig struct {
	// Enforcement: hard (form unreachable outside the window), soft
	// (reachable after close with a warning), or none.
	Enforcement string `yaml:"enforcement" validate:"oneof=hard soft none"`
	OpensAt     string `yaml:"opens_at"`
	ClosesAt    string `yaml:"closes_at"`

	// Parsed in Load; zero when the corresponding edge is unset.
	OpensTime  time.Time `yaml:"-"`
	ClosesTime time.Time `yaml:"-"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" validate:"oneof=memory csv sqlite postgres"`
	// Path is the file location for the csv and sqlite drivers.
	Path string `yaml:"path"`
	// DSN is the connection string for the postgres driver.
	DSN string `yaml:"dsn"`
}

type Config struct {
	Addr          string   `yaml:"addr" validate:"required"`
	LogLevel      string   `yaml:"log_level" validate:"oneof=debug info warn error"`
	StaticDir     string   `yaml:"static_dir"`
	Locales       []string `yaml:"locales" validate:"min=1"`
	DefaultLocale string   `yaml:"default_locale" validate:"required"`

	// AdminSecret is the shared dashboard password. Empty disables the
	// dashboard entirely.
	AdminSecret string `yaml:"admin_secret"`

	IdentifierLength         int  `yaml:"identifier_length" validate:"oneof=7 8"`
	RequireAllOrdinalAnswers bool `yaml:"require_all_ordinal_answers"`

	Window WindowConfig `yaml:"window"`
	Store  StoreConfig  `yaml:"store"`
}

// Default returns the configuration used when nothing is specified:
// in-memory store, 7-digit employee numbers, full completeness gating,
// no date window.
func Default() *Config {
	return &Config{
		Addr:                     ":8080",
		LogLevel:                 "info",
		Locales:                  []string{"ko", "en"},
		DefaultLocale:            "ko",
		IdentifierLength:         7,
		RequireAllOrdinalAnswers: true,
		Window:                   WindowConfig{Enforcement: "none"},
		Store:                    StoreConfig{Driver: "memory"},
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// at path (if any), then SURVEY_* environment overrides, validated as a
// whole. An empty path with no SURVEY_CONFIG set just skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SURVEY_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	if err := parseWindow(&cfg.Window); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Addr = utils.SafeEnv("SURVEY_ADDR", cfg.Addr)
	cfg.LogLevel = utils.SafeEnv("SURVEY_LOG_LEVEL", cfg.LogLevel)
	cfg.StaticDir = utils.SafeEnv("SURVEY_STATIC_DIR", cfg.StaticDir)
	cfg.AdminSecret = utils.SafeEnv("SURVEY_ADMIN_SECRET", cfg.AdminSecret)
	cfg.Store.Driver = utils.SafeEnv("SURVEY_STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.Path = utils.SafeEnv("SURVEY_STORE_PATH", cfg.Store.Path)
	cfg.Store.DSN = utils.SafeEnv("SURVEY_STORE_DSN", cfg.Store.DSN)
	cfg.Window.Enforcement = utils.SafeEnv("SURVEY_WINDOW_ENFORCEMENT", cfg.Window.Enforcement)
	cfg.Window.OpensAt = utils.SafeEnv("SURVEY_WINDOW_OPENS_AT", cfg.Window.OpensAt)
	cfg.Window.ClosesAt = utils.SafeEnv("SURVEY_WINDOW_CLOSES_AT", cfg.Window.ClosesAt)
	if v := os.Getenv("SURVEY_IDENTIFIER_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.IdentifierLength = n
		}
	}
	if v := os.Getenv("SURVEY_REQUIRE_ALL_ANSWERS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RequireAllOrdinalAnswers = b
		}
	}
}

func parseWindow(w *WindowConfig) error {
	parse := func(name, v string) (time.Time, error) {
		if v == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("config: window %s: %w", name, err)
		}
		return t, nil
	}
	var err error
	if w.OpensTime, err = parse("opens_at", w.OpensAt); err != nil {
		return err
	}
	if w.ClosesTime, err = parse("closes_at", w.ClosesAt); err != nil {
		return err
	}
	if !w.OpensTime.IsZero() && !w.ClosesTime.IsZero() && w.ClosesTime.Before(w.OpensTime) {
		return fmt.Errorf("config: window closes_at is before opens_at")
	}
	return nil
}
