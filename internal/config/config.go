// Package config holds tada's settings and loads them from file, env and flags.
package config

import (
	"fmt"
	"strings"
)

// Backend selects where the persistent slot lives.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Config is the complete tada configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	UI      UIConfig      `mapstructure:"ui"      yaml:"ui"`
	Log     LogConfig     `mapstructure:"log"     yaml:"log"`
}

// StorageConfig configures the persistent slot.
type StorageConfig struct {
	// Backend is file (default), sqlite or memory.
	Backend Backend `mapstructure:"backend" yaml:"backend"`
	// Dir holds todos.json or tada.db. A leading ~ is expanded.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Key names the slot inside the sqlite table.
	Key string `mapstructure:"key" yaml:"key"`
}

// UIConfig configures both surfaces.
type UIConfig struct {
	Theme     string `mapstructure:"theme"     yaml:"theme"`
	Celebrate bool   `mapstructure:"celebrate" yaml:"celebrate"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File receives logs while the TUI owns the terminal. Empty discards them.
	File string `mapstructure:"file" yaml:"file"`
}

// Themes lists the accepted ui.theme values.
var Themes = []string{"classic", "neon", "mono"}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     DefaultDataDir(),
			Key:     "list",
		},
		UI: UIConfig{
			Theme:     "classic",
			Celebrate: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		errs = append(errs, &ValidationError{
			Field:   "storage.backend",
			Message: "must be 'file', 'sqlite', or 'memory'",
		})
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, &ValidationError{Field: "storage.key", Message: "must not be empty"})
	}
	if c.Storage.Backend != BackendMemory && strings.TrimSpace(c.Storage.Dir) == "" {
		errs = append(errs, &ValidationError{Field: "storage.dir", Message: "must not be empty"})
	}

	validTheme := false
	for _, t := range Themes {
		if strings.EqualFold(c.UI.Theme, t) {
			validTheme = true
		}
	}
	if !validTheme {
		errs = append(errs, &ValidationError{
			Field:   "ui.theme",
			Message: "must be one of " + strings.Join(Themes, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
