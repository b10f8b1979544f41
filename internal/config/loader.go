package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName names the config and data directories.
	AppName = "tada"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "TADA"
)

// DefaultConfigPath is $XDG_CONFIG_HOME/tada/config.yaml (or the OS equivalent).
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+AppName, "config.yaml")
	}
	return filepath.Join(dir, AppName, "config.yaml")
}

// DefaultDataDir is $XDG_DATA_HOME/tada, falling back to ~/.local/share/tada.
func DefaultDataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// Loader merges defaults, config file, environment and bound flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with defaults and env support in place.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := NewConfig()
	v.SetDefault("storage.backend", string(d.Storage.Backend))
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.celebrate", d.UI.Celebrate)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	return &Loader{v: v}
}

// BindFlag makes a command-line flag override key when the flag is set.
func (l *Loader) BindFlag(key string, f *pflag.Flag) error {
	if f == nil {
		return fmt.Errorf("bind %s: no such flag", key)
	}
	return l.v.BindPFlag(key, f)
}

// LoadConfig reads path and returns the merged, validated config. An empty
// path means DefaultConfigPath, which may be absent; an explicit path must
// exist.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Path: path, Message: "config file not found", Err: err}
		}
	} else {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to read config file", Err: err}
		}
	}

	cfg := NewConfig()
	if err := l.v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse config file", Err: err}
	}
	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "configuration validation failed", Err: err}
	}
	return cfg, nil
}

func decodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.TextUnmarshallerHookFunc()
}

// UnmarshalText normalizes case so "SQLite" selects BackendSQLite.
func (b *Backend) UnmarshalText(text []byte) error {
	*b = Backend(strings.ToLower(strings.TrimSpace(string(text))))
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// LoadError is returned when configuration cannot be loaded.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience wrapper around NewLoader().LoadConfig(path).
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}
