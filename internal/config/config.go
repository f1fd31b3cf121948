// Package config provides configuration management for spectator using Viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/spectatorcontext/spectator-cli/internal/backup"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
	"github.com/spectatorcontext/spectator-cli/pkg/fileutil"
)

// FileName is the name of the CLI's own configuration file.
const FileName = "config.yaml"

// EnvConfigDir is the environment variable that overrides the directory
// searched for the configuration file.
const EnvConfigDir = "SPECTATOR_CONFIG_DIR"

// Auth modes selecting which wire form setup writes into platform configs.
const (
	// AuthURL embeds the API key in the remote server URL. The default.
	AuthURL = "url"

	// AuthHeader passes the key as a bearer header backed by the
	// SPECTATOR_API_KEY environment variable. Matches entries written by
	// older releases.
	AuthHeader = "header"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version          int      `mapstructure:"version" yaml:"version"`
	DefaultPlatforms []string `mapstructure:"default_platforms" yaml:"default_platforms"`
	Scope            string   `mapstructure:"scope" yaml:"scope"`
	Auth             string   `mapstructure:"auth" yaml:"auth"`
	Verify           bool     `mapstructure:"verify" yaml:"verify"`
	BackupRetention  int      `mapstructure:"backup_retention" yaml:"backup_retention"`

	// APIKey is honored when present but belongs in the environment or the
	// keyring, not on disk. doctor flags a key found in the file.
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`
}

// Default returns a configuration with every field at its default value.
func Default() *Config {
	return &Config{
		Version:          1,
		DefaultPlatforms: paths.Platforms(),
		Scope:            string(paths.ScopeGlobal),
		Auth:             AuthURL,
		Verify:           true,
		BackupRetention:  backup.DefaultRetentionCount,
	}
}

// Dir returns the directory searched for the configuration file, honoring
// the SPECTATOR_CONFIG_DIR override.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return paths.AppConfigDir()
}

// FilePath returns the full path of the configuration file under Dir. The
// file may not exist; Load falls back to defaults when it does not.
func FilePath() string {
	return filepath.Join(Dir(), FileName)
}

// Init initializes Viper with default configuration. Previously loaded
// state is discarded, so calling Init again rebinds the search paths.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(Dir())

	// Environment variable support
	viper.SetEnvPrefix("SPECTATOR")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("default_platforms", paths.Platforms())
	viper.SetDefault("scope", string(paths.ScopeGlobal))
	viper.SetDefault("auth", AuthURL)
	viper.SetDefault("verify", true)
	viper.SetDefault("backup_retention", backup.DefaultRetentionCount)
	// Registered empty so SPECTATOR_API_KEY surfaces through Unmarshal.
	viper.SetDefault("api_key", "")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration, validated, or default values if no file
// is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var nfe viper.ConfigFileNotFoundError
		notFound := errors.As(err, &nfe) || errors.Is(err, os.ErrNotExist)
		switch {
		case notFound && path != "":
			// The user named a file, so its absence is an error
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		case notFound:
			// Implicit load without a file runs on defaults
		default:
			// Real read error (parsing, permissions, etc)
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// Save writes the configuration as YAML, atomically, creating the parent
// directory when needed. Invalid configurations are rejected before
// anything touches the disk.
func Save(fsys afero.Fs, path string, cfg *Config) error {
	if errs := Validate(cfg); len(errs) > 0 {
		return errors.Wrap(errors.Join(errs...), "validating config")
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	return fileutil.AtomicWriteYAMLWithPerm(fsys, path, cfg, 0600)
}
