package config

import (
	"fmt"
	"strconv"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
)

// SupportedVersion is the config schema version this build reads and writes.
const SupportedVersion = 1

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a config schema version this build
	// does not understand.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidPlatform indicates an unrecognized platform name.
	ErrInvalidPlatform = errors.New("invalid default platform")

	// ErrInvalidScope indicates a scope other than global or project.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrInvalidAuth indicates an auth mode other than url or header.
	ErrInvalidAuth = errors.New("invalid auth mode")

	// ErrNegativeRetention indicates a backup retention count below zero.
	ErrNegativeRetention = errors.New("negative backup retention")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != SupportedVersion {
		errs = append(errs, &VersionError{Version: cfg.Version})
	}

	for _, platform := range cfg.DefaultPlatforms {
		if !paths.ValidPlatform(platform) {
			errs = append(errs, &PlatformError{
				Platform: platform,
				Err:      ErrInvalidPlatform,
			})
		}
	}

	// Empty scope and auth mean "use default"
	if cfg.Scope != "" && !paths.ValidScope(paths.Scope(cfg.Scope)) {
		errs = append(errs, &ValueError{
			Field: "scope",
			Value: cfg.Scope,
			Err:   ErrInvalidScope,
		})
	}

	if cfg.Auth != "" && cfg.Auth != AuthURL && cfg.Auth != AuthHeader {
		errs = append(errs, &ValueError{
			Field: "auth",
			Value: cfg.Auth,
			Err:   ErrInvalidAuth,
		})
	}

	if cfg.BackupRetention < 0 {
		errs = append(errs, &ValueError{
			Field: "backup_retention",
			Value: strconv.Itoa(cfg.BackupRetention),
			Err:   ErrNegativeRetention,
		})
	}

	return errs
}

// VersionError reports a config schema version this build cannot handle.
type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnsupportedVersion, e.Version)
}

func (e *VersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// PlatformError represents an error for a specific platform name.
type PlatformError struct {
	Platform string
	Err      error
}

func (e *PlatformError) Error() string {
	return e.Err.Error() + ": " + e.Platform
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// ValueError represents an error for a specific config field.
type ValueError struct {
	Field string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return e.Err.Error() + ": " + e.Value
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
