// Package config provides configuration management for the spectator CLI.
//
// This package handles loading, saving, and validating the tool's own
// configuration file. It is distinct from the platform configuration files
// the tool edits on behalf of AI assistants; those are managed by the
// mcpfile and platform packages.
//
// # Configuration File
//
// The default configuration file location is ~/.config/spectator/config.yaml
// (the SPECTATOR_CONFIG_DIR environment variable overrides the directory).
// The file uses YAML format:
//
//	version: 1
//	default_platforms:
//	  - cursor
//	  - claude-code
//	scope: global        # or project
//	auth: url            # or header
//	verify: true
//	backup_retention: 5
//
// Every key can also be supplied through the environment with the SPECTATOR
// prefix, e.g. SPECTATOR_SCOPE=project. Values resolve in the usual Viper
// order: explicit flags, environment, config file, defaults.
//
// # Loading
//
// [Init] binds the search paths and defaults; [Load] reads and validates:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// Load with an empty path searches the default locations and falls back to
// defaults when no file exists. Load with an explicit path errors when the
// file is missing.
//
// # Validation
//
// All loaded configurations are validated automatically. Validation errors
// carry the offending field and unwrap to package sentinels:
//
//	errs := config.Validate(cfg)
//	for _, e := range errs {
//	    fmt.Println(e)
//	}
//
// # Saving
//
// [Save] writes a validated configuration atomically with 0600 permissions,
// which is what `spectator config set` runs.
package config
