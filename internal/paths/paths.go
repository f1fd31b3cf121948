package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

// Platform identifiers for supported AI coding assistants.
const (
	PlatformClaudeDesktop = "claude-desktop"
	PlatformClaudeCode    = "claude-code"
	PlatformCursor        = "cursor"
	PlatformWindsurf      = "windsurf"
	PlatformVSCode        = "vscode"
	PlatformCline         = "cline"
)

// Scope selects between a user-wide and a project-local config file.
type Scope string

const (
	// ScopeGlobal targets the user-wide configuration file.
	ScopeGlobal Scope = "global"
	// ScopeProject targets the configuration file under the working directory.
	ScopeProject Scope = "project"
)

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// Platforms returns all supported platform identifiers in display order.
func Platforms() []string {
	return []string{
		PlatformClaudeDesktop,
		PlatformClaudeCode,
		PlatformCursor,
		PlatformWindsurf,
		PlatformVSCode,
		PlatformCline,
	}
}

// ValidPlatform returns true if the platform identifier is recognized.
func ValidPlatform(platform string) bool {
	switch platform {
	case PlatformClaudeDesktop, PlatformClaudeCode, PlatformCursor,
		PlatformWindsurf, PlatformVSCode, PlatformCline:
		return true
	}
	return false
}

// ValidScope returns true if the scope is recognized.
func ValidScope(scope Scope) bool {
	return scope == ScopeGlobal || scope == ScopeProject
}

// ParseScope converts a flag value into a Scope.
func ParseScope(s string) (Scope, error) {
	scope := Scope(s)
	if !ValidScope(scope) {
		return "", errors.Wrapf(errors.ErrUnknownScope, "%q", s)
	}
	return scope, nil
}

// Resolver resolves platform config file paths from explicit environment
// facts. All resolution is pure: no filesystem access, no process state.
// Tests construct the struct directly; production code uses NewResolver.
type Resolver struct {
	// HomeDir is the user's home directory.
	HomeDir string
	// ConfigDir is the XDG config home, used on Linux and other Unixes.
	ConfigDir string
	// AppData is the Windows roaming application data directory (%APPDATA%).
	AppData string
	// WorkDir is the base directory for project-scoped config files.
	WorkDir string
	// GOOS is the operating system family the paths are resolved for.
	GOOS string
}

// NewResolver builds a Resolver from the running process's environment.
// Returns ErrHomeDirNotFound if the home directory cannot be determined.
func NewResolver() (Resolver, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Resolver{}, errors.Wrap(ErrHomeDirNotFound, err.Error())
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return Resolver{
		HomeDir:   home,
		ConfigDir: xdg.ConfigHome,
		AppData:   os.Getenv("APPDATA"),
		WorkDir:   wd,
		GOOS:      runtime.GOOS,
	}, nil
}

// ConfigPath returns the config file path for a platform and scope.
//
// Platforms without a project-scoped config ignore the scope distinction
// and always return their global path. Unknown platforms resolve to
// errors.ErrUnknownPlatform, unknown scopes to errors.ErrUnknownScope.
//
// Platform paths (global scope):
//   - claude-desktop: <roaming config>/Claude/claude_desktop_config.json
//   - claude-code: ~/.claudecode/settings.json
//   - cursor: ~/.cursor/mcp.json
//   - windsurf: ~/.codeium/windsurf/mcp_config.json
//   - vscode: ~/.mcp.json
//   - cline: <roaming config>/Code/User/globalStorage/saoudrizwan.claude-dev/settings/cline_mcp_settings.json
//
// Project scope (cursor, vscode only):
//   - cursor: <WorkDir>/.cursor/mcp.json
//   - vscode: <WorkDir>/.vscode/mcp.json
func (r Resolver) ConfigPath(platform string, scope Scope) (string, error) {
	if !ValidScope(scope) {
		return "", errors.Wrapf(errors.ErrUnknownScope, "%q", scope)
	}
	if r.HomeDir == "" {
		return "", ErrHomeDirNotFound
	}

	switch platform {
	case PlatformClaudeDesktop:
		return filepath.Join(r.roamingConfigDir(), "Claude", "claude_desktop_config.json"), nil

	case PlatformClaudeCode:
		return filepath.Join(r.HomeDir, ".claudecode", "settings.json"), nil

	case PlatformCursor:
		if scope == ScopeProject {
			return filepath.Join(r.WorkDir, ".cursor", "mcp.json"), nil
		}
		return filepath.Join(r.HomeDir, ".cursor", "mcp.json"), nil

	case PlatformWindsurf:
		return filepath.Join(r.HomeDir, ".codeium", "windsurf", "mcp_config.json"), nil

	case PlatformVSCode:
		if scope == ScopeProject {
			return filepath.Join(r.WorkDir, ".vscode", "mcp.json"), nil
		}
		return filepath.Join(r.HomeDir, ".mcp.json"), nil

	case PlatformCline:
		return filepath.Join(r.roamingConfigDir(),
			"Code", "User", "globalStorage",
			"saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"), nil

	default:
		return "", errors.Wrapf(errors.ErrUnknownPlatform, "%q", platform)
	}
}

// roamingConfigDir returns the OS-conventional base for application config:
// ~/Library/Application Support on macOS, %APPDATA% on Windows, and the XDG
// config home elsewhere.
func (r Resolver) roamingConfigDir() string {
	switch r.GOOS {
	case "darwin":
		return filepath.Join(r.HomeDir, "Library", "Application Support")
	case "windows":
		if r.AppData != "" {
			return r.AppData
		}
		return filepath.Join(r.HomeDir, "AppData", "Roaming")
	default:
		if r.ConfigDir != "" {
			return r.ConfigDir
		}
		return filepath.Join(r.HomeDir, ".config")
	}
}

// AppConfigDir returns the directory for the CLI's own configuration file.
// Returns: <xdg.ConfigHome>/spectator
func AppConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "spectator")
}
