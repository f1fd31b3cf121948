// Package paths resolves the configuration file locations of supported AI
// coding assistants across operating systems.
//
// Resolution is pure: a [Resolver] value carries the environment facts
// (home directory, XDG config home, %APPDATA%, working directory, OS
// family) and [Resolver.ConfigPath] maps a platform identifier and scope
// to a filesystem path without touching the filesystem. Tests construct
// Resolver values directly instead of mutating process state.
//
// # Platform Configuration Files
//
// Each assistant keeps its MCP server registry in a different location:
//
//	| Platform       | Global Config                                        | Project Config    |
//	|----------------|------------------------------------------------------|-------------------|
//	| claude-desktop | <roaming>/Claude/claude_desktop_config.json          | -                 |
//	| claude-code    | ~/.claudecode/settings.json                          | -                 |
//	| cursor         | ~/.cursor/mcp.json                                   | .cursor/mcp.json  |
//	| windsurf       | ~/.codeium/windsurf/mcp_config.json                  | -                 |
//	| vscode         | ~/.mcp.json                                          | .vscode/mcp.json  |
//	| cline          | <roaming>/Code/User/globalStorage/saoudrizwan.claude-dev/settings/cline_mcp_settings.json | - |
//
// <roaming> is ~/Library/Application Support on macOS, %APPDATA% on
// Windows, and the XDG config home elsewhere. Platforms without a project
// config ignore the scope argument and return their global path.
//
// # Error Handling
//
// ConfigPath returns errors.ErrUnknownPlatform for unrecognized platform
// identifiers so callers can fail with a descriptive message instead of
// writing to an empty path. Use [ValidPlatform] to check identifiers from
// user input up front.
package paths
