package platform

import (
	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
)

// Descriptor holds the static facts about one supported AI assistant.
// All behavior lives in Adapter and Detector; platforms differ only in the
// data collected here, so adding an assistant means adding a value, not a
// type.
type Descriptor struct {
	// ID is the platform identifier (paths.PlatformCursor etc).
	ID string

	// DisplayName is the human-readable product name.
	DisplayName string

	// DefaultScope is the scope used when the user does not pick one.
	DefaultScope paths.Scope

	// ProjectScope reports whether the platform reads a per-project config
	// file in addition to the global one.
	ProjectScope bool

	// Command is the CLI binary probed on PATH during detection.
	// Empty for platforms that ship no command line entry point.
	Command string

	// AppNames lists macOS application bundle names probed during
	// detection, e.g. "Cursor.app".
	AppNames []string

	// Note is a one-line hint appended to manual setup instructions.
	Note string
}

// registry is the fixed set of supported platforms, in display order.
var registry = []Descriptor{
	{
		ID:           paths.PlatformClaudeDesktop,
		DisplayName:  "Claude Desktop",
		DefaultScope: paths.ScopeGlobal,
		AppNames:     []string{"Claude.app"},
		Note:         "Restart Claude Desktop after editing so the new server is picked up.",
	},
	{
		ID:           paths.PlatformClaudeCode,
		DisplayName:  "Claude Code",
		DefaultScope: paths.ScopeGlobal,
		Command:      "claude",
		Note:         "New Claude Code sessions pick up the entry automatically.",
	},
	{
		ID:           paths.PlatformCursor,
		DisplayName:  "Cursor",
		DefaultScope: paths.ScopeGlobal,
		ProjectScope: true,
		Command:      "cursor",
		AppNames:     []string{"Cursor.app"},
		Note:         "Reload Cursor or toggle the server under Settings > MCP.",
	},
	{
		ID:           paths.PlatformWindsurf,
		DisplayName:  "Windsurf",
		DefaultScope: paths.ScopeGlobal,
		Command:      "windsurf",
		AppNames:     []string{"Windsurf.app"},
		Note:         "Reload Windsurf so Cascade picks up the new server.",
	},
	{
		ID:           paths.PlatformVSCode,
		DisplayName:  "VS Code",
		DefaultScope: paths.ScopeGlobal,
		ProjectScope: true,
		Command:      "code",
		AppNames:     []string{"Visual Studio Code.app"},
		Note:         "Reload the VS Code window so the server appears in agent mode.",
	},
	{
		ID:           paths.PlatformCline,
		DisplayName:  "Cline",
		DefaultScope: paths.ScopeGlobal,
		Note:         "Cline is a VS Code extension; reload the VS Code window after editing.",
	},
}

// Registry returns descriptors for all supported platforms in deterministic
// order matching paths.Platforms().
func Registry() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the descriptor for a platform identifier.
// Returns errors.ErrUnknownPlatform for identifiers outside the registry.
func Lookup(id string) (Descriptor, error) {
	for _, desc := range registry {
		if desc.ID == id {
			return desc, nil
		}
	}
	return Descriptor{}, errors.Wrapf(errors.ErrUnknownPlatform, "%q", id)
}
