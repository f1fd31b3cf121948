package platform

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/spectatorcontext/spectator-cli/internal/backup"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/mcpfile"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
	"github.com/spectatorcontext/spectator-cli/internal/redact"
)

// Adapter applies the spectator MCP entry to one platform's config files.
// A single Adapter type serves every platform; the Descriptor supplies
// everything that differs between them.
type Adapter struct {
	Desc     Descriptor
	Resolver *paths.Resolver
	Fsys     afero.Fs
	Log      *slog.Logger
}

// NewAdapter creates an Adapter for the given platform.
// A nil logger silences the adapter.
func NewAdapter(desc Descriptor, resolver *paths.Resolver, fsys afero.Fs, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		Desc:     desc,
		Resolver: resolver,
		Fsys:     fsys,
		Log:      log,
	}
}

// ConfigureResult describes what Configure did to one platform.
type ConfigureResult struct {
	// Path is the config file that was written.
	Path string

	// Updated is true when a previous spectator entry was overwritten,
	// false when the entry was added for the first time.
	Updated bool

	// HadOtherServers is true when the config already listed MCP servers
	// belonging to other tools.
	HadOtherServers bool

	// BackupPath is the backup created before overwriting, or empty when no
	// backup was needed.
	BackupPath string
}

// Configure inserts or refreshes the spectator entry in the platform's
// config file for the given scope. The caller chooses the wire form by
// building the entry, normally mcpfile.RemoteEntry. The sequence is fixed:
// resolve the path, read the existing document, back it up when it already
// carries the entry, upsert, write. Every failure propagates so the caller
// can report it and move on to the next platform.
func (a *Adapter) Configure(entry *mcpfile.Entry, scope paths.Scope) (ConfigureResult, error) {
	path, err := a.Resolver.ConfigPath(a.Desc.ID, scope)
	if err != nil {
		return ConfigureResult{}, errors.Wrap(err, "resolving config path")
	}

	doc, err := mcpfile.Read(a.Fsys, path)
	if err != nil {
		return ConfigureResult{}, err
	}

	// Backups protect a previously configured entry, never first-time setup.
	var backupPath string
	if doc.Has(mcpfile.ServerName) {
		backupPath, err = backup.Create(a.Fsys, path)
		if err != nil {
			return ConfigureResult{}, errors.Wrap(err, "backing up config")
		}
		a.Log.Debug("created backup", "platform", a.Desc.ID, "path", backupPath)
	}

	updated, hadOtherServers, err := doc.Upsert(mcpfile.ServerName, entry)
	if err != nil {
		return ConfigureResult{}, errors.Wrap(err, "updating config document")
	}

	a.Log.Debug("writing entry",
		"platform", a.Desc.ID,
		"path", path,
		"command", entry.Command,
		"env", redact.Secrets(entry.Env),
	)

	if err := mcpfile.Write(a.Fsys, path, doc); err != nil {
		return ConfigureResult{}, err
	}

	a.Log.Info("configured platform",
		"platform", a.Desc.ID,
		"path", path,
		"updated", updated,
	)

	return ConfigureResult{
		Path:            path,
		Updated:         updated,
		HadOtherServers: hadOtherServers,
		BackupPath:      backupPath,
	}, nil
}

// ValidationResult describes whether a platform currently carries a working
// spectator entry.
type ValidationResult struct {
	// Valid reports whether the entry was found in any scope.
	Valid bool

	// Scope is where the entry was found. Meaningful only when Valid.
	Scope paths.Scope

	// Path is the config file the verdict is based on.
	Path string

	// Form is the wire shape of the found entry. Meaningful only when Valid.
	Form mcpfile.Form

	// APIKey is the key embedded in the found entry. Callers mask it before
	// display.
	APIKey string

	// Reason explains a negative verdict in one line.
	Reason string
}

// Validate checks whether the platform is configured. The global scope is
// checked first, then the project scope where the platform supports one;
// either suffices. Validate reports problems through the result, never
// through an error: a missing or unreadable file is a finding, not a
// failure.
func (a *Adapter) Validate() ValidationResult {
	global := a.validateScope(paths.ScopeGlobal)
	if global.Valid {
		return global
	}

	if a.Desc.ProjectScope {
		if project := a.validateScope(paths.ScopeProject); project.Valid {
			return project
		}
	}

	return global
}

// ValidateScopes reports every scope the platform supports separately, the
// global scope first. Unlike Validate, no verdict shadows another; callers
// get one result per config file location.
func (a *Adapter) ValidateScopes() []ValidationResult {
	results := []ValidationResult{a.validateScope(paths.ScopeGlobal)}
	if a.Desc.ProjectScope {
		results = append(results, a.validateScope(paths.ScopeProject))
	}
	return results
}

func (a *Adapter) validateScope(scope paths.Scope) ValidationResult {
	result := ValidationResult{Scope: scope}

	path, err := a.Resolver.ConfigPath(a.Desc.ID, scope)
	if err != nil {
		result.Reason = fmt.Sprintf("cannot resolve config path: %v", err)
		return result
	}
	result.Path = path

	if exists, _ := afero.Exists(a.Fsys, path); !exists {
		result.Reason = "config file not found"
		return result
	}

	doc, err := mcpfile.Read(a.Fsys, path)
	if err != nil {
		result.Reason = fmt.Sprintf("config unreadable: %v", err)
		return result
	}

	raw, ok := doc.Get(mcpfile.ServerName)
	if !ok {
		result.Reason = fmt.Sprintf("no %q entry", mcpfile.ServerName)
		return result
	}

	parsed := mcpfile.ParseEntry(raw)
	result.Valid = true
	result.Form = parsed.Form
	result.APIKey = parsed.APIKey
	result.Reason = ""
	return result
}

// RemoveResult describes what Remove did across the platform's scopes.
type RemoveResult struct {
	// Removed is true when at least one entry was deleted.
	Removed bool

	// Paths lists the config files that were rewritten.
	Paths []string

	// Backups lists the backup files created before rewriting.
	Backups []string
}

// Remove deletes the spectator entry from every scope the platform
// supports. Config files are rewritten without the entry, never deleted, so
// sibling servers and unrelated settings survive. A platform with no entry
// anywhere yields {Removed: false} and no error.
func (a *Adapter) Remove() (RemoveResult, error) {
	var result RemoveResult

	scopes := []paths.Scope{paths.ScopeGlobal}
	if a.Desc.ProjectScope {
		scopes = append(scopes, paths.ScopeProject)
	}

	for _, scope := range scopes {
		path, err := a.Resolver.ConfigPath(a.Desc.ID, scope)
		if err != nil {
			return result, errors.Wrap(err, "resolving config path")
		}

		if exists, _ := afero.Exists(a.Fsys, path); !exists {
			continue
		}

		doc, err := mcpfile.Read(a.Fsys, path)
		if err != nil {
			return result, err
		}
		if !doc.Has(mcpfile.ServerName) {
			continue
		}

		// The file exists and carries the entry, so a backup is mandatory.
		backupPath, err := backup.Create(a.Fsys, path)
		if err != nil {
			return result, errors.Wrap(err, "backing up config")
		}

		doc.Remove(mcpfile.ServerName)
		if err := mcpfile.Write(a.Fsys, path, doc); err != nil {
			return result, err
		}

		a.Log.Info("removed entry", "platform", a.Desc.ID, "path", path, "scope", scope)

		result.Removed = true
		result.Paths = append(result.Paths, path)
		result.Backups = append(result.Backups, backupPath)
	}

	return result, nil
}

// ManualInstructions renders copy-paste setup steps for users who prefer to
// edit config files themselves. Pure string building; nothing is read or
// written.
func (a *Adapter) ManualInstructions(apiKey string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", a.Desc.DisplayName)

	if path, err := a.Resolver.ConfigPath(a.Desc.ID, paths.ScopeGlobal); err == nil {
		fmt.Fprintf(&b, "  Global config:  %s\n", path)
	}
	if a.Desc.ProjectScope {
		if path, err := a.Resolver.ConfigPath(a.Desc.ID, paths.ScopeProject); err == nil {
			fmt.Fprintf(&b, "  Project config: %s\n", path)
		}
	}

	b.WriteString("\n  Add this entry under \"mcpServers\":\n\n")

	entry, err := json.MarshalIndent(mcpfile.RemoteEntry(apiKey), "  ", "  ")
	if err != nil {
		// A fixed struct of strings cannot fail to marshal
		entry = []byte("{}")
	}
	fmt.Fprintf(&b, "  %q: %s\n", mcpfile.ServerName, entry)

	if a.Desc.Note != "" {
		fmt.Fprintf(&b, "\n  %s\n", a.Desc.Note)
	}

	return b.String()
}
