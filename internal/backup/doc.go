// Package backup creates timestamped sibling copies of assistant config
// files before spectator overwrites them.
//
// # Backup Strategy
//
// Backups live next to the file they protect, never in a central store, so
// a user inspecting ~/.cursor/ sees the history of their own config at a
// glance:
//
//	~/.cursor/
//	├── mcp.json
//	├── mcp.json.backup.1724567890123
//	└── mcp.json.backup.1724571490456
//
// The suffix is the creation time in Unix milliseconds. Restoring is a plain
// file copy the user can do by hand; the tool deliberately has no restore
// command that could itself overwrite fresh state.
//
// # When Backups Happen
//
// [Create] runs before any write that would overwrite a file already
// containing the spectator entry. First-time configuration (file absent, or
// present without the entry's prior value at stake) produces no backup.
// A missing source file is a silent no-op: Create returns ("", nil).
//
// # Retention
//
// Backups accumulate one per overwrite. [List] enumerates them newest first
// and [Prune] trims beyond a retention count (default
// [DefaultRetentionCount]):
//
//	removed, err := backup.Prune(fsys, "/home/dev/.cursor/mcp.json", 5)
//
// All operations take an [afero.Fs] so tests run against an in-memory
// filesystem.
package backup
