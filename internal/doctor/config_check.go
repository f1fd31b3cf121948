package doctor

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/spectatorcontext/spectator-cli/internal/backup"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
	"github.com/spectatorcontext/spectator-cli/internal/redact"
)

// PlaintextKeyCheck warns when the CLI's own config file carries the API
// key in plain text. The key belongs in the environment or the keyring.
type PlaintextKeyCheck struct {
	Fsys afero.Fs

	// ConfigPath is the CLI config file to inspect.
	ConfigPath string
}

var _ Check = (*PlaintextKeyCheck)(nil)

// Name returns the unique identifier for this check.
func (c *PlaintextKeyCheck) Name() string {
	return "plaintext-api-key"
}

// Category returns the grouping for this check.
func (c *PlaintextKeyCheck) Category() string {
	return "config"
}

// Run executes the plaintext key check.
func (c *PlaintextKeyCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	data, err := afero.ReadFile(c.Fsys, c.ConfigPath)
	if err != nil {
		// No config file means no key on disk
		result.Status = SeverityPass
		result.Message = "no API key stored in the CLI config"
		return result
	}

	var cfg struct {
		APIKey string `yaml:"api_key"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("CLI config is not valid YAML: %v", err)
		result.Details = map[string]any{"path": c.ConfigPath}
		return result
	}

	if cfg.APIKey == "" {
		result.Status = SeverityPass
		result.Message = "no API key stored in the CLI config"
		return result
	}

	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("API key stored as plain text in %s", c.ConfigPath)
	result.Details = map[string]any{
		"path": c.ConfigPath,
		"key":  redact.Value(cfg.APIKey),
	}
	result.FixHint = "remove api_key from the file; use SPECTATOR_API_KEY or `spectator setup --save-key` instead"
	return result
}

// BackupCheck counts the sibling backup files next to each platform config
// and flags buildup beyond the retention limit.
type BackupCheck struct {
	Fsys     afero.Fs
	Resolver *paths.Resolver

	// Retention is how many backups per config file are considered healthy.
	Retention int

	fixer BackupFixer
}

var _ Check = (*BackupCheck)(nil)
var _ Fixer = (*BackupCheck)(nil)

// Name returns the unique identifier for this check.
func (c *BackupCheck) Name() string {
	return "stale-backups"
}

// Category returns the grouping for this check.
func (c *BackupCheck) Category() string {
	return "filesystem"
}

// Run executes the backup buildup check.
func (c *BackupCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	resolved, _ := resolvePlatformPaths(c.Resolver)

	var total, stale int
	var stalePaths []string

	for _, pp := range resolved {
		infos, err := backup.List(c.Fsys, pp.Path)
		if err != nil {
			// No backups or an unreadable directory; nothing to count
			continue
		}

		total += len(infos)
		if len(infos) > c.Retention {
			stale += len(infos) - c.Retention
			stalePaths = append(stalePaths, pp.Path)
		}
	}

	c.fixer = BackupFixer{fsys: c.Fsys, paths: stalePaths, keep: c.Retention}

	if stale == 0 {
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("backup count within retention (%d total)", total)
		return result
	}

	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("%d backup file(s) beyond the retention of %d", stale, c.Retention)
	result.Details = map[string]any{
		"total":     total,
		"stale":     stale,
		"paths":     stalePaths,
		"retention": c.Retention,
	}
	result.Fixable = true
	result.FixHint = "run: spectator backups prune"
	return result
}

// CanFix reports whether Run found stale backups to remove.
func (c *BackupCheck) CanFix() bool {
	return c.fixer.CanFix()
}

// Fix prunes the stale backups found by Run.
func (c *BackupCheck) Fix() []FixResult {
	return c.fixer.Fix()
}
