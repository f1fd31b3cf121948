package doctor

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/spectatorcontext/spectator-cli/internal/backup"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

// Fixer is an optional interface that checks can implement to support
// auto-remediation. Checks that implement Fixer can repair issues they
// detect when the --fix flag is used. Both methods must be called after
// Run().
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Returns a FixResult for each attempted repair.
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool

	// Description explains what was fixed or why it couldn't be fixed.
	Description string

	// Error contains the error if the fix failed.
	Error error
}

// PermissionFixer narrows config file permissions flagged by
// PermissionCheck.
type PermissionFixer struct {
	fsys   afero.Fs
	issues []pathIssue
}

// CanFix returns true if there are any fixable permission issues.
func (f *PermissionFixer) CanFix() bool {
	for _, issue := range f.issues {
		if issue.Fixable {
			return true
		}
	}
	return false
}

// Fix applies the target mode to every fixable issue.
func (f *PermissionFixer) Fix() []FixResult {
	var results []FixResult
	for _, issue := range f.issues {
		if !issue.Fixable {
			continue
		}

		result := FixResult{Path: issue.Path}
		if err := f.fsys.Chmod(issue.Path, issue.targetPerm); err != nil {
			result.Description = fmt.Sprintf("failed to chmod %04o: %v", issue.targetPerm, err)
			result.Error = errors.Wrapf(err, "chmod %04o %s", issue.targetPerm, issue.Path)
		} else {
			result.Fixed = true
			result.Description = fmt.Sprintf("chmod %04o", issue.targetPerm)
		}
		results = append(results, result)
	}
	return results
}

// BackupFixer prunes backup files beyond the retention limit, as flagged
// by BackupCheck.
type BackupFixer struct {
	fsys  afero.Fs
	paths []string
	keep  int
}

// CanFix returns true if there are stale backups to remove.
func (f *BackupFixer) CanFix() bool {
	return len(f.paths) > 0
}

// Fix prunes each flagged config file's backups down to the retention.
func (f *BackupFixer) Fix() []FixResult {
	var results []FixResult
	for _, path := range f.paths {
		result := FixResult{Path: path}
		removed, err := backup.Prune(f.fsys, path, f.keep)
		if err != nil {
			result.Description = fmt.Sprintf("failed to prune backups: %v", err)
			result.Error = errors.Wrapf(err, "pruning backups of %s", path)
		} else {
			result.Fixed = true
			result.Description = fmt.Sprintf("removed %d backup(s)", removed)
		}
		results = append(results, result)
	}
	return results
}
