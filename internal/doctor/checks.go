package doctor

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/spectatorcontext/spectator-cli/internal/paths"
	"github.com/spectatorcontext/spectator-cli/internal/platform"
)

// maxSecureFilePerm is the widest acceptable mode for platform config files
// (-rw-r--r--). Spectator entries embed the API key, so anything wider
// leaks it.
const maxSecureFilePerm os.FileMode = 0644

// platformPath is one resolvable platform config file location.
type platformPath struct {
	Platform string
	Scope    paths.Scope
	Path     string
}

// resolvePlatformPaths expands the registry into every config file location
// the resolver can produce: the global path for all platforms plus the
// project path where one exists. Resolution failures are collected rather
// than aborting.
func resolvePlatformPaths(resolver *paths.Resolver) ([]platformPath, []error) {
	var resolved []platformPath
	var errs []error

	for _, desc := range platform.Registry() {
		scopes := []paths.Scope{paths.ScopeGlobal}
		if desc.ProjectScope {
			scopes = append(scopes, paths.ScopeProject)
		}

		for _, scope := range scopes {
			path, err := resolver.ConfigPath(desc.ID, scope)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s (%s): %w", desc.ID, scope, err))
				continue
			}
			resolved = append(resolved, platformPath{
				Platform: desc.ID,
				Scope:    scope,
				Path:     path,
			})
		}
	}

	return resolved, errs
}

// HomeCheck verifies the user's home directory could be determined. Every
// platform config path hangs off it.
type HomeCheck struct {
	Resolver *paths.Resolver

	// Err is the failure from building the resolver, when there was one.
	Err error
}

var _ Check = (*HomeCheck)(nil)

// Name returns the unique identifier for this check.
func (c *HomeCheck) Name() string {
	return "home-resolution"
}

// Category returns the grouping for this check.
func (c *HomeCheck) Category() string {
	return "environment"
}

// Run executes the home directory check.
func (c *HomeCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if c.Err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("home directory could not be resolved: %v", c.Err)
		result.FixHint = "set the HOME environment variable"
		return result
	}
	if c.Resolver == nil || c.Resolver.HomeDir == "" {
		result.Status = SeverityError
		result.Message = "home directory is empty"
		result.FixHint = "set the HOME environment variable"
		return result
	}

	result.Status = SeverityPass
	result.Message = "home directory resolved"
	result.Details = map[string]any{"home": c.Resolver.HomeDir}
	return result
}

// PathResolutionCheck verifies a config file path can be computed for every
// supported platform and scope.
type PathResolutionCheck struct {
	Resolver *paths.Resolver
}

var _ Check = (*PathResolutionCheck)(nil)

// Name returns the unique identifier for this check.
func (c *PathResolutionCheck) Name() string {
	return "path-resolution"
}

// Category returns the grouping for this check.
func (c *PathResolutionCheck) Category() string {
	return "platform"
}

// Run executes the path resolution check.
func (c *PathResolutionCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  make(map[string]any),
	}

	resolved, errs := resolvePlatformPaths(c.Resolver)

	pathsByPlatform := make(map[string]any, len(resolved))
	for _, pp := range resolved {
		key := pp.Platform
		if pp.Scope == paths.ScopeProject {
			key += " (project)"
		}
		pathsByPlatform[key] = pp.Path
	}
	result.Details["paths"] = pathsByPlatform

	if len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, err := range errs {
			messages = append(messages, err.Error())
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d platform path(s) could not be resolved", len(errs))
		result.Details["failures"] = messages
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("resolved %d config paths across %d platforms", len(resolved), len(platform.Registry()))
	return result
}

// pathIssue represents a single permission problem on one config file.
type pathIssue struct {
	Path        string
	Platform    string
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	FixHint     string

	// targetPerm is the mode a fix would apply.
	targetPerm os.FileMode
}

// PermissionCheck flags platform config files whose permissions would leak
// the embedded API key or let others rewrite the file.
type PermissionCheck struct {
	Fsys     afero.Fs
	Resolver *paths.Resolver

	fixer PermissionFixer
}

var _ Check = (*PermissionCheck)(nil)
var _ Fixer = (*PermissionCheck)(nil)

// Name returns the unique identifier for this check.
func (c *PermissionCheck) Name() string {
	return "file-permissions"
}

// Category returns the grouping for this check.
func (c *PermissionCheck) Category() string {
	return "filesystem"
}

// Run executes the permission check across every resolvable config file.
func (c *PermissionCheck) Run() *CheckResult {
	resolved, _ := resolvePlatformPaths(c.Resolver)

	var issues []pathIssue
	var checked int

	for _, pp := range resolved {
		info, err := c.Fsys.Stat(pp.Path)
		if err != nil {
			// Missing files belong to unconfigured platforms
			continue
		}
		checked++

		// Unix permission bits carry no meaning on Windows
		if c.Resolver.GOOS == "windows" {
			continue
		}

		perm := info.Mode().Perm()

		if perm&0002 != 0 {
			issues = append(issues, pathIssue{
				Path:        pp.Path,
				Platform:    pp.Platform,
				Problem:     "file is world-writable",
				Severity:    SeverityWarning,
				Permissions: formatPermissions(info.Mode()),
				Fixable:     true,
				FixHint:     "chmod 644 " + pp.Path,
				targetPerm:  maxSecureFilePerm,
			})
			continue
		}

		if perm > maxSecureFilePerm {
			issues = append(issues, pathIssue{
				Path:        pp.Path,
				Platform:    pp.Platform,
				Problem:     fmt.Sprintf("mode %s is wider than %s", formatPermissions(info.Mode()), formatOctal(maxSecureFilePerm)),
				Severity:    SeverityWarning,
				Permissions: formatPermissions(info.Mode()),
				Fixable:     true,
				FixHint:     "chmod 644 " + pp.Path,
				targetPerm:  maxSecureFilePerm,
			})
		}
	}

	c.fixer = PermissionFixer{fsys: c.Fsys, issues: issues}

	return c.buildResult(issues, checked)
}

// CanFix reports whether Run found issues a Fix call could repair.
func (c *PermissionCheck) CanFix() bool {
	return c.fixer.CanFix()
}

// Fix repairs the permission issues found by Run.
func (c *PermissionCheck) Fix() []FixResult {
	return c.fixer.Fix()
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *PermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d config file(s) have safe permissions", checked),
		}
	}

	details := map[string]any{
		"checked_paths": checked,
		"issue_count":   len(issues),
	}

	issueDetails := make([]map[string]any, 0, len(issues))
	var fixHints []string
	for _, issue := range issues {
		issueDetails = append(issueDetails, map[string]any{
			"path":        issue.Path,
			"platform":    issue.Platform,
			"problem":     issue.Problem,
			"permissions": issue.Permissions,
		})
		if issue.FixHint != "" {
			fixHints = append(fixHints, issue.FixHint)
		}
	}
	details["issues"] = issueDetails

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  fmt.Sprintf("found %d permission issue(s) across %d config file(s)", len(issues), checked),
		Details:  details,
		Fixable:  true,
	}
	if len(fixHints) > 0 {
		result.FixHint = fixHints[0]
		if len(fixHints) > 1 {
			result.FixHint = fmt.Sprintf("%s (and %d more)", fixHints[0], len(fixHints)-1)
		}
	}

	return result
}

// formatPermissions returns a human-readable permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// formatOctal returns the octal representation of a file mode.
func formatOctal(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode)
}
