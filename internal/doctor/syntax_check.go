package doctor

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/spectatorcontext/spectator-cli/internal/mcpfile"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
)

// SyntaxCheck parses every existing platform config file and reports the
// ones a configure run would refuse to touch.
type SyntaxCheck struct {
	Fsys     afero.Fs
	Resolver *paths.Resolver
}

var _ Check = (*SyntaxCheck)(nil)

// Name returns the unique identifier for this check.
func (c *SyntaxCheck) Name() string {
	return "config-syntax"
}

// Category returns the grouping for this check.
func (c *SyntaxCheck) Category() string {
	return "config"
}

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Run executes the syntax validation check across all resolvable configs.
func (c *SyntaxCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  make(map[string]any),
	}

	resolved, _ := resolvePlatformPaths(c.Resolver)

	var fileResults []syntaxFileResult
	var errorCount, passCount, missingCount int

	for _, pp := range resolved {
		fr := syntaxFileResult{Path: pp.Path}

		exists, _ := afero.Exists(c.Fsys, pp.Path)
		if !exists {
			fr.Status = "missing"
			fr.Message = "file does not exist (not configured)"
			missingCount++
			fileResults = append(fileResults, fr)
			continue
		}

		if _, err := mcpfile.Read(c.Fsys, pp.Path); err != nil {
			fr.Status = "error"
			fr.Message = err.Error()
			errorCount++
		} else {
			fr.Status = "pass"
			passCount++
		}
		fileResults = append(fileResults, fr)
	}

	result.Details["files"] = fileResults
	result.Details["checked"] = len(fileResults)
	result.Details["passed"] = passCount
	result.Details["errors"] = errorCount
	result.Details["missing"] = missingCount

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d config file(s) have syntax errors", errorCount)
		result.FixHint = "review the error details and fix the syntax in each file"
	case passCount > 0:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d config file(s) validated successfully", passCount)
	default:
		result.Status = SeverityInfo
		result.Message = "no config files found to validate"
	}

	return result
}
