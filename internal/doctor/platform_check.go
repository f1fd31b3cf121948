package doctor

import (
	"fmt"
	"strings"

	"github.com/spectatorcontext/spectator-cli/internal/platform"
)

// DetectionCheck reports which supported AI assistants are installed.
type DetectionCheck struct {
	Detector *platform.Detector
}

var _ Check = (*DetectionCheck)(nil)

// Name returns the unique identifier for this check.
func (c *DetectionCheck) Name() string {
	return "platform-detection"
}

// Category returns the grouping for this check.
func (c *DetectionCheck) Category() string {
	return "platform"
}

// Run executes the platform detection check and returns its result.
func (c *DetectionCheck) Run() *CheckResult {
	detections := c.Detector.DetectAll()

	platforms := make(map[string]any, len(detections))
	var installed int

	for _, d := range detections {
		platforms[d.Descriptor.ID] = map[string]any{
			"installed":   d.Installed,
			"config_path": d.ConfigPath,
		}
		if d.Installed {
			installed++
		}
	}

	details := map[string]any{
		"platforms": platforms,
		"installed": installed,
		"total":     len(detections),
	}

	if installed == 0 {
		names := make([]string, 0, len(detections))
		for _, d := range detections {
			names = append(names, d.Descriptor.DisplayName)
		}
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "no supported AI assistants detected; spectator has nothing to configure",
			Details:  details,
			FixHint:  "install one of: " + strings.Join(names, ", "),
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d of %d supported assistants installed", installed, len(detections)),
		Details:  details,
	}
}
