package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spectatorcontext/spectator-cli/cmd"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/platform"
	"github.com/spectatorcontext/spectator-cli/internal/redact"
)

var (
	statusJSON    bool
	statusQuiet   bool
	statusVerbose bool
)

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	statusCmd.Flags().BoolVar(&statusQuiet, "quiet", false, "one line per platform")
	statusCmd.Flags().BoolVar(&statusVerbose, "verbose", false, "show paths, forms, and masked keys")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show detection and configuration overview",
	Long: `Show which assistants are installed and which carry the
spectator-voice-memory entry.

Every supported platform is listed, installed or not; a leftover entry
on an uninstalled assistant still shows up.

Output modes (mutually exclusive):
  (default)   Per-platform sections with per-scope status
  --quiet     One line per platform
  --verbose   Adds config paths, entry forms, and masked keys
  --json      Machine-readable JSON output

Examples:
  # Overview
  spectator status

  # Scripted check
  spectator status --json`,
	Args:    cobra.NoArgs,
	PreRunE: validateStatusFlags,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStatus(newRunEnv(cmd))
	},
}

// validateStatusFlags ensures output flags are mutually exclusive.
func validateStatusFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if statusJSON {
		count++
	}
	if statusQuiet {
		count++
	}
	if statusVerbose {
		count++
	}

	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"),
			"pick one output mode")
	}
	return nil
}

// platformStatus holds the collected status for a single platform.
type platformStatus struct {
	Desc      platform.Descriptor
	Installed bool
	Scopes    []platform.ValidationResult
}

// collectStatus gathers detection and per-scope configuration state.
// Validation runs even for uninstalled platforms; the config file outlives
// the product.
func collectStatus(e runEnv, desc platform.Descriptor) platformStatus {
	adapter := platform.NewAdapter(desc, e.Resolver, e.Fsys, e.Log)
	return platformStatus{
		Desc:      desc,
		Installed: e.Detector.Installed(desc),
		Scopes:    adapter.ValidateScopes(),
	}
}

func runStatus(e runEnv) error {
	if err := e.requireResolver(); err != nil {
		return err
	}

	descs, err := describedPlatforms(e)
	if err != nil {
		return err
	}

	statuses := make([]platformStatus, len(descs))
	for i, desc := range descs {
		statuses[i] = collectStatus(e, desc)
	}

	switch {
	case statusJSON:
		return outputStatusJSON(e, statuses)
	case statusQuiet:
		return outputStatusQuiet(e, statuses)
	case statusVerbose:
		return outputStatusVerbose(e, statuses)
	default:
		return outputStatusCompact(e, statuses)
	}
}

// JSON output types

type statusJSONOutput struct {
	Version   string                       `json:"version"`
	Platforms map[string]platformJSONEntry `json:"platforms"`
}

type platformJSONEntry struct {
	Installed bool             `json:"installed"`
	Scopes    []scopeJSONEntry `json:"scopes"`
}

type scopeJSONEntry struct {
	Scope      string `json:"scope"`
	Configured bool   `json:"configured"`
	Form       string `json:"form,omitempty"`
	Key        string `json:"key,omitempty"`
	Path       string `json:"path,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func outputStatusJSON(e runEnv, statuses []platformStatus) error {
	output := statusJSONOutput{
		Version:   cmd.Version,
		Platforms: make(map[string]platformJSONEntry),
	}

	for _, st := range statuses {
		entry := platformJSONEntry{Installed: st.Installed}
		for _, res := range st.Scopes {
			scope := scopeJSONEntry{
				Scope:      string(res.Scope),
				Configured: res.Valid,
				Path:       res.Path,
				Reason:     res.Reason,
			}
			if res.Valid {
				scope.Form = res.Form.String()
				scope.Key = redact.Value(res.APIKey)
			}
			entry.Scopes = append(entry.Scopes, scope)
		}
		output.Platforms[st.Desc.ID] = entry
	}

	enc := json.NewEncoder(e.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputStatusQuiet(e runEnv, statuses []platformStatus) error {
	for _, st := range statuses {
		parts := make([]string, 0, 3)
		if st.Installed {
			parts = append(parts, "installed")
		} else {
			parts = append(parts, "not installed")
		}
		for _, res := range st.Scopes {
			if res.Valid {
				parts = append(parts, string(res.Scope)+": configured")
			} else {
				parts = append(parts, string(res.Scope)+": missing")
			}
		}
		fmt.Fprintf(e.Out, "%s: %s\n", st.Desc.ID, strings.Join(parts, ", "))
	}
	return nil
}

func outputStatusCompact(e runEnv, statuses []platformStatus) error {
	fmt.Fprintf(e.Out, "spectator version %s\n", cmd.Version)

	for _, st := range statuses {
		fmt.Fprintln(e.Out)

		headerColor.Fprintf(e.Out, "Platform: %s", st.Desc.DisplayName)
		if !st.Installed {
			dimColor.Fprintf(e.Out, " (not installed)")
		}
		fmt.Fprintln(e.Out)

		for _, res := range st.Scopes {
			if res.Valid {
				fmt.Fprintf(e.Out, "  %s: configured (%s)\n", res.Scope, res.Form)
			} else {
				fmt.Fprintf(e.Out, "  %s: not configured\n", res.Scope)
			}
		}
	}
	return nil
}

func outputStatusVerbose(e runEnv, statuses []platformStatus) error {
	fmt.Fprintf(e.Out, "spectator version %s\n", cmd.Version)

	for _, st := range statuses {
		fmt.Fprintln(e.Out)

		headerColor.Fprintf(e.Out, "Platform: %s", st.Desc.DisplayName)
		if !st.Installed {
			dimColor.Fprintf(e.Out, " (not installed)")
		}
		fmt.Fprintln(e.Out)

		for _, res := range st.Scopes {
			fmt.Fprintf(e.Out, "\n  Scope: %s\n", res.Scope)
			fmt.Fprintf(e.Out, "    Path: %s\n", res.Path)
			if res.Valid {
				okColor.Fprintf(e.Out, "    Entry: present (%s form, key %s)\n",
					res.Form, redact.Value(res.APIKey))
			} else {
				warnColor.Fprintf(e.Out, "    Entry: absent (%s)\n", truncate(res.Reason, 60))
			}
		}
	}
	return nil
}
