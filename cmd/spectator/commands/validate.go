package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spectatorcontext/spectator-cli/internal/mcpfile"
	"github.com/spectatorcontext/spectator-cli/internal/platform"
	"github.com/spectatorcontext/spectator-cli/internal/redact"
)

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check which assistants carry the spectator entry",
	Long: `Check every supported assistant's config files for the
spectator-voice-memory entry.

Each config file location is reported separately: global configs for
every platform, plus the project-local configs of the platforms that
read one. Embedded API keys are masked. A missing config file is a
finding, not an error.

Examples:
  # Check everything
  spectator validate

  # Check one assistant, machine-readable
  spectator validate --platforms cursor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runValidate(newRunEnv(cmd))
	},
}

// validateRow is one config file location's verdict, for both output modes.
type validateRow struct {
	Platform   string `json:"platform"`
	Scope      string `json:"scope"`
	Configured bool   `json:"configured"`
	Form       string `json:"form,omitempty"`
	Key        string `json:"key,omitempty"`
	Path       string `json:"path,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func runValidate(e runEnv) error {
	if err := e.requireResolver(); err != nil {
		return err
	}

	descs, err := describedPlatforms(e)
	if err != nil {
		return err
	}

	var rows []validateRow
	configured := 0
	for _, desc := range descs {
		adapter := platform.NewAdapter(desc, e.Resolver, e.Fsys, e.Log)
		for _, res := range adapter.ValidateScopes() {
			row := validateRow{
				Platform:   desc.ID,
				Scope:      string(res.Scope),
				Configured: res.Valid,
				Path:       res.Path,
				Reason:     res.Reason,
			}
			if res.Valid {
				configured++
				row.Form = res.Form.String()
				row.Key = redact.Value(res.APIKey)
			}
			rows = append(rows, row)
		}
	}

	if validateJSON {
		enc := json.NewEncoder(e.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(e.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLATFORM\tSCOPE\tSTATUS\tFORM\tKEY\tDETAIL")
	for _, row := range rows {
		status := "missing"
		form := "-"
		key := "-"
		detail := row.Reason
		if row.Configured {
			status = "configured"
			form = row.Form
			key = row.Key
			detail = row.Path
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Platform, row.Scope, status, form, key, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(e.Out, "\n%d of %d config location(s) carry the %s entry.\n",
		configured, len(rows), mcpfile.ServerName)
	return nil
}
