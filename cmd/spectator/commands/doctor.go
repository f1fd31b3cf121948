package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spectatorcontext/spectator-cli/internal/backup"
	"github.com/spectatorcontext/spectator-cli/internal/config"
	"github.com/spectatorcontext/spectator-cli/internal/doctor"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"attempt to repair fixable issues")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Run diagnostic checks on spectator and the assistant config files it
manages.

Checks home directory resolution, per-platform config paths, assistant
detection, JSON syntax of existing configs, file permissions, plaintext
API keys in the CLI config, and stale backup buildup.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

--fix repairs what it safely can: narrows loose file permissions and
prunes backups beyond the retention limit, then re-runs the checks.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctor(newRunEnv(cmd))
	},
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"),
			"pick one output mode")
	}
	return nil
}

func runDoctor(e runEnv) error {
	retention := backup.DefaultRetentionCount
	if e.Config != nil {
		retention = e.Config.BackupRetention
	}

	checks := doctor.DefaultChecks(e.Fsys, e.Resolver, e.ResolverErr, e.Detector,
		config.FilePath(), retention)

	runner := doctor.NewRunner()
	for _, c := range checks {
		runner.AddCheck(c)
	}
	report := runner.Run()

	if doctorFix {
		if applyFixes(e, checks) > 0 {
			// Re-run so the report reflects the repaired state
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(e, report); err != nil {
		return err
	}

	// The report already told the story; the exit code just summarizes it
	switch {
	case report.HasErrors():
		return errors.NewExitError(nil, 2)
	case report.HasWarnings():
		return errors.NewExitError(nil, 1)
	default:
		return nil
	}
}

// applyFixes runs every fixable check's remediation and reports each
// attempt. Returns the number of successful fixes.
func applyFixes(e runEnv, checks []doctor.Check) int {
	fixed := 0
	for _, c := range checks {
		fixer, ok := c.(doctor.Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		for _, res := range fixer.Fix() {
			if res.Error != nil {
				failColor.Fprintf(e.Out, "✗ %s: %s\n", res.Path, res.Description)
				continue
			}
			okColor.Fprintf(e.Out, "✓ %s: %s\n", res.Path, res.Description)
			fixed++
		}
	}
	if fixed > 0 {
		fmt.Fprintln(e.Out)
	}
	return fixed
}

func outputDoctorReport(e runEnv, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(e.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return outputDoctorText(e, report)
}

func outputDoctorText(e runEnv, report *doctor.Report) error {
	// Normal mode shows only errors and warnings; verbose shows everything
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(e.Out, "%s [%s] %s: %s\n",
			statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			dimColor.Fprintf(e.Out, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(e.Out)
	}

	fmt.Fprintf(e.Out, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
