package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/mcpfile"
	"github.com/spectatorcontext/spectator-cli/internal/platform"
)

var removeForce bool

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false,
		"remove without confirmation")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"uninstall"},
	Short:   "Remove the spectator entry from your AI assistants",
	Long: `Remove the spectator-voice-memory entry from every supported
assistant's config files, global and project scope alike.

Config files are rewritten without the entry, never deleted, so other
MCP servers and unrelated settings survive. Each file is backed up
before it is rewritten. Platforms with no entry are left untouched.

Targets default to all supported platforms, installed or not; a
leftover entry from an uninstalled assistant is still worth cleaning
up.

Examples:
  # Remove everywhere, with confirmation
  spectator remove

  # Remove from Cursor only, no questions
  spectator remove --platforms cursor --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRemove(newRunEnv(cmd))
	},
}

func runRemove(e runEnv) error {
	if err := e.requireResolver(); err != nil {
		return err
	}

	descs, err := describedPlatforms(e)
	if err != nil {
		return err
	}

	// Off-TTY runs are scripted; asking would hang them.
	if !removeForce && e.Prompter.IsTTY() {
		question := fmt.Sprintf("Remove the %s entry from %d platform(s)?",
			mcpfile.ServerName, len(descs))
		ok, err := e.Prompter.Confirm(question, false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(e.Out, "Aborted.")
			return nil
		}
	}

	var removed, untouched, failed int
	for _, desc := range descs {
		adapter := platform.NewAdapter(desc, e.Resolver, e.Fsys, e.Log)
		res, err := adapter.Remove()
		if err != nil {
			failed++
			failColor.Fprintf(e.Out, "✗ %s: %v\n", desc.DisplayName, err)
			e.Log.Error("remove failed", "platform", desc.ID, "error", err)
			continue
		}
		if !res.Removed {
			untouched++
			continue
		}

		removed++
		okColor.Fprintf(e.Out, "✓ %s entry removed\n", desc.DisplayName)
		for _, path := range res.Paths {
			dimColor.Fprintf(e.Out, "  %s\n", path)
		}
	}

	switch {
	case removed == 0 && failed == 0:
		fmt.Fprintln(e.Out, "Nothing to remove; no platform carries the entry.")
	default:
		fmt.Fprintf(e.Out, "\nRemoved from %d platform(s); %d had nothing to remove.\n",
			removed, untouched)
	}

	if failed > 0 && failed == len(descs) {
		return errors.NewUserError(errors.ErrAllPlatformsFailed, "Run: spectator doctor")
	}
	return nil
}
