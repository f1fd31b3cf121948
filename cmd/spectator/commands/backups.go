package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spectatorcontext/spectator-cli/internal/backup"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

var (
	backupsListJSON  bool
	backupsPruneKeep int
)

func init() {
	backupsListCmd.Flags().BoolVar(&backupsListJSON, "json", false, "output as JSON")
	backupsPruneCmd.Flags().IntVar(&backupsPruneKeep, "keep", 0,
		"number of backups to keep per config file (default: backup_retention from the CLI config)")
	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsPruneCmd)
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "Manage config file backups",
	Long: `Manage the timestamped backups spectator creates next to assistant
config files before overwriting them.

Without a subcommand, lists all backups.`,
	Example: `  # List every backup
  spectator backups

  # Trim each config's backups to the three newest
  spectator backups prune --keep 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBackupsList(newRunEnv(cmd))
	},
}

var backupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List the backups of every resolvable assistant config file, newest
first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBackupsList(newRunEnv(cmd))
	},
}

var backupsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete backups beyond the retention limit",
	Long: `Delete old backups, keeping the newest --keep per config file.

Without --keep, the backup_retention value from the CLI config is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBackupsPrune(newRunEnv(cmd))
	},
}

// backupListEntry is one config file's backups in JSON output.
type backupListEntry struct {
	Platform string           `json:"platform"`
	Scope    string           `json:"scope"`
	Source   string           `json:"source"`
	Backups  []backupInfoJSON `json:"backups"`
}

type backupInfoJSON struct {
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

func runBackupsList(e runEnv) error {
	if err := e.requireResolver(); err != nil {
		return err
	}

	descs, err := describedPlatforms(e)
	if err != nil {
		return err
	}

	var entries []backupListEntry
	for _, loc := range configPaths(e, descs) {
		infos, err := backup.List(e.Fsys, loc.Path)
		if errors.Is(err, backup.ErrNoBackupsFound) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "listing backups of %s", loc.Path)
		}

		entry := backupListEntry{
			Platform: loc.Platform,
			Scope:    string(loc.Scope),
			Source:   loc.Path,
		}
		for _, info := range infos {
			entry.Backups = append(entry.Backups, backupInfoJSON{
				Path:      info.Path,
				CreatedAt: info.CreatedAt,
				Size:      info.Size,
			})
		}
		entries = append(entries, entry)
	}

	if backupsListJSON {
		if entries == nil {
			entries = []backupListEntry{}
		}
		enc := json.NewEncoder(e.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(e.Out, "No backups found.")
		return nil
	}

	tw := tabwriter.NewWriter(e.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLATFORM\tSCOPE\tCREATED\tSIZE\tBACKUP")
	total := 0
	for _, entry := range entries {
		for _, b := range entry.Backups {
			total++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				entry.Platform, entry.Scope,
				b.CreatedAt.Format(time.DateTime), b.Size, b.Path)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(e.Out, "\n%d backup(s) across %d config file(s).\n", total, len(entries))
	return nil
}

func runBackupsPrune(e runEnv) error {
	if err := e.requireResolver(); err != nil {
		return err
	}

	keep := backupsPruneKeep
	if keep <= 0 {
		keep = backup.DefaultRetentionCount
		if e.Config != nil && e.Config.BackupRetention > 0 {
			keep = e.Config.BackupRetention
		}
	}

	descs, err := describedPlatforms(e)
	if err != nil {
		return err
	}

	removed := 0
	for _, loc := range configPaths(e, descs) {
		n, err := backup.Prune(e.Fsys, loc.Path, keep)
		if err != nil {
			return errors.Wrapf(err, "pruning backups of %s", loc.Path)
		}
		if n > 0 {
			fmt.Fprintf(e.Out, "%s: removed %d backup(s)\n", loc.Path, n)
		}
		removed += n
	}

	if removed == 0 {
		fmt.Fprintf(e.Out, "Nothing to prune; every config file has at most %d backup(s).\n", keep)
		return nil
	}
	fmt.Fprintf(e.Out, "Removed %d backup(s), keeping the newest %d per config file.\n", removed, keep)
	return nil
}
