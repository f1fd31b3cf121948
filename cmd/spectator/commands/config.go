package commands

import (
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/spectatorcontext/spectator-cli/internal/apikey"
	"github.com/spectatorcontext/spectator-cli/internal/config"
	"github.com/spectatorcontext/spectator-cli/internal/editor"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
	"github.com/spectatorcontext/spectator-cli/internal/platform"
	"github.com/spectatorcontext/spectator-cli/internal/redact"
)

var configPlatform string

func init() {
	configCmd.Flags().StringVar(&configPlatform, "platform", "",
		"show instructions for one platform")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show manual setup instructions, or manage CLI settings",
	Long: `Show copy-paste instructions for configuring an assistant by hand.

With --platform, instructions for that assistant are printed directly.
Otherwise an interactive picker lists the detected assistants. The
printed entry embeds your API key when one can be resolved, and a
placeholder when not.

The get, set, list, and edit subcommands manage the CLI's own
configuration file instead.`,
	Example: `  # Pick an assistant interactively
  spectator config

  # Instructions for Windsurf
  spectator config --platform windsurf

  # CLI settings
  spectator config list
  spectator config set scope project`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigInstructions(newRunEnv(cmd))
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Array values are printed one per line. A stored API key is masked.`,
	Example: `  spectator config get default_platforms
  spectator config get scope`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(cmd.OutOrStdout(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the CLI's config file.

For default_platforms, use comma-separated platform names. The api_key
key is refused; keys belong in the environment or the OS keyring.`,
	Example: `  spectator config set default_platforms cursor,claude-code
  spectator config set auth header
  spectator config set backup_retention 10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd.OutOrStdout(), afero.NewOsFs(), args[0], args[1])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List the effective configuration values in YAML format.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigList(cmd.OutOrStdout())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration in your editor",
	Long: `Open the CLI's configuration file in your editor.

Honors SPECTATOR_EDITOR, then EDITOR, then VISUAL; falls back to nano
or vi. A missing config file is created with default values first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigEdit(cmd.OutOrStdout(), afero.NewOsFs())
	},
}

// runConfigInstructions prints manual setup steps for one assistant.
func runConfigInstructions(e runEnv) error {
	if err := e.requireResolver(); err != nil {
		return err
	}

	desc, err := pickPlatform(e)
	if err != nil {
		return err
	}

	adapter := platform.NewAdapter(desc, e.Resolver, e.Fsys, e.Log)
	fmt.Fprintln(e.Out, adapter.ManualInstructions(instructionKey(e)))
	return nil
}

// pickPlatform chooses the assistant to print instructions for: the
// --platform flag when given, the only detected assistant when there is
// exactly one, and an interactive picker otherwise. With nothing detected
// the picker offers the full supported set.
func pickPlatform(e runEnv) (platform.Descriptor, error) {
	if configPlatform != "" {
		desc, err := platform.Lookup(configPlatform)
		if err != nil {
			return platform.Descriptor{}, errors.NewUserError(err,
				"valid platforms: "+strings.Join(paths.Platforms(), ", "))
		}
		return desc, nil
	}

	candidates := make([]platform.Descriptor, 0, len(paths.Platforms()))
	for _, det := range e.Detector.DetectInstalled() {
		candidates = append(candidates, det.Descriptor)
	}
	if len(candidates) == 0 {
		candidates = platform.Registry()
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	names := make([]string, len(candidates))
	for i, desc := range candidates {
		names[i] = desc.DisplayName
	}
	idx, err := e.Prompter.FuzzySelect("Which assistant?", names, func(i int) string {
		preview := platform.NewAdapter(candidates[i], e.Resolver, e.Fsys, e.Log)
		return preview.ManualInstructions(instructionKey(e))
	})
	if err != nil {
		return platform.Descriptor{}, errors.NewUserError(err,
			"pass --platform <id> to skip the picker")
	}
	return candidates[idx], nil
}

// instructionKey resolves the key to embed in printed instructions,
// falling back to a placeholder. Instructions must render even without a
// key on hand.
func instructionKey(e runEnv) string {
	key, _, err := apikey.Resolve(apikey.Options{
		Flag:    apiKeyFlag,
		Fsys:    e.Fsys,
		WorkDir: e.Resolver.WorkDir,
	})
	if err != nil {
		return "YOUR_API_KEY"
	}
	return key
}

func runConfigGet(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	// Never echo a stored key in the clear
	if key == "api_key" {
		if raw := viper.GetString(key); raw != "" {
			fmt.Fprintln(w, redact.Value(raw))
		} else {
			fmt.Fprintln(w, "not set")
		}
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigSet(w io.Writer, fsys afero.Fs, key, value string) error {
	stored, err := fileConfig(fsys)
	if err != nil {
		return err
	}

	switch key {
	case "api_key":
		return errors.NewUserError(errors.New("api_key is not stored in the config file"),
			"export "+apikey.EnvVar+" or run 'spectator setup --save-key' to use the OS keyring")

	case "default_platforms":
		platforms := parsePlatforms(value)
		if len(platforms) == 0 {
			return errors.New("no valid platforms specified")
		}
		stored.DefaultPlatforms = platforms

	case "scope":
		stored.Scope = value

	case "auth":
		stored.Auth = value

	case "verify":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Newf("invalid verify value %q: expected true or false", value)
		}
		stored.Verify = b

	case "backup_retention":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Newf("invalid backup_retention value %q: expected a number", value)
		}
		stored.BackupRetention = n

	default:
		return errors.Newf("unknown config key %q (valid: default_platforms, scope, auth, verify, backup_retention)", key)
	}

	// Save validates, so a bad scope or platform list never reaches disk
	if err := config.Save(fsys, config.FilePath(), stored); err != nil {
		return err
	}

	fmt.Fprintf(w, "Set %s = %s\n", key, value)
	return nil
}

func runConfigList(w io.Writer) error {
	listed := cfg
	if listed == nil {
		listed = config.Default()
	}

	// Copy so masking never touches the loaded config
	shown := *listed
	if shown.APIKey != "" {
		shown.APIKey = redact.Value(shown.APIKey)
	}

	data, err := yaml.Marshal(&shown)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Fprint(w, string(data))
	return nil
}

func runConfigEdit(w io.Writer, fsys afero.Fs) error {
	path := config.FilePath()

	if exists, err := afero.Exists(fsys, path); err == nil && !exists {
		if err := config.Save(fsys, path, config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(w, "Created %s\n", path)
	}

	return editor.Open(path)
}

// fileConfig reads the config file from disk without the environment
// overlay, so saving a change never persists env-sourced values. A missing
// file yields the defaults.
func fileConfig(fsys afero.Fs) (*config.Config, error) {
	data, err := afero.ReadFile(fsys, config.FilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	stored := config.Default()
	if err := yaml.Unmarshal(data, stored); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}
	return stored, nil
}

// parsePlatforms splits a comma-separated string into platform names.
func parsePlatforms(s string) []string {
	var platforms []string
	for p := range strings.SplitSeq(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			platforms = append(platforms, p)
		}
	}
	return platforms
}
