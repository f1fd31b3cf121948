package commands

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/spectatorcontext/spectator-cli/cmd"
	"github.com/spectatorcontext/spectator-cli/internal/cli/prompt"
	"github.com/spectatorcontext/spectator-cli/internal/config"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/logging"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
	"github.com/spectatorcontext/spectator-cli/internal/platform"
)

// platformsAll is the --platforms value meaning every supported platform.
const platformsAll = "all"

// Terminal accents. fatih/color degrades to plain text off-TTY and under
// NO_COLOR.
var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	failColor   = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

// runEnv bundles the dependencies a command run needs. Cobra handlers build
// it from the real process environment; tests construct it directly around
// an in-memory filesystem.
type runEnv struct {
	Fsys     afero.Fs
	Resolver *paths.Resolver
	// ResolverErr is the failure from building the resolver, when there
	// was one. Most commands treat it as fatal; doctor reports it.
	ResolverErr error
	Detector    *platform.Detector
	Prompter    *prompt.Prompter
	Log         *slog.Logger
	Config      *config.Config
	Out         io.Writer
}

// newRunEnv builds the environment for one command invocation.
func newRunEnv(cobraCmd *cobra.Command) runEnv {
	fsys := afero.NewOsFs()
	resolver, err := paths.NewResolver()

	conf := cfg
	if conf == nil {
		conf = config.Default()
	}

	return runEnv{
		Fsys:        fsys,
		Resolver:    &resolver,
		ResolverErr: err,
		Detector:    platform.NewDetector(fsys, &resolver),
		Prompter:    prompt.New(),
		Log:         logging.FromContext(cobraCmd.Context()),
		Config:      conf,
		Out:         cobraCmd.OutOrStdout(),
	}
}

// requireResolver turns a resolver construction failure into the fatal
// error every file-touching command reports.
func (e runEnv) requireResolver() error {
	if e.ResolverErr == nil {
		return nil
	}
	return errors.NewSystemError(e.ResolverErr, "set the HOME environment variable")
}

// effectiveScope resolves the scope from the flag, the config file, then
// the global default.
func effectiveScope(e runEnv) (paths.Scope, error) {
	if scopeFlag != "" {
		return paths.ParseScope(scopeFlag)
	}
	if e.Config != nil && e.Config.Scope != "" {
		return paths.ParseScope(e.Config.Scope)
	}
	return paths.ScopeGlobal, nil
}

// requestedPlatforms resolves the platform list from the flag or the config
// file, expanding "all". The second return is true when the request names
// every supported platform, i.e. the user expressed no real preference.
func requestedPlatforms(e runEnv) ([]string, bool) {
	requested := platformsFlag
	if len(requested) == 0 && e.Config != nil {
		requested = e.Config.DefaultPlatforms
	}
	if len(requested) == 0 || slices.Contains(requested, platformsAll) {
		return paths.Platforms(), true
	}

	seen := make(map[string]bool, len(requested))
	ids := make([]string, 0, len(requested))
	for _, id := range requested {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, len(ids) == len(paths.Platforms())
}

// resolveTargets picks the platforms setup should configure: the detected
// ones when the request is "everything", otherwise the requested ones that
// are actually installed. Requested-but-missing platforms come back in
// skipped so the caller can warn about each.
func resolveTargets(e runEnv) (targets []platform.Descriptor, skipped []string, err error) {
	requested, isAll := requestedPlatforms(e)

	if isAll {
		detections := e.Detector.DetectInstalled()
		if len(detections) == 0 {
			return nil, nil, errors.NewUserError(errors.ErrNoPlatformsDetected,
				"install a supported AI assistant, or name one explicitly with --platforms")
		}
		for _, det := range detections {
			targets = append(targets, det.Descriptor)
		}
		return targets, nil, nil
	}

	for _, id := range requested {
		desc, err := platform.Lookup(id)
		if err != nil {
			return nil, nil, errors.NewUserError(err, "Run 'spectator --help' to see valid platforms")
		}
		if e.Detector.Installed(desc) {
			targets = append(targets, desc)
		} else {
			skipped = append(skipped, id)
		}
	}

	if len(targets) == 0 {
		err := errors.Wrapf(errors.ErrNoPlatformsDetected, "none of the requested platforms are installed")
		return nil, skipped, errors.NewUserError(err, "check the spelling, or run 'spectator doctor'")
	}
	return targets, skipped, nil
}

// describedPlatforms resolves the request into descriptors without any
// detection filter. Used by the commands that inspect or rewrite config
// files, which exist independently of whether the product is installed.
func describedPlatforms(e runEnv) ([]platform.Descriptor, error) {
	requested, _ := requestedPlatforms(e)

	descs := make([]platform.Descriptor, 0, len(requested))
	for _, id := range requested {
		desc, err := platform.Lookup(id)
		if err != nil {
			return nil, errors.NewUserError(err, "Run 'spectator --help' to see valid platforms")
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// platformPath is one resolvable platform config file location.
type platformPath struct {
	Platform string
	Scope    paths.Scope
	Path     string
}

// configPaths expands descriptors into every config file location the
// resolver can produce: the global path always, the project path where the
// platform has one.
func configPaths(e runEnv, descs []platform.Descriptor) []platformPath {
	var out []platformPath
	for _, desc := range descs {
		scopes := []paths.Scope{paths.ScopeGlobal}
		if desc.ProjectScope {
			scopes = append(scopes, paths.ScopeProject)
		}
		for _, scope := range scopes {
			path, err := e.Resolver.ConfigPath(desc.ID, scope)
			if err != nil {
				continue
			}
			out = append(out, platformPath{Platform: desc.ID, Scope: scope, Path: path})
		}
	}
	return out
}

// versionString renders the build metadata for --version and friends.
func versionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", cmd.Version, cmd.Commit, cmd.Date)
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
