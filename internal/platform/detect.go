package platform

import (
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/spectatorcontext/spectator-cli/internal/paths"
)

// Detection describes whether one platform looks installed on this machine.
type Detection struct {
	// Descriptor is the platform that was probed.
	Descriptor Descriptor

	// Installed reports whether any detection probe succeeded.
	Installed bool

	// ConfigPath is the resolved global config file path.
	// Empty when path resolution failed (e.g. no home directory).
	ConfigPath string
}

// Detector probes the machine for installed platforms. All inputs are
// explicit so tests can swap in an in-memory filesystem and a fake PATH
// lookup.
type Detector struct {
	Fsys     afero.Fs
	Resolver *paths.Resolver

	// LookPath probes for a binary on PATH. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// NewDetector creates a Detector backed by the real PATH lookup.
func NewDetector(fsys afero.Fs, resolver *paths.Resolver) *Detector {
	return &Detector{
		Fsys:     fsys,
		Resolver: resolver,
		LookPath: exec.LookPath,
	}
}

// Installed reports whether the platform appears installed. Probes run from
// cheapest to broadest: CLI binary on PATH, then macOS app bundles, then the
// platform's config directory. Probe failures are never fatal; a platform
// that defeats every probe is reported as not installed.
func (d *Detector) Installed(desc Descriptor) bool {
	if desc.Command != "" && d.LookPath != nil {
		if _, err := d.LookPath(desc.Command); err == nil {
			return true
		}
	}

	if d.Resolver.GOOS == "darwin" && d.appBundleExists(desc) {
		return true
	}

	return d.configDirExists(desc)
}

// Detect probes one platform and resolves its global config path.
func (d *Detector) Detect(desc Descriptor) Detection {
	configPath, err := d.Resolver.ConfigPath(desc.ID, paths.ScopeGlobal)
	if err != nil {
		configPath = ""
	}
	return Detection{
		Descriptor: desc,
		Installed:  d.Installed(desc),
		ConfigPath: configPath,
	}
}

// DetectAll probes every supported platform in registry order.
func (d *Detector) DetectAll() []Detection {
	descs := Registry()
	results := make([]Detection, 0, len(descs))
	for _, desc := range descs {
		results = append(results, d.Detect(desc))
	}
	return results
}

// DetectInstalled returns only the platforms that appear installed,
// in registry order.
func (d *Detector) DetectInstalled() []Detection {
	all := d.DetectAll()
	installed := make([]Detection, 0, len(all))
	for _, det := range all {
		if det.Installed {
			installed = append(installed, det)
		}
	}
	return installed
}

// appBundleExists checks the standard macOS application directories for the
// platform's app bundles.
func (d *Detector) appBundleExists(desc Descriptor) bool {
	for _, app := range desc.AppNames {
		candidates := []string{filepath.Join("/Applications", app)}
		if d.Resolver.HomeDir != "" {
			candidates = append(candidates, filepath.Join(d.Resolver.HomeDir, "Applications", app))
		}
		for _, path := range candidates {
			if d.dirExists(path) {
				return true
			}
		}
	}
	return false
}

// configDirExists checks whether the directory holding the platform's global
// config file exists. The file itself may not: an installed assistant that
// was never configured still has its settings directory.
func (d *Detector) configDirExists(desc Descriptor) bool {
	configPath, err := d.Resolver.ConfigPath(desc.ID, paths.ScopeGlobal)
	if err != nil {
		return false
	}
	dir := filepath.Dir(configPath)
	if dir == d.Resolver.HomeDir {
		// A config file directly under home makes the directory probe
		// match every machine; require the file itself.
		return d.fileExists(configPath)
	}
	return d.dirExists(dir)
}

// fileExists returns true if the path exists and is a regular file.
func (d *Detector) fileExists(path string) bool {
	info, err := d.Fsys.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// dirExists returns true if the path exists and is a directory.
func (d *Detector) dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := d.Fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
