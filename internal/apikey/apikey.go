package apikey

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

// EnvVar is the environment variable consulted during key resolution.
const EnvVar = "SPECTATOR_API_KEY"

// MinLength is the shortest key accepted as plausibly real.
const MinLength = 8

// Sentinel errors for key validation and resolution.
var (
	// ErrKeyEmpty indicates a provided key was empty after trimming.
	ErrKeyEmpty = errors.New("api key is empty")

	// ErrKeyTooShort indicates a provided key is shorter than MinLength.
	ErrKeyTooShort = errors.Newf("api key must be at least %d characters", MinLength)

	// ErrKeyNotFound indicates no source in the resolution chain yielded a key.
	ErrKeyNotFound = errors.New("no api key found")
)

// Validate checks that a key is plausibly real. Surrounding whitespace is
// ignored. Anything beyond emptiness and length is left to the server; key
// formats change and the CLI should not reject tomorrow's keys.
func Validate(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyEmpty
	}
	if len(key) < MinLength {
		return ErrKeyTooShort
	}
	return nil
}

// Source identifies where a resolved key came from, for display and logging.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceArg     Source = "argument"
	SourceEnv     Source = "environment"
	SourceDotenv  Source = ".env file"
	SourceKeyring Source = "keyring"
	SourcePrompt  Source = "prompt"
)

// Options carries the inputs to Resolve. Env defaults to os.Getenv and Fsys
// to the real filesystem; tests inject both.
type Options struct {
	// Flag is the value of the --api-key flag.
	Flag string

	// Arg is the bare positional argument, if the user passed one.
	Arg string

	// Env looks up environment variables.
	Env func(string) string

	// Fsys is used to read a .env file.
	Fsys afero.Fs

	// WorkDir is the directory searched for a .env file.
	WorkDir string
}

// Resolve walks the key resolution chain and returns the first key found:
// flag, positional argument, SPECTATOR_API_KEY in the environment, a .env
// file in the working directory, then the OS keyring. Keyring failures are
// treated as "no stored key", never as fatal.
//
// A source that yields a key must yield a valid one; a malformed key stops
// the chain with an error rather than silently falling through, since the
// user plainly intended that key to be used.
//
// Returns ErrKeyNotFound when the chain is exhausted; the caller decides
// whether to prompt interactively.
func Resolve(opts Options) (string, Source, error) {
	if opts.Env == nil {
		opts.Env = os.Getenv
	}
	if opts.Fsys == nil {
		opts.Fsys = afero.NewOsFs()
	}

	candidates := []struct {
		raw string
		src Source
	}{
		{opts.Flag, SourceFlag},
		{opts.Arg, SourceArg},
		{opts.Env(EnvVar), SourceEnv},
		{dotenvKey(opts.Fsys, opts.WorkDir), SourceDotenv},
		{keyringKey(), SourceKeyring},
	}

	for _, c := range candidates {
		key := strings.TrimSpace(c.raw)
		if key == "" {
			continue
		}
		if err := Validate(key); err != nil {
			return "", "", errors.Wrapf(err, "api key from %s", c.src)
		}
		return key, c.src, nil
	}

	return "", "", ErrKeyNotFound
}

// dotenvKey reads SPECTATOR_API_KEY from a .env file without touching the
// process environment. A missing or unparseable file yields nothing.
func dotenvKey(fsys afero.Fs, workDir string) string {
	f, err := fsys.Open(filepath.Join(workDir, ".env"))
	if err != nil {
		return ""
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return ""
	}
	return vars[EnvVar]
}

// keyringKey loads the stored key, treating every failure as absence.
func keyringKey() string {
	key, err := Load()
	if err != nil {
		return ""
	}
	return key
}
