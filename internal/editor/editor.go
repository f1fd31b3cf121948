// Package editor launches the user's preferred text editor on a file.
package editor

import (
	"os"
	"os/exec"
	"strings"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

// Command returns the editor command line in argv form.
// Resolution order: $SPECTATOR_EDITOR, $EDITOR, $VISUAL, nano, vi.
// Values may carry flags, e.g. EDITOR="code --wait".
func Command() []string {
	for _, env := range []string{"SPECTATOR_EDITOR", "EDITOR", "VISUAL"} {
		if v := os.Getenv(env); strings.TrimSpace(v) != "" {
			return strings.Fields(v)
		}
	}

	// nano is the friendlier default; vi is the one that is always there
	if _, err := exec.LookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}

// Open runs the editor on the file at path and blocks until it exits.
// The editor inherits the terminal.
func Open(path string) error {
	argv := Command()

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}
