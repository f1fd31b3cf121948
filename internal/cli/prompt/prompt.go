// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

// Sentinel errors for prompting.
var (
	// ErrNoOptions is returned when there is nothing to select from.
	ErrNoOptions = errors.New("no options to select from")

	// ErrInvalidSelection is returned when input does not name an option.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrCancelled is returned when input ends before an answer (e.g. Ctrl+D).
	ErrCancelled = errors.New("prompt cancelled")
)

// Prompter asks the user questions on the terminal. The zero value is not
// usable; construct with New or NewWithIO.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	isTTY bool
	inFd  int
}

// New creates a Prompter on stdin and stdout.
func New() *Prompter {
	fd := int(os.Stdin.Fd())
	return &Prompter{
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
		isTTY: term.IsTerminal(fd),
		inFd:  fd,
	}
}

// NewWithIO creates a Prompter with custom reader and writer for testing.
// The prompter behaves as if the input were not a terminal.
func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(r),
		out: w,
	}
}

// IsTTY reports whether the prompter reads from a terminal.
func (p *Prompter) IsTTY() bool {
	return p.isTTY
}

// Line prompts with a label and reads one line of input, trimmed.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

// Secret prompts for sensitive input. On a terminal the input is read
// without echo; otherwise it falls back to a plain line read.
func (p *Prompter) Secret(label string) (string, error) {
	if !p.isTTY {
		return p.Line(label)
	}

	fmt.Fprintf(p.out, "%s: ", label)
	raw, err := term.ReadPassword(p.inFd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", errors.Wrap(err, "reading secret")
	}
	return strings.TrimSpace(string(raw)), nil
}

// Confirm asks a yes/no question. An empty or unrecognized answer yields
// the default.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", question, hint)

	input, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

func (p *Prompter) readLine() (string, error) {
	input, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			// A final line without a newline still counts as an answer
			if trimmed := strings.TrimSpace(input); trimmed != "" {
				return trimmed, nil
			}
			return "", ErrCancelled
		}
		return "", errors.Wrap(err, "reading input")
	}
	return strings.TrimSpace(input), nil
}
