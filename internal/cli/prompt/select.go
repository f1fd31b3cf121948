package prompt

import (
	"fmt"
	"strconv"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

// Select prompts the user to choose from a list of options by number and
// returns the chosen index.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - 0 if only one option exists (auto-selects without prompting)
//   - the selected index based on user input, defaulting to the first
//   - ErrInvalidSelection if the selection is out of range
//   - ErrCancelled if input is EOF (e.g. Ctrl+D)
func (p *Prompter) Select(label string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}

	// Auto-select if only one option
	if len(options) == 1 {
		return 0, nil
	}

	fmt.Fprintf(p.out, "%s:\n", label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, opt)
	}
	fmt.Fprintf(p.out, "Select [1]: ")

	input, err := p.readLine()
	if err != nil {
		return 0, err
	}

	// Default to first option on empty input
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// 1-indexed on screen
	if selection < 1 || selection > len(options) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(options))
	}

	return selection - 1, nil
}

// FuzzySelect prompts the user to choose from a list with an incremental
// fuzzy finder. Off a terminal it degrades to the numbered Select prompt.
// The optional preview renders detail for the highlighted option.
func (p *Prompter) FuzzySelect(label string, options []string, preview func(i int) string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}
	if !p.isTTY {
		return p.Select(label, options)
	}

	opts := []fuzzyfinder.Option{
		fuzzyfinder.WithPromptString(label + "> "),
	}
	if preview != nil {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return preview(i)
		}))
	}

	idx, err := fuzzyfinder.Find(
		options,
		func(i int) string { return options[i] },
		opts...,
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, ErrCancelled
		}
		return 0, errors.Wrap(err, "interactive selection failed")
	}

	return idx, nil
}
