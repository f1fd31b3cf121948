// Package main is the entry point for the spectator CLI.
package main

import (
	"os"

	"github.com/spectatorcontext/spectator-cli/cmd/spectator/commands"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

func main() {
	os.Exit(errors.ExitCode(commands.Execute()))
}
