package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/moddoc/cmd/moddoc/commands"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
	"git.home.luguber.info/inful/moddoc/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("moddoc"),
		kong.Description("Generate and validate modular documentation files."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&cli); err != nil {
		// Validation findings already went through the report formatter;
		// only unexpected failures need a log line.
		if !errors.Is(err, commands.ErrValidationFailed) {
			slog.Error("Command failed", logfields.Error(err))
		}
		os.Exit(1)
	}
}
