package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
)

// InitCmd writes a starter configuration file.
type InitCmd struct {
	Path  string `arg:"" optional:"" default:".moddoc.yaml" help:"Where to write the configuration file"`
	Force bool   `help:"Overwrite an existing configuration file"`
}

func (cmd *InitCmd) Run(cli *CLI) error {
	if err := config.Init(cmd.Path, cmd.Force); err != nil {
		return err
	}
	slog.Info("Wrote configuration file", logfields.Path(cmd.Path))
	return nil
}
