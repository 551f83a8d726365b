package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// ErrValidationFailed signals a run that found Error-severity diagnostics.
// The findings themselves are rendered by the report formatter; main only
// maps this to a non-zero exit status.
var ErrValidationFailed = errors.New("validation failed")

// CLI definition & global flags shared by all subcommands.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (bypasses discovery)"`
	Verbose bool             `short:"v" help:"Enable verbose logging" xor:"verbosity"`
	Quiet   bool             `short:"q" help:"Only report errors" xor:"verbosity"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	New      NewCmd      `cmd:"" help:"Generate documentation files from titles"`
	Validate ValidateCmd `cmd:"" help:"Validate documentation files"`
	Watch    WatchCmd    `cmd:"" help:"Continuously validate a documentation tree"`
	Init     InitCmd     `cmd:"" help:"Write a starter configuration file"`
	History  HistoryCmd  `cmd:"" help:"Show recent validation runs"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	if c.Quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
