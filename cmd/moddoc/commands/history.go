package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/history"
)

// HistoryCmd lists recent validation runs recorded by the watch command.
type HistoryCmd struct {
	RunID string `arg:"" optional:"" help:"Show the findings of one run instead of the run list"`
	Limit int    `default:"10" help:"Number of runs to show"`
	DB    string `help:"SQLite database path (defaults to the configured history database)"`
}

func (cmd *HistoryCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config, ".")
	if err != nil {
		return err
	}
	dbPath := cfg.Watch.HistoryDB
	if cmd.DB != "" {
		dbPath = cmd.DB
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no history database at %s", dbPath)
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if cmd.RunID != "" {
		return printFindings(ctx, store, cmd.RunID)
	}
	return printRuns(ctx, store, cmd.Limit)
}

func printRuns(ctx context.Context, store *history.Store, limit int) error {
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tTRIGGER\tFILES\tERRORS\tWARNINGS\tRUN ID")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Trigger, run.Files, run.Errors, run.Warnings, run.RunID)
	}
	return w.Flush()
}

func printFindings(ctx context.Context, store *history.Store, runID string) error {
	findings, err := store.Findings(ctx, runID)
	if err != nil {
		return err
	}
	if len(findings) == 0 {
		fmt.Println("No findings recorded for this run.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSEVERITY\tLINE\tMESSAGE")
	for _, f := range findings {
		line := ""
		if f.Line > 0 {
			line = fmt.Sprintf("%d", f.Line)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.File, f.Severity, line, f.Message)
	}
	return w.Flush()
}
