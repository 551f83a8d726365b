// Package watch revalidates a documentation tree continuously. File events
// are debounced into batches; a periodic sweep revalidates everything to
// catch events the watcher missed.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/moddoc/internal/history"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
	"git.home.luguber.info/inful/moddoc/internal/metrics"
	"git.home.luguber.info/inful/moddoc/internal/report"
	"git.home.luguber.info/inful/moddoc/internal/validate"
)

// Runner watches one directory tree and revalidates changed files.
type Runner struct {
	// Dir is the root of the watched tree.
	Dir string
	// Debounce is how long to wait after the last event before validating.
	// Zero means the 500ms default.
	Debounce time.Duration
	// SweepInterval schedules periodic full revalidation. Zero disables
	// the sweep.
	SweepInterval time.Duration
	// Ignore lists doublestar globs (relative to Dir) to skip.
	Ignore []string

	// Formatter renders each batch's reports to Out.
	Formatter report.Formatter
	// Out defaults to stdout.
	Out io.Writer
	// History records runs when set.
	History *history.Store
	// Metrics defaults to the noop recorder.
	Metrics metrics.Recorder
}

// Run blocks until ctx is canceled. The initial full validation runs before
// the first event is processed.
func (r *Runner) Run(ctx context.Context) error {
	if r.Debounce <= 0 {
		r.Debounce = 500 * time.Millisecond
	}
	if r.Metrics == nil {
		r.Metrics = metrics.NoopRecorder{}
	}
	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.Formatter == nil {
		f, err := report.NewFormatter("text", false)
		if err != nil {
			return err
		}
		r.Formatter = f
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := r.watchTree(watcher, r.Dir); err != nil {
		return err
	}

	slog.Info("Watching documentation tree", logfields.Path(r.Dir))
	r.sweep(ctx)

	scheduler, err := r.startSweeps(ctx)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	return r.loop(ctx, watcher)
}

// watchTree registers dir and every subdirectory with the watcher.
func (r *Runner) watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// startSweeps schedules the periodic full revalidation when configured.
func (r *Runner) startSweeps(ctx context.Context) (gocron.Scheduler, error) {
	if r.SweepInterval <= 0 {
		return nil, nil
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(r.SweepInterval),
		gocron.NewTask(func() { r.sweep(ctx) }),
		gocron.WithName("validation-sweep"),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule sweep job: %w", err)
	}
	scheduler.Start()
	return scheduler, nil
}

// loop is the single goroutine that consumes watcher events and fires the
// debounced batches.
func (r *Runner) loop(ctx context.Context, watcher *fsnotify.Watcher) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(r.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// New subdirectories join the watch set.
					if err := r.watchTree(watcher, event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".adoc") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			slog.Debug("File event", logfields.File(event.Name), slog.String("op", event.Op.String()))
			pending[event.Name] = struct{}{}
			timer.Reset(r.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			clear(pending)
			r.validateBatch(ctx, files, "watch")
		}
	}
}

// sweep validates every .adoc file under the tree.
func (r *Runner) sweep(ctx context.Context) {
	var files []string
	err := filepath.WalkDir(r.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".adoc") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		slog.Error("Sweep walk failed", logfields.Path(r.Dir), logfields.Error(err))
		return
	}
	r.validateBatch(ctx, files, "sweep")
}

// validateBatch validates the given files, renders the reports, and records
// the run. Files that vanished since their event are skipped silently.
func (r *Runner) validateBatch(ctx context.Context, files []string, trigger string) {
	if len(files) == 0 {
		return
	}
	start := time.Now()
	runID := uuid.NewString()
	sort.Strings(files)

	var reports []validate.Report
	for _, file := range files {
		rel := r.relPath(file)
		if r.ignored(rel) {
			continue
		}
		content, err := os.ReadFile(file)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("Failed to read file", logfields.File(file), logfields.Error(err))
			}
			continue
		}
		reports = append(reports, validate.Validate(rel, string(content)))
	}
	if len(reports) == 0 {
		return
	}

	if err := r.Formatter.Format(r.Out, reports); err != nil {
		slog.Error("Failed to render reports", logfields.Error(err))
	}

	run := buildRun(runID, start, trigger, reports)
	r.Metrics.IncRuns(trigger)
	r.Metrics.IncFilesValidated(run.Files)
	r.Metrics.IncIssues(validate.Error.String(), run.Errors)
	r.Metrics.IncIssues(validate.Warning.String(), run.Warnings)
	r.Metrics.IncIssues(validate.Information.String(), run.Infos)
	r.Metrics.ObserveRunDuration(time.Since(start))

	if r.History != nil {
		if err := r.History.Record(ctx, run); err != nil {
			slog.Error("Failed to record run", logfields.RunID(runID), logfields.Error(err))
		}
	}

	slog.Info("Validation run complete",
		logfields.RunID(runID),
		logfields.Trigger(trigger),
		logfields.Files(run.Files),
		logfields.Errors(run.Errors),
		logfields.Warnings(run.Warnings),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

func (r *Runner) relPath(file string) string {
	if rel, err := filepath.Rel(r.Dir, file); err == nil {
		return rel
	}
	return file
}

func (r *Runner) ignored(rel string) bool {
	for _, pattern := range r.Ignore {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

// buildRun turns a batch of reports into a history record.
func buildRun(runID string, start time.Time, trigger string, reports []validate.Report) history.Run {
	run := history.Run{
		RunID:     runID,
		StartedAt: start,
		Trigger:   trigger,
		Files:     len(reports),
	}
	for _, rep := range reports {
		errors, warnings, infos := rep.Counts()
		run.Errors += errors
		run.Warnings += warnings
		run.Infos += infos
		for _, d := range rep.Diagnostics {
			run.Findings = append(run.Findings, history.Finding{
				File:     rep.File,
				Severity: d.Severity.String(),
				Line:     d.Line,
				Message:  d.Message,
			})
		}
	}
	return run
}
