package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/history"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
	"git.home.luguber.info/inful/moddoc/internal/metrics"
	"git.home.luguber.info/inful/moddoc/internal/report"
	"git.home.luguber.info/inful/moddoc/internal/watch"
)

// WatchCmd runs the continuous validation loop over a documentation tree.
type WatchCmd struct {
	Dir string `arg:"" optional:"" default:"." help:"Directory tree to watch"`

	Debounce      time.Duration `help:"Wait this long after the last file event before validating"`
	SweepInterval time.Duration `help:"Interval between full revalidation sweeps"`
	MetricsAddr   string        `help:"Serve Prometheus metrics on this address"`
	HistoryDB     string        `help:"Record validation runs to this SQLite database"`
	NoHistory     bool          `help:"Do not record validation runs"`
	NoColor       bool          `help:"Disable colored output"`
}

func (cmd *WatchCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config, cmd.Dir)
	if err != nil {
		return err
	}

	debounce := time.Duration(cfg.Watch.Debounce)
	if cmd.Debounce > 0 {
		debounce = cmd.Debounce
	}
	sweep := time.Duration(cfg.Watch.SweepInterval)
	if cmd.SweepInterval > 0 {
		sweep = cmd.SweepInterval
	}
	metricsAddr := cfg.Watch.MetricsAddr
	if cmd.MetricsAddr != "" {
		metricsAddr = cmd.MetricsAddr
	}
	historyDB := cfg.Watch.HistoryDB
	if cmd.HistoryDB != "" {
		historyDB = cmd.HistoryDB
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if metricsAddr != "" {
		prom := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		recorder = prom
		go serveMetrics(ctx, metricsAddr, prom)
	}

	var store *history.Store
	if historyDB != "" && !cmd.NoHistory {
		store, err = history.Open(historyDB)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	formatter, err := report.NewFormatter("text", !cmd.NoColor && !color.NoColor)
	if err != nil {
		return err
	}

	runner := &watch.Runner{
		Dir:           cmd.Dir,
		Debounce:      debounce,
		SweepInterval: sweep,
		Ignore:        cfg.Validate.Ignore,
		Formatter:     formatter,
		Out:           os.Stdout,
		History:       store,
		Metrics:       recorder,
	}
	return runner.Run(ctx)
}

// serveMetrics exposes the recorder over HTTP until ctx is canceled.
func serveMetrics(ctx context.Context, addr string, recorder *metrics.PrometheusRecorder) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving metrics", slog.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", logfields.Error(err))
	}
}
