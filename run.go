package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"arrangio/internal/metrics"
	"arrangio/internal/partition"
	"arrangio/internal/render"
	"arrangio/internal/setlist"
)

// run is the whole program behind main. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, shouldExit, err := parseArgs(args, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	if shouldExit {
		return exitOK
	}
	if cfg.ShowVersion {
		fmt.Fprintln(stdout, version)
		return exitOK
	}

	level := cfg.LogLevel
	if cfg.Quiet {
		level = "error"
	}
	logger := newLogger(level, cfg.LogFormat, stderr)

	if err := arrange(ctx, cfg, stdout, logger); err != nil {
		logger.Debug("arrangement failed", "error", err)
		return fail(stderr, err)
	}
	return exitOK
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "error: %v\n", err)

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, setlist.ErrInvalidSong), errors.Is(err, setlist.ErrInvalidSetlist):
		return exitInvalidInput
	case errors.Is(err, partition.ErrInvalidConfiguration):
		return exitUsage
	}
	return exitFailure
}

// loadSongs gathers items from the setlist file and the -song tokens and
// settles the group count.
func loadSongs(cfg Config) ([]partition.Item, int, error) {
	groups := cfg.Groups

	var items []partition.Item
	if cfg.File != "" {
		sl, err := setlist.Load(cfg.File)
		if err != nil {
			return nil, 0, &ExitError{Code: exitInvalidInput, Message: err.Error()}
		}
		items = append(items, sl.Items...)
		if sl.Groups > 0 && !cfg.GroupsSet {
			groups = sl.Groups
		}
	}

	tokens, err := setlist.ParseSongs(cfg.Songs)
	if err != nil {
		return nil, 0, &ExitError{Code: exitInvalidInput, Message: err.Error()}
	}
	items = append(items, tokens...)
	setlist.Sort(items)
	return items, groups, nil
}

func arrange(ctx context.Context, cfg Config, stdout io.Writer, logger *slog.Logger) error {
	items, groups, err := loadSongs(cfg)
	if err != nil {
		return err
	}
	logger.Debug("songs loaded", "songs", len(items), "groups", groups, "file", cfg.File)

	if !cfg.Quiet {
		fmt.Fprintf(stdout, "%s version %s\n", program, version)
	}

	solver, err := partition.NewSolver(cfg.solverConfig(), partition.WithLogger(logger))
	if err != nil {
		return err
	}

	var (
		recorder metrics.Recorder = metrics.NewNop()
		registry *prometheus.Registry
	)
	if cfg.MetricsTextfile != "" {
		registry = prometheus.NewRegistry()
		prom := metrics.NewPrometheus(registry, "")
		if err := prom.Err(); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		recorder = prom
	}

	result, stats, err := solver.Run(ctx, items, groups)
	recorder.RecordSolve(groups, len(items), stats, err)
	if registry != nil {
		if werr := prometheus.WriteToTextfile(cfg.MetricsTextfile, registry); werr != nil {
			logger.Warn("metrics not written", "path", cfg.MetricsTextfile, "error", werr)
		}
	}
	if err != nil {
		return err
	}

	logger.Info("arrangement complete",
		"songs", len(items),
		"groups", groups,
		"difference", result.Difference,
		"states", stats.States,
		"cache_hits", stats.CacheHits,
		"elapsed", stats.Elapsed)

	if cfg.JSON {
		return render.JSON(stdout, result, true)
	}
	return render.Text(stdout, result)
}
