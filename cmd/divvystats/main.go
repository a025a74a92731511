// Package main is the entry point for the divvystats analyzer.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randytsao24/divvystats/internal/cache"
	"github.com/randytsao24/divvystats/internal/cli"
	"github.com/randytsao24/divvystats/internal/config"
	"github.com/randytsao24/divvystats/internal/dataset"
	"github.com/randytsao24/divvystats/internal/metrics"
	"github.com/randytsao24/divvystats/internal/query"
)

// errLoad marks a dataset load failure that has already been reported to the user.
var errLoad = errors.New("dataset load failed")

type options struct {
	configPath  string
	stations    string
	trips       string
	logLevel    string
	metricsFile string
	color       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errLoad) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "divvystats",
		Short: "Interactive analyzer for bike-share station and trip files",
		Long: `divvystats loads a stations file and a trips file into memory and answers
commands typed at the prompt:

  stats                      station count, trip count and total capacity
  durations                  trip duration histogram
  starting                   trips per starting hour
  nearme <lat> <lon> <miles> stations within a radius, closest first
  stations                   every station, alphabetically
  find <text>                stations whose name contains text
  #                          quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (default $DIVVY_CONFIG)")
	flags.StringVar(&opts.stations, "stations", "", "stations file (prompted for when unset)")
	flags.StringVar(&opts.trips, "trips", "", "trips file (prompted for when unset)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")
	flags.BoolVar(&opts.color, "color", false, "colorize the prompt and error messages")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	initLogging(cfg.LogLevel)

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if cfg.StationsFile == "" {
		if cfg.StationsFile, err = cli.ReadPath(in, out, "Please enter name of stations file> "); err != nil {
			return err
		}
	}
	if cfg.TripsFile == "" {
		if cfg.TripsFile, err = cli.ReadPath(in, out, "Please enter name of bike trips file> "); err != nil {
			return err
		}
	}

	rec := metrics.New()

	stations, stationStats, err := dataset.LoadStations(cfg.StationsFile)
	if err != nil {
		return reportLoadError(out, cfg.StationsFile, err)
	}
	rec.SetDataset("stations", stationStats.Records, stationStats.Skipped)

	trips, tripStats, err := dataset.LoadTrips(cfg.TripsFile)
	if err != nil {
		return reportLoadError(out, cfg.TripsFile, err)
	}
	rec.SetDataset("trips", tripStats.Records, tripStats.Skipped)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := cli.NewDispatcher(
		query.New(stations, trips),
		out,
		cli.WithCache(cache.New[string](cfg.CacheTTL(), cfg.CacheMaxEntries)),
		cli.WithMetrics(rec),
		cli.WithColor(cfg.Color),
	)

	runErr := dispatcher.Run(ctx, in)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Error("writing metrics textfile", "path", cfg.MetricsFile, "error", err)
		}
	}

	return runErr
}

// applyFlags lets explicitly set flags override file and environment settings.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) {
	flags := cmd.Flags()
	if flags.Changed("stations") {
		cfg.StationsFile = opts.stations
	}
	if flags.Changed("trips") {
		cfg.TripsFile = opts.trips
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	if flags.Changed("color") {
		cfg.Color = opts.color
	}
}

func reportLoadError(out io.Writer, path string, err error) error {
	slog.Debug("dataset load failed", "path", path, "error", err)
	fmt.Fprintf(out, "Error: unable to open file \"%s\"\n", path)
	return fmt.Errorf("%w: %w", errLoad, err)
}

func initLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
