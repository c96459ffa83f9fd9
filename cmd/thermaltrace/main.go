// Command thermaltrace visualizes a geo-tagged temperature traversal: an
// interactive terminal map, static image export, and fault-log publishing.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/thermal-trace/internal/adapter/mapbox"
	"github.com/couchcryptid/thermal-trace/internal/config"
	"github.com/couchcryptid/thermal-trace/internal/domain"
	"github.com/couchcryptid/thermal-trace/internal/observability"
	"github.com/couchcryptid/thermal-trace/internal/session"
	"github.com/couchcryptid/thermal-trace/internal/simulate"
)

var traceFile string

var rootCmd = &cobra.Command{
	Use:           "thermaltrace",
	Short:         "Explore a thermal sensor traversal",
	Long:          `Plot a geo-tagged temperature traversal, flag readings above the fault threshold, and link the fault log to the map.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&traceFile, "trace", "t", "", "JSON trace file (default: simulate a traversal)")
	rootCmd.AddCommand(viewCmd, exportCmd, faultsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every subcommand builds before it creates a session.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	theme   config.Theme
	logFile *os.File
}

// newApp loads configuration and logging. Logs go to LOG_FILE when set,
// otherwise to stderr, or nowhere when quiet is true.
func newApp(quiet bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	theme, err := config.LoadTheme(cfg.ThemeFile)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, theme: theme, metrics: observability.NewMetrics()}

	var w io.Writer = os.Stderr
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile, w = f, f
	case quiet:
		w = io.Discard
	}
	a.logger = observability.NewLogger(cfg, w)
	return a, nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func (a *app) sessionOptions() session.Options {
	return session.Options{
		Threshold:  a.cfg.FaultThreshold,
		HalfSpan:   a.cfg.ViewportHalfSpan,
		PickRadius: a.cfg.PickRadius,
	}
}

// readings returns the --trace file when given, otherwise a simulated traversal.
func (a *app) readings() ([]domain.Reading, error) {
	if traceFile == "" {
		return a.simulated(), nil
	}
	readings, err := readTrace(traceFile)
	if err != nil {
		return nil, err
	}
	a.logger.Info("trace file read", "path", traceFile, "readings", len(readings))
	return readings, nil
}

func (a *app) simulated() []domain.Reading {
	return simulate.Traversal(a.cfg.SimPoints, simulate.NewRand(a.cfg.SimSeed))
}

// geocoder returns the cached Mapbox geocoder, or nil when disabled.
func (a *app) geocoder() domain.Geocoder {
	if !a.cfg.MapboxEnabled {
		a.logger.Info("mapbox geocoding disabled")
		return nil
	}
	client := mapbox.NewClient(a.cfg.MapboxToken, a.cfg.MapboxTimeout, a.logger, a.metrics)
	a.logger.Info("mapbox geocoding enabled", "cache_size", a.cfg.MapboxCacheSize, "timeout", a.cfg.MapboxTimeout)
	return mapbox.NewCachedGeocoder(client, a.cfg.MapboxCacheSize, a.metrics)
}
