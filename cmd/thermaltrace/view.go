package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/thermal-trace/internal/adapter/http"
	"github.com/couchcryptid/thermal-trace/internal/adapter/tui"
	"github.com/couchcryptid/thermal-trace/internal/session"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore the trace in the terminal",
	Long: `Draw the trace as a colour-coded map next to the fault log. Hover a point or a
log row to highlight the reading on both. When stdout is not a terminal the
fault log is printed instead.`,
	RunE: runView,
}

func runView(cmd *cobra.Command, _ []string) error {
	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	a, err := newApp(interactive)
	if err != nil {
		return err
	}
	defer a.close()

	readings, err := a.readings()
	if err != nil {
		return err
	}
	canvas := tui.NewCanvas()
	sess := session.New(canvas, a.sessionOptions(), a.logger, a.metrics)
	if err := sess.OnLoad(readings); err != nil {
		return err
	}

	if !interactive {
		return printFaults(cmd.OutOrStdout(), sess)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if a.cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(a.cfg.HTTPAddr, sess, a.logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("http server error", "error", err)
			}
		}()
	}

	model := tui.NewModel(sess, canvas, tui.Options{
		Theme:    a.theme,
		Geocoder: a.geocoder(),
		Reload:   a.simulated,
		Logger:   a.logger,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, runErr := p.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown error", "error", err)
		}
	}
	a.logger.Info("shutdown complete")
	return runErr
}

// printFaults writes the fault log, one row per line.
func printFaults(w io.Writer, sess *session.Session) error {
	for _, f := range sess.Faults() {
		if _, err := fmt.Fprintf(w, "%s\t%.6f\t%.6f\n", f.Text, f.Reading.Lon, f.Reading.Lat); err != nil {
			return err
		}
	}
	return nil
}
