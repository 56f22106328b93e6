package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"paneldeck/internal/content"
	"paneldeck/internal/layout"
	"paneldeck/internal/logging"
	"paneldeck/internal/trace"
	"paneldeck/internal/ui"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
	}
}

func runDashboard(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	cfg := opts.cfg

	// The alt screen owns the terminal, so log to a file.
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	f, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer f.Close()
	logger := logging.New(f, level)

	axis, err := layout.ParseAxis(cfg.Layout.Axis)
	if err != nil {
		return err
	}

	st, err := openStore(opts, logger)
	if err != nil {
		return err
	}
	logger.Info("starting", "state", st.Path(), "axis", cfg.Layout.Axis)

	tracer, err := trace.NewSessionTracer(ctx, cfg.Trace.Endpoint, cfg.Trace.ServiceName)
	if err != nil {
		// Tracing is optional; keep going without it.
		logger.Warn("tracing disabled", "endpoint", cfg.Trace.Endpoint, "err", err)
	}
	defer shutdownTracer(tracer, logger)

	registry := content.NewRegistry(logger)
	app := ui.NewAppModel(ui.Options{
		Axis:        axis,
		Floor:       cfg.Layout.Floor,
		Sensitivity: cfg.Layout.Sensitivity,
		Kinds:       content.Catalog(),
		NewContent:  registry.Factory(),
		NewID:       content.NewID,
		Store:       st,
		Observer:    tracer.Observer(),
		Logger:      logger,
	})
	defer app.Close()

	p := tea.NewProgram(app.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	if gw := app.Gateway; gw != nil && gw.Err() != nil {
		return fmt.Errorf("save panel state: %w", gw.Err())
	}
	return nil
}

func shutdownTracer(t *trace.SessionTracer, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.Shutdown(ctx); err != nil {
		logger.Warn("trace shutdown", "err", err)
	}
}
