package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dd0wney/attackgraph/pkg/canvas/term"
	"github.com/dd0wney/attackgraph/pkg/config"
	"github.com/dd0wney/attackgraph/pkg/editor"
	"github.com/dd0wney/attackgraph/pkg/events"
	"github.com/dd0wney/attackgraph/pkg/inspect"
	"github.com/dd0wney/attackgraph/pkg/logging"
	"github.com/dd0wney/attackgraph/pkg/metrics"
	"github.com/dd0wney/attackgraph/pkg/tui"
)

func editCmd(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the terminal editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Inspect.Listen = listen
			}
			return runEditor(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&listen, "inspect", "", "serve GraphQL and /metrics on this address (host:port)")
	return cmd
}

func runEditor(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The terminal belongs to the editor, so logs go to a file or nowhere.
	var logger logging.Logger = logging.NewNopLogger()
	if cfg.Log.File != "" {
		fileLogger, closer, err := logging.NewFileLogger(cfg.Log.File, logLevel(cfg))
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = fileLogger
	}

	reg := metrics.DefaultRegistry()
	bus := events.NewBus()
	defer bus.Shutdown()

	grid := term.NewGrid(float64(cfg.Canvas.Width), float64(cfg.Canvas.Height), cfg.Canvas.CellWidth, cfg.Canvas.CellHeight)
	ed := editor.New(grid,
		editor.WithLogger(logger),
		editor.WithMetrics(reg),
		editor.WithEventBus(bus),
		editor.WithAttackConfig(cfg.AttackSettings()),
		editor.WithCancelOnEdit(cfg.Attack.CancelOnEdit),
	)

	serveErr := make(chan error, 1)
	if cfg.Inspect.Listen != "" {
		srv, err := inspect.NewServer(ed, reg, logger)
		if err != nil {
			return err
		}
		go func() {
			serveErr <- srv.ListenAndServe(ctx, cfg.Inspect.Listen)
		}()
	} else {
		close(serveErr)
	}

	logger.Info("editor started", logging.Count(len(cfg.Palette)))
	model := tui.New(ed, grid, tui.Options{
		Palette:     cfg.Palette,
		SnapshotDir: cfg.SnapshotDir,
		Bus:         bus,
		Logger:      logger,
	})
	runErr := tui.Run(ctx, model)
	stop()

	if err := <-serveErr; err != nil {
		logger.Error("inspect server failed", logging.Error(err))
		runErr = errors.Join(runErr, err)
	}
	logger.Info("editor stopped")
	return ignoreClosed(runErr)
}

// ignoreClosed treats a signal-driven shutdown as a normal exit.
func ignoreClosed(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
