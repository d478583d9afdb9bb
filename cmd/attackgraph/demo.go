package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/attackgraph/pkg/canvas/raster"
	"github.com/dd0wney/attackgraph/pkg/config"
	"github.com/dd0wney/attackgraph/pkg/diagram"
	"github.com/dd0wney/attackgraph/pkg/editor"
	"github.com/dd0wney/attackgraph/pkg/logging"
)

type demoOptions struct {
	out      string
	interval time.Duration
	frames   bool
}

func demoCmd(root *rootOptions) *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build attacker -> firewall -> database, run the attack and write PNG frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if opts.interval > 0 {
				cfg.Attack.Interval = opts.interval
			}
			if opts.out == "" {
				opts.out = cfg.SnapshotDir
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := logging.NewJSONLogger(os.Stderr, logLevel(cfg))
			return runDemo(ctx, cfg, opts, logger)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "directory for PNG frames (default: snapshot_dir)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "delay between hops (default: attack.interval)")
	cmd.Flags().BoolVar(&opts.frames, "frames", true, "write a PNG after every redraw, not just the last")
	return cmd
}

func runDemo(ctx context.Context, cfg config.Config, opts *demoOptions, logger logging.Logger) error {
	surface := raster.New(cfg.Canvas.Width, cfg.Canvas.Height)
	ed := editor.New(surface,
		editor.WithLogger(logger),
		editor.WithAttackConfig(cfg.AttackSettings()),
	)

	var writeErr error
	written := 0
	save := func(name string) {
		if writeErr != nil {
			return
		}
		path := filepath.Join(opts.out, name)
		if err := surface.SavePNG(path); err != nil {
			writeErr = err
			return
		}
		written++
	}
	if opts.frames {
		ed.OnRender(func(s *editor.Snapshot) {
			save(fmt.Sprintf("frame-%04d.png", s.Frame))
		})
	}

	timer := logging.StartTimer(logger, "demo")
	buildDemoGraph(ed, cfg)
	plan := ed.StartAttack()
	logger.Info("demo attack planned",
		logging.RunID(plan.Run.String()),
		logging.Count(len(plan.Hops)),
		logging.String("outcome", string(plan.Outcome)),
	)

	if err := ed.Drain(ctx); err != nil {
		timer.EndError(err)
		return err
	}
	ed.OnRender(nil)
	save("final.png")
	if writeErr != nil {
		timer.EndError(writeErr)
		return writeErr
	}
	timer.End()

	logger.Info("demo finished", logging.Path(opts.out), logging.Count(written))
	return nil
}

// buildDemoGraph places attacker, firewall and database in a row and connects
// them through the same drop and click gestures a user would make.
func buildDemoGraph(ed *editor.Editor, cfg config.Config) {
	types := []string{cfg.Attack.AttackerType, diagram.TypeFirewall, cfg.Attack.TargetType}
	y := float64(cfg.Canvas.Height)/2 - diagram.NodeHeight/2
	gap := (float64(cfg.Canvas.Width) - float64(len(types))*diagram.NodeWidth) / float64(len(types)+1)

	nodes := make([]diagram.Node, 0, len(types))
	for i, typ := range types {
		x := gap + float64(i)*(diagram.NodeWidth+gap)
		ed.Drop(typ, diagram.Pt(x, y))
		last := ed.Graph().Nodes()[ed.Graph().NodeCount()-1]
		nodes = append(nodes, *last)
	}
	for i := 1; i < len(nodes); i++ {
		ed.Drop(diagram.PayloadArrow, nodes[i-1].Center())
		ed.PointerMove(nodes[i].Center())
		ed.PointerDown(nodes[i].Center())
	}
}
