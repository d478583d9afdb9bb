// Package editor turns pointer, drop and attack events into changes to the
// attack graph and redraws the scene after every change.
//
// All methods must be called from one goroutine (the host's event loop).
// Snapshot is the exception and may be read from anywhere.
package editor

import (
	"sync/atomic"
	"time"

	"github.com/dd0wney/attackgraph/pkg/attack"
	"github.com/dd0wney/attackgraph/pkg/canvas"
	"github.com/dd0wney/attackgraph/pkg/diagram"
	"github.com/dd0wney/attackgraph/pkg/events"
	"github.com/dd0wney/attackgraph/pkg/logging"
	"github.com/dd0wney/attackgraph/pkg/metrics"
)

// Editor owns the graph, the interaction state and the attack sequencer.
type Editor struct {
	graph    *diagram.Graph
	state    State
	renderer *canvas.Renderer
	seq      *attack.Sequencer

	logger  logging.Logger
	metrics *metrics.Registry
	bus     *events.Bus
	clock   Clock

	attackCfg    attack.Config
	cancelOnEdit bool
	lastOutcome  attack.Outcome
	frames       uint64
	snapshot     atomic.Pointer[Snapshot]
	onRender     func(*Snapshot)
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(e *Editor) { e.metrics = r }
}

// WithEventBus publishes editor events on bus.
func WithEventBus(bus *events.Bus) Option {
	return func(e *Editor) { e.bus = bus }
}

// WithClock sets the time source for attack scheduling.
func WithClock(c Clock) Option {
	return func(e *Editor) { e.clock = c }
}

// WithAttackConfig sets interval, hop cap and node types for the sequencer.
func WithAttackConfig(cfg attack.Config) Option {
	return func(e *Editor) { e.attackCfg = cfg }
}

// WithSequencer replaces the sequencer (tests inject fixed run ids).
func WithSequencer(s *attack.Sequencer) Option {
	return func(e *Editor) { e.seq = s }
}

// WithCancelOnEdit drops queued hops whenever the graph is edited.
func WithCancelOnEdit(enabled bool) Option {
	return func(e *Editor) { e.cancelOnEdit = enabled }
}

// New creates an editor drawing on surface and renders the empty scene.
func New(surface canvas.Surface, opts ...Option) *Editor {
	e := &Editor{
		graph:     diagram.NewGraph(),
		renderer:  canvas.NewRenderer(surface),
		logger:    logging.NewNopLogger(),
		clock:     RealClock(),
		attackCfg: attack.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.NewRegistry()
	}
	if e.seq == nil {
		e.seq = attack.NewSequencer(e.attackCfg)
	}
	e.logger = e.logger.With(logging.Component("editor"))

	e.render()
	return e
}

// Graph returns the live graph. Callers on the event goroutine may read it;
// mutations should go through the editor so the scene is redrawn.
func (e *Editor) Graph() *diagram.Graph {
	return e.graph
}

// State returns a copy of the interaction state.
func (e *Editor) State() State {
	return e.state
}

// Sequencer returns the attack sequencer.
func (e *Editor) Sequencer() *attack.Sequencer {
	return e.seq
}

// Surface returns the drawing surface.
func (e *Editor) Surface() canvas.Surface {
	return e.renderer.Surface()
}

// Render redraws the scene. Every mutating method already does this.
func (e *Editor) Render() {
	e.render()
}

// RenderTo draws the current scene on another surface, such as a PNG
// snapshot. The editor's own surface is left alone.
func (e *Editor) RenderTo(s canvas.Surface) {
	canvas.NewRenderer(s).Render(e.scene())
}

func (e *Editor) scene() canvas.Scene {
	scene := canvas.Scene{Graph: e.graph}
	if e.state.DrawingEdge() && e.state.PendingStart != 0 {
		if from, err := e.graph.Node(e.state.PendingStart); err == nil {
			scene.Preview = &canvas.Preview{From: from.Center(), To: e.state.Pointer}
		}
	}
	return scene
}

func (e *Editor) render() {
	start := time.Now()
	e.renderer.Render(e.scene())

	e.frames++
	e.metrics.RecordRender(time.Since(start))
	e.metrics.UpdateSceneSize(e.graph.NodeCount(), e.graph.ConnectionCount())
	snap := e.takeSnapshot()
	e.snapshot.Store(snap)
	if e.onRender != nil {
		e.onRender(snap)
	}
}

// OnRender registers fn to run after every render, on the editor's
// goroutine. Passing nil removes it.
func (e *Editor) OnRender(fn func(*Snapshot)) {
	e.onRender = fn
}

func (e *Editor) publish(ev events.Event) {
	if e.bus == nil {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = e.clock.Now()
	}
	e.bus.Publish(ev)
}
