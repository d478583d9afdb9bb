package editor

import (
	"github.com/google/uuid"

	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// Snapshot is an immutable copy of the scene taken after a render. It is the
// only editor data other goroutines may read.
type Snapshot struct {
	Frame        uint64
	Nodes        []diagram.Node
	Connections  []diagram.Connection
	Mode         string
	Pointer      diagram.Point
	Dragged      diagram.NodeID
	PendingStart diagram.NodeID
	Attacking    bool
	Run          string
	PendingHops  int
	LastOutcome  string
	Width        float64
	Height       float64
}

func (e *Editor) takeSnapshot() *Snapshot {
	nodes := make([]diagram.Node, 0, e.graph.NodeCount())
	for _, n := range e.graph.Nodes() {
		nodes = append(nodes, *n)
	}
	conns := make([]diagram.Connection, 0, e.graph.ConnectionCount())
	for _, c := range e.graph.Connections() {
		conns = append(conns, *c)
	}

	run := ""
	if e.seq.Run() != uuid.Nil {
		run = e.seq.Run().String()
	}
	w, h := e.renderer.Surface().Size()

	return &Snapshot{
		Frame:        e.frames,
		Nodes:        nodes,
		Connections:  conns,
		Mode:         e.state.Mode.String(),
		Pointer:      e.state.Pointer,
		Dragged:      e.state.Dragged,
		PendingStart: e.state.PendingStart,
		Attacking:    e.state.Attacking,
		Run:          run,
		PendingHops:  e.seq.Pending(),
		LastOutcome:  string(e.lastOutcome),
		Width:        w,
		Height:       h,
	}
}

// Snapshot returns the scene as of the last render. Safe for concurrent use.
func (e *Editor) Snapshot() *Snapshot {
	return e.snapshot.Load()
}
