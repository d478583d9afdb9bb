package editor

import (
	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// Mode is the top-level interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDraggingNode
	ModeDrawingEdge
)

// String returns the mode name used in logs and snapshots.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDraggingNode:
		return "dragging_node"
	case ModeDrawingEdge:
		return "drawing_edge"
	default:
		return "unknown"
	}
}

// EdgeStage is the sub-state of ModeDrawingEdge.
type EdgeStage int

const (
	EdgeNoStartChosen EdgeStage = iota
	EdgeStartChosen
)

// State is the editor's transient interaction state. There is exactly one per
// Editor; gestures return it to idle when they complete.
type State struct {
	Mode Mode
	// Pointer is the last pointer position recorded for the edge preview.
	Pointer      diagram.Point
	Dragged      diagram.NodeID
	PendingStart diagram.NodeID
	Attacking    bool
}

// EdgeStage reports whether a start node has been chosen. Only meaningful in
// ModeDrawingEdge.
func (s State) EdgeStage() EdgeStage {
	if s.PendingStart != 0 {
		return EdgeStartChosen
	}
	return EdgeNoStartChosen
}

// DrawingEdge reports whether an edge gesture is in progress.
func (s State) DrawingEdge() bool {
	return s.Mode == ModeDrawingEdge
}

func (s *State) toIdle() {
	s.Mode = ModeIdle
	s.Dragged = 0
	s.PendingStart = 0
}
