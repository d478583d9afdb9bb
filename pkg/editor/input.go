package editor

import (
	"errors"

	"github.com/dd0wney/attackgraph/pkg/diagram"
	"github.com/dd0wney/attackgraph/pkg/events"
	"github.com/dd0wney/attackgraph/pkg/logging"
	"github.com/dd0wney/attackgraph/pkg/metrics"
)

// Drop handles a palette item released on the canvas at p. The arrow payload
// starts an edge gesture from the node under p (nothing happens when there is
// none); any other payload places a node with its top-left corner at p.
func (e *Editor) Drop(payload string, p diagram.Point) {
	e.metrics.RecordInputEvent(metrics.EventDrop)
	defer e.render()

	switch payload {
	case "":
		e.logger.Debug("drop without payload ignored", logging.Position(p.X, p.Y))

	case diagram.PayloadArrow:
		node, ok := e.graph.NodeAt(p)
		if !ok {
			e.logger.Debug("edge drop missed every node", logging.Position(p.X, p.Y))
			return
		}
		e.state.Mode = ModeDrawingEdge
		e.state.Dragged = 0
		e.state.PendingStart = node.ID
		e.state.Pointer = p
		e.logger.Debug("edge gesture started", logging.NodeID(uint64(node.ID)), logging.Mode(e.state.Mode.String()))
		e.publish(events.Event{Kind: events.EdgeGestureStarted, NodeID: uint64(node.ID), NodeType: node.Type})

	default:
		node := e.graph.AddNode(payload, p.X, p.Y)
		e.logger.Info("node placed",
			logging.NodeID(uint64(node.ID)),
			logging.NodeType(node.Type),
			logging.Position(node.X, node.Y),
		)
		e.publish(events.Event{Kind: events.NodeAdded, NodeID: uint64(node.ID), NodeType: node.Type})
		e.edited()
	}
}

// BeginEdge arms the edge tool without choosing a start node. The next
// pointer-down on a node picks the start.
func (e *Editor) BeginEdge() {
	e.state.Mode = ModeDrawingEdge
	e.state.Dragged = 0
	e.state.PendingStart = 0
	e.logger.Debug("edge tool armed", logging.Mode(e.state.Mode.String()))
	e.publish(events.Event{Kind: events.EdgeGestureStarted})
	e.render()
}

// PointerDown handles a press at p. On a node it either completes the edge
// gesture, picks the edge start, or starts dragging the node.
func (e *Editor) PointerDown(p diagram.Point) {
	e.metrics.RecordInputEvent(metrics.EventPointerDown)
	defer e.render()

	node, ok := e.graph.NodeAt(p)
	if !ok {
		return
	}

	switch {
	case e.state.DrawingEdge() && e.state.EdgeStage() == EdgeStartChosen:
		e.completeEdge(node)

	case e.state.DrawingEdge():
		e.state.PendingStart = node.ID
		e.state.Pointer = p
		e.logger.Debug("edge start chosen", logging.NodeID(uint64(node.ID)), logging.Mode(e.state.Mode.String()))

	default:
		e.state.Mode = ModeDraggingNode
		e.state.Dragged = node.ID
		e.logger.Debug("drag started", logging.NodeID(uint64(node.ID)), logging.Mode(e.state.Mode.String()))
	}
}

func (e *Editor) completeEdge(end *diagram.Node) {
	start := e.state.PendingStart
	conn, err := e.graph.Connect(start, end.ID)
	if err != nil {
		// The gesture stays pending so the user can pick another end node.
		reason := "other"
		switch {
		case !diagram.IsRejectedConnection(err):
			e.logger.Warn("connect failed", logging.NodeID(uint64(end.ID)), logging.Error(err))
		case errors.Is(err, diagram.ErrSelfLoop):
			reason = "self_loop"
		default:
			reason = "duplicate"
		}
		e.metrics.RecordRejectedConnection(reason)
		e.logger.Debug("connection rejected", logging.String("reason", reason), logging.Error(err))
		e.publish(events.Event{Kind: events.ConnectionRejected, NodeID: uint64(end.ID), Detail: reason})
		return
	}

	e.state.toIdle()
	e.logger.Info("connection added",
		logging.ConnectionID(uint64(conn.ID)),
		logging.Uint64("from", uint64(conn.From)),
		logging.Uint64("to", uint64(conn.To)),
		logging.Mode(e.state.Mode.String()),
	)
	e.publish(events.Event{Kind: events.ConnectionAdded, ConnectionID: uint64(conn.ID), NodeID: uint64(conn.To)})
	e.edited()
}

// PointerMove handles pointer motion to p: a dragged node follows with its
// center, and an edge gesture's preview follows the pointer. The scene is
// redrawn on every move.
func (e *Editor) PointerMove(p diagram.Point) {
	e.metrics.RecordInputEvent(metrics.EventPointerMove)
	defer e.render()

	if e.state.Mode == ModeDraggingNode {
		if node, err := e.graph.Node(e.state.Dragged); err == nil {
			node.MoveCenterTo(p)
			e.edited()
		}
	}
	if e.state.DrawingEdge() {
		e.state.Pointer = p
	}
}

// PointerUp ends a drag. It does not cancel an edge gesture.
func (e *Editor) PointerUp() {
	e.metrics.RecordInputEvent(metrics.EventPointerUp)
	if e.state.Mode == ModeDraggingNode {
		e.state.toIdle()
	}
	e.render()
}

// Resize changes the surface size and redraws.
func (e *Editor) Resize(width, height float64) {
	e.metrics.RecordInputEvent(metrics.EventResize)
	e.renderer.Surface().Resize(width, height)
	e.render()
}

// edited runs after any graph change.
func (e *Editor) edited() {
	if !e.cancelOnEdit {
		return
	}
	if dropped := e.seq.DropPending(); dropped > 0 {
		e.metrics.RecordHopsCanceled(dropped)
		e.logger.Info("queued hops dropped after edit", logging.Count(dropped))
		e.publish(events.Event{Kind: events.AttackCanceled, RunID: e.seq.Run().String(), Detail: "edit"})
	}
}
