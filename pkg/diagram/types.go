package diagram

// NodeID identifies a node on the canvas. IDs start at 1; 0 means "no node".
type NodeID uint64

// ConnectionID identifies a connection. IDs start at 1.
type ConnectionID uint64

// Color is a CSS-style hex color ("#fff", "#ff0000").
type Color string

// Default colors and node dimensions.
const (
	NodeWidth  = 100.0
	NodeHeight = 50.0

	NeutralNodeColor  Color = "#fff"
	NeutralArrowColor Color = "#999"
	OutlineColor      Color = "#000"
	LabelColor        Color = "#000"
	AlertColor        Color = "#ff0000"
)

// Well-known node types and payloads.
const (
	TypeAttacker = "attacker"
	TypeDatabase = "database"
	TypeFirewall = "firewall"

	// PayloadArrow is the palette payload that starts an edge-drawing gesture
	// instead of placing a node.
	PayloadArrow = "arrow"
)

// Direction of a connection. Only forward edges exist today.
type Direction string

const DirectionForward Direction = "forward"

// Node is a placed vertex of the attack graph.
type Node struct {
	ID     NodeID  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  Color   `json:"color"`
}

// Bounds returns the node's rectangle.
func (n *Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Contains reports whether (x, y) falls inside the node, edges included.
func (n *Node) Contains(x, y float64) bool {
	return n.Bounds().Contains(Point{X: x, Y: y})
}

// Center returns the center of the node.
func (n *Node) Center() Point {
	return n.Bounds().Center()
}

// MoveCenterTo repositions the node so that its center lands on p.
func (n *Node) MoveCenterTo(p Point) {
	n.X = p.X - n.Width/2
	n.Y = p.Y - n.Height/2
}

// Connection is a directed edge between two nodes, stored as an id pair.
type Connection struct {
	ID        ConnectionID `json:"id"`
	From      NodeID       `json:"from"`
	To        NodeID       `json:"to"`
	Direction Direction    `json:"direction"`
	Color     Color        `json:"color"`
}
