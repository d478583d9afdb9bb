package canvas

import (
	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// Preview is the in-progress edge drawn while the user picks an end node.
type Preview struct {
	From diagram.Point
	To   diagram.Point
}

// Scene is everything the renderer draws for one frame.
type Scene struct {
	Graph   *diagram.Graph
	Preview *Preview
}

// Renderer redraws a full scene onto a Surface.
type Renderer struct {
	surface Surface
}

// NewRenderer creates a renderer for the given surface.
func NewRenderer(surface Surface) *Renderer {
	return &Renderer{surface: surface}
}

// Surface returns the surface being drawn on.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// Render clears the surface and draws connections, then nodes, then the edge
// preview. It only draws, so calling it again without a state change yields
// the same frame.
func (r *Renderer) Render(scene Scene) {
	s := r.surface
	s.Clear()

	if scene.Graph != nil {
		for _, conn := range scene.Graph.Connections() {
			from, to, err := scene.Graph.Endpoints(conn)
			if err != nil {
				continue
			}
			DrawArrow(s, from.Center(), to.Center(), conn.Color)
		}

		for _, node := range scene.Graph.Nodes() {
			drawNode(s, node)
		}
	}

	if scene.Preview != nil {
		DrawArrow(s, scene.Preview.From, scene.Preview.To, diagram.NeutralArrowColor)
	}
}

func drawNode(s Surface, n *diagram.Node) {
	bounds := n.Bounds()
	s.FillRect(bounds, n.Color)
	s.StrokeRect(bounds, diagram.OutlineColor, LineWidth)
	s.Text(n.Type, n.Center(), diagram.LabelColor)
}
