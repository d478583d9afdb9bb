package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/attackgraph/pkg/diagram"
)

func sampleGraph(t *testing.T) (*diagram.Graph, *diagram.Node, *diagram.Node) {
	t.Helper()
	g := diagram.NewGraph()
	att := g.AddNode(diagram.TypeAttacker, 0, 0)
	db := g.AddNode(diagram.TypeDatabase, 300, 100)
	_, err := g.Connect(att.ID, db.ID)
	require.NoError(t, err)
	return g, att, db
}

func TestRenderOrder(t *testing.T) {
	g, att, db := sampleGraph(t)
	rec := NewRecorder(800, 600)

	NewRenderer(rec).Render(Scene{
		Graph:   g,
		Preview: &Preview{From: att.Center(), To: diagram.Pt(500, 500)},
	})

	kinds := make([]OpKind, 0)
	for _, op := range rec.Frame() {
		kinds = append(kinds, op.Kind)
	}
	assert.Equal(t, []OpKind{
		// connection
		OpLine, OpFillPolygon,
		// attacker node
		OpFillRect, OpStrokeRect, OpText,
		// database node
		OpFillRect, OpStrokeRect, OpText,
		// preview
		OpLine, OpFillPolygon,
	}, kinds)

	frame := rec.Frame()
	assert.Equal(t, []diagram.Point{att.Center(), db.Center()}, frame[0].Points)
	assert.Equal(t, diagram.NeutralArrowColor, frame[0].Color)
	assert.Equal(t, LineWidth, frame[0].LineWidth)

	assert.Equal(t, att.Bounds(), frame[2].Rect)
	assert.Equal(t, diagram.NeutralNodeColor, frame[2].Color)
	assert.Equal(t, diagram.OutlineColor, frame[3].Color)
	assert.Equal(t, "attacker", frame[4].Text)
	assert.Equal(t, att.Center(), frame[4].Points[0])

	assert.Equal(t, []diagram.Point{att.Center(), diagram.Pt(500, 500)}, frame[8].Points)
	assert.Equal(t, diagram.NeutralArrowColor, frame[8].Color)
}

func TestRenderUsesCurrentColors(t *testing.T) {
	g, att, _ := sampleGraph(t)
	att.Color = diagram.AlertColor
	g.Connections()[0].Color = diagram.AlertColor

	rec := NewRecorder(800, 600)
	NewRenderer(rec).Render(Scene{Graph: g})

	lines := rec.OpsOfKind(OpLine)
	require.Len(t, lines, 1)
	assert.Equal(t, diagram.AlertColor, lines[0].Color)

	fills := rec.OpsOfKind(OpFillRect)
	require.Len(t, fills, 2)
	assert.Equal(t, diagram.AlertColor, fills[0].Color)
	assert.Equal(t, diagram.NeutralNodeColor, fills[1].Color)
}

func TestRenderIsIdempotent(t *testing.T) {
	g, att, _ := sampleGraph(t)
	rec := NewRecorder(800, 600)
	r := NewRenderer(rec)
	scene := Scene{Graph: g, Preview: &Preview{From: att.Center(), To: diagram.Pt(10, 400)}}

	r.Render(scene)
	first := rec.Frame()
	r.Render(scene)
	second := rec.Frame()

	assert.Equal(t, first, second)
	assert.Equal(t, 2, rec.Clears())
}

func TestRenderEmptyScene(t *testing.T) {
	rec := NewRecorder(10, 10)
	NewRenderer(rec).Render(Scene{})
	assert.Empty(t, rec.Frame())
	assert.Equal(t, 1, rec.Clears())
}

func TestArrowHeadSitsOnMidpoint(t *testing.T) {
	tests := []struct {
		name     string
		from, to diagram.Point
	}{
		{"rightwards", diagram.Pt(0, 0), diagram.Pt(100, 0)},
		{"downwards", diagram.Pt(50, 0), diagram.Pt(50, 200)},
		{"diagonal back", diagram.Pt(300, 300), diagram.Pt(-20, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head := ArrowHead(tt.from, tt.to)
			mid := diagram.Midpoint(tt.from, tt.to)
			assert.Equal(t, mid, head[0], "apex must be the line midpoint")

			for _, corner := range head[1:] {
				d := math.Hypot(corner.X-mid.X, corner.Y-mid.Y)
				assert.InDelta(t, ArrowHeadLength, d, 1e-9)
			}

			// Back corners lie behind the apex along the line direction.
			dir := diagram.Pt(tt.to.X-tt.from.X, tt.to.Y-tt.from.Y)
			for _, corner := range head[1:] {
				v := corner.Sub(mid)
				assert.Less(t, v.X*dir.X+v.Y*dir.Y, 0.0)
			}
		})
	}
}

func TestArrowHeadRightwardsCorners(t *testing.T) {
	head := ArrowHead(diagram.Pt(0, 0), diagram.Pt(100, 0))
	// θ = 0: corners at mid - 15(cos ∓30°, sin ∓30°)
	assert.InDelta(t, 50-15*math.Cos(math.Pi/6), head[1].X, 1e-9)
	assert.InDelta(t, 7.5, head[1].Y, 1e-9)
	assert.InDelta(t, 50-15*math.Cos(math.Pi/6), head[2].X, 1e-9)
	assert.InDelta(t, -7.5, head[2].Y, 1e-9)
}
