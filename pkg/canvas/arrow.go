package canvas

import (
	"math"

	"github.com/dd0wney/attackgraph/pkg/diagram"
)

const (
	// ArrowHeadLength is the distance from the apex to each back corner.
	ArrowHeadLength = 15.0
	// ArrowHeadAngle is the half-angle of the arrowhead (30 degrees).
	ArrowHeadAngle = math.Pi / 6
	// LineWidth is used for arrows and node outlines.
	LineWidth = 2.0
)

// ArrowHead returns the triangle for an arrow from -> to. The apex sits on
// the midpoint of the line, not on the destination; the back corners are
// rotated ±30° off the reversed line direction.
func ArrowHead(from, to diagram.Point) [3]diagram.Point {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	mid := diagram.Midpoint(from, to)

	return [3]diagram.Point{
		mid,
		{
			X: mid.X - ArrowHeadLength*math.Cos(angle-ArrowHeadAngle),
			Y: mid.Y - ArrowHeadLength*math.Sin(angle-ArrowHeadAngle),
		},
		{
			X: mid.X - ArrowHeadLength*math.Cos(angle+ArrowHeadAngle),
			Y: mid.Y - ArrowHeadLength*math.Sin(angle+ArrowHeadAngle),
		},
	}
}

// DrawArrow strokes the line from -> to and fills its midpoint arrowhead.
func DrawArrow(s Surface, from, to diagram.Point, c diagram.Color) {
	s.Line(from, to, c, LineWidth)
	head := ArrowHead(from, to)
	s.FillPolygon(head[:], c)
}
