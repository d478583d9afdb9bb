// Package canvas draws the attack-graph scene onto a 2D drawing surface.
//
// The surface is whatever the host provides: a PNG image (raster), a grid of
// terminal cells (term), or an in-memory op log (Recorder). The Renderer only
// relies on the primitives below.
package canvas

import "github.com/dd0wney/attackgraph/pkg/diagram"

// Surface is the host's 2D drawing surface in canvas pixel coordinates.
type Surface interface {
	// Size returns the drawable width and height.
	Size() (width, height float64)
	// Resize changes the drawable area. Contents are undefined until the
	// next Clear.
	Resize(width, height float64)
	// Clear wipes the whole surface.
	Clear()
	FillRect(r diagram.Rect, c diagram.Color)
	StrokeRect(r diagram.Rect, c diagram.Color, lineWidth float64)
	Line(from, to diagram.Point, c diagram.Color, lineWidth float64)
	// FillPolygon fills a closed polygon; pts[0] is the apex for arrowheads.
	FillPolygon(pts []diagram.Point, c diagram.Color)
	// Text draws s centered on center.
	Text(s string, center diagram.Point, c diagram.Color)
}
