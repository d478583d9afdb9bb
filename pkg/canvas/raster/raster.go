// Package raster implements canvas.Surface on an in-memory RGBA image using
// fogleman/gg, and writes frames as PNG.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// Background is the color Clear paints.
const Background diagram.Color = "#fff"

// Surface draws onto a gg.Context.
type Surface struct {
	dc *gg.Context
}

// New creates a raster surface of the given pixel size.
func New(width, height int) *Surface {
	return &Surface{dc: gg.NewContext(clampDim(width), clampDim(height))}
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.dc.Width()), float64(s.dc.Height())
}

func (s *Surface) Resize(width, height float64) {
	w := clampDim(int(math.Round(width)))
	h := clampDim(int(math.Round(height)))
	if w == s.dc.Width() && h == s.dc.Height() {
		return
	}
	s.dc = gg.NewContext(w, h)
}

func (s *Surface) Clear() {
	s.dc.SetHexColor(string(Background))
	s.dc.Clear()
}

func (s *Surface) FillRect(r diagram.Rect, c diagram.Color) {
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.SetHexColor(string(c))
	s.dc.Fill()
}

func (s *Surface) StrokeRect(r diagram.Rect, c diagram.Color, lineWidth float64) {
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.SetHexColor(string(c))
	s.dc.SetLineWidth(lineWidth)
	s.dc.Stroke()
}

func (s *Surface) Line(from, to diagram.Point, c diagram.Color, lineWidth float64) {
	s.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	s.dc.SetHexColor(string(c))
	s.dc.SetLineWidth(lineWidth)
	s.dc.Stroke()
}

func (s *Surface) FillPolygon(pts []diagram.Point, c diagram.Color) {
	if len(pts) < 3 {
		return
	}
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
	s.dc.SetHexColor(string(c))
	s.dc.Fill()
}

func (s *Surface) Text(str string, center diagram.Point, c diagram.Color) {
	s.dc.SetHexColor(string(c))
	s.dc.DrawStringAnchored(str, center.X, center.Y, 0.5, 0.5)
}

// Image returns the current frame.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the current frame as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// SavePNG writes the current frame to path, creating parent directories.
func (s *Surface) SavePNG(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}
