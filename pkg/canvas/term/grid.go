// Package term implements canvas.Surface as a grid of terminal cells.
//
// Canvas coordinates stay in pixels; each cell stands for CellWidth x
// CellHeight pixels, so a 100x50 node covers roughly 12x3 cells with the
// default 8x16 cell. A cell belongs to a shape when its center does.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// Default cell size in canvas pixels.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

type cell struct {
	ch rune
	fg diagram.Color
	bg diagram.Color
}

var blank = cell{ch: ' '}

// Grid is a character-cell drawing surface.
type Grid struct {
	cellW, cellH  float64
	width, height float64
	cols, rows    int
	cells         []cell
}

// NewGrid creates a grid covering width x height canvas pixels.
func NewGrid(width, height, cellWidth, cellHeight float64) *Grid {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	g := &Grid{cellW: cellWidth, cellH: cellHeight}
	g.Resize(width, height)
	return g
}

// CellSize returns the pixel size of one cell.
func (g *Grid) CellSize() (float64, float64) {
	return g.cellW, g.cellH
}

// Dimensions returns the grid size in cells.
func (g *Grid) Dimensions() (cols, rows int) {
	return g.cols, g.rows
}

// CellCenter converts a cell position to the canvas point at its center.
func (g *Grid) CellCenter(col, row int) diagram.Point {
	return diagram.Point{
		X: (float64(col) + 0.5) * g.cellW,
		Y: (float64(row) + 0.5) * g.cellH,
	}
}

func (g *Grid) Size() (float64, float64) {
	return g.width, g.height
}

func (g *Grid) Resize(width, height float64) {
	g.width = math.Max(width, 0)
	g.height = math.Max(height, 0)
	g.cols = int(math.Ceil(g.width / g.cellW))
	g.rows = int(math.Ceil(g.height / g.cellH))
	g.cells = make([]cell, g.cols*g.rows)
	g.Clear()
}

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blank
	}
}

func (g *Grid) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

// span returns the inclusive cell range whose centers fall in [lo, hi].
func span(lo, hi, size float64) (int, int) {
	return int(math.Ceil(lo/size - 0.5)), int(math.Floor(hi/size - 0.5))
}

func (g *Grid) rectCells(r diagram.Rect) (c0, c1, r0, r1 int) {
	c0, c1 = span(r.X, r.X+r.Width, g.cellW)
	r0, r1 = span(r.Y, r.Y+r.Height, g.cellH)
	return
}

func (g *Grid) FillRect(r diagram.Rect, c diagram.Color) {
	c0, c1, r0, r1 := g.rectCells(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if cl := g.at(col, row); cl != nil {
				*cl = cell{ch: ' ', bg: c}
			}
		}
	}
}

func (g *Grid) StrokeRect(r diagram.Rect, c diagram.Color, _ float64) {
	c0, c1, r0, r1 := g.rectCells(r)
	if c1 < c0 || r1 < r0 {
		return
	}
	set := func(col, row int, ch rune) {
		if cl := g.at(col, row); cl != nil {
			cl.ch = ch
			cl.fg = c
		}
	}
	for col := c0 + 1; col < c1; col++ {
		set(col, r0, '─')
		set(col, r1, '─')
	}
	for row := r0 + 1; row < r1; row++ {
		set(c0, row, '│')
		set(c1, row, '│')
	}
	set(c0, r0, '┌')
	set(c1, r0, '┐')
	set(c0, r1, '└')
	set(c1, r1, '┘')
}

func (g *Grid) cellOf(p diagram.Point) (int, int) {
	return int(math.Floor(p.X / g.cellW)), int(math.Floor(p.Y / g.cellH))
}

// Line is clipped to the grid first, so the walk visits at most cols+rows
// cells however far off-grid the endpoints lie.
func (g *Grid) Line(from, to diagram.Point, c diagram.Color, _ float64) {
	glyph := lineGlyph((to.X-from.X)/g.cellW, (to.Y-from.Y)/g.cellH)
	from, to, ok := clipSegment(from, to, g.width, g.height)
	if !ok {
		return
	}
	x0, y0 := g.cellOf(from)
	x1, y1 := g.cellOf(to)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if cl := g.at(x0, y0); cl != nil {
			cl.ch = glyph
			cl.fg = c
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment trims a to b to the rectangle [0, w] x [0, h] (Liang-Barsky).
// ok is false when nothing of the segment is inside or a coordinate is not
// finite.
func clipSegment(a, b diagram.Point, w, h float64) (diagram.Point, diagram.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	for _, v := range [...]float64{a.X, a.Y, dx, dy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, b, false
		}
	}
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{{-dx, a.X}, {dx, w - a.X}, {-dy, a.Y}, {dy, h - a.Y}}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return diagram.Pt(a.X+t0*dx, a.Y+t0*dy), diagram.Pt(a.X+t1*dx, a.Y+t1*dy), true
}

// lineGlyph picks the character for a line with the given run, in cells.
func lineGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case dy == 0 || adx >= 2*ady:
		return '─'
	case dx == 0 || ady >= 2*adx:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// FillPolygon marks the apex cell with an arrow pointing from the centroid of
// the remaining vertices toward the apex.
func (g *Grid) FillPolygon(pts []diagram.Point, c diagram.Color) {
	if len(pts) < 3 {
		return
	}
	var bx, by float64
	for _, p := range pts[1:] {
		bx += p.X
		by += p.Y
	}
	n := float64(len(pts) - 1)
	angle := math.Atan2(pts[0].Y-by/n, pts[0].X-bx/n)

	col, row := g.cellOf(pts[0])
	if cl := g.at(col, row); cl != nil {
		cl.ch = arrowGlyph(angle)
		cl.fg = c
	}
}

var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

func arrowGlyph(angle float64) rune {
	octant := int(math.Round(angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}

func (g *Grid) Text(s string, center diagram.Point, c diagram.Color) {
	runes := []rune(s)
	col, row := g.cellOf(center)
	start := col - len(runes)/2
	for i, r := range runes {
		if cl := g.at(start+i, row); cl != nil {
			cl.ch = r
			cl.fg = c
		}
	}
}

// Rune returns the character at a cell, or 0 outside the grid.
func (g *Grid) Rune(col, row int) rune {
	if cl := g.at(col, row); cl != nil {
		return cl.ch
	}
	return 0
}

// Colors returns the foreground and background of a cell.
func (g *Grid) Colors(col, row int) (fg, bg diagram.Color) {
	if cl := g.at(col, row); cl != nil {
		return cl.fg, cl.bg
	}
	return "", ""
}

// PlainString renders the grid without styling, one line per row.
func (g *Grid) PlainString() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < g.cols; col++ {
			b.WriteRune(g.cells[row*g.cols+col].ch)
		}
	}
	return b.String()
}

// String renders the grid with lipgloss colors. Runs of cells sharing a
// style are rendered together.
func (g *Grid) String() string {
	var b strings.Builder
	styles := make(map[[2]diagram.Color]lipgloss.Style)
	styleFor := func(fg, bg diagram.Color) lipgloss.Style {
		key := [2]diagram.Color{fg, bg}
		if st, ok := styles[key]; ok {
			return st
		}
		st := lipgloss.NewStyle()
		if fg != "" {
			st = st.Foreground(lipgloss.Color(fg))
		}
		if bg != "" {
			st = st.Background(lipgloss.Color(bg))
		}
		styles[key] = st
		return st
	}

	var run strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var cur cell
		run.Reset()
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.fg == "" && cur.bg == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleFor(cur.fg, cur.bg).Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < g.cols; col++ {
			cl := g.cells[row*g.cols+col]
			if run.Len() > 0 && (cl.fg != cur.fg || cl.bg != cur.bg) {
				flush()
			}
			cur = cl
			run.WriteRune(cl.ch)
		}
		flush()
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
