package term

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/dd0wney/attackgraph/pkg/canvas"
	"github.com/dd0wney/attackgraph/pkg/diagram"
)

func TestGridDimensions(t *testing.T) {
	g := NewGrid(80, 40, 8, 16)
	cols, rows := g.Dimensions()
	if cols != 10 || rows != 3 {
		t.Errorf("Dimensions() = %d x %d, want 10 x 3", cols, rows)
	}

	g.Resize(16, 16)
	cols, rows = g.Dimensions()
	if cols != 2 || rows != 1 {
		t.Errorf("after Resize Dimensions() = %d x %d, want 2 x 1", cols, rows)
	}

	if c := g.CellCenter(1, 0); c != diagram.Pt(12, 8) {
		t.Errorf("CellCenter(1, 0) = %+v, want {12 8}", c)
	}

	d := NewGrid(10, 10, 0, 0)
	if w, h := d.CellSize(); w != DefaultCellWidth || h != DefaultCellHeight {
		t.Errorf("CellSize() = %v x %v, want defaults", w, h)
	}
}

func TestNodeDrawing(t *testing.T) {
	g := NewGrid(200, 64, 8, 16)
	r := diagram.Rect{X: 0, Y: 0, Width: 100, Height: 50}

	g.FillRect(r, diagram.AlertColor)
	g.StrokeRect(r, diagram.OutlineColor, 2)
	g.Text("db", r.Center(), diagram.LabelColor)

	corners := []struct {
		col, row int
		want     rune
	}{
		{0, 0, '┌'},
		{12, 0, '┐'},
		{0, 2, '└'},
		{12, 2, '┘'},
		{5, 0, '─'},
		{0, 1, '│'},
		{5, 1, 'd'},
		{6, 1, 'b'},
		{13, 1, ' '},
	}
	for _, tt := range corners {
		if got := g.Rune(tt.col, tt.row); got != tt.want {
			t.Errorf("Rune(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}

	fg, bg := g.Colors(3, 1)
	if bg != diagram.AlertColor || fg != "" {
		t.Errorf("Colors(3, 1) = %q/%q, want fill background", fg, bg)
	}
	fg, bg = g.Colors(0, 0)
	if fg != diagram.OutlineColor || bg != diagram.AlertColor {
		t.Errorf("Colors(0, 0) = %q/%q, want outline over fill", fg, bg)
	}
	if _, bg := g.Colors(14, 1); bg != "" {
		t.Errorf("cell outside node has background %q", bg)
	}
}

func TestLineAndArrow(t *testing.T) {
	g := NewGrid(200, 32, 8, 16)
	from, to := diagram.Pt(4, 8), diagram.Pt(164, 8)

	canvas.DrawArrow(g, from, to, diagram.NeutralArrowColor)

	line := strings.Split(g.PlainString(), "\n")[0]
	if !strings.HasPrefix(line, "──────────→") {
		t.Errorf("row 0 = %q, want line with midpoint arrow", line)
	}
	if g.Rune(20, 0) != '─' {
		t.Errorf("Rune(20, 0) = %q, want line end", g.Rune(20, 0))
	}
	if g.Rune(21, 0) != ' ' {
		t.Errorf("line overran its end")
	}
	if fg, _ := g.Colors(10, 0); fg != diagram.NeutralArrowColor {
		t.Errorf("arrow color = %q", fg)
	}
}

func TestLineGlyph(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{5, 0, '─'},
		{0, -3, '│'},
		{4, 1, '─'},
		{1, 4, '│'},
		{3, 3, '╲'},
		{-3, -3, '╲'},
		{3, -3, '╱'},
	}
	for _, tt := range tests {
		if got := lineGlyph(tt.dx, tt.dy); got != tt.want {
			t.Errorf("lineGlyph(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestArrowGlyph(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'},
		{math.Pi, '←'},
		{-math.Pi, '←'},
		{-math.Pi / 2, '↑'},
		{math.Pi / 4, '↘'},
		{-3 * math.Pi / 4, '↖'},
	}
	for _, tt := range tests {
		if got := arrowGlyph(tt.angle); got != tt.want {
			t.Errorf("arrowGlyph(%v) = %q, want %q", tt.angle, got, tt.want)
		}
	}
}

func TestClipping(t *testing.T) {
	g := NewGrid(40, 16, 8, 16)
	g.Text("a very long label", diagram.Pt(20, 8), diagram.LabelColor)
	g.Line(diagram.Pt(-100, -100), diagram.Pt(500, 500), diagram.AlertColor, 2)
	g.FillRect(diagram.Rect{X: -50, Y: -50, Width: 500, Height: 500}, diagram.AlertColor)

	if len([]rune(g.PlainString())) != 5 {
		t.Errorf("PlainString() = %q, want 5 cells", g.PlainString())
	}
	if g.Rune(-1, 0) != 0 || g.Rune(5, 0) != 0 {
		t.Error("Rune outside the grid should be 0")
	}
}

func TestRenderedSceneMatchesAcrossFrames(t *testing.T) {
	gr := diagram.NewGraph()
	a := gr.AddNode(diagram.TypeAttacker, 8, 16)
	b := gr.AddNode(diagram.TypeDatabase, 200, 96)
	if _, err := gr.Connect(a.ID, b.ID); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	g := NewGrid(320, 160, 8, 16)
	r := canvas.NewRenderer(g)
	r.Render(canvas.Scene{Graph: gr})
	first := g.String()
	r.Render(canvas.Scene{Graph: gr})

	if g.String() != first {
		t.Error("rendering the same scene twice produced different output")
	}
	if !strings.Contains(g.PlainString(), "attacker") || !strings.Contains(g.PlainString(), "database") {
		t.Errorf("labels missing from frame:\n%s", g.PlainString())
	}
}

func TestLineFarOffGrid(t *testing.T) {
	g := NewGrid(80, 32, 8, 16)
	outside := NewGrid(80, 32, 8, 16)

	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Line(diagram.Pt(4, 8), diagram.Pt(1e12, 8), diagram.AlertColor, 2)
		g.Line(diagram.Pt(-1e15, 24), diagram.Pt(1e15, 24), diagram.AlertColor, 2)
		outside.Line(diagram.Pt(1e9, 1e9), diagram.Pt(2e9, 3e9), diagram.AlertColor, 2)
		outside.Line(diagram.Pt(4, 8), diagram.Pt(math.Inf(1), 8), diagram.AlertColor, 2)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Line did not finish for far off-grid endpoints")
	}

	want := "──────────\n──────────"
	if got := g.PlainString(); got != want {
		t.Errorf("PlainString() = %q, want %q", got, want)
	}
	if got := strings.TrimSpace(outside.PlainString()); got != "" {
		t.Errorf("lines outside the grid drew %q", got)
	}
}

func TestClipSegment(t *testing.T) {
	near := func(p, q diagram.Point) bool {
		return math.Abs(p.X-q.X) < 1e-9 && math.Abs(p.Y-q.Y) < 1e-9
	}
	a, b, ok := clipSegment(diagram.Pt(-10, 5), diagram.Pt(110, 5), 100, 50)
	if !ok || !near(a, diagram.Pt(0, 5)) || !near(b, diagram.Pt(100, 5)) {
		t.Errorf("clipSegment = %v, %v, %v", a, b, ok)
	}
	if _, _, ok := clipSegment(diagram.Pt(-10, -10), diagram.Pt(-1, 60), 100, 50); ok {
		t.Error("segment left of the grid should be dropped")
	}
	if _, _, ok := clipSegment(diagram.Pt(math.NaN(), 0), diagram.Pt(10, 10), 100, 50); ok {
		t.Error("NaN endpoint should be dropped")
	}
}
