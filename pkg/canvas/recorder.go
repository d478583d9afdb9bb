package canvas

import (
	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// OpKind names a recorded drawing primitive.
type OpKind string

const (
	OpFillRect    OpKind = "fill_rect"
	OpStrokeRect  OpKind = "stroke_rect"
	OpLine        OpKind = "line"
	OpFillPolygon OpKind = "fill_polygon"
	OpText        OpKind = "text"
)

// Op is one recorded drawing call.
type Op struct {
	Kind      OpKind
	Rect      diagram.Rect
	Points    []diagram.Point
	Color     diagram.Color
	LineWidth float64
	Text      string
}

// Recorder is a Surface that keeps the ops drawn since the last Clear. Its
// Frame is what would be visible on a real surface.
type Recorder struct {
	width, height float64
	ops           []Op
	clears        int
}

// NewRecorder creates a recording surface of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) Resize(width, height float64) {
	r.width, r.height = width, height
}

func (r *Recorder) Clear() {
	r.ops = nil
	r.clears++
}

func (r *Recorder) FillRect(rect diagram.Rect, c diagram.Color) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect diagram.Rect, c diagram.Color, lineWidth float64) {
	r.ops = append(r.ops, Op{Kind: OpStrokeRect, Rect: rect, Color: c, LineWidth: lineWidth})
}

func (r *Recorder) Line(from, to diagram.Point, c diagram.Color, lineWidth float64) {
	r.ops = append(r.ops, Op{Kind: OpLine, Points: []diagram.Point{from, to}, Color: c, LineWidth: lineWidth})
}

func (r *Recorder) FillPolygon(pts []diagram.Point, c diagram.Color) {
	cp := make([]diagram.Point, len(pts))
	copy(cp, pts)
	r.ops = append(r.ops, Op{Kind: OpFillPolygon, Points: cp, Color: c})
}

func (r *Recorder) Text(s string, center diagram.Point, c diagram.Color) {
	r.ops = append(r.ops, Op{Kind: OpText, Points: []diagram.Point{center}, Color: c, Text: s})
}

// Frame returns a copy of the ops drawn since the last Clear.
func (r *Recorder) Frame() []Op {
	frame := make([]Op, len(r.ops))
	copy(frame, r.ops)
	return frame
}

// Clears returns how many times the surface was cleared, i.e. how many
// frames were rendered.
func (r *Recorder) Clears() int {
	return r.clears
}

// OpsOfKind filters the current frame.
func (r *Recorder) OpsOfKind(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
