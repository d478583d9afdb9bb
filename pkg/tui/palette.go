package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// palette is the row of draggable items above the canvas.
type palette struct {
	items []string
	spans [][2]int // [start, end) columns of each rendered item
}

func newPalette(items []string) *palette {
	p := &palette{items: items}
	p.layout()
	return p
}

func (p *palette) label(i int) string {
	return fmt.Sprintf("%d %s", i+1, p.items[i])
}

func (p *palette) layout() {
	p.spans = make([][2]int, len(p.items))
	col := 0
	for i := range p.items {
		w := lipgloss.Width(paletteItemStyle.Render(p.label(i)))
		p.spans[i] = [2]int{col, col + w}
		col += w
	}
}

// itemAt returns the item rendered at column col.
func (p *palette) itemAt(col int) (string, bool) {
	for i, s := range p.spans {
		if col >= s[0] && col < s[1] {
			return p.items[i], true
		}
	}
	return "", false
}

// byKey maps a digit key to its item.
func (p *palette) byKey(k string) (string, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return "", false
	}
	i := int(k[0] - '1')
	if i >= len(p.items) {
		return "", false
	}
	return p.items[i], true
}

func (p *palette) view(armed string) string {
	var b strings.Builder
	for i, item := range p.items {
		if item == armed {
			b.WriteString(armedItemStyle.Render(p.label(i)))
		} else {
			b.WriteString(paletteItemStyle.Render(p.label(i)))
		}
	}
	return b.String()
}
