// Package tui hosts the editor in a terminal. The palette row above the canvas
// is the drag source, the canvas is drawn with character cells, and hop
// timers are bubbletea ticks that call back into the editor.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/attackgraph/pkg/attack"
	"github.com/dd0wney/attackgraph/pkg/canvas/raster"
	"github.com/dd0wney/attackgraph/pkg/canvas/term"
	"github.com/dd0wney/attackgraph/pkg/diagram"
	"github.com/dd0wney/attackgraph/pkg/editor"
	"github.com/dd0wney/attackgraph/pkg/events"
	"github.com/dd0wney/attackgraph/pkg/logging"
)

// Rows above the canvas: title, palette.
const headerRows = 2

// Options configures the terminal host.
type Options struct {
	Palette     []string
	SnapshotDir string
	Bus         *events.Bus
	Logger      logging.Logger
}

type hopMsg struct {
	gen int
	at  time.Time
}

type eventMsg struct {
	ev events.Event
}

type snapshotMsg struct {
	path string
	err  error
}

// Model is the bubbletea model wrapping an Editor.
type Model struct {
	ed      *editor.Editor
	grid    *term.Grid
	palette *palette
	keys    keyMap
	help    help.Model
	opts    Options
	logger  logging.Logger
	subs    []*events.Subscription

	// armed is the palette payload that the next canvas press or release
	// drops. fromPress is set while the mouse button that picked it from
	// the palette is still held.
	armed     string
	fromPress bool

	hopGen int
	width  int
	height int
	status string
	alert  bool
}

// New creates a model. grid must be the surface ed draws on.
func New(ed *editor.Editor, grid *term.Grid, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	m := &Model{
		ed:      ed,
		grid:    grid,
		palette: newPalette(opts.Palette),
		keys:    keys,
		help:    help.New(),
		opts:    opts,
		logger:  opts.Logger.With(logging.Component("tui")),
		status:  "ready",
	}
	if opts.Bus != nil {
		for _, topic := range []string{events.TopicScene, events.TopicAttack} {
			sub, err := opts.Bus.Subscribe(context.Background(), topic)
			if err != nil {
				m.logger.Warn("event subscription failed", logging.Error(err))
				continue
			}
			m.subs = append(m.subs, sub)
		}
	}
	return m
}

// Run starts the terminal program and blocks until the user quits.
func Run(ctx context.Context, m *Model) error {
	defer m.close()
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func (m *Model) close() {
	for _, sub := range m.subs {
		sub.Unsubscribe()
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.subs))
	for _, sub := range m.subs {
		cmds = append(cmds, waitForEvent(sub))
	}
	return tea.Batch(cmds...)
}

func waitForEvent(sub *events.Subscription) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub.Channel()
		if !ok {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

// scheduleHop arms a tick for the next queued hop. Older ticks still in
// flight are ignored when they arrive.
func (m *Model) scheduleHop() tea.Cmd {
	m.hopGen++
	next, ok := m.ed.Sequencer().NextFireAt()
	if !ok {
		return nil
	}
	gen := m.hopGen
	return tea.Tick(time.Until(next), func(t time.Time) tea.Msg {
		return hopMsg{gen: gen, at: t}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case hopMsg:
		if msg.gen != m.hopGen {
			return m, nil
		}
		m.ed.Tick(msg.at)
		return m, m.scheduleHop()

	case eventMsg:
		m.describe(msg.ev)
		for _, sub := range m.subs {
			if sub.Topic() == msg.ev.Kind.Topic() {
				return m, waitForEvent(sub)
			}
		}

	case snapshotMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("snapshot failed: %v", msg.err), true)
		} else {
			m.setStatus("saved "+msg.path, false)
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Attack):
		plan := m.ed.StartAttack()
		if plan.Outcome == attack.OutcomeNoAttacker {
			m.setStatus("no attacker on the canvas", true)
		}
		return m.scheduleHop()

	case key.Matches(msg, m.keys.Cancel):
		m.ed.CancelAttack()
		m.hopGen++

	case key.Matches(msg, m.keys.Edge):
		m.armed = ""
		m.ed.BeginEdge()
		m.setStatus("click the start node", false)

	case key.Matches(msg, m.keys.Snapshot):
		return m.saveSnapshot()

	case key.Matches(msg, m.keys.Palette):
		if item, ok := m.palette.byKey(msg.String()); ok {
			m.armed = item
			m.fromPress = false
			m.setStatus("click the canvas to place "+item, false)
		}

	case key.Matches(msg, m.keys.Disarm):
		m.armed = ""

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return nil
}

// resize fits the canvas between the header and the status and help rows.
func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	footer := 2
	if m.help.ShowAll {
		footer = 1 + len(m.keys.FullHelp()[0])
	}
	rows := m.height - headerRows - footer
	if rows < 1 {
		rows = 1
	}
	cw, ch := m.grid.CellSize()
	m.ed.Resize(float64(m.width)*cw, float64(rows)*ch)
}

// canvasPoint maps a terminal cell to canvas coordinates.
func (m *Model) canvasPoint(x, y int) (diagram.Point, bool) {
	row := y - headerRows
	cols, rows := m.grid.Dimensions()
	if row < 0 || row >= rows || x < 0 || x >= cols {
		return diagram.Point{}, false
	}
	return m.grid.CellCenter(x, row), true
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p, onCanvas := m.canvasPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if msg.Y == headerRows-1 {
			if item, ok := m.palette.itemAt(msg.X); ok {
				m.armed = item
				m.fromPress = true
			}
			return
		}
		if !onCanvas {
			return
		}
		if m.armed != "" {
			m.drop(p)
			return
		}
		m.ed.PointerDown(p)

	case tea.MouseActionMotion:
		if onCanvas {
			m.ed.PointerMove(p)
		}

	case tea.MouseActionRelease:
		if m.fromPress {
			m.fromPress = false
			if onCanvas && m.armed != "" {
				m.drop(p)
				return
			}
		}
		m.ed.PointerUp()
	}
}

func (m *Model) drop(p diagram.Point) {
	payload := m.armed
	m.armed = ""
	m.fromPress = false
	m.ed.Drop(payload, p)
}

func (m *Model) saveSnapshot() tea.Cmd {
	w, h := m.ed.Surface().Size()
	surface := raster.New(int(w), int(h))
	m.ed.RenderTo(surface)
	path := filepath.Join(m.opts.SnapshotDir, fmt.Sprintf("attackgraph-%s.png", time.Now().Format("20060102-150405")))

	return func() tea.Msg {
		return snapshotMsg{path: path, err: surface.SavePNG(path)}
	}
}

func (m *Model) describe(ev events.Event) {
	switch ev.Kind {
	case events.NodeAdded:
		m.setStatus(fmt.Sprintf("placed %s #%d", ev.NodeType, ev.NodeID), false)
	case events.EdgeGestureStarted:
		if ev.NodeID == 0 {
			m.setStatus("click the start node", false)
		} else {
			m.setStatus(fmt.Sprintf("edge from #%d: click the end node", ev.NodeID), false)
		}
	case events.ConnectionAdded:
		m.setStatus(fmt.Sprintf("connected to #%d", ev.NodeID), false)
	case events.ConnectionRejected:
		m.setStatus("edge rejected: "+strings.ReplaceAll(ev.Detail, "_", " "), true)
	case events.AttackStarted:
		m.setStatus(fmt.Sprintf("attack %s: %d hops (%s)", shortRun(ev.RunID), ev.Hop, ev.Outcome), false)
	case events.HopFired:
		m.setStatus(fmt.Sprintf("hop %d reached #%d", ev.Hop+1, ev.NodeID), true)
	case events.AttackFinished:
		m.setStatus("attack finished: "+strings.ReplaceAll(ev.Outcome, "_", " "), true)
	case events.AttackCanceled:
		m.setStatus("attack canceled", false)
	}
}

func shortRun(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m *Model) setStatus(s string, alert bool) {
	m.status = s
	m.alert = alert
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("attackgraph"))
	b.WriteByte('\n')
	b.WriteString(m.palette.view(m.armed))
	b.WriteByte('\n')
	b.WriteString(m.grid.String())
	b.WriteByte('\n')
	if m.alert {
		b.WriteString(alertStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
