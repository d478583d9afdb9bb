package attack

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// Sequencer owns the hop queue of the current attack run. It is driven from
// the editor's event goroutine and is not safe for concurrent use.
type Sequencer struct {
	cfg       Config
	queue     []Hop
	attacking bool
	run       uuid.UUID
	newRunID  func() uuid.UUID
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithRunIDs overrides run id generation (tests use fixed ids).
func WithRunIDs(fn func() uuid.UUID) Option {
	return func(s *Sequencer) { s.newRunID = fn }
}

// NewSequencer creates an idle sequencer.
func NewSequencer(cfg Config, opts ...Option) *Sequencer {
	s := &Sequencer{
		cfg:      cfg.withDefaults(),
		newRunID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Sequencer) Config() Config {
	return s.cfg
}

// Start begins a new run: pending hops of the previous run are dropped, the
// attacking flag is set, the attacker (if any) is colored right away, and the
// walk is queued. It returns the plan and how many old hops were dropped.
func (s *Sequencer) Start(g *diagram.Graph, now time.Time) (Plan, int) {
	dropped := len(s.queue)
	s.queue = nil

	s.attacking = true
	s.run = s.newRunID()

	plan := PlanWalk(g, s.cfg, s.run, now)
	if plan.Outcome == OutcomeNoAttacker {
		return plan, dropped
	}

	if attacker, err := g.Node(plan.Attacker); err == nil {
		attacker.Color = s.cfg.Color
	}
	s.queue = append(s.queue, plan.Hops...)
	return plan, dropped
}

// Due removes and returns, in firing order, every queued hop whose FireAt is
// not after now.
func (s *Sequencer) Due(now time.Time) []Hop {
	n := 0
	for n < len(s.queue) && !s.queue[n].FireAt.After(now) {
		n++
	}
	if n == 0 {
		return nil
	}
	due := make([]Hop, n)
	copy(due, s.queue[:n])
	s.queue = s.queue[n:]
	return due
}

// NextFireAt returns when the next queued hop is due.
func (s *Sequencer) NextFireAt() (time.Time, bool) {
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].FireAt, true
}

// Pending returns the number of queued hops.
func (s *Sequencer) Pending() int {
	return len(s.queue)
}

// Attacking reports whether an attack has been started and not canceled.
// Finishing the walk does not clear it.
func (s *Sequencer) Attacking() bool {
	return s.attacking
}

// Run returns the id of the current run (uuid.Nil before the first Start).
func (s *Sequencer) Run() uuid.UUID {
	return s.run
}

// Cancel drops all queued hops and clears the attacking flag. Colors already
// applied stay. It returns the number of hops dropped.
func (s *Sequencer) Cancel() int {
	dropped := len(s.queue)
	s.queue = nil
	s.attacking = false
	return dropped
}

// DropPending discards queued hops but leaves the attacking flag alone.
func (s *Sequencer) DropPending() int {
	dropped := len(s.queue)
	s.queue = nil
	return dropped
}

// Apply colors the hop's connection and end node.
func Apply(g *diagram.Graph, hop Hop) error {
	conn, err := g.Connection(hop.Connection)
	if err != nil {
		return fmt.Errorf("apply hop %d: %w", hop.Seq, err)
	}
	node, err := g.Node(hop.Target)
	if err != nil {
		return fmt.Errorf("apply hop %d: %w", hop.Seq, err)
	}
	conn.Color = hop.Color
	node.Color = hop.Color
	return nil
}
