// Package attack plans and sequences the attack highlight animation.
//
// Starting an attack walks the graph from the attacker along first outgoing
// connections and queues one Hop per traversed connection, spaced by a fixed
// interval. The queue is plain data: the host decides when to call Due and
// applies the returned hops itself, so nothing fires behind its back and a
// run can be canceled at any time.
package attack

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// Outcome describes how the planning walk ended.
type Outcome string

const (
	// OutcomeReachedTarget: the walk arrived at a database node.
	OutcomeReachedTarget Outcome = "reached_target"
	// OutcomeDeadEnd: a node on the path has no outgoing connection.
	OutcomeDeadEnd Outcome = "dead_end"
	// OutcomeCycle: the walk came back to a node it already visited.
	OutcomeCycle Outcome = "cycle"
	// OutcomeHopLimit: MaxHops hops were queued without reaching a target.
	OutcomeHopLimit Outcome = "hop_limit"
	// OutcomeNoAttacker: there is no attacker node; nothing was scheduled.
	OutcomeNoAttacker Outcome = "no_attacker"
)

// Hop is one scheduled highlight: when it fires, Connection and its end node
// Target take Color.
type Hop struct {
	Run        uuid.UUID
	Seq        int
	Connection diagram.ConnectionID
	Target     diagram.NodeID
	Delay      time.Duration
	FireAt     time.Time
	Color      diagram.Color
}

// Plan is the result of starting an attack.
type Plan struct {
	Run      uuid.UUID
	Attacker diagram.NodeID
	Hops     []Hop
	Outcome  Outcome
}

// Config controls the walk.
type Config struct {
	Interval     time.Duration
	MaxHops      int
	AttackerType string
	TargetType   string
	Color        diagram.Color
}

// Defaults
const (
	DefaultInterval = 1000 * time.Millisecond
	DefaultMaxHops  = 64
)

// DefaultConfig returns the stock attack settings.
func DefaultConfig() Config {
	return Config{
		Interval:     DefaultInterval,
		MaxHops:      DefaultMaxHops,
		AttackerType: diagram.TypeAttacker,
		TargetType:   diagram.TypeDatabase,
		Color:        diagram.AlertColor,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.MaxHops <= 0 {
		c.MaxHops = d.MaxHops
	}
	if c.AttackerType == "" {
		c.AttackerType = d.AttackerType
	}
	if c.TargetType == "" {
		c.TargetType = d.TargetType
	}
	if c.Color == "" {
		c.Color = d.Color
	}
	return c
}
