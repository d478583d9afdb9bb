// Package events fans editor activity out to observers such as the terminal
// status line. Publishing never blocks the editor: a subscriber whose buffer
// is full misses the event.
package events

import (
	"time"
)

// Topics
const (
	TopicScene  = "scene"
	TopicAttack = "attack"
)

// Kind identifies what happened.
type Kind string

const (
	NodeAdded          Kind = "node_added"
	ConnectionAdded    Kind = "connection_added"
	ConnectionRejected Kind = "connection_rejected"
	EdgeGestureStarted Kind = "edge_gesture_started"
	AttackStarted      Kind = "attack_started"
	HopFired           Kind = "hop_fired"
	AttackFinished     Kind = "attack_finished"
	AttackCanceled     Kind = "attack_canceled"
)

// Event is a notification about a change the editor already applied.
type Event struct {
	Kind         Kind
	Time         time.Time
	NodeID       uint64
	ConnectionID uint64
	NodeType     string
	RunID        string
	Hop          int
	Outcome      string
	Detail       string
}

// Topic returns the topic an event kind is published on.
func (k Kind) Topic() string {
	switch k {
	case AttackStarted, HopFired, AttackFinished, AttackCanceled:
		return TopicAttack
	default:
		return TopicScene
	}
}
