package attack

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/attackgraph/pkg/diagram"
)

// PlanWalk builds the hop schedule for the current graph without changing
// it. Hop i fires at now + i*Interval. The cursor moves to a connection's end
// as soon as the hop is queued; the walk stops at a target node, a dead end,
// a revisited node (the hop closing the cycle is still queued), or MaxHops.
func PlanWalk(g *diagram.Graph, cfg Config, run uuid.UUID, now time.Time) Plan {
	cfg = cfg.withDefaults()
	plan := Plan{Run: run}

	attacker, ok := g.FirstOfType(cfg.AttackerType)
	if !ok {
		plan.Outcome = OutcomeNoAttacker
		return plan
	}
	plan.Attacker = attacker.ID

	visited := map[diagram.NodeID]bool{attacker.ID: true}
	current := attacker
	plan.Outcome = OutcomeReachedTarget

	for current.Type != cfg.TargetType {
		conn, ok := g.FirstOutgoing(current.ID)
		if !ok {
			plan.Outcome = OutcomeDeadEnd
			break
		}
		if len(plan.Hops) >= cfg.MaxHops {
			plan.Outcome = OutcomeHopLimit
			break
		}
		next, err := g.Node(conn.To)
		if err != nil {
			plan.Outcome = OutcomeDeadEnd
			break
		}

		delay := time.Duration(len(plan.Hops)) * cfg.Interval
		plan.Hops = append(plan.Hops, Hop{
			Run:        run,
			Seq:        len(plan.Hops),
			Connection: conn.ID,
			Target:     next.ID,
			Delay:      delay,
			FireAt:     now.Add(delay),
			Color:      cfg.Color,
		})

		if visited[next.ID] {
			plan.Outcome = OutcomeCycle
			break
		}
		visited[next.ID] = true
		current = next
	}

	return plan
}
