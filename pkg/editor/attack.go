package editor

import (
	"context"
	"time"

	"github.com/dd0wney/attackgraph/pkg/attack"
	"github.com/dd0wney/attackgraph/pkg/events"
	"github.com/dd0wney/attackgraph/pkg/logging"
)

// StartAttack colors the attacker and queues the highlight hops. Hops fire
// from Tick or Drain. Without an attacker node nothing is drawn or queued.
func (e *Editor) StartAttack() attack.Plan {
	plan, dropped := e.seq.Start(e.graph, e.clock.Now())
	e.state.Attacking = true
	e.lastOutcome = plan.Outcome
	e.metrics.RecordHopsCanceled(dropped)

	log := e.logger.With(logging.RunID(plan.Run.String()))
	if plan.Outcome == attack.OutcomeNoAttacker {
		log.Info("attack requested without an attacker node")
		e.metrics.RecordAttack(string(plan.Outcome), 0)
		e.publish(events.Event{Kind: events.AttackStarted, RunID: plan.Run.String(), Outcome: string(plan.Outcome)})
		return plan
	}

	e.metrics.RecordAttack(string(plan.Outcome), len(plan.Hops))
	fields := []logging.Field{
		logging.NodeID(uint64(plan.Attacker)),
		logging.Count(len(plan.Hops)),
		logging.String("outcome", string(plan.Outcome)),
	}
	switch plan.Outcome {
	case attack.OutcomeCycle, attack.OutcomeHopLimit:
		log.Warn("attack path cut short", fields...)
	default:
		log.Info("attack started", fields...)
	}

	e.publish(events.Event{
		Kind:    events.AttackStarted,
		RunID:   plan.Run.String(),
		NodeID:  uint64(plan.Attacker),
		Hop:     len(plan.Hops),
		Outcome: string(plan.Outcome),
	})
	if len(plan.Hops) == 0 {
		e.publish(events.Event{Kind: events.AttackFinished, RunID: plan.Run.String(), Outcome: string(plan.Outcome)})
	}

	e.render()
	return plan
}

// Tick fires every hop due at now, redrawing after each. It returns the
// number of hops applied.
func (e *Editor) Tick(now time.Time) int {
	due := e.seq.Due(now)
	fired := 0
	for _, hop := range due {
		if err := attack.Apply(e.graph, hop); err != nil {
			e.logger.Warn("hop skipped", logging.Hop(hop.Seq), logging.Error(err))
			e.metrics.RecordHopsCanceled(1)
			continue
		}
		fired++
		e.metrics.RecordHopFired()
		e.logger.Debug("hop fired",
			logging.RunID(hop.Run.String()),
			logging.Hop(hop.Seq),
			logging.ConnectionID(uint64(hop.Connection)),
			logging.NodeID(uint64(hop.Target)),
		)
		e.publish(events.Event{
			Kind:         events.HopFired,
			RunID:        hop.Run.String(),
			Hop:          hop.Seq,
			ConnectionID: uint64(hop.Connection),
			NodeID:       uint64(hop.Target),
		})
		e.render()
	}

	if len(due) > 0 && e.seq.Pending() == 0 {
		e.publish(events.Event{Kind: events.AttackFinished, RunID: due[len(due)-1].Run.String(), Outcome: string(e.lastOutcome)})
	}
	return fired
}

// CancelAttack drops queued hops and clears the attacking flag. Colors that
// were already applied stay.
func (e *Editor) CancelAttack() int {
	dropped := e.seq.Cancel()
	e.state.Attacking = false
	e.metrics.RecordHopsCanceled(dropped)
	if dropped > 0 {
		e.logger.Info("attack canceled", logging.Count(dropped))
	}
	e.publish(events.Event{Kind: events.AttackCanceled, RunID: e.seq.Run().String(), Hop: dropped})
	e.render()
	return dropped
}

// Drain blocks, firing hops as they come due, until the queue is empty or
// ctx is done.
func (e *Editor) Drain(ctx context.Context) error {
	for {
		next, ok := e.seq.NextFireAt()
		if !ok {
			return nil
		}
		if wait := next.Sub(e.clock.Now()); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-e.clock.After(wait):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		e.Tick(e.clock.Now())
	}
}
