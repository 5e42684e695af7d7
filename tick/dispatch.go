package tick

import (
	"github.com/oklog/ulid/v2"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/events"
)

// dispatch is tick stage (f): drain the collector and hand every
// buffered event to the outbound adapters in the deterministic order
// spec 4.5 requires — goal > boundary > possession-change >
// intent-derived > animation. This package emits no animation events of
// its own (skater.Tick's Animation selection is read straight off
// Movement.Stick/MoveState by the transport layer), so that bucket is
// always empty here; the ordering is kept anyway so a future animation
// event slots in without reshuffling the others.
func (c *Core) dispatch(now int64) {
	var goal, boundary, possession, intentDerived []events.Event
	for _, ev := range c.collector.Drain() {
		switch ev.(type) {
		case events.GoalScored:
			goal = append(goal, ev)
		case events.BoundaryViolation:
			boundary = append(boundary, ev)
		case events.PuckPossessionChanged:
			possession = append(possession, ev)
		default:
			intentDerived = append(intentDerived, ev)
		}
	}

	for _, bucket := range [][]events.Event{goal, boundary, possession, intentDerived} {
		for _, ev := range bucket {
			c.publish(ev, now)
		}
	}
}

func (c *Core) publish(ev events.Event, now int64) {
	switch e := ev.(type) {
	case events.GoalScored:
		c.UI.Publish(adapter.UIEvent{
			Kind:            adapter.GoalScored,
			Team:            e.ScoringTeam,
			OwnGoal:         e.OwnGoal,
			Scorer:          e.ScorerID,
			PrimaryAssist:   e.PrimaryAssistID,
			SecondaryAssist: e.SecondaryAssist,
		})
		c.AudioOut.Play(adapter.SoundGoalHorn)
		c.recordGoalStats(e, now)

	case events.BoundaryViolation:
		c.UI.Publish(adapter.UIEvent{Kind: adapter.Notification, Text: "puck out of bounds, resetting"})
		c.AudioOut.Play(adapter.SoundRefereeWhistle)

	case events.PuckPossessionChanged:
		c.UI.Publish(adapter.UIEvent{Kind: adapter.PuckControl, Available: e.SkaterID != ""})

	case events.MatchPhaseChanged:
		c.onPhaseChanged(e)

	case events.CountdownUpdate:
		kind := adapter.CountdownUpdate
		if e.N == 0 {
			kind = adapter.CountdownGo
		}
		c.UI.Publish(adapter.UIEvent{Kind: kind, N: e.N, Subtitle: e.Subtitle})
		c.AudioOut.Play(adapter.SoundCountdown)

	case events.SaveRecorded:
		c.UI.Publish(adapter.UIEvent{Kind: adapter.Notification, Text: "save by " + e.GoalieID})
		c.recordStat(adapter.StatSave, e.GoalieID, now)

	case events.BodyCheckAttempted:
		c.AudioOut.Play(adapter.SoundSwingStick)

	case events.GoaliePassCountdownWarning:
		c.UI.Publish(adapter.UIEvent{Kind: adapter.GoaliePassCountdown, RemainingMS: e.RemainingMS})

	case events.ShootoutShotStart:
		c.UI.Publish(adapter.UIEvent{Kind: adapter.ShootoutShotStart, Round: e.Round, Shooter: e.Shooter})

	case events.ShootoutShotEnd:
		c.UI.Publish(adapter.UIEvent{Kind: adapter.ShootoutShotEnd, Round: e.Round, Scored: e.Scored})

	case events.ShootoutRoundResult:
		c.UI.Publish(adapter.UIEvent{
			Kind:    adapter.ShootoutScoreboard,
			Round:   e.Round,
			Shooter: e.Shooter,
			Goalie:  e.Goalie,
			Scored:  e.Scored,
		})

	case events.CleanupSignal:
		c.Roster.Remove(e.SkaterID)
	}
}

func (c *Core) onPhaseChanged(e events.MatchPhaseChanged) {
	switch e.To {
	case "PERIOD_END":
		c.UI.Publish(adapter.UIEvent{Kind: adapter.PeriodEnd})
	case "GAME_OVER", "SHOOTOUT_GAME_OVER":
		c.UI.Publish(adapter.UIEvent{Kind: adapter.MatchOver})
	}
}

func (c *Core) recordGoalStats(e events.GoalScored, now int64) {
	if e.ScorerID != "" {
		c.recordStat(adapter.StatGoal, e.ScorerID, now)
	}
	if e.PrimaryAssistID != "" {
		c.recordStat(adapter.StatAssist, e.PrimaryAssistID, now)
	}
	if e.SecondaryAssist != "" {
		c.recordStat(adapter.StatAssist, e.SecondaryAssist, now)
	}
}

func (c *Core) recordStat(kind adapter.StatKind, playerID string, now int64) {
	if c.Persistence == nil || playerID == "" {
		return
	}
	c.Persistence.RecordStatEvent(adapter.StatEvent{
		ID:       ulid.Make().String(),
		Kind:     kind,
		PlayerID: playerID,
		TS:       now,
	})
	c.UI.Publish(adapter.UIEvent{Kind: adapter.StatsUpdate, StatKind: kind, StatPlayerID: playerID})
}
