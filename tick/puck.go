package tick

import (
	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/skater"
)

// applyPendingImpulses delivers every impulse a release queued last tick
// (spec 4.5 "release-then-impulse": the controller slot clears the
// instant a pass/shot fires, but the physics impulse only lands at the
// start of the following tick, after this tick's own releases have had
// a chance to resolve release-then-pickup first).
func (c *Core) applyPendingImpulses() {
	for _, pi := range c.pending {
		c.Engine.ApplyImpulse(pi.handle, pi.linear)
		c.Engine.ApplyTorqueImpulse(pi.handle, pi.torque)
	}
	c.pending = nil
}

// resolvePuck runs stage (d) of the tick (spec 4.5): it services the
// goalie's 5-second auto-pass, drains this tick's skater-emitted
// release/steal/body-check-attempt events, drives attach-follow for
// whoever still holds the puck afterward, and finally offers every
// puckless skater a collision-based try_pickup against a loose puck
// (spec 4.3 "try_pickup on collision signal").
func (c *Core) resolvePuck(now int64, in Intents) {
	if holder, ok := c.Roster.Get(c.Puck.ControllerID); ok {
		puck.WarnGoalieIfApproachingLimit(c.Puck, holder, c.Config, now, &c.collector)
		puck.AutoPassIfExpired(c.Puck, holder, c.Config, now, &c.collector)
	}

	locked := c.Match.Locked()
	midTick := c.collector.Drain()
	for _, ev := range midTick {
		switch e := ev.(type) {
		case events.PuckReleaseRequested:
			c.handleRelease(e, now)
		case events.StickCheckAttempted:
			c.handleStickCheck(e, now, locked)
		default:
			c.collector.Emit(ev)
		}
	}

	if c.Puck.ControllerID == "" && c.Puck.PendingControllerID != "" && !locked {
		if defender, ok := c.Roster.Get(c.Puck.PendingControllerID); ok {
			if puck.CompleteArmedSteal(c.Puck, defender, c.Config, now) {
				c.collector.Emit(events.PuckPossessionChanged{SkaterID: defender.ID, Team: defender.Team.String()})
				c.AudioOut.Play(adapter.SoundPuckAttach)
			}
		} else {
			c.Puck.PendingControllerID = ""
		}
	}

	if holder, ok := c.Roster.Get(c.Puck.ControllerID); ok {
		puck.AttachFollow(c.Puck, holder, in[holder.ID], c.Config)
		return
	}

	if locked {
		return
	}
	c.Roster.ForEach(func(s *skater.Skater) {
		if c.Puck.ControllerID != "" {
			return
		}
		if s.Position.Sub(c.Puck.Position).Norm() > c.Config.PuckPickupRadius {
			return
		}
		if puck.TryPickup(c.Puck, s, c.Config, now, locked, &c.collector) == puck.Acquired {
			c.collector.Emit(events.PuckPossessionChanged{SkaterID: s.ID, Team: s.Team.String()})
			c.AudioOut.Play(adapter.SoundPuckAttach)
		}
	})
}

func (c *Core) handleRelease(e events.PuckReleaseRequested, now int64) {
	s, ok := c.Roster.Get(e.SkaterID)
	if !ok {
		return
	}

	// puck.Release is idempotent: the goalie auto-pass path already
	// released the puck itself before emitting this event, while a
	// player-triggered pass/shot has not yet.
	power01 := 1.0
	if e.Kind == events.ReleaseAutoPass {
		power01 = c.Config.Goalie.AutoPassPower
	} else if e.ChargeMS > 0 {
		power01 = clamp01(float64(e.ChargeMS) / 1000)
	}

	puck.Release(c.Puck, s, e.Kind, c.Config, now)
	c.collector.Emit(events.PuckPossessionChanged{SkaterID: "", Team: ""})

	linear, torque := puck.ImpulseFor(e.Kind, power01, e.CameraYaw, c.Puck.Mass, c.Config.Puck, c.rnd)
	c.pending = append(c.pending, pendingImpulse{handle: c.Puck.Handle, linear: linear, torque: torque})

	switch e.Kind {
	case events.ReleaseShot:
		c.AudioOut.Play(adapter.SoundWristShot)
	default:
		c.AudioOut.Play(adapter.SoundPassPuck)
	}
}

func (c *Core) handleStickCheck(e events.StickCheckAttempted, now int64, locked bool) {
	if locked {
		return
	}
	defender, ok := c.Roster.Get(e.DefenderID)
	if !ok {
		return
	}
	holder, ok := c.Roster.Get(c.Puck.ControllerID)
	if !ok {
		c.AudioOut.Play(adapter.SoundStickCheckMiss)
		return
	}
	if puck.TryStickCheck(c.Puck, defender, holder, c.Config, now) {
		c.collector.Emit(events.PuckPossessionChanged{SkaterID: "", Team: ""})
		c.AudioOut.Play(adapter.SoundStickCheck)
		return
	}
	c.AudioOut.Play(adapter.SoundStickCheckMiss)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
