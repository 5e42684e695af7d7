package tick

import (
	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/skater"
)

// resolveBodyChecks is the half of BODY_CHECK_LUNGE that skater.Tick
// cannot do itself (see stepBodyCheckLunge's doc comment): it checks
// every currently-lunging attacker against its locked target and, on
// first overlap, stuns the victim, knocks it back, dislodges the puck
// only if the victim was its controller, and records a hit stat only in
// that same case (spec 8 scenario 6: "no hit stat recorded" when the
// victim wasn't holding the puck).
func (c *Core) resolveBodyChecks(now int64) {
	c.Roster.ForEach(func(attacker *skater.Skater) {
		if attacker.Movement.Current != skater.BodyCheckLunge || attacker.Movement.BodyCheckResolved {
			return
		}
		target, ok := c.Roster.Get(attacker.Movement.BodyCheckTargetID)
		if !ok {
			attacker.Movement.BodyCheckResolved = true
			return
		}
		delta := target.Position.Sub(attacker.Position)
		delta.Y = 0
		if delta.Norm() > c.Config.Body.ContactRadius {
			return
		}

		wasController := c.Puck.ControllerID == target.ID

		target.Movement.Current = skater.Stunned
		target.StunnedUntilTS = now + c.Config.StunDuration.Milliseconds()

		knockback := delta
		if knockback.Norm() > 1e-9 {
			knockback = knockback.Normalize()
		} else {
			knockback = r3.Vector{X: 0, Z: 1}
		}
		// Spec 4.2: knockback is scaled by the attacker's pre-lunge speed,
		// not a flat constant. DashForce is the knockback magnitude a
		// full-speed (RunSpeed) lunge delivers; a slower lunge hits softer.
		magnitude := attacker.Movement.BodyCheckEntrySpeed * (c.Config.Body.DashForce / c.Config.Ice.RunSpeed)
		target.Velocity = knockback.Mul(magnitude)

		if wasController {
			puck.Release(c.Puck, target, events.ReleaseDislodge, c.Config, now)
			c.collector.Emit(events.PuckPossessionChanged{SkaterID: "", Team: ""})
			c.recordStat(adapter.StatHit, attacker.ID, now)
		}

		c.collector.Emit(events.BodyCheckAttempted{AttackerID: attacker.ID, TargetID: target.ID})
		c.AudioOut.Play(adapter.SoundBodyCheck)

		attacker.Movement.BodyCheckResolved = true
	})
}
