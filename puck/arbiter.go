package puck

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/skater"
)

// PickupResult is the outcome of a TryPickup call (spec 4.3).
type PickupResult int

const (
	Acquired PickupResult = iota
	DeniedCooldown
	DeniedAlreadyOwned
	DeniedLockedPhase
	DeniedRoleRestrictedNone
)

func (r PickupResult) String() string {
	switch r {
	case Acquired:
		return "acquired"
	case DeniedCooldown:
		return "cooldown"
	case DeniedAlreadyOwned:
		return "already_owned"
	case DeniedLockedPhase:
		return "locked_phase"
	case DeniedRoleRestrictedNone:
		return "role_restricted_none"
	default:
		return "unknown"
	}
}

// TryPickup attempts to give s possession of p (spec 4.3, I1-I3). A
// locked match phase or an outstanding cooldown denies it without any
// side effect, per the error taxonomy's contract-violation handling
// (spec 7: "Denied return value, no side effect").
func TryPickup(p *Puck, s *skater.Skater, cfg config.Config, now int64, locked bool, sink events.Sink) PickupResult {
	if locked {
		return DeniedLockedPhase
	}
	if p.ControllerID != "" {
		if p.ControllerID == s.ID {
			return Acquired
		}
		return DeniedAlreadyOwned
	}
	if now < p.ArmedAt {
		return DeniedCooldown
	}
	if last, ok := p.LastReleaseTS[s.ID]; ok && now-last < cfg.PickupCooldown.Milliseconds() {
		return DeniedCooldown
	}

	if shooterID, ok := detectSave(p, s, cfg); ok {
		sink.Emit(events.SaveRecorded{GoalieID: s.ID, ShooterID: shooterID})
	}

	p.ControllerID = s.ID
	p.IsControlled = true
	p.AcquiredTS = now
	p.PickupHeightY = p.Position.Y
	p.recordTouch(s.ID, s.Team, now, cfg.Match.TouchHistoryMax)

	if isGoalie(s) {
		p.GoalieHolding = true
		p.GoalieHoldingTS = now
		p.GoalieWarningEmitted = false
	} else {
		p.GoalieHolding = false
		p.GoalieHoldingTS = 0
	}
	return Acquired
}

func isGoalie(s *skater.Skater) bool {
	return s.Role == 0 // rink.Goalie == 0; avoids importing rink solely for this comparison
}

// Release always succeeds if held (spec 4.3): it clears the controller
// slot, records the releaser's own 1000ms cooldown (I3), and arms the
// puck against an immediate re-pickup by anyone for the steal/dislodge
// arming delay when kind warrants it.
func Release(p *Puck, s *skater.Skater, kind events.ReleaseKind, cfg config.Config, now int64) {
	if p.ControllerID != s.ID {
		return
	}
	p.ControllerID = ""
	p.IsControlled = false
	p.GoalieHolding = false
	p.GoalieHoldingTS = 0
	p.GoalieWarningEmitted = false
	p.LastReleaseTS[s.ID] = now

	if kind == events.ReleaseDislodge {
		p.ArmedAt = now + cfg.Stick.ArmingDelay.Milliseconds()
	}
}

// ImpulseFor computes the deterministic linear/torque impulse for a
// release (spec 4.3). rnd supplies the small torque jitter on a pass;
// callers use a per-match rand.Rand so replays stay reproducible.
func ImpulseFor(kind events.ReleaseKind, power01 float64, cameraYaw float64, mass float64, cfg config.PuckForceConfig, rnd *rand.Rand) (linear, torque r3.Vector) {
	power01 = clamp01(power01)
	dirX, dirZ := -math.Sin(cameraYaw), -math.Cos(cameraYaw)

	switch kind {
	case events.ReleasePass, events.ReleaseAutoPass:
		mag := (cfg.MinPass + power01*(cfg.MaxPass-cfg.MinPass)) * mass
		linear = r3.Vector{X: dirX * mag, Y: power01 * cfg.SaucerLift * mag, Z: dirZ * mag}
		jitter := (rnd.Float64()*2 - 1) * 0.05 * mag
		torque = r3.Vector{Y: jitter}
	default: // shot, dislodge treated as a shot-strength release of whatever it carried
		shotForce := cfg.MinShot + power01*(cfg.MaxShot-cfg.MinShot)
		mag := shotForce * mass
		lift := power01 * power01 * cfg.ShotLift * mag
		linear = r3.Vector{X: dirX * mag, Y: lift, Z: dirZ * mag}
		torque = r3.Vector{Y: power01 * shotForce * 0.2}
	}
	return linear, torque
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

// lateralOffset returns the sideways attach offset while strafing
// (spec 6: "lateral offset when strafing: ±0.4").
func lateralOffset(in adapter.Intent, cfg float64) float64 {
	switch {
	case in.Right && !in.Left:
		return cfg
	case in.Left && !in.Right:
		return -cfg
	default:
		return 0
	}
}

// AttachFollow drives the held puck's position/velocity to track its
// controller each tick (spec 4.3). Y is clamped to the pickup-time
// height; smoothing factor is fixed at 0.5 per tick per spec text.
func AttachFollow(p *Puck, s *skater.Skater, in adapter.Intent, cfg config.Config) {
	if p.ControllerID != s.ID {
		return
	}
	forward := r3.Vector{X: -math.Sin(s.FacingYaw), Z: -math.Cos(s.FacingYaw)}
	right := r3.Vector{X: math.Cos(s.FacingYaw), Z: -math.Sin(s.FacingYaw)}

	target := s.Position.
		Add(forward.Mul(cfg.PuckOffset)).
		Add(right.Mul(lateralOffset(in, cfg.LateralOffset)))
	target.Y = p.PickupHeightY

	p.Position = p.Position.Add(target.Sub(p.Position).Mul(0.5))
	p.Velocity = s.Velocity
	p.Velocity.Y = 0
}

// TryStickCheck resolves one steal attempt (spec 4.3, scenario 3). A
// goalie can never be stick-checked off the puck. A miss halves the
// defender's cooldown (spec: "otherwise record miss and halve
// cooldown"); a hit releases the holder as a dislodge, arms a short
// delay before anyone may attach, and marks the defender as the
// pending controller so possession transfers to them specifically once
// that delay elapses (CompleteArmedSteal), rather than to whoever
// happens to be within proximity pickup range.
func TryStickCheck(p *Puck, defender, holder *skater.Skater, cfg config.Config, now int64) bool {
	if p.ControllerID != holder.ID || isGoalie(holder) {
		return false
	}
	forward := r3.Vector{X: -math.Sin(defender.FacingYaw), Z: -math.Cos(defender.FacingYaw)}
	stickTip := defender.Position.Add(forward.Mul(cfg.Stick.TipOffset))
	dist := stickTip.Sub(p.Position).Norm()

	if dist > cfg.Stick.Radius {
		// A miss halves the effective cooldown: the defender may try
		// again after Cooldown/2 instead of the full Cooldown.
		defender.Movement.LastStickCheckTS = now - cfg.Stick.Cooldown.Milliseconds()/2
		return false
	}

	Release(p, holder, events.ReleaseDislodge, cfg, now)
	p.ArmedAt = now + cfg.Stick.ArmingDelay.Milliseconds()
	p.PendingControllerID = defender.ID
	return true
}

// CompleteArmedSteal gives the defender recorded by a prior successful
// TryStickCheck actual possession once the arming delay has elapsed
// (spec 4.3: "transfer possession to the defender after a 100ms arming
// delay"). Unlike TryPickup it does not gate on proximity: the steal
// already proved stick-tip distance at attempt time.
func CompleteArmedSteal(p *Puck, defender *skater.Skater, cfg config.Config, now int64) bool {
	if p.PendingControllerID != defender.ID || p.ControllerID != "" || now < p.ArmedAt {
		return false
	}
	p.PendingControllerID = ""
	p.ControllerID = defender.ID
	p.IsControlled = true
	p.AcquiredTS = now
	p.PickupHeightY = p.Position.Y
	p.recordTouch(defender.ID, defender.Team, now, cfg.Match.TouchHistoryMax)

	if isGoalie(defender) {
		p.GoalieHolding = true
		p.GoalieHoldingTS = now
	}
	return true
}

// WarnGoalieIfApproachingLimit fires a one-shot warning once the
// goalie's hold time crosses Goalie.WarningTime, ahead of the forced
// auto-pass at Goalie.PuckControlLimit (spec 8 scenario 2: "at t=4000ms
// a warning UI event fires").
func WarnGoalieIfApproachingLimit(p *Puck, goalie *skater.Skater, cfg config.Config, now int64, sink events.Sink) {
	if p.ControllerID != goalie.ID || !p.GoalieHolding || p.GoalieWarningEmitted {
		return
	}
	held := now - p.GoalieHoldingTS
	if held < cfg.Goalie.WarningTime.Milliseconds() {
		return
	}
	p.GoalieWarningEmitted = true
	sink.Emit(events.GoaliePassCountdownWarning{
		GoalieID:    goalie.ID,
		RemainingMS: cfg.Goalie.PuckControlLimit.Milliseconds() - held,
	})
}

// AutoPassIfExpired fires the goalie's forced release once holding time
// reaches the configured limit (spec 4.3, I6, P3).
func AutoPassIfExpired(p *Puck, goalie *skater.Skater, cfg config.Config, now int64, sink events.Sink) bool {
	if p.ControllerID != goalie.ID || !p.GoalieHolding {
		return false
	}
	if now-p.GoalieHoldingTS < cfg.Goalie.PuckControlLimit.Milliseconds() {
		return false
	}
	Release(p, goalie, events.ReleaseAutoPass, cfg, now)
	sink.Emit(events.PuckReleaseRequested{
		SkaterID:  goalie.ID,
		Kind:      events.ReleaseAutoPass,
		CameraYaw: goalie.FacingYaw,
	})
	return true
}

// detectSave reports whether this pickup is a save: a goalie picks up a
// puck whose horizontal speed is at least Goalie.SaveVelocityThreshold
// (spec 9 open question (b): the threshold is exposed as configuration,
// not a hard-coded constant). Only the speed is checked; the puck's
// direction relative to the goalie's own goal is not. The shooter is the
// first opposing-team touch found in the touch history.
func detectSave(p *Puck, s *skater.Skater, cfg config.Config) (shooterID string, ok bool) {
	if !isGoalie(s) {
		return "", false
	}
	incoming := p.Velocity
	incoming.Y = 0
	if incoming.Norm() < cfg.Goalie.SaveVelocityThreshold {
		return "", false
	}
	for _, t := range p.TouchHistory {
		if t.Team != s.Team {
			return t.PlayerID, true
		}
	}
	return "", false
}
