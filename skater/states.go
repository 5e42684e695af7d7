package skater

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/rink"
)

// Roster lets the controller resolve body-check targets and their live
// positions without the skater package depending on a registry type; the
// tick loop supplies the concrete implementation (spec 4.2 BODY_CHECK_LUNGE).
type Roster interface {
	// FindBodyCheckTarget returns the id of the nearest eligible opponent
	// (non-goalie, within cfg's angle/range cone ahead of attacker) if any.
	FindBodyCheckTarget(attacker *Skater, cfg config.BodyCheckConfig) (targetID string, ok bool)
	// PositionOf returns the live position of another roster member.
	PositionOf(id string) (r3.Vector, bool)
}

// Tick advances one skater one frame (spec 4.2 public contract). It is
// the only exported entry point into this package's state machine.
func Tick(s *Skater, eng adapter.Engine, cfg config.Config, in adapter.Intent, now int64, dt float64, locked, holdingPuck bool, roster Roster, sink events.Sink) {
	if !eng.EntitySpawned(s.Handle) {
		sink.Emit(events.CleanupSignal{SkaterID: s.ID})
		return
	}

	s.Position = eng.Position(s.Handle)
	velY := eng.LinearVelocity(s.Handle).Y

	refreshActivity(s, in, now)

	if locked {
		s.Velocity = r3.Vector{Y: velY}
		s.Movement.Current = Normal
		eng.SetVelocity(s.Handle, s.Velocity)
		s.Movement.PrevPrimary, s.Movement.PrevSecondary = in.Primary, in.Secondary
		return
	}

	if s.Movement.Current == Stunned {
		if now < s.StunnedUntilTS {
			s.Velocity = r3.Vector{Y: velY}
			eng.SetVelocity(s.Handle, s.Velocity)
			s.Movement.PrevPrimary, s.Movement.PrevSecondary = in.Primary, in.Secondary
			return
		}
		s.Movement.Current = Normal
	}

	switch s.Movement.Current {
	case HockeyStop:
		stepHockeyStop(s, cfg, in, now, dt)
	case GoalieSlide:
		stepGoalieSlide(s, cfg, in, now, dt)
	case Spin:
		stepSpin(s, cfg, now, dt)
	case Dash:
		stepDash(s, cfg, now)
	case BodyCheckLunge:
		stepBodyCheckLunge(s, cfg, now, roster, sink)
	default:
		stepNormal(s, cfg, in, now, dt, holdingPuck, roster, sink)
	}

	s.Velocity.Y = velY
	eng.SetVelocity(s.Handle, s.Velocity)
	eng.SetRotation(s.Handle, s.FacingYaw)

	s.Movement.Stick = SelectStickVisual(in, holdingPuck)
	s.Movement.PrevPrimary, s.Movement.PrevSecondary = in.Primary, in.Secondary
}

func refreshActivity(s *Skater, in adapter.Intent, now int64) {
	active := in.Forward || in.Back || in.Left || in.Right || in.Sprint || in.Jump || in.Rotate || in.Primary || in.Secondary
	if active || horizontalSpeed(s.Velocity) > 0.05 {
		s.ActivityTS = now
	}
}

func emitReleaseOrCheck(s *Skater, in adapter.Intent, holdingPuck bool, cfg config.Config, now int64, sink events.Sink) {
	primaryEdge := in.Primary && !s.Movement.PrevPrimary
	secondaryEdge := in.Secondary && !s.Movement.PrevSecondary

	if holdingPuck {
		if primaryEdge {
			sink.Emit(events.PuckReleaseRequested{SkaterID: s.ID, Kind: events.ReleaseShot, CameraYaw: in.CameraYaw})
		} else if secondaryEdge {
			sink.Emit(events.PuckReleaseRequested{SkaterID: s.ID, Kind: events.ReleasePass, CameraYaw: in.CameraYaw})
		}
		return
	}

	if primaryEdge && now-s.Movement.LastStickCheckTS >= cfg.Stick.Cooldown.Milliseconds() {
		s.Movement.LastStickCheckTS = now
		sink.Emit(events.StickCheckAttempted{DefenderID: s.ID, CameraYaw: in.CameraYaw})
	}
}

func stepNormal(s *Skater, cfg config.Config, in adapter.Intent, now int64, dt float64, holdingPuck bool, roster Roster, sink events.Sink) {
	applyIcePhysics(s, in, cfg.Ice, dt, now, cfg.Spin.BoostMultiplier)
	if now >= s.Movement.PreserveYawUntilTS {
		s.FacingYaw = in.CameraYaw
	}

	emitReleaseOrCheck(s, in, holdingPuck, cfg, now, sink)

	speed := horizontalSpeed(s.Velocity)
	dir := inputDirection(in)

	// I4: only DEF1/DEF2 may body-check, never targeting a goalie.
	if (s.Role == rink.Def1 || s.Role == rink.Def2) && !holdingPuck &&
		in.Secondary && !s.Movement.PrevSecondary &&
		now-s.Movement.LastBodyCheckTS >= cfg.Body.Cooldown.Milliseconds() {
		if targetID, ok := roster.FindBodyCheckTarget(s, cfg.Body); ok {
			enterBodyCheckLunge(s, now, targetID, speed)
			sink.Emit(events.BodyCheckAttempted{AttackerID: s.ID, TargetID: targetID})
			return
		}
	}

	// I4: only non-goalie may initiate hockey stop.
	if s.Role != rink.Goalie && in.Sprint && speed > cfg.Stop.MinSpeed &&
		now-s.Movement.LastStopTS >= cfg.Stop.Cooldown.Milliseconds() {
		if dir.Norm() > 1e-9 && speed > 1e-9 {
			velDir := r3.Vector{X: s.Velocity.X, Z: s.Velocity.Z}.Normalize()
			if velDir.Dot(dir) < 0.7 {
				enterHockeyStop(s, now, sideOf(velDir, dir))
				return
			}
		}
	}

	// I4: only GOALIE may initiate goalie-slide.
	if s.Role == rink.Goalie && in.Sprint && speed > cfg.Slide.MinSpeed &&
		now-s.Movement.LastSlideTS >= cfg.Slide.Cooldown.Milliseconds() {
		enterGoalieSlide(s, now, sideOf(r3.Vector{X: s.Velocity.X, Z: s.Velocity.Z}, dir))
		return
	}

	if holdingPuck && in.Rotate && in.Sprint && speed >= cfg.Spin.MinSpeed &&
		now-s.Movement.LastSpinTS >= cfg.Spin.Cooldown.Milliseconds() {
		enterSpin(s, now)
		return
	}
}

func sideOf(velDir, dir r3.Vector) float64 {
	cross := velDir.Cross(dir)
	if cross.Y < 0 {
		return -1
	}
	return 1
}

func easeOutQuad(p float64) float64 { return 1 - (1-p)*(1-p) }

func dashTriggered(in adapter.Intent) bool {
	return in.Forward || in.Back || in.Left || in.Right
}

// --- HOCKEY_STOP ---

func enterHockeyStop(s *Skater, now int64, side float64) {
	s.Movement.Current = HockeyStop
	s.Movement.SubStateStartTS = now
	s.Movement.LastStopTS = now
	s.Movement.StopSide = side
	s.Movement.EntryYaw = s.FacingYaw
}

func stepHockeyStop(s *Skater, cfg config.Config, in adapter.Intent, now int64, dt float64) {
	if dashTriggered(in) {
		enterDash(s, now, HockeyStop)
		return
	}

	elapsed := now - s.Movement.SubStateStartTS
	progress := clamp(float64(elapsed)/float64(cfg.Stop.Duration.Milliseconds()), 0, 1)
	tickScale := dt * cfg.Ice.ReferenceTickRate

	decay := math.Pow(cfg.Stop.Deceleration, tickScale)
	s.Velocity.X *= decay
	s.Velocity.Z *= decay

	eased := easeOutQuad(progress)
	offset := eased * cfg.Stop.MaxAngleDeg * math.Pi / 180 * s.Movement.StopSide
	s.FacingYaw = s.Movement.EntryYaw + offset
	if progress >= 1 {
		s.Movement.Current = Normal
		return
	}
	if progress >= 0.8 {
		_, right := cameraBasis(s.FacingYaw)
		lateral := right.Mul(s.Movement.StopSide * 0.05)
		s.Velocity.X += lateral.X
		s.Velocity.Z += lateral.Z
	}
}

// --- GOALIE_SLIDE ---

func enterGoalieSlide(s *Skater, now int64, side float64) {
	s.Movement.Current = GoalieSlide
	s.Movement.SubStateStartTS = now
	s.Movement.LastSlideTS = now
	s.Movement.StopSide = side
	s.Movement.EntryYaw = s.FacingYaw
}

func stepGoalieSlide(s *Skater, cfg config.Config, in adapter.Intent, now int64, dt float64) {
	if dashTriggered(in) {
		enterDash(s, now, GoalieSlide)
		return
	}

	elapsed := now - s.Movement.SubStateStartTS
	progress := clamp(float64(elapsed)/float64(cfg.Slide.Duration.Milliseconds()), 0, 1)
	tickScale := dt * cfg.Ice.ReferenceTickRate

	decay := math.Pow(cfg.Slide.Deceleration, tickScale)
	s.Velocity.X *= decay
	s.Velocity.Z *= decay

	eased := easeOutQuad(progress)
	s.FacingYaw = s.Movement.EntryYaw + eased*cfg.Slide.MaxAngleDeg*math.Pi/180*s.Movement.StopSide

	remaining := 1 - progress
	forward, _ := cameraBasis(s.FacingYaw)
	dashForce := forward.Mul(cfg.Slide.DashForce * remaining * tickScale)
	s.Velocity.X += dashForce.X
	s.Velocity.Z += dashForce.Z

	if progress >= 1 {
		s.Movement.Current = Normal
	}
}

// --- SPIN ---

func enterSpin(s *Skater, now int64) {
	s.Movement.Current = Spin
	s.Movement.SubStateStartTS = now
	s.Movement.LastSpinTS = now
	s.Movement.LastMoveDir = r3.Vector{X: s.Velocity.X, Z: s.Velocity.Z}
	if s.Movement.LastMoveDir.Norm() > 1e-9 {
		s.Movement.LastMoveDir = s.Movement.LastMoveDir.Normalize()
	}
}

func stepSpin(s *Skater, cfg config.Config, now int64, dt float64) {
	elapsed := now - s.Movement.SubStateStartTS
	progress := clamp(float64(elapsed)/float64(cfg.Spin.Duration.Milliseconds()), 0, 1)

	s.FacingYaw += 2 * math.Pi * (dt / cfg.Spin.Duration.Seconds())

	// Preserve initial momentum direction scaled by configured retention.
	speed := horizontalSpeed(s.Velocity) * cfg.Spin.MomentumPreservation
	if s.Movement.LastMoveDir.Norm() > 1e-9 {
		s.Velocity.X = s.Movement.LastMoveDir.X * speed
		s.Velocity.Z = s.Movement.LastMoveDir.Z * speed
	}

	if progress >= 1 {
		s.Movement.Current = Normal
		s.Movement.SpinBoostUntilTS = now + cfg.Spin.BoostDuration.Milliseconds()
		forward, _ := cameraBasis(s.FacingYaw)
		boosted := forward.Mul(math.Min(horizontalSpeed(s.Velocity), cfg.Ice.RunSpeed*cfg.Spin.BoostMultiplier))
		s.Velocity.X, s.Velocity.Z = boosted.X, boosted.Z
	}
}

// --- DASH ---

func enterDash(s *Skater, now int64, from MoveState) {
	s.Movement.Current = Dash
	s.Movement.SubStateStartTS = now
	s.Movement.LastDashTS = now
	s.Movement.DashFrom = from
}

func stepDash(s *Skater, cfg config.Config, now int64) {
	elapsed := now - s.Movement.SubStateStartTS
	progress := clamp(float64(elapsed)/float64(cfg.Dash.Duration.Milliseconds()), 0, 1)

	forward, _ := cameraBasis(s.FacingYaw)
	boostFactor := cfg.Dash.InitialBoost*(1-progress) + 1
	mag := cfg.Dash.Force * boostFactor * (1 - progress*progress)
	s.Velocity.X = forward.X * mag
	s.Velocity.Z = forward.Z * mag

	if progress >= 1 {
		s.Movement.Current = Normal
	}
}

// --- BODY_CHECK_LUNGE ---

func enterBodyCheckLunge(s *Skater, now int64, targetID string, entrySpeed float64) {
	s.Movement.Current = BodyCheckLunge
	s.Movement.SubStateStartTS = now
	s.Movement.LastBodyCheckTS = now
	s.Movement.BodyCheckTargetID = targetID
	s.Movement.BodyCheckResolved = false
	s.Movement.BodyCheckEntrySpeed = entrySpeed
}

// stepBodyCheckLunge steers the attacker at their locked target; it does
// not itself resolve the hit. The tick loop owns impact detection
// (spec 4.2: "on first overlap... apply knockback... stun target...
// dislodge puck... record hit stat") because that resolution reaches
// into the *target* skater and the puck arbiter, neither of which this
// package may mutate. The tick loop sets Movement.BodyCheckResolved once
// it has applied the hit; this step then exits to NORMAL.
func stepBodyCheckLunge(s *Skater, cfg config.Config, now int64, roster Roster, sink events.Sink) {
	if targetPos, ok := roster.PositionOf(s.Movement.BodyCheckTargetID); ok && !s.Movement.BodyCheckResolved {
		toTarget := targetPos.Sub(s.Position)
		toTarget.Y = 0
		if toTarget.Norm() > 1e-9 {
			dir := toTarget.Normalize()
			s.Velocity.X = dir.X * cfg.Body.DashForce
			s.Velocity.Z = dir.Z * cfg.Body.DashForce
		}
	}

	elapsed := now - s.Movement.SubStateStartTS
	if s.Movement.BodyCheckResolved || elapsed >= cfg.Body.Duration.Milliseconds() {
		s.Movement.Current = Normal
	}
}
