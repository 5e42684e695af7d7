package skater

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/config"
)

// cameraBasis returns the forward and right unit vectors for a camera
// yaw in radians, 0 toward -Z (spec 6).
func cameraBasis(yaw float64) (forward, right r3.Vector) {
	forward = r3.Vector{X: -math.Sin(yaw), Y: 0, Z: -math.Cos(yaw)}
	right = r3.Vector{X: math.Cos(yaw), Y: 0, Z: -math.Sin(yaw)}
	return forward, right
}

// inputDirection maps WASD bits plus camera yaw to a unit world-space
// direction (zero vector if no movement bit is set).
func inputDirection(in adapter.Intent) r3.Vector {
	forward, right := cameraBasis(in.CameraYaw)
	var dir r3.Vector
	if in.Forward {
		dir = dir.Add(forward)
	}
	if in.Back {
		dir = dir.Sub(forward)
	}
	if in.Right {
		dir = dir.Add(right)
	}
	if in.Left {
		dir = dir.Sub(right)
	}
	if dir.Norm() < 1e-9 {
		return r3.Vector{}
	}
	return dir.Normalize()
}

// mappedDot maps a [-1,1] dot product into [0,1], the way spec 4.2's
// direction-change penalty formula expects.
func mappedDot(a, b r3.Vector) float64 {
	if a.Norm() < 1e-9 || b.Norm() < 1e-9 {
		return 1
	}
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return (d + 1) / 2
}

// applyIcePhysics advances (vx, vz) one tick per spec 4.2. Y velocity is
// never touched here: it is preserved from the physics engine.
func applyIcePhysics(s *Skater, in adapter.Intent, ice config.IceConfig, dt float64, now int64, spinBoostMult float64) {
	dir := inputDirection(in)
	tickScale := dt * ice.ReferenceTickRate

	if dir.Norm() > 1e-9 {
		// Sprint ramp: non-linear approach to full speed while sprint is held.
		if in.Sprint {
			s.Movement.SpeedFactor += ice.SprintAccelerationRate * math.Pow(1-s.Movement.SpeedFactor, ice.AccelerationCurvePower) * tickScale
		} else {
			s.Movement.SpeedFactor += (ice.MinSpeedFactor - s.Movement.SpeedFactor) * ice.SprintDecelerationRate * tickScale
		}
		s.Movement.SpeedFactor = clamp(s.Movement.SpeedFactor, ice.MinSpeedFactor, 1)

		baseSpeed := ice.WalkSpeed
		if in.Sprint {
			baseSpeed = ice.WalkSpeed + (ice.RunSpeed-ice.WalkSpeed)*s.Movement.SpeedFactor
		}
		spinMult := 1.0
		if now < s.Movement.SpinBoostUntilTS {
			spinMult = spinBoostMult
		}
		target := dir.Mul(baseSpeed * ice.MaxSpeedMultiplier * spinMult)

		penalty := 1.0
		if s.Movement.LastMoveDir.Norm() > 1e-9 {
			mapped := mappedDot(s.Movement.LastMoveDir, dir)
			penalty = math.Max(0.3, 1-(1-mapped)*ice.DirectionChangePenalty)
		}

		blend := clamp(ice.Acceleration*penalty*tickScale, 0, 1)
		horiz := r3.Vector{X: s.Velocity.X, Y: 0, Z: s.Velocity.Z}
		newHoriz := horiz.Add(target.Sub(horiz).Mul(blend))
		s.Velocity.X = newHoriz.X
		s.Velocity.Z = newHoriz.Z
		s.Movement.LastMoveDir = dir
	} else {
		s.Movement.SpeedFactor += (ice.MinSpeedFactor - s.Movement.SpeedFactor) * ice.SprintDecelerationRate * tickScale
		s.Movement.SpeedFactor = clamp(s.Movement.SpeedFactor, ice.MinSpeedFactor, 1)
		decay := math.Pow(ice.Deceleration, tickScale)
		s.Velocity.X *= decay
		s.Velocity.Z *= decay
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func horizontalSpeed(v r3.Vector) float64 {
	return math.Hypot(v.X, v.Z)
}
