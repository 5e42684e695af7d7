package skater

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
)

// SelectAnimation is a pure function of (grounded, state, velocity
// relative to facing, holding-puck) per spec 4.2. walkThreshold and
// runThreshold are the horizontal speeds (m/s) above which the skater is
// considered to be walking/running rather than idle.
func SelectAnimation(grounded bool, state MoveState, facingYaw float64, velocity r3.Vector, holdingPuck bool, walkThreshold, runThreshold float64) Animation {
	if state == Stunned {
		return AnimSleep
	}
	if !grounded {
		return AnimIdle
	}

	forward, right := cameraBasis(facingYaw)
	fwdComp := velocity.Dot(forward)
	rightComp := velocity.Dot(right)
	speed := math.Hypot(fwdComp, rightComp)

	if speed < walkThreshold {
		return AnimIdle
	}
	running := speed >= runThreshold

	// Strafe takes priority when lateral motion dominates forward motion.
	if math.Abs(rightComp) > math.Abs(fwdComp) {
		if rightComp > 0 {
			if running {
				return AnimRunStrafeRight
			}
			return AnimWalkStrafeRight
		}
		if running {
			return AnimRunStrafeLeft
		}
		return AnimWalkStrafeLeft
	}

	if fwdComp < 0 {
		if running {
			return AnimRunBackwards
		}
		return AnimWalkBackwards
	}
	if running {
		return AnimRun
	}
	return AnimWalk
}

// SelectStickVisual derives the cosmetic stick-handling state from
// lateral intent while the puck is held (spec 4.2).
func SelectStickVisual(in adapter.Intent, holdingPuck bool) StickVisual {
	if !holdingPuck {
		return StickIdle
	}
	switch {
	case in.Left && !in.Right:
		return StickControlledLeft
	case in.Right && !in.Left:
		return StickControlledRight
	default:
		return StickIdle
	}
}
