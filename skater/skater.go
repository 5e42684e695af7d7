// Package skater implements the per-player movement state machine and
// ice physics (spec section 4.2): it consumes one Intent per tick and
// produces velocity/rotation/animation, owning the special-move
// sub-machines and the ephemeral stunned status. Grounded on the
// teacher's paddle.go/paddle_actor.go (a single entity, engine handle,
// and per-tick state mutation driven by player input) generalized from
// a 2D pong paddle to a full 3D ice-skating movement model.
package skater

import (
	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/rink"
)

// MoveState is one of the mutually-exclusive special-move states (I2),
// plus NORMAL and STUNNED.
type MoveState int

const (
	Normal MoveState = iota
	HockeyStop
	GoalieSlide
	Spin
	Dash
	BodyCheckLunge
	Stunned
)

func (s MoveState) String() string {
	switch s {
	case Normal:
		return "normal"
	case HockeyStop:
		return "hockey_stop"
	case GoalieSlide:
		return "goalie_slide"
	case Spin:
		return "spin"
	case Dash:
		return "dash"
	case BodyCheckLunge:
		return "body_check_lunge"
	case Stunned:
		return "stunned"
	default:
		return "unknown"
	}
}

// StickVisual is the cosmetic stick-handling state while holding the puck.
type StickVisual int

const (
	StickIdle StickVisual = iota
	StickControlledLeft
	StickControlledRight
)

// Animation is the pure-function output of animation selection.
type Animation int

const (
	AnimIdle Animation = iota
	AnimWalk
	AnimWalkBackwards
	AnimWalkStrafeLeft
	AnimWalkStrafeRight
	AnimRun
	AnimRunBackwards
	AnimRunStrafeLeft
	AnimRunStrafeRight
	AnimSleep
)

// MovementState is the mutable per-skater state machine data (spec 3:
// "Movement State"). All timestamps are monotonic milliseconds.
type MovementState struct {
	Current         MoveState
	SubStateStartTS int64

	LastStopTS       int64
	LastSlideTS      int64
	LastSpinTS       int64
	LastDashTS       int64
	LastBodyCheckTS  int64
	LastStickCheckTS int64

	SpeedFactor  float64   // sprint ramp, in [MinSpeedFactor, 1]
	LastMoveDir  r3.Vector // unit xz vector of the previous tick's input direction
	SpinBoostUntilTS int64

	StopSide float64 // -1 left, +1 right, chosen when HOCKEY_STOP/GOALIE_SLIDE is entered
	EntryYaw float64 // facing yaw captured at HOCKEY_STOP/GOALIE_SLIDE entry
	DashFrom MoveState // state DASH was triggered from, so exit can tell stop from slide

	BodyCheckTargetID   string  // locked lunge target, empty if not yet resolved
	BodyCheckResolved   bool    // whether this lunge already applied its one hit
	BodyCheckEntrySpeed float64 // attacker's horizontal speed at lunge entry, for knockback scaling

	PreserveYawUntilTS int64 // faceoff rotation-preserve window (spec 9)

	Stick StickVisual

	// PrevPrimary/PrevSecondary let the controller edge-trigger one-shot
	// actions (puck release, stick-check, body-check) off a button press
	// rather than re-firing every tick the bit stays set.
	PrevPrimary   bool
	PrevSecondary bool
}

// Skater is one seated player's on-ice entity (spec 3).
type Skater struct {
	ID     string
	Team   rink.Team
	Role   rink.Role
	Handle adapter.EntityHandle

	Position  r3.Vector
	Velocity  r3.Vector // only X,Z are driven by this package; Y is engine-owned
	FacingYaw float64

	GroundContacts int
	WallContacts   int

	ActivityTS     int64
	StunnedUntilTS int64

	Movement MovementState
}

// New creates a skater at rest, in NORMAL state, with a neutral speed
// factor (spec: speed factor ranges [MinSpeedFactor, 1]).
func New(id string, team rink.Team, role rink.Role, handle adapter.EntityHandle, minSpeedFactor float64) *Skater {
	return &Skater{
		ID:     id,
		Team:   team,
		Role:   role,
		Handle: handle,
		Movement: MovementState{
			Current:     Normal,
			SpeedFactor: minSpeedFactor,
			Stick:       StickIdle,
		},
	}
}

// HasSpecialMove reports whether the skater currently occupies one of
// the five mutually-exclusive special-move slots (I2, P6).
func (s *Skater) HasSpecialMove() bool {
	switch s.Movement.Current {
	case HockeyStop, GoalieSlide, Spin, Dash, BodyCheckLunge:
		return true
	default:
		return false
	}
}

// IsStunned reports whether the skater is presently frozen from a
// body-check impact.
func (s *Skater) IsStunned(now int64) bool {
	return s.Movement.Current == Stunned && now < s.StunnedUntilTS
}

// Teleport places the skater at a whistle spawn, zeroes velocity, resets
// to NORMAL, and arms the faceoff yaw-preserve window (spec 4.4 whistle
// semantics step 2, spec 9 "Faceoff rotation preservation").
func (s *Skater) Teleport(pos r3.Vector, facingYaw float64, now int64, preserveFor int64) {
	s.Position = pos
	s.FacingYaw = facingYaw
	s.Velocity = r3.Vector{}
	s.Movement = MovementState{
		Current:     Normal,
		SpeedFactor: s.Movement.SpeedFactor,
		Stick:       StickIdle,
		PreserveYawUntilTS: now + preserveFor,
	}
}
