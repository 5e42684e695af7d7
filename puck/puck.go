// Package puck is the single source of truth for who, if anyone,
// controls the puck (spec section 4.3). It enforces at-most-one
// controller, pickup cooldowns, release impulses, stick-check theft,
// body-check dislodge, and the goalie auto-pass. Grounded on the
// teacher's ball.go/ball_actor.go (the one shared, contested object
// every paddle interacts with) generalized from "bounce off paddle" to
// "attach to and release from a skater."
package puck

import (
	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/rink"
)

// TouchRecord is one entry in the puck's touch history (spec 3, I7):
// newest first, max 5, 60s TTL, no consecutive duplicate player.
type TouchRecord struct {
	PlayerID string
	Team     rink.Team
	TS       int64
}

// Puck is the singleton tracked object (spec 3). Exactly one exists per
// match; it is respawned at center ice on goal or out-of-bounds.
type Puck struct {
	Handle   adapter.EntityHandle
	Position r3.Vector
	Velocity r3.Vector
	Mass     float64

	ControllerID  string // "" when loose (I1)
	LastTouchedBy string
	TouchHistory  []TouchRecord
	IsControlled  bool

	// PickupHeightY is the Y coordinate captured at pickup time; while
	// held, attach-follow clamps the puck to this height (spec 4.3).
	PickupHeightY float64

	// Possession Claim fields (spec 3), folded into Puck since at most
	// one claim ever exists (spec 9: "explicit ownership... single field").
	AcquiredTS      int64
	GoalieHoldingTS int64
	GoalieHolding   bool

	// GoalieWarningEmitted guards WarnGoalieIfApproachingLimit so the
	// warning fires exactly once per hold instead of every tick past the
	// threshold.
	GoalieWarningEmitted bool

	// ArmedAt gates the *next* pickup globally: after a steal or
	// body-check dislodge, no one (including the new controller) may
	// attach before this timestamp (spec 4.3 "short arming delay").
	ArmedAt int64

	// PendingControllerID is the defender a successful stick-check steal
	// already resolved in its favor; once ArmedAt passes, possession
	// transfers to this skater directly rather than through proximity-based
	// try_pickup (spec 4.3: "transfer possession to the defender after a
	// 100ms arming delay"). Empty when no steal is pending.
	PendingControllerID string

	// LastReleaseTS is per-skater: I3's "now - last_release_ts >= 1000ms
	// for its own last release" rule.
	LastReleaseTS map[string]int64
}

// New creates a loose puck at center ice with the given mass and engine
// handle.
func New(handle adapter.EntityHandle, mass float64, center r3.Vector) *Puck {
	return &Puck{
		Handle:        handle,
		Position:      center,
		Mass:          mass,
		LastReleaseTS: make(map[string]int64),
	}
}

// ResetToCenter respawns the puck at center ice, loose, with velocity
// zeroed and the controller slot cleared (goal scored / boundary reset /
// whistle teleport all funnel through this).
func (p *Puck) ResetToCenter(center r3.Vector) {
	p.Position = center
	p.Velocity = r3.Vector{}
	p.ControllerID = ""
	p.IsControlled = false
	p.GoalieHolding = false
	p.GoalieHoldingTS = 0
	p.GoalieWarningEmitted = false
	p.PendingControllerID = ""
}

// recordTouch prepends a touch, merging consecutive duplicates and
// capping at max entries (I7). Callers prune TTL separately (PruneTouchHistory).
func (p *Puck) recordTouch(playerID string, team rink.Team, now int64, max int) {
	if len(p.TouchHistory) > 0 && p.TouchHistory[0].PlayerID == playerID {
		p.TouchHistory[0].TS = now
		return
	}
	p.TouchHistory = append([]TouchRecord{{PlayerID: playerID, Team: team, TS: now}}, p.TouchHistory...)
	if len(p.TouchHistory) > max {
		p.TouchHistory = p.TouchHistory[:max]
	}
	p.LastTouchedBy = playerID
}

// PruneTouchHistory drops entries older than ttlMS (I7, P5).
func (p *Puck) PruneTouchHistory(now int64, ttlMS int64) {
	kept := p.TouchHistory[:0:0]
	for _, t := range p.TouchHistory {
		if now-t.TS <= ttlMS {
			kept = append(kept, t)
		}
	}
	p.TouchHistory = kept
}
