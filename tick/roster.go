// Package tick is the Tick Loop & Event Bus scheduler (spec 4.5): it
// owns the live skater roster, drives the fixed per-tick stage order,
// resolves the puck-release-then-impulse deferral and the body-check
// impact that skater.Tick cannot resolve on its own, and dispatches
// buffered intra-tick events to the outbound adapters. Grounded on the
// teacher's GameActor tick loop (game_actor.go's Receive/advance cycle)
// generalized from "advance bricks+balls+paddles" to the ordered
// (intake -> match -> skaters -> puck -> sampling -> dispatch) pipeline
// spec 4.5 specifies.
package tick

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/icehockey/core/config"
	"github.com/icehockey/core/rink"
	"github.com/icehockey/core/skater"
)

// Roster owns every seated skater for one match. It is the concrete
// implementation of both skater.Roster (body-check targeting) and
// match.SkaterRoster (whistle teleport iteration) — the two interfaces
// those packages declared specifically so neither has to import this
// one.
type Roster struct {
	skaters map[string]*skater.Skater
	order   []string // stable iteration order for deterministic ticks
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{skaters: make(map[string]*skater.Skater)}
}

// Add seats a skater. Re-adding the same ID replaces it.
func (r *Roster) Add(s *skater.Skater) {
	if _, exists := r.skaters[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.skaters[s.ID] = s
}

// Remove drops a skater, e.g. on disconnect (spec 5 "Disconnect cancels
// all of a skater's timers").
func (r *Roster) Remove(id string) {
	delete(r.skaters, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get looks up a seated skater by ID.
func (r *Roster) Get(id string) (*skater.Skater, bool) {
	s, ok := r.skaters[id]
	return s, ok
}

// ForEach visits every skater in stable order.
func (r *Roster) ForEach(fn func(*skater.Skater)) {
	for _, id := range r.order {
		if s, ok := r.skaters[id]; ok {
			fn(s)
		}
	}
}

// PositionOf satisfies skater.Roster: a read-only position lookup so a
// lunging attacker's step function can steer toward its target without
// the skater package holding a live reference to another skater.
func (r *Roster) PositionOf(id string) (r3.Vector, bool) {
	s, ok := r.skaters[id]
	if !ok {
		return r3.Vector{}, false
	}
	return s.Position, true
}

// FindBodyCheckTarget satisfies skater.Roster: the nearest opposing
// skater within the body-check cone ahead of attacker (spec 4.2 "lunges
// toward the nearest valid target within range/angle"). Goalies are
// never eligible targets (I4); stunned skaters are not excluded.
func (r *Roster) FindBodyCheckTarget(attacker *skater.Skater, cfg config.BodyCheckConfig) (string, bool) {
	forward := r3.Vector{X: -math.Sin(attacker.FacingYaw), Z: -math.Cos(attacker.FacingYaw)}
	cosHalfAngle := math.Cos(cfg.AngleDeg * math.Pi / 180)

	var bestID string
	bestDist := math.MaxFloat64
	found := false

	for _, id := range r.order {
		s, ok := r.skaters[id]
		if !ok || s.ID == attacker.ID || s.Team == attacker.Team || s.Role == rink.Goalie {
			continue
		}
		to := s.Position.Sub(attacker.Position)
		to.Y = 0
		dist := to.Norm()
		if dist == 0 || dist > cfg.Range {
			continue
		}
		if forward.Dot(to.Normalize()) < cosHalfAngle {
			continue
		}
		if dist < bestDist {
			bestDist = dist
			bestID = id
			found = true
		}
	}
	return bestID, found
}
