package tick

import (
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/match"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
	"github.com/icehockey/core/skater"
)

// pendingImpulse is one release's deferred physics application,
// queued at release time and applied at the very start of the
// following tick (spec 4.5 "release-then-impulse": release clears the
// controller slot same tick; the impulse lands next tick).
type pendingImpulse struct {
	handle adapter.EntityHandle
	linear r3.Vector
	torque r3.Vector
}

// Core orchestrates one match's tick loop end to end: intent intake,
// the match state machine, every seated skater, the puck arbiter, and
// the outbound event dispatch. Grounded on the teacher's GameActor
// Receive loop (game_actor.go), generalized from "advance bricks and
// balls" to the ordered pipeline spec 4.5 specifies.
type Core struct {
	Rink  *rink.Rink
	Match *match.Match
	Puck  *puck.Puck
	Roster *Roster
	Config config.Config

	Engine      adapter.Engine
	UI          adapter.UI
	AudioOut    adapter.Audio
	Persistence adapter.Persistence

	rnd *rand.Rand

	collector events.Collector
	pending   []pendingImpulse

	lastSampleTS int64
}

// NewCore wires a fresh tick loop around an already-seated roster, puck,
// rink, and match, plus the host adapters (spec 6). seed drives the
// per-match impulse jitter (puck.ImpulseFor) so a replay given the same
// seed and intent stream reproduces bit-for-bit.
func NewCore(rk *rink.Rink, m *match.Match, p *puck.Puck, roster *Roster, cfg config.Config, eng adapter.Engine, ui adapter.UI, audio adapter.Audio, persist adapter.Persistence, seed int64) *Core {
	return &Core{
		Rink:        rk,
		Match:       m,
		Puck:        p,
		Roster:      roster,
		Config:      cfg,
		Engine:      eng,
		UI:          ui,
		AudioOut:    audio,
		Persistence: persist,
		rnd:         rand.New(rand.NewSource(seed)),
	}
}

// Intents supplies one Intent per skater ID for the tick about to run;
// a skater with no entry gets the zero Intent and is treated as fully
// idle (the tick loop never blocks waiting on a late packet).
type Intents map[string]adapter.Intent

// RunTick advances the whole match by one frame (spec 4.5 stage order
// a-f). now is monotonic milliseconds; dt is the elapsed seconds since
// the previous tick.
func (c *Core) RunTick(now int64, dt float64, in Intents) {
	c.applyPendingImpulses()

	if c.Match.Mode == match.Shootout {
		match.AdvanceShootout(c.Match, c.Roster, c.Puck, c.Rink, c.Config, now, &c.collector)
	} else {
		match.Advance(c.Match, c.Roster, c.Puck, c.Rink, c.Config, now, &c.collector)
	}

	locked := c.Match.Locked()
	c.Roster.ForEach(func(s *skater.Skater) {
		intent := in[s.ID]
		holding := c.Puck.ControllerID == s.ID
		skater.Tick(s, c.Engine, c.Config, intent, now, dt, locked, holding, c.Roster, &c.collector)
	})

	c.resolvePuck(now, in)
	c.resolveBodyChecks(now)

	if now-c.lastSampleTS >= c.Config.SampleTickPeriod.Milliseconds() {
		c.lastSampleTS = now
		if !match.DetectGoal(c.Match, c.Puck, c.Rink, c.Config, now, &c.collector) {
			match.DetectBoundary(c.Match, c.Puck, c.Roster, c.Rink, c.Config, now, &c.collector)
		}
	}

	// A whistle (from match.Advance, match.AdvanceShootout, or
	// DetectBoundary) moves a skater's logical Position
	// directly; push it into the engine now so next tick's
	// eng.Position(handle) read-back in skater.Tick sees the teleport
	// instead of stomping it back to wherever the skater physically
	// was a moment ago.
	c.Roster.ForEach(func(s *skater.Skater) {
		c.Engine.SetPosition(s.Handle, s.Position)
		c.Engine.SetRotation(s.Handle, s.FacingYaw)
	})

	c.dispatch(now)
}
