// Package scenarios runs the end-to-end flows spec 8 describes against
// a fully wired tick.Core, exercising rink+skater+puck+match+tick
// together rather than any one package in isolation.
package scenarios

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/match"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
	"github.com/icehockey/core/skater"
	"github.com/icehockey/core/tick"
)

type fakeEngine struct {
	pos map[adapter.EntityHandle]r3.Vector
	vel map[adapter.EntityHandle]r3.Vector
	rot map[adapter.EntityHandle]float64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		pos: map[adapter.EntityHandle]r3.Vector{},
		vel: map[adapter.EntityHandle]r3.Vector{},
		rot: map[adapter.EntityHandle]float64{},
	}
}

func (e *fakeEngine) SetVelocity(h adapter.EntityHandle, v r3.Vector) { e.vel[h] = v }
func (e *fakeEngine) SetRotation(h adapter.EntityHandle, yaw float64) { e.rot[h] = yaw }
func (e *fakeEngine) SetPosition(h adapter.EntityHandle, p r3.Vector) { e.pos[h] = p }
func (e *fakeEngine) ApplyImpulse(h adapter.EntityHandle, impulse r3.Vector) {
	e.vel[h] = e.vel[h].Add(impulse)
}
func (e *fakeEngine) ApplyTorqueImpulse(h adapter.EntityHandle, torque r3.Vector) {}
func (e *fakeEngine) EntitySpawned(h adapter.EntityHandle) bool                  { _, ok := e.pos[h]; return ok }
func (e *fakeEngine) LinearVelocity(h adapter.EntityHandle) r3.Vector            { return e.vel[h] }
func (e *fakeEngine) Position(h adapter.EntityHandle) r3.Vector                  { return e.pos[h] }

type fakeUI struct{ events []adapter.UIEvent }

func (u *fakeUI) Publish(ev adapter.UIEvent) { u.events = append(u.events, ev) }

type fakeAudio struct{ sounds []adapter.Sound }

func (a *fakeAudio) Play(s adapter.Sound) { a.sounds = append(a.sounds, s) }

type fakeStore struct{ events []adapter.StatEvent }

func (s *fakeStore) RecordStatEvent(ev adapter.StatEvent) error {
	s.events = append(s.events, ev)
	return nil
}
func (s *fakeStore) GlobalLeaderboard() ([]adapter.PlayerStats, error) { return nil, nil }

func seat(eng *fakeEngine, roster *tick.Roster, id string, team rink.Team, role rink.Role, pos r3.Vector) *skater.Skater {
	s := skater.New(id, team, role, id+"-handle", config.Default().Ice.MinSpeedFactor)
	s.Position = pos
	eng.pos[id+"-handle"] = pos
	roster.Add(s)
	return s
}

// TestGoalWithPrimaryAndSecondaryAssist drives spec 8 scenario 4: player
// A touches the puck, passes to B, B passes to C, C shoots and scores —
// all Red, all inside the attribution window, no Blue touch in between.
// Expect scorer=C, primary assist=B, secondary assist=A.
func TestGoalWithPrimaryAndSecondaryAssist(t *testing.T) {
	rk, err := rink.Default()
	require.NoError(t, err)
	cfg := config.Fast()

	m := match.New(1, 20*60*1000)
	m.Phase = match.InPeriod
	m.TimerRunning = true

	eng := newFakeEngine()
	ui := &fakeUI{}
	audio := &fakeAudio{}
	store := &fakeStore{}

	p := puck.New("puck-handle", 0.5, rk.CenterIce)
	eng.pos["puck-handle"] = rk.CenterIce

	roster := tick.NewRoster()
	playerA := seat(eng, roster, "red-A", rink.Red, rink.Wing1, r3.Vector{X: 0, Y: 0, Z: 0})
	playerB := seat(eng, roster, "red-B", rink.Red, rink.Center, r3.Vector{X: 0, Y: 0, Z: 5})
	playerC := seat(eng, roster, "red-C", rink.Red, rink.Wing2, r3.Vector{X: 0, Y: 0, Z: 10})

	core := tick.NewCore(rk, m, p, roster, cfg, eng, ui, audio, store, 7)

	// A's touch at t=0 (pickup).
	p.TouchHistory = []puck.TouchRecord{{PlayerID: playerA.ID, Team: rink.Red, TS: 0}}

	// B's touch at t=1200ms (A passes to B).
	p.TouchHistory = append([]puck.TouchRecord{{PlayerID: playerB.ID, Team: rink.Red, TS: 1200}}, p.TouchHistory...)

	// C's touch at t=2500ms (B passes to C, who shoots and scores).
	now := int64(2500)
	p.TouchHistory = append([]puck.TouchRecord{{PlayerID: playerC.ID, Team: rink.Red, TS: now}}, p.TouchHistory...)

	// The shot has already left C's stick by the time it crosses the
	// goal line, so the controller slot is clear (spec 4.5
	// release-then-impulse) and AttachFollow in the tick loop's own
	// resolvePuck stage has nothing to drag the puck back toward a
	// stick offset.
	p.ControllerID = ""
	p.Position = rk.OwnGoal(rink.Blue).Center

	var collector events.Collector
	scored := match.DetectGoal(core.Match, core.Puck, core.Rink, core.Config, now, &collector)
	require.True(t, scored)

	var goalEvent events.GoalScored
	for _, ev := range collector.Drain() {
		if g, ok := ev.(events.GoalScored); ok {
			goalEvent = g
		}
	}

	assert.Equal(t, playerC.ID, goalEvent.ScorerID)
	assert.Equal(t, playerB.ID, goalEvent.PrimaryAssistID)
	assert.Equal(t, playerA.ID, goalEvent.SecondaryAssist)
	assert.Equal(t, 1, core.Match.RedScore)
}
