package tick

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/config"
	"github.com/icehockey/core/match"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
	"github.com/icehockey/core/skater"
)

// fakeEngine tracks per-handle state keyed by the handle itself (every
// skater and the puck get a distinct string handle in these tests),
// mirroring skater/skater_test.go's fakeEngine generalized to many
// entities at once.
type fakeEngine struct {
	pos map[adapter.EntityHandle]r3.Vector
	vel map[adapter.EntityHandle]r3.Vector
	rot map[adapter.EntityHandle]float64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		pos: make(map[adapter.EntityHandle]r3.Vector),
		vel: make(map[adapter.EntityHandle]r3.Vector),
		rot: make(map[adapter.EntityHandle]float64),
	}
}

func (e *fakeEngine) SetVelocity(h adapter.EntityHandle, v r3.Vector)        { e.vel[h] = v }
func (e *fakeEngine) SetRotation(h adapter.EntityHandle, yaw float64)        { e.rot[h] = yaw }
func (e *fakeEngine) SetPosition(h adapter.EntityHandle, p r3.Vector)        { e.pos[h] = p }
func (e *fakeEngine) ApplyImpulse(h adapter.EntityHandle, _ r3.Vector)       {}
func (e *fakeEngine) ApplyTorqueImpulse(h adapter.EntityHandle, _ r3.Vector) {}
func (e *fakeEngine) EntitySpawned(adapter.EntityHandle) bool                { return true }
func (e *fakeEngine) LinearVelocity(h adapter.EntityHandle) r3.Vector        { return e.vel[h] }
func (e *fakeEngine) Position(h adapter.EntityHandle) r3.Vector              { return e.pos[h] }

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

func newFixture(t *testing.T) (*Core, *fakeEngine, *fakeUI, *fakeAudio, *fakeStore, *rink.Rink) {
	t.Helper()
	cfg := config.Fast()
	rk, err := rink.Default()
	require.NoError(t, err)
	m := match.New(1, 20*60*1000)
	m.Phase = match.InPeriod
	m.TimerRunning = true

	eng := newFakeEngine()
	ui := &fakeUI{}
	audio := &fakeAudio{}
	store := &fakeStore{}

	p := puck.New("puck-handle", 0.5, rk.CenterIce)
	eng.pos["puck-handle"] = rk.CenterIce

	roster := NewRoster()
	core := NewCore(rk, m, p, roster, cfg, eng, ui, audio, store, 1)
	return core, eng, ui, audio, store, rk
}

func seatSkater(eng *fakeEngine, roster *Roster, id string, team rink.Team, role rink.Role, pos r3.Vector) *skater.Skater {
	s := skater.New(id, team, role, id+"-handle", config.Default().Ice.MinSpeedFactor)
	s.Position = pos
	eng.pos[id+"-handle"] = pos
	roster.Add(s)
	return s
}

func TestBodyCheckOnNonControllerRecordsNoHitStat(t *testing.T) {
	core, eng, _, audio, store, _ := newFixture(t)

	attacker := seatSkater(eng, core.Roster, "def1", rink.Red, rink.Def1, r3.Vector{X: 0, Y: 0, Z: 0})
	victim := seatSkater(eng, core.Roster, "wing1", rink.Blue, rink.Wing1, r3.Vector{X: 0, Y: 0, Z: -0.5})

	attacker.Movement.Current = skater.BodyCheckLunge
	attacker.Movement.SubStateStartTS = 0
	attacker.Movement.BodyCheckTargetID = victim.ID
	attacker.Movement.BodyCheckEntrySpeed = core.Config.Ice.RunSpeed

	core.resolveBodyChecks(10)

	assert.True(t, attacker.Movement.BodyCheckResolved)
	assert.Equal(t, skater.Stunned, victim.Movement.Current)
	assert.Empty(t, store.events, "scenario 6: no hit stat when victim wasn't controller")
	assert.Contains(t, audio.sounds, adapter.SoundBodyCheck)
	assert.InDelta(t, core.Config.Body.DashForce, victim.Velocity.Norm(), 1e-9, "full-speed lunge knocks back at DashForce")
}

// TestBodyCheckKnockbackScalesWithEntrySpeed covers spec 4.2's "apply
// knockback scaled by pre-lunge speed": a lunge entered at half RunSpeed
// must knock the victim back at roughly half the full-speed magnitude.
func TestBodyCheckKnockbackScalesWithEntrySpeed(t *testing.T) {
	core, eng, _, _, _, _ := newFixture(t)

	attacker := seatSkater(eng, core.Roster, "def1", rink.Red, rink.Def1, r3.Vector{X: 0, Y: 0, Z: 0})
	victim := seatSkater(eng, core.Roster, "wing1", rink.Blue, rink.Wing1, r3.Vector{X: 0, Y: 0, Z: -0.5})

	attacker.Movement.Current = skater.BodyCheckLunge
	attacker.Movement.SubStateStartTS = 0
	attacker.Movement.BodyCheckTargetID = victim.ID
	attacker.Movement.BodyCheckEntrySpeed = core.Config.Ice.RunSpeed / 2

	core.resolveBodyChecks(10)

	expected := core.Config.Body.DashForce / 2
	assert.InDelta(t, expected, victim.Velocity.Norm(), 1e-9)
}

func TestBodyCheckDislodgesPuckAndRecordsHitWhenVictimControls(t *testing.T) {
	core, eng, _, _, store, _ := newFixture(t)

	attacker := seatSkater(eng, core.Roster, "def1", rink.Red, rink.Def1, r3.Vector{X: 0, Y: 0, Z: 0})
	victim := seatSkater(eng, core.Roster, "wing1", rink.Blue, rink.Wing1, r3.Vector{X: 0, Y: 0, Z: -0.5})

	core.Puck.ControllerID = victim.ID
	core.Puck.IsControlled = true

	attacker.Movement.Current = skater.BodyCheckLunge
	attacker.Movement.SubStateStartTS = 0
	attacker.Movement.BodyCheckTargetID = victim.ID
	attacker.Movement.BodyCheckEntrySpeed = core.Config.Ice.RunSpeed

	core.resolveBodyChecks(10)

	assert.Empty(t, core.Puck.ControllerID)
	require.Len(t, store.events, 1)
	assert.Equal(t, adapter.StatHit, store.events[0].Kind)
	assert.Equal(t, attacker.ID, store.events[0].PlayerID)
}

// TestStickCheckStealTransfersPossessionAfterArmingDelay covers spec 8
// scenario 3 at the tick level: a steal at 1.8m from the defender's body
// (over PuckPickupRadius) must still hand the defender possession once
// the 100ms arming delay elapses, rather than leaving the puck loose for
// proximity-based try_pickup to maybe never reclaim.
func TestStickCheckStealTransfersPossessionAfterArmingDelay(t *testing.T) {
	core, eng, _, _, _, _ := newFixture(t)

	holder := seatSkater(eng, core.Roster, "wing1", rink.Blue, rink.Wing1, r3.Vector{X: 0, Y: 0, Z: -1.0})
	defender := seatSkater(eng, core.Roster, "def1", rink.Red, rink.Def1, r3.Vector{X: 0, Y: 0, Z: 0})
	defender.FacingYaw = 0

	core.Puck.ControllerID = holder.ID
	core.Puck.IsControlled = true
	core.Puck.Position = r3.Vector{X: 0, Y: 0, Z: -1.8}

	require.True(t, puck.TryStickCheck(core.Puck, defender, holder, core.Config, 1000))
	assert.Empty(t, core.Puck.ControllerID)
	assert.Equal(t, defender.ID, core.Puck.PendingControllerID)

	armedAt := core.Puck.ArmedAt
	core.resolvePuck(armedAt-1, Intents{})
	assert.Empty(t, core.Puck.ControllerID, "possession must not transfer before the arming delay elapses")

	core.resolvePuck(armedAt, Intents{})
	assert.Equal(t, defender.ID, core.Puck.ControllerID, "defender regains the puck directly, not via proximity")
	assert.Empty(t, core.Puck.PendingControllerID)
}

func TestGoalieAutoPassReleasesAndQueuesImpulse(t *testing.T) {
	core, eng, _, _, _, _ := newFixture(t)
	goalie := seatSkater(eng, core.Roster, "g1", rink.Red, rink.Goalie, r3.Vector{})

	core.Puck.ControllerID = goalie.ID
	core.Puck.IsControlled = true
	core.Puck.GoalieHolding = true
	core.Puck.GoalieHoldingTS = 0

	core.resolvePuck(core.Config.Goalie.PuckControlLimit.Milliseconds()+1, Intents{})

	assert.Empty(t, core.Puck.ControllerID)
	require.Len(t, core.pending, 1)

	core.applyPendingImpulses()
	assert.Empty(t, core.pending)
}

func TestFaceoffAfterGoalRunsFullWhistleSequence(t *testing.T) {
	core, eng, ui, _, _, rk := newFixture(t)
	redCenter := seatSkater(eng, core.Roster, "rc", rink.Red, rink.Center, r3.Vector{X: 5, Y: 0, Z: 5})

	core.Puck.Position = rk.OwnGoal(rink.Blue).Center
	core.Puck.ControllerID = ""
	core.Puck.IsControlled = false
	core.Puck.TouchHistory = []puck.TouchRecord{{PlayerID: redCenter.ID, Team: rink.Red, TS: 0}}

	var now int64
	step := core.Config.SkaterTickPeriod.Milliseconds()

	goalSeen := false
	for i := 0; i < 400; i++ {
		now += step
		core.RunTick(now, float64(step)/1000, Intents{})
		if core.Match.Phase == match.GoalScored && !goalSeen {
			goalSeen = true
		}
		if core.Match.Phase == match.InPeriod && goalSeen {
			break
		}
	}

	require.True(t, goalSeen, "goal must have been detected at least once")
	assert.Equal(t, match.InPeriod, core.Match.Phase)
	assert.Equal(t, 1, core.Match.RedScore)

	found := false
	for _, ev := range ui.events {
		if ev.Kind == adapter.GoalScored {
			found = true
		}
	}
	assert.True(t, found, "UI must receive a GoalScored event")
}
