package puck

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/rink"
	"github.com/icehockey/core/skater"
)

func newHolder(id string, role rink.Role) *skater.Skater {
	return skater.New(id, rink.Red, role, "h-"+id, config.Default().Ice.MinSpeedFactor)
}

func TestWristShotImpulse(t *testing.T) {
	cfg := config.Default().Puck
	rnd := rand.New(rand.NewSource(1))

	linear, torque := ImpulseFor(events.ReleaseShot, 1.0, 0, 0.5, cfg, rnd)

	assert.InDelta(t, 0, linear.X, 1e-9)
	assert.InDelta(t, 3.5, linear.Y, 1e-9)
	assert.InDelta(t, -17.5, linear.Z, 1e-9)
	assert.InDelta(t, 7.0, torque.Y, 1e-9)
}

func TestImpulseMonotonicInPower(t *testing.T) {
	cfg := config.Default().Puck
	rnd := rand.New(rand.NewSource(1))

	var last float64
	for i := 0; i <= 10; i++ {
		power := float64(i) / 10
		linear, _ := ImpulseFor(events.ReleaseShot, power, 0, 0.5, cfg, rnd)
		mag := linear.Norm()
		assert.GreaterOrEqual(t, mag, last)
		last = mag
	}
}

func TestSolePossessionOnPickup(t *testing.T) {
	cfg := config.Default()
	p := New("puck-1", 0.5, r3.Vector{})
	a := newHolder("a", rink.Center)
	b := newHolder("b", rink.Center)
	var collector events.Collector

	res := TryPickup(p, a, cfg, 1000, false, &collector)
	require.Equal(t, Acquired, res)

	res2 := TryPickup(p, b, cfg, 1100, false, &collector)
	assert.Equal(t, DeniedAlreadyOwned, res2)
	assert.Equal(t, "a", p.ControllerID)
}

func TestReleaseCooldownDeniesImmediateRepickup(t *testing.T) {
	cfg := config.Default()
	p := New("puck-1", 0.5, r3.Vector{})
	a := newHolder("a", rink.Center)
	var collector events.Collector

	require.Equal(t, Acquired, TryPickup(p, a, cfg, 0, false, &collector))
	Release(p, a, events.ReleasePass, cfg, 100)

	res := TryPickup(p, a, cfg, 500, false, &collector)
	assert.Equal(t, DeniedCooldown, res)

	res2 := TryPickup(p, a, cfg, 100+cfg.PickupCooldown.Milliseconds()+1, false, &collector)
	assert.Equal(t, Acquired, res2)
}

func TestStickCheckScenario(t *testing.T) {
	cfg := config.Default()
	p := New("puck-1", 0.5, r3.Vector{})
	holder := newHolder("holder", rink.Wing1)
	defender := newHolder("defender", rink.Def1)
	defender.FacingYaw = 0 // forward = -Z under this package's yaw convention

	var collector events.Collector
	require.Equal(t, Acquired, TryPickup(p, holder, cfg, 0, false, &collector))

	holder.Position = r3.Vector{X: 0, Y: 0, Z: -1.5}
	p.Position = r3.Vector{X: 0, Y: 0, Z: -2.3}
	assert.False(t, TryStickCheck(p, defender, holder, cfg, 1000))

	holder.Position = r3.Vector{X: 0, Y: 0, Z: -1.0}
	p.Position = r3.Vector{X: 0, Y: 0, Z: -1.8}
	assert.True(t, TryStickCheck(p, defender, holder, cfg, 1100))
	assert.Equal(t, "", p.ControllerID)
	assert.Equal(t, defender.ID, p.PendingControllerID)

	// Before the arming delay elapses, nobody (including the defender)
	// regains the puck, even from a dead stop on top of it.
	defender.Position = p.Position
	assert.False(t, CompleteArmedSteal(p, defender, cfg, p.ArmedAt-1))
	assert.Equal(t, "", p.ControllerID)

	// Spec scenario 3: 100ms after the steal, possession transfers to the
	// defender directly, even though the steal happened 1.8m from the
	// defender's body position -- well outside PuckPickupRadius (1.0m) --
	// so proximity-based try_pickup alone would never have reattached it.
	require.True(t, p.ArmedAt-1100 <= cfg.Stick.ArmingDelay.Milliseconds())
	assert.True(t, CompleteArmedSteal(p, defender, cfg, p.ArmedAt))
	assert.Equal(t, defender.ID, p.ControllerID)
	assert.Equal(t, "", p.PendingControllerID)
}

func TestGoalieCannotBeStickChecked(t *testing.T) {
	cfg := config.Default()
	p := New("puck-1", 0.5, r3.Vector{})
	goalie := newHolder("g", rink.Goalie)
	defender := newHolder("defender", rink.Def1)
	var collector events.Collector

	require.Equal(t, Acquired, TryPickup(p, goalie, cfg, 0, false, &collector))
	goalie.Position = r3.Vector{Z: -1.0}
	p.Position = r3.Vector{Z: -1.8}

	assert.False(t, TryStickCheck(p, defender, goalie, cfg, 1000))
	assert.Equal(t, "g", p.ControllerID)
}

func TestGoalieAutoPassAtFiveSeconds(t *testing.T) {
	cfg := config.Default()
	p := New("puck-1", 0.5, r3.Vector{})
	goalie := newHolder("g", rink.Goalie)
	var collector events.Collector

	require.Equal(t, Acquired, TryPickup(p, goalie, cfg, 0, false, &collector))

	fired := AutoPassIfExpired(p, goalie, cfg, 4000, &collector)
	assert.False(t, fired)

	fired = AutoPassIfExpired(p, goalie, cfg, cfg.Goalie.PuckControlLimit.Milliseconds(), &collector)
	assert.True(t, fired)
	assert.Equal(t, "", p.ControllerID)

	drained := collector.Drain()
	require.Len(t, drained, 1)
}

// TestWarnGoalieIfApproachingLimitFiresOnceAtWarningThreshold covers
// spec 8 scenario 2: a warning UI event fires once the goalie's hold
// crosses Goalie.WarningTime (4000ms of the 5000ms limit), and does not
// re-fire every subsequent tick.
func TestWarnGoalieIfApproachingLimitFiresOnceAtWarningThreshold(t *testing.T) {
	cfg := config.Default()
	p := New("puck-1", 0.5, r3.Vector{})
	goalie := newHolder("g", rink.Goalie)
	var collector events.Collector

	require.Equal(t, Acquired, TryPickup(p, goalie, cfg, 0, false, &collector))

	WarnGoalieIfApproachingLimit(p, goalie, cfg, cfg.Goalie.WarningTime.Milliseconds()-1, &collector)
	assert.Empty(t, collector.Drain())

	WarnGoalieIfApproachingLimit(p, goalie, cfg, cfg.Goalie.WarningTime.Milliseconds(), &collector)
	drained := collector.Drain()
	require.Len(t, drained, 1)
	warning, ok := drained[0].(events.GoaliePassCountdownWarning)
	require.True(t, ok)
	assert.Equal(t, "g", warning.GoalieID)
	assert.Equal(t, cfg.Goalie.PuckControlLimit.Milliseconds()-cfg.Goalie.WarningTime.Milliseconds(), warning.RemainingMS)

	// Does not re-fire on a later tick within the same hold.
	WarnGoalieIfApproachingLimit(p, goalie, cfg, cfg.Goalie.WarningTime.Milliseconds()+500, &collector)
	assert.Empty(t, collector.Drain())
}

func TestTouchHistoryPruneAndDedup(t *testing.T) {
	p := New("puck-1", 0.5, r3.Vector{})
	p.recordTouch("a", rink.Red, 0, 5)
	p.recordTouch("a", rink.Red, 10, 5)
	require.Len(t, p.TouchHistory, 1)

	p.recordTouch("b", rink.Red, 20, 5)
	require.Len(t, p.TouchHistory, 2)

	p.PruneTouchHistory(70_000, 60_000)
	assert.Empty(t, p.TouchHistory)
}
