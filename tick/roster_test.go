package tick

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icehockey/core/config"
	"github.com/icehockey/core/rink"
	"github.com/icehockey/core/skater"
)

// TestFindBodyCheckTargetSkipsOpposingGoalie covers I4: a goalie must
// never be eligible for a body-check lunge, even when standing directly
// ahead of the attacker and closer than any other opposing skater.
func TestFindBodyCheckTargetSkipsOpposingGoalie(t *testing.T) {
	roster := NewRoster()

	attacker := skater.New("def1", rink.Red, rink.Def1, "def1-handle", config.Default().Ice.MinSpeedFactor)
	attacker.Position = r3.Vector{X: 0, Y: 0, Z: 0}
	attacker.FacingYaw = 0
	roster.Add(attacker)

	goalie := skater.New("g1", rink.Blue, rink.Goalie, "g1-handle", config.Default().Ice.MinSpeedFactor)
	goalie.Position = r3.Vector{X: 0, Y: 0, Z: -1}
	roster.Add(goalie)

	winger := skater.New("wing1", rink.Blue, rink.Wing1, "wing1-handle", config.Default().Ice.MinSpeedFactor)
	winger.Position = r3.Vector{X: 0, Y: 0, Z: -2}
	roster.Add(winger)

	id, found := roster.FindBodyCheckTarget(attacker, config.Default().Body)
	require.True(t, found)
	assert.Equal(t, winger.ID, id)
}
