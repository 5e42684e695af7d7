package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icehockey/core/adapter"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordStatEventAndLeaderboardAggregates(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.RecordStatEvent(adapter.StatEvent{ID: "1", Kind: adapter.StatGoal, PlayerID: "alice", TS: 1}))
	require.NoError(t, s.RecordStatEvent(adapter.StatEvent{ID: "2", Kind: adapter.StatGoal, PlayerID: "alice", TS: 2}))
	require.NoError(t, s.RecordStatEvent(adapter.StatEvent{ID: "3", Kind: adapter.StatAssist, PlayerID: "bob", TS: 3}))
	require.NoError(t, s.RecordStatEvent(adapter.StatEvent{ID: "4", Kind: adapter.StatHit, PlayerID: "bob", TS: 4}))

	rows, err := s.GlobalLeaderboard()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byPlayer := map[string]adapter.PlayerStats{}
	for _, r := range rows {
		byPlayer[r.PlayerID] = r
	}

	assert.Equal(t, 2, byPlayer["alice"].Goals)
	assert.Equal(t, 0, byPlayer["alice"].Assists)
	assert.Equal(t, 1, byPlayer["bob"].Assists)
	assert.Equal(t, 1, byPlayer["bob"].Hits)
}

func TestLeaderboardEmptyWhenNoEvents(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.GlobalLeaderboard()
	require.NoError(t, err)
	assert.Empty(t, rows)
}
