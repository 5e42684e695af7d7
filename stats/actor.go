package stats

import (
	"time"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/eventbus"
)

// recordMsg asks the actor to persist one stat event; askLeaderboardMsg
// requests the current leaderboard snapshot via eventbus's Ask.
type recordMsg struct{ ev adapter.StatEvent }
type askLeaderboardMsg struct{}

// actor runs a Store off the tick loop's hot path (spec 9: "Event-bus
// vs direct calls"): the tick loop never blocks on a database write.
type actor struct {
	store *Store
}

func (a *actor) Receive(ctx eventbus.Context) {
	switch msg := ctx.Message().(type) {
	case recordMsg:
		if err := a.store.RecordStatEvent(msg.ev); err != nil {
			// spec 7 "external adapter failure... swallowed, core continues".
			return
		}
	case askLeaderboardMsg:
		rows, err := a.store.GlobalLeaderboard()
		if err != nil {
			ctx.Reply([]adapter.PlayerStats(nil))
			return
		}
		ctx.Reply(rows)
	}
}

// Adapter is the tick-loop-facing adapter.Persistence implementation: it
// forwards every call across the actor mailbox instead of touching the
// database inline.
type Adapter struct {
	engine *eventbus.Engine
	pid    *eventbus.PID
}

// NewAdapter spawns the stats actor over store and returns the
// adapter.Persistence the tick loop's Core should hold.
func NewAdapter(engine *eventbus.Engine, store *Store) *Adapter {
	pid := engine.Spawn(eventbus.NewProps(func() eventbus.Actor {
		return &actor{store: store}
	}))
	return &Adapter{engine: engine, pid: pid}
}

func (a *Adapter) RecordStatEvent(ev adapter.StatEvent) error {
	a.engine.Send(a.pid, recordMsg{ev: ev}, nil)
	return nil
}

func (a *Adapter) GlobalLeaderboard() ([]adapter.PlayerStats, error) {
	reply, err := a.engine.Ask(a.pid, askLeaderboardMsg{}, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rows, _ := reply.([]adapter.PlayerStats)
	return rows, nil
}
