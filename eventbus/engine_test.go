package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingActor struct {
	count *int64
}

func (a *countingActor) Receive(ctx Context) {
	switch ctx.Message().(type) {
	case int:
		atomic.AddInt64(a.count, 1)
	}
	if ctx.RequestID() != "" {
		ctx.Reply(atomic.LoadInt64(a.count))
	}
}

func TestSendDeliversAllMessages(t *testing.T) {
	engine := NewEngine()
	var count int64
	pid := engine.Spawn(NewProps(func() Actor { return &countingActor{count: &count} }))
	require.NotNil(t, pid)

	for i := 0; i < 50; i++ {
		engine.Send(pid, i, nil)
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&count) == 50
	}, time.Second, time.Millisecond)
}

func TestAskReturnsReply(t *testing.T) {
	engine := NewEngine()
	var count int64
	pid := engine.Spawn(NewProps(func() Actor { return &countingActor{count: &count} }))

	engine.Send(pid, 1, nil)
	engine.Send(pid, 1, nil)

	v, err := engine.Ask(pid, 0, time.Second)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v.(int64), int64(2))
}

func TestAskErrorsOnUnknownActor(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Ask(&PID{ID: "missing"}, 1, 10*time.Millisecond)
	require.Error(t, err)
}

func TestShutdownStopsAllActors(t *testing.T) {
	engine := NewEngine()
	var count int64
	pid := engine.Spawn(NewProps(func() Actor { return &countingActor{count: &count} }))
	require.NotNil(t, pid)

	engine.Shutdown(time.Second)

	engine.Send(pid, 1, nil) // should be a no-op: engine is stopping
	assert.Equal(t, int64(0), atomic.LoadInt64(&count))
}

type panickyActor struct{ afterPanic *int64 }

func (a *panickyActor) Receive(ctx Context) {
	if ctx.Message() == "boom" {
		panic("boom")
	}
	atomic.AddInt64(a.afterPanic, 1)
}

func TestActorSurvivesPanicInOneMessage(t *testing.T) {
	engine := NewEngine()
	var afterPanic int64
	pid := engine.Spawn(NewProps(func() Actor { return &panickyActor{afterPanic: &afterPanic} }))

	engine.Send(pid, "boom", nil)
	engine.Send(pid, "ok", nil)

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&afterPanic) == 1
	}, time.Second, time.Millisecond)
}
