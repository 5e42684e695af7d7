package transport

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/eventbus"
)

// capturingSink records every decoded frame, mirroring the teacher's
// handlers_test.go MockActor capture pattern, generalized to a plain
// sink function instead of an actor mailbox.
type capturingSink struct {
	mu     sync.Mutex
	frames []IntentFrame
}

func (c *capturingSink) receive(f IntentFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
}

func (c *capturingSink) drain() []IntentFrame {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.frames
	c.frames = nil
	return out
}

func waitFor(t *testing.T, fn func() bool, timeout time.Duration) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return fn()
}

func TestReadLoopForwardsDecodedIntent(t *testing.T) {
	engine := eventbus.NewEngine()
	defer engine.Shutdown(2 * time.Second)

	sink := &capturingSink{}
	server := New(engine, sink.receive)

	httpSrv := httptest.NewServer(websocket.Handler(server.Handler()))
	defer httpSrv.Close()

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	ws, err := websocket.Dial(wsURL, "", httpSrv.URL)
	require.NoError(t, err)
	defer ws.Close()

	frame := IntentFrame{SkaterID: "red-center", Forward: true, CameraYaw: 1.5}
	require.NoError(t, websocket.JSON.Send(ws, frame))

	require.True(t, waitFor(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return len(sink.frames) > 0
	}, time.Second))

	sink.mu.Lock()
	got := sink.frames[0]
	sink.mu.Unlock()

	assert.Equal(t, "red-center", got.SkaterID)
	assert.True(t, got.Forward)
	assert.InDelta(t, 1.5, got.CameraYaw, 1e-9)
}

func TestBroadcastUIEventReachesClient(t *testing.T) {
	engine := eventbus.NewEngine()
	defer engine.Shutdown(2 * time.Second)

	server := New(engine, func(IntentFrame) {})

	httpSrv := httptest.NewServer(websocket.Handler(server.Handler()))
	defer httpSrv.Close()

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	ws, err := websocket.Dial(wsURL, "", httpSrv.URL)
	require.NoError(t, err)
	defer ws.Close()

	require.True(t, waitFor(t, func() bool {
		var n int
		server.mu.RLock()
		n = len(server.conns)
		server.mu.RUnlock()
		return n == 1
	}, time.Second))

	server.UI().Publish(adapter.UIEvent{Kind: adapter.GoalScored, Team: "red", Scorer: "p1"})

	var out outboundFrame
	ws.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, websocket.JSON.Receive(ws, &out))

	assert.Equal(t, "ui_event", out.Kind)
	require.NotNil(t, out.Event)
	assert.Equal(t, "red", out.Event.Team)
	assert.Equal(t, "p1", out.Event.Scorer)
}

func TestIntentFrameConvertsToAdapterIntent(t *testing.T) {
	f := IntentFrame{Forward: true, Sprint: true, CameraYaw: 0.25}
	in := f.Intent()
	assert.True(t, in.Forward)
	assert.True(t, in.Sprint)
	assert.InDelta(t, 0.25, in.CameraYaw, 1e-9)
}
