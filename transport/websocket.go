// Package transport is the demo websocket wiring around the simulation
// core (spec 6 external interfaces): it decodes one JSON intent per
// inbound frame into adapter.Intent, and fans outbound adapter.UIEvent /
// adapter.Sound out to every connected client. Adapted from the
// teacher's server.Server connection tracking (server/websocket.go) and
// its per-connection actor pattern (server/connection_handler.go),
// generalized from a single shared pong room to many named skater seats
// on one match.
package transport

import (
	"fmt"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/icehockey/core/eventbus"
)

// IntentSink receives one decoded inbound frame for a seated skater.
// The host binds this to whatever feeds the tick loop's next Intents map.
type IntentSink func(frame IntentFrame)

// Server tracks every open websocket connection and the actor engine
// driving them, mirroring server.Server's connections map but keyed by
// the actor PID instead of the raw *websocket.Conn so broadcast can go
// through the same engine.Send path as everything else in this codebase.
type Server struct {
	engine *eventbus.Engine
	sink   IntentSink

	mu    sync.RWMutex
	conns map[*eventbus.PID]*websocket.Conn
}

// New creates a Server that decodes inbound intents through sink and
// dispatches outbound events through engine (the same eventbus.Engine
// the stats actor uses, per spec 9's single event-bus for all adapters).
func New(engine *eventbus.Engine, sink IntentSink) *Server {
	return &Server{
		engine: engine,
		sink:   sink,
		conns:  make(map[*eventbus.PID]*websocket.Conn),
	}
}

// Handler returns the net/http-compatible websocket handler to mount at
// the game's subscribe endpoint (spec 6 "Transport: websocket, one
// connection per seated player"). It blocks for the connection's
// lifetime, same as the teacher's HandleSubscribe blocking on its done
// channel, so the caller's http.Handler goroutine exits only once the
// peer disconnects.
func (s *Server) Handler() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		closed := make(chan struct{})
		pid := s.engine.Spawn(eventbus.NewProps(func() eventbus.Actor {
			return &connectionActor{conn: ws, sink: s.sink, closed: closed}
		}))
		if pid == nil {
			_ = ws.Close()
			return
		}

		s.mu.Lock()
		s.conns[pid] = ws
		s.mu.Unlock()
		fmt.Printf("transport: connection opened %s (%d total)\n", ws.RemoteAddr(), len(s.conns))

		s.engine.Send(pid, startReadLoop{}, nil)
		<-closed

		s.mu.Lock()
		delete(s.conns, pid)
		s.mu.Unlock()
		s.engine.Stop(pid)
		fmt.Printf("transport: connection closed %s (%d total)\n", ws.RemoteAddr(), len(s.conns))
	}
}

// Broadcast fans one message out to every connected actor (a uiEventMsg
// or soundMsg, see connectionActor.Receive in connection.go).
func (s *Server) Broadcast(msg interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for pid := range s.conns {
		s.engine.Send(pid, msg, nil)
	}
}
