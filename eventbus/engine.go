// Package eventbus is an adapted, single-purpose actor engine: the
// teacher's bollywood package (Engine/PID/Props/Context/mailbox/process),
// narrowed to its one job in this codebase — dispatching outbound UI,
// audio, and stats-persistence events off the tick loop's hot path (spec
// 9: "Event-bus vs direct calls... keeping them off the hot path avoids
// re-entrancy"). The simulation core itself (match/skater/puck/tick) is
// NOT built from these actors: spec 5 mandates a single-threaded
// cooperative tick for gameplay state, so only the asynchronous I/O
// adapters run as actors.
package eventbus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Engine manages the lifecycle and message dispatch for adapter actors.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex
	stopping   atomic.Bool
}

// NewEngine creates a new, empty actor engine.
func NewEngine() *Engine {
	return &Engine{actors: make(map[string]*process)}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("adapter-%d", id)}
}

// Spawn starts a new actor and returns its PID.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		return nil
	}
	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()
	e.Send(pid, Started{}, nil)
	return pid
}

// Send delivers a fire-and-forget message to pid. Never blocks: a full
// mailbox drops the message (see process.sendMessage).
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil {
		return
	}
	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	_, isStarted := message.(Started)
	isSystem := isStopping || isStopped || isStarted

	if e.stopping.Load() && !isSystem {
		return
	}

	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		return
	}
	proc.sendMessage(&messageEnvelope{Sender: sender, Message: message})
}

// Ask sends a message and blocks for a reply or timeout. Used for the
// one request/response path in this codebase: the leaderboard query
// (stats actor).
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if pid == nil {
		return nil, fmt.Errorf("eventbus: ask to nil pid")
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("eventbus: actor %s not found", pid.ID)
	}

	replyCh := make(chan interface{}, 1)
	proc.sendMessage(&messageEnvelope{Message: message, RequestID: fmt.Sprintf("ask-%d", atomic.AddUint64(&e.pidCounter, 1)), replyCh: replyCh})

	select {
	case v := <-replyCh:
		return v, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("eventbus: ask to %s timed out after %s", pid.ID, timeout)
	}
}

// Stop requests pid to shut down: Stopping is delivered for cleanup, then
// the run loop is signaled to exit even if the mailbox is backed up.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		return
	}
	e.Send(pid, Stopping{}, nil)
	select {
	case <-proc.stopCh:
	default:
		close(proc.stopCh)
	}
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every actor and waits, with a bound, for them all to
// exit. Unlike the teacher's poll-and-sleep loop, each actor's exit is
// awaited concurrently via errgroup so Shutdown returns as soon as the
// slowest actor finishes (or the timeout elapses), not after a fixed
// number of poll intervals.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	procs := make([]*process, 0, len(e.actors))
	for _, p := range e.actors {
		procs = append(procs, p)
	}
	e.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range procs {
		p := p
		e.Stop(p.pid)
		g.Go(func() error {
			select {
			case <-p.stopCh:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	_ = g.Wait()
}
