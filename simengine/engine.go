// Package simengine is the demo host-engine adapter: a minimal
// kinematic world that satisfies adapter.Engine without any external
// physics SDK. Grounded on the teacher's own ball/paddle motion model
// (game/ball.go, game/paddle.go — plain position += velocity*dt Euler
// integration with no physics library underneath), generalized from 2D
// integer canvas coordinates to 3D r3.Vector state and from a fixed
// canvas bounce rule to a caller-driven Step that the cmd/hockeycore
// server loop ticks explicitly.
package simengine

import (
	"sync"

	"github.com/golang/geo/r3"

	"github.com/icehockey/core/adapter"
)

// body is one entity's kinematic state: the core never reads mass or
// acceleration back out, it only ever asks for position/velocity and
// issues impulses, so that's all this holds.
type body struct {
	pos    r3.Vector
	vel    r3.Vector
	yaw    float64
	alive  bool
}

// Engine is a kinematic world whose methods all take one mutex, so it is
// safe to call from several goroutines; it exposes the handful of
// reads/writes adapter.Engine requires.
type Engine struct {
	mu     sync.Mutex
	bodies map[adapter.EntityHandle]*body
}

// New creates an empty world.
func New() *Engine {
	return &Engine{bodies: make(map[adapter.EntityHandle]*body)}
}

// Spawn registers a new entity at pos, alive until Despawn is called.
func (e *Engine) Spawn(handle adapter.EntityHandle, pos r3.Vector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bodies[handle] = &body{pos: pos, alive: true}
}

// Despawn removes an entity (spec 9's EntitySpawned must go false the
// instant a skater disconnects or the match ends).
func (e *Engine) Despawn(handle adapter.EntityHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.bodies, handle)
}

// Step advances every body's position by its current velocity (plain
// Euler integration, same as Ball.Move's X += Vx pattern) by dt seconds.
// The tick loop calls this once per frame, before reading positions
// back for the next tick's skater.Tick calls.
func (e *Engine) Step(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, b := range e.bodies {
		if !b.alive {
			continue
		}
		b.pos = b.pos.Add(b.vel.Mul(dt))
	}
}

func (e *Engine) SetVelocity(h adapter.EntityHandle, v r3.Vector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bodies[h]; ok {
		b.vel = v
	}
}

func (e *Engine) SetRotation(h adapter.EntityHandle, yaw float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bodies[h]; ok {
		b.yaw = yaw
	}
}

func (e *Engine) SetPosition(h adapter.EntityHandle, p r3.Vector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bodies[h]; ok {
		b.pos = p
	}
}

// ApplyImpulse adds the given vector to the body's velocity unchanged.
// This world keeps no mass state, so the impulse is not divided by a
// mass anywhere (puck.ImpulseFor's output already includes a factor of
// the puck's mass).
func (e *Engine) ApplyImpulse(h adapter.EntityHandle, impulse r3.Vector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bodies[h]; ok {
		b.vel = b.vel.Add(impulse)
	}
}

// ApplyTorqueImpulse is a no-op: this kinematic world tracks facing yaw
// directly through SetRotation rather than integrating angular velocity.
func (e *Engine) ApplyTorqueImpulse(h adapter.EntityHandle, torque r3.Vector) {}

func (e *Engine) EntitySpawned(h adapter.EntityHandle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bodies[h]
	return ok && b.alive
}

func (e *Engine) LinearVelocity(h adapter.EntityHandle) r3.Vector {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bodies[h]; ok {
		return b.vel
	}
	return r3.Vector{}
}

func (e *Engine) Position(h adapter.EntityHandle) r3.Vector {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bodies[h]; ok {
		return b.pos
	}
	return r3.Vector{}
}

var _ adapter.Engine = (*Engine)(nil)
