package eventbus

import (
	"fmt"
	"runtime/debug"
)

const defaultMailboxSize = 1024

// process is the running instance of one actor: its state, mailbox, and
// goroutine.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	mailbox chan *messageEnvelope
	props   *Props
	stopCh  chan struct{}
	stopped bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// sendMessage enqueues a message without blocking; a full mailbox drops
// the message and logs it rather than stalling the sender (which, for
// this codebase, is always the single-threaded tick loop — it must never
// block on adapter I/O).
func (p *process) sendMessage(env *messageEnvelope) {
	select {
	case p.mailbox <- env:
	default:
		fmt.Printf("eventbus: actor %s mailbox full, dropping message %T\n", p.pid.ID, env.Message)
	}
}

func (p *process) run() {
	defer func() {
		p.stopped = true
		p.invokeReceive(Stopped{}, nil, "", nil)
		p.engine.remove(p.pid)
	}()

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("eventbus: actor %s panicked: %v\n%s\n", p.pid.ID, r, string(debug.Stack()))
			p.stopped = true
		}
	}()

	p.actor = p.props.produce()
	if p.actor == nil {
		panic(fmt.Sprintf("eventbus: producer for actor %s returned nil", p.pid.ID))
	}

	for {
		select {
		case <-p.stopCh:
			return
		case env := <-p.mailbox:
			if p.stopped {
				continue
			}
			switch msg := env.Message.(type) {
			case Started:
				p.invokeReceive(msg, env.Sender, env.RequestID, env.replyCh)
			case Stopping:
				p.stopped = true
				p.invokeReceive(msg, env.Sender, env.RequestID, env.replyCh)
				close(p.stopCh)
			default:
				p.invokeReceive(env.Message, env.Sender, env.RequestID, env.replyCh)
			}
		}
	}
}

func (p *process) invokeReceive(msg interface{}, sender *PID, requestID string, replyCh chan interface{}) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("eventbus: actor %s Receive panicked on %T: %v\n%s\n", p.pid.ID, msg, r, string(debug.Stack()))
		}
	}()
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    sender,
		message:   msg,
		requestID: requestID,
		replyCh:   replyCh,
	}
	p.actor.Receive(ctx)
}
