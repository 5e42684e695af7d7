package eventbus

// Actor processes messages delivered sequentially from its mailbox. Every
// outbound adapter (UI transport, audio, stats persistence) in this
// codebase implements Actor instead of being called directly from the
// tick loop, so a slow or failing adapter never blocks or aborts a tick
// (spec 9: "Event-bus vs direct calls").
type Actor interface {
	Receive(ctx Context)
}

// Producer creates a new Actor instance; an Engine calls it once per Spawn.
type Producer func() Actor

// Props configures how an actor is produced.
type Props struct {
	producer Producer
}

// NewProps wraps a Producer in a Props.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("eventbus: producer cannot be nil")
	}
	return &Props{producer: producer}
}

func (p *Props) produce() Actor { return p.producer() }
