package eventbus

// Context is handed to an Actor's Receive for one message.
type Context interface {
	Engine() *Engine
	Self() *PID
	Sender() *PID
	Message() interface{}
	// RequestID is non-empty when the message arrived via Ask; Reply
	// must be called exactly once in that case.
	RequestID() string
	Reply(v interface{})
}

type context struct {
	engine    *Engine
	self      *PID
	sender    *PID
	message   interface{}
	requestID string
	replyCh   chan interface{}
}

func (c *context) Engine() *Engine        { return c.engine }
func (c *context) Self() *PID             { return c.self }
func (c *context) Sender() *PID           { return c.sender }
func (c *context) Message() interface{}   { return c.message }
func (c *context) RequestID() string      { return c.requestID }

func (c *context) Reply(v interface{}) {
	if c.replyCh == nil {
		return
	}
	select {
	case c.replyCh <- v:
	default:
	}
}
