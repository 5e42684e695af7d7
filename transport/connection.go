package transport

import (
	"fmt"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/icehockey/core/adapter"
	"github.com/icehockey/core/eventbus"
)

// IntentFrame is the wire shape of one inbound intent packet: the
// seated skater this connection controls, plus the per-tick input
// record itself (spec 6 Intent).
type IntentFrame struct {
	SkaterID  string  `json:"skater_id"`
	Forward   bool    `json:"forward"`
	Back      bool    `json:"back"`
	Left      bool    `json:"left"`
	Right     bool    `json:"right"`
	Sprint    bool    `json:"sprint"`
	Jump      bool    `json:"jump"`
	Rotate    bool    `json:"rotate"`
	Primary   bool    `json:"primary"`
	Secondary bool    `json:"secondary"`
	CameraYaw float64 `json:"camera_yaw"`
}

// Intent converts the wire frame to the core's adapter.Intent.
func (f IntentFrame) Intent() adapter.Intent {
	return adapter.Intent{
		Forward:   f.Forward,
		Back:      f.Back,
		Left:      f.Left,
		Right:     f.Right,
		Sprint:    f.Sprint,
		Jump:      f.Jump,
		Rotate:    f.Rotate,
		Primary:   f.Primary,
		Secondary: f.Secondary,
		CameraYaw: f.CameraYaw,
	}
}

// startReadLoop kicks off the actor's blocking read goroutine once it's
// registered with the Server (mirrors the teacher's pattern of starting
// readLoop only after room assignment, here simplified to "after spawn").
type startReadLoop struct{}

// uiEventMsg/soundMsg are what Server.Broadcast fans out; connectionActor
// encodes them to the client as one JSON envelope each.
type uiEventMsg struct{ ev adapter.UIEvent }
type soundMsg struct{ s adapter.Sound }

// outboundFrame is the wire shape for everything this connection sends
// to its client.
type outboundFrame struct {
	Kind  string          `json:"kind"` // "ui_event" | "sound"
	Event *adapter.UIEvent `json:"event,omitempty"`
	Sound *string         `json:"sound,omitempty"`
}

// connectionActor owns one websocket for its whole lifetime: a
// background goroutine decodes inbound intent frames and forwards them
// to the shared IntentSink, while Receive handles outbound broadcasts
// serialized onto the same connection (so two ticks' worth of outbound
// events never interleave their writes). Grounded on
// server/connection_handler.go's ConnectionHandlerActor, narrowed from
// its room-assignment protocol to direct skater-ID framing.
type connectionActor struct {
	conn   *websocket.Conn
	sink   IntentSink
	closed chan struct{}

	closeOnce sync.Once
}

func (a *connectionActor) Receive(ctx eventbus.Context) {
	switch msg := ctx.Message().(type) {
	case eventbus.Started:
		// No-op: the read loop starts on startReadLoop, once Server has
		// registered this actor's PID in its connection map.

	case startReadLoop:
		go a.readLoop()

	case uiEventMsg:
		a.write(outboundFrame{Kind: "ui_event", Event: &msg.ev})

	case soundMsg:
		name := soundName(msg.s)
		a.write(outboundFrame{Kind: "sound", Sound: &name})

	case eventbus.Stopping:
		a.closeOnce.Do(func() {
			_ = a.conn.Close()
			close(a.closed)
		})
	}
}

func (a *connectionActor) readLoop() {
	defer a.closeOnce.Do(func() { close(a.closed) })
	for {
		var frame IntentFrame
		if err := websocket.JSON.Receive(a.conn, &frame); err != nil {
			return
		}
		if a.sink != nil {
			a.sink(frame)
		}
	}
}

func (a *connectionActor) write(frame outboundFrame) {
	if err := websocket.JSON.Send(a.conn, frame); err != nil {
		fmt.Printf("transport: write to %s failed: %v\n", a.conn.RemoteAddr(), err)
	}
}

func soundName(s adapter.Sound) string {
	names := map[adapter.Sound]string{
		adapter.SoundIceStop:          "ice_stop",
		adapter.SoundGoalieSlide:      "goalie_slide",
		adapter.SoundPuckAttach:       "puck_attach",
		adapter.SoundPassPuck:         "pass_puck",
		adapter.SoundWristShot:        "wrist_shot",
		adapter.SoundStickCheck:       "stick_check",
		adapter.SoundStickCheckMiss:   "stick_check_miss",
		adapter.SoundSwingStick:       "swing_stick",
		adapter.SoundBodyCheck:        "body_check",
		adapter.SoundPuckLeft:         "puck_left",
		adapter.SoundPuckRight:        "puck_right",
		adapter.SoundWhoosh:           "whoosh",
		adapter.SoundGoalHorn:         "goal_horn",
		adapter.SoundRefereeWhistle:   "referee_whistle",
		adapter.SoundCountdown:        "countdown",
	}
	if n, ok := names[s]; ok {
		return n
	}
	return "unknown"
}
