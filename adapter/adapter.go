// Package adapter defines the external interfaces the simulation core
// consumes and produces (spec section 6). The core never depends on a
// concrete physics engine, audio system, or UI transport — only on these
// contracts, the way the teacher's GameActor depends on the
// PlayerConnection interface instead of a concrete *websocket.Conn.
package adapter

import "github.com/golang/geo/r3"

// EntityHandle is an opaque reference into the host engine's world. The
// core never holds a long-lived back-pointer into engine state (spec 9):
// it re-validates EntitySpawned before every write.
type EntityHandle interface{}

// Engine is the required host-engine adapter (spec 6). All calls are
// synchronous; the core calls them from within its own tick and never
// awaits them.
type Engine interface {
	SetVelocity(e EntityHandle, v r3.Vector)
	SetRotation(e EntityHandle, yaw float64)
	SetPosition(e EntityHandle, p r3.Vector)
	ApplyImpulse(e EntityHandle, impulse r3.Vector)
	ApplyTorqueImpulse(e EntityHandle, torque r3.Vector)
	EntitySpawned(e EntityHandle) bool
	LinearVelocity(e EntityHandle) r3.Vector
	Position(e EntityHandle) r3.Vector
}

// Intent is one player's per-tick input record (spec 6). CameraYaw is in
// radians, 0 toward -Z.
type Intent struct {
	Forward   bool
	Back      bool
	Left      bool
	Right     bool
	Sprint    bool
	Jump      bool
	Rotate    bool
	Primary   bool
	Secondary bool
	CameraYaw float64
}

// UIEventKind enumerates the bounded outbound UI event set (spec 6).
type UIEventKind int

const (
	GameWaiting UIEventKind = iota
	CountdownUpdate
	CountdownGo
	GoalScored
	PeriodEnd
	MatchOver
	ShootoutScoreboard
	ShootoutShotStart
	ShootoutShotEnd
	BodyCheckAvailable
	HockeyStopCooldown
	GoalieSlideCooldown
	SpinCooldown
	GoaliePassCountdown
	PuckControl
	Notification
	StatsUpdate
)

// UIEvent is one outbound event to the UI transport.
type UIEvent struct {
	Kind UIEventKind

	// Populated depending on Kind; zero-valued fields are simply unused.
	N            int     // CountdownUpdate
	Subtitle     string  // CountdownUpdate
	Team         string  // GoalScored
	OwnGoal      bool    // GoalScored
	Scorer       string  // GoalScored
	PrimaryAssist   string // GoalScored
	SecondaryAssist string // GoalScored
	Available    bool    // BodyCheckAvailable, PuckControl
	RemainingMS  int64   // *Cooldown, GoaliePassCountdown
	Text         string  // Notification
	Round        int     // ShootoutScoreboard, ShootoutShotStart, ShootoutShotEnd
	Shooter      string  // ShootoutScoreboard, ShootoutShotStart
	Goalie       string  // ShootoutScoreboard
	Scored       bool    // ShootoutScoreboard, ShootoutShotEnd
	StatPlayerID string  // StatsUpdate
	StatKind     StatKind // StatsUpdate
}

// Sound is a pooled sound ID the audio adapter plays on request (spec 6).
// The core only asks for a sound to play; it never owns playback.
type Sound int

const (
	SoundIceStop Sound = iota
	SoundGoalieSlide
	SoundPuckAttach
	SoundPassPuck
	SoundWristShot
	SoundStickCheck
	SoundStickCheckMiss
	SoundSwingStick
	SoundBodyCheck
	SoundPuckLeft
	SoundPuckRight
	SoundWhoosh
	SoundGoalHorn
	SoundRefereeWhistle
	SoundCountdown
)

// Audio is the outbound audio-trigger adapter.
type Audio interface {
	Play(s Sound)
}

// UI is the outbound UI transport adapter.
type UI interface {
	Publish(ev UIEvent)
}

// StatKind enumerates the stat_event kinds emitted for persistence (spec 6).
type StatKind int

const (
	StatGoal StatKind = iota
	StatAssist
	StatShot
	StatSave
	StatHit
	StatWin
	StatLoss
	StatGamePlayed
)

func (k StatKind) String() string {
	switch k {
	case StatGoal:
		return "goal"
	case StatAssist:
		return "assist"
	case StatShot:
		return "shot"
	case StatSave:
		return "save"
	case StatHit:
		return "hit"
	case StatWin:
		return "win"
	case StatLoss:
		return "loss"
	case StatGamePlayed:
		return "game_played"
	default:
		return "unknown"
	}
}

// StatEvent is one persistence-bound record (spec 6).
type StatEvent struct {
	ID       string
	Kind     StatKind
	PlayerID string
	TS       int64 // monotonic milliseconds at emission time
}

// PlayerStats is one row of the leaderboard query path.
type PlayerStats struct {
	PlayerID    string
	Goals       int
	Assists     int
	Shots       int
	Saves       int
	Hits        int
	Wins        int
	Losses      int
	GamesPlayed int
}

// Persistence is the stat persistence adapter (spec 6). Opaque storage
// layout; the core only ever emits events and queries the leaderboard.
type Persistence interface {
	RecordStatEvent(ev StatEvent) error
	GlobalLeaderboard() ([]PlayerStats, error)
}
