// Package match is the Game Flow Orchestrator (spec 4.4): the regulation
// and shootout state machines, whistle sequencing (freeze, teleport,
// puck reset, timer pause/resume, countdown), goal/own-goal detection
// and attribution, and the boundary watchdog. Grounded on the teacher's
// GameActor as the one component that owns a match's life cycle end to
// end, generalized from "round of bricks" phases to a regulation hockey
// match plus its shootout variant.
package match

import (
	"github.com/oklog/ulid/v2"

	"github.com/icehockey/core/config"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
	"github.com/icehockey/core/skater"
)

// Phase is one state of the regulation or shootout match state machine
// (spec 4.4).
type Phase int

const (
	Lobby Phase = iota
	TeamSelection
	WaitingForPlayers
	CountdownToStart
	MatchStart
	InPeriod
	GoalScored
	BoundaryReset
	PeriodEnd
	GameOver

	ShootoutReady
	ShootoutCountdown
	ShotLive
	ShotEnd
	ShootoutGameOver
)

func (p Phase) String() string {
	switch p {
	case Lobby:
		return "LOBBY"
	case TeamSelection:
		return "TEAM_SELECTION"
	case WaitingForPlayers:
		return "WAITING_FOR_PLAYERS"
	case CountdownToStart:
		return "COUNTDOWN_TO_START"
	case MatchStart:
		return "MATCH_START"
	case InPeriod:
		return "IN_PERIOD"
	case GoalScored:
		return "GOAL_SCORED"
	case BoundaryReset:
		return "BOUNDARY_RESET"
	case PeriodEnd:
		return "PERIOD_END"
	case GameOver:
		return "GAME_OVER"
	case ShootoutReady:
		return "SHOOTOUT_READY"
	case ShootoutCountdown:
		return "SHOOTOUT_COUNTDOWN"
	case ShotLive:
		return "SHOT_LIVE"
	case ShotEnd:
		return "SHOT_END"
	case ShootoutGameOver:
		return "SHOOTOUT_GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Mode distinguishes a regulation match from the two-player shootout
// variant (spec 4.4 "Shootout variant").
type Mode int

const (
	Regulation Mode = iota
	Shootout
)

// ShotResult records one shootout attempt for the scoreboard snapshot
// (SPEC_FULL 5: "shootout scoreboard snapshotting").
type ShotResult struct {
	Round    int
	Shooter  string
	Goalie   string
	Scored   bool
}

// Match owns one game's life cycle: phase, score, clock, and — when in
// Shootout mode — the round/shot bookkeeping. It holds no roster of its
// own; the tick loop supplies skaters via the SkaterRoster interface so
// Match never owns mutable entity state it did not create.
type Match struct {
	ID   string
	Mode Mode

	Phase        Phase
	PhaseEnterTS int64

	PeriodNumber  int
	TotalPeriods  int
	RedScore      int
	BlueScore     int

	TimerRemainingMS int64
	TimerRunning     bool

	CountdownStep int // counts down 3,2,1,0(GO)

	// Shootout bookkeeping.
	ShootoutRound       int
	ShootoutShotInRound int
	ShooterTeam         rink.Team
	ShotLog             []ShotResult

	BoundaryIdleSinceTS int64
}

// New creates a fresh regulation match in LOBBY.
func New(totalPeriods int, periodDurationMS int64) *Match {
	return &Match{
		ID:                  ulid.Make().String(),
		Mode:                Regulation,
		Phase:               Lobby,
		TotalPeriods:        totalPeriods,
		TimerRemainingMS:    periodDurationMS,
		BoundaryIdleSinceTS: -1,
	}
}

// NewShootout creates a fresh shootout match between exactly two players
// (spec 4.4 "After mode lock to SHOOTOUT with exactly two players").
func NewShootout() *Match {
	return &Match{
		ID:                  ulid.Make().String(),
		Mode:                Shootout,
		Phase:               ShootoutReady,
		ShootoutRound:       1,
		BoundaryIdleSinceTS: -1,
	}
}

// Locked reports whether skater movement is frozen this phase (I5, P4):
// "During GOAL_SCORED/MATCH_START/PERIOD_END, every skater's horizontal
// speed stays < 1e-3" — extended here to every whistle-driven phase,
// including the pre-game and shootout countdowns, since they all run the
// same freeze/teleport sequence.
func (m *Match) Locked() bool {
	switch m.Phase {
	case CountdownToStart, MatchStart, GoalScored, BoundaryReset, PeriodEnd,
		ShootoutCountdown, ShotEnd:
		return true
	default:
		return false
	}
}

// SkaterRoster lets the orchestrator iterate every seated skater without
// owning the roster itself — the tick loop does (mirrors skater.Roster's
// decoupling for the same reason).
type SkaterRoster interface {
	ForEach(fn func(*skater.Skater))
}

// enterPhase transitions to 'to', stamping the entry timestamp and
// resetting the countdown step. Centralizing this avoids the scattered
// "set phase, forget to reset the timer" bug class.
func (m *Match) enterPhase(to Phase, now int64) {
	m.Phase = to
	m.PhaseEnterTS = now
	m.CountdownStep = 3
}

// whistle freezes the match, releases and re-centers the puck, and
// teleports every skater to its regulation or shootout spawn facing the
// opposing goal (spec 4.4 "Whistle semantics" steps 1-3; the spawn yaw
// baked into the rink data already points each role at the opponent's
// net, satisfying "set facing to the opposing goal" without a separate
// look-at computation).
func whistle(m *Match, roster SkaterRoster, p *puck.Puck, rk *rink.Rink, cfg config.Config, now int64) {
	p.ResetToCenter(rk.CenterIce)

	roster.ForEach(func(s *skater.Skater) {
		var spawn rink.RoleSpawn
		if m.Mode == Shootout {
			role := shootoutRoleOf(m, s.Team)
			spawn = rk.ShootoutSpawns[s.Team][role]
		} else {
			spawn = rk.RoleSpawns[s.Team][s.Role]
		}
		s.Teleport(spawn.Position, spawn.FacingYaw, now, cfg.Match.FaceoffRotationPreserve.Milliseconds())
	})
}

func shootoutRoleOf(m *Match, team rink.Team) rink.ShootoutRole {
	if team == m.ShooterTeam {
		return rink.Shooter
	}
	return rink.ShootoutGoalie
}
