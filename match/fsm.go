package match

import (
	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
)

// Advance drives the regulation state machine one tick forward: it steps
// the match clock, resolves countdowns, and fires the whistle sequence
// on every locked-phase entry (spec 4.4, 4.5 stage (b) "advance Match
// state machine"). Shootout matches are driven by AdvanceShootout
// instead. Goals and boundary violations are detected separately by
// DetectGoal (scoring.go) and DetectBoundary (boundary.go), which move
// the phase into GOAL_SCORED / BOUNDARY_RESET themselves.
func Advance(m *Match, roster SkaterRoster, p *puck.Puck, rk *rink.Rink, cfg config.Config, now int64, sink events.Sink) {
	switch m.Phase {
	case Lobby, TeamSelection, WaitingForPlayers:
		// External callers move these forward explicitly (player join /
		// team-select / ready-check are outside the tick loop's concern).
		return

	case CountdownToStart:
		stepCountdown(m, cfg, now, sink, func() {
			m.enterPhase(InPeriod, now)
			m.TimerRunning = true
		})

	case MatchStart:
		// MATCH_START is a momentary trigger phase: the whistle fires the
		// instant it is first observed, then play drops into the visible
		// COUNTDOWN_TO_START lock until GO.
		whistle(m, roster, p, rk, cfg, now)
		m.enterPhase(CountdownToStart, now)

	case InPeriod:
		if m.TimerRunning {
			m.TimerRemainingMS -= cfg.SkaterTickPeriod.Milliseconds()
			if m.TimerRemainingMS <= 0 {
				m.TimerRemainingMS = 0
				m.TimerRunning = false
				RequestPeriodEnd(m, roster, p, rk, cfg, now, sink)
			}
		}

	case GoalScored:
		stepTimedLock(m, now, cfg.Match.GoalCelebrationDuration.Milliseconds(), func() {
			m.enterPhase(CountdownToStart, now)
			whistle(m, roster, p, rk, cfg, now)
		})

	case BoundaryReset:
		stepTimedLock(m, now, cfg.Match.GoalCelebrationDuration.Milliseconds(), func() {
			m.enterPhase(CountdownToStart, now)
			whistle(m, roster, p, rk, cfg, now)
		})

	case PeriodEnd:
		stepTimedLock(m, now, cfg.Match.GoalCelebrationDuration.Milliseconds(), func() {
			if m.PeriodNumber >= m.TotalPeriods {
				m.Phase = GameOver
				sink.Emit(events.MatchPhaseChanged{From: "PERIOD_END", To: "GAME_OVER"})
				return
			}
			m.enterPhase(CountdownToStart, now)
			whistle(m, roster, p, rk, cfg, now)
		})

	case GameOver:
		// Terminal; a new Match must be constructed to play again.
	}
}

// stepTimedLock fires 'then' once durationMS has elapsed since the phase
// was entered.
func stepTimedLock(m *Match, now int64, durationMS int64, then func()) {
	if now-m.PhaseEnterTS >= durationMS {
		then()
	}
}

// stepCountdown runs the shared 3-2-1-GO sequence (spec 4.4
// "COUNTDOWN_TO_START -> MATCH_START (3-2-1-GO)"), one step per
// cfg.Match.CountdownStepDuration, then invokes resume.
func stepCountdown(m *Match, cfg config.Config, now int64, sink events.Sink, resume func()) {
	elapsed := now - m.PhaseEnterTS
	step := cfg.Match.CountdownStepDuration.Milliseconds()
	target := 3 - int(elapsed/step)
	if target < 0 {
		target = 0
	}
	if target != m.CountdownStep {
		m.CountdownStep = target
		sink.Emit(events.CountdownUpdate{N: target})
	}
	if elapsed >= step*4 { // 3,2,1,GO each hold one step
		resume()
	}
}

// RequestPeriodStart moves a freshly-filled lobby (or post-intermission)
// match into its whistle sequence (spec 4.4 "min threshold met OR all 12
// locked" -> COUNTDOWN_TO_START).
func RequestPeriodStart(m *Match, cfg config.Config, now int64, sink events.Sink) {
	from := m.Phase.String()
	m.PeriodNumber++
	m.TimerRemainingMS = periodDurationMS(cfg)
	m.enterPhase(MatchStart, now)
	sink.Emit(events.MatchPhaseChanged{From: from, To: "MATCH_START"})
}

// RequestPeriodEnd moves IN_PERIOD into PERIOD_END and runs the whistle.
func RequestPeriodEnd(m *Match, roster SkaterRoster, p *puck.Puck, rk *rink.Rink, cfg config.Config, now int64, sink events.Sink) {
	from := m.Phase.String()
	m.enterPhase(PeriodEnd, now)
	whistle(m, roster, p, rk, cfg, now)
	sink.Emit(events.MatchPhaseChanged{From: from, To: "PERIOD_END"})
}

func periodDurationMS(cfg config.Config) int64 {
	// Regulation period length is a deployment choice, not a spec
	// constant; 20 minutes of game clock is the conventional default.
	return 20 * 60 * 1000
}
