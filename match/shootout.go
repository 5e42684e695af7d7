package match

import (
	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
)

// AdvanceShootout drives the shootout variant (spec 4.4 "Shootout
// variant"): five rounds, two shots per round, alternating
// shooter/goalie, and a 10 s shot timeout. The countdown before every
// shot is the regulation 3-2-1-GO sequence (one CountdownStepDuration
// per step, GO included), and SHOT_LIVE begins only after GO; the GO
// display does not overlap the live shot, and Match.ShootoutCountdown
// is not read.
func AdvanceShootout(m *Match, roster SkaterRoster, p *puck.Puck, rk *rink.Rink, cfg config.Config, now int64, sink events.Sink) {
	switch m.Phase {
	case ShootoutReady:
		m.enterPhase(ShootoutCountdown, now)
		whistle(m, roster, p, rk, cfg, now)

	case ShootoutCountdown:
		stepCountdown(m, cfg, now, sink, func() {
			m.enterPhase(ShotLive, now)
			shooter, _ := shooterGoalie(m)
			sink.Emit(events.ShootoutShotStart{Round: m.ShootoutRound, Shooter: shooter})
		})

	case ShotLive:
		if now-m.PhaseEnterTS >= cfg.Match.ShootoutShotTimeout.Milliseconds() {
			recordShootoutGoal(m, false, sink)
			advanceShootoutRound(m, roster, p, rk, cfg, now, sink)
		}

	case ShotEnd:
		stepTimedLock(m, now, cfg.Match.ShootoutGoDisplay.Milliseconds(), func() {
			advanceShootoutRound(m, roster, p, rk, cfg, now, sink)
		})

	case ShootoutGameOver:
		// Terminal.
	}
}

// recordShootoutGoal appends the just-finished shot's outcome to the
// scoreboard (SPEC_FULL 5: shootout scoreboard snapshotting), emits it
// as a ShootoutRoundResult/ShootoutShotEnd pair for the UI, and moves
// the phase to SHOT_END so the UI briefly shows the result before the
// next shot or round begins.
func recordShootoutGoal(m *Match, scored bool, sink events.Sink) {
	shooter, goalie := shooterGoalie(m)
	m.ShotLog = append(m.ShotLog, ShotResult{
		Round:   m.ShootoutRound,
		Shooter: shooter,
		Goalie:  goalie,
		Scored:  scored,
	})
	if m.Phase != ShotEnd {
		m.Phase = ShotEnd
	}
	sink.Emit(events.ShootoutRoundResult{Round: m.ShootoutRound, Shooter: shooter, Goalie: goalie, Scored: scored})
	sink.Emit(events.ShootoutShotEnd{Round: m.ShootoutRound, Scored: scored})
}

func shooterGoalie(m *Match) (shooter, goalie string) {
	// The concrete player IDs live on the roster, not on Match; callers
	// that need names resolve ShooterTeam against their own roster. The
	// scoreboard records team + round, which is sufficient to
	// reconstruct the log (SPEC_FULL 5).
	return m.ShooterTeam.String(), m.ShooterTeam.Opponent().String()
}

// advanceShootoutRound moves to the next shot (swapping shooter/goalie),
// the next round, or ends the shootout (spec 4.4 diagram).
func advanceShootoutRound(m *Match, roster SkaterRoster, p *puck.Puck, rk *rink.Rink, cfg config.Config, now int64, sink events.Sink) {
	m.ShootoutShotInRound++
	m.ShooterTeam = m.ShooterTeam.Opponent()

	if m.ShootoutShotInRound < cfg.Match.ShootoutShotsPerRound {
		m.enterPhase(ShootoutCountdown, now)
		whistle(m, roster, p, rk, cfg, now)
		return
	}

	m.ShootoutShotInRound = 0
	m.ShootoutRound++
	if m.ShootoutRound > cfg.Match.ShootoutRounds {
		m.Phase = ShootoutGameOver
		sink.Emit(events.MatchPhaseChanged{From: "SHOT_END", To: "SHOOTOUT_GAME_OVER"})
		return
	}
	m.enterPhase(ShootoutCountdown, now)
	whistle(m, roster, p, rk, cfg, now)
}
