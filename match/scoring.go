package match

import (
	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
)

// DetectGoal samples the puck against both goal volumes at the
// goal/boundary sampling rate (spec 4.4 "runs at the tick-loop rate
// (~20 Hz)"). On a hit it resolves own-goal vs clean goal, attributes
// scorer/assists from touch_history, updates the score, and moves the
// match into GOAL_SCORED. Returns false if no goal this sample.
func DetectGoal(m *Match, p *puck.Puck, rk *rink.Rink, cfg config.Config, now int64, sink events.Sink) bool {
	if m.Phase != InPeriod && m.Phase != ShotLive {
		return false
	}

	var conceding rink.Team
	var hit bool
	for _, team := range []rink.Team{rink.Red, rink.Blue} {
		if rk.OwnGoal(team).Contains(p.Position) {
			conceding = team
			hit = true
			break
		}
	}
	if !hit {
		return false
	}

	scoringTeam := conceding.Opponent()
	ownGoal := isOwnGoal(p, conceding, cfg.Match.OwnGoalWindow.Milliseconds(), now)
	scorerID, primary, secondary := attribute(p, scoringTeam, cfg.Match.GoalAttributionWindow.Milliseconds(), now)

	from := m.Phase.String()

	if m.Mode == Shootout {
		recordShootoutGoal(m, true, sink)
		sink.Emit(events.MatchPhaseChanged{From: from, To: m.Phase.String()})
		return true
	}

	if scoringTeam == rink.Red {
		m.RedScore++
	} else {
		m.BlueScore++
	}

	m.enterPhase(GoalScored, now)
	sink.Emit(events.GoalScored{
		ScoringTeam:     scoringTeam.String(),
		OwnGoal:         ownGoal,
		ScorerID:        scorerID,
		PrimaryAssistID: primary,
		SecondaryAssist: secondary,
		RedScore:        m.RedScore,
		BlueScore:       m.BlueScore,
	})
	sink.Emit(events.MatchPhaseChanged{From: from, To: "GOAL_SCORED"})
	return true
}

// isOwnGoal reports whether the conceding team's own player was the
// freshest toucher and the scoring team never touched the puck within
// the own-goal window (spec 4.4 "An own goal is detected when the
// puck's last-touching player belongs to the scored-upon team and the
// scoring team has no touch within the own-goal-window").
func isOwnGoal(p *puck.Puck, conceding rink.Team, windowMS int64, now int64) bool {
	if len(p.TouchHistory) == 0 || p.TouchHistory[0].Team != conceding {
		return false
	}
	for _, t := range p.TouchHistory {
		if t.Team == conceding.Opponent() && now-t.TS <= windowMS {
			return false
		}
	}
	return true
}

// attribute names the scorer and up to two assists from the scoring
// team's freshest touches in touch_history within the attribution
// window (spec 4.4). The scorer is the team's most recent toucher; the
// primary/secondary assists are the next two distinct scoring-team
// touches before that, most recent first.
func attribute(p *puck.Puck, scoringTeam rink.Team, windowMS int64, now int64) (scorer, primary, secondary string) {
	var chain []string
	for _, t := range p.TouchHistory {
		if t.Team != scoringTeam || now-t.TS > windowMS {
			continue
		}
		if len(chain) > 0 && chain[len(chain)-1] == t.PlayerID {
			continue
		}
		chain = append(chain, t.PlayerID)
		if len(chain) == 3 {
			break
		}
	}
	switch len(chain) {
	case 1:
		return chain[0], "", ""
	case 2:
		return chain[0], chain[1], ""
	case 3:
		return chain[0], chain[1], chain[2]
	default:
		return "", "", ""
	}
}
