package match

import (
	"github.com/golang/geo/r3"

	"github.com/icehockey/core/config"
	"github.com/icehockey/core/events"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
)

// DetectBoundary is the boundary watchdog (spec 4.4): if the puck
// leaves the generous rink bounding box, or sits motionless below the
// ice for more than the configured timeout, it triggers a
// whistle-equivalent reset to center ice. During IN_PERIOD this pauses
// and resumes the timer exactly like a goal (it routes through the same
// GOAL_SCORED-style lock, relabeled here as a reset rather than a
// score, since no team's tally changes).
func DetectBoundary(m *Match, p *puck.Puck, roster SkaterRoster, rk *rink.Rink, cfg config.Config, now int64, sink events.Sink) bool {
	if m.Phase != InPeriod && m.Phase != ShotLive {
		m.BoundaryIdleSinceTS = -1
		return false
	}

	below := p.Position.Y < 0 // ice surface plane; below it without leaving the generous box entirely
	outside := rk.OutOfBounds(p.Position)
	motionless := horizontalNorm(p.Velocity) < 1e-3

	if below && motionless {
		if m.BoundaryIdleSinceTS < 0 {
			m.BoundaryIdleSinceTS = now
		}
	} else if !outside {
		m.BoundaryIdleSinceTS = -1
	}

	idleExpired := m.BoundaryIdleSinceTS >= 0 && now-m.BoundaryIdleSinceTS > cfg.Boundary.OutOfBoundsTimeout.Milliseconds()
	if !outside && !idleExpired {
		return false
	}

	m.BoundaryIdleSinceTS = -1
	from := m.Phase.String()
	m.enterPhase(BoundaryReset, now)
	sink.Emit(events.BoundaryViolation{EntityID: "puck", IsPuck: true})
	sink.Emit(events.MatchPhaseChanged{From: from, To: m.Phase.String()})
	whistle(m, roster, p, rk, cfg, now)
	return true
}

func horizontalNorm(v r3.Vector) float64 {
	v.Y = 0
	return v.Norm()
}
