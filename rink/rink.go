// Package rink implements the static geometry and zone classification
// described in spec section 4.1: rink bounds, blue lines, faceoff dots,
// goal trigger volumes, and center ice. All queries here are pure and
// stateless, the way the teacher's game.Canvas/Grid answer geometry
// questions without mutating shared state.
package rink

import "github.com/golang/geo/r3"

// Team identifies one of the two sides.
type Team int

const (
	Red Team = iota
	Blue
)

func (t Team) String() string {
	if t == Red {
		return "RED"
	}
	return "BLUE"
}

func (t Team) Opponent() Team {
	if t == Red {
		return Blue
	}
	return Red
}

// Zone is the Z-axis classification of a point relative to the blue lines.
type Zone int

const (
	RedDefensive Zone = iota
	Neutral
	BlueDefensive
)

// Side is which lateral half of a zone a faceoff dot sits on.
type Side int

const (
	CenterSide Side = iota
	LeftSide
	RightSide
)

// FaceoffDot is one of the eight fixed faceoff spots.
type FaceoffDot struct {
	ID       string
	Position r3.Vector
	Zone     Zone
	Side     Side
}

// GoalVolume is an axis-aligned trigger box centered on Center with the
// given half-extents, owned by Team (the team defending that goal — a
// puck entering Team's own GoalVolume means the *other* team scores).
type GoalVolume struct {
	Team        Team
	Center      r3.Vector
	HalfExtents r3.Vector
}

// Contains reports whether p lies inside the goal's axis-aligned box.
func (g GoalVolume) Contains(p r3.Vector) bool {
	d := p.Sub(g.Center)
	return abs(d.X) <= g.HalfExtents.X &&
		abs(d.Y) <= g.HalfExtents.Y &&
		abs(d.Z) <= g.HalfExtents.Z
}

// RoleSpawn is where and which way a seated player's role faces at a
// regulation faceoff/whistle teleport.
type RoleSpawn struct {
	Position r3.Vector
	FacingYaw float64
}

// Rink is the immutable static geometry for one ice surface. It is built
// once at world init (via Load or Default) and never mutated afterward.
type Rink struct {
	// BoundsHalfExtents is the generous out-of-bounds bounding box, centered on
	// origin, used by the boundary watchdog (spec 4.4).
	BoundsHalfExtents r3.Vector

	// RedBlueLineZ and BlueBlueLineZ are the Z coordinates of the two
	// blue lines; Red defends negative Z beyond RedBlueLineZ? No —
	// by convention (spec 6: "red team faces +Z; blue team faces -Z")
	// the red blue line is the one nearer red's own goal (negative Z)
	// and the blue team's blue line is nearer blue's own goal
	// (positive Z); RedBlueLineZ < BlueBlueLineZ.
	RedBlueLineZ  float64
	BlueBlueLineZ float64

	FaceoffDots [8]FaceoffDot
	Goals       [2]GoalVolume // indexed by Team

	CenterIce r3.Vector // puck spawn point, Y = 1.1 per spec 6

	// RoleSpawns[team][role] gives the regulation faceoff spawn for a
	// seated player; ShootoutSpawns gives shooter/goalie spawns.
	RoleSpawns     map[Team]map[Role]RoleSpawn
	ShootoutSpawns map[Team]map[ShootoutRole]RoleSpawn
}

// Role is a seated skater's assignment.
type Role int

const (
	Goalie Role = iota
	Def1
	Def2
	Wing1
	Wing2
	Center
)

// ShootoutRole distinguishes the two shootout participants.
type ShootoutRole int

const (
	Shooter ShootoutRole = iota
	ShootoutGoalie
)

// ClassifyZone returns the zone a world point falls in, based solely on
// its Z coordinate against the two blue lines.
func (r *Rink) ClassifyZone(p r3.Vector) Zone {
	switch {
	case p.Z <= r.RedBlueLineZ:
		return RedDefensive
	case p.Z >= r.BlueBlueLineZ:
		return BlueDefensive
	default:
		return Neutral
	}
}

// NearestFaceoffDot returns the dot in the given zone closest to the
// given lateral side. If no dot matches the side exactly, the first dot
// listed for that zone is returned; no distance comparison is made.
func (r *Rink) NearestFaceoffDot(zone Zone, side Side) FaceoffDot {
	var best FaceoffDot
	found := false
	for _, d := range r.FaceoffDots {
		if d.Zone != zone {
			continue
		}
		if d.Side == side {
			return d
		}
		if !found {
			best = d
			found = true
		}
	}
	return best
}

// GoalFor returns the trigger volume that the given team shoots at, i.e.
// the opponent's goal.
func (r *Rink) GoalFor(team Team) GoalVolume {
	return r.Goals[team.Opponent()]
}

// OwnGoal returns the trigger volume that the given team defends.
func (r *Rink) OwnGoal(team Team) GoalVolume {
	return r.Goals[team]
}

// OutOfBounds reports whether p lies outside the generous rink bounding
// box, used by the boundary watchdog (spec 4.4) to trigger a center-ice
// reset.
func (r *Rink) OutOfBounds(p r3.Vector) bool {
	return abs(p.X) > r.BoundsHalfExtents.X ||
		abs(p.Z) > r.BoundsHalfExtents.Z ||
		p.Y < -r.BoundsHalfExtents.Y || p.Y > r.BoundsHalfExtents.Y
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
