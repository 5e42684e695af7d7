package rink

import (
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// defaultRinkJSON is the built-in rink data file (spec 6: "JSON-style
// static record with rink bounds, blue-line Z values, list of 8 faceoff
// dots ..., two goal trigger boxes ..., and team spawn sets"). A
// deployment may instead call Load with a path to its own file; the
// numeric constants below (spawn Y 1.75, puck Y 1.1) are the bit-exact
// values spec 6 calls out.
const defaultRinkJSON = `{
  "bounds": {"x": 15.0, "y": 6.0, "z": 32.0},
  "blueLines": {"red": -7.62, "blue": 7.62},
  "centerIce": {"x": 0, "y": 1.1, "z": 0},
  "faceoffDots": [
    {"id": "red-def-L",  "x": -7.0, "y": 0, "z": -20.0, "zone": "red",     "side": "left"},
    {"id": "red-def-R",  "x": 7.0,  "y": 0, "z": -20.0, "zone": "red",     "side": "right"},
    {"id": "neu-red-L",  "x": -7.0, "y": 0, "z": -5.0,  "zone": "neutral", "side": "left"},
    {"id": "neu-red-R",  "x": 7.0,  "y": 0, "z": -5.0,  "zone": "neutral", "side": "right"},
    {"id": "neu-blue-L", "x": -7.0, "y": 0, "z": 5.0,   "zone": "neutral", "side": "left"},
    {"id": "neu-blue-R", "x": 7.0,  "y": 0, "z": 5.0,   "zone": "neutral", "side": "right"},
    {"id": "blue-def-L", "x": -7.0, "y": 0, "z": 20.0,  "zone": "blue",    "side": "left"},
    {"id": "blue-def-R", "x": 7.0,  "y": 0, "z": 20.0,  "zone": "blue",    "side": "right"}
  ],
  "goals": [
    {"team": "red",  "x": 0, "y": 1.0, "z": -28.5, "hx": 1.8, "hy": 1.2, "hz": 1.2},
    {"team": "blue", "x": 0, "y": 1.0, "z": 28.5,  "hx": 1.8, "hy": 1.2, "hz": 1.2}
  ],
  "spawns": {
    "red": {
      "goalie": {"x": 0,  "y": 1.75, "z": -27, "yaw": 3.14159265},
      "def1":   {"x": -5, "y": 1.75, "z": -15, "yaw": 3.14159265},
      "def2":   {"x": 5,  "y": 1.75, "z": -15, "yaw": 3.14159265},
      "wing1":  {"x": -6, "y": 1.75, "z": -2,  "yaw": 3.14159265},
      "wing2":  {"x": 6,  "y": 1.75, "z": -2,  "yaw": 3.14159265},
      "center": {"x": 0,  "y": 1.75, "z": -1,  "yaw": 3.14159265}
    },
    "blue": {
      "goalie": {"x": 0,  "y": 1.75, "z": 27, "yaw": 0},
      "def1":   {"x": 5,  "y": 1.75, "z": 15, "yaw": 0},
      "def2":   {"x": -5, "y": 1.75, "z": 15, "yaw": 0},
      "wing1":  {"x": 6,  "y": 1.75, "z": 2,  "yaw": 0},
      "wing2":  {"x": -6, "y": 1.75, "z": 2,  "yaw": 0},
      "center": {"x": 0,  "y": 1.75, "z": 1,  "yaw": 0}
    }
  },
  "shootoutSpawns": {
    "red": {
      "shooter": {"x": 0, "y": 1.75, "z": -10, "yaw": 3.14159265},
      "goalie":  {"x": 0, "y": 1.75, "z": -27, "yaw": 3.14159265}
    },
    "blue": {
      "shooter": {"x": 0, "y": 1.75, "z": 10, "yaw": 0},
      "goalie":  {"x": 0, "y": 1.75, "z": 27, "yaw": 0}
    }
  }
}`

// Default builds the Rink from the built-in data file.
func Default() (*Rink, error) {
	return parse(defaultRinkJSON)
}

// Load reads and parses a rink data file from disk. A validation failure
// here is the one fatal startup error the core recognizes (spec 7).
func Load(path string) (*Rink, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "rink: read data file %q", path)
	}
	r, err := parse(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "rink: invalid data file %q", path)
	}
	return r, nil
}

func parse(doc string) (*Rink, error) {
	if !gjson.Valid(doc) {
		return nil, errors.New("rink: malformed JSON")
	}
	root := gjson.Parse(doc)

	r := &Rink{
		BoundsHalfExtents: vec3(root.Get("bounds")),
		RedBlueLineZ:      root.Get("blueLines.red").Float(),
		BlueBlueLineZ:     root.Get("blueLines.blue").Float(),
		CenterIce:         vec3(root.Get("centerIce")),
		RoleSpawns:        map[Team]map[Role]RoleSpawn{Red: {}, Blue: {}},
		ShootoutSpawns:    map[Team]map[ShootoutRole]RoleSpawn{Red: {}, Blue: {}},
	}

	if r.RedBlueLineZ >= r.BlueBlueLineZ {
		return nil, errors.New("rink: red blue line must be nearer -Z than blue blue line")
	}

	dots := root.Get("faceoffDots").Array()
	if len(dots) != 8 {
		return nil, errors.Errorf("rink: expected 8 faceoff dots, got %d", len(dots))
	}
	for i, d := range dots {
		r.FaceoffDots[i] = FaceoffDot{
			ID:       d.Get("id").String(),
			Position: r3.Vector{X: d.Get("x").Float(), Y: d.Get("y").Float(), Z: d.Get("z").Float()},
			Zone:     parseZone(d.Get("zone").String()),
			Side:     parseSide(d.Get("side").String()),
		}
	}

	goals := root.Get("goals").Array()
	if len(goals) != 2 {
		return nil, errors.Errorf("rink: expected 2 goals, got %d", len(goals))
	}
	for _, g := range goals {
		team := parseTeam(g.Get("team").String())
		r.Goals[team] = GoalVolume{
			Team:        team,
			Center:      r3.Vector{X: g.Get("x").Float(), Y: g.Get("y").Float(), Z: g.Get("z").Float()},
			HalfExtents: r3.Vector{X: g.Get("hx").Float(), Y: g.Get("hy").Float(), Z: g.Get("hz").Float()},
		}
	}

	for _, team := range []Team{Red, Blue} {
		prefix := "spawns." + team.String()
		for roleName, role := range roleNames {
			s := root.Get(lower(prefix) + "." + roleName)
			r.RoleSpawns[team][role] = RoleSpawn{
				Position:  vec3(s),
				FacingYaw: s.Get("yaw").Float(),
			}
		}
		soPrefix := lower("shootoutSpawns." + team.String())
		for _, pair := range []struct {
			name string
			role ShootoutRole
		}{{"shooter", Shooter}, {"goalie", ShootoutGoalie}} {
			s := root.Get(soPrefix + "." + pair.name)
			r.ShootoutSpawns[team][pair.role] = RoleSpawn{
				Position:  vec3(s),
				FacingYaw: s.Get("yaw").Float(),
			}
		}
	}

	return r, nil
}

var roleNames = map[string]Role{
	"goalie": Goalie,
	"def1":   Def1,
	"def2":   Def2,
	"wing1":  Wing1,
	"wing2":  Wing2,
	"center": Center,
}

func vec3(r gjson.Result) r3.Vector {
	return r3.Vector{X: r.Get("x").Float(), Y: r.Get("y").Float(), Z: r.Get("z").Float()}
}

func parseZone(s string) Zone {
	switch s {
	case "red":
		return RedDefensive
	case "blue":
		return BlueDefensive
	default:
		return Neutral
	}
}

func parseSide(s string) Side {
	switch s {
	case "left":
		return LeftSide
	case "right":
		return RightSide
	default:
		return CenterSide
	}
}

func parseTeam(s string) Team {
	if s == "blue" {
		return Blue
	}
	return Red
}

func lower(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c + ('a' - 'A')
		}
	}
	return string(out)
}
