package main

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/websocket"

	"github.com/icehockey/core/config"
	"github.com/icehockey/core/eventbus"
	"github.com/icehockey/core/match"
	"github.com/icehockey/core/puck"
	"github.com/icehockey/core/rink"
	"github.com/icehockey/core/simengine"
	"github.com/icehockey/core/skater"
	"github.com/icehockey/core/stats"
	"github.com/icehockey/core/tick"
	"github.com/icehockey/core/transport"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run one 6v6 match, accepting websocket connections per seat",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "http listen port")
}

// seatRoster fills every one of the twelve regulation roles for both
// teams at its RoleSpawns faceoff position (spec 4.4 "min threshold met
// OR all 12 locked"), the way a real deployment's matchmaking would once
// every seat is claimed — simplified here to seating all twelve upfront
// since this demo has no lobby/matchmaking layer in front of it.
func seatRoster(roster *tick.Roster, eng *simengine.Engine, rk *rink.Rink, cfg config.Config) {
	roles := []rink.Role{rink.Goalie, rink.Def1, rink.Def2, rink.Wing1, rink.Wing2, rink.Center}
	for _, team := range []rink.Team{rink.Red, rink.Blue} {
		for _, role := range roles {
			spawn := rk.RoleSpawns[team][role]
			id := fmt.Sprintf("%s-%d", team.String(), role)
			handle := id + "-handle"
			s := skater.New(id, team, role, handle, cfg.Ice.MinSpeedFactor)
			s.Position = spawn.Position
			s.FacingYaw = spawn.FacingYaw
			eng.Spawn(handle, spawn.Position)
			eng.SetRotation(handle, spawn.FacingYaw)
			roster.Add(s)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	rk, err := rink.Default()
	if err != nil {
		return fmt.Errorf("load rink: %w", err)
	}

	cfg := config.Default()
	m := match.New(3, 20*60*1000)

	eng := simengine.New()
	puckHandle := "puck-handle"
	eng.Spawn(puckHandle, rk.CenterIce)
	p := puck.New(puckHandle, 0.17, rk.CenterIce)

	roster := tick.NewRoster()
	seatRoster(roster, eng, rk, cfg)

	store, err := stats.Open(statsDBPath)
	if err != nil {
		return fmt.Errorf("open stats db: %w", err)
	}
	defer store.Close()

	busEngine := eventbus.NewEngine()
	defer busEngine.Shutdown(5 * time.Second)
	persistence := stats.NewAdapter(busEngine, store)

	var mu sync.Mutex
	intents := make(tick.Intents)
	wsServer := transport.New(busEngine, func(frame transport.IntentFrame) {
		mu.Lock()
		intents[frame.SkaterID] = frame.Intent()
		mu.Unlock()
	})

	core := tick.NewCore(rk, m, p, roster, cfg, eng, wsServer.UI(), wsServer.Audio(), persistence, time.Now().UnixNano())

	http.Handle("/subscribe", websocket.Handler(wsServer.Handler()))
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	listenAddr := ":" + servePort
	fmt.Printf("hockeycore: serving on %s, stats db %s\n", listenAddr, statsDBPath)

	go runTickLoop(core, eng, &mu, intents, cfg)

	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		fmt.Fprintln(os.Stderr, "hockeycore: server stopped:", err)
		return err
	}
	return nil
}

// runTickLoop drives the fixed-period simulation clock (spec 5 "single
// threaded cooperative tick loop"), snapshotting the latest intent per
// skater at the top of every tick and stepping the kinematic world
// immediately before handing control to core.RunTick.
func runTickLoop(core *tick.Core, eng *simengine.Engine, mu *sync.Mutex, live tick.Intents, cfg config.Config) {
	period := cfg.SkaterTickPeriod
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		dt := now.Sub(last).Seconds()
		last = now

		mu.Lock()
		snapshot := make(tick.Intents, len(live))
		for id, in := range live {
			snapshot[id] = in
		}
		mu.Unlock()

		eng.Step(dt)
		core.RunTick(now.UnixNano()/int64(time.Millisecond), dt, snapshot)
	}
}
