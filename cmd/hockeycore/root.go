// Command hockeycore hosts the gameplay simulation core behind a demo
// websocket transport and exposes its persisted stats on the command
// line. Structured as a cobra root with serve/leaderboard subcommands,
// the way the rest of the pack's CLI-fronted services are shaped,
// generalized from the teacher's flat main.go (flag-free, single
// http.ListenAndServe call) into named subcommands with their own flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsDBPath string

var rootCmd = &cobra.Command{
	Use:   "hockeycore",
	Short: "Real-time 6v6 ice hockey gameplay simulation core",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&statsDBPath, "stats-db", "hockeycore-stats.db", "path to the stat persistence database")
	rootCmd.AddCommand(serveCmd, leaderboardCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
