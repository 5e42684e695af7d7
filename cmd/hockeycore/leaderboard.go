package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/icehockey/core/stats"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the global goals/assists/hits leaderboard from the stats database",
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	store, err := stats.Open(statsDBPath)
	if err != nil {
		return fmt.Errorf("open stats db: %w", err)
	}
	defer store.Close()

	rows, err := store.GlobalLeaderboard()
	if err != nil {
		return fmt.Errorf("query leaderboard: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Goals != rows[j].Goals {
			return rows[i].Goals > rows[j].Goals
		}
		return rows[i].Assists > rows[j].Assists
	})

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
	table.Header("PLAYER", "G", "A", "PTS", "SHOTS", "SAVES", "HITS", "W", "L", "GP")
	for _, r := range rows {
		table.Append(
			r.PlayerID,
			humanize.Comma(int64(r.Goals)),
			humanize.Comma(int64(r.Assists)),
			humanize.Comma(int64(r.Goals+r.Assists)),
			humanize.Comma(int64(r.Shots)),
			humanize.Comma(int64(r.Saves)),
			humanize.Comma(int64(r.Hits)),
			humanize.Comma(int64(r.Wins)),
			humanize.Comma(int64(r.Losses)),
			humanize.Comma(int64(r.GamesPlayed)),
		)
	}
	table.Render()

	fmt.Printf("\n%d players tracked\n", len(rows))
	return nil
}
