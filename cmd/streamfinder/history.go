// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/streamfinder/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent recorded runs",
	Long: `History lists runs recorded in the SQLite history store, newest first,
with per-run venue coverage. Recording is off by default; enable it with
history.enabled in the config file.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Printf("%-6s  %-20s  %-10s  %s\n", "Run", "Generated", "Assigned", "Venues")
	fmt.Println(strings.Repeat("-", 80))

	for _, r := range runs {
		venues := make([]string, 0, len(r.Streams))
		for _, st := range r.Streams {
			venues = append(venues, st.VenueID)
		}
		fmt.Printf("%-6d  %-20s  %-10s  %s\n",
			r.ID,
			r.GeneratedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", r.AssignedCount, r.TotalVenues),
			strings.Join(venues, ","))
	}
	return nil
}
