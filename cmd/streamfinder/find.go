// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/streamfinder/internal/config"
	"github.com/mesh-intelligence/streamfinder/internal/finder"
	"github.com/mesh-intelligence/streamfinder/internal/history"
	"github.com/mesh-intelligence/streamfinder/internal/provider"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Run the full pipeline and write the stream assignments",
	Long: `Find issues the bulk search queries, matches candidates to venues with
trusted-channel priority, filters by quality, runs fallback searches for
venues the bulk pass missed, and writes the final assignment list as a
JSON artifact. Failed queries degrade to fewer candidates; only a broken
venue file aborts the run.`,
	RunE: runFind,
}

func init() {
	findCmd.Flags().String("venues", "", "venue configuration file (overrides config)")
	findCmd.Flags().String("output", "", "output JSON path (overrides config)")
	findCmd.Flags().Bool("json", false, "print the output JSON to stdout")
	findCmd.Flags().Bool("dry-run", false, "run without writing the artifact or history")

	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if v, _ := cmd.Flags().GetString("venues"); v != "" {
		cfg.VenuesFile = v
	}
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		cfg.Output.Path = o
	}
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	vf, err := config.Load(cfg.VenuesFile)
	if err != nil {
		return err
	}

	f, err := finder.New(provider.NewYouTube(cfg.Search), vf.Venues, vf.Filters, vf.GlobalSearchQueries, cfg.Search)
	if err != nil {
		return err
	}

	out, err := f.Run(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	data = append(data, '\n')

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		os.Stdout.Write(data)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return nil
	}

	if err := os.WriteFile(cfg.Output.Path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "output written to %s\n", cfg.Output.Path)

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := store.Record(cmd.Context(), out); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}
	return nil
}
