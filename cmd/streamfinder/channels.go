// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/mesh-intelligence/streamfinder/internal/config"
	"github.com/mesh-intelligence/streamfinder/internal/httputil"
	"github.com/mesh-intelligence/streamfinder/internal/provider"
	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Inspect and maintain trusted channels",
}

// --- resolve subcommand ---

var channelsResolveCmd = &cobra.Command{
	Use:   "resolve <video-id>...",
	Short: "Resolve channel details from known-good video IDs",
	Long: `Resolve looks up each video ID and emits its channel as a YAML
trusted-channel snippet, ready to paste into a venue's trusted_channels
list. Use it when curating the venue file from streams known to be good.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChannelsResolve,
}

func runChannelsResolve(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	yt := provider.NewYouTube(cfg.Search)
	details, err := yt.Lookup(cmd.Context(), args)
	if err != nil {
		return err
	}

	var channels []types.TrustedChannel
	seen := make(map[string]bool)
	for _, id := range args {
		d, ok := details[id]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: video %s not found\n", id)
			continue
		}
		if d.ChannelID == "" || seen[d.ChannelID] {
			continue
		}
		seen[d.ChannelID] = true
		channels = append(channels, types.TrustedChannel{
			ID:   d.ChannelID,
			Name: d.ChannelName,
			URL:  d.ChannelURL(),
		})
	}

	if len(channels) == 0 {
		return fmt.Errorf("no channels resolved from %d video id(s)", len(args))
	}

	data, err := yaml.Marshal(channels)
	if err != nil {
		return fmt.Errorf("encoding channels: %w", err)
	}
	os.Stdout.Write(data)
	return nil
}

// --- probe subcommand ---

var channelsProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Report which trusted channels are live right now",
	Long: `Probe runs a channel-scoped live search for every trusted channel in the
venue file and reports which are currently streaming. A diagnostic for
the venue configuration; it does not assign anything.`,
	RunE: runChannelsProbe,
}

func runChannelsProbe(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	venuesFile, _ := cmd.Flags().GetString("venues")
	if venuesFile == "" {
		venuesFile = cfg.VenuesFile
	}
	vf, err := config.Load(venuesFile)
	if err != nil {
		return err
	}

	yt := provider.NewYouTube(cfg.Search)
	pacer := httputil.NewPacer()
	ctx := cmd.Context()

	for _, venue := range vf.Venues {
		if len(venue.TrustedChannels) == 0 {
			continue
		}
		fmt.Printf("%s:\n", venue.Name)

		for _, ch := range venue.TrustedChannels {
			if err := pacer.Wait(ctx, cfg.Search.QueryDelay); err != nil {
				return err
			}

			name := ch.Name
			if name == "" {
				name = ch.ID
			}

			live, err := yt.SearchChannel(ctx, ch.ID, 3)
			if err != nil {
				fmt.Printf("  %-40s  error: %v\n", name, err)
				continue
			}
			if len(live) == 0 {
				fmt.Printf("  %-40s  offline\n", name)
				continue
			}

			c := live[0]
			started := ""
			if !c.StartedAt.IsZero() {
				started = " since " + c.StartedAt.UTC().Format(time.RFC3339)
			}
			fmt.Printf("  %-40s  LIVE (%d viewers)%s\n", name, c.ViewerCount, started)
		}
	}
	return nil
}

func init() {
	channelsProbeCmd.Flags().String("venues", "", "venue configuration file (overrides config)")

	channelsCmd.AddCommand(channelsResolveCmd)
	channelsCmd.AddCommand(channelsProbeCmd)
	rootCmd.AddCommand(channelsCmd)
}
