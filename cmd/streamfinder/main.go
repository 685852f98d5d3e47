// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the streamfinder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/streamfinder/internal/secrets"
	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the streamfinder CLI.
var rootCmd = &cobra.Command{
	Use:   "streamfinder",
	Short: "Locate the best live darshan stream for each configured venue",
	Long: `streamfinder searches a live-video index for streams of a fixed set of
venues (temples) and assigns at most one stream per venue, preferring
trusted-channel provenance over popularity. Each run regenerates the
output artifact from scratch; venues with no acceptable stream are
simply absent from it.

Subcommands: find runs the full pipeline, channels inspects trusted
channels, history lists recorded runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./streamfinder.yaml or ~/.config/streamfinder/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("streamfinder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "streamfinder"))
		}
	}

	viper.SetDefault("venues_file", "venues.yaml")
	viper.SetDefault("output.path", "live_streams.json")
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", "data/streamfinder.db")
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("search.user_agent", "streamfinder/"+version)
	viper.SetDefault("search.bulk_max_results", 50)
	viper.SetDefault("search.fallback_max_results", 10)
	viper.SetDefault("search.query_delay", "300ms")
	viper.SetDefault("search.fallback_delay", "500ms")

	viper.SetEnvPrefix("STREAMFINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the run configuration from viper, with the API
// key falling back from config to environment to .secrets/.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		VenuesFile: viper.GetString("venues_file"),
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			APIKey:             viper.GetString("api_key"),
			BulkMaxResults:     viper.GetInt("search.bulk_max_results"),
			FallbackMaxResults: viper.GetInt("search.fallback_max_results"),
			QueryDelay:         viper.GetDuration("search.query_delay"),
			FallbackDelay:      viper.GetDuration("search.fallback_delay"),
		},
		Output: types.OutputConfig{
			Path: viper.GetString("output.path"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    viper.GetString("history.path"),
		},
	}

	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = loadedSecrets["youtube-api-key"]
	}
	return cfg
}

// requireAPIKey rejects network commands started without a credential,
// before any query is issued.
func requireAPIKey(cfg types.PipelineConfig) error {
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("no API key configured: set STREAMFINDER_API_KEY or create .secrets/youtube-api-key")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
