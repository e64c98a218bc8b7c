package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pokedex-insights-go/internal/config"
	"pokedex-insights-go/internal/dashboard"
	"pokedex-insights-go/internal/dataset"
	"pokedex-insights-go/internal/logger"
	"pokedex-insights-go/internal/pokeapi"
)

var (
	flagDataset string
	flagLimit   int
	flagBaseURL string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:           "pokedex",
	Short:         "Pokédex insights: statistics over the first page of the PokéAPI",
	Long:          `pokedex fetches the first batch of Pokémon from the PokéAPI (or a workbook snapshot), derives summary statistics and prints them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "read records from an xlsx snapshot instead of the API (overrides DATASET_PATH)")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "number of records to fetch (overrides POKEAPI_LIMIT)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "PokéAPI base URL (overrides POKEAPI_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// newService builds and loads the dashboard from config plus flag overrides.
// Logs go to stderr so command output stays clean.
func newService(ctx context.Context) (*dashboard.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	f := rootCmd.PersistentFlags()
	if f.Changed("dataset") {
		cfg.DatasetPath = flagDataset
	}
	if f.Changed("limit") {
		if flagLimit <= 0 {
			return nil, fmt.Errorf("--limit: must be positive, got %d", flagLimit)
		}
		cfg.FetchLimit = flagLimit
	}
	if f.Changed("base-url") && flagBaseURL != "" {
		cfg.APIBaseURL = flagBaseURL
	}
	level := "warn"
	if flagDebug {
		level = "debug"
	}
	log := logger.New(logger.Options{Environment: cfg.Environment, Level: level, Output: os.Stderr})

	opts := cfg.ClientOptions()
	opts.Logger = log
	client := pokeapi.New(opts)

	var source dashboard.Source = client
	if cfg.DatasetPath != "" {
		source = dataset.Snapshot{Path: cfg.DatasetPath, Logger: log}
	}
	svc := dashboard.New(source, client, log)
	if err := svc.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch Pokémon data: %w", err)
	}
	return svc, nil
}
