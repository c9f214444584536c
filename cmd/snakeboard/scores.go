package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/snakeboard/internal/config"
	"github.com/avolkov/snakeboard/internal/leaderboard"
)

var (
	flagScoresLimit int
	flagScoresAPI   string
	flagScoresDB    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top leaderboard entries",
	Long: `Display the top leaderboard entries.

By default the standings are fetched from the API configured in the
config file. Pass --db to read the local database directly instead.

Examples:
  snakeboard scores
  snakeboard scores --limit 10
  snakeboard scores --api http://localhost:8489
  snakeboard scores --db ~/.snakeboard/leaderboard.db`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", leaderboard.DefaultLimit, "Number of entries to show")
	scoresCmd.Flags().StringVar(&flagScoresAPI, "api", "", "Leaderboard API base URL (overrides config)")
	scoresCmd.Flags().StringVar(&flagScoresDB, "db", "", "Read entries from this database instead of the API")
}

func runScores(cmd *cobra.Command, args []string) {
	entries, err := fetchScores()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snakeboard play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "----", "------", "-----", "----")

	for i, entry := range entries {
		dateStr := time.UnixMilli(entry.Ts).Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-10d  %s\n", i+1, entry.Nick, entry.Score, dateStr)
	}
}

func fetchScores() ([]leaderboard.Entry, error) {
	limit := leaderboard.ClampLimit(flagScoresLimit)

	if flagScoresDB != "" {
		store, err := leaderboard.Open(flagScoresDB)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()
		return store.Top(limit)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	api := cfg.Client.API
	if flagScoresAPI != "" {
		api = flagScoresAPI
	}
	if api == "" {
		return nil, fmt.Errorf("no API configured; pass --api or --db")
	}

	client := leaderboard.NewClient(api, "")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries := client.Top(ctx, limit)
	if entries == nil {
		return nil, fmt.Errorf("could not reach %s", api)
	}
	return entries, nil
}
