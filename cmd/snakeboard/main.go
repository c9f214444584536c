// snakeboard is a terminal Snake game with a global leaderboard.
//
// Usage:
//
//	snakeboard play              - Play in the terminal
//	snakeboard serve             - Run the leaderboard API server
//	snakeboard ssh               - Serve the game over SSH
//	snakeboard scores            - Print the current standings
//
// Global flags:
//
//	--config <path>  - Path to a YAML configuration file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakeboard",
	Short: "Snake in your terminal, with a global leaderboard",
	Long: `snakeboard is a terminal Snake game backed by a shared leaderboard.

Available commands:
  play     - Play in the terminal
  serve    - Run the leaderboard API server
  ssh      - Serve the game to SSH clients
  scores   - Print the current standings

Examples:
  snakeboard play
  snakeboard play --api https://snakeboard.example.com
  snakeboard serve --addr :8489 --db ./leaderboard.db
  snakeboard ssh --ssh :23234 --api http://localhost:8489
  snakeboard scores --limit 10`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(scoresCmd)
}
