package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkov/snakeboard/internal/config"
	"github.com/avolkov/snakeboard/internal/leaderboard"
	"github.com/avolkov/snakeboard/internal/server"
)

var (
	flagAddr string
	flagDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the leaderboard API server",
	Long: `Run the leaderboard HTTP API.

Endpoints:
  GET  /api/leaderboard?limit=N  - Top standings (limit clamped to [1,20], default 5)
  POST /api/leaderboard          - Submit {"score": N, "nick": "A.B.C.XXX"}
  GET  /api/leaderboard/live     - WebSocket feed of refreshed standings

Configuration precedence: flags > SNAKEBOARD_ADDR / SNAKEBOARD_DB
environment (a .env file is honored) > config file > defaults.

Examples:
  snakeboard serve
  snakeboard serve --addr :8489 --db ./leaderboard.db`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (host:port)")
	serveCmd.Flags().StringVar(&flagDB, "db", "", "Path to leaderboard database")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srvCfg := server.FromEnv(server.Config{
		Addr:   cfg.Server.Addr,
		DBPath: cfg.Server.DBPath,
	})
	if flagAddr != "" {
		srvCfg.Addr = flagAddr
	}
	if flagDB != "" {
		srvCfg.DBPath = flagDB
	}

	store, err := leaderboard.Shared(srvCfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard store: %v\n", err)
		os.Exit(1)
	}
	defer leaderboard.CloseShared()

	srv := server.New(srvCfg, leaderboard.NewService(store))
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
