package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avolkov/snakeboard/internal/config"
	"github.com/avolkov/snakeboard/internal/identity"
	"github.com/avolkov/snakeboard/internal/leaderboard"
	"github.com/avolkov/snakeboard/internal/platform/tui"
)

var flagAPI string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Snake in the terminal",
	Long: `Play Snake on a 25x25 board.

Controls:
  W/A/S/D or arrows - Steer
  P/Esc             - Pause
  Enter/Space       - Start / restart
  Q/Ctrl+C          - Quit

The game speeds up as you eat. With --api set (or client.api in the
config), finished runs are submitted to the shared leaderboard under a
generated nickname that sticks to this machine. Without it the game is
fully playable offline.

Examples:
  snakeboard play
  snakeboard play --api http://localhost:8489`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagAPI, "api", "", "Leaderboard API base URL (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	api := cfg.Client.API
	if flagAPI != "" {
		api = flagAPI
	}

	stateDir, err := identity.DefaultDir()
	if err != nil {
		// No home directory: play without persisted identity.
		stateDir = ""
	}

	var client *leaderboard.Client
	if api != "" && stateDir != "" {
		nick, nickErr := identity.Load(stateDir)
		if nickErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not persist nickname: %v\n", nickErr)
		} else {
			client = leaderboard.NewClient(api, nick)
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runErr := tui.Run(tui.Options{
		Tuning:   cfg.Game.Tuning(),
		Client:   client,
		StateDir: stateDir,
		Width:    width,
		Height:   height,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
