package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/snakeboard/internal/config"
	"github.com/avolkov/snakeboard/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSSHAPI      string
	flagIdleTimeout int
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Serve the game to SSH clients",
	Long: `Start an SSH server that lets users connect and play.

Each connection gets its own session with an ephemeral nickname; all
sessions submit to the same leaderboard API when one is configured.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snakeboard/host_key

Examples:
  snakeboard ssh                                  # Listen on :23234
  snakeboard ssh --ssh :2222                      # Listen on port 2222
  snakeboard ssh --api http://localhost:8489      # Shared leaderboard

Users can connect with:
  ssh localhost -p 23234`,
	Run: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	sshCmd.Flags().StringVar(&flagSSHAPI, "api", "", "Leaderboard API base URL (overrides config)")
	sshCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runSSH(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	api := cfg.Client.API
	if flagSSHAPI != "" {
		api = flagSSHAPI
	}

	srv, err := tui.NewSSHServer(tui.SSHConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		API:         api,
		Tuning:      cfg.Game.Tuning(),
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
