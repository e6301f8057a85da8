package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/velmoga/sinkhole/internal/platform/tui"
	"github.com/velmoga/sinkhole/internal/platform/web"
)

var (
	flagSSHAddr      string
	flagHTTPAddr     string
	flagHostKey      string
	flagIdleTimeout  int
	flagServeEndless bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the game for remote players",
	Long: `Start a server that lets players connect remotely.

With --ssh, terminal players connect over SSH; each user gets their own
progress slot. With --http, browser players connect to a shared
simulation over websockets. Exactly one of the two must be given.

Host key handling (SSH):
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sinkhole/host_key

Examples:
  sinkhole serve --ssh :23234
  sinkhole serve --ssh :2222 --host-key ./my_host_key
  sinkhole serve --http :8080
  sinkhole serve --http :8080 --endless`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "SSH idle timeout in minutes")
	serveCmd.Flags().BoolVar(&flagServeEndless, "endless", false, "Serve the endless mode instead of the campaign")
}

func runServe(_ *cobra.Command, _ []string) {
	if (flagSSHAddr == "") == (flagHTTPAddr == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of --ssh or --http is required")
		os.Exit(1)
	}

	if flagSSHAddr != "" {
		runServeSSH()
		return
	}
	runServeHTTP()
}

func runServeSSH() {
	gameID := "sinkhole"
	if flagServeEndless {
		gameID = "sinkhole_endless"
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		GameID:      gameID,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh <host> -p <port>")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func runServeHTTP() {
	cfg := web.ServerConfig{
		Address:  flagHTTPAddr,
		Endless:  flagServeEndless,
		TickRate: flagFPS,
		DBPath:   flagDBPath,
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting web server on %s\n", cfg.Address)
	fmt.Println("Open http://localhost" + cfg.Address + " in a browser")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
