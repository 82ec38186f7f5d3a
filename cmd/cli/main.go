package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultPort = "8080"

var host string

var rootCmd = &cobra.Command{
	Use:   "playtime-cli",
	Short: "Query placeholders and the top playtime leaderboard",
	Long: `playtime-cli talks to a running playtime placeholder server.

It resolves placeholders for a player, shows or refreshes the cached top 10
playtime leaderboard and reads the server's health and metrics.

The server address defaults to $PLAYTIME_HOST, or to localhost on $PORT.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", defaultHost(), "Address of the playtime placeholder server")
}

// defaultHost prefers PLAYTIME_HOST and otherwise points at the local server
// on PORT, the same variable the server listens on.
func defaultHost() string {
	if h := os.Getenv("PLAYTIME_HOST"); h != "" {
		return h
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	return "http://localhost:" + port
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "playtime-cli:", err)
		os.Exit(1)
	}
}
