package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	playerID   string
	identifier string
	post       bool
	dryRun     bool
	locale     string
)

func init() {
	placeholderCmd.Flags().StringVar(&playerID, "player", "", "UUID of the player the placeholder is resolved for")
	placeholderCmd.Flags().StringVar(&identifier, "identifier", "", "Placeholder identifier, e.g. playtime_top_1")
	_ = placeholderCmd.MarkFlagRequired("identifier")

	refreshCmd.Flags().BoolVar(&post, "post", false, "Also post the refreshed leaderboard to Slack")
	refreshCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the Slack message instead of sending it")
	refreshCmd.Flags().StringVar(&locale, "locale", "", "Language of the posted leaderboard")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(placeholderCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health")
	},
}

var placeholderCmd = &cobra.Command{
	Use:   "placeholder",
	Short: "Resolve a placeholder for a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("player", playerID)
		q.Set("identifier", identifier)
		return performRequest(http.MethodGet, "/placeholder?"+q.Encode())
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the cached top playtime snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/leaderboard")
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a refresh of the top playtime snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if post {
			q.Set("post", "true")
		}
		if dryRun {
			q.Set("dry_run", "true")
		}
		if locale != "" {
			q.Set("locale", locale)
		}
		endpoint := "/refresh"
		if len(q) > 0 {
			endpoint += "?" + q.Encode()
		}
		return performRequest(http.MethodPost, endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics")
	},
}

func performRequest(method, endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
