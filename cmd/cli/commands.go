package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	submitMatchDate string
	submitSets      []string
	historyPage     int
	historyPageSize int
	historyPlayerID string
)

func init() {
	submitCmd.Flags().StringVar(&submitMatchDate, "date", "", "Match date (YYYY-MM-DD), defaults to today")
	submitCmd.Flags().StringArrayVar(&submitSets, "set", nil, "Set score as 'a-b', repeatable (e.g. --set 11-8 --set 11-6)")
	historyCmd.Flags().IntVar(&historyPage, "page", 1, "Page number")
	historyCmd.Flags().IntVar(&historyPageSize, "page-size", 25, "Page size")
	historyCmd.Flags().StringVar(&historyPlayerID, "player", "", "Filter by player id")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <player-one> <player-two>",
	Short: "Submit a match result",
	Long: `Submits a match between two players. With --set flags the sets are
recorded with full scores; without any, player one is recorded as the winner.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"playerOneName": args[0],
			"playerTwoName": args[1],
		}
		if submitMatchDate != "" {
			body["matchDate"] = submitMatchDate
		}
		if len(submitSets) > 0 {
			sets := make([]map[string]any, 0, len(submitSets))
			for i, s := range submitSets {
				var a, b int
				if _, err := fmt.Sscanf(s, "%d-%d", &a, &b); err != nil {
					return fmt.Errorf("invalid set score %q, expected 'a-b'", s)
				}
				sets = append(sets, map[string]any{
					"setNumber":      i + 1,
					"playerOneScore": a,
					"playerTwoScore": b,
				})
			}
			body["sets"] = sets
		} else {
			body["playerOneWon"] = true
		}
		return performPostRequest("/matches", body)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the standings table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings")
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the match history feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("page", fmt.Sprint(historyPage))
		query.Set("pageSize", fmt.Sprint(historyPageSize))
		if historyPlayerID != "" {
			query.Set("playerId", historyPlayerID)
		}
		return performGetRequest("/history?" + query.Encode())
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
