package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	formatID   string
	dayIndex   int
	matchIndex int
	newStart   string
	dryRun     bool
	outputFile string
)

func init() {
	templatesCmd.Flags().StringVar(&formatID, "format", "", "The format ID to list templates for")
	templatesCmd.MarkFlagRequired("format")

	editCmd.Flags().IntVar(&dayIndex, "day", 0, "Zero-based day index of the match to move")
	editCmd.Flags().IntVar(&matchIndex, "match", 0, "Zero-based match index within the day")
	editCmd.Flags().StringVar(&newStart, "start", "", "New start time, e.g. 14:00")
	editCmd.MarkFlagRequired("start")

	commitCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the commit without persisting anything")

	exportCmd.Flags().StringVar(&outputFile, "out", "schedule.xlsx", "Path to write the workbook to")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(committedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the stored tournament formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/formats", nil)
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the match templates of a format",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/templates", url.Values{"format_id": {formatID}})
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Compute a fresh schedule preview for a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/schedule/preview", tournamentParams(), "")
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the tournament's current in-session schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/schedule", tournamentParams())
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Move a match to a new start time, cascading later matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"day_index":%d,"match_index":%d,"new_start":%q}`, dayIndex, matchIndex, newStart)
		return performPostRequest("/schedule/edit", tournamentParams(), body)
	},
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit the tournament's current schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := tournamentParams()
		if dryRun {
			params.Set("dry_run", strconv.FormatBool(dryRun))
		}
		return performPostRequest("/schedule/commit", params, "")
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all edits and rebuild the schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/schedule/reset", tournamentParams(), "")
	},
}

var committedCmd = &cobra.Command{
	Use:   "committed",
	Short: "Show the last committed schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/schedule/committed", tournamentParams())
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the schedule as an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := host + "/schedule/export?" + tournamentParams().Encode()
		fmt.Printf("Making request to %s\n", target)

		resp, err := http.Get(target)
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
		}

		out, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()

		if _, err := io.Copy(out, resp.Body); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Printf("Workbook written to %s\n", outputFile)
		return nil
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func tournamentParams() url.Values {
	return url.Values{"tournament_id": {tournamentID}}
}

func performGetRequest(endpoint string, params url.Values) error {
	target := host + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, params url.Values, body string) error {
	target := host + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Post(target, "application/json", strings.NewReader(body))
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
