package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host         string
	tournamentID string
)

var rootCmd = &cobra.Command{
	Use:   "courtplan-cli",
	Short: "A CLI to interact with the courtplan server",
	Long: `A command-line interface for making requests to the various endpoints
of the courtplan scheduling application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&tournamentID, "tournament", "", "The tournament ID to operate on")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
