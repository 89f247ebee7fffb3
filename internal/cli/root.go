package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var apiBaseURL string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envAPI := os.Getenv("QUIZ_API_URL")
	if envAPI == "" {
		envAPI = "http://localhost:8090"
	}

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take a trivia quiz and view scored reports",
	}

	cmd.PersistentFlags().StringVar(&apiBaseURL, "api", envAPI, "base URL of the quiz API")
	cmd.AddCommand(newPlayCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newHistoryCmd())
	return cmd
}
