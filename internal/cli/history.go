package cli

import (
	"context"
	"fmt"

	"quiz-pulse/internal/client"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List every quiz attempt for an email, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runHistory(ctx context.Context, email string) error {
	api := client.New(apiBaseURL)

	results, err := api.GetQuizResults(ctx, email)
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Println("No quiz results found for this email.")
			return nil
		}
		return err
	}

	fmt.Printf("Attempts for %s:\n", email)
	for i, quiz := range results.QuizResponses {
		fmt.Printf("%2d. %s  score %d/%d  time %02d:%02d\n",
			i+1,
			quiz.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			quiz.Score, quiz.TotalQuestions,
			quiz.TimeTaken/60, quiz.TimeTaken%60)
	}
	return nil
}
