package cli

import (
	"context"
	"fmt"

	"quiz-pulse/internal/client"
	"quiz-pulse/internal/dto"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the latest quiz report for an email",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runReport(ctx context.Context, email string) error {
	api := client.New(apiBaseURL)

	result, err := api.GetLatestQuizResult(ctx, email)
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Println("No quiz results found for this email.")
			return nil
		}
		return err
	}

	printStoredReport(&result.Quiz)
	return nil
}

// printReport renders the report screen from a just-submitted attempt.
func printReport(result *dto.SubmitQuizRequest) {
	fmt.Println("\n================ Quiz Report ================")
	fmt.Printf("Email: %s\n", result.Email)
	printScoreLine(*result.Score, len(result.Questions), *result.TimeTaken)
	printQuestionResults(result.Questions)
}

// printStoredReport renders the report screen from a stored attempt.
func printStoredReport(quiz *dto.QuizResponsePayload) {
	fmt.Println("\n================ Quiz Report ================")
	fmt.Printf("Email: %s\n", quiz.Email)
	fmt.Printf("Taken: %s\n", quiz.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printScoreLine(quiz.Score, quiz.TotalQuestions, quiz.TimeTaken)
	printQuestionResults(quiz.Questions)
}

func printScoreLine(score, total, timeTaken int) {
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}
	fmt.Printf("Score: %d/%d (%.0f%%)\n", score, total, percentage)
	fmt.Printf("Time taken: %02d:%02d\n", timeTaken/60, timeTaken%60)
}

func printQuestionResults(questions []dto.QuestionResultPayload) {
	fmt.Println("---------------------------------------------")
	for i, q := range questions {
		mark := "✗"
		if q.IsCorrect {
			mark = "✓"
		}
		fmt.Printf("%s Q%d: %s\n", mark, i+1, q.Question)
		if q.UserAnswer == "" {
			fmt.Println("    Your answer: (not answered)")
		} else {
			fmt.Printf("    Your answer: %s\n", q.UserAnswer)
		}
		if !q.IsCorrect {
			fmt.Printf("    Correct answer: %s\n", q.CorrectAnswer)
		}
	}
	fmt.Println("=============================================")
}
