package domain

import "context"

// QuestionSource fetches quiz questions from an external question bank.
// Implementations return entity-decoded questions with shuffled choices.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, amount int) ([]Question, error)
}
