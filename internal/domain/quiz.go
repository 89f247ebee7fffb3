package domain

import "time"

// Question is one quiz question as presented to the user: entity-decoded
// text, the correct answer, and the full (already shuffled) choice list.
type Question struct {
	Question      string
	CorrectAnswer string
	Choices       []string
	Type          string
	Difficulty    string
	Category      string
}

// QuestionResult is the graded outcome for a single question. It is embedded
// in a QuizResponse and never stored on its own.
type QuestionResult struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	AllChoices    []string
}

// QuizResponse is one submitted quiz attempt. Attempts are immutable once
// stored; retakes append new responses rather than overwriting.
type QuizResponse struct {
	ID             string
	Email          string
	Questions      []QuestionResult
	Score          int
	TotalQuestions int
	TimeTaken      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GradeQuiz grades a quiz attempt. answers maps question index to the
// selected choice; an absent entry means the question was not answered.
// Correctness is exact string equality with the correct answer, case
// sensitive and untrimmed. No partial credit.
func GradeQuiz(questions []Question, answers map[int]string) ([]QuestionResult, int) {
	results := make([]QuestionResult, 0, len(questions))
	score := 0
	for i, q := range questions {
		answer, answered := answers[i]
		correct := answered && answer == q.CorrectAnswer
		if correct {
			score++
		}
		results = append(results, QuestionResult{
			Question:      q.Question,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			AllChoices:    q.Choices,
		})
	}
	return results, score
}
