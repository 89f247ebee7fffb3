package models

import (
	"time"

	"quiz-pulse/internal/domain"
)

// QuizResponse is the storage model for the quiz_responses collection.
type QuizResponse struct {
	ID             string           `bson:"_id"`
	Email          string           `bson:"email"`
	Questions      []QuestionResult `bson:"questions"`
	Score          int              `bson:"score"`
	TotalQuestions int              `bson:"total_questions"`
	TimeTaken      int              `bson:"time_taken"`
	CreatedAt      time.Time        `bson:"created_at"`
	UpdatedAt      time.Time        `bson:"updated_at"`
}

// QuestionResult is the embedded per-question grading record.
type QuestionResult struct {
	Question      string   `bson:"question"`
	UserAnswer    string   `bson:"user_answer"`
	CorrectAnswer string   `bson:"correct_answer"`
	IsCorrect     bool     `bson:"is_correct"`
	AllChoices    []string `bson:"all_choices"`
}

// FromDomainQuizResponse converts a domain quiz response to its storage model.
func FromDomainQuizResponse(r *domain.QuizResponse) *QuizResponse {
	questions := make([]QuestionResult, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, QuestionResult{
			Question:      q.Question,
			UserAnswer:    q.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     q.IsCorrect,
			AllChoices:    q.AllChoices,
		})
	}
	return &QuizResponse{
		ID:             r.ID,
		Email:          r.Email,
		Questions:      questions,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		TimeTaken:      r.TimeTaken,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToDomain converts the storage model to the domain representation.
func (r *QuizResponse) ToDomain() *domain.QuizResponse {
	questions := make([]domain.QuestionResult, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, domain.QuestionResult{
			Question:      q.Question,
			UserAnswer:    q.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     q.IsCorrect,
			AllChoices:    q.AllChoices,
		})
	}
	return &domain.QuizResponse{
		ID:             r.ID,
		Email:          r.Email,
		Questions:      questions,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		TimeTaken:      r.TimeTaken,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
