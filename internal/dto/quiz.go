package dto

import (
	"strings"
	"time"

	"quiz-pulse/internal/domain"
)

// SubmitEmailRequest is the body of POST /api/submit-email.
type SubmitEmailRequest struct {
	Email string `json:"email"`
}

// Validate checks required fields.
func (r *SubmitEmailRequest) Validate() domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	}
	return errs
}

// SubmitEmailResponse is the success body of POST /api/submit-email.
type SubmitEmailResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// QuestionResultPayload is one graded question inside a quiz submission or
// a stored response.
type QuestionResultPayload struct {
	Question      string   `json:"question"`
	UserAnswer    string   `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	AllChoices    []string `json:"allChoices"`
}

// SubmitQuizRequest is the body of POST /api/submit-quiz. Score and TimeTaken
// are pointers so that an absent field can be told apart from a legitimate
// zero (a score of 0 is a valid submission).
type SubmitQuizRequest struct {
	Email     string                  `json:"email"`
	Questions []QuestionResultPayload `json:"questions"`
	Score     *int                    `json:"score"`
	TimeTaken *int                    `json:"timeTaken"`
}

// Validate checks that every required field is present. An empty questions
// array is present and therefore valid; only a missing field is rejected.
func (r *SubmitQuizRequest) Validate() domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	}
	if r.Questions == nil {
		errs = append(errs, domain.NewMissingFieldError("questions"))
	}
	if r.Score == nil {
		errs = append(errs, domain.NewMissingFieldError("score"))
	}
	if r.TimeTaken == nil {
		errs = append(errs, domain.NewMissingFieldError("timeTaken"))
	}
	return errs
}

// ToDomain builds the domain quiz response for storage. TotalQuestions is
// always derived from the question count, never taken from the client.
func (r *SubmitQuizRequest) ToDomain() *domain.QuizResponse {
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
		Email:          domain.NormalizeEmail(r.Email),
		Questions:      questions,
		Score:          *r.Score,
		TotalQuestions: len(r.Questions),
		TimeTaken:      *r.TimeTaken,
	}
}

// SubmitQuizResponse is the success body of POST /api/submit-quiz.
type SubmitQuizResponse struct {
	Message        string `json:"message"`
	QuizID         string `json:"quizId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

// QuizResponsePayload is one stored quiz attempt as returned by the API.
type QuizResponsePayload struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	Questions      []QuestionResultPayload `json:"questions"`
	Score          int                     `json:"score"`
	TotalQuestions int                     `json:"totalQuestions"`
	TimeTaken      int                     `json:"timeTaken"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// FromDomainQuizResponse maps a stored attempt to its API representation.
func FromDomainQuizResponse(r *domain.QuizResponse) QuizResponsePayload {
	questions := make([]QuestionResultPayload, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, QuestionResultPayload{
			Question:      q.Question,
			UserAnswer:    q.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     q.IsCorrect,
			AllChoices:    q.AllChoices,
		})
	}
	return QuizResponsePayload{
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

// QuizListResponse is the body of GET /api/quiz/:email.
type QuizListResponse struct {
	QuizResponses []QuizResponsePayload `json:"quizResponses"`
}

// LatestQuizResponse is the body of GET /api/quiz/:email/latest.
type LatestQuizResponse struct {
	Quiz QuizResponsePayload `json:"quiz"`
}

// QuestionPayload is one playable question served by GET /api/questions.
type QuestionPayload struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	Choices       []string `json:"choices"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Category      string   `json:"category"`
}

// FromDomainQuestion maps a bank question to its API representation.
func FromDomainQuestion(q domain.Question) QuestionPayload {
	return QuestionPayload{
		Question:      q.Question,
		CorrectAnswer: q.CorrectAnswer,
		Choices:       q.Choices,
		Type:          q.Type,
		Difficulty:    q.Difficulty,
		Category:      q.Category,
	}
}

// ToDomainQuestion maps an API question back to the domain type; the client
// uses this when driving a session from fetched questions.
func (q QuestionPayload) ToDomainQuestion() domain.Question {
	return domain.Question{
		Question:      q.Question,
		CorrectAnswer: q.CorrectAnswer,
		Choices:       q.Choices,
		Type:          q.Type,
		Difficulty:    q.Difficulty,
		Category:      q.Category,
	}
}

// QuestionsResponse is the body of GET /api/questions.
type QuestionsResponse struct {
	Questions []QuestionPayload `json:"questions"`
}

// HealthResponse is the body of GET /.
type HealthResponse struct {
	Message string `json:"message"`
}
