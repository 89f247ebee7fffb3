package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"quiz-pulse/internal/domain"
	"quiz-pulse/internal/dto"
	"quiz-pulse/internal/handler"
	"quiz-pulse/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	SubmitEmailFunc           func(ctx context.Context, email string) (*dto.SubmitEmailResponse, error)
	SubmitQuizFunc            func(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetQuizResponsesFunc      func(ctx context.Context, email string) (*dto.QuizListResponse, error)
	GetLatestQuizResponseFunc func(ctx context.Context, email string) (*dto.LatestQuizResponse, error)
}

func (m *MockQuizService) SubmitEmail(ctx context.Context, email string) (*dto.SubmitEmailResponse, error) {
	if m.SubmitEmailFunc != nil {
		return m.SubmitEmailFunc(ctx, email)
	}
	panic("MockQuizService.SubmitEmailFunc not implemented")
}

func (m *MockQuizService) SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if m.SubmitQuizFunc != nil {
		return m.SubmitQuizFunc(ctx, req)
	}
	panic("MockQuizService.SubmitQuizFunc not implemented")
}

func (m *MockQuizService) GetQuizResponses(ctx context.Context, email string) (*dto.QuizListResponse, error) {
	if m.GetQuizResponsesFunc != nil {
		return m.GetQuizResponsesFunc(ctx, email)
	}
	panic("MockQuizService.GetQuizResponsesFunc not implemented")
}

func (m *MockQuizService) GetLatestQuizResponse(ctx context.Context, email string) (*dto.LatestQuizResponse, error) {
	if m.GetLatestQuizResponseFunc != nil {
		return m.GetLatestQuizResponseFunc(ctx, email)
	}
	panic("MockQuizService.GetLatestQuizResponseFunc not implemented")
}

// MockTriviaService
type MockTriviaService struct {
	GetQuestionsFunc func(ctx context.Context, amount int) ([]domain.Question, error)
}

func (m *MockTriviaService) GetQuestions(ctx context.Context, amount int) ([]domain.Question, error) {
	if m.GetQuestionsFunc != nil {
		return m.GetQuestionsFunc(ctx, amount)
	}
	panic("MockTriviaService.GetQuestionsFunc not implemented")
}

func newTestApp(quizSvc *MockQuizService, triviaSvc *MockTriviaService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewQuizHandler(quizSvc, triviaSvc)

	app.Get("/", h.Health)
	api := app.Group("/api")
	api.Post("/submit-email", h.SubmitEmail)
	api.Post("/submit-quiz", h.SubmitQuiz)
	api.Get("/questions", h.GetQuestions)
	api.Get("/quiz/:email", h.GetQuizResponses)
	api.Get("/quiz/:email/latest", h.GetLatestQuizResponse)
	return app
}

func TestHealth(t *testing.T) {
	app := newTestApp(&MockQuizService{}, &MockTriviaService{})

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Quiz Application API is running!", body.Message)
}

func TestSubmitEmail_Success(t *testing.T) {
	quizSvc := &MockQuizService{
		SubmitEmailFunc: func(ctx context.Context, email string) (*dto.SubmitEmailResponse, error) {
			assert.Equal(t, "a@b.com", email)
			return &dto.SubmitEmailResponse{Message: "Email submitted successfully", Email: "a@b.com"}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	req := httptest.NewRequest("POST", "/api/submit-email", bytes.NewBufferString(`{"email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.SubmitEmailResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "a@b.com", body.Email)
}

func TestSubmitEmail_MissingEmail(t *testing.T) {
	app := newTestApp(&MockQuizService{}, &MockTriviaService{})

	req := httptest.NewRequest("POST", "/api/submit-email", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Email is required", body.Error)
}

func TestSubmitQuiz_Created(t *testing.T) {
	quizSvc := &MockQuizService{
		SubmitQuizFunc: func(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
			return &dto.SubmitQuizResponse{
				Message:        "Quiz submitted successfully",
				QuizID:         "01ARZ3NDEKTSV4RRFFQ69G5FAV",
				Score:          10,
				TotalQuestions: 15,
			}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	payload := `{"email":"a@b.com","questions":[],"score":10,"timeTaken":300}`
	req := httptest.NewRequest("POST", "/api/submit-quiz", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.SubmitQuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 10, body.Score)
	assert.Equal(t, 15, body.TotalQuestions)
}

func TestSubmitQuiz_MissingScore(t *testing.T) {
	app := newTestApp(&MockQuizService{}, &MockTriviaService{})

	payload := `{"email":"a@b.com","questions":[],"timeTaken":300}`
	req := httptest.NewRequest("POST", "/api/submit-quiz", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Missing required fields", body.Error)
}

func TestSubmitQuiz_ZeroScoreIsValid(t *testing.T) {
	quizSvc := &MockQuizService{
		SubmitQuizFunc: func(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
			assert.Equal(t, 0, *req.Score)
			return &dto.SubmitQuizResponse{Message: "Quiz submitted successfully", Score: 0}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	payload := `{"email":"a@b.com","questions":[],"score":0,"timeTaken":0}`
	req := httptest.NewRequest("POST", "/api/submit-quiz", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestSubmitQuiz_StorageFault(t *testing.T) {
	quizSvc := &MockQuizService{
		SubmitQuizFunc: func(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
			return nil, domain.NewStorageError("Failed to submit quiz", errors.New("write failed"))
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	payload := `{"email":"a@b.com","questions":[],"score":1,"timeTaken":10}`
	req := httptest.NewRequest("POST", "/api/submit-quiz", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Failed to submit quiz", body.Error)
}

func TestGetQuizResponses_NotFound(t *testing.T) {
	quizSvc := &MockQuizService{
		GetQuizResponsesFunc: func(ctx context.Context, email string) (*dto.QuizListResponse, error) {
			return nil, domain.NewNotFoundError("No quiz results found for this email")
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	req := httptest.NewRequest("GET", "/api/quiz/nobody@x.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "No quiz results found for this email", body.Error)
}

func TestGetQuizResponses_Success(t *testing.T) {
	quizSvc := &MockQuizService{
		GetQuizResponsesFunc: func(ctx context.Context, email string) (*dto.QuizListResponse, error) {
			assert.Equal(t, "a@b.com", email)
			return &dto.QuizListResponse{QuizResponses: []dto.QuizResponsePayload{
				{ID: "r2", Score: 12, TotalQuestions: 15},
				{ID: "r1", Score: 7, TotalQuestions: 15},
			}}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	req := httptest.NewRequest("GET", "/api/quiz/a@b.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.QuizListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.QuizResponses, 2)
	assert.Equal(t, "r2", body.QuizResponses[0].ID)
}

func TestGetLatestQuizResponse_Success(t *testing.T) {
	quizSvc := &MockQuizService{
		GetLatestQuizResponseFunc: func(ctx context.Context, email string) (*dto.LatestQuizResponse, error) {
			return &dto.LatestQuizResponse{Quiz: dto.QuizResponsePayload{ID: "r9", Score: 14}}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	req := httptest.NewRequest("GET", "/api/quiz/a@b.com/latest", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.LatestQuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "r9", body.Quiz.ID)
}

func TestGetQuestions_Success(t *testing.T) {
	triviaSvc := &MockTriviaService{
		GetQuestionsFunc: func(ctx context.Context, amount int) ([]domain.Question, error) {
			assert.Equal(t, 15, amount)
			return []domain.Question{{Question: "Q1", CorrectAnswer: "A", Choices: []string{"A", "B"}}}, nil
		},
	}
	app := newTestApp(&MockQuizService{}, triviaSvc)

	req := httptest.NewRequest("GET", "/api/questions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.QuestionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Questions, 1)
	assert.Equal(t, "Q1", body.Questions[0].Question)
}

func TestGetQuestions_InvalidAmount(t *testing.T) {
	app := newTestApp(&MockQuizService{}, &MockTriviaService{})

	req := httptest.NewRequest("GET", "/api/questions?amount=0", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetQuestions_BankUnavailable(t *testing.T) {
	triviaSvc := &MockTriviaService{
		GetQuestionsFunc: func(ctx context.Context, amount int) ([]domain.Question, error) {
			return nil, domain.NewQuestionBankError(errors.New("upstream timeout"))
		},
	}
	app := newTestApp(&MockQuizService{}, triviaSvc)

	req := httptest.NewRequest("GET", "/api/questions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Failed to load quiz questions", body.Error)
}
