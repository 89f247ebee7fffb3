package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-pulse/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SubmitEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/submit-email", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.SubmitEmailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)

		_ = json.NewEncoder(w).Encode(dto.SubmitEmailResponse{
			Message: "Email submitted successfully",
			Email:   "a@b.com",
		})
	}))
	defer server.Close()

	api := New(server.URL)
	resp, err := api.SubmitEmail(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", resp.Email)
}

func TestClient_SubmitQuiz(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/submit-quiz", r.URL.Path)

		var req dto.SubmitQuizRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Score)
		assert.Equal(t, 10, *req.Score)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.SubmitQuizResponse{
			Message:        "Quiz submitted successfully",
			QuizID:         "01ARZ3NDEKTSV4RRFFQ69G5FAV",
			Score:          10,
			TotalQuestions: 15,
		})
	}))
	defer server.Close()

	score, timeTaken := 10, 412
	api := New(server.URL)
	resp, err := api.SubmitQuiz(context.Background(), &dto.SubmitQuizRequest{
		Email:     "a@b.com",
		Questions: []dto.QuestionResultPayload{},
		Score:     &score,
		TimeTaken: &timeTaken,
	})

	require.NoError(t, err)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", resp.QuizID)
}

func TestClient_ErrorBodyIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing required fields"}`))
	}))
	defer server.Close()

	api := New(server.URL)
	_, err := api.SubmitQuiz(context.Background(), &dto.SubmitQuizRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields", apiErr.Message)
}

func TestClient_NonJSONErrorFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream blew up"))
	}))
	defer server.Close()

	api := New(server.URL)
	_, err := api.FetchQuestions(context.Background(), 15)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_GetLatestQuizResult_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quiz/nobody@b.com/latest", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"No quiz results found for this email"}`))
	}))
	defer server.Close()

	api := New(server.URL)
	_, err := api.GetLatestQuizResult(context.Background(), "nobody@b.com")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_GetQuizResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quiz/a@b.com", r.URL.Path)
		_ = json.NewEncoder(w).Encode(dto.QuizListResponse{QuizResponses: []dto.QuizResponsePayload{
			{ID: "r2", Score: 12},
			{ID: "r1", Score: 7},
		}})
	}))
	defer server.Close()

	api := New(server.URL)
	resp, err := api.GetQuizResults(context.Background(), "a@b.com")

	require.NoError(t, err)
	require.Len(t, resp.QuizResponses, 2)
	assert.Equal(t, "r2", resp.QuizResponses[0].ID)
}

func TestClient_FetchQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/questions", r.URL.Path)
		assert.Equal(t, "15", r.URL.Query().Get("amount"))
		_ = json.NewEncoder(w).Encode(dto.QuestionsResponse{Questions: []dto.QuestionPayload{
			{Question: "Q1", CorrectAnswer: "A", Choices: []string{"A", "B"}},
		}})
	}))
	defer server.Close()

	api := New(server.URL)
	questions, err := api.FetchQuestions(context.Background(), 15)

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q1", questions[0].Question)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(&APIError{Status: http.StatusInternalServerError}))
	assert.False(t, IsNotFound(context.Canceled))
}
