package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quiz-pulse/internal/dto"
)

// APIError is a non-2xx response from the quiz API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// Client is a typed HTTP client for the quiz API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given API base URL, e.g. "http://localhost:8090".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// SubmitEmail registers an email with the API.
func (c *Client) SubmitEmail(ctx context.Context, email string) (*dto.SubmitEmailResponse, error) {
	var out dto.SubmitEmailResponse
	err := c.post(ctx, "/api/submit-email", dto.SubmitEmailRequest{Email: email}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitQuiz stores a graded quiz attempt.
func (c *Client) SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	var out dto.SubmitQuizResponse
	if err := c.post(ctx, "/api/submit-quiz", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetQuizResults fetches all stored attempts for an email, newest first.
func (c *Client) GetQuizResults(ctx context.Context, email string) (*dto.QuizListResponse, error) {
	var out dto.QuizListResponse
	if err := c.get(ctx, "/api/quiz/"+url.PathEscape(email), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLatestQuizResult fetches the most recent attempt for an email.
func (c *Client) GetLatestQuizResult(ctx context.Context, email string) (*dto.LatestQuizResponse, error) {
	var out dto.LatestQuizResponse
	if err := c.get(ctx, "/api/quiz/"+url.PathEscape(email)+"/latest", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchQuestions fetches a page of playable questions via the API proxy.
func (c *Client) FetchQuestions(ctx context.Context, amount int) ([]dto.QuestionPayload, error) {
	var out dto.QuestionsResponse
	if err := c.get(ctx, fmt.Sprintf("/api/questions?amount=%d", amount), &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
