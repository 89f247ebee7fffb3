package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"time"

	"quiz-pulse/internal/domain"
)

// Open Trivia DB response codes. Anything other than success is treated as
// a load failure; the caller does not retry.
const responseCodeSuccess = 0

// OpenTDBClient fetches questions from the Open Trivia DB question bank.
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

type openTDBResponse struct {
	ResponseCode int             `json:"response_code"`
	Results      []openTDBResult `json:"results"`
}

type openTDBResult struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// NewOpenTDBClient creates a client for the given API base URL,
// e.g. "https://opentdb.com/api.php".
func NewOpenTDBClient(baseURL string) *OpenTDBClient {
	return &OpenTDBClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchQuestions fetches amount questions, decodes HTML entities in all text
// fields and shuffles the merged choice list per question. The shuffle is
// deliberately unseeded; question order within a page is the bank's own.
func (c *OpenTDBClient) FetchQuestions(ctx context.Context, amount int) ([]domain.Question, error) {
	reqURL := fmt.Sprintf("%s?amount=%d", c.baseURL, amount)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewQuestionBankError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewQuestionBankError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewQuestionBankError(fmt.Errorf("question bank returned status %d", resp.StatusCode))
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewQuestionBankError(fmt.Errorf("malformed question bank response: %w", err))
	}
	if payload.ResponseCode != responseCodeSuccess || len(payload.Results) == 0 {
		return nil, domain.NewQuestionBankError(fmt.Errorf("question bank response code %d with %d results",
			payload.ResponseCode, len(payload.Results)))
	}

	questions := make([]domain.Question, 0, len(payload.Results))
	for _, item := range payload.Results {
		questions = append(questions, processResult(item))
	}
	return questions, nil
}

// processResult decodes entities and builds the shuffled choice list for a
// single raw item.
func processResult(item openTDBResult) domain.Question {
	correct := html.UnescapeString(item.CorrectAnswer)

	choices := make([]string, 0, len(item.IncorrectAnswers)+1)
	for _, incorrect := range item.IncorrectAnswers {
		choices = append(choices, html.UnescapeString(incorrect))
	}
	choices = append(choices, correct)

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return domain.Question{
		Question:      html.UnescapeString(item.Question),
		CorrectAnswer: correct,
		Choices:       choices,
		Type:          item.Type,
		Difficulty:    item.Difficulty,
		Category:      html.UnescapeString(item.Category),
	}
}
