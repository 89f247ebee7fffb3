package session

import (
	"fmt"
	"time"

	"quiz-pulse/internal/domain"
	"quiz-pulse/internal/dto"
)

// QuizDuration is how long an attempt may run before it is auto-submitted.
const QuizDuration = 30 * time.Minute

// Phase is the lifecycle state of a quiz session.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseActive
	PhaseSubmitting
	PhaseSubmitted
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrAlreadyLoaded is returned when Begin is called twice. The one-shot
// latch exists so a re-entrant caller cannot trigger a second question
// fetch against the rate-limited question bank.
var ErrAlreadyLoaded = fmt.Errorf("session questions already loaded")

// Session is the client-held state of one quiz attempt: current question
// index, per-question selections, visited set, and the attempt clock. It is
// owned by a single controller loop and is not safe for concurrent use.
type Session struct {
	email     string
	phase     Phase
	questions []domain.Question
	current   int
	answers   map[int]string
	visited   map[int]bool
	startedAt time.Time
	duration  time.Duration
	loaded    bool
}

// New creates a session in the loading phase for the given email.
func New(email string, duration time.Duration) *Session {
	return &Session{
		email:    email,
		phase:    PhaseLoading,
		answers:  make(map[int]string),
		visited:  make(map[int]bool),
		duration: duration,
	}
}

// Begin activates the session with the fetched questions. The first question
// is current and visited; the attempt clock starts now. A second call is
// rejected by the load latch.
func (s *Session) Begin(questions []domain.Question, now time.Time) error {
	if s.loaded {
		return ErrAlreadyLoaded
	}
	if len(questions) == 0 {
		return fmt.Errorf("cannot begin a session with no questions")
	}
	s.loaded = true
	s.questions = questions
	s.current = 0
	s.visited[0] = true
	s.startedAt = now
	s.phase = PhaseActive
	return nil
}

// FailLoad moves a loading session to the terminal error phase.
func (s *Session) FailLoad() {
	if s.phase == PhaseLoading {
		s.phase = PhaseError
	}
}

func (s *Session) Email() string                { return s.email }
func (s *Session) Phase() Phase                 { return s.phase }
func (s *Session) Questions() []domain.Question { return s.questions }
func (s *Session) TotalQuestions() int          { return len(s.questions) }
func (s *Session) Current() int                 { return s.current }

// CurrentQuestion returns the question at the current index.
func (s *Session) CurrentQuestion() domain.Question {
	return s.questions[s.current]
}

// SelectAnswer records the choice for the current question. Attempted status
// is implicit: a question is attempted once it has an answer entry.
func (s *Session) SelectAnswer(choice string) error {
	if s.phase != PhaseActive {
		return fmt.Errorf("cannot answer in %s phase", s.phase)
	}
	s.answers[s.current] = choice
	return nil
}

// Navigate moves to the question at index and marks it visited. The visited
// set only ever grows.
func (s *Session) Navigate(index int) error {
	if s.phase != PhaseActive {
		return fmt.Errorf("cannot navigate in %s phase", s.phase)
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("question index %d out of range [0, %d)", index, len(s.questions))
	}
	s.current = index
	s.visited[index] = true
	return nil
}

// Next advances to the following question, if any.
func (s *Session) Next() error {
	if s.current >= len(s.questions)-1 {
		return nil
	}
	return s.Navigate(s.current + 1)
}

// Previous moves back one question, if possible.
func (s *Session) Previous() error {
	if s.current <= 0 {
		return nil
	}
	return s.Navigate(s.current - 1)
}

// Answer returns the recorded choice for a question index.
func (s *Session) Answer(index int) (string, bool) {
	answer, ok := s.answers[index]
	return answer, ok
}

// Attempted reports whether a question has an answer recorded.
func (s *Session) Attempted(index int) bool {
	_, ok := s.answers[index]
	return ok
}

// Visited reports whether a question has been shown.
func (s *Session) Visited(index int) bool {
	return s.visited[index]
}

// AnsweredCount is the number of questions with a recorded answer.
func (s *Session) AnsweredCount() int {
	return len(s.answers)
}

// Remaining is the time left on the attempt clock.
func (s *Session) Remaining(now time.Time) time.Duration {
	remaining := s.duration - now.Sub(s.startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// BuildSubmission grades the attempt and moves the session to submitting.
// Elapsed time is measured from activation to now.
func (s *Session) BuildSubmission(now time.Time) (*dto.SubmitQuizRequest, error) {
	if s.phase != PhaseActive {
		return nil, fmt.Errorf("cannot submit in %s phase", s.phase)
	}
	s.phase = PhaseSubmitting

	results, score := domain.GradeQuiz(s.questions, s.answers)

	questions := make([]dto.QuestionResultPayload, 0, len(results))
	for _, r := range results {
		questions = append(questions, dto.QuestionResultPayload{
			Question:      r.Question,
			UserAnswer:    r.UserAnswer,
			CorrectAnswer: r.CorrectAnswer,
			IsCorrect:     r.IsCorrect,
			AllChoices:    r.AllChoices,
		})
	}

	timeTaken := int(now.Sub(s.startedAt).Seconds())
	return &dto.SubmitQuizRequest{
		Email:     s.email,
		Questions: questions,
		Score:     &score,
		TimeTaken: &timeTaken,
	}, nil
}

// CompleteSubmit moves the session to its terminal submitted phase.
func (s *Session) CompleteSubmit() {
	if s.phase == PhaseSubmitting {
		s.phase = PhaseSubmitted
	}
}

// FailSubmit returns the session to active; the user may retry.
func (s *Session) FailSubmit() {
	if s.phase == PhaseSubmitting {
		s.phase = PhaseActive
	}
}
