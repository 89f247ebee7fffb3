package handler

import (
	"strconv"

	"quiz-pulse/internal/domain"
	"quiz-pulse/internal/dto"
	"quiz-pulse/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxQuestionAmount = 50

// QuizHandler binds the quiz API routes to the service layer.
type QuizHandler struct {
	quizService   service.QuizService
	triviaService service.TriviaService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService service.QuizService, triviaService service.TriviaService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		triviaService: triviaService,
	}
}

// Health reports that the API is up.
// @Summary Health check
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router / [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Message: "Quiz Application API is running!"})
}

// SubmitEmail registers a quiz taker's email.
// @Summary Submit email
// @Description Creates the user on first submission; resubmission is a no-op.
// @Accept json
// @Produce json
// @Param request body dto.SubmitEmailRequest true "Email to register"
// @Success 200 {object} dto.SubmitEmailResponse
// @Failure 400 {object} middleware.ErrorResponse "Email is required"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/submit-email [post]
func (h *QuizHandler) SubmitEmail(c *fiber.Ctx) error {
	var req dto.SubmitEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Email is required")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return domain.NewInvalidInputError("Email is required")
	}

	response, err := h.quizService.SubmitEmail(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// SubmitQuiz stores a completed quiz attempt.
// @Summary Submit quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Graded quiz attempt"
// @Success 201 {object} dto.SubmitQuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Missing required fields"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/submit-quiz [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Missing required fields")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return domain.NewInvalidInputError("Missing required fields")
	}

	response, err := h.quizService.SubmitQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetQuizResponses returns every stored attempt for an email, newest first.
// @Summary Get quiz results by email
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} dto.QuizListResponse
// @Failure 404 {object} middleware.ErrorResponse "No quiz results found"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/quiz/{email} [get]
func (h *QuizHandler) GetQuizResponses(c *fiber.Ctx) error {
	email := c.Params("email")

	response, err := h.quizService.GetQuizResponses(c.Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetLatestQuizResponse returns the most recent attempt for an email.
// @Summary Get latest quiz result by email
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} dto.LatestQuizResponse
// @Failure 404 {object} middleware.ErrorResponse "No quiz results found"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/quiz/{email}/latest [get]
func (h *QuizHandler) GetLatestQuizResponse(c *fiber.Ctx) error {
	email := c.Params("email")

	response, err := h.quizService.GetLatestQuizResponse(c.Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetQuestions serves a page of trivia questions from the question bank.
// @Summary Fetch trivia questions
// @Produce json
// @Param amount query int false "Number of questions (default 15, max 50)"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid amount"
// @Failure 503 {object} middleware.ErrorResponse "Question bank unavailable"
// @Router /api/questions [get]
func (h *QuizHandler) GetQuestions(c *fiber.Ctx) error {
	amount, err := strconv.Atoi(c.Query("amount", "15"))
	if err != nil || amount <= 0 || amount > maxQuestionAmount {
		return domain.NewInvalidInputError("Invalid amount")
	}

	questions, err := h.triviaService.GetQuestions(c.Context(), amount)
	if err != nil {
		return err
	}

	payloads := make([]dto.QuestionPayload, 0, len(questions))
	for _, q := range questions {
		payloads = append(payloads, dto.FromDomainQuestion(q))
	}
	return c.JSON(dto.QuestionsResponse{Questions: payloads})
}
