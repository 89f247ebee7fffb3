package service

import (
	"context"

	"quiz-pulse/internal/domain"
	"quiz-pulse/internal/dto"
	"quiz-pulse/internal/logger"
	"quiz-pulse/internal/repository"

	"go.uber.org/zap"
)

// QuizService handles email registration and quiz response persistence.
type QuizService interface {
	SubmitEmail(ctx context.Context, email string) (*dto.SubmitEmailResponse, error)
	SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetQuizResponses(ctx context.Context, email string) (*dto.QuizListResponse, error)
	GetLatestQuizResponse(ctx context.Context, email string) (*dto.LatestQuizResponse, error)
}

type quizService struct {
	userRepo repository.UserRepository
	quizRepo repository.QuizResponseRepository
}

// NewQuizService creates a new QuizService.
func NewQuizService(userRepo repository.UserRepository, quizRepo repository.QuizResponseRepository) QuizService {
	return &quizService{
		userRepo: userRepo,
		quizRepo: quizRepo,
	}
}

// SubmitEmail registers an email, creating the user on first submission.
// Resubmitting an existing email is a no-op and still succeeds.
func (s *quizService) SubmitEmail(ctx context.Context, email string) (*dto.SubmitEmailResponse, error) {
	normalized := domain.NormalizeEmail(email)

	user, err := s.userRepo.UpsertUser(ctx, normalized)
	if err != nil {
		logger.Get().Error("Failed to upsert user", zap.String("email", normalized), zap.Error(err))
		return nil, domain.NewStorageError("Failed to submit email", err)
	}

	return &dto.SubmitEmailResponse{
		Message: "Email submitted successfully",
		Email:   user.Email,
	}, nil
}

// SubmitQuiz stores a new quiz attempt. Attempts always append; an earlier
// attempt for the same email is never touched.
func (s *quizService) SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	response := req.ToDomain()

	quizID, err := s.quizRepo.InsertQuizResponse(ctx, response)
	if err != nil {
		logger.Get().Error("Failed to insert quiz response",
			zap.String("email", response.Email),
			zap.Int("score", response.Score),
			zap.Error(err))
		return nil, domain.NewStorageError("Failed to submit quiz", err)
	}

	logger.Get().Info("Quiz submitted",
		zap.String("email", response.Email),
		zap.String("quizId", quizID),
		zap.Int("score", response.Score),
		zap.Int("totalQuestions", response.TotalQuestions))

	return &dto.SubmitQuizResponse{
		Message:        "Quiz submitted successfully",
		QuizID:         quizID,
		Score:          response.Score,
		TotalQuestions: response.TotalQuestions,
	}, nil
}

// GetQuizResponses returns all attempts for an email, newest first. No
// stored attempts is a not-found condition, not an empty success.
func (s *quizService) GetQuizResponses(ctx context.Context, email string) (*dto.QuizListResponse, error) {
	normalized := domain.NormalizeEmail(email)

	responses, err := s.quizRepo.GetResponsesByEmail(ctx, normalized)
	if err != nil {
		logger.Get().Error("Failed to fetch quiz responses", zap.String("email", normalized), zap.Error(err))
		return nil, domain.NewStorageError("Failed to fetch quiz results", err)
	}
	if len(responses) == 0 {
		return nil, domain.NewNotFoundError("No quiz results found for this email")
	}

	payloads := make([]dto.QuizResponsePayload, 0, len(responses))
	for _, r := range responses {
		payloads = append(payloads, dto.FromDomainQuizResponse(r))
	}
	return &dto.QuizListResponse{QuizResponses: payloads}, nil
}

// GetLatestQuizResponse returns the most recent attempt for an email.
func (s *quizService) GetLatestQuizResponse(ctx context.Context, email string) (*dto.LatestQuizResponse, error) {
	normalized := domain.NormalizeEmail(email)

	response, err := s.quizRepo.GetLatestResponseByEmail(ctx, normalized)
	if err != nil {
		logger.Get().Error("Failed to fetch latest quiz response", zap.String("email", normalized), zap.Error(err))
		return nil, domain.NewStorageError("Failed to fetch quiz result", err)
	}
	if response == nil {
		return nil, domain.NewNotFoundError("No quiz results found for this email")
	}

	return &dto.LatestQuizResponse{Quiz: dto.FromDomainQuizResponse(response)}, nil
}
