package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"quiz-pulse/internal/cache"
	"quiz-pulse/internal/config"
	"quiz-pulse/internal/domain"
	"quiz-pulse/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TriviaService serves question pages from the external question bank,
// caching pages for a short TTL and collapsing concurrent fetches so a burst
// of clients cannot trip the bank's rate limiting.
type TriviaService interface {
	GetQuestions(ctx context.Context, amount int) ([]domain.Question, error)
}

type triviaService struct {
	source   domain.QuestionSource
	cache    domain.Cache
	cfg      *config.Config
	fetching singleflight.Group
}

// NewTriviaService creates a new TriviaService.
func NewTriviaService(source domain.QuestionSource, cacheAdapter domain.Cache, cfg *config.Config) TriviaService {
	return &triviaService{
		source: source,
		cache:  cacheAdapter,
		cfg:    cfg,
	}
}

func questionsCacheKey(amount int) string {
	return cache.GenerateCacheKey("trivia", "questions", strconv.Itoa(amount))
}

// GetQuestions returns a page of questions, from cache when a fresh page
// exists. Concurrent misses for the same amount share one upstream fetch.
func (s *triviaService) GetQuestions(ctx context.Context, amount int) ([]domain.Question, error) {
	key := questionsCacheKey(amount)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var questions []domain.Question
		if unmarshalErr := json.Unmarshal([]byte(cached), &questions); unmarshalErr == nil {
			return questions, nil
		}
		// A corrupt entry is dropped and refetched.
		_ = s.cache.Delete(ctx, key)
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Question cache unavailable, fetching directly", zap.Error(err))
	}

	result, err, _ := s.fetching.Do(key, func() (interface{}, error) {
		questions, fetchErr := s.source.FetchQuestions(ctx, amount)
		if fetchErr != nil {
			return nil, fetchErr
		}

		if data, marshalErr := json.Marshal(questions); marshalErr == nil {
			if setErr := s.cache.Set(ctx, key, string(data), s.cfg.Trivia.CacheTTL); setErr != nil {
				logger.Get().Warn("Failed to cache question page", zap.Error(setErr))
			}
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}
