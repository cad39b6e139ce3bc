package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/inkyard/petstock-api/internal/advice"
	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/internal/repository"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
)

// AdvicePlaceholder is returned whenever the generator is disabled or
// failing. Advice is best-effort decoration and must never block a
// CRUD flow.
const AdvicePlaceholder = "Feeding advice is currently unavailable."

// AdviceService wraps the external generator with a cache so repeated
// views of the same pet do not re-issue the upstream call.
type AdviceService struct {
	generator advice.Generator
	cache     *repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewAdviceService constructs an AdviceService. A nil generator means
// the feature is disabled and only the placeholder is served.
func NewAdviceService(generator advice.Generator, cache *repository.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *AdviceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdviceService{generator: generator, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// FeedingAdvice returns advice text for the pet, degrading to the
// placeholder on any generator failure.
func (s *AdviceService) FeedingAdvice(ctx context.Context, pet models.Pet) string {
	if s.generator == nil {
		return AdvicePlaceholder
	}

	cacheKey := "advice:" + pet.ID
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			return cached
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("advice cache lookup failed", zap.Error(err))
		}
	}

	text, err := s.generator.FeedingAdvice(ctx, pet)
	if err != nil {
		s.logger.Warn("advice generation failed", zap.String("pet_id", pet.ID), zap.Error(err))
		return AdvicePlaceholder
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, text, s.cacheTTL); err != nil {
			s.logger.Warn("advice cache write failed", zap.Error(err))
		}
	}
	return text
}
