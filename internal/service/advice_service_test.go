package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/internal/repository"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) FeedingAdvice(ctx context.Context, pet models.Pet) (string, error) {
	g.calls++
	return g.text, g.err
}

func TestFeedingAdviceDisabled(t *testing.T) {
	svc := NewAdviceService(nil, nil, 0, zap.NewNop())

	got := svc.FeedingAdvice(context.Background(), models.Pet{ID: "PET-1234"})
	assert.Equal(t, AdvicePlaceholder, got)
}

func TestFeedingAdviceSuccess(t *testing.T) {
	gen := &stubGenerator{text: "Feed crickets twice a week."}
	svc := NewAdviceService(gen, nil, time.Minute, zap.NewNop())

	got := svc.FeedingAdvice(context.Background(), models.Pet{ID: "PET-1234", Species: "Gecko"})
	assert.Equal(t, "Feed crickets twice a week.", got)
	assert.Equal(t, 1, gen.calls)
}

func TestFeedingAdviceGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream down")}
	svc := NewAdviceService(gen, nil, time.Minute, zap.NewNop())

	got := svc.FeedingAdvice(context.Background(), models.Pet{ID: "PET-1234"})
	assert.Equal(t, AdvicePlaceholder, got)
}

func TestFeedingAdviceNilCacheAlwaysCallsGenerator(t *testing.T) {
	gen := &stubGenerator{text: "Feed daily."}
	cache := repository.NewCacheRepository(nil, zap.NewNop())
	svc := NewAdviceService(gen, cache, time.Minute, zap.NewNop())

	svc.FeedingAdvice(context.Background(), models.Pet{ID: "PET-1234"})
	svc.FeedingAdvice(context.Background(), models.Pet{ID: "PET-1234"})
	assert.Equal(t, 2, gen.calls)
}
