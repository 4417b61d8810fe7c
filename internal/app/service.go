package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Service is the application layer. It is the only component that references
// multiple domain components.
type Service struct {
	reviews       domain.ReviewRepository
	cache         domain.ResultCache
	observer      domain.AnalysisObserver
	clock         clockwork.Clock
	analysisGroup singleflight.Group
}

// NewService creates the application layer service.
func NewService(reviews domain.ReviewRepository, cache domain.ResultCache, observer domain.AnalysisObserver, clock clockwork.Clock) *Service {
	return &Service{
		reviews:  reviews,
		cache:    cache,
		observer: observer,
		clock:    clock,
	}
}

// Analysis is the outcome of one analyze request.
type Analysis struct {
	Review *domain.Review

	// Cached reports whether the result came from the result cache.
	Cached bool
	// Persisted is false when the review could not be stored; the result is still valid.
	Persisted bool
}

// Analyze validates the review, scores it and records it in the review history.
// A star rating of 0 is treated like no rating.
func (s *Service) Analyze(ctx context.Context, text string, rating *float64) (*Analysis, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	if rating != nil && *rating == 0 {
		rating = nil
	}

	start := s.clock.Now()
	result, cached := s.score(ctx, text, rating)
	s.observer.ObserveAnalysis(result, cached, s.clock.Since(start).Seconds())

	review := &domain.Review{
		ID:         uuid.New(),
		CreatedAt:  s.clock.Now().UTC(),
		Text:       text,
		StarRating: rating,
		Result:     result,
	}

	persisted := true
	if err := s.reviews.Save(ctx, review); err != nil {
		persisted = false
		s.observer.ObservePersistFailure()
		slog.ErrorContext(ctx, "Failed to persist review", "review_id", review.ID.String(), "error", err)
	}

	slog.DebugContext(ctx, "Review analyzed",
		"review_id", review.ID.String(),
		"sentiment", result.Sentiment,
		"confidence", result.ConfidenceScore,
		"cached", cached,
	)

	return &Analysis{Review: review, Cached: cached, Persisted: persisted}, nil
}

// score returns the analysis for the input, consulting the result cache first.
// Concurrent misses for the same input are collapsed into one computation.
func (s *Service) score(ctx context.Context, text string, rating *float64) (sentiment.Result, bool) {
	key := Fingerprint(text, rating)

	if result, ok := s.cache.Get(ctx, key); ok {
		return result, true
	}

	v, _, _ := s.analysisGroup.Do(key, func() (any, error) {
		result := sentiment.Analyze(text, rating)
		s.cache.Set(ctx, key, result)
		return result, nil
	})
	return v.(sentiment.Result), false
}

// GetReview returns one stored review.
func (s *Service) GetReview(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	return s.reviews.GetByID(ctx, reviewID)
}

// ListRecent returns the newest reviews first. Non-positive limits fall back to
// DefaultListLimit; larger limits are capped at MaxListLimit.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*domain.Review, error) {
	reviews, err := s.reviews.ListRecent(ctx, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Stats derives the dashboard statistics from the stored reviews.
func (s *Service) Stats(ctx context.Context) (*domain.ReviewStats, error) {
	counts, err := s.reviews.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	stats := BuildStats(*counts)
	return &stats, nil
}

// BuildStats converts raw counts into dashboard statistics. Percentages and
// averages are rounded to one decimal and are zero when there are no reviews.
func BuildStats(c domain.ReviewCounts) domain.ReviewStats {
	stats := domain.ReviewStats{
		Total:              c.Total,
		Positive:           c.Positive,
		Negative:           c.Negative,
		Neutral:            c.Neutral,
		RatingDistribution: c.Ratings,
	}
	if c.Total > 0 {
		stats.PositivePercent = round1(float64(c.Positive) / float64(c.Total) * 100)
		stats.AverageConfidence = round1(c.ConfidenceSum / float64(c.Total))
	}
	return stats
}

// ValidateText enforces the review length bounds, counted in characters.
func ValidateText(text string) error {
	n := utf8.RuneCountInString(text)
	if n < domain.MinReviewLength {
		return domain.ErrTextTooShort
	}
	if n > domain.MaxReviewLength {
		return domain.ErrTextTooLong
	}
	return nil
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// Fingerprint identifies an analysis input for caching.
func Fingerprint(text string, rating *float64) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	if rating != nil {
		h.Write([]byte(strconv.FormatFloat(*rating, 'g', -1, 64)))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
