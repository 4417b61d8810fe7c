package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
)

const (
	MinReviewLength = 10
	MaxReviewLength = 1000
)

type Review struct {
	ID        uuid.UUID
	CreatedAt time.Time

	Text       string
	StarRating *float64

	Result sentiment.Result
}

// ReviewCounts are the raw aggregates the dashboard statistics are derived from.
// Ratings[i] counts reviews with a star rating of exactly i+1.
type ReviewCounts struct {
	Total         int
	Positive      int
	Negative      int
	Neutral       int
	ConfidenceSum float64
	Ratings       [5]int
}

// ReviewStats is what the admin dashboard shows.
type ReviewStats struct {
	Total              int     `json:"total_reviews"`
	Positive           int     `json:"positive"`
	Negative           int     `json:"negative"`
	Neutral            int     `json:"neutral"`
	PositivePercent    float64 `json:"positive_percent"`
	AverageConfidence  float64 `json:"average_confidence"`
	RatingDistribution [5]int  `json:"rating_distribution"`
}

type ReviewRepository interface {
	Save(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, reviewID uuid.UUID) (*Review, error)
	ListRecent(ctx context.Context, limit int) ([]*Review, error)
	Counts(ctx context.Context) (*ReviewCounts, error)
}
