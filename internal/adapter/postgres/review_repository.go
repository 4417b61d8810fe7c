package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pscheid92/reviewpulse/internal/domain"
)

const reviewColumns = `id, created_at, text, star_rating, result`

const insertReview = `
INSERT INTO reviews (id, created_at, text, star_rating, sentiment, confidence_score, confidence_level, result)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const countReviews = `
SELECT
    COUNT(*),
    COUNT(*) FILTER (WHERE sentiment = 'Positive'),
    COUNT(*) FILTER (WHERE sentiment = 'Negative'),
    COUNT(*) FILTER (WHERE sentiment = 'Neutral'),
    COALESCE(SUM(confidence_score), 0),
    COUNT(*) FILTER (WHERE star_rating = 1),
    COUNT(*) FILTER (WHERE star_rating = 2),
    COUNT(*) FILTER (WHERE star_rating = 3),
    COUNT(*) FILTER (WHERE star_rating = 4),
    COUNT(*) FILTER (WHERE star_rating = 5)
FROM reviews`

type ReviewRepo struct {
	pool *pgxpool.Pool
}

var _ domain.ReviewRepository = (*ReviewRepo)(nil)

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

func (r *ReviewRepo) Save(ctx context.Context, review *domain.Review) error {
	encoded, err := json.Marshal(review.Result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}

	_, err = r.pool.Exec(ctx, insertReview,
		review.ID,
		review.CreatedAt,
		review.Text,
		review.StarRating,
		string(review.Result.Sentiment),
		review.Result.ConfidenceScore,
		string(review.Result.ConfidenceLevel),
		encoded,
	)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}

	review, err := pgx.CollectExactlyOneRow(rows, scanReview)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}
	return review, nil
}

func (r *ReviewRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews, err := pgx.CollectRows(rows, scanReview)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepo) Counts(ctx context.Context) (*domain.ReviewCounts, error) {
	var c domain.ReviewCounts
	err := r.pool.QueryRow(ctx, countReviews).Scan(
		&c.Total,
		&c.Positive,
		&c.Negative,
		&c.Neutral,
		&c.ConfidenceSum,
		&c.Ratings[0],
		&c.Ratings[1],
		&c.Ratings[2],
		&c.Ratings[3],
		&c.Ratings[4],
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	return &c, nil
}

func scanReview(row pgx.CollectableRow) (*domain.Review, error) {
	var (
		review  domain.Review
		encoded []byte
	)
	if err := row.Scan(&review.ID, &review.CreatedAt, &review.Text, &review.StarRating, &encoded); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(encoded, &review.Result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}
	review.CreatedAt = review.CreatedAt.UTC()
	return &review, nil
}
