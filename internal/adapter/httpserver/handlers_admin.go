package httpserver

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pscheid92/reviewpulse/internal/domain"
	apperrors "github.com/pscheid92/reviewpulse/internal/platform/errors"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
)

const adminRealm = "reviewpulse admin"

type reviewView struct {
	ID              uuid.UUID                 `json:"id"`
	CreatedAt       time.Time                 `json:"created_at"`
	Text            string                    `json:"text"`
	StarRating      *float64                  `json:"star_rating"`
	Sentiment       sentiment.Label           `json:"sentiment"`
	ConfidenceScore float64                   `json:"confidence_score"`
	ConfidenceLevel sentiment.ConfidenceLevel `json:"confidence_level"`
	Details         sentiment.Result          `json:"details"`
}

func toReviewView(r *domain.Review) reviewView {
	return reviewView{
		ID:              r.ID,
		CreatedAt:       r.CreatedAt,
		Text:            r.Text,
		StarRating:      r.StarRating,
		Sentiment:       r.Result.Sentiment,
		ConfidenceScore: r.Result.ConfidenceScore,
		ConfidenceLevel: r.Result.ConfidenceLevel,
		Details:         r.Result,
	}
}

func (s *Server) registerAdminRoutes() {
	admin := s.echo.Group("/api", s.requireAdmin())
	admin.GET("/reviews", s.handleListReviews)
	admin.GET("/reviews/:id", s.handleGetReview)
	admin.GET("/stats", s.handleStats)
}

// requireAdmin gates the dashboard endpoints behind HTTP basic auth.
func (s *Server) requireAdmin() echo.MiddlewareFunc {
	username := []byte(s.config.AdminUsername)
	password := []byte(s.config.AdminPassword)

	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: adminRealm,
		Validator: func(u, p string, _ echo.Context) (bool, error) {
			userOK := subtle.ConstantTimeCompare([]byte(u), username) == 1
			passOK := subtle.ConstantTimeCompare([]byte(p), password) == 1
			return userOK && passOK, nil
		},
	})
}

func (s *Server) handleListReviews(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.ValidationError("limit must be an integer").WithField("limit", raw)
		}
		limit = n
	}

	reviews, err := s.app.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return apperrors.InternalError("failed to load reviews", err)
	}

	views := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, toReviewView(r))
	}

	if err := c.JSON(http.StatusOK, map[string]any{"reviews": views}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetReview(c echo.Context) error {
	rawID := c.Param("id")
	reviewID, err := uuid.Parse(rawID)
	if err != nil {
		return apperrors.ValidationError("invalid review ID").WithField("review_id", rawID)
	}

	review, err := s.app.GetReview(c.Request().Context(), reviewID)
	if errors.Is(err, domain.ErrReviewNotFound) {
		return apperrors.NotFoundError("review not found").WithField("review_id", reviewID.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to load review", err).WithField("review_id", reviewID.String())
	}

	if err := c.JSON(http.StatusOK, toReviewView(review)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.app.Stats(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to compute statistics", err)
	}

	if err := c.JSON(http.StatusOK, stats); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
