package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/reviewpulse/internal/domain"
	apperrors "github.com/pscheid92/reviewpulse/internal/platform/errors"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
)

const (
	msgTextTooShort = "Review text must be at least 10 characters long."
	msgTextTooLong  = "Review text cannot exceed 1000 characters."
	msgInvalidBody  = "Request body must be JSON with a text field and an optional numeric star_rating."
)

type analyzeRequest struct {
	Text       string   `json:"text"`
	StarRating *float64 `json:"star_rating"`
}

type analyzeResponse struct {
	Success   bool             `json:"success"`
	Sentiment sentiment.Label  `json:"sentiment"`
	Details   sentiment.Result `json:"details"`
	ReviewID  *uuid.UUID       `json:"review_id,omitempty"`
}

func (s *Server) registerAnalyzeRoutes() {
	cors := analyzeCORS()
	limiter := newRateLimiter(s.config.AnalyzeRateLimit, s.config.AnalyzeRateBurst)

	s.echo.POST("/api/analyze", s.handleAnalyze, cors, limiter)
	s.echo.OPTIONS("/api/analyze", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, cors)
}

func (s *Server) handleAnalyze(c echo.Context) error {
	// The body is decoded as JSON whatever the Content-Type says. An empty body
	// falls through to text validation.
	var req analyzeRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.ValidationError(msgInvalidBody)
	}

	analysis, err := s.app.Analyze(c.Request().Context(), req.Text, req.StarRating)
	if errors.Is(err, domain.ErrTextTooShort) {
		return apperrors.ValidationError(msgTextTooShort)
	}
	if errors.Is(err, domain.ErrTextTooLong) {
		return apperrors.ValidationError(msgTextTooLong)
	}
	if err != nil {
		return apperrors.InternalError("failed to analyze review", err)
	}

	review := analysis.Review
	resp := analyzeResponse{
		Success:   true,
		Sentiment: review.Result.Sentiment,
		Details:   review.Result,
	}
	if analysis.Persisted {
		resp.ReviewID = &review.ID
	}

	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
