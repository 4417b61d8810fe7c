package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminRequest(srv *Server, target string, authenticate bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authenticate {
		req.SetBasicAuth(testAdminUser, testAdminPassword)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func storedReview(text string) *domain.Review {
	return &domain.Review{
		ID:        uuid.New(),
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Text:      text,
		Result:    sentiment.Analyze(text, nil),
	}
}

func TestAdminRoutes_RequireCredentials(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	for _, target := range []string{"/api/reviews", "/api/stats", "/api/reviews/" + uuid.NewString()} {
		t.Run(target, func(t *testing.T) {
			rec := adminRequest(srv, target, false)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.True(t, strings.HasPrefix(strings.ToLower(rec.Header().Get("WWW-Authenticate")), "basic realm="))
			assert.False(t, decodeError(t, rec).Success)
		})
	}
}

func TestAdminRoutes_WrongPassword(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.SetBasicAuth(testAdminUser, "wrong")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleListReviews(t *testing.T) {
	var gotLimit int
	srv := newTestServer(t, &mockAppService{
		listRecentFn: func(_ context.Context, limit int) ([]*domain.Review, error) {
			gotLimit = limit
			return []*domain.Review{storedReview("works great"), storedReview("awful, terrible stuff")}, nil
		},
	})

	rec := adminRequest(srv, "/api/reviews?limit=2", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotLimit)

	var body struct {
		Reviews []struct {
			ID        string           `json:"id"`
			Text      string           `json:"text"`
			Sentiment string           `json:"sentiment"`
			Details   sentiment.Result `json:"details"`
		} `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Reviews, 2)
	assert.Equal(t, "works great", body.Reviews[0].Text)
	assert.Equal(t, "Positive", body.Reviews[0].Sentiment)
	assert.Equal(t, "Negative", body.Reviews[1].Sentiment)
}

func TestHandleListReviews_DefaultLimitAndEmpty(t *testing.T) {
	gotLimit := -1
	srv := newTestServer(t, &mockAppService{
		listRecentFn: func(_ context.Context, limit int) ([]*domain.Review, error) {
			gotLimit = limit
			return nil, nil
		},
	})

	rec := adminRequest(srv, "/api/reviews", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, gotLimit, "the app service applies the default")
	assert.JSONEq(t, `{"reviews":[]}`, rec.Body.String())
}

func TestHandleListReviews_InvalidLimit(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := adminRequest(srv, "/api/reviews?limit=ten", true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit must be an integer", decodeError(t, rec).Error)
}

func TestHandleListReviews_Failure(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		listRecentFn: func(context.Context, int) ([]*domain.Review, error) {
			return nil, errors.New("db down")
		},
	})

	rec := adminRequest(srv, "/api/reviews", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleGetReview(t *testing.T) {
	review := storedReview("highly recommend")
	srv := newTestServer(t, &mockAppService{
		getReviewFn: func(_ context.Context, reviewID uuid.UUID) (*domain.Review, error) {
			if reviewID == review.ID {
				return review, nil
			}
			return nil, domain.ErrReviewNotFound
		},
	})

	rec := adminRequest(srv, "/api/reviews/"+review.ID.String(), true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), review.ID.String())
	assert.Contains(t, rec.Body.String(), `"created_at":"2026-03-01T12:00:00Z"`)

	rec = adminRequest(srv, "/api/reviews/"+uuid.NewString(), true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = adminRequest(srv, "/api/reviews/not-a-uuid", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStats(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		statsFn: func(context.Context) (*domain.ReviewStats, error) {
			return &domain.ReviewStats{
				Total:              3,
				Positive:           2,
				Negative:           1,
				PositivePercent:    66.7,
				AverageConfidence:  69.9,
				RatingDistribution: [5]int{1, 0, 0, 0, 2},
			}, nil
		},
	})

	rec := adminRequest(srv, "/api/stats", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"total_reviews": 3,
		"positive": 2,
		"negative": 1,
		"neutral": 0,
		"positive_percent": 66.7,
		"average_confidence": 69.9,
		"rating_distribution": [1, 0, 0, 0, 2]
	}`, rec.Body.String())
}

func TestHandleStats_Failure(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := adminRequest(srv, "/api/stats", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, decodeError(t, rec).Success)
}
