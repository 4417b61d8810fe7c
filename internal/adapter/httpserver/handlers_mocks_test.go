package httpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/reviewpulse/internal/app"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/platform/config"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
)

// --- Mock implementations ---

type mockAppService struct {
	analyzeFn    func(ctx context.Context, text string, rating *float64) (*app.Analysis, error)
	getReviewFn  func(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)
	listRecentFn func(ctx context.Context, limit int) ([]*domain.Review, error)
	statsFn      func(ctx context.Context) (*domain.ReviewStats, error)
}

func (m *mockAppService) Analyze(ctx context.Context, text string, rating *float64) (*app.Analysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, text, rating)
	}
	if err := app.ValidateText(text); err != nil {
		return nil, err
	}
	return &app.Analysis{
		Review: &domain.Review{
			ID:         uuid.New(),
			Text:       text,
			StarRating: rating,
			Result:     sentiment.Analyze(text, rating),
		},
		Persisted: true,
	}, nil
}

func (m *mockAppService) GetReview(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	if m.getReviewFn != nil {
		return m.getReviewFn(ctx, reviewID)
	}
	return nil, domain.ErrReviewNotFound
}

func (m *mockAppService) ListRecent(ctx context.Context, limit int) ([]*domain.Review, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return []*domain.Review{}, nil
}

func (m *mockAppService) Stats(ctx context.Context) (*domain.ReviewStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return nil, errors.New("not implemented")
}

// --- Test helpers ---

const (
	testAdminUser     = "admin"
	testAdminPassword = "s3cret"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:           "test",
		Port:             "0",
		AdminUsername:    testAdminUser,
		AdminPassword:    testAdminPassword,
		AnalyzeRateLimit: 100,
		AnalyzeRateBurst: 100,
	}
}

func newTestServer(t *testing.T, app appService, opts ...func(*config.Config)) *Server {
	t.Helper()

	cfg := testConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return NewServer(cfg, app, nil, nil, nil, clockwork.NewFakeClock())
}

func withRateLimit(ratePerSecond float64, burst int) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.AnalyzeRateLimit = ratePerSecond
		cfg.AnalyzeRateBurst = burst
	}
}

func withHealthChecks(srv *Server, checks ...HealthCheck) *Server {
	srv.healthChecks = checks
	return srv
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware()(handler)(c)
}
