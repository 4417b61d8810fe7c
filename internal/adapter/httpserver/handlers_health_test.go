package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthOK(_ context.Context) error { return nil }

func healthErr(msg string) func(context.Context) error {
	return func(_ context.Context) error { return errors.New(msg) }
}

func getHealth(t *testing.T, srv *Server, path string) (*httptest.ResponseRecorder, healthReport) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var report healthReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	return rec, report
}

func TestStartupProbe_AllHealthy(t *testing.T) {
	srv := withHealthChecks(newTestServer(t, &mockAppService{}),
		HealthCheck{Name: "postgres", Check: healthOK},
		HealthCheck{Name: "redis", Check: healthOK},
	)

	rec, report := getHealth(t, srv, "/health/startup")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", report.Status)
	assert.True(t, report.Checks["postgres"].OK)
	assert.True(t, report.Checks["redis"].OK)
}

func TestReadinessProbe_RedisDown(t *testing.T) {
	srv := withHealthChecks(newTestServer(t, &mockAppService{}),
		HealthCheck{Name: "postgres", Check: healthOK},
		HealthCheck{Name: "redis", Check: healthErr("connection refused")},
	)

	rec, report := getHealth(t, srv, "/health/ready")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", report.Status)
	assert.True(t, report.Checks["postgres"].OK)
	assert.False(t, report.Checks["redis"].OK)
	assert.Equal(t, "connection refused", report.Checks["redis"].Error)
}

func TestReadinessProbe_ReportsEveryFailure(t *testing.T) {
	srv := withHealthChecks(newTestServer(t, &mockAppService{}),
		HealthCheck{Name: "postgres", Check: healthErr("no route to host")},
		HealthCheck{Name: "redis", Check: healthErr("connection refused")},
	)

	_, report := getHealth(t, srv, "/health/ready")

	assert.Equal(t, "no route to host", report.Checks["postgres"].Error)
	assert.Equal(t, "connection refused", report.Checks["redis"].Error)
}

func TestReadinessProbe_ChecksRunConcurrently(t *testing.T) {
	var started atomic.Int32
	both := make(chan struct{})
	waitForPeer := func(ctx context.Context) error {
		if started.Add(1) == 2 {
			close(both)
		}
		select {
		case <-both:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return errors.New("peer check never started")
		}
	}
	srv := withHealthChecks(newTestServer(t, &mockAppService{}),
		HealthCheck{Name: "postgres", Check: waitForPeer},
		HealthCheck{Name: "redis", Check: waitForPeer},
	)

	rec, report := getHealth(t, srv, "/health/ready")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", report.Status)
}

func TestReadinessProbe_NoChecks(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec, report := getHealth(t, srv, "/health/ready")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, report.Checks)
}

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","uptime_seconds":0}`, rec.Body.String())
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
	assert.EqualValues(t, 41, body["lexicon_words"])
}
