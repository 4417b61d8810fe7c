package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/reviewpulse/internal/platform/version"
)

const (
	startupProbeTimeout   = 2 * time.Second
	readinessProbeTimeout = 5 * time.Second
)

// HealthCheck is a named dependency check, e.g. a Postgres or Redis ping.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type dependencyStatus struct {
	OK        bool    `json:"ok"`
	Error     string  `json:"error,omitempty"`
	LatencyMS float64 `json:"latency_ms"`
}

type healthReport struct {
	Status string                      `json:"status"`
	Checks map[string]dependencyStatus `json:"checks"`
}

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health/startup", s.probe(startupProbeTimeout))
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.probe(readinessProbeTimeout))
	s.echo.GET("/version", s.handleVersion)
}

// probe checks every dependency within timeout and answers 503 if any failed.
func (s *Server) probe(timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		report := s.checkDependencies(ctx)
		code := http.StatusOK
		if report.Status != "ready" {
			code = http.StatusServiceUnavailable
		}
		if err := c.JSON(code, report); err != nil {
			return fmt.Errorf("failed to write health response: %w", err)
		}
		return nil
	}
}

// checkDependencies runs all checks concurrently so one slow dependency does not
// hide the state of the others.
func (s *Server) checkDependencies(ctx context.Context) healthReport {
	report := healthReport{
		Status: "ready",
		Checks: make(map[string]dependencyStatus, len(s.healthChecks)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, hc := range s.healthChecks {
		wg.Go(func() {
			start := s.clock.Now()
			err := hc.Check(ctx)
			status := dependencyStatus{
				OK:        err == nil,
				LatencyMS: float64(s.clock.Since(start).Microseconds()) / 1000,
			}
			if err != nil {
				status.Error = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			report.Checks[hc.Name] = status
			if err != nil {
				report.Status = "unhealthy"
			}
		})
	}
	wg.Wait()

	return report
}

func (s *Server) handleLiveness(c echo.Context) error {
	response := map[string]any{
		"status":         "ok",
		"uptime_seconds": s.clock.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

func (s *Server) handleVersion(c echo.Context) error {
	if err := c.JSON(http.StatusOK, version.Get()); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
