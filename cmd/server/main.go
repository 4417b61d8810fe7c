package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/adapter/httpserver"
	"github.com/pscheid92/reviewpulse/internal/adapter/metrics"
	"github.com/pscheid92/reviewpulse/internal/adapter/postgres"
	"github.com/pscheid92/reviewpulse/internal/adapter/redis"
	"github.com/pscheid92/reviewpulse/internal/app"
	"github.com/pscheid92/reviewpulse/internal/platform/config"
	"github.com/pscheid92/reviewpulse/internal/platform/logging"
	"github.com/pscheid92/reviewpulse/internal/platform/retry"
	goredis "github.com/redis/go-redis/v9"
)

const (
	connectTimeout      = 60 * time.Second
	shutdownTimeout     = 10 * time.Second
	breakerDelay        = 10 * time.Second
	cacheEvictionPeriod = time.Minute
	healthCheckTimeout  = 2 * time.Second
)

type collectors struct {
	http     *metrics.HTTPMetrics
	cache    *metrics.CacheMetrics
	analysis *metrics.AnalysisMetrics
	db       *metrics.DBMetrics
	redis    *metrics.RedisMetrics
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func logRetry(service string) func(attempt int, err error, backoff time.Duration) {
	return func(attempt int, err error, backoff time.Duration) {
		slog.Warn("Backing service not ready, retrying", "service", service, "attempt", attempt, "backoff", backoff, "error", err)
	}
}

func setupDB(cfg *config.Config, m *metrics.DBMetrics) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := retry.Do(ctx, retry.StartupPolicy(logRetry("postgres")), retry.Transient, func(ctx context.Context) (*pgxpool.Pool, error) {
		return postgres.Connect(ctx, cfg.DatabaseURL, m)
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	return pool
}

func setupRedis(cfg *config.Config, m *metrics.RedisMetrics) *goredis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	hooks := []goredis.Hook{
		redis.NewMetricsHook(m),
		redis.NewCircuitBreakerHook(m, breakerDelay),
	}
	client, err := retry.Do(ctx, retry.StartupPolicy(logRetry("redis")), retry.Transient, func(ctx context.Context) (*goredis.Client, error) {
		return redis.NewClient(ctx, cfg.RedisURL, hooks...)
	})
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func healthChecks(pool *pgxpool.Pool, rdb *goredis.Client) []httpserver.HealthCheck {
	return []httpserver.HealthCheck{
		{Name: "postgres", Check: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
			defer cancel()
			return pool.Ping(ctx)
		}},
		{Name: "redis", Check: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
			defer cancel()
			return rdb.Ping(ctx).Err()
		}},
	}
}

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	registry := metrics.NewRegistry()
	m := collectors{
		http:     metrics.NewHTTPMetrics(registry),
		cache:    metrics.NewCacheMetrics(registry),
		analysis: metrics.NewAnalysisMetrics(registry),
		db:       metrics.NewDBMetrics(registry),
		redis:    metrics.NewRedisMetrics(registry),
	}

	pool := setupDB(cfg, m.db)
	defer pool.Close()

	redisClient := setupRedis(cfg, m.redis)
	defer func() { _ = redisClient.Close() }()

	resultCache := redis.NewResultCache(redisClient, cfg.ResultCacheTTL, cfg.ResultMemoryCacheTTL, clock, m.cache)
	stopEviction := resultCache.StartEvictionTimer(cacheEvictionPeriod)
	defer stopEviction()

	appSvc := app.NewService(postgres.NewReviewRepo(pool), resultCache, m.analysis, clock)

	srv := httpserver.NewServer(cfg, appSvc, m.http, metrics.Handler(registry), healthChecks(pool, redisClient), clock)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
