package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/auth"
	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	warmer    *question.CategoryWarmer
	bgCancels []context.CancelFunc
}

// Infrastructure is the set of live connections a question service is built on.
type Infrastructure struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client // nil when caching is disabled
}

// Connect opens Postgres and, when configured, Redis.
func Connect(ctx context.Context, cfg *config.App) (Infrastructure, error) {
	pool, err := pgxpool.New(ctx, cfg.Postgres.PoolConnString())
	if err != nil {
		return Infrastructure{}, fmt.Errorf("connect postgres: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
	}
	return Infrastructure{Pool: pool, Redis: redisClient}, nil
}

// NewQuestionService wires repositories, the transaction manager and the
// optional category cache into a question.Service.
func NewQuestionService(cfg *config.App, infra Infrastructure, logger zerolog.Logger) *question.Service {
	queries := sqlcgen.New(infra.Pool)

	var cache question.CategoryCache
	if infra.Redis != nil {
		cache = question.NewCache(infra.Redis, cfg.Cache.CategoryTTL)
	}

	return question.NewService(
		repository.NewQuestionRepository(queries),
		repository.NewCategoryRepository(queries),
		repository.NewTxManager(infra.Pool),
		question.ServiceOptions{Cache: cache, Logger: logger},
	)
}

// New bootstraps logger, Postgres, Redis, the question API and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	infra, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if infra.Redis == nil {
		logger.Warn().Msg("REDIS_ADDR not configured; category cache disabled")
	}

	questionSvc := NewQuestionService(cfg, infra, logger)

	var guard *auth.Guard
	if cfg.Security.AuthEnabled() {
		guard = auth.NewGuard(jwt.NewManager(jwt.TokenConfig{
			Secret:   []byte(cfg.Security.JWTSecret),
			Issuer:   cfg.Security.JWTIssuer,
			Audience: cfg.Security.JWTAudience,
		}), logger)
		logger.Info().Msg("permission checks enabled for question create/delete")
	} else {
		guard = auth.NewGuard(nil, logger)
		logger.Warn().Msg("JWT_SECRET not configured; question create/delete are open")
	}

	questionHTTP := question.NewHTTPHandler(questionSvc, guard, logger)

	checks := []server.ReadinessCheck{{Name: "postgres", Check: infra.Pool.Ping}}
	var warmer *question.CategoryWarmer
	if infra.Redis != nil {
		redisClient := infra.Redis
		checks = append(checks, server.ReadinessCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
		warmer = question.NewCategoryWarmer(questionSvc, logger, cfg.Cache.WarmInterval)
	}

	apiServer := server.NewHTTPServer(cfg, logger, questionHTTP, checks...)

	return &Application{
		cfg:       cfg,
		logger:    logger,
		pool:      infra.Pool,
		redis:     infra.Redis,
		http:      apiServer,
		warmer:    warmer,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.warmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go a.warmer.Run(bgCtx)
	}
}
