package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/playforge/quiz-duel/internal/config"
	"github.com/playforge/quiz-duel/internal/engine"
	"github.com/playforge/quiz-duel/internal/gateway"
	"github.com/playforge/quiz-duel/internal/logging"
	"github.com/playforge/quiz-duel/internal/question"
	"github.com/playforge/quiz-duel/internal/server"
	"github.com/playforge/quiz-duel/pkg/http/ws"
)

// Application aggregates the engine, the gateway, and shared infrastructure.
// Postgres and Redis are optional: the default static bank needs neither.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, the question bank, the match engine, and the
// HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("bank_source", cfg.Bank.Source).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}

	loader, err := a.buildLoader(ctx)
	if err != nil {
		return nil, err
	}

	questions, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	bank, err := question.NewBank(questions)
	if err != nil {
		return nil, fmt.Errorf("build question bank: %w", err)
	}
	logger.Info().Int("questions", bank.Len()).Msg("question bank loaded")

	metrics := engine.NewMetrics(prometheus.DefaultRegisterer)
	eng := engine.New(bank, engine.Config{RoundWinTarget: cfg.Game.RoundWinTarget}, metrics, logger)

	hub := ws.NewSeatHub(logger)
	gw := gateway.NewHandler(eng, hub, cfg.Game.TurnDuration, logger)

	a.http = server.NewHTTPServer(cfg, logger, gw.HandleWebSocket)
	return a, nil
}

func (a *Application) buildLoader(ctx context.Context) (question.Loader, error) {
	var loader question.Loader

	switch a.cfg.Bank.Source {
	case config.BankSourceStatic:
		loader = question.NewStaticLoader(question.DefaultPack())
	case config.BankSourceFile:
		loader = question.NewFileLoader(a.cfg.Bank.FilePath)
	case config.BankSourcePostgres:
		connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			a.cfg.Postgres.Host, a.cfg.Postgres.Port, a.cfg.Postgres.User,
			a.cfg.Postgres.Password, a.cfg.Postgres.Database, a.cfg.Postgres.SSLMode)
		pool, err := pgxpool.New(ctx, connString)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		loader = question.NewPostgresLoader(pool)
	default:
		return nil, fmt.Errorf("unknown bank source %q", a.cfg.Bank.Source)
	}

	if a.cfg.Bank.CacheEnabled {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			DB:       a.cfg.Redis.DB,
			PoolSize: a.cfg.Redis.PoolSize,
		})
		loader = question.NewRedisCache(a.redis, loader, a.cfg.Bank.CacheTTL)
	}

	return loader, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
