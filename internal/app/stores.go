package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/cache"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// QuestionStore is a question store the quiz selector can also draw from.
type QuestionStore interface {
	question.QuestionStore
	quiz.Pool
}

// Stores is the opened storage layer for the configured driver.
type Stores struct {
	Questions  QuestionStore
	Categories question.CategoryStore
	// Readiness checks for /readyz, one per backing service.
	Readiness map[string]server.CheckFunc

	pool  *pgxpool.Pool
	redis *redis.Client
}

// OpenStores connects the configured storage driver and, when REDIS_ADDR is
// set, puts the category cache in front of it.
func OpenStores(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*Stores, error) {
	s := &Stores{Readiness: map[string]server.CheckFunc{}}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		store := memory.New()
		s.Questions, s.Categories = store, store
		s.Readiness["memory"] = store.Ping
		logger.Warn().Msg("using in-memory storage; data is lost on exit")
	case config.DriverPostgres:
		pool, err := repository.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		s.pool = pool
		s.Questions = repository.NewQuestionRepository(pool)
		s.Categories = repository.NewCategoryRepository(pool)
		s.Readiness["postgres"] = pool.Ping
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		s.redis = client
		s.Categories = cache.NewCategories(s.Categories, client, cfg.Redis.CategoryCacheTTL, logger)
		s.Readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("category cache enabled")
	}
	return s, nil
}

// Close releases the pool and the Redis client, whichever were opened.
func (s *Stores) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}
	return nil
}
