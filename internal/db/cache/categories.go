// Package cache holds Redis read-through decorators over the storage layer.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

const (
	defaultCategoryTTL = time.Minute
	categoriesKey      = "trivia:categories"
)

// CategoryStore is the storage contract the decorator wraps and satisfies.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (domain.Category, error)
	CreateCategory(ctx context.Context, categoryType string) (domain.Category, error)
}

// kv is the subset of redis.Cmdable the decorator needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Categories caches the full category list in Redis. Categories are never
// updated or deleted, so dropping the key on create keeps the list exact.
// Redis failures are logged and the call falls through to the store.
type Categories struct {
	next   CategoryStore
	client kv
	ttl    time.Duration
	logger zerolog.Logger
}

var _ CategoryStore = (*Categories)(nil)

func NewCategories(next CategoryStore, client kv, ttl time.Duration, logger zerolog.Logger) *Categories {
	if ttl <= 0 {
		ttl = defaultCategoryTTL
	}
	return &Categories{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "category_cache").Logger(),
	}
}

func (c *Categories) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := c.get(ctx); ok {
		return cached, nil
	}

	categories, err := c.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, categories)
	return categories, nil
}

// GetCategory answers from the cached list when present, otherwise the store.
func (c *Categories) GetCategory(ctx context.Context, id int) (domain.Category, error) {
	if cached, ok := c.get(ctx); ok {
		for _, cat := range cached {
			if cat.ID == id {
				return cat, nil
			}
		}
	}
	return c.next.GetCategory(ctx, id)
}

func (c *Categories) CreateCategory(ctx context.Context, categoryType string) (domain.Category, error) {
	created, err := c.next.CreateCategory(ctx, categoryType)
	if err != nil {
		return domain.Category{}, err
	}
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("category cache invalidation failed")
	}
	return created, nil
}

func (c *Categories) get(ctx context.Context) ([]domain.Category, bool) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("category cache read failed")
		}
		return nil, false
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		c.logger.Warn().Err(fmt.Errorf("decode cached categories: %w", err)).Msg("category cache read failed")
		return nil, false
	}
	return categories, true
}

func (c *Categories) set(ctx context.Context, categories []domain.Category) {
	data, err := json.Marshal(categories)
	if err != nil {
		c.logger.Warn().Err(err).Msg("category cache encode failed")
		return
	}
	if err := c.client.Set(ctx, categoriesKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("category cache write failed")
	}
}
