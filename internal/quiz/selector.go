// Package quiz picks the next unseen question of a quiz round. It keeps no
// state between calls: the caller sends back every id it has already served.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

// AllCategories selects from every question regardless of category.
const AllCategories = 0

// Pool is the storage view the selector draws from.
type Pool interface {
	CandidateIDs(ctx context.Context, categoryID int, exclude []int) ([]int, error)
	GetQuestion(ctx context.Context, id int) (domain.Question, error)
}

// Categories resolves a category id so unknown ids fail loudly.
type Categories interface {
	GetCategory(ctx context.Context, id int) (domain.Category, error)
}

// Source returns a uniform int in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

type Option func(*Selector)

// WithSource replaces the process-wide random source, mainly for seeded tests.
func WithSource(src Source) Option {
	return func(s *Selector) {
		if src != nil {
			s.src = src
		}
	}
}

type Selector struct {
	pool       Pool
	categories Categories
	src        Source
	logger     zerolog.Logger
}

func NewSelector(pool Pool, categories Categories, logger zerolog.Logger, opts ...Option) *Selector {
	s := &Selector{
		pool:       pool,
		categories: categories,
		src:        globalSource{},
		logger:     logger.With().Str("component", "quiz_selector").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next draws uniformly among the questions of categoryID (or all of them for
// AllCategories) whose ids are not in previous. A nil question with a nil
// error means the round is over.
func (s *Selector) Next(ctx context.Context, categoryID int, previous []int) (*domain.Question, error) {
	if categoryID != AllCategories {
		if _, err := s.categories.GetCategory(ctx, categoryID); err != nil {
			return nil, fmt.Errorf("quiz category %d: %w", categoryID, err)
		}
	}

	ids, err := s.pool.CandidateIDs(ctx, categoryID, previous)
	if err != nil {
		return nil, fmt.Errorf("quiz candidates: %w", err)
	}

	for len(ids) > 0 {
		i := s.src.IntN(len(ids))
		q, err := s.pool.GetQuestion(ctx, ids[i])
		if err == nil {
			return &q, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("quiz question %d: %w", ids[i], err)
		}
		// Deleted after the candidate read; draw again from the rest.
		s.logger.Debug().Int("question_id", ids[i]).Msg("candidate vanished, redrawing")
		ids = slices.Delete(ids, i, i+1)
	}
	return nil, nil
}
