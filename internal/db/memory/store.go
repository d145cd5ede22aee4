// Package memory is an in-process storage driver with the same contract as the
// PostgreSQL repositories. It backs local runs without a database and the tests
// of the layers above storage.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

// Store keeps questions and categories in id order behind one RWMutex.
type Store struct {
	mu             sync.RWMutex
	questions      []domain.Question
	categories     []domain.Category
	nextQuestionID int
	nextCategoryID int
}

func New() *Store {
	return &Store{nextQuestionID: 1, nextCategoryID: 1}
}

func (s *Store) GetQuestion(ctx context.Context, id int) (domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.questionIndex(id); i >= 0 {
		return s.questions[i], nil
	}
	return domain.Question{}, fmt.Errorf("get question %d: %w", id, domain.ErrNotFound)
}

func (s *Store) ListQuestions(ctx context.Context, offset, limit int) ([]domain.Question, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return window(s.questions, offset, limit), len(s.questions), nil
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, categoryID, offset, limit int) ([]domain.Question, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.filter(func(q domain.Question) bool { return q.Category == categoryID })
	return window(matched, offset, limit), len(matched), nil
}

func (s *Store) SearchQuestions(ctx context.Context, term string) ([]domain.Question, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(term))
	matched := s.filter(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	})
	return matched, len(matched), nil
}

func (s *Store) CandidateIDs(ctx context.Context, categoryID int, exclude []int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := []int{}
	for _, q := range s.questions {
		if categoryID != 0 && q.Category != categoryID {
			continue
		}
		if slices.Contains(exclude, q.ID) {
			continue
		}
		ids = append(ids, q.ID)
	}
	return ids, nil
}

// CreateQuestion mirrors the foreign key: an unknown category is domain.ErrNotFound.
func (s *Store) CreateQuestion(ctx context.Context, in domain.NewQuestion) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryIndex(in.Category) < 0 {
		return domain.Question{}, fmt.Errorf("create question: category %d: %w", in.Category, domain.ErrNotFound)
	}

	q := domain.Question{
		ID:         s.nextQuestionID,
		Question:   in.Question,
		Answer:     in.Answer,
		Difficulty: in.Difficulty,
		Category:   in.Category,
	}
	s.nextQuestionID++
	s.questions = append(s.questions, q)
	return q, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.questionIndex(id)
	if i < 0 {
		return fmt.Errorf("delete question %d: %w", id, domain.ErrNotFound)
	}
	s.questions = slices.Delete(s.questions, i, i+1)
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Category{}, s.categories...), nil
}

func (s *Store) GetCategory(ctx context.Context, id int) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.categoryIndex(id); i >= 0 {
		return s.categories[i], nil
	}
	return domain.Category{}, fmt.Errorf("get category %d: %w", id, domain.ErrNotFound)
}

// CreateCategory checks uniqueness and inserts under the same write lock.
func (s *Store) CreateCategory(ctx context.Context, categoryType string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Type == categoryType {
			return domain.Category{}, fmt.Errorf("create category %q: %w", categoryType, domain.ErrAlreadyExists)
		}
	}

	c := domain.Category{ID: s.nextCategoryID, Type: categoryType}
	s.nextCategoryID++
	s.categories = append(s.categories, c)
	return c, nil
}

// Ping reports readiness; the in-memory store is always available.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) filter(keep func(domain.Question) bool) []domain.Question {
	out := []domain.Question{}
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func (s *Store) questionIndex(id int) int {
	i, found := slices.BinarySearchFunc(s.questions, id, func(q domain.Question, id int) int { return q.ID - id })
	if !found {
		return -1
	}
	return i
}

func (s *Store) categoryIndex(id int) int {
	i, found := slices.BinarySearchFunc(s.categories, id, func(c domain.Category, id int) int { return c.ID - id })
	if !found {
		return -1
	}
	return i
}

// window copies rows[offset:offset+limit]; limit <= 0 means to the end.
func window(rows []domain.Question, offset, limit int) []domain.Question {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []domain.Question{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return slices.Clone(rows[offset:end])
}
