package question

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

// lastAddressablePage caps the page number so the offset stays inside int4
// range; every page from here on lies past the data.
const lastAddressablePage = math.MaxInt32/PageSize + 1

// Service answers question/category queries and applies validated mutations.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	logger     zerolog.Logger
}

func NewService(questions QuestionStore, categories CategoryStore, logger zerolog.Logger) *Service {
	return &Service{
		questions:  questions,
		categories: categories,
		logger:     logger.With().Str("component", "question_service").Logger(),
	}
}

// ListQuestions returns page (1-based; anything below 1 means 1) with the full
// category map. A page past the end is empty, not an error.
func (s *Service) ListQuestions(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	offset := (min(page, lastAddressablePage) - 1) * PageSize

	var (
		result  Page
		g, gctx = errgroup.WithContext(ctx)
	)
	g.Go(func() error {
		questions, total, err := s.questions.ListQuestions(gctx, offset, PageSize)
		if err != nil {
			return fmt.Errorf("list questions page %d: %w", page, err)
		}
		result.Questions, result.TotalQuestions = questions, total
		return nil
	})
	g.Go(func() error {
		categories, err := s.categories.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		result.Categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return Page{}, err
	}
	return result, nil
}

// GetQuestion returns one question or domain.ErrNotFound.
func (s *Service) GetQuestion(ctx context.Context, id int) (domain.Question, error) {
	q, err := s.questions.GetQuestion(ctx, id)
	if err != nil {
		return domain.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

// Search matches term case-insensitively against question text. A blank term
// matches everything.
func (s *Service) Search(ctx context.Context, term string) (SearchResult, error) {
	questions, total, err := s.questions.SearchQuestions(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search questions: %w", err)
	}

	return SearchResult{
		Questions:       questions,
		TotalQuestions:  total,
		CurrentCategory: s.sharedCategoryLabel(ctx, questions),
	}, nil
}

// ListByCategory returns every question in categoryID, or domain.ErrNotFound
// when the category does not exist.
func (s *Service) ListByCategory(ctx context.Context, categoryID int) (CategoryQuestions, error) {
	category, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("category %d: %w", categoryID, err)
	}

	questions, total, err := s.questions.ListQuestionsByCategory(ctx, categoryID, 0, 0)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("list questions in category %d: %w", categoryID, err)
	}
	return CategoryQuestions{Questions: questions, TotalQuestions: total, CurrentCategory: category}, nil
}

// ListCategories reads the categories fresh from the store on every call.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// sharedCategoryLabel is the label of the one category every question belongs
// to, or nil when the questions span several categories or there are none.
func (s *Service) sharedCategoryLabel(ctx context.Context, questions []domain.Question) *string {
	if len(questions) == 0 {
		return nil
	}
	id := questions[0].Category
	for _, q := range questions[1:] {
		if q.Category != id {
			return nil
		}
	}

	category, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int("category_id", id).Msg("category label lookup failed")
		return nil
	}
	return &category.Type
}
