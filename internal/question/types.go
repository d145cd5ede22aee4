package question

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

// PageSize is the fixed number of questions per listing page.
const PageSize = 10

// QuestionStore is the question half of the storage layer.
type QuestionStore interface {
	GetQuestion(ctx context.Context, id int) (domain.Question, error)
	ListQuestions(ctx context.Context, offset, limit int) ([]domain.Question, int, error)
	ListQuestionsByCategory(ctx context.Context, categoryID, offset, limit int) ([]domain.Question, int, error)
	SearchQuestions(ctx context.Context, term string) ([]domain.Question, int, error)
	CreateQuestion(ctx context.Context, in domain.NewQuestion) (domain.Question, error)
	DeleteQuestion(ctx context.Context, id int) error
}

// CategoryStore is the category half of the storage layer.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (domain.Category, error)
	CreateCategory(ctx context.Context, categoryType string) (domain.Category, error)
}

// Page is one slice of the unfiltered question listing.
type Page struct {
	Questions       []domain.Question
	TotalQuestions  int
	Categories      []domain.Category
	CurrentCategory *string
}

// SearchResult holds every question matching a search term.
type SearchResult struct {
	Questions       []domain.Question
	TotalQuestions  int
	CurrentCategory *string
}

// CategoryQuestions holds every question in one category.
type CategoryQuestions struct {
	Questions       []domain.Question
	TotalQuestions  int
	CurrentCategory domain.Category
}

// CreateQuestionRequest carries the client payload before validation.
type CreateQuestionRequest struct {
	Question   string
	Answer     string
	Difficulty int
	Category   int
}
