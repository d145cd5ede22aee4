package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

// CreateQuestion validates req and stores it. Every invalid field is reported
// at once in a *domain.ValidationError; nothing is written unless all pass.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (domain.Question, error) {
	in := domain.NewQuestion{
		Question:   strings.TrimSpace(req.Question),
		Answer:     strings.TrimSpace(req.Answer),
		Difficulty: req.Difficulty,
		Category:   req.Category,
	}

	var fields []domain.FieldError
	if in.Question == "" {
		fields = append(fields, domain.FieldError{Field: "question", Message: "is required"})
	}
	if in.Answer == "" {
		fields = append(fields, domain.FieldError{Field: "answer", Message: "is required"})
	}
	if in.Difficulty < domain.MinDifficulty || in.Difficulty > domain.MaxDifficulty {
		fields = append(fields, domain.FieldError{
			Field:   "difficulty",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinDifficulty, domain.MaxDifficulty),
		})
	}
	if in.Category <= 0 {
		fields = append(fields, domain.FieldError{Field: "category", Message: "is required"})
	} else if _, err := s.categories.GetCategory(ctx, in.Category); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Question{}, fmt.Errorf("check category %d: %w", in.Category, err)
		}
		fields = append(fields, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if len(fields) > 0 {
		return domain.Question{}, domain.NewValidationErrors(fields)
	}

	q, err := s.questions.CreateQuestion(ctx, in)
	if err != nil {
		// The category can vanish between the check and the insert.
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Question{}, domain.NewValidationError("category", "unknown category")
		}
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}

	s.logger.Info().Int("question_id", q.ID).Int("category_id", q.Category).Msg("question created")
	return q, nil
}

// DeleteQuestion removes id permanently; a missing id is domain.ErrNotFound.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	s.logger.Info().Int("question_id", id).Msg("question deleted")
	return nil
}

// CreateCategory stores a trimmed, non-empty, not yet used category type.
// A duplicate is domain.ErrAlreadyExists.
func (s *Service) CreateCategory(ctx context.Context, categoryType string) (domain.Category, error) {
	categoryType = strings.TrimSpace(categoryType)
	if categoryType == "" {
		return domain.Category{}, domain.NewValidationError("category", "is required")
	}

	c, err := s.categories.CreateCategory(ctx, categoryType)
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category %q: %w", categoryType, err)
	}

	s.logger.Info().Int("category_id", c.ID).Str("type", c.Type).Msg("category created")
	return c, nil
}
