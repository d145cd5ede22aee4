package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/domain"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

// maxFetchPerCall is the largest batch either upstream serves in one request.
const maxFetchPerCall = 50

// TriviaSource supplies raw questions for seeding.
type TriviaSource interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]external.Question, error)
}

// ImportResult counts what one Import call wrote.
type ImportResult struct {
	CategoriesCreated int
	QuestionsCreated  int
	Skipped           int
}

// Importer seeds the store from an external trivia source, going through the
// Service so imported rows pass the same validation as client input.
type Importer struct {
	source  TriviaSource
	service *Service
	logger  zerolog.Logger
}

func NewImporter(source TriviaSource, service *Service, logger zerolog.Logger) *Importer {
	return &Importer{
		source:  source,
		service: service,
		logger:  logger.With().Str("component", "importer").Logger(),
	}
}

// Import fetches amount questions and stores them, creating categories by
// name on first sight. Rows that fail validation are skipped and counted.
func (im *Importer) Import(ctx context.Context, amount int, difficulty string) (ImportResult, error) {
	var result ImportResult

	known, err := im.categoryIDs(ctx)
	if err != nil {
		return result, err
	}

	for remaining := amount; remaining > 0; {
		batch := min(remaining, maxFetchPerCall)
		fetched, err := im.source.Fetch(ctx, batch, difficulty)
		if err != nil {
			return result, fmt.Errorf("fetch %d questions: %w", batch, err)
		}
		if len(fetched) == 0 {
			break
		}
		remaining -= len(fetched)

		for _, raw := range fetched {
			categoryID, created, err := im.ensureCategory(ctx, known, raw.Category)
			if err != nil {
				return result, err
			}
			if created {
				result.CategoriesCreated++
			}

			_, err = im.service.CreateQuestion(ctx, CreateQuestionRequest{
				Question:   raw.Question,
				Answer:     raw.CorrectAnswer,
				Difficulty: difficultyLevel(raw.Difficulty),
				Category:   categoryID,
			})
			switch {
			case err == nil:
				result.QuestionsCreated++
			case errors.Is(err, domain.ErrValidation):
				im.logger.Warn().Err(err).Str("question", raw.Question).Msg("skipping invalid question")
				result.Skipped++
			default:
				return result, err
			}
		}
	}

	im.logger.Info().
		Int("categories_created", result.CategoriesCreated).
		Int("questions_created", result.QuestionsCreated).
		Int("skipped", result.Skipped).
		Msg("import finished")
	return result, nil
}

func (im *Importer) categoryIDs(ctx context.Context) (map[string]int, error) {
	categories, err := im.service.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]int, len(categories))
	for _, c := range categories {
		known[c.Type] = c.ID
	}
	return known, nil
}

// ensureCategory resolves name to an id, creating the category when missing.
// Losing a creation race to another writer reloads the list instead of failing.
func (im *Importer) ensureCategory(ctx context.Context, known map[string]int, name string) (int, bool, error) {
	name = strings.TrimSpace(name)
	if id, ok := known[name]; ok {
		return id, false, nil
	}

	c, err := im.service.CreateCategory(ctx, name)
	if err == nil {
		known[c.Type] = c.ID
		return c.ID, true, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return 0, false, err
	}

	reloaded, err := im.categoryIDs(ctx)
	if err != nil {
		return 0, false, err
	}
	for k, v := range reloaded {
		known[k] = v
	}
	id, ok := known[name]
	if !ok {
		return 0, false, fmt.Errorf("category %q: %w", name, domain.ErrNotFound)
	}
	return id, false, nil
}

// difficultyLevel maps upstream easy/medium/hard labels onto the 1-5 scale.
func difficultyLevel(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "easy":
		return 1
	case "medium":
		return 3
	case "hard":
		return 5
	default:
		return 0
	}
}
