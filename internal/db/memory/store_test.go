package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

func TestStore_QuestionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateQuestion(ctx, domain.NewQuestion{Question: "Q", Answer: "A", Difficulty: 1, Category: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "category must exist")

	cat, err := s.CreateCategory(ctx, "Science")
	require.NoError(t, err)

	q, err := s.CreateQuestion(ctx, domain.NewQuestion{Question: "Q", Answer: "A", Difficulty: 1, Category: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, q.ID)

	got, err := s.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q, got)

	require.NoError(t, s.DeleteQuestion(ctx, q.ID))
	assert.ErrorIs(t, s.DeleteQuestion(ctx, q.ID), domain.ErrNotFound)

	_, err = s.GetQuestion(ctx, q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ListAndWindow(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, _ := s.CreateCategory(ctx, "Art")
	b, _ := s.CreateCategory(ctx, "Sports")

	for i := 1; i <= 13; i++ {
		cat := a.ID
		if i%2 == 0 {
			cat = b.ID
		}
		_, err := s.CreateQuestion(ctx, domain.NewQuestion{Question: fmt.Sprintf("Q%d", i), Answer: "A", Difficulty: 2, Category: cat})
		require.NoError(t, err)
	}

	page, total, err := s.ListQuestions(ctx, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	assert.Len(t, page, 3)
	assert.Equal(t, 11, page[0].ID)

	page, _, err = s.ListQuestions(ctx, 30, 10)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)

	byCat, total, err := s.ListQuestionsByCategory(ctx, b.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, byCat, 6)

	ids, err := s.CandidateIDs(ctx, a.ID, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 7, 9, 11, 13}, ids)
}

func TestStore_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	s := New()
	cat, _ := s.CreateCategory(ctx, "Geography")
	_, _ = s.CreateQuestion(ctx, domain.NewQuestion{Question: "What is the capital of France?", Answer: "Paris", Difficulty: 1, Category: cat.ID})
	_, _ = s.CreateQuestion(ctx, domain.NewQuestion{Question: "Largest ocean?", Answer: "Pacific capital", Difficulty: 1, Category: cat.ID})

	for _, term := range []string{"capital", "CAPITAL", "pital"} {
		found, total, err := s.SearchQuestions(ctx, term)
		require.NoError(t, err)
		assert.Equal(t, 1, total, term)
		assert.Equal(t, 1, found[0].ID, term)
	}

	_, total, err := s.SearchQuestions(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestStore_ConcurrentDuplicateCategory(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateCategory(context.Background(), "History")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		if err == nil {
			ok++
		} else if assert.ErrorIs(t, err, domain.ErrAlreadyExists) {
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, dup)
}
