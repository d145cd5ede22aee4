package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("create question: %w", NewValidationError("answer", "is required"))

	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "answer", ve.Errors[0].Field)
	assert.Equal(t, "validation: answer: is required", ve.Error())
}

func TestValidationError_MultipleFields(t *testing.T) {
	err := NewValidationErrors([]FieldError{
		{Field: "question", Message: "is required"},
		{Field: "difficulty", Message: "must be between 1 and 5"},
	})

	assert.Equal(t, "validation: 2 errors (question, difficulty)", err.Error())
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &StoreError{Op: "list questions", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list questions")
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCategoryMap(t *testing.T) {
	m := CategoryMap([]Category{{ID: 1, Type: "Science"}, {ID: 4, Type: "History"}})

	assert.Equal(t, map[int]string{1: "Science", 4: "History"}, m)
}
