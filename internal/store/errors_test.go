package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "ErrTaskNotFound",
			err:      ErrTaskNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrTaskNotFound",
			err:      fmt.Errorf("failed to find task: %w", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "StoreError wrapping ErrTaskNotFound",
			err:      NewStoreError("task", "delete", "no such task", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "duplicate is not not-found",
			err:      ErrTaskExists,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrTaskExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("import: %w", ErrTaskExists)))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	withCause := NewStoreError("task", "create", "validation failed", ErrInvalidEntity)
	assert.Equal(t, "create operation on task failed: validation failed: invalid entity", withCause.Error())
	assert.True(t, errors.Is(withCause, ErrInvalidEntity))

	withoutCause := NewStoreError("task", "clear", "aborted", nil)
	assert.Equal(t, "clear operation on task failed: aborted", withoutCause.Error())
	assert.Nil(t, withoutCause.Unwrap())
}
