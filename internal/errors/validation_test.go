package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())

	single := ValidationErrors{{Field: "title", Message: "is required"}}
	assert.Equal(t, "validation failed: title is required", single.Error())

	multiple := ValidationErrors{{Field: "a"}, {Field: "b"}}
	assert.Equal(t, "validation failed: 2 field errors", multiple.Error())

	err := NewValidationErrorWithRule("options", "must match one of the options", "answer_in_options", "x")
	assert.Equal(t, "validation error on field 'options': must match one of the options", err.Error())
	assert.Equal(t, "answer_in_options", err.Rule)
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Score int    `validate:"min=0,max=100"`
	}

	err := validator.New().Struct(payload{Score: 150})
	require.Error(t, err)

	converted := ToValidationErrors(err)
	require.Len(t, converted, 2)
	assert.Equal(t, "Name", converted[0].Field)
	assert.Equal(t, "is required", converted[0].Message)
	assert.Equal(t, "max", converted[1].Rule)
	assert.Equal(t, "must be at most 100", converted[1].Message)

	assert.Empty(t, ToValidationErrors(errors.New("not a validator error")))
}

func TestPermissionError(t *testing.T) {
	err := NewPermissionError("teacher-2", 5, "quiz", "list_attempts", "not the quiz creator")

	assert.True(t, errors.Is(err, ErrForbidden))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrForbidden))
	assert.Equal(t, "permission denied: user teacher-2 cannot list_attempts quiz 5 - not the quiz creator", err.Error())

	var target *PermissionError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, "quiz", target.Resource)
}
