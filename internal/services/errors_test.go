package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		notFound    bool
		forbidden   bool
		conflict    bool
		validation  bool
		invalidQuiz bool
		generation  bool
	}{
		{name: "bank missing", err: fmt.Errorf("load: %w", ErrQuestionBankNotFound), notFound: true},
		{name: "quiz missing", err: ErrQuizNotFound, notFound: true},
		{name: "class missing", err: ErrClassNotFound, notFound: true},
		{name: "permission denied", err: NewPermissionError("u1", 3, "quiz", "read", "not the creator"), forbidden: true},
		{name: "second attempt", err: fmt.Errorf("submit: %w", ErrAlreadyAttempted), conflict: true},
		{name: "field errors", err: ValidationErrors{{Field: "title", Message: "is required"}}, validation: true},
		{name: "unscorable quiz", err: &InvalidQuizError{QuizID: 2, Reason: "no questions"}, invalidQuiz: true},
		{name: "generator down", err: &GenerationError{Reason: "timeout"}, generation: true},
		{name: "repository duplicate is not a conflict", err: repositories.ErrDuplicate},
		{name: "repository miss is not a resource miss", err: repositories.ErrNotFound},
		{name: "unknown", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.forbidden, IsForbidden(tt.err))
			assert.Equal(t, tt.conflict, IsConflict(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.invalidQuiz, IsInvalidQuiz(tt.err))
			assert.Equal(t, tt.generation, IsGenerationFailed(tt.err))
		})
	}
}
