package validator

import (
	"github.com/SAP-F-2025/assessment-engine/internal/errors"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// QuestionValidator checks answer-key consistency of a question
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateAnswerKey checks that the options and correct answer agree with
// the question type. Returns nil when the question is consistent.
func (v *QuestionValidator) ValidateAnswerKey(question *models.Question) ValidationErrors {
	var errs ValidationErrors

	switch question.Type {
	case models.MultipleChoice:
		if len(question.Options) < 2 {
			errs = append(errs, *errors.NewValidationErrorWithRule("options", "must have at least 2 options", "min", len(question.Options)))
		}
		if !question.ContainsOption(question.CorrectAnswer) {
			errs = append(errs, *errors.NewValidationErrorWithRule("correct_answer", "must match one of the options", "answer_in_options", question.CorrectAnswer))
		}
	case models.TrueFalse:
		if len(question.Options) > 0 && !question.ContainsOption(question.CorrectAnswer) {
			errs = append(errs, *errors.NewValidationErrorWithRule("correct_answer", "must match one of the options", "answer_in_options", question.CorrectAnswer))
		}
	case models.ShortAnswer:
		if len(question.Options) > 0 {
			errs = append(errs, *errors.NewValidationErrorWithRule("options", "must be empty for short answer questions", "short_answer_options", len(question.Options)))
		}
	}

	if question.CorrectAnswer == "" {
		errs = append(errs, *errors.NewValidationErrorWithRule("correct_answer", "is required", "required", question.CorrectAnswer))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
