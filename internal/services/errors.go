package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/assessment-engine/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Authorization errors
	ErrForbidden = apperrors.ErrForbidden

	// Question bank errors
	ErrQuestionBankNotFound = errors.New("question bank not found")

	// Quiz errors
	ErrQuizNotFound  = errors.New("quiz not found")
	ErrClassNotFound = errors.New("class not found")
	ErrInvalidQuiz   = errors.New("quiz cannot be scored")

	// Attempt errors
	ErrAlreadyAttempted = errors.New("quiz already attempted")

	// Generation errors
	ErrGenerationFailed = errors.New("question generation failed")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared error types from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors
type PermissionError = apperrors.PermissionError

// GenerationError carries the text-generation collaborator's failure message.
type GenerationError struct {
	Reason string `json:"reason"`
}

func (ge *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed: %s", ge.Reason)
}

func (ge *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// InvalidQuizError explains why a quiz cannot accept or score an attempt.
type InvalidQuizError struct {
	QuizID uint   `json:"quiz_id"`
	Reason string `json:"reason"`
}

func (e *InvalidQuizError) Error() string {
	return fmt.Sprintf("quiz %d cannot be scored: %s", e.QuizID, e.Reason)
}

func (e *InvalidQuizError) Is(target error) bool {
	return target == ErrInvalidQuiz
}

// ===== ERROR HELPERS =====

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return apperrors.NewPermissionError(userID, resourceID, resource, action, reason)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuestionBankNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrClassNotFound)
}

// IsForbidden checks if error represents an authorization denial
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyAttempted)
}

func IsInvalidQuiz(err error) bool {
	return errors.Is(err, ErrInvalidQuiz)
}

func IsGenerationFailed(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}
