package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

// Create relies on idx_attempt_quiz_student; the losing insert of a concurrent
// double submission surfaces as repositories.ErrDuplicate.
func (a AttemptPostgreSQL) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	if err := a.db.WithContext(ctx).Create(attempt).Error; err != nil {
		if repositories.IsDuplicateError(err) {
			return fmt.Errorf("attempt for quiz %d: %w", attempt.QuizID, repositories.ErrDuplicate)
		}
		return err
	}
	return nil
}

func (a AttemptPostgreSQL) GetByQuizAndStudent(ctx context.Context, quizID uint, studentID string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := a.db.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) ListByQuiz(ctx context.Context, quizID uint) ([]*models.QuizAttempt, error) {
	var attempts []*models.QuizAttempt
	if err := a.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("completed_at DESC NULLS LAST, id DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
