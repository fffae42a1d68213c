package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	for i := range quiz.Questions {
		quiz.Questions[i].Position = i
	}
	// gorm saves the quiz and its references in one transaction
	return q.db.WithContext(ctx).Create(quiz).Error
}

func (q QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (q QuizPostgreSQL) ListByCreator(ctx context.Context, creatorID string) ([]*models.Quiz, error) {
	return q.list(ctx, q.db.WithContext(ctx).Where("created_by = ?", creatorID))
}

func (q QuizPostgreSQL) ListByClasses(ctx context.Context, classIDs []uint) ([]*models.Quiz, error) {
	if len(classIDs) == 0 {
		return []*models.Quiz{}, nil
	}
	return q.list(ctx, q.db.WithContext(ctx).Where("class_id IN ?", classIDs))
}

func (q QuizPostgreSQL) list(ctx context.Context, query *gorm.DB) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	if err := query.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC, id DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}
