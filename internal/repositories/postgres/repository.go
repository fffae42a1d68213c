package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db           *gorm.DB
	questionBank repositories.QuestionBankRepository
	question     repositories.QuestionRepository
	quiz         repositories.QuizRepository
	attempt      repositories.AttemptRepository
	class        repositories.ClassRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:           db,
		questionBank: NewQuestionBankPostgreSQL(db),
		question:     NewQuestionPostgreSQL(db),
		quiz:         NewQuizPostgreSQL(db),
		attempt:      NewAttemptPostgreSQL(db),
		class:        NewClassPostgreSQL(db),
	}
}

// AutoMigrate creates the engine's tables, including the attempt uniqueness index.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Class{},
		&models.ClassEnrollment{},
		&models.QuestionBank{},
		&models.Question{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (r *repository) QuestionBank() repositories.QuestionBankRepository { return r.questionBank }
func (r *repository) Question() repositories.QuestionRepository         { return r.question }
func (r *repository) Quiz() repositories.QuizRepository                 { return r.quiz }
func (r *repository) Attempt() repositories.AttemptRepository           { return r.attempt }
func (r *repository) Class() repositories.ClassRepository               { return r.class }

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
