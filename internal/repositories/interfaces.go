package repositories

import (
	"context"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// QuestionBankRepository owns question banks and their questions.
type QuestionBankRepository interface {
	Create(ctx context.Context, bank *models.QuestionBank) error
	GetByID(ctx context.Context, id uint) (*models.QuestionBank, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.QuestionBank, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	// ListByBank returns newest first.
	ListByBank(ctx context.Context, bankID uint) ([]*models.Question, error)
	Delete(ctx context.Context, id uint) error
}

type QuizRepository interface {
	// Create stores the quiz and its ordered question references atomically.
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Quiz, error)
	ListByClasses(ctx context.Context, classIDs []uint) ([]*models.Quiz, error)
}

type AttemptRepository interface {
	// Create must reject a second attempt for the same (quiz, student) with ErrDuplicate.
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByQuizAndStudent(ctx context.Context, quizID uint, studentID string) (*models.QuizAttempt, error)
	// ListByQuiz returns most recently completed first.
	ListByQuiz(ctx context.Context, quizID uint) ([]*models.QuizAttempt, error)
}

// ClassRepository is a read-only view of the administration system's classes.
type ClassRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Class, error)
	IsEnrolled(ctx context.Context, classID uint, studentID string) (bool, error)
	ListClassIDsByStudent(ctx context.Context, studentID string) ([]uint, error)
}

// Repository groups the stores used by the services.
type Repository interface {
	QuestionBank() QuestionBankRepository
	Question() QuestionRepository
	Quiz() QuizRepository
	Attempt() AttemptRepository
	Class() ClassRepository

	Ping(ctx context.Context) error
	Close() error
}
