package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to DATABASE_TEST_URL and skips when it is unset.
func openTestDB(t *testing.T, translateError bool) *gorm.DB {
	t.Helper()

	url := os.Getenv("DATABASE_TEST_URL")
	if url == "" {
		t.Skip("DATABASE_TEST_URL not set")
	}
	db, err := gorm.Open(pgdriver.Open(url), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: translateError,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedQuiz(t *testing.T, repo repositories.Repository, creator string) *models.Quiz {
	t.Helper()
	ctx := context.Background()

	bank := &models.QuestionBank{OwnerID: creator, Name: "Bank"}
	require.NoError(t, repo.QuestionBank().Create(ctx, bank))

	var refs []models.QuizQuestion
	for _, text := range []string{"Q1", "Q2", "Q3"} {
		q := &models.Question{BankID: bank.ID, Text: text, Type: models.ShortAnswer, CorrectAnswer: "a"}
		require.NoError(t, repo.Question().Create(ctx, q))
		refs = append(refs, models.QuizQuestion{QuestionID: q.ID, Points: 1})
	}
	// positions follow slice order, not question ID order
	refs[0], refs[2] = refs[2], refs[0]

	quiz := &models.Quiz{ClassID: 1, Title: "Quiz", CreatedBy: creator, PassingScore: 60, IsActive: true, Questions: refs}
	require.NoError(t, repo.Quiz().Create(ctx, quiz))
	return quiz
}

func TestAttemptPostgreSQL_DuplicateSubmission(t *testing.T) {
	for _, tc := range []struct {
		name           string
		translateError bool
	}{
		{"translated errors", true},
		{"raw driver errors", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewRepository(openTestDB(t, tc.translateError))
			ctx := context.Background()
			quiz := seedQuiz(t, repo, "teacher-"+uuid.NewString())
			student := "student-" + uuid.NewString()
			completed := time.Now().UTC()

			first := &models.QuizAttempt{QuizID: quiz.ID, StudentID: student, StartedAt: completed, CompletedAt: &completed}
			require.NoError(t, repo.Attempt().Create(ctx, first))

			second := &models.QuizAttempt{QuizID: quiz.ID, StudentID: student, StartedAt: completed, CompletedAt: &completed}
			err := repo.Attempt().Create(ctx, second)
			require.Error(t, err)
			assert.True(t, errors.Is(err, repositories.ErrDuplicate), "got %v", err)

			stored, err := repo.Attempt().ListByQuiz(ctx, quiz.ID)
			require.NoError(t, err)
			require.Len(t, stored, 1)
			assert.Equal(t, first.ID, stored[0].ID)
		})
	}
}

func TestAttemptPostgreSQL_GetByQuizAndStudent(t *testing.T) {
	repo := NewRepository(openTestDB(t, true))
	ctx := context.Background()
	quiz := seedQuiz(t, repo, "teacher-"+uuid.NewString())

	_, err := repo.Attempt().GetByQuizAndStudent(ctx, quiz.ID, "nobody-"+uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	student := "student-" + uuid.NewString()
	score := 50.0
	attempt := &models.QuizAttempt{
		QuizID:    quiz.ID,
		StudentID: student,
		Answers:   []models.AttemptAnswer{{QuestionID: quiz.Questions[0].QuestionID, Answer: "a"}},
		StartedAt: time.Now().UTC(),
		Score:     &score,
	}
	require.NoError(t, repo.Attempt().Create(ctx, attempt))

	got, err := repo.Attempt().GetByQuizAndStudent(ctx, quiz.ID, student)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, got.ID)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, "a", got.Answers[0].Answer)
	require.NotNil(t, got.Score)
	assert.Equal(t, 50.0, *got.Score)
}

func TestQuizPostgreSQL_KeepsQuestionOrder(t *testing.T) {
	repo := NewRepository(openTestDB(t, true))
	ctx := context.Background()
	creator := "teacher-" + uuid.NewString()
	quiz := seedQuiz(t, repo, creator)

	got, err := repo.Quiz().GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, len(quiz.Questions))
	for i, ref := range quiz.Questions {
		assert.Equal(t, ref.QuestionID, got.Questions[i].QuestionID)
		assert.Equal(t, i, got.Questions[i].Position)
	}

	listed, err := repo.Quiz().ListByCreator(ctx, creator)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, quiz.ID, listed[0].ID)

	_, err = repo.Quiz().GetByID(ctx, quiz.ID+1_000_000)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestClassPostgreSQL_Enrollment(t *testing.T) {
	db := openTestDB(t, true)
	repo := NewRepository(db)
	ctx := context.Background()

	class := &models.Class{TeacherID: "teacher-" + uuid.NewString(), Name: "Biology"}
	require.NoError(t, db.Create(class).Error)
	student := "student-" + uuid.NewString()
	require.NoError(t, db.Create(&models.ClassEnrollment{ClassID: class.ID, StudentID: student}).Error)

	enrolled, err := repo.Class().IsEnrolled(ctx, class.ID, student)
	require.NoError(t, err)
	assert.True(t, enrolled)

	enrolled, err = repo.Class().IsEnrolled(ctx, class.ID, "stranger-"+uuid.NewString())
	require.NoError(t, err)
	assert.False(t, enrolled)

	ids, err := repo.Class().ListClassIDsByStudent(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, []uint{class.ID}, ids)

	_, err = repo.Class().GetByID(ctx, class.ID+1_000_000)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
