package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionBankService_CreateBank(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		principal auth.Principal
		req       *CreateQuestionBankRequest
		checkErr  func(error) bool
	}{
		{
			name:      "teacher creates bank",
			principal: teacher,
			req:       &CreateQuestionBankRequest{Name: "Fractions"},
		},
		{
			name:      "institute owner creates bank",
			principal: owner,
			req:       &CreateQuestionBankRequest{Name: "Shared"},
		},
		{
			name:      "student cannot own banks",
			principal: student,
			req:       &CreateQuestionBankRequest{Name: "Mine"},
			checkErr:  IsForbidden,
		},
		{
			name:      "name is required",
			principal: teacher,
			req:       &CreateQuestionBankRequest{},
			checkErr:  IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			bank, err := env.services.QuestionBank().CreateBank(ctx, tt.principal, tt.req)

			if tt.checkErr != nil {
				require.Error(t, err)
				assert.True(t, tt.checkErr(err), "unexpected error: %v", err)
				assert.Nil(t, bank)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, bank.ID)
			assert.Equal(t, tt.principal.ID, bank.OwnerID)
			assert.Equal(t, tt.req.Name, bank.Name)
		})
	}
}

func TestQuestionBankService_NamesAreNotUnique(t *testing.T) {
	env := newTestEnv(t)
	first := env.createBank(t, teacher)
	second := env.createBank(t, teacher)

	assert.NotEqual(t, first.ID, second.ID)

	banks, err := env.services.QuestionBank().ListBanks(context.Background(), teacher)
	require.NoError(t, err)
	require.Len(t, banks, 2)
	assert.Equal(t, second.ID, banks[0].ID)
}

func TestQuestionBankService_AddQuestion(t *testing.T) {
	ctx := context.Background()
	req := &AddQuestionRequest{
		Text:          "2 + 2?",
		Type:          models.MultipleChoice,
		Options:       []string{"3", "4"},
		CorrectAnswer: "4",
	}

	t.Run("owner adds question with defaults", func(t *testing.T) {
		env := newTestEnv(t)
		bank := env.createBank(t, teacher)

		q, err := env.services.QuestionBank().AddQuestion(ctx, bank.ID, teacher, req)

		require.NoError(t, err)
		assert.Equal(t, bank.ID, q.BankID)
		assert.Equal(t, models.DifficultyMedium, q.Difficulty)
		assert.Equal(t, []string{"3", "4"}, []string(q.Options))
	})

	t.Run("bank not found", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.services.QuestionBank().AddQuestion(ctx, 404, teacher, req)

		assert.ErrorIs(t, err, ErrQuestionBankNotFound)
		assert.True(t, IsNotFound(err))
	})

	t.Run("non owner is forbidden and nothing persists", func(t *testing.T) {
		env := newTestEnv(t)
		bank := env.createBank(t, teacher)

		_, err := env.services.QuestionBank().AddQuestion(ctx, bank.ID, otherTeacher, req)

		require.Error(t, err)
		assert.True(t, IsForbidden(err))
		var permErr *PermissionError
		require.True(t, errors.As(err, &permErr))
		assert.Equal(t, otherTeacher.ID, permErr.UserID)

		stored, err := env.repo.Question().ListByBank(ctx, bank.ID)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("institute owner acts for employed teacher", func(t *testing.T) {
		env := newTestEnv(t)
		bank := env.createBank(t, teacher)

		_, err := env.services.QuestionBank().AddQuestion(ctx, bank.ID, owner, req)
		assert.NoError(t, err)
	})

	t.Run("permissive answer key by default", func(t *testing.T) {
		env := newTestEnv(t)
		bank := env.createBank(t, teacher)

		_, err := env.services.QuestionBank().AddQuestion(ctx, bank.ID, teacher, &AddQuestionRequest{
			Text: "Pick", Type: models.MultipleChoice, Options: []string{"a", "b"}, CorrectAnswer: "c",
		})
		assert.NoError(t, err)
	})

	t.Run("strict answer key rejects mismatch", func(t *testing.T) {
		env := newTestEnv(t, func(d *Dependencies) { d.StrictAnswerKeys = true })
		bank := env.createBank(t, teacher)

		_, err := env.services.QuestionBank().AddQuestion(ctx, bank.ID, teacher, &AddQuestionRequest{
			Text: "Pick", Type: models.MultipleChoice, Options: []string{"a", "b"}, CorrectAnswer: "c",
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		env := newTestEnv(t)
		bank := env.createBank(t, teacher)

		_, err := env.services.QuestionBank().AddQuestion(ctx, bank.ID, teacher, &AddQuestionRequest{Text: "x", Type: "essay"})
		assert.True(t, IsValidation(err))
	})
}

func TestQuestionBankService_ListQuestions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	bank := env.createBank(t, teacher)
	env.addQuestion(t, bank.ID, "first", "a")
	last := env.addQuestion(t, bank.ID, "second", "b")

	questions, err := env.services.QuestionBank().ListQuestions(ctx, bank.ID, teacher)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, last.ID, questions[0].ID)

	_, err = env.services.QuestionBank().ListQuestions(ctx, bank.ID, otherTeacher)
	assert.True(t, IsForbidden(err))

	_, err = env.services.QuestionBank().ListQuestions(ctx, 999, teacher)
	assert.True(t, IsNotFound(err))
}
