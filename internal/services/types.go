package services

import (
	"context"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/generation"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// ===== SERVICE INTERFACES =====

type QuestionBankService interface {
	CreateBank(ctx context.Context, principal auth.Principal, req *CreateQuestionBankRequest) (*models.QuestionBank, error)
	ListBanks(ctx context.Context, principal auth.Principal) ([]*models.QuestionBank, error)
	AddQuestion(ctx context.Context, bankID uint, principal auth.Principal, req *AddQuestionRequest) (*models.Question, error)
	ListQuestions(ctx context.Context, bankID uint, principal auth.Principal) ([]*models.Question, error)
}

type GenerationService interface {
	GenerateQuestions(ctx context.Context, bankID uint, principal auth.Principal, req *GenerateQuestionsRequest) (*GenerationResult, error)
}

type QuizService interface {
	CreateQuiz(ctx context.Context, principal auth.Principal, req *CreateQuizRequest) (*models.Quiz, error)
	GetQuiz(ctx context.Context, quizID uint, principal auth.Principal) (*QuizView, error)
	ListQuizzes(ctx context.Context, principal auth.Principal) ([]*models.Quiz, error)
}

type AttemptService interface {
	SubmitAttempt(ctx context.Context, quizID uint, principal auth.Principal, req *SubmitAttemptRequest) (*SubmitResult, error)
	ListAttempts(ctx context.Context, quizID uint, principal auth.Principal) ([]*models.QuizAttempt, error)
	ExportAttempts(ctx context.Context, quizID uint, principal auth.Principal) ([]byte, error)
}

// ===== REQUEST TYPES =====

type CreateQuestionBankRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

type AddQuestionRequest struct {
	Text          string                 `json:"text" validate:"required"`
	Type          models.QuestionType    `json:"type" validate:"required,question_type"`
	Options       []string               `json:"options"`
	CorrectAnswer string                 `json:"correct_answer"`
	Difficulty    models.DifficultyLevel `json:"difficulty,omitempty" validate:"omitempty,difficulty_level"`
	Topic         *string                `json:"topic,omitempty" validate:"omitempty,max=200"`
	Explanation   *string                `json:"explanation,omitempty"`
}

type GenerateQuestionsRequest struct {
	Topic        string                 `json:"topic" validate:"required,max=200"`
	NumQuestions int                    `json:"num_questions,omitempty" validate:"omitempty,min=1,max=50"`
	Difficulty   models.DifficultyLevel `json:"difficulty,omitempty" validate:"omitempty,difficulty_level"`
	QuestionType models.QuestionType    `json:"question_type,omitempty" validate:"omitempty,question_type"`
}

type QuizQuestionRequest struct {
	QuestionID uint `json:"question_id" validate:"required"`
	Order      int  `json:"order,omitempty" validate:"omitempty,min=1"`
	Points     *int `json:"points,omitempty" validate:"omitempty,min=1,max=1000"`
}

type CreateQuizRequest struct {
	ClassID      uint                  `json:"class_id" validate:"required"`
	Title        string                `json:"title" validate:"required,max=200"`
	Description  *string               `json:"description,omitempty"`
	Questions    []QuizQuestionRequest `json:"questions" validate:"dive"`
	TimeLimit    *int                  `json:"time_limit,omitempty" validate:"omitempty,min=1"`
	PassingScore *int                  `json:"passing_score,omitempty" validate:"omitempty,min=0,max=100"`
	IsActive     *bool                 `json:"is_active,omitempty"`
}

type SubmitAttemptRequest struct {
	Answers []models.AttemptAnswer `json:"answers" validate:"dive"`
}

// ===== RESPONSE TYPES =====

type GenerationResult struct {
	Outcome   generation.Outcome `json:"outcome"`
	Questions []*models.Question `json:"questions"`
	RawText   string             `json:"raw_text"`
}

type QuizQuestionView struct {
	QuestionID uint             `json:"question_id"`
	Order      int              `json:"order"`
	Points     int              `json:"points"`
	Question   *models.Question `json:"question,omitempty"`
}

type QuizView struct {
	*models.Quiz
	Questions          []QuizQuestionView  `json:"questions"`
	MissingQuestionIDs []uint              `json:"missing_question_ids"`
	HasAttempted       bool                `json:"has_attempted"`
	Attempt            *models.QuizAttempt `json:"attempt,omitempty"`
}

type SubmitResult struct {
	Attempt            *models.QuizAttempt `json:"attempt"`
	EarnedScore        int                 `json:"earned_score"`
	TotalScore         int                 `json:"total_score"`
	ScorePercentage    float64             `json:"score_percentage"`
	Passed             bool                `json:"passed"`
	MissingQuestionIDs []uint              `json:"missing_question_ids"`
}
