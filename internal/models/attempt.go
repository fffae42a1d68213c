package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptAnswer struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}

// QuizAttempt is written once at submission time and never updated. The unique
// index on (quiz_id, student_id) is what serializes concurrent submissions.
type QuizAttempt struct {
	ID          uint                               `json:"id" gorm:"primaryKey"`
	QuizID      uint                               `json:"quiz_id" gorm:"not null;uniqueIndex:idx_attempt_quiz_student,priority:1"`
	StudentID   string                             `json:"student_id" gorm:"not null;size:255;uniqueIndex:idx_attempt_quiz_student,priority:2"`
	Answers     datatypes.JSONSlice[AttemptAnswer] `json:"answers" gorm:"type:jsonb"`
	StartedAt   time.Time                          `json:"started_at"`
	CompletedAt *time.Time                         `json:"completed_at" gorm:"index"`
	Score       *float64                           `json:"score"`
	Passed      *bool                              `json:"passed"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
