package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// IsValid reports whether t is one of the supported question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case MultipleChoice, TrueFalse, ShortAnswer:
		return true
	}
	return false
}

func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type QuestionBank struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"not null;index;size:255"`
	Name        string    `json:"name" gorm:"not null;size:200"`
	Description *string   `json:"description" gorm:"type:text"`
	Category    *string   `json:"category" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (QuestionBank) TableName() string {
	return "question_banks"
}

// Question belongs to a bank by back-reference only; quizzes point at it by ID.
type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	BankID        uint                        `json:"bank_id" gorm:"not null;index"`
	Text          string                      `json:"text" gorm:"type:text;not null"`
	Type          QuestionType                `json:"type" gorm:"not null;size:32"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"type:jsonb"`
	CorrectAnswer string                      `json:"correct_answer" gorm:"type:text"`
	Difficulty    DifficultyLevel             `json:"difficulty" gorm:"default:medium;size:16"`
	Topic         *string                     `json:"topic" gorm:"size:200"`
	Explanation   *string                     `json:"explanation" gorm:"type:text"`
	CreatedAt     time.Time                   `json:"created_at" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// ContainsOption reports whether the answer key is one of the listed options.
func (q *Question) ContainsOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}
