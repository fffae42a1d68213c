package models

import (
	"time"
)

const (
	DefaultPassingScore   = 60
	DefaultQuestionPoints = 1
)

type Quiz struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ClassID      uint           `json:"class_id" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"not null;size:200"`
	Description  *string        `json:"description" gorm:"type:text"`
	CreatedBy    string         `json:"created_by" gorm:"not null;index;size:255"`
	TimeLimit    *int           `json:"time_limit"` // minutes
	PassingScore int            `json:"passing_score" gorm:"not null;default:60"`
	IsActive     bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
	Questions    []QuizQuestion `json:"questions" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is a weak reference into the question bank. QuestionID carries no
// foreign key so deleting a question leaves the reference dangling.
type QuizQuestion struct {
	ID         uint `json:"-" gorm:"primaryKey"`
	QuizID     uint `json:"-" gorm:"not null;index"`
	Position   int  `json:"-" gorm:"not null"`
	QuestionID uint `json:"question_id" gorm:"not null;index"`
	Order      int  `json:"order" gorm:"column:sort_order"`
	Points     int  `json:"points" gorm:"not null;default:1"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// TotalPoints sums the weights of every reference, dangling or not.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, ref := range q.Questions {
		total += ref.Points
	}
	return total
}

// QuestionIDs returns the distinct referenced question IDs in quiz order.
func (q *Quiz) QuestionIDs() []uint {
	seen := make(map[uint]bool, len(q.Questions))
	ids := make([]uint, 0, len(q.Questions))
	for _, ref := range q.Questions {
		if seen[ref.QuestionID] {
			continue
		}
		seen[ref.QuestionID] = true
		ids = append(ids, ref.QuestionID)
	}
	return ids
}
