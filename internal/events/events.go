package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of domain events
type EventType string

const (
	// Question bank events
	EventQuestionsGenerated EventType = "questions.generated"

	// Quiz events
	EventQuizCreated EventType = "quiz.created"

	// Attempt events
	EventAttemptSubmitted EventType = "attempt.submitted"
)

const (
	eventSource  = "assessment-engine"
	eventVersion = "1.0"
)

// Event is the envelope shared by all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Question bank event payloads

type QuestionsGeneratedEvent struct {
	BankID      uint   `json:"bank_id"`
	OwnerID     string `json:"owner_id"`
	RequestedBy string `json:"requested_by"`
	Topic       string `json:"topic"`
	Requested   int    `json:"requested"`
	Persisted   int    `json:"persisted"`
	QuestionIDs []uint `json:"question_ids"`
}

// Quiz event payloads

type QuizCreatedEvent struct {
	QuizID        uint   `json:"quiz_id"`
	ClassID       uint   `json:"class_id"`
	Title         string `json:"title"`
	CreatedBy     string `json:"created_by"`
	QuestionCount int    `json:"question_count"`
}

// Attempt event payloads

type AttemptSubmittedEvent struct {
	AttemptID       uint      `json:"attempt_id"`
	QuizID          uint      `json:"quiz_id"`
	QuizTitle       string    `json:"quiz_title"`
	StudentID       string    `json:"student_id"`
	SubmittedAt     time.Time `json:"submitted_at"`
	EarnedScore     int       `json:"earned_score"`
	TotalScore      int       `json:"total_score"`
	ScorePercentage float64   `json:"score_percentage"`
	Passed          bool      `json:"passed"`
}

// Event factory functions

func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewQuestionsGeneratedEvent(payload QuestionsGeneratedEvent) *Event {
	return NewEvent(EventQuestionsGenerated, payload)
}

func NewQuizCreatedEvent(payload QuizCreatedEvent) *Event {
	return NewEvent(EventQuizCreated, payload)
}

func NewAttemptSubmittedEvent(payload AttemptSubmittedEvent) *Event {
	return NewEvent(EventAttemptSubmitted, payload)
}

// GenerateEventID returns a random event identifier
func GenerateEventID() string {
	return uuid.NewString()
}
