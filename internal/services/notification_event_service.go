package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/scoring"
)

// NotificationEventService announces engine state changes through event publishing.
// Callers treat failures as non-fatal: the state change has already been stored.
type NotificationEventService interface {
	NotifyQuestionsGenerated(ctx context.Context, bank *models.QuestionBank, requestedBy, topic string, requested int, questions []*models.Question) error
	NotifyQuizCreated(ctx context.Context, quiz *models.Quiz) error
	NotifyAttemptSubmitted(ctx context.Context, quiz *models.Quiz, attempt *models.QuizAttempt, breakdown scoring.Breakdown) error
}

type notificationEventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

// NewNotificationEventService returns a notifier; a nil publisher disables publishing.
func NewNotificationEventService(eventPublisher events.EventPublisher, logger *slog.Logger) NotificationEventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationEventService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notificationEventService) NotifyQuestionsGenerated(ctx context.Context, bank *models.QuestionBank, requestedBy, topic string, requested int, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	return s.publish(ctx, events.NewQuestionsGeneratedEvent(events.QuestionsGeneratedEvent{
		BankID:      bank.ID,
		OwnerID:     bank.OwnerID,
		RequestedBy: requestedBy,
		Topic:       topic,
		Requested:   requested,
		Persisted:   len(questions),
		QuestionIDs: ids,
	}))
}

func (s *notificationEventService) NotifyQuizCreated(ctx context.Context, quiz *models.Quiz) error {
	return s.publish(ctx, events.NewQuizCreatedEvent(events.QuizCreatedEvent{
		QuizID:        quiz.ID,
		ClassID:       quiz.ClassID,
		Title:         quiz.Title,
		CreatedBy:     quiz.CreatedBy,
		QuestionCount: len(quiz.Questions),
	}))
}

func (s *notificationEventService) NotifyAttemptSubmitted(ctx context.Context, quiz *models.Quiz, attempt *models.QuizAttempt, breakdown scoring.Breakdown) error {
	payload := events.AttemptSubmittedEvent{
		AttemptID:       attempt.ID,
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		StudentID:       attempt.StudentID,
		EarnedScore:     breakdown.EarnedScore,
		TotalScore:      breakdown.TotalScore,
		ScorePercentage: breakdown.ScorePercentage,
		Passed:          breakdown.Passed,
	}
	if attempt.CompletedAt != nil {
		payload.SubmittedAt = *attempt.CompletedAt
	}
	return s.publish(ctx, events.NewAttemptSubmittedEvent(payload))
}

func (s *notificationEventService) publish(ctx context.Context, event *events.Event) error {
	if s.eventPublisher == nil {
		return nil
	}

	s.logger.Debug("Publishing event", "event_type", event.Type, "event_id", event.ID)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}
