package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/scoring"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

type attemptService struct {
	repo      repositories.Repository
	guard     *auth.Guard
	quizzes   *quizLoader
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewAttemptService(
	repo repositories.Repository,
	guard *auth.Guard,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AttemptService {
	return &attemptService{
		repo:      repo,
		guard:     guard,
		quizzes:   &quizLoader{repo: repo, cache: cacheService, ttl: cacheTTL, logger: logger},
		notifier:  NewNotificationEventService(publisher, logger),
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

func (s *attemptService) SubmitAttempt(ctx context.Context, quizID uint, principal auth.Principal, req *SubmitAttemptRequest) (*SubmitResult, error) {
	s.logger.Info("Submitting attempt",
		"quiz_id", quizID,
		"student_id", principal.ID,
		"answers", len(req.Answers))

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if !principal.IsStudent() || principal.ID == "" {
		return nil, NewPermissionError(principal.ID, quizID, auth.ResourceAttempt, "submit", "only students may submit attempts")
	}

	quiz, err := s.quizzes.load(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if err := requireEnrollment(ctx, s.repo, quiz, principal); err != nil {
		return nil, err
	}

	// Fast path; the storage uniqueness constraint is the real guarantee.
	if _, err := s.repo.Attempt().GetByQuizAndStudent(ctx, quiz.ID, principal.ID); err == nil {
		return nil, ErrAlreadyAttempted
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing attempt: %w", err)
	}

	if !quiz.IsActive {
		return nil, &InvalidQuizError{QuizID: quiz.ID, Reason: "quiz is not active"}
	}

	questions, err := resolveQuestions(ctx, s.repo, quiz)
	if err != nil {
		return nil, err
	}

	breakdown, err := scoring.Score(quiz.Questions, questions, req.Answers, quiz.PassingScore)
	if err != nil {
		if errors.Is(err, scoring.ErrZeroTotal) || errors.Is(err, scoring.ErrInvalidPoints) {
			return nil, &InvalidQuizError{QuizID: quiz.ID, Reason: err.Error()}
		}
		return nil, fmt.Errorf("failed to score attempt: %w", err)
	}

	if len(breakdown.MissingQuestionIDs) > 0 {
		s.logger.Warn("Scoring quiz with dangling question references",
			"quiz_id", quiz.ID,
			"missing_question_ids", breakdown.MissingQuestionIDs)
	}

	now := s.now()
	score := breakdown.ScorePercentage
	passed := breakdown.Passed
	attempt := &models.QuizAttempt{
		QuizID:      quiz.ID,
		StudentID:   principal.ID,
		Answers:     append(make([]models.AttemptAnswer, 0, len(req.Answers)), req.Answers...),
		StartedAt:   now,
		CompletedAt: &now,
		Score:       &score,
		Passed:      &passed,
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		if repositories.IsDuplicateError(err) {
			s.logger.Warn("Concurrent duplicate attempt rejected", "quiz_id", quiz.ID, "student_id", principal.ID)
			return nil, ErrAlreadyAttempted
		}
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.logger.Info("Attempt submitted successfully",
		"attempt_id", attempt.ID,
		"quiz_id", quiz.ID,
		"earned", breakdown.EarnedScore,
		"total", breakdown.TotalScore,
		"passed", breakdown.Passed)

	s.publishSubmitted(ctx, quiz, attempt, breakdown)

	return &SubmitResult{
		Attempt:            attempt,
		EarnedScore:        breakdown.EarnedScore,
		TotalScore:         breakdown.TotalScore,
		ScorePercentage:    breakdown.ScorePercentage,
		Passed:             breakdown.Passed,
		MissingQuestionIDs: breakdown.MissingQuestionIDs,
	}, nil
}

func (s *attemptService) ListAttempts(ctx context.Context, quizID uint, principal auth.Principal) ([]*models.QuizAttempt, error) {
	quiz, err := s.quizzes.load(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if err := requireQuizOwner(ctx, s.repo, s.guard, quiz, principal, "list_attempts", false); err != nil {
		return nil, err
	}

	attempts, err := s.repo.Attempt().ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}

func (s *attemptService) publishSubmitted(ctx context.Context, quiz *models.Quiz, attempt *models.QuizAttempt, breakdown scoring.Breakdown) {
	if err := s.notifier.NotifyAttemptSubmitted(ctx, quiz, attempt, breakdown); err != nil {
		s.logger.Warn("Failed to publish attempt submitted event", "attempt_id", attempt.ID, "error", err)
	}
}
