package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/generation"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

type generationService struct {
	repo      repositories.Repository
	guard     *auth.Guard
	generator generation.TextGenerator
	model     string
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGenerationService(
	repo repositories.Repository,
	guard *auth.Guard,
	generator generation.TextGenerator,
	model string,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) GenerationService {
	return &generationService{
		repo:      repo,
		guard:     guard,
		generator: generator,
		model:     model,
		notifier:  NewNotificationEventService(publisher, logger),
		logger:    logger,
		validator: validator,
	}
}

func (s *generationService) GenerateQuestions(ctx context.Context, bankID uint, principal auth.Principal, req *GenerateQuestionsRequest) (*GenerationResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	bank, err := loadAuthorizedBank(ctx, s.repo, s.guard, bankID, principal, "generate_questions")
	if err != nil {
		return nil, err
	}

	params := generation.Params{
		Topic:        req.Topic,
		NumQuestions: req.NumQuestions,
		Difficulty:   req.Difficulty,
		QuestionType: req.QuestionType,
	}.WithDefaults()

	s.logger.Info("Generating questions",
		"bank_id", bank.ID,
		"user_id", principal.ID,
		"topic", params.Topic,
		"num_questions", params.NumQuestions,
		"difficulty", params.Difficulty,
		"question_type", params.QuestionType)

	start := time.Now()
	run := generation.Run(ctx, s.generator, params, s.model)

	if run.Outcome == generation.OutcomeFailed {
		s.logger.Error("Question generation failed",
			"bank_id", bank.ID,
			"duration", time.Since(start),
			"reason", run.Reason)
		return nil, &GenerationError{Reason: run.Reason}
	}

	questions := make([]*models.Question, 0, len(run.Candidates))
	for _, candidate := range run.Candidates {
		question := candidate.Question(bank.ID)
		if err := createQuestion(ctx, s.repo, question); err != nil {
			return nil, fmt.Errorf("failed to persist generated question %d of %d: %w", len(questions)+1, len(run.Candidates), err)
		}
		questions = append(questions, question)
	}

	if run.Outcome == generation.OutcomeEmpty {
		s.logger.Warn("Generation returned no usable questions",
			"bank_id", bank.ID,
			"raw_length", len(run.RawText))
	} else {
		s.logger.Info("Questions generated successfully",
			"bank_id", bank.ID,
			"requested", params.NumQuestions,
			"persisted", len(questions),
			"duration", time.Since(start))
	}

	s.publishGenerated(ctx, bank, principal, params, questions)

	return &GenerationResult{
		Outcome:   run.Outcome,
		Questions: questions,
		RawText:   run.RawText,
	}, nil
}

func (s *generationService) publishGenerated(ctx context.Context, bank *models.QuestionBank, principal auth.Principal, params generation.Params, questions []*models.Question) {
	if err := s.notifier.NotifyQuestionsGenerated(ctx, bank, principal.ID, params.Topic, params.NumQuestions, questions); err != nil {
		s.logger.Warn("Failed to publish questions generated event", "bank_id", bank.ID, "error", err)
	}
}
