package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/generation"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

// ServiceManager exposes every engine service to the transport layer
type ServiceManager interface {
	QuestionBank() QuestionBankService
	Generation() GenerationService
	Quiz() QuizService
	Attempt() AttemptService
}

// Dependencies are the collaborators shared by all services
type Dependencies struct {
	Repo             repositories.Repository
	Guard            *auth.Guard
	Generator        generation.TextGenerator
	GenerationModel  string
	Cache            cache.CacheService
	QuizCacheTTL     time.Duration
	Publisher        events.EventPublisher
	Logger           *slog.Logger
	Validator        *validator.Validator
	StrictAnswerKeys bool
}

type serviceManager struct {
	questionBank QuestionBankService
	generation   GenerationService
	quiz         QuizService
	attempt      AttemptService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Guard == nil {
		deps.Guard = auth.NewGuard(nil)
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}

	return &serviceManager{
		questionBank: NewQuestionBankService(deps.Repo, deps.Guard, deps.Logger.With("service", "question_bank"), deps.Validator, deps.StrictAnswerKeys),
		generation:   NewGenerationService(deps.Repo, deps.Guard, deps.Generator, deps.GenerationModel, deps.Publisher, deps.Logger.With("service", "generation"), deps.Validator),
		quiz:         NewQuizService(deps.Repo, deps.Guard, deps.Cache, deps.QuizCacheTTL, deps.Publisher, deps.Logger.With("service", "quiz"), deps.Validator),
		attempt:      NewAttemptService(deps.Repo, deps.Guard, deps.Cache, deps.QuizCacheTTL, deps.Publisher, deps.Logger.With("service", "attempt"), deps.Validator),
	}
}

func (m *serviceManager) QuestionBank() QuestionBankService { return m.questionBank }
func (m *serviceManager) Generation() GenerationService     { return m.generation }
func (m *serviceManager) Quiz() QuizService                 { return m.quiz }
func (m *serviceManager) Attempt() AttemptService           { return m.attempt }
