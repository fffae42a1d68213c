package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

type questionBankService struct {
	repo      repositories.Repository
	guard     *auth.Guard
	logger    *slog.Logger
	validator *validator.Validator
	// strictAnswerKeys rejects manually added questions whose answer key
	// disagrees with their options.
	strictAnswerKeys bool
}

func NewQuestionBankService(repo repositories.Repository, guard *auth.Guard, logger *slog.Logger, validator *validator.Validator, strictAnswerKeys bool) QuestionBankService {
	return &questionBankService{
		repo:             repo,
		guard:            guard,
		logger:           logger,
		validator:        validator,
		strictAnswerKeys: strictAnswerKeys,
	}
}

func (s *questionBankService) CreateBank(ctx context.Context, principal auth.Principal, req *CreateQuestionBankRequest) (*models.QuestionBank, error) {
	s.logger.Info("Creating question bank", "owner_id", principal.ID, "name", req.Name)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if principal.ID == "" || !principal.Role.IsStaff() {
		return nil, NewPermissionError(principal.ID, 0, auth.ResourceQuestionBank, "create", "role cannot own question banks")
	}

	bank := &models.QuestionBank{
		OwnerID:     principal.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}

	if err := s.repo.QuestionBank().Create(ctx, bank); err != nil {
		return nil, fmt.Errorf("failed to create question bank: %w", err)
	}

	s.logger.Info("Question bank created successfully", "bank_id", bank.ID)
	return bank, nil
}

func (s *questionBankService) ListBanks(ctx context.Context, principal auth.Principal) ([]*models.QuestionBank, error) {
	banks, err := s.repo.QuestionBank().ListByOwner(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list question banks: %w", err)
	}
	return banks, nil
}

func (s *questionBankService) AddQuestion(ctx context.Context, bankID uint, principal auth.Principal, req *AddQuestionRequest) (*models.Question, error) {
	s.logger.Info("Adding question", "bank_id", bankID, "user_id", principal.ID, "type", req.Type)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	bank, err := s.authorizedBank(ctx, bankID, principal, "add_question")
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		BankID:        bank.ID,
		Text:          req.Text,
		Type:          req.Type,
		Options:       append(make([]string, 0, len(req.Options)), req.Options...),
		CorrectAnswer: req.CorrectAnswer,
		Difficulty:    req.Difficulty,
		Topic:         req.Topic,
		Explanation:   req.Explanation,
	}
	if question.Difficulty == "" {
		question.Difficulty = models.DifficultyMedium
	}

	if s.strictAnswerKeys {
		if errs := s.validator.Question().ValidateAnswerKey(question); len(errs) > 0 {
			return nil, errs
		}
	}

	if err := createQuestion(ctx, s.repo, question); err != nil {
		return nil, err
	}

	s.logger.Info("Question added successfully", "bank_id", bank.ID, "question_id", question.ID)
	return question, nil
}

func (s *questionBankService) ListQuestions(ctx context.Context, bankID uint, principal auth.Principal) ([]*models.Question, error) {
	bank, err := s.authorizedBank(ctx, bankID, principal, "read")
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.Question().ListByBank(ctx, bank.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// authorizedBank loads a bank and checks that principal may act on it.
func (s *questionBankService) authorizedBank(ctx context.Context, bankID uint, principal auth.Principal, action string) (*models.QuestionBank, error) {
	return loadAuthorizedBank(ctx, s.repo, s.guard, bankID, principal, action)
}

func loadAuthorizedBank(ctx context.Context, repo repositories.Repository, guard *auth.Guard, bankID uint, principal auth.Principal, action string) (*models.QuestionBank, error) {
	bank, err := repo.QuestionBank().GetByID(ctx, bankID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionBankNotFound
		}
		return nil, fmt.Errorf("failed to get question bank: %w", err)
	}

	if err := guard.Authorize(principal, auth.ResourceQuestionBank, action, bank.ID, bank.OwnerID); err != nil {
		return nil, err
	}
	return bank, nil
}

// createQuestion is the single write path for questions, manual or generated.
func createQuestion(ctx context.Context, repo repositories.Repository, question *models.Question) error {
	if question.Options == nil {
		question.Options = []string{}
	}
	if err := repo.Question().Create(ctx, question); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}
