package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	guard     *auth.Guard
	quizzes   *quizLoader
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(
	repo repositories.Repository,
	guard *auth.Guard,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) QuizService {
	return &quizService{
		repo:      repo,
		guard:     guard,
		quizzes:   &quizLoader{repo: repo, cache: cacheService, ttl: cacheTTL, logger: logger},
		notifier:  NewNotificationEventService(publisher, logger),
		logger:    logger,
		validator: validator,
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, principal auth.Principal, req *CreateQuizRequest) (*models.Quiz, error) {
	s.logger.Info("Creating quiz", "class_id", req.ClassID, "user_id", principal.ID, "title", req.Title)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	class, err := s.repo.Class().GetByID(ctx, req.ClassID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}

	if err := s.guard.Authorize(principal, auth.ResourceQuiz, "create", class.ID, class.TeacherID); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		ClassID:      class.ID,
		Title:        req.Title,
		Description:  req.Description,
		CreatedBy:    principal.ID,
		TimeLimit:    req.TimeLimit,
		PassingScore: models.DefaultPassingScore,
		IsActive:     true,
		Questions:    buildQuizQuestions(req.Questions),
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created successfully", "quiz_id", quiz.ID, "questions", len(quiz.Questions))

	if err := s.notifier.NotifyQuizCreated(ctx, quiz); err != nil {
		s.logger.Warn("Failed to publish quiz created event", "quiz_id", quiz.ID, "error", err)
	}

	return quiz, nil
}

// buildQuizQuestions keeps refs in request order, duplicates included.
func buildQuizQuestions(refs []QuizQuestionRequest) []models.QuizQuestion {
	res := make([]models.QuizQuestion, 0, len(refs))
	for i, ref := range refs {
		qq := models.QuizQuestion{
			QuestionID: ref.QuestionID,
			Order:      ref.Order,
			Points:     models.DefaultQuestionPoints,
		}
		if qq.Order == 0 {
			qq.Order = i + 1
		}
		if ref.Points != nil {
			qq.Points = *ref.Points
		}
		res = append(res, qq)
	}
	return res
}

func (s *quizService) GetQuiz(ctx context.Context, quizID uint, principal auth.Principal) (*QuizView, error) {
	quiz, err := s.quizzes.load(ctx, quizID)
	if err != nil {
		return nil, err
	}

	view := &QuizView{Quiz: quiz}

	if principal.IsStudent() {
		if err := s.requireEnrollment(ctx, quiz, principal); err != nil {
			return nil, err
		}

		attempt, err := s.repo.Attempt().GetByQuizAndStudent(ctx, quiz.ID, principal.ID)
		switch {
		case err == nil:
			view.HasAttempted = true
			view.Attempt = attempt
		case !repositories.IsNotFoundError(err):
			return nil, fmt.Errorf("failed to get attempt: %w", err)
		}
	} else if err := s.requireStaffAccess(ctx, quiz, principal, "read"); err != nil {
		return nil, err
	}

	questions, err := resolveQuestions(ctx, s.repo, quiz)
	if err != nil {
		return nil, err
	}

	view.Questions = make([]QuizQuestionView, 0, len(quiz.Questions))
	view.MissingQuestionIDs = make([]uint, 0)
	reported := make(map[uint]bool)
	for _, ref := range quiz.Questions {
		qv := QuizQuestionView{QuestionID: ref.QuestionID, Order: ref.Order, Points: ref.Points}
		if q, ok := questions[ref.QuestionID]; ok {
			if principal.IsStudent() {
				q = hideAnswer(q)
			}
			qv.Question = q
		} else if !reported[ref.QuestionID] {
			reported[ref.QuestionID] = true
			view.MissingQuestionIDs = append(view.MissingQuestionIDs, ref.QuestionID)
		}
		view.Questions = append(view.Questions, qv)
	}

	return view, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, principal auth.Principal) ([]*models.Quiz, error) {
	if principal.IsStudent() {
		classIDs, err := s.repo.Class().ListClassIDsByStudent(ctx, principal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list student classes: %w", err)
		}
		if len(classIDs) == 0 {
			return []*models.Quiz{}, nil
		}
		quizzes, err := s.repo.Quiz().ListByClasses(ctx, classIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to list quizzes: %w", err)
		}
		return quizzes, nil
	}

	quizzes, err := s.repo.Quiz().ListByCreator(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *quizService) requireEnrollment(ctx context.Context, quiz *models.Quiz, principal auth.Principal) error {
	return requireEnrollment(ctx, s.repo, quiz, principal)
}

func (s *quizService) requireStaffAccess(ctx context.Context, quiz *models.Quiz, principal auth.Principal, action string) error {
	return requireQuizOwner(ctx, s.repo, s.guard, quiz, principal, action, true)
}

func requireEnrollment(ctx context.Context, repo repositories.Repository, quiz *models.Quiz, principal auth.Principal) error {
	enrolled, err := repo.Class().IsEnrolled(ctx, quiz.ClassID, principal.ID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return NewPermissionError(principal.ID, quiz.ID, auth.ResourceQuiz, "access", "student is not enrolled in the class")
	}
	return nil
}

// requireQuizOwner allows the quiz creator and their delegates. When
// allowClassTeacher is set the class teacher and their delegates pass too.
func requireQuizOwner(ctx context.Context, repo repositories.Repository, guard *auth.Guard, quiz *models.Quiz, principal auth.Principal, action string, allowClassTeacher bool) error {
	if guard.CanMutate(principal, auth.ResourceQuiz, quiz.CreatedBy) {
		return nil
	}

	if allowClassTeacher {
		class, err := repo.Class().GetByID(ctx, quiz.ClassID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to get class: %w", err)
		}
		if class != nil && guard.CanMutate(principal, auth.ResourceClass, class.TeacherID) {
			return nil
		}
	}

	return NewPermissionError(principal.ID, quiz.ID, auth.ResourceQuiz, action, "not quiz owner")
}

// hideAnswer returns a copy without the answer key.
func hideAnswer(q *models.Question) *models.Question {
	res := *q
	res.CorrectAnswer = ""
	res.Explanation = nil
	return &res
}
