package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

// quizLoader reads quizzes through the cache. Quizzes are immutable once
// created, so entries are never invalidated, only expired.
type quizLoader struct {
	repo   repositories.Repository
	cache  cache.CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func (l *quizLoader) load(ctx context.Context, quizID uint) (*models.Quiz, error) {
	key := cache.QuizKey(quizID)

	if l.cache != nil {
		var cached models.Quiz
		err := l.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.logger.Warn("Quiz cache read failed", "quiz_id", quizID, "error", err)
		}
	}

	quiz, err := l.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, key, quiz, l.ttl); err != nil {
			l.logger.Warn("Quiz cache write failed", "quiz_id", quizID, "error", err)
		}
	}
	return quiz, nil
}

// resolveQuestions loads the quiz's referenced questions keyed by ID.
// Dangling references are simply absent from the map.
func resolveQuestions(ctx context.Context, repo repositories.Repository, quiz *models.Quiz) (map[uint]*models.Question, error) {
	questions, err := repo.Question().GetByIDs(ctx, quiz.QuestionIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve quiz questions: %w", err)
	}

	res := make(map[uint]*models.Question, len(questions))
	for _, q := range questions {
		res[q.ID] = q
	}
	return res, nil
}
