package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

// ===== QUESTION BANKS =====

type questionBankRepository struct {
	db *DB
}

func (r *questionBankRepository) Create(ctx context.Context, bank *models.QuestionBank) error {
	t := r.db.banks
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.seq++
	bank.ID = t.seq
	if bank.CreatedAt.IsZero() {
		bank.CreatedAt = r.db.now()
	}
	stored := *bank
	t.t[bank.ID] = &stored
	return nil
}

func (r *questionBankRepository) GetByID(ctx context.Context, id uint) (*models.QuestionBank, error) {
	t := r.db.banks
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	bank, ok := t.t[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	res := *bank
	return &res, nil
}

func (r *questionBankRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.QuestionBank, error) {
	t := r.db.banks
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	res := make([]*models.QuestionBank, 0)
	for _, bank := range t.t {
		if bank.OwnerID == ownerID {
			b := *bank
			res = append(res, &b)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

// ===== QUESTIONS =====

type questionRepository struct {
	db *DB
}

func copyQuestion(q *models.Question) *models.Question {
	res := *q
	if q.Options != nil {
		res.Options = append(res.Options[:0:0], q.Options...)
	}
	return &res
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	t := r.db.questions
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.seq++
	question.ID = t.seq
	if question.CreatedAt.IsZero() {
		question.CreatedAt = r.db.now()
	}
	t.t[question.ID] = copyQuestion(question)
	return nil
}

func (r *questionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	t := r.db.questions
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	res := make([]*models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := t.t[id]; ok {
			res = append(res, copyQuestion(q))
		}
	}
	return res, nil
}

func (r *questionRepository) ListByBank(ctx context.Context, bankID uint) ([]*models.Question, error) {
	t := r.db.questions
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	res := make([]*models.Question, 0)
	for _, q := range t.t {
		if q.BankID == bankID {
			res = append(res, copyQuestion(q))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	t := r.db.questions
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.t[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(t.t, id)
	return nil
}

// ===== QUIZZES =====

type quizRepository struct {
	db *DB
}

func copyQuiz(q *models.Quiz) *models.Quiz {
	res := *q
	res.Questions = append([]models.QuizQuestion(nil), q.Questions...)
	return &res
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	t := r.db.quizzes
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.seq++
	quiz.ID = t.seq
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = r.db.now()
	}
	for i := range quiz.Questions {
		quiz.Questions[i].QuizID = quiz.ID
		quiz.Questions[i].Position = i
	}
	t.t[quiz.ID] = copyQuiz(quiz)
	return nil
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	t := r.db.quizzes
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	quiz, ok := t.t[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyQuiz(quiz), nil
}

func (r *quizRepository) ListByCreator(ctx context.Context, creatorID string) ([]*models.Quiz, error) {
	return r.filter(func(q *models.Quiz) bool { return q.CreatedBy == creatorID }), nil
}

func (r *quizRepository) ListByClasses(ctx context.Context, classIDs []uint) ([]*models.Quiz, error) {
	set := make(map[uint]bool, len(classIDs))
	for _, id := range classIDs {
		set[id] = true
	}
	return r.filter(func(q *models.Quiz) bool { return set[q.ClassID] }), nil
}

func (r *quizRepository) filter(keep func(*models.Quiz) bool) []*models.Quiz {
	t := r.db.quizzes
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	res := make([]*models.Quiz, 0)
	for _, q := range t.t {
		if keep(q) {
			res = append(res, copyQuiz(q))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res
}

// ===== ATTEMPTS =====

type attemptRepository struct {
	db *DB
}

func copyAttempt(a *models.QuizAttempt) *models.QuizAttempt {
	res := *a
	if a.Answers != nil {
		res.Answers = append(res.Answers[:0:0], a.Answers...)
	}
	return &res
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	t := r.db.attempts
	t.mutex.Lock()
	defer t.mutex.Unlock()

	key := attemptKey{quizID: attempt.QuizID, studentID: attempt.StudentID}
	if _, exists := t.unique[key]; exists {
		return fmt.Errorf("attempt for quiz %d: %w", attempt.QuizID, repositories.ErrDuplicate)
	}

	t.seq++
	attempt.ID = t.seq
	t.unique[key] = attempt.ID
	t.t[attempt.ID] = copyAttempt(attempt)
	return nil
}

func (r *attemptRepository) GetByQuizAndStudent(ctx context.Context, quizID uint, studentID string) (*models.QuizAttempt, error) {
	t := r.db.attempts
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	id, ok := t.unique[attemptKey{quizID: quizID, studentID: studentID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyAttempt(t.t[id]), nil
}

func (r *attemptRepository) ListByQuiz(ctx context.Context, quizID uint) ([]*models.QuizAttempt, error) {
	t := r.db.attempts
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	res := make([]*models.QuizAttempt, 0)
	for _, a := range t.t {
		if a.QuizID == quizID {
			res = append(res, copyAttempt(a))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		ci, cj := res[i].CompletedAt, res[j].CompletedAt
		switch {
		case ci != nil && cj != nil && !ci.Equal(*cj):
			return ci.After(*cj)
		case ci != nil && cj == nil:
			return true
		case ci == nil && cj != nil:
			return false
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

// ===== CLASSES =====

type classRepository struct {
	db *DB
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	t := r.db.classes
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	class, ok := t.t[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	res := *class
	return &res, nil
}

func (r *classRepository) IsEnrolled(ctx context.Context, classID uint, studentID string) (bool, error) {
	t := r.db.classes
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.enrolled[classID][studentID], nil
}

func (r *classRepository) ListClassIDsByStudent(ctx context.Context, studentID string) ([]uint, error) {
	t := r.db.classes
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	ids := make([]uint, 0)
	for classID, students := range t.enrolled {
		if students[studentID] {
			ids = append(ids, classID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
