package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/generation"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories/memory"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	teacher      = auth.Principal{ID: "teacher-1", Role: models.RoleTeacher}
	otherTeacher = auth.Principal{ID: "teacher-2", Role: models.RoleTeacher}
	owner        = auth.Principal{ID: "owner-1", Role: models.RoleInstituteOwner, ActsFor: []string{"teacher-1"}}
	student      = auth.Principal{ID: "student-1", Role: models.RoleStudent}
	outsider     = auth.Principal{ID: "student-9", Role: models.RoleStudent}
)

const testClassID uint = 10

// MockTextGenerator is a mock implementation of generation.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, req generation.Request) (generation.Response, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(generation.Response), args.Error(1)
}

// MockCacheService is a mock implementation of cache.CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

type testEnv struct {
	db        *memory.DB
	repo      repositories.Repository
	generator *MockTextGenerator
	publisher *events.MockEventPublisher
	services  ServiceManager
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T, opts ...func(*Dependencies)) *testEnv {
	t.Helper()

	db := memory.Open()
	db.PutClass(models.Class{ID: testClassID, TeacherID: teacher.ID, Name: "Algebra"})
	db.Enroll(testClassID, student.ID)

	env := &testEnv{
		db:        db,
		repo:      memory.NewRepository(db),
		generator: new(MockTextGenerator),
		publisher: events.NewMockEventPublisher(discardLogger()),
	}

	deps := Dependencies{
		Repo:            env.repo,
		Guard:           auth.NewGuard(nil),
		Generator:       env.generator,
		GenerationModel: "test/model",
		Publisher:       env.publisher,
		Logger:          discardLogger(),
		Validator:       validator.New(),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	env.services = NewServiceManager(deps)
	return env
}

func (e *testEnv) createBank(t *testing.T, principal auth.Principal) *models.QuestionBank {
	t.Helper()
	bank, err := e.services.QuestionBank().CreateBank(context.Background(), principal, &CreateQuestionBankRequest{Name: "Bank"})
	require.NoError(t, err)
	return bank
}

func (e *testEnv) addQuestion(t *testing.T, bankID uint, text, answer string) *models.Question {
	t.Helper()
	q, err := e.services.QuestionBank().AddQuestion(context.Background(), bankID, teacher, &AddQuestionRequest{
		Text:          text,
		Type:          models.ShortAnswer,
		CorrectAnswer: answer,
	})
	require.NoError(t, err)
	return q
}

func (e *testEnv) createQuiz(t *testing.T, refs ...QuizQuestionRequest) *models.Quiz {
	t.Helper()
	quiz, err := e.services.Quiz().CreateQuiz(context.Background(), teacher, &CreateQuizRequest{
		ClassID:   testClassID,
		Title:     "Quiz",
		Questions: refs,
	})
	require.NoError(t, err)
	return quiz
}

func points(p int) *int { return &p }
