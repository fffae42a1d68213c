package scoring

import (
	"math"
	"testing"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionSet(qs ...*models.Question) map[uint]*models.Question {
	res := make(map[uint]*models.Question, len(qs))
	for _, q := range qs {
		res[q.ID] = q
	}
	return res
}

func TestScore(t *testing.T) {
	q1 := &models.Question{ID: 1, CorrectAnswer: "A"}
	q2 := &models.Question{ID: 2, CorrectAnswer: "Paris"}

	tests := []struct {
		name         string
		refs         []models.QuizQuestion
		questions    map[uint]*models.Question
		answers      []models.AttemptAnswer
		passingScore int
		want         Breakdown
	}{
		{
			name:         "only the heavier question matched",
			refs:         []models.QuizQuestion{{QuestionID: 1, Points: 2}, {QuestionID: 2, Points: 3}},
			questions:    questionSet(q1, q2),
			answers:      []models.AttemptAnswer{{QuestionID: 1, Answer: "B"}, {QuestionID: 2, Answer: "Paris"}},
			passingScore: 60,
			want:         Breakdown{EarnedScore: 3, TotalScore: 5, ScorePercentage: 60, Passed: true, MissingQuestionIDs: []uint{}},
		},
		{
			name:         "exact match is case sensitive and untrimmed",
			refs:         []models.QuizQuestion{{QuestionID: 2, Points: 1}},
			questions:    questionSet(q2),
			answers:      []models.AttemptAnswer{{QuestionID: 2, Answer: "paris "}},
			passingScore: 60,
			want:         Breakdown{EarnedScore: 0, TotalScore: 1, ScorePercentage: 0, Passed: false, MissingQuestionIDs: []uint{}},
		},
		{
			name:         "first answer per question wins",
			refs:         []models.QuizQuestion{{QuestionID: 1, Points: 1}},
			questions:    questionSet(q1),
			answers:      []models.AttemptAnswer{{QuestionID: 1, Answer: "B"}, {QuestionID: 1, Answer: "A"}},
			passingScore: 50,
			want:         Breakdown{EarnedScore: 0, TotalScore: 1, ScorePercentage: 0, Passed: false, MissingQuestionIDs: []uint{}},
		},
		{
			name:         "dangling reference counts toward total only",
			refs:         []models.QuizQuestion{{QuestionID: 1, Points: 1}, {QuestionID: 9, Points: 3}, {QuestionID: 9, Points: 1}},
			questions:    questionSet(q1),
			answers:      []models.AttemptAnswer{{QuestionID: 1, Answer: "A"}, {QuestionID: 9, Answer: "anything"}},
			passingScore: 20,
			want:         Breakdown{EarnedScore: 1, TotalScore: 5, ScorePercentage: 20, Passed: true, MissingQuestionIDs: []uint{9}},
		},
		{
			name:         "duplicate references each earn",
			refs:         []models.QuizQuestion{{QuestionID: 1, Points: 1}, {QuestionID: 1, Points: 1}},
			questions:    questionSet(q1),
			answers:      []models.AttemptAnswer{{QuestionID: 1, Answer: "A"}},
			passingScore: 100,
			want:         Breakdown{EarnedScore: 2, TotalScore: 2, ScorePercentage: 100, Passed: true, MissingQuestionIDs: []uint{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.refs, tt.questions, tt.answers, tt.passingScore)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.ScorePercentage, 0.0)
			assert.LessOrEqual(t, got.ScorePercentage, 100.0)
		})
	}
}

func TestScore_ZeroTotal(t *testing.T) {
	_, err := Score(nil, nil, nil, 60)
	assert.ErrorIs(t, err, ErrZeroTotal)

	_, err = Score([]models.QuizQuestion{{QuestionID: 1, Points: 0}}, nil, nil, 60)
	assert.ErrorIs(t, err, ErrZeroTotal)
}

func TestScore_InvalidPoints(t *testing.T) {
	q1 := &models.Question{ID: 1, CorrectAnswer: "A"}
	answers := []models.AttemptAnswer{{QuestionID: 1, Answer: "A"}}

	t.Run("total overflows", func(t *testing.T) {
		refs := []models.QuizQuestion{
			{QuestionID: 1, Points: math.MaxInt},
			{QuestionID: 2, Points: math.MaxInt},
			{QuestionID: 3, Points: 3},
		}
		_, err := Score(refs, questionSet(q1), answers, 60)
		assert.ErrorIs(t, err, ErrInvalidPoints)
	})

	t.Run("negative weight", func(t *testing.T) {
		refs := []models.QuizQuestion{{QuestionID: 1, Points: 5}, {QuestionID: 2, Points: -4}}
		_, err := Score(refs, questionSet(q1), answers, 60)
		assert.ErrorIs(t, err, ErrInvalidPoints)
	})

	t.Run("largest total stays within bounds", func(t *testing.T) {
		refs := []models.QuizQuestion{{QuestionID: 1, Points: math.MaxInt - 1}, {QuestionID: 2, Points: 1}}
		b, err := Score(refs, questionSet(q1), answers, 100)
		require.NoError(t, err)
		assert.LessOrEqual(t, b.ScorePercentage, 100.0)
		assert.GreaterOrEqual(t, b.ScorePercentage, 0.0)
	})
}
