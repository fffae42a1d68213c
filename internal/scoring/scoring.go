// Package scoring computes attempt scores against a quiz's weighted question
// references. It is pure: question resolution happens before Score is called.
package scoring

import (
	"errors"
	"math"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// ErrZeroTotal is returned when the quiz carries no awardable points.
var ErrZeroTotal = errors.New("quiz has zero total points")

// ErrInvalidPoints is returned for negative weights or a total that does not fit in an int.
var ErrInvalidPoints = errors.New("quiz has invalid point weights")

type Breakdown struct {
	EarnedScore     int
	TotalScore      int
	ScorePercentage float64
	Passed          bool
	// MissingQuestionIDs are referenced questions that no longer exist.
	MissingQuestionIDs []uint
}

// Score matches answers exactly (case-sensitive, untrimmed) against each
// reference's correct answer. Only the first answer per question counts.
// Dangling references add to the total but can never be earned.
func Score(refs []models.QuizQuestion, questions map[uint]*models.Question, answers []models.AttemptAnswer, passingScore int) (Breakdown, error) {
	firstAnswer := make(map[uint]string, len(answers))
	for _, a := range answers {
		if _, seen := firstAnswer[a.QuestionID]; !seen {
			firstAnswer[a.QuestionID] = a.Answer
		}
	}

	var b Breakdown
	b.MissingQuestionIDs = make([]uint, 0)
	missing := make(map[uint]bool)

	for _, ref := range refs {
		if ref.Points < 0 || ref.Points > math.MaxInt-b.TotalScore {
			return Breakdown{}, ErrInvalidPoints
		}
		b.TotalScore += ref.Points

		question, ok := questions[ref.QuestionID]
		if !ok {
			if !missing[ref.QuestionID] {
				missing[ref.QuestionID] = true
				b.MissingQuestionIDs = append(b.MissingQuestionIDs, ref.QuestionID)
			}
			continue
		}

		if answer, answered := firstAnswer[ref.QuestionID]; answered && answer == question.CorrectAnswer {
			b.EarnedScore += ref.Points
		}
	}

	if b.TotalScore <= 0 {
		return Breakdown{}, ErrZeroTotal
	}
	if b.EarnedScore > b.TotalScore {
		return Breakdown{}, ErrInvalidPoints
	}

	b.ScorePercentage = 100 * float64(b.EarnedScore) / float64(b.TotalScore)
	b.Passed = b.ScorePercentage >= float64(passingScore)
	return b, nil
}
