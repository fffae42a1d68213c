package generation

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

const (
	DefaultNumQuestions = 5
	MaxNumQuestions     = 50
)

// Params are the caller's generation parameters.
type Params struct {
	Topic        string
	NumQuestions int
	Difficulty   models.DifficultyLevel
	QuestionType models.QuestionType
}

// WithDefaults fills unset parameters with the engine defaults.
func (p Params) WithDefaults() Params {
	if p.NumQuestions <= 0 {
		p.NumQuestions = DefaultNumQuestions
	}
	if p.NumQuestions > MaxNumQuestions {
		p.NumQuestions = MaxNumQuestions
	}
	if !p.Difficulty.IsValid() {
		p.Difficulty = models.DifficultyMedium
	}
	if !p.QuestionType.IsValid() {
		p.QuestionType = models.MultipleChoice
	}
	p.Topic = strings.TrimSpace(p.Topic)
	return p
}

// Request is the logical request sent to the text-generation collaborator.
type Request struct {
	SystemInstruction string
	UserPrompt        string
	Model             string
}

// Response is the collaborator's raw textual answer.
type Response struct {
	Text string
}

// BuildRequest renders the fixed instruction plus the caller's parameters.
func BuildRequest(p Params, model string) Request {
	p = p.WithDefaults()

	var sys strings.Builder
	sys.WriteString("You are a quiz question generator. Generate educational quiz questions in JSON format.\n")
	sys.WriteString("Each question should be an object with these fields:\n")
	sys.WriteString("- questionText: The question text\n")
	fmt.Fprintf(&sys, "- questionType: %q\n", p.QuestionType)
	sys.WriteString(optionsInstruction(p.QuestionType))
	sys.WriteString("- correctAnswer: The correct answer, copied exactly from options when options are present\n")
	sys.WriteString("- explanation: Brief explanation of the answer\n")
	fmt.Fprintf(&sys, "- difficulty: %q\n", p.Difficulty)
	fmt.Fprintf(&sys, "- topic: %q\n", p.Topic)
	sys.WriteString("\nRespond with a JSON array only. Return ONLY a valid JSON array of question objects, nothing else.")

	user := fmt.Sprintf("Generate %d %s %s questions about %q.", p.NumQuestions, p.Difficulty, p.QuestionType, p.Topic)
	if p.QuestionType == models.MultipleChoice {
		user += " Each multiple choice question should have 4 distinct options."
	}
	user += " Make the questions educational and clear."

	return Request{
		SystemInstruction: sys.String(),
		UserPrompt:        user,
		Model:             model,
	}
}

func optionsInstruction(t models.QuestionType) string {
	switch t {
	case models.TrueFalse:
		return "- options: [\"True\", \"False\"]\n"
	case models.ShortAnswer:
		return "- options: [] (leave empty for short answer)\n"
	default:
		return "- options: Array of 4 answer options\n"
	}
}
