package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// Outcome tags the result of a generation run.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeEmpty  Outcome = "empty"
	OutcomeFailed Outcome = "failed"
)

// Candidate is a question parsed from model output, not yet persisted.
type Candidate struct {
	Text          string
	Type          models.QuestionType
	Options       []string
	CorrectAnswer string
	Explanation   string
	Difficulty    models.DifficultyLevel
	Topic         string
}

// Question converts the candidate into a record for bankID.
func (c Candidate) Question(bankID uint) *models.Question {
	q := &models.Question{
		BankID:        bankID,
		Text:          c.Text,
		Type:          c.Type,
		Options:       append(make([]string, 0, len(c.Options)), c.Options...),
		CorrectAnswer: c.CorrectAnswer,
		Difficulty:    c.Difficulty,
	}
	if c.Topic != "" {
		topic := c.Topic
		q.Topic = &topic
	}
	if c.Explanation != "" {
		explanation := c.Explanation
		q.Explanation = &explanation
	}
	return q
}

// ParseResult is either ok with at least one candidate or empty.
// RawText is always the untouched model output.
type ParseResult struct {
	Outcome    Outcome
	Candidates []Candidate
	RawText    string
}

const (
	fieldText          = "text"
	fieldType          = "type"
	fieldOptions       = "options"
	fieldCorrectAnswer = "correctAnswer"
	fieldExplanation   = "explanation"
	fieldDifficulty    = "difficulty"
	fieldTopic         = "topic"
)

// fieldSources lists, per canonical field, the keys accepted in model output
// in priority order.
var fieldSources = map[string][]string{
	fieldText:          {"questionText", "question"},
	fieldType:          {"questionType", "type"},
	fieldOptions:       {"options", "choices"},
	fieldCorrectAnswer: {"correctAnswer", "answer"},
	fieldExplanation:   {"explanation", "rationale"},
	fieldDifficulty:    {"difficulty", "level"},
	fieldTopic:         {"topic", "subject"},
}

// ParseQuestions extracts question candidates from raw model output. Missing
// type, difficulty and topic fall back to the requested params.
func ParseQuestions(text string, requested Params) ParseResult {
	requested = requested.WithDefaults()
	empty := ParseResult{Outcome: OutcomeEmpty, Candidates: []Candidate{}, RawText: text}

	arr, ok := ExtractJSONArray(text)
	if !ok {
		return empty
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(arr), &elements); err != nil {
		return empty
	}

	candidates := make([]Candidate, 0, len(elements))
	for _, raw := range elements {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			continue
		}
		candidates = append(candidates, candidateFrom(obj, requested))
	}

	if len(candidates) == 0 {
		return empty
	}
	return ParseResult{Outcome: OutcomeOK, Candidates: candidates, RawText: text}
}

func candidateFrom(obj map[string]any, requested Params) Candidate {
	c := Candidate{
		Text:          lookupString(obj, fieldText),
		Type:          requested.QuestionType,
		Options:       lookupStrings(obj, fieldOptions),
		CorrectAnswer: lookupString(obj, fieldCorrectAnswer),
		Explanation:   lookupString(obj, fieldExplanation),
		Difficulty:    requested.Difficulty,
		Topic:         requested.Topic,
	}

	if t := models.QuestionType(normalizeEnum(lookupString(obj, fieldType))); t.IsValid() {
		c.Type = t
	}
	if d := models.DifficultyLevel(normalizeEnum(lookupString(obj, fieldDifficulty))); d.IsValid() {
		c.Difficulty = d
	}
	if topic := lookupString(obj, fieldTopic); topic != "" {
		c.Topic = topic
	}
	return c
}

// lookupString returns the first non-empty scalar among the field's keys.
func lookupString(obj map[string]any, field string) string {
	for _, key := range fieldSources[field] {
		if s, ok := scalarString(obj[key]); ok && s != "" {
			return s
		}
	}
	return ""
}

// lookupStrings returns the first non-empty array among the field's keys.
func lookupStrings(obj map[string]any, field string) []string {
	for _, key := range fieldSources[field] {
		items, ok := obj[key].([]any)
		if !ok || len(items) == 0 {
			continue
		}
		res := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := scalarString(item); ok {
				res = append(res, s)
			}
		}
		return res
	}
	return []string{}
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64, bool:
		return fmt.Sprint(val), true
	default:
		return "", false
	}
}

// normalizeEnum lowercases and maps "Multiple Choice" / "multiple-choice" to
// the snake_case form used by the enums.
func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
