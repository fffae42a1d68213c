package generation

import (
	"context"
)

// Result is the tagged outcome of one generation call.
// Reason is set only when Outcome is OutcomeFailed.
type Result struct {
	Outcome    Outcome
	Candidates []Candidate
	RawText    string
	Reason     string
}

// Run builds the request, calls the generator and parses its output.
// Collaborator errors become a failed result instead of an error.
func Run(ctx context.Context, gen TextGenerator, params Params, model string) Result {
	resp, err := gen.Generate(ctx, BuildRequest(params, model))
	if err != nil {
		reason := err.Error()
		if ctxErr := ctx.Err(); ctxErr != nil && reason == "" {
			reason = ctxErr.Error()
		}
		return Result{Outcome: OutcomeFailed, Candidates: []Candidate{}, Reason: reason}
	}

	parsed := ParseQuestions(resp.Text, params)
	return Result{
		Outcome:    parsed.Outcome,
		Candidates: parsed.Candidates,
		RawText:    parsed.RawText,
	}
}
