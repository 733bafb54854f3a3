// Package verify implements the job-posting verification workflow: a fast
// pattern-based scam screen, an LLM legitimacy assessment for postings that
// pass it, and the moderation policy that maps the result to a publication
// status.
package verify

import "context"

// Verdict is the outcome of verifying a single job posting. It is computed
// fresh for every creation request and is not persisted on its own; the
// caller folds it into the job's verification record and status.
type Verdict struct {
	IsValid     bool     `json:"isValid"`
	RiskScore   int      `json:"riskScore"`
	RedFlags    []string `json:"redFlags"`
	Suggestions []string `json:"suggestions"`
}

// PostingInput holds the recruiter-supplied text fields a verdict is based
// on. Missing fields are zero values; verification never fails on them.
type PostingInput struct {
	Title        string
	Company      string
	Description  string
	Requirements []string
}

// Assessor judges whether a posting that passed the heuristic screen is
// legitimate. Implementations must not return an error: unavailability is
// expressed as a permissive low-confidence verdict.
type Assessor interface {
	Assess(ctx context.Context, in PostingInput) Verdict
}

// Verifier composes the heuristic screen with an assessor.
type Verifier struct {
	assessor Assessor
}

// NewVerifier creates a Verifier backed by the given assessor.
func NewVerifier(assessor Assessor) *Verifier {
	return &Verifier{assessor: assessor}
}

// Verify screens the posting against the scam rules and, only when no rule
// fires, consults the assessor. A heuristic hit is terminal: the posting is
// condemned with the maximum risk score and the assessor is never invoked,
// so obvious scams cost no external call and cannot be rescued by a model
// false negative.
func (v *Verifier) Verify(ctx context.Context, in PostingInput) Verdict {
	if flags := ScreenPosting(in); len(flags) > 0 {
		return Verdict{
			IsValid:     false,
			RiskScore:   100,
			RedFlags:    flags,
			Suggestions: []string{"This appears to be a scam"},
		}
	}
	return v.assessor.Assess(ctx, in)
}
