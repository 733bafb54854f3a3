package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inclureach/inclureach/internal/llm"
)

// DefaultAssessTimeout bounds a single legitimacy assessment call.
const DefaultAssessTimeout = 15 * time.Second

// descriptionPromptLimit is how much of the description is sent to the model.
const descriptionPromptLimit = 200

// GeminiAssessor asks a generative model for a true/false legitimacy
// judgment. The client is injected so tests can substitute a stub.
type GeminiAssessor struct {
	client  llm.Client
	logger  zerolog.Logger
	timeout time.Duration
}

// NewGeminiAssessor creates an assessor backed by the given LLM client.
func NewGeminiAssessor(client llm.Client, logger zerolog.Logger) *GeminiAssessor {
	return &GeminiAssessor{
		client:  client,
		logger:  logger,
		timeout: DefaultAssessTimeout,
	}
}

// WithTimeout overrides the per-call timeout.
func (a *GeminiAssessor) WithTimeout(d time.Duration) *GeminiAssessor {
	a.timeout = d
	return a
}

// Assess requests a legitimacy judgment for the posting. Any failure of the
// external service is downgraded to a permissive "needs manual review"
// verdict: availability of the board takes priority over strict
// verification, and the risk score still routes the posting to a human.
func (a *GeminiAssessor) Assess(ctx context.Context, in PostingInput) Verdict {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.client.GenerateContent(ctx, BuildAssessmentPrompt(in), llm.TierLite)
	if err != nil {
		a.logger.Warn().Err(err).Str("title", in.Title).
			Msg("legitimacy assessment unavailable, flagging for manual review")
		return FallbackVerdict()
	}

	if strings.Contains(strings.TrimSpace(strings.ToLower(text)), "true") {
		return Verdict{
			IsValid:     true,
			RiskScore:   0,
			RedFlags:    []string{},
			Suggestions: []string{},
		}
	}
	return Verdict{
		IsValid:     false,
		RiskScore:   70,
		RedFlags:    []string{"Potential scam indicators found"},
		Suggestions: []string{"Please review job details carefully"},
	}
}

// FallbackVerdict is returned when the external assessor cannot be reached.
// The posting is allowed through with a risk score that keeps it below the
// publication threshold but visible to moderators.
func FallbackVerdict() Verdict {
	return Verdict{
		IsValid:     true,
		RiskScore:   30,
		RedFlags:    []string{"Verification system unavailable"},
		Suggestions: []string{"Job requires manual review"},
	}
}

// BuildAssessmentPrompt constructs the bounded prompt sent to the model.
// The description is truncated so a hostile posting cannot blow up token
// usage.
func BuildAssessmentPrompt(in PostingInput) string {
	description := in.Description
	// Truncate on runes so a multi-byte character is never split.
	if runes := []rune(description); len(runes) > descriptionPromptLimit {
		description = string(runes[:descriptionPromptLimit])
	}

	requirements := "None"
	if len(in.Requirements) > 0 {
		requirements = strings.Join(in.Requirements, ", ")
	}

	return fmt.Sprintf(`Verify if this is a legitimate job posting (true/false):
        Title: %s
        Company: %s
        Description: %s...
        Requirements: %s`,
		in.Title, in.Company, description, requirements)
}
