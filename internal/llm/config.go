// Package llm provides the generative-model client used for job-posting
// legitimacy assessment, abstracted behind an interface so handlers and
// tests can substitute stubs.
package llm

// ModelTier selects the capability level of the model used for a call.
type ModelTier string

const (
	// TierLite is for cheap judgment calls such as posting verification.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning with structured output.
	TierStandard ModelTier = "standard"
)

// Config holds the model selection for the application.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the Gemini models the board runs with.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.0-flash",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the lite
// model when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
