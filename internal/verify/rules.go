package verify

import (
	"regexp"
	"strings"
)

// scamRule is one entry in the heuristic screen. The rule fires when its
// pattern matches the posting's title+description and the guard, if any,
// returns true.
type scamRule struct {
	pattern *regexp.Regexp
	reason  string
	guard   func(in PostingInput) bool
}

// scamRules are evaluated in order; fired reasons are reported in the same
// order. Patterns mirror the moderation rules the board launched with.
var scamRules = []scamRule{
	{
		pattern: regexp.MustCompile(`(?i)(\$[0-9,]+/?(week|month|hour))|(earn.*\$\d+)`),
		reason:  "Unrealistic salary claims",
	},
	{
		pattern: regexp.MustCompile(`(?i)(pay.*upfront)|(starter.*kit)|(investment required)`),
		reason:  "Requests for payment",
	},
	{
		pattern: regexp.MustCompile(`(?i)(no experience needed)|(no qualifications)`),
		reason:  "Lack of requirements for professional position",
		// Internships are legitimately low-requirement.
		guard: func(in PostingInput) bool {
			return !strings.Contains(in.Title, "Intern")
		},
	},
}

// ScreenPosting evaluates the fixed scam rules against the posting text and
// returns the fired reasons in rule order. Empty or missing text fields are
// treated as empty strings; the screen never errors.
func ScreenPosting(in PostingInput) []string {
	text := in.Title + in.Description

	var reasons []string
	for _, rule := range scamRules {
		if !rule.pattern.MatchString(text) {
			continue
		}
		if rule.guard != nil && !rule.guard(in) {
			continue
		}
		reasons = append(reasons, rule.reason)
	}
	return reasons
}
