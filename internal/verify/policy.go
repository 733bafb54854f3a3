package verify

import "time"

// Job publication states.
const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusClosed  = "closed"
)

// publishThreshold is the risk score at and above which a posting is held
// back for moderation instead of going live.
const publishThreshold = 50

// PublicationStatus maps a verdict to the status a newly created job is
// stored with. Postings under the threshold are immediately visible;
// everything else waits for an explicit approval.
func PublicationStatus(v Verdict) string {
	if v.RiskScore < publishThreshold {
		return StatusActive
	}
	return StatusPending
}

// HardReject reports whether the posting should be rejected outright rather
// than stored. Only a heuristic hit (risk score 100) is ever rejected: the
// model's judgment alone never blocks a posting, it only demotes it to
// pending review.
func HardReject(v Verdict) bool {
	return !v.IsValid && v.RiskScore == 100
}

// Record is the verification metadata embedded in a persisted job. It is
// written once at creation time; there is no re-verification flow.
type Record struct {
	RiskScore    int       `json:"riskScore"`
	RedFlags     []string  `json:"redFlags"`
	LastVerified time.Time `json:"lastVerified"`
}

// NewRecord folds a verdict into the persistable verification record.
func NewRecord(v Verdict, now time.Time) Record {
	flags := v.RedFlags
	if flags == nil {
		flags = []string{}
	}
	return Record{
		RiskScore:    v.RiskScore,
		RedFlags:     flags,
		LastVerified: now,
	}
}
