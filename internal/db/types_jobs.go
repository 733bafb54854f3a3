package db

import (
	"time"

	"github.com/google/uuid"
)

// Job publication states. A job is active only while its last verification
// risk score was under the moderation threshold or an approver promoted it.
const (
	JobStatusActive  = "active"
	JobStatusPending = "pending"
	JobStatusClosed  = "closed"
)

// Application states, as shown to job seekers.
const (
	ApplicationApplied   = "Applied"
	ApplicationInterview = "Interview"
	ApplicationOffer     = "Offer"
	ApplicationRejected  = "Rejected"
)

// Job represents a posting record.
type Job struct {
	ID                 uuid.UUID    `json:"id"`
	Title              string       `json:"title"`
	Company            string       `json:"company"`
	Location           string       `json:"location"`
	Remote             bool         `json:"remote"`
	Description        string       `json:"description"`
	Requirements       []string     `json:"requirements"`
	Skills             []string     `json:"skills"`
	DisabilityTypes    []string     `json:"disabilityTypes"`
	DisabilitySeverity string       `json:"disabilitySeverity"`
	Salary             Salary       `json:"salary"`
	PostedBy           uuid.UUID    `json:"postedBy"`
	Poster             *PublicUser  `json:"poster,omitempty"` // joined
	Status             string       `json:"status"`
	Verification       Verification `json:"verification"`
	ApprovedBy         *uuid.UUID   `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time   `json:"approvedAt,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`

	// Loaded via separate queries where the endpoint needs them.
	Applicants []Applicant `json:"applicants,omitempty"`
}

// Salary is the salary document embedded in a job.
type Salary struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"`
	IsPublic bool    `json:"isPublic"`
}

// NormalizeSalary applies the board's salary defaults: USD, monthly, public.
func NormalizeSalary(s Salary) Salary {
	if s.Currency == "" {
		s.Currency = "USD"
	}
	if s.Period == "" {
		s.Period = "month"
	}
	return s
}

// Verification is the verification record embedded in a job at creation
// time. It is immutable afterward; only an approval can change the job's
// status.
type Verification struct {
	RiskScore    int       `json:"riskScore"`
	RedFlags     []string  `json:"redFlags"`
	LastVerified time.Time `json:"lastVerified"`
}

// Applicant is an application row joined with the applicant's public user
// data, as shown to the recruiter who posted the job.
type Applicant struct {
	ApplicationID uuid.UUID  `json:"applicationId"`
	User          PublicUser `json:"user"`
	Status        string     `json:"status"`
	AppliedAt     time.Time  `json:"appliedAt"`
	AcceptedAt    *time.Time `json:"acceptedAt,omitempty"`
}

// Application is an application row joined with its job, as shown to the
// job seeker who applied.
type Application struct {
	ID         uuid.UUID          `json:"id"`
	Status     string             `json:"status"`
	AppliedAt  time.Time          `json:"appliedDate"`
	AcceptedAt *time.Time         `json:"acceptedAt,omitempty"`
	Updates    []ApplicationEvent `json:"updates"`
	Job        *JobSummary        `json:"job"`
}

// ApplicationEvent is one entry of the updates document on an application.
type ApplicationEvent struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// JobSummary is the trimmed job representation used in application lists,
// saved jobs, and recommendations.
type JobSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Remote          bool      `json:"remote"`
	Skills          []string  `json:"skills,omitempty"`
	DisabilityTypes []string  `json:"disabilityTypes,omitempty"`
	Excerpt         string    `json:"excerpt,omitempty"`
	PostedAt        time.Time `json:"postedDate"`
}

// JobCreateInput is used when creating a new job posting. Every field is
// explicit; unknown request fields are rejected at the handler boundary.
type JobCreateInput struct {
	Title              string
	Company            string
	Location           string
	Remote             bool
	Description        string
	Requirements       []string
	Skills             []string
	DisabilityTypes    []string
	DisabilitySeverity string
	Salary             Salary
	PostedBy           uuid.UUID
	Status             string
	Verification       Verification
}

// RecommendationFilter selects jobs for a seeker's dashboard.
type RecommendationFilter struct {
	UserID         uuid.UUID // applied jobs by this user are excluded
	DisabilityType string
	Severity       string
	Skills         []string
	Limit          int
}
