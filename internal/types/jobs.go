package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/inclureach/inclureach/internal/db"
	"github.com/inclureach/inclureach/internal/verify"
)

// SalaryInput is the salary block accepted on job creation. IsPublic is a
// pointer so an omitted field defaults to visible.
type SalaryInput struct {
	Amount   float64 `json:"amount" validate:"omitempty,min=0"`
	Currency string  `json:"currency"`
	Period   string  `json:"period" validate:"omitempty,oneof=hour week month year"`
	IsPublic *bool   `json:"isPublic"`
}

// CreateJobRequest represents a job posting submission.
type CreateJobRequest struct {
	Title              string       `json:"title" validate:"required,min=1"`
	Company            string       `json:"company" validate:"required,min=1"`
	Location           string       `json:"location" validate:"required,min=1"`
	Remote             bool         `json:"remote"`
	Description        string       `json:"description" validate:"required,min=1"`
	Requirements       []string     `json:"requirements"`
	Skills             []string     `json:"skills"`
	DisabilityTypes    []string     `json:"disabilityTypes" validate:"dive,oneof=Physical Visual Hearing Cognitive Other"`
	DisabilitySeverity string       `json:"disabilitySeverity" validate:"omitempty,oneof=Mild Moderate Severe Any"`
	Salary             *SalaryInput `json:"salary"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// NormalizedSalary converts the input block into a normalized db.Salary.
// An absent block still gets the board's defaults.
func (r *CreateJobRequest) NormalizedSalary() db.Salary {
	if r.Salary == nil {
		return db.NormalizeSalary(db.Salary{IsPublic: true})
	}
	return db.NormalizeSalary(db.Salary{
		Amount:   r.Salary.Amount,
		Currency: r.Salary.Currency,
		Period:   r.Salary.Period,
		IsPublic: r.Salary.IsPublic == nil || *r.Salary.IsPublic,
	})
}

// CreateJobResponse is returned when a posting passes verification.
type CreateJobResponse struct {
	Success      bool           `json:"success"`
	Job          *db.Job        `json:"job"`
	Verification *verify.Verdict `json:"verification"`
}

// RejectJobResponse is returned when verification hard-rejects a posting.
type RejectJobResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details *verify.Verdict `json:"details"`
}

// AcceptApplicantRequest identifies the applicant receiving an offer.
type AcceptApplicantRequest struct {
	ApplicantID uuid.UUID `json:"applicantId" validate:"required"`
}

// Validate validates the AcceptApplicantRequest using the validator.
func (r *AcceptApplicantRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AppliedResponse reports whether the caller already applied to a job.
type AppliedResponse struct {
	Applied bool `json:"applied"`
}
