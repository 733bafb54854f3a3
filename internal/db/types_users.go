package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account on the board.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the accessibility-aware profile document embedded in a user
// record.
type Profile struct {
	// Disability information
	DisabilityType            string   `json:"disabilityType,omitempty"`
	DisabilitySeverity        string   `json:"disabilitySeverity,omitempty"`
	DisabilityDescription     string   `json:"disabilityDescription,omitempty"`
	NeedsAccommodation        bool     `json:"needsAccommodation,omitempty"`
	AccommodationRequirements []string `json:"accommodationRequirements,omitempty"`

	// Professional information
	ProfessionType  string   `json:"professionType,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	EducationLevel  string   `json:"educationLevel,omitempty"`

	// Uploaded files (paths under the upload dir)
	ResumeFile         string   `json:"resumeFile,omitempty"`
	PortfolioFile      string   `json:"portfolioFile,omitempty"`
	CertificationFiles []string `json:"certificationFiles,omitempty"`
	ProfileImage       string   `json:"profileImage,omitempty"`

	// Contact and accessibility preferences
	PreferredContactMethods []string `json:"preferredContactMethods,omitempty"`
	RequiresSignLanguage    bool     `json:"requiresSignLanguage,omitempty"`
	RequiresCaptioning      bool     `json:"requiresCaptioning,omitempty"`
	RequiresAltText         bool     `json:"requiresAltText,omitempty"`

	ProfileCompletion int `json:"profileCompletion"`
}

// completionFields is how many profile sections count toward the completion
// percentage shown to job seekers.
const completionFields = 5

// CompletionPercent computes how complete the profile is, based on the
// fields recruiters care about when screening applicants.
func (p Profile) CompletionPercent() int {
	completed := 0
	if p.DisabilityType != "" {
		completed++
	}
	if p.DisabilitySeverity != "" {
		completed++
	}
	if p.ProfessionType != "" {
		completed++
	}
	if len(p.Skills) > 0 {
		completed++
	}
	if p.EducationLevel != "" {
		completed++
	}
	return completed * 100 / completionFields
}

// PublicUser is the subset of a user exposed to other users, e.g. as the
// poster of a job or as an applicant.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Profile  *Profile  `json:"profile,omitempty"`
}

// ActivityEntry is one row of a user's activity log.
type ActivityEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"date"`
}

// Activity types recorded in the log.
const (
	ActivityApplication   = "Application"
	ActivityProfileUpdate = "ProfileUpdate"
	ActivityStatusChange  = "StatusChange"
)
