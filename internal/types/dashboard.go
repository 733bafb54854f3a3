package types

import (
	"github.com/inclureach/inclureach/internal/db"
)

// DashboardResponse aggregates everything the job-seeker dashboard shows.
type DashboardResponse struct {
	ProfileCompletion int                `json:"profileCompletion"`
	Applications      []db.Application   `json:"applications"`
	SavedJobs         []db.JobSummary    `json:"savedJobs"`
	ActivityLog       []db.ActivityEntry `json:"activityLog"`
	RecommendedJobs   []db.JobSummary    `json:"recommendedJobs"`
	User              db.PublicUser      `json:"user"`
}

// SelectedJobsResponse lists the jobs where the caller holds an offer.
type SelectedJobsResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []db.Application `json:"data"`
}

// ProfileResponse is returned after a profile update.
type ProfileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Profile *db.Profile `json:"profile"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
