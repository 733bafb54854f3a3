package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/inclureach/inclureach/internal/db"
)

// Store is the persistence surface the HTTP handlers depend on. *db.DB
// implements it; tests substitute stubs.
type Store interface {
	// Users
	CreateUser(ctx context.Context, fullName, email, passwordHash string) (uuid.UUID, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetPublicUser(ctx context.Context, userID uuid.UUID) (*db.PublicUser, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, profile db.Profile) error
	LogActivity(ctx context.Context, userID uuid.UUID, activityType, details string) error
	ListActivity(ctx context.Context, userID uuid.UUID, limit int) ([]db.ActivityEntry, error)

	// Jobs
	CreateJob(ctx context.Context, in *db.JobCreateInput) (*db.Job, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*db.Job, error)
	ListActiveJobs(ctx context.Context) ([]db.Job, error)
	ListJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]db.Job, error)
	ListPendingJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]db.Job, error)
	ApproveJob(ctx context.Context, jobID, approverID uuid.UUID) (*db.Job, error)
	CloseJob(ctx context.Context, jobID, posterID uuid.UUID) (*db.Job, error)
	ListRecommendedJobs(ctx context.Context, filter db.RecommendationFilter) ([]db.JobSummary, error)

	// Applications
	ApplyToJob(ctx context.Context, jobID, userID uuid.UUID) (*db.Application, error)
	HasApplied(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	ListApplicantsForJob(ctx context.Context, jobID uuid.UUID) ([]db.Applicant, error)
	AcceptApplicant(ctx context.Context, jobID, posterID, applicantID uuid.UUID) (*db.Application, error)
	ListApplicationsForUser(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	ListOffers(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	GetApplicationForUser(ctx context.Context, applicationID, userID uuid.UUID) (*db.Application, error)
	WithdrawApplication(ctx context.Context, applicationID, userID uuid.UUID) (bool, error)
	SaveJob(ctx context.Context, userID, jobID uuid.UUID) error
	UnsaveJob(ctx context.Context, userID, jobID uuid.UUID) error
	ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]db.JobSummary, error)
}
