package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/inclureach/inclureach/internal/db"
)

// stubStore implements Store with overridable function fields. Methods with
// a nil field return zero values.
type stubStore struct {
	createUserFn              func(ctx context.Context, fullName, email, passwordHash string) (uuid.UUID, error)
	checkEmailExistsFn        func(ctx context.Context, email string) (bool, error)
	getUserFn                 func(ctx context.Context, userID uuid.UUID) (*db.User, error)
	getUserByEmailFn          func(ctx context.Context, email string) (*db.User, error)
	getPublicUserFn           func(ctx context.Context, userID uuid.UUID) (*db.PublicUser, error)
	updatePasswordFn          func(ctx context.Context, userID uuid.UUID, passwordHash string) error
	updateProfileFn           func(ctx context.Context, userID uuid.UUID, profile db.Profile) error
	logActivityFn             func(ctx context.Context, userID uuid.UUID, activityType, details string) error
	listActivityFn            func(ctx context.Context, userID uuid.UUID, limit int) ([]db.ActivityEntry, error)
	createJobFn               func(ctx context.Context, in *db.JobCreateInput) (*db.Job, error)
	getJobFn                  func(ctx context.Context, jobID uuid.UUID) (*db.Job, error)
	listActiveJobsFn          func(ctx context.Context) ([]db.Job, error)
	listJobsByPosterFn        func(ctx context.Context, posterID uuid.UUID) ([]db.Job, error)
	listPendingJobsByPosterFn func(ctx context.Context, posterID uuid.UUID) ([]db.Job, error)
	approveJobFn              func(ctx context.Context, jobID, approverID uuid.UUID) (*db.Job, error)
	closeJobFn                func(ctx context.Context, jobID, posterID uuid.UUID) (*db.Job, error)
	listRecommendedJobsFn     func(ctx context.Context, filter db.RecommendationFilter) ([]db.JobSummary, error)
	applyToJobFn              func(ctx context.Context, jobID, userID uuid.UUID) (*db.Application, error)
	hasAppliedFn              func(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	listApplicantsForJobFn    func(ctx context.Context, jobID uuid.UUID) ([]db.Applicant, error)
	acceptApplicantFn         func(ctx context.Context, jobID, posterID, applicantID uuid.UUID) (*db.Application, error)
	listApplicationsForUserFn func(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	listOffersFn              func(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	getApplicationForUserFn   func(ctx context.Context, applicationID, userID uuid.UUID) (*db.Application, error)
	withdrawApplicationFn     func(ctx context.Context, applicationID, userID uuid.UUID) (bool, error)
	saveJobFn                 func(ctx context.Context, userID, jobID uuid.UUID) error
	unsaveJobFn               func(ctx context.Context, userID, jobID uuid.UUID) error
	listSavedJobsFn           func(ctx context.Context, userID uuid.UUID) ([]db.JobSummary, error)
}

func (s *stubStore) CreateUser(ctx context.Context, fullName, email, passwordHash string) (uuid.UUID, error) {
	if s.createUserFn != nil {
		return s.createUserFn(ctx, fullName, email, passwordHash)
	}
	return uuid.Nil, nil
}

func (s *stubStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	if s.checkEmailExistsFn != nil {
		return s.checkEmailExistsFn(ctx, email)
	}
	return false, nil
}

func (s *stubStore) GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error) {
	if s.getUserFn != nil {
		return s.getUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	if s.getUserByEmailFn != nil {
		return s.getUserByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *stubStore) GetPublicUser(ctx context.Context, userID uuid.UUID) (*db.PublicUser, error) {
	if s.getPublicUserFn != nil {
		return s.getPublicUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubStore) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if s.updatePasswordFn != nil {
		return s.updatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

func (s *stubStore) UpdateProfile(ctx context.Context, userID uuid.UUID, profile db.Profile) error {
	if s.updateProfileFn != nil {
		return s.updateProfileFn(ctx, userID, profile)
	}
	return nil
}

func (s *stubStore) LogActivity(ctx context.Context, userID uuid.UUID, activityType, details string) error {
	if s.logActivityFn != nil {
		return s.logActivityFn(ctx, userID, activityType, details)
	}
	return nil
}

func (s *stubStore) ListActivity(ctx context.Context, userID uuid.UUID, limit int) ([]db.ActivityEntry, error) {
	if s.listActivityFn != nil {
		return s.listActivityFn(ctx, userID, limit)
	}
	return []db.ActivityEntry{}, nil
}

func (s *stubStore) CreateJob(ctx context.Context, in *db.JobCreateInput) (*db.Job, error) {
	if s.createJobFn != nil {
		return s.createJobFn(ctx, in)
	}
	return &db.Job{}, nil
}

func (s *stubStore) GetJob(ctx context.Context, jobID uuid.UUID) (*db.Job, error) {
	if s.getJobFn != nil {
		return s.getJobFn(ctx, jobID)
	}
	return nil, nil
}

func (s *stubStore) ListActiveJobs(ctx context.Context) ([]db.Job, error) {
	if s.listActiveJobsFn != nil {
		return s.listActiveJobsFn(ctx)
	}
	return []db.Job{}, nil
}

func (s *stubStore) ListJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]db.Job, error) {
	if s.listJobsByPosterFn != nil {
		return s.listJobsByPosterFn(ctx, posterID)
	}
	return []db.Job{}, nil
}

func (s *stubStore) ListPendingJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]db.Job, error) {
	if s.listPendingJobsByPosterFn != nil {
		return s.listPendingJobsByPosterFn(ctx, posterID)
	}
	return []db.Job{}, nil
}

func (s *stubStore) ApproveJob(ctx context.Context, jobID, approverID uuid.UUID) (*db.Job, error) {
	if s.approveJobFn != nil {
		return s.approveJobFn(ctx, jobID, approverID)
	}
	return nil, nil
}

func (s *stubStore) CloseJob(ctx context.Context, jobID, posterID uuid.UUID) (*db.Job, error) {
	if s.closeJobFn != nil {
		return s.closeJobFn(ctx, jobID, posterID)
	}
	return nil, nil
}

func (s *stubStore) ListRecommendedJobs(ctx context.Context, filter db.RecommendationFilter) ([]db.JobSummary, error) {
	if s.listRecommendedJobsFn != nil {
		return s.listRecommendedJobsFn(ctx, filter)
	}
	return []db.JobSummary{}, nil
}

func (s *stubStore) ApplyToJob(ctx context.Context, jobID, userID uuid.UUID) (*db.Application, error) {
	if s.applyToJobFn != nil {
		return s.applyToJobFn(ctx, jobID, userID)
	}
	return &db.Application{}, nil
}

func (s *stubStore) HasApplied(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	if s.hasAppliedFn != nil {
		return s.hasAppliedFn(ctx, jobID, userID)
	}
	return false, nil
}

func (s *stubStore) ListApplicantsForJob(ctx context.Context, jobID uuid.UUID) ([]db.Applicant, error) {
	if s.listApplicantsForJobFn != nil {
		return s.listApplicantsForJobFn(ctx, jobID)
	}
	return []db.Applicant{}, nil
}

func (s *stubStore) AcceptApplicant(ctx context.Context, jobID, posterID, applicantID uuid.UUID) (*db.Application, error) {
	if s.acceptApplicantFn != nil {
		return s.acceptApplicantFn(ctx, jobID, posterID, applicantID)
	}
	return nil, nil
}

func (s *stubStore) ListApplicationsForUser(ctx context.Context, userID uuid.UUID) ([]db.Application, error) {
	if s.listApplicationsForUserFn != nil {
		return s.listApplicationsForUserFn(ctx, userID)
	}
	return []db.Application{}, nil
}

func (s *stubStore) ListOffers(ctx context.Context, userID uuid.UUID) ([]db.Application, error) {
	if s.listOffersFn != nil {
		return s.listOffersFn(ctx, userID)
	}
	return []db.Application{}, nil
}

func (s *stubStore) GetApplicationForUser(ctx context.Context, applicationID, userID uuid.UUID) (*db.Application, error) {
	if s.getApplicationForUserFn != nil {
		return s.getApplicationForUserFn(ctx, applicationID, userID)
	}
	return nil, nil
}

func (s *stubStore) WithdrawApplication(ctx context.Context, applicationID, userID uuid.UUID) (bool, error) {
	if s.withdrawApplicationFn != nil {
		return s.withdrawApplicationFn(ctx, applicationID, userID)
	}
	return false, nil
}

func (s *stubStore) SaveJob(ctx context.Context, userID, jobID uuid.UUID) error {
	if s.saveJobFn != nil {
		return s.saveJobFn(ctx, userID, jobID)
	}
	return nil
}

func (s *stubStore) UnsaveJob(ctx context.Context, userID, jobID uuid.UUID) error {
	if s.unsaveJobFn != nil {
		return s.unsaveJobFn(ctx, userID, jobID)
	}
	return nil
}

func (s *stubStore) ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]db.JobSummary, error) {
	if s.listSavedJobsFn != nil {
		return s.listSavedJobsFn(ctx, userID)
	}
	return []db.JobSummary{}, nil
}
