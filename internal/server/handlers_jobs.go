package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/inclureach/inclureach/internal/db"
	"github.com/inclureach/inclureach/internal/server/middleware"
	"github.com/inclureach/inclureach/internal/types"
	"github.com/inclureach/inclureach/internal/verify"
)

// handleCreateJob verifies a submitted posting and persists it with its
// verification record. A heuristic scam hit rejects the posting outright;
// otherwise the risk score decides whether it goes live or waits for review.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.CreateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	verdict := s.verifier.Verify(r.Context(), verify.PostingInput{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
	})

	if verify.HardReject(verdict) {
		writeJSON(w, http.StatusBadRequest, types.RejectJobResponse{
			Success: false,
			Message: "Job rejected - scam detected",
			Details: &verdict,
		})
		return
	}

	record := verify.NewRecord(verdict, time.Now())
	job, err := s.store.CreateJob(r.Context(), &db.JobCreateInput{
		Title:              req.Title,
		Company:            req.Company,
		Location:           req.Location,
		Remote:             req.Remote,
		Description:        req.Description,
		Requirements:       req.Requirements,
		Skills:             req.Skills,
		DisabilityTypes:    req.DisabilityTypes,
		DisabilitySeverity: req.DisabilitySeverity,
		Salary:             req.NormalizedSalary(),
		PostedBy:           userID,
		Status:             verify.PublicationStatus(verdict),
		Verification: db.Verification{
			RiskScore:    record.RiskScore,
			RedFlags:     record.RedFlags,
			LastVerified: record.LastVerified,
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, types.CreateJobResponse{
		Success:      true,
		Job:          job,
		Verification: &verdict,
	})
}

// handleListJobs returns all active jobs, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListActiveJobs(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list jobs")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// handleGetJob returns one job with its applicants.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get job")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if job == nil {
		writeMessage(w, http.StatusNotFound, "Job not found")
		return
	}

	applicants, err := s.store.ListApplicantsForJob(r.Context(), jobID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list applicants")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	job.Applicants = applicants

	writeJSON(w, http.StatusOK, job)
}

// handleApply records an application and logs it as activity.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get job")
		writeMessage(w, http.StatusInternalServerError, "Failed to apply for job")
		return
	}
	if job == nil {
		writeMessage(w, http.StatusNotFound, "Job not found")
		return
	}

	app, err := s.store.ApplyToJob(r.Context(), jobID, userID)
	if err != nil {
		if err == db.ErrAlreadyApplied {
			writeMessage(w, http.StatusBadRequest, "Already applied to this job")
			return
		}
		s.logger.Error().Err(err).Msg("failed to apply to job")
		writeMessage(w, http.StatusInternalServerError, "Failed to apply for job")
		return
	}

	// Activity is best-effort dashboard context.
	if err := s.store.LogActivity(r.Context(), userID, db.ActivityApplication,
		fmt.Sprintf("Applied to %s at %s", job.Title, job.Company)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to log application activity")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// handleApplied reports whether the caller already applied to the job.
func (s *Server) handleApplied(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	applied, err := s.store.HasApplied(r.Context(), jobID, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check application")
		writeMessage(w, http.StatusInternalServerError, "Failed to check application status")
		return
	}
	writeJSON(w, http.StatusOK, types.AppliedResponse{Applied: applied})
}

// handleMyJobs returns the caller's postings with applicant profiles.
func (s *Server) handleMyJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	jobs, err := s.store.ListJobsByPoster(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list posted jobs")
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	for i := range jobs {
		applicants, err := s.store.ListApplicantsForJob(r.Context(), jobs[i].ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to list applicants")
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch jobs")
			return
		}
		jobs[i].Applicants = applicants
	}

	writeJSON(w, http.StatusOK, jobs)
}

// handlePendingJobs returns the caller's postings held for review.
func (s *Server) handlePendingJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	jobs, err := s.store.ListPendingJobsByPoster(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list pending jobs")
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// handleApproveJob promotes a pending job to active and records the
// approver.
func (s *Server) handleApproveJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.store.ApproveJob(r.Context(), jobID, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to approve job")
		writeMessage(w, http.StatusInternalServerError, "Server error during job approval")
		return
	}
	if job == nil {
		writeMessage(w, http.StatusNotFound, "Job not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Job approved and published",
		"job":     job,
	})
}

// handleAcceptApplicant extends an offer to one applicant on the caller's
// posting.
func (s *Server) handleAcceptApplicant(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req types.AcceptApplicantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ApplicantID == uuid.Nil {
		writeMessage(w, http.StatusBadRequest, "Applicant ID is required")
		return
	}

	app, err := s.store.AcceptApplicant(r.Context(), jobID, userID, req.ApplicantID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to accept applicant")
		writeMessage(w, http.StatusInternalServerError, "Failed to send job offer")
		return
	}
	if app == nil {
		writeMessage(w, http.StatusNotFound, "Job not found or you don't have permission")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Job offer sent to applicant successfully",
		"application": app,
	})
}

// handleCloseJob closes one of the caller's active postings.
func (s *Server) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.store.CloseJob(r.Context(), jobID, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to close job")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if job == nil {
		writeMessage(w, http.StatusNotFound, "Job not found or already closed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Job successfully closed",
		"job":     job,
	})
}

// handleSaveJob bookmarks a job for the caller.
func (s *Server) handleSaveJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.store.SaveJob(r.Context(), userID, jobID); err != nil {
		s.logger.Error().Err(err).Msg("failed to save job")
		writeMessage(w, http.StatusInternalServerError, "Failed to save job")
		return
	}
	writeMessage(w, http.StatusOK, "Job saved")
}

// handleUnsaveJob removes a bookmark.
func (s *Server) handleUnsaveJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.store.UnsaveJob(r.Context(), userID, jobID); err != nil {
		s.logger.Error().Err(err).Msg("failed to unsave job")
		writeMessage(w, http.StatusInternalServerError, "Failed to remove saved job")
		return
	}
	writeMessage(w, http.StatusOK, "Job removed from saved jobs")
}

// handleGetApplicant returns an applicant's public profile.
func (s *Server) handleGetApplicant(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	applicantID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	applicant, err := s.store.GetPublicUser(r.Context(), applicantID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get applicant")
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch applicant details")
		return
	}
	if applicant == nil {
		writeMessage(w, http.StatusNotFound, "Applicant not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"applicant": applicant,
	})
}

// requireUser extracts the authenticated user ID, writing a 401 when the
// middleware did not run.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path segment, writing a 400 on malformed input.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
