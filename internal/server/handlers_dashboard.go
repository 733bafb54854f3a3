package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/inclureach/inclureach/internal/db"
	"github.com/inclureach/inclureach/internal/types"
)

// recentActivityLimit caps the dashboard's activity feed.
const recentActivityLimit = 5

// handleDashboard aggregates the job-seeker dashboard. The independent
// sections are fetched concurrently; any failure fails the whole request.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get user")
		writeMessage(w, http.StatusInternalServerError, "Server error while fetching dashboard data")
		return
	}
	if user == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	var (
		applications []db.Application
		savedJobs    []db.JobSummary
		activity     []db.ActivityEntry
		recommended  []db.JobSummary
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		applications, err = s.store.ListApplicationsForUser(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		savedJobs, err = s.store.ListSavedJobs(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = s.store.ListActivity(ctx, userID, recentActivityLimit)
		return err
	})
	g.Go(func() error {
		var err error
		recommended, err = s.store.ListRecommendedJobs(ctx, db.RecommendationFilter{
			UserID:         userID,
			DisabilityType: user.Profile.DisabilityType,
			Severity:       user.Profile.DisabilitySeverity,
			Skills:         user.Profile.Skills,
			Limit:          5,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load dashboard")
		writeMessage(w, http.StatusInternalServerError, "Server error while fetching dashboard data")
		return
	}

	profile := user.Profile
	writeJSON(w, http.StatusOK, types.DashboardResponse{
		ProfileCompletion: profile.CompletionPercent(),
		Applications:      applications,
		SavedJobs:         savedJobs,
		ActivityLog:       activity,
		RecommendedJobs:   recommended,
		User: db.PublicUser{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Profile:  &profile,
		},
	})
}

// handleListApplications returns the caller's applications with job
// summaries.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	applications, err := s.store.ListApplicationsForUser(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list applications")
		writeMessage(w, http.StatusInternalServerError, "Server error while fetching applications")
		return
	}
	writeJSON(w, http.StatusOK, applications)
}

// handleGetApplication returns one of the caller's applications.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	applicationID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.store.GetApplicationForUser(r.Context(), applicationID, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get application")
		writeMessage(w, http.StatusInternalServerError, "Server error while fetching application details")
		return
	}
	if app == nil {
		writeMessage(w, http.StatusNotFound, "Application not found")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// handleWithdrawApplication deletes one of the caller's applications.
func (s *Server) handleWithdrawApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	applicationID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	withdrawn, err := s.store.WithdrawApplication(r.Context(), applicationID, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to withdraw application")
		writeMessage(w, http.StatusInternalServerError, "Server error while withdrawing application")
		return
	}
	if !withdrawn {
		writeMessage(w, http.StatusNotFound, "Application not found")
		return
	}

	if err := s.store.LogActivity(r.Context(), userID, db.ActivityStatusChange,
		"Withdrew a job application"); err != nil {
		s.logger.Warn().Err(err).Msg("failed to log withdrawal activity")
	}

	writeMessage(w, http.StatusOK, "Application withdrawn successfully")
}

// handleListOffers returns the caller's applications in the Offer state.
func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	offers, err := s.store.ListOffers(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list offers")
		writeMessage(w, http.StatusInternalServerError, "Server error while fetching offers")
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

// handleSelectedJobs returns the jobs where the caller holds an offer, in
// the envelope the web client expects.
func (s *Server) handleSelectedJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	offers, err := s.store.ListOffers(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list selected jobs")
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch selected jobs")
		return
	}
	writeJSON(w, http.StatusOK, types.SelectedJobsResponse{
		Success: true,
		Count:   len(offers),
		Data:    offers,
	})
}
