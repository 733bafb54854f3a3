package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inclureach/inclureach/internal/db"
	"github.com/inclureach/inclureach/internal/server/middleware"
	"github.com/inclureach/inclureach/internal/verify"
)

// countingAssessor returns a fixed verdict and records how often it ran.
type countingAssessor struct {
	verdict verify.Verdict
	calls   int
}

func (a *countingAssessor) Assess(_ context.Context, _ verify.PostingInput) verify.Verdict {
	a.calls++
	return a.verdict
}

func approveVerdict() verify.Verdict {
	return verify.Verdict{IsValid: true, RiskScore: 0, RedFlags: []string{}, Suggestions: []string{}}
}

func newTestServer(store Store, assessor verify.Assessor) *Server {
	if assessor == nil {
		assessor = &countingAssessor{verdict: approveVerdict()}
	}
	return &Server{
		store:     store,
		logger:    zerolog.Nop(),
		verifier:  verify.NewVerifier(assessor),
		validator: validator.New(),
	}
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return middleware.WithUserID(r, userID)
}

func TestCreateJobScamRejectedWithoutAssessorCall(t *testing.T) {
	assessor := &countingAssessor{verdict: approveVerdict()}
	created := false
	store := &stubStore{
		createJobFn: func(_ context.Context, _ *db.JobCreateInput) (*db.Job, error) {
			created = true
			return &db.Job{}, nil
		},
	}
	s := newTestServer(store, assessor)

	body := `{"title":"Data Entry","company":"Quick Cash","location":"Remote",
		"description":"Earn $5000/week from home, no equipment needed"}`
	r := authedRequest(http.MethodPost, "/api/jobs", body, uuid.New())
	w := httptest.NewRecorder()
	s.handleCreateJob(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, assessor.calls, "heuristic hit must not reach the assessor")
	assert.False(t, created, "rejected postings are never persisted")

	var resp struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Details verify.Verdict `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Job rejected - scam detected", resp.Message)
	assert.Equal(t, 100, resp.Details.RiskScore)
	assert.Contains(t, resp.Details.RedFlags, "Unrealistic salary claims")
}

func TestCreateJobLegitimateGoesActive(t *testing.T) {
	assessor := &countingAssessor{verdict: approveVerdict()}
	var captured *db.JobCreateInput
	store := &stubStore{
		createJobFn: func(_ context.Context, in *db.JobCreateInput) (*db.Job, error) {
			captured = in
			return &db.Job{ID: uuid.New(), Title: in.Title, Status: in.Status}, nil
		},
	}
	s := newTestServer(store, assessor)
	userID := uuid.New()

	body := `{"title":"Accessibility Engineer","company":"Acme","location":"Berlin",
		"description":"Build screen-reader friendly interfaces","skills":["Go","ARIA"]}`
	r := authedRequest(http.MethodPost, "/api/jobs", body, userID)
	w := httptest.NewRecorder()
	s.handleCreateJob(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, assessor.calls)
	require.NotNil(t, captured)
	assert.Equal(t, db.JobStatusActive, captured.Status)
	assert.Equal(t, userID, captured.PostedBy)
	assert.Equal(t, 0, captured.Verification.RiskScore)
	assert.Equal(t, "USD", captured.Salary.Currency)
	assert.Equal(t, "month", captured.Salary.Period)

	var resp struct {
		Success      bool           `json:"success"`
		Verification verify.Verdict `json:"verification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Verification.IsValid)
}

func TestCreateJobSuspiciousGoesPending(t *testing.T) {
	assessor := &countingAssessor{verdict: verify.Verdict{
		IsValid:     false,
		RiskScore:   70,
		RedFlags:    []string{"Potential scam indicators found"},
		Suggestions: []string{"Please review job details carefully"},
	}}
	var captured *db.JobCreateInput
	store := &stubStore{
		createJobFn: func(_ context.Context, in *db.JobCreateInput) (*db.Job, error) {
			captured = in
			return &db.Job{ID: uuid.New(), Status: in.Status}, nil
		},
	}
	s := newTestServer(store, assessor)

	body := `{"title":"Sales Associate","company":"Acme","location":"Lagos",
		"description":"Exciting opportunity"}`
	r := authedRequest(http.MethodPost, "/api/jobs", body, uuid.New())
	w := httptest.NewRecorder()
	s.handleCreateJob(w, r)

	require.Equal(t, http.StatusCreated, w.Code, "a 70-risk posting is held, not rejected")
	require.NotNil(t, captured)
	assert.Equal(t, db.JobStatusPending, captured.Status)
	assert.Equal(t, 70, captured.Verification.RiskScore)
}

func TestCreateJobValidation(t *testing.T) {
	assessor := &countingAssessor{verdict: approveVerdict()}
	s := newTestServer(&stubStore{}, assessor)

	r := authedRequest(http.MethodPost, "/api/jobs", `{"company":"Acme"}`, uuid.New())
	w := httptest.NewRecorder()
	s.handleCreateJob(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, assessor.calls, "invalid requests are not verified")
}

func TestCreateJobUnauthenticated(t *testing.T) {
	s := newTestServer(&stubStore{}, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	s.handleCreateJob(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplyDuplicate(t *testing.T) {
	jobID := uuid.New()
	store := &stubStore{
		getJobFn: func(_ context.Context, _ uuid.UUID) (*db.Job, error) {
			return &db.Job{ID: jobID, Title: "Clerk", Company: "Acme"}, nil
		},
		applyToJobFn: func(_ context.Context, _, _ uuid.UUID) (*db.Application, error) {
			return nil, db.ErrAlreadyApplied
		},
	}
	s := newTestServer(store, nil)

	r := authedRequest(http.MethodPost, "/api/jobs/"+jobID.String()+"/apply", "", uuid.New())
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleApply(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Already applied to this job")
}

func TestApplyRecordsActivity(t *testing.T) {
	jobID := uuid.New()
	userID := uuid.New()
	var loggedType, loggedDetails string
	store := &stubStore{
		getJobFn: func(_ context.Context, _ uuid.UUID) (*db.Job, error) {
			return &db.Job{ID: jobID, Title: "Clerk", Company: "Acme"}, nil
		},
		applyToJobFn: func(_ context.Context, _, _ uuid.UUID) (*db.Application, error) {
			return &db.Application{ID: uuid.New(), Status: db.ApplicationApplied}, nil
		},
		logActivityFn: func(_ context.Context, _ uuid.UUID, activityType, details string) error {
			loggedType, loggedDetails = activityType, details
			return nil
		},
	}
	s := newTestServer(store, nil)

	r := authedRequest(http.MethodPost, "/api/jobs/"+jobID.String()+"/apply", "", userID)
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleApply(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, db.ActivityApplication, loggedType)
	assert.Contains(t, loggedDetails, "Clerk")
}

func TestApplyJobNotFound(t *testing.T) {
	s := newTestServer(&stubStore{}, nil)
	jobID := uuid.New()

	r := authedRequest(http.MethodPost, "/api/jobs/"+jobID.String()+"/apply", "", uuid.New())
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleApply(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppliedHandler(t *testing.T) {
	store := &stubStore{
		hasAppliedFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	s := newTestServer(store, nil)
	jobID := uuid.New()

	r := authedRequest(http.MethodGet, "/api/jobs/"+jobID.String()+"/applied", "", uuid.New())
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleApplied(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"applied":true}`, w.Body.String())
}

func TestGetJobIncludesApplicants(t *testing.T) {
	jobID := uuid.New()
	store := &stubStore{
		getJobFn: func(_ context.Context, id uuid.UUID) (*db.Job, error) {
			return &db.Job{ID: id, Title: "Clerk"}, nil
		},
		listApplicantsForJobFn: func(_ context.Context, _ uuid.UUID) ([]db.Applicant, error) {
			return []db.Applicant{{ApplicationID: uuid.New(), Status: db.ApplicationApplied}}, nil
		},
	}
	s := newTestServer(store, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID.String(), nil)
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleGetJob(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var job db.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Len(t, job.Applicants, 1)
}

func TestGetJobMalformedID(t *testing.T) {
	s := newTestServer(&stubStore{}, nil)
	r := httptest.NewRequest(http.MethodGet, "/api/jobs/not-a-uuid", nil)
	r.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()
	s.handleGetJob(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCloseJobNotActive(t *testing.T) {
	s := newTestServer(&stubStore{}, nil)
	jobID := uuid.New()

	r := authedRequest(http.MethodPut, "/api/jobs/"+jobID.String()+"/close", "", uuid.New())
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleCloseJob(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Job not found or already closed")
}

func TestAcceptApplicantRequiresID(t *testing.T) {
	s := newTestServer(&stubStore{}, nil)
	jobID := uuid.New()

	r := authedRequest(http.MethodPut, "/api/jobs/"+jobID.String()+"/accept", `{}`, uuid.New())
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleAcceptApplicant(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAcceptApplicant(t *testing.T) {
	jobID := uuid.New()
	posterID := uuid.New()
	applicantID := uuid.New()
	store := &stubStore{
		acceptApplicantFn: func(_ context.Context, gotJob, gotPoster, gotApplicant uuid.UUID) (*db.Application, error) {
			assert.Equal(t, jobID, gotJob)
			assert.Equal(t, posterID, gotPoster)
			assert.Equal(t, applicantID, gotApplicant)
			return &db.Application{ID: uuid.New(), Status: db.ApplicationOffer}, nil
		},
	}
	s := newTestServer(store, nil)

	body, _ := json.Marshal(map[string]string{"applicantId": applicantID.String()})
	r := authedRequest(http.MethodPut, "/api/jobs/"+jobID.String()+"/accept", string(body), posterID)
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleAcceptApplicant(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Job offer sent to applicant successfully")
}

func TestMyJobsAttachesApplicants(t *testing.T) {
	posterID := uuid.New()
	store := &stubStore{
		listJobsByPosterFn: func(_ context.Context, _ uuid.UUID) ([]db.Job, error) {
			return []db.Job{{ID: uuid.New()}, {ID: uuid.New()}}, nil
		},
		listApplicantsForJobFn: func(_ context.Context, _ uuid.UUID) ([]db.Applicant, error) {
			return []db.Applicant{{ApplicationID: uuid.New()}}, nil
		},
	}
	s := newTestServer(store, nil)

	r := authedRequest(http.MethodGet, "/api/jobs/mine", "", posterID)
	w := httptest.NewRecorder()
	s.handleMyJobs(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var jobs []db.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	require.Len(t, jobs, 2)
	assert.Len(t, jobs[0].Applicants, 1)
	assert.Len(t, jobs[1].Applicants, 1)
}

func TestListJobsEmpty(t *testing.T) {
	s := newTestServer(&stubStore{}, nil)
	r := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	w := httptest.NewRecorder()
	s.handleListJobs(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()), "empty list, never null")
}

func TestApproveJobNotFound(t *testing.T) {
	s := newTestServer(&stubStore{}, nil)
	jobID := uuid.New()

	r := authedRequest(http.MethodPut, "/api/jobs/"+jobID.String()+"/approve", "", uuid.New())
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleApproveJob(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateJobRequestBodyLimit(t *testing.T) {
	s := newTestServer(&stubStore{}, nil)
	r := authedRequest(http.MethodPost, "/api/jobs", "{not json", uuid.New())
	w := httptest.NewRecorder()
	s.handleCreateJob(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestCreateJobRejectsUnknownFields(t *testing.T) {
	assessor := &countingAssessor{verdict: approveVerdict()}
	created := false
	store := &stubStore{
		createJobFn: func(_ context.Context, _ *db.JobCreateInput) (*db.Job, error) {
			created = true
			return &db.Job{}, nil
		},
	}
	s := newTestServer(store, assessor)

	body := `{"title":"Clerk","company":"Acme","location":"Pune","description":"Filing.","bogusField":"x"}`
	r := authedRequest(http.MethodPost, "/api/jobs", body, uuid.New())
	w := httptest.NewRecorder()
	s.handleCreateJob(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
	assert.Equal(t, 0, assessor.calls, "rejected requests are not verified")
	assert.False(t, created, "rejected requests are not persisted")
}

func TestAcceptApplicantRejectsUnknownFields(t *testing.T) {
	jobID := uuid.New()
	s := newTestServer(&stubStore{}, nil)

	body := `{"applicantId":"` + uuid.NewString() + `","role":"admin"}`
	r := authedRequest(http.MethodPut, "/api/jobs/"+jobID.String()+"/accept", body, uuid.New())
	r.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()
	s.handleAcceptApplicant(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}
