package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrAlreadyApplied is returned when a seeker applies twice to the same job.
var ErrAlreadyApplied = errors.New("already applied to this job")

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// ApplyToJob records an application with its initial status update. Returns
// ErrAlreadyApplied when the (job, user) pair already exists.
func (db *DB) ApplyToJob(ctx context.Context, jobID, userID uuid.UUID) (*Application, error) {
	now := time.Now()
	updates := []ApplicationEvent{{
		Type:    ActivityStatusChange,
		Message: "Application submitted",
		Date:    now,
	}}
	updatesBytes, err := json.Marshal(updates)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal updates: %w", err)
	}

	app := Application{
		Status:  ApplicationApplied,
		Updates: updates,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, user_id, status, updates)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, applied_at`,
		jobID, userID, ApplicationApplied, updatesBytes,
	).Scan(&app.ID, &app.AppliedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to apply to job: %w", err)
	}
	return &app, nil
}

// HasApplied reports whether the user already applied to the job.
func (db *DB) HasApplied(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var applied bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	).Scan(&applied)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return applied, nil
}

// ListApplicantsForJob returns the applications for a posting joined with
// each applicant's public profile.
func (db *DB) ListApplicantsForJob(ctx context.Context, jobID uuid.UUID) ([]Applicant, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.status, a.applied_at, a.accepted_at,
			u.id, u.full_name, u.email, u.profile
		 FROM applications a JOIN users u ON u.id = a.user_id
		 WHERE a.job_id = $1
		 ORDER BY a.applied_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	applicants := []Applicant{}
	for rows.Next() {
		var a Applicant
		var profileBytes []byte
		if err := rows.Scan(&a.ApplicationID, &a.Status, &a.AppliedAt, &a.AcceptedAt,
			&a.User.ID, &a.User.FullName, &a.User.Email, &profileBytes); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		if len(profileBytes) > 0 {
			var profile Profile
			if err := json.Unmarshal(profileBytes, &profile); err != nil {
				return nil, fmt.Errorf("failed to decode applicant profile: %w", err)
			}
			a.User.Profile = &profile
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}

// AcceptApplicant moves one application on the recruiter's posting to Offer
// and appends the status update the applicant sees. Returns nil when the job
// is not the recruiter's or the applicant never applied.
func (db *DB) AcceptApplicant(ctx context.Context, jobID, posterID, applicantID uuid.UUID) (*Application, error) {
	event := ApplicationEvent{
		Type:    ActivityStatusChange,
		Message: "You've received a job offer!",
		Date:    time.Now(),
	}
	eventBytes, err := json.Marshal([]ApplicationEvent{event})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update: %w", err)
	}

	var appID uuid.UUID
	err = db.pool.QueryRow(ctx,
		`UPDATE applications a
		 SET status = $1, accepted_at = NOW(), updates = a.updates || $2::jsonb
		 FROM jobs j
		 WHERE a.job_id = $3 AND a.user_id = $4
		   AND j.id = a.job_id AND j.posted_by = $5
		 RETURNING a.id`,
		ApplicationOffer, eventBytes, jobID, applicantID, posterID,
	).Scan(&appID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to accept applicant: %w", err)
	}
	return db.getApplication(ctx, appID)
}

const applicationColumns = `a.id, a.status, a.applied_at, a.accepted_at, a.updates,
	j.id, j.title, j.company, j.location, j.remote, j.skills, j.disability_types, j.created_at`

// ListApplicationsForUser returns the seeker's applications joined with the
// job summary, newest first.
func (db *DB) ListApplicationsForUser(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = $1
		 ORDER BY a.applied_at DESC`,
		userID,
	)
}

// ListOffers returns the seeker's applications that reached the Offer state.
func (db *DB) ListOffers(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = $1 AND a.status = $2
		 ORDER BY a.accepted_at DESC`,
		userID, ApplicationOffer,
	)
}

func (db *DB) listApplications(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// GetApplicationForUser retrieves one application owned by the user, with
// its job summary. Returns nil when not found.
func (db *DB) GetApplicationForUser(ctx context.Context, applicationID, userID uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1 AND a.user_id = $2`,
		applicationID, userID,
	)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return app, nil
}

func (db *DB) getApplication(ctx context.Context, applicationID uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`,
		applicationID,
	)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return app, nil
}

// WithdrawApplication deletes the seeker's application. Returns false when
// no matching application exists.
func (db *DB) WithdrawApplication(ctx context.Context, applicationID, userID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`,
		applicationID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to withdraw application: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SaveJob bookmarks a job for the user. Saving twice is a no-op.
func (db *DB) SaveJob(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// UnsaveJob removes a bookmark.
func (db *DB) UnsaveJob(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to unsave job: %w", err)
	}
	return nil
}

// ListSavedJobs returns the user's bookmarked jobs, most recently saved
// first.
func (db *DB) ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]JobSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT j.id, j.title, j.company, j.location, j.remote, j.skills,
			j.disability_types, j.created_at
		 FROM saved_jobs s JOIN jobs j ON j.id = s.job_id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	defer rows.Close()

	jobs := []JobSummary{}
	for rows.Next() {
		var j JobSummary
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Remote,
			&j.Skills, &j.DisabilityTypes, &j.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// scanApplication scans an application row joined with its job summary.
func scanApplication(row pgx.Row) (*Application, error) {
	var app Application
	var updatesBytes []byte
	var job JobSummary

	err := row.Scan(
		&app.ID, &app.Status, &app.AppliedAt, &app.AcceptedAt, &updatesBytes,
		&job.ID, &job.Title, &job.Company, &job.Location, &job.Remote,
		&job.Skills, &job.DisabilityTypes, &job.PostedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Updates = []ApplicationEvent{}
	if len(updatesBytes) > 0 {
		if err := json.Unmarshal(updatesBytes, &app.Updates); err != nil {
			return nil, fmt.Errorf("failed to decode application updates: %w", err)
		}
	}
	app.Job = &job
	return &app, nil
}
