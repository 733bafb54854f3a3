package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inclureach/inclureach/internal/ingestion"
)

const jobColumns = `j.id, j.title, j.company, j.location, j.remote, j.description,
	j.requirements, j.skills, j.disability_types, j.disability_severity,
	j.salary, j.posted_by, j.status, j.verification, j.approved_by,
	j.approved_at, j.created_at, j.updated_at`

// CreateJob inserts a new posting with its verification record and returns
// the stored job.
func (db *DB) CreateJob(ctx context.Context, in *JobCreateInput) (*Job, error) {
	salaryBytes, err := json.Marshal(NormalizeSalary(in.Salary))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal salary: %w", err)
	}
	verificationBytes, err := json.Marshal(in.Verification)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification: %w", err)
	}

	job := Job{
		Title:              in.Title,
		Company:            in.Company,
		Location:           in.Location,
		Remote:             in.Remote,
		Description:        in.Description,
		Requirements:       emptyIfNil(in.Requirements),
		Skills:             emptyIfNil(in.Skills),
		DisabilityTypes:    emptyIfNil(in.DisabilityTypes),
		DisabilitySeverity: in.DisabilitySeverity,
		Salary:             NormalizeSalary(in.Salary),
		PostedBy:           in.PostedBy,
		Status:             in.Status,
		Verification:       in.Verification,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, remote, description,
			requirements, skills, disability_types, disability_severity,
			salary, posted_by, status, verification)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		in.Title, in.Company, in.Location, in.Remote, in.Description,
		job.Requirements, job.Skills, job.DisabilityTypes, in.DisabilitySeverity,
		salaryBytes, in.PostedBy, in.Status, verificationBytes,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

// GetJob retrieves a posting by ID with the poster joined. Returns nil when
// not found.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+`, u.full_name, u.email
		 FROM jobs j JOIN users u ON u.id = j.posted_by
		 WHERE j.id = $1`,
		jobID,
	)
	job, err := scanJobWithPoster(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListActiveJobs returns all publicly visible postings, newest first, with
// poster name and email joined.
func (db *DB) ListActiveJobs(ctx context.Context) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobColumns+`, u.full_name, u.email
		 FROM jobs j JOIN users u ON u.id = j.posted_by
		 WHERE j.status = $1
		 ORDER BY j.created_at DESC`,
		JobStatusActive,
	)
}

// ListJobsByPoster returns every posting a recruiter created, newest first.
func (db *DB) ListJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobColumns+`, u.full_name, u.email
		 FROM jobs j JOIN users u ON u.id = j.posted_by
		 WHERE j.posted_by = $1
		 ORDER BY j.created_at DESC`,
		posterID,
	)
}

// ListPendingJobsByPoster returns a recruiter's postings held for review, so
// fallback-flagged jobs stay visible to moderators.
func (db *DB) ListPendingJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobColumns+`, u.full_name, u.email
		 FROM jobs j JOIN users u ON u.id = j.posted_by
		 WHERE j.posted_by = $1 AND j.status = $2
		 ORDER BY j.created_at DESC`,
		posterID, JobStatusPending,
	)
}

func (db *DB) listJobs(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		job, err := scanJobWithPoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// ApproveJob promotes a pending posting to active and records the approver.
// Returns nil when the job does not exist or is not pending.
func (db *DB) ApproveJob(ctx context.Context, jobID, approverID uuid.UUID) (*Job, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET status = $1, approved_by = $2, approved_at = NOW(), updated_at = NOW()
		 WHERE id = $3 AND status = $4`,
		JobStatusActive, approverID, jobID, JobStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to approve job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return db.GetJob(ctx, jobID)
}

// CloseJob moves an active posting to closed. Only the poster may close a
// job, and only while it is active. Returns nil when no matching row.
func (db *DB) CloseJob(ctx context.Context, jobID, posterID uuid.UUID) (*Job, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND posted_by = $3 AND status = $4`,
		JobStatusClosed, jobID, posterID, JobStatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to close job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return db.GetJob(ctx, jobID)
}

// ListRecommendedJobs returns active postings matching the seeker's
// disability metadata or skills, excluding jobs they already applied to.
func (db *DB) ListRecommendedJobs(ctx context.Context, filter RecommendationFilter) ([]JobSummary, error) {
	if filter.Limit <= 0 {
		filter.Limit = 5
	}

	query := `SELECT j.id, j.title, j.company, j.location, j.remote, j.skills,
		j.disability_types, j.description, j.created_at
		FROM jobs j
		WHERE j.status = 'active'
		AND NOT EXISTS (
			SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.user_id = $1
		)`
	args := []any{filter.UserID}
	argNum := 2

	match := ""
	if filter.DisabilityType != "" {
		match = fmt.Sprintf(
			`(j.disability_types @> ARRAY[$%d] AND (j.disability_severity = $%d OR j.disability_severity = 'Any'))`,
			argNum, argNum+1)
		args = append(args, filter.DisabilityType, filter.Severity)
		argNum += 2
	}
	if len(filter.Skills) > 0 {
		clause := fmt.Sprintf(`j.skills && $%d`, argNum)
		args = append(args, filter.Skills)
		argNum++
		if match != "" {
			match = match + " OR " + clause
		} else {
			match = clause
		}
	}
	if match != "" {
		query += " AND (" + match + ")"
	}

	query += fmt.Sprintf(" ORDER BY j.created_at DESC LIMIT $%d", argNum)
	args = append(args, filter.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommended jobs: %w", err)
	}
	defer rows.Close()

	jobs := []JobSummary{}
	for rows.Next() {
		var j JobSummary
		var description string
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Remote,
			&j.Skills, &j.DisabilityTypes, &description, &j.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommended job: %w", err)
		}
		j.Excerpt = ingestion.Excerpt(description, ingestion.DefaultExcerptLength)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// scanJobWithPoster scans a job row that includes the poster's name/email.
func scanJobWithPoster(row pgx.Row) (*Job, error) {
	var job Job
	var salaryBytes, verificationBytes []byte
	var posterName, posterEmail string

	err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &job.Remote,
		&job.Description, &job.Requirements, &job.Skills, &job.DisabilityTypes,
		&job.DisabilitySeverity, &salaryBytes, &job.PostedBy, &job.Status,
		&verificationBytes, &job.ApprovedBy, &job.ApprovedAt,
		&job.CreatedAt, &job.UpdatedAt, &posterName, &posterEmail,
	)
	if err != nil {
		return nil, err
	}

	if len(salaryBytes) > 0 {
		if err := json.Unmarshal(salaryBytes, &job.Salary); err != nil {
			return nil, fmt.Errorf("failed to decode salary: %w", err)
		}
	}
	if len(verificationBytes) > 0 {
		if err := json.Unmarshal(verificationBytes, &job.Verification); err != nil {
			return nil, fmt.Errorf("failed to decode verification: %w", err)
		}
	}

	// Arrays are never nil in API responses.
	job.Requirements = emptyIfNil(job.Requirements)
	job.Skills = emptyIfNil(job.Skills)
	job.DisabilityTypes = emptyIfNil(job.DisabilityTypes)
	if job.Verification.RedFlags == nil {
		job.Verification.RedFlags = []string{}
	}

	job.Poster = &PublicUser{ID: job.PostedBy, FullName: posterName, Email: posterEmail}
	return &job, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
