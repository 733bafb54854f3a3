package db

// schemaStatements create the job board tables. Statements are idempotent so
// Migrate can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		full_name     TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		profile       JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title               TEXT NOT NULL,
		company             TEXT NOT NULL,
		location            TEXT NOT NULL,
		remote              BOOLEAN NOT NULL DEFAULT FALSE,
		description         TEXT NOT NULL,
		requirements        TEXT[] NOT NULL DEFAULT '{}',
		skills              TEXT[] NOT NULL DEFAULT '{}',
		disability_types    TEXT[] NOT NULL DEFAULT '{}',
		disability_severity TEXT NOT NULL DEFAULT 'Any',
		salary              JSONB NOT NULL DEFAULT '{}'::jsonb,
		posted_by           UUID NOT NULL REFERENCES users(id),
		status              TEXT NOT NULL DEFAULT 'pending',
		verification        JSONB NOT NULL DEFAULT '{}'::jsonb,
		approved_by         UUID REFERENCES users(id),
		approved_at         TIMESTAMPTZ,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_posted_by ON jobs(posted_by)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id      UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status      TEXT NOT NULL DEFAULT 'Applied',
		applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		accepted_at TIMESTAMPTZ,
		updates     JSONB NOT NULL DEFAULT '[]'::jsonb,
		UNIQUE (job_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS saved_jobs (
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		job_id     UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, job_id)
	)`,
	`CREATE TABLE IF NOT EXISTS activity_log (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type       TEXT NOT NULL,
		details    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
