package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a new user with an already-hashed password and returns
// its ID.
func (db *DB) CreateUser(ctx context.Context, fullName, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (full_name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		fullName, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// CheckEmailExists reports whether an account is registered for the email.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// GetUser retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	return db.getUser(ctx,
		`SELECT id, full_name, email, password_hash, profile, created_at, updated_at
		 FROM users WHERE id = $1`, userID)
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return db.getUser(ctx,
		`SELECT id, full_name, email, password_hash, profile, created_at, updated_at
		 FROM users WHERE email = $1`, email)
}

func (db *DB) getUser(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	var profileBytes []byte
	err := db.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash,
		&profileBytes, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(profileBytes) > 0 {
		if err := json.Unmarshal(profileBytes, &user.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
	}
	return &user, nil
}

// GetPublicUser retrieves the public view of a user, including the profile
// document. Returns nil when not found.
func (db *DB) GetPublicUser(ctx context.Context, userID uuid.UUID) (*PublicUser, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}
	profile := user.Profile
	return &PublicUser{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Profile:  &profile,
	}, nil
}

// UpdatePassword replaces the stored password hash for a user.
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// UpdateProfile replaces a user's profile document.
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, profile Profile) error {
	profileBytes, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET profile = $1, updated_at = NOW() WHERE id = $2`,
		profileBytes, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// LogActivity appends an entry to a user's activity log. Activity is
// best-effort context for the dashboard, so callers may ignore failures.
func (db *DB) LogActivity(ctx context.Context, userID uuid.UUID, activityType, details string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO activity_log (user_id, type, details) VALUES ($1, $2, $3)`,
		userID, activityType, details,
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// ListActivity returns a user's most recent activity entries, newest first.
func (db *DB) ListActivity(ctx context.Context, userID uuid.UUID, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, type, details, created_at
		 FROM activity_log WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []ActivityEntry{}
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
