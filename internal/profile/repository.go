package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository handles persistence of user profiles.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new profile repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the user's profile, or a zero-value profile when none has been
// saved yet.
func (r *Repository) Get(ctx context.Context, userID int64) (Profile, error) {
	var p Profile
	var displayName, phone sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, display_name, phone_number, text_reminders_enabled, updated_at
		 FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &displayName, &phone, &p.TextRemindersEnabled, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{UserID: userID}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}
	p.DisplayName = displayName.String
	p.PhoneNumber = phone.String
	return p, nil
}

// Save upserts the single profile row for the user.
func (r *Repository) Save(ctx context.Context, p Profile) (Profile, error) {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `INSERT INTO profiles
		(user_id, display_name, phone_number, text_reminders_enabled, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = excluded.display_name,
			phone_number = excluded.phone_number,
			text_reminders_enabled = excluded.text_reminders_enabled,
			updated_at = excluded.updated_at`,
		p.UserID, p.DisplayName, p.PhoneNumber, p.TextRemindersEnabled, p.UpdatedAt)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// ListReminderRecipients returns profiles that opted into text reminders and
// have a phone number on file.
func (r *Repository) ListReminderRecipients(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, display_name, phone_number, text_reminders_enabled, updated_at
		 FROM profiles
		 WHERE text_reminders_enabled = 1 AND phone_number IS NOT NULL AND phone_number != ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder recipients: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var displayName, phone sql.NullString
		if err := rows.Scan(&p.UserID, &displayName, &phone, &p.TextRemindersEnabled, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.DisplayName = displayName.String
		p.PhoneNumber = phone.String
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
