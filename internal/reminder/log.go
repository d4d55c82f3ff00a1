package reminder

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LogStore records delivered reminders for auditing and rate inspection.
type LogStore struct {
	db *sql.DB
}

// NewLogStore initializes the store with an existing database connection.
func NewLogStore(db *sql.DB) *LogStore {
	return &LogStore{db: db}
}

// Record saves one delivery to the log.
func (s *LogStore) Record(ctx context.Context, channel, destination string, bodyLength int, sentAt time.Time) error {
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reminder_log (channel, destination, body_length, sent_at) VALUES (?, ?, ?, ?)`,
		channel, destination, bodyLength, sentAt)
	if err != nil {
		return fmt.Errorf("failed to record reminder: %w", err)
	}
	return nil
}

// CountSince returns how many reminders went to the destination after the
// cutoff.
func (s *LogStore) CountSince(ctx context.Context, destination string, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reminder_log WHERE destination = ? AND sent_at >= ?`,
		destination, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count reminders: %w", err)
	}
	return n, nil
}

// Prune deletes log rows older than the retention window.
func (s *LogStore) Prune(ctx context.Context, olderThan time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM reminder_log WHERE sent_at < ?`, olderThan)
	if err != nil {
		return fmt.Errorf("failed to prune reminder log: %w", err)
	}
	return nil
}
