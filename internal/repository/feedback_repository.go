package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/mobility-map-backend/internal/models"
)

// FeedbackRepository handles database operations for feedback messages
type FeedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Insert stores a message and returns its id
func (r *FeedbackRepository) Insert(ctx context.Context, f models.Feedback) (int64, error) {
	query := `INSERT INTO feedback (name, email, message, created_at) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, f.Name, f.Email, f.Message, f.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get feedback id: %w", err)
	}
	return id, nil
}

// List returns messages, newest first
func (r *FeedbackRepository) List(ctx context.Context, limit, offset int) ([]models.Feedback, error) {
	query := `
		SELECT id, name, email, message, created_at
		FROM feedback
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	items := make([]models.Feedback, 0)
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Message, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return items, nil
}

// Count returns the number of stored messages
func (r *FeedbackRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return n, nil
}
