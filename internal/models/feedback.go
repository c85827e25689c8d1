package models

import "time"

// Feedback is a message left through the dashboard's feedback form
type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name,omitempty" db:"name"`
	Email     string    `json:"email,omitempty" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FeedbackRequest is the body of POST /api/v1/feedback
type FeedbackRequest struct {
	Name    string `json:"name" binding:"max=200"`
	Email   string `json:"email" binding:"omitempty,email,max=320"`
	Message string `json:"message" binding:"required,max=5000"`
}
