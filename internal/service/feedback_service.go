package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/mobility-map-backend/internal/logger"
	"github.com/jengzang/mobility-map-backend/internal/models"
)

// ErrInvalidFeedback is returned for an empty message
var ErrInvalidFeedback = errors.New("feedback message is empty")

const (
	defaultFeedbackPageSize = 50
	maxFeedbackPageSize     = 200
)

// FeedbackStore persists feedback messages
type FeedbackStore interface {
	Insert(ctx context.Context, f models.Feedback) (int64, error)
	List(ctx context.Context, limit, offset int) ([]models.Feedback, error)
	Count(ctx context.Context) (int64, error)
}

// FeedbackPage is one page of the admin listing
type FeedbackPage struct {
	Items  []models.Feedback `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// FeedbackService handles business logic for feedback submission
type FeedbackService struct {
	store FeedbackStore
	now   func() time.Time
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(store FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store, now: time.Now}
}

// Submit stores a message. A storage failure is returned as-is to the caller
// and is not retried.
func (s *FeedbackService) Submit(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	f := models.Feedback{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.now().UTC(),
	}
	if f.Message == "" {
		return nil, ErrInvalidFeedback
	}

	id, err := s.store.Insert(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}
	f.ID = id

	logger.Info("Feedback received", "id", id)
	return &f, nil
}

// List returns one page of messages, newest first
func (s *FeedbackService) List(ctx context.Context, limit, offset int) (*FeedbackPage, error) {
	if limit <= 0 {
		limit = defaultFeedbackPageSize
	}
	if limit > maxFeedbackPageSize {
		limit = maxFeedbackPageSize
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}

	return &FeedbackPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}
