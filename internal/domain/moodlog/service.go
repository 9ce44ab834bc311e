package moodlog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	logs Repository
}

func NewService(logs Repository) *Service {
	return &Service{logs: logs}
}

type CreateRequest struct {
	UserID   string
	Date     string
	Mood     string
	Symptoms []string
	Note     string
}

type UpdateRequest struct {
	Mood     string
	Symptoms []string
	Note     string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*MoodLog, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if req.Mood == "" {
		return nil, fmt.Errorf("mood is required")
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	m := &MoodLog{
		UserID:   req.UserID,
		Date:     req.Date,
		Mood:     req.Mood,
		Symptoms: req.Symptoms,
		Note:     req.Note,
	}
	if m.Symptoms == nil {
		m.Symptoms = []string{}
	}
	if err := s.logs.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*MoodLog, error) {
	return s.logs.GetByID(ctx, userID, id)
}

// Update replaces mood, symptoms and note on an existing entry. Date and
// creation time are untouched.
func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, req UpdateRequest) (*MoodLog, error) {
	if req.Mood == "" {
		return nil, fmt.Errorf("mood is required")
	}
	existing, err := s.logs.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	existing.Mood = req.Mood
	existing.Note = req.Note
	existing.Symptoms = req.Symptoms
	if existing.Symptoms == nil {
		existing.Symptoms = []string{}
	}
	if err := s.logs.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the entry. A second delete of the same id succeeds.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.logs.Delete(ctx, userID, id)
}

// List returns the user's entries newest first. The store makes no ordering
// promise, so the sort is reapplied after every fetch.
func (s *Service) List(ctx context.Context, userID string) ([]*MoodLog, error) {
	items, err := s.logs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}
