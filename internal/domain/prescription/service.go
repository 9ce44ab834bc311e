package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	requests Repository
}

func NewService(requests Repository) *Service {
	return &Service{requests: requests}
}

type SubmitRequest struct {
	UserID     string
	Medication string
	Dosage     string
	Pharmacy   string
	Note       string
}

var reviewStatuses = map[string]bool{
	StatusApproved: true,
	StatusDenied:   true,
	StatusPending:  true,
}

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Request, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if req.Medication == "" {
		return nil, fmt.Errorf("medication is required")
	}
	r := &Request{
		UserID:     req.UserID,
		Medication: req.Medication,
		Dosage:     req.Dosage,
		Pharmacy:   req.Pharmacy,
		Note:       req.Note,
		Status:     StatusPending,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Request, error) {
	return s.requests.GetByID(ctx, userID, id)
}

// Review moves a request to approved, denied or back to pending.
func (s *Service) Review(ctx context.Context, userID string, id uuid.UUID, status string) (*Request, error) {
	if !reviewStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if err := s.requests.UpdateStatus(ctx, userID, id, status); err != nil {
		return nil, err
	}
	return s.requests.GetByID(ctx, userID, id)
}

// Remove soft-deletes the request by marking it removed. Removing an id that
// is already gone is a no-op.
func (s *Service) Remove(ctx context.Context, userID string, id uuid.UUID) error {
	err := s.requests.UpdateStatus(ctx, userID, id, StatusRemoved)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Request, int, error) {
	return s.requests.ListActive(ctx, userID, limit, offset)
}
