package prescription

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists prescription requests. Removal is a status change, not
// a row delete.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*Request, error)
	UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) error
	// ListActive returns a page of the user's requests excluding removed
	// ones, newest first, plus the total active count.
	ListActive(ctx context.Context, userID string, limit, offset int) ([]*Request, int, error)
}
