package moodlog

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists mood logs. List makes no ordering promise; ordering is
// reapplied by the service on every fetch.
type Repository interface {
	Create(ctx context.Context, m *MoodLog) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*MoodLog, error)
	Update(ctx context.Context, m *MoodLog) error
	// Delete removes the entry. Deleting a missing id is a no-op.
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	ListByUser(ctx context.Context, userID string) ([]*MoodLog, error)
}
