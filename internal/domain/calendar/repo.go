package calendar

import (
	"context"

	"github.com/google/uuid"
)

// EventRepository persists calendar records. Every query is scoped by the
// owning user id.
type EventRepository interface {
	// Create inserts the event. For doctor appointments the insert is
	// conditional: if the (user, date, slot, doctor) tuple is already
	// booked it returns ErrSlotTaken.
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, e *Event) error
	// Delete removes the event. Deleting an id that no longer exists is a
	// no-op.
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	ListByUserDate(ctx context.Context, userID, date string) ([]*Event, error)
	// ListBookedSlots returns the slot labels already taken on a date.
	// With doctorNPI set it covers that doctor's appointments; empty, it
	// covers all of the user's records carrying a slot.
	ListBookedSlots(ctx context.Context, userID, date, doctorNPI string) ([]string, error)
}
