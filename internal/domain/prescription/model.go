package prescription

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("prescription request not found")

// Request statuses. Removed is terminal: requests are never hard deleted.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
	StatusRemoved  = "removed"
)

// Request is a patient's prescription refill request.
type Request struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Medication string    `json:"medication" db:"medication"`
	Dosage     string    `json:"dosage" db:"dosage"`
	Pharmacy   string    `json:"pharmacy" db:"pharmacy"`
	Note       string    `json:"note" db:"note"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
