package moodlog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("mood log not found")

// MoodLog is one daily mood entry. Date is the day the mood applies to,
// CreatedAt the submission time.
type MoodLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Date      string    `json:"date" db:"date"`
	Mood      string    `json:"mood" db:"mood"`
	Symptoms  []string  `json:"symptoms" db:"symptoms"`
	Note      string    `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
