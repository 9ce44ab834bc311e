package calendar

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Storage categories partition a user's records into personal tasks and
// doctor appointments. They are a query key, distinct from task categories.
const (
	CategoryEvents       = "events"
	CategoryAppointments = "upcoming_appointments"
)

var (
	ErrNotFound        = errors.New("event not found")
	ErrSlotTaken       = errors.New("time slot already booked")
	ErrFlowNotFound    = errors.New("scheduling flow not found")
	ErrFlowBusy        = errors.New("scheduling flow has a submission in progress")
	ErrInvalidStep     = errors.New("step not allowed in current flow state")
	ErrSlotUnavailable = errors.New("selected slot is taken")
)

// Event is one calendar record: a personal task or a doctor appointment.
// Doctor fields are populated only for appointments booked with a doctor.
type Event struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Date            string    `json:"date" db:"date"`
	TimeSlot        *string   `json:"time_slot,omitempty" db:"time_slot"`
	Category        string    `json:"category" db:"category"`
	TaskType        string    `json:"task_type" db:"task_type"`
	DoctorID        *string   `json:"doctor_id,omitempty" db:"doctor_id"`
	DoctorName      *string   `json:"doctor_name,omitempty" db:"doctor_name"`
	DoctorSpecialty *string   `json:"doctor_specialty,omitempty" db:"doctor_specialty"`
	DoctorHospital  *string   `json:"doctor_hospital,omitempty" db:"doctor_hospital"`
	DoctorNPI       *string   `json:"doctor_npi,omitempty" db:"doctor_npi"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// DoctorContext identifies the doctor a slot is being booked against.
type DoctorContext struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Hospital  string `json:"hospital"`
	NPI       string `json:"npi"`
}
