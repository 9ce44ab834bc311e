package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service owns slot availability and event lifecycle.
type Service struct {
	events EventRepository
	logger zerolog.Logger
}

func NewService(events EventRepository, logger zerolog.Logger) *Service {
	return &Service{events: events, logger: logger}
}

// ScheduleRequest is one resolved pass through the scheduling flow.
type ScheduleRequest struct {
	UserID      string
	Date        string
	TimeSlot    string
	TaskType    string
	Description string
	Doctor      *DoctorContext
}

// AvailableSlots returns the open slot labels for a date. doctorNPI narrows
// the conflict check to that doctor's bookings; empty checks the user's own
// calendar. A failed booked-slot query is treated as no bookings so slot
// selection is never blocked by a read error.
func (s *Service) AvailableSlots(ctx context.Context, userID, date, doctorNPI string) ([]string, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	booked := s.bookedSlots(ctx, userID, date, doctorNPI)
	return OpenSlots(DaySlots(), booked), nil
}

// SlotBoard returns every slot with its taken flag, the personal-calendar
// presentation of the same conflict check.
func (s *Service) SlotBoard(ctx context.Context, userID, date, doctorNPI string) ([]SlotStatus, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	booked := s.bookedSlots(ctx, userID, date, doctorNPI)
	return AnnotateSlots(DaySlots(), booked), nil
}

func (s *Service) bookedSlots(ctx context.Context, userID, date, doctorNPI string) []string {
	booked, err := s.events.ListBookedSlots(ctx, userID, date, doctorNPI)
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID).
			Str("date", date).
			Msg("booked-slot query failed, treating all slots as open")
		return nil
	}
	return booked
}

// Schedule validates the request, synthesizes the record and persists it.
// The record lands in the appointments partition only when the task type is
// appointment and a doctor is attached; an appointment task without a doctor
// is filed as a plain personal event.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (*Event, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if !IsSlotLabel(req.TimeSlot) {
		return nil, fmt.Errorf("invalid time slot: %s", req.TimeSlot)
	}
	cat, ok := CategoryByID(req.TaskType)
	if !ok {
		return nil, fmt.Errorf("invalid task category: %s", req.TaskType)
	}

	slot := req.TimeSlot
	e := &Event{
		UserID:      req.UserID,
		Title:       fmt.Sprintf("%s at %s", cat.Title, slot),
		Description: req.Description,
		Date:        req.Date,
		TimeSlot:    &slot,
		Category:    CategoryEvents,
		TaskType:    req.TaskType,
		Status:      "pending",
	}
	if e.Description == "" {
		e.Description = fmt.Sprintf("%s scheduled for %s at %s", cat.Title, req.Date, slot)
	}
	if req.TaskType == TaskAppointment && req.Doctor != nil {
		e.Category = CategoryAppointments
		e.DoctorID = &req.Doctor.ID
		e.DoctorName = &req.Doctor.Name
		e.DoctorSpecialty = &req.Doctor.Specialty
		e.DoctorHospital = &req.Doctor.Hospital
		e.DoctorNPI = &req.Doctor.NPI
	}

	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) EventsByDate(ctx context.Context, userID, date string) ([]*Event, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return s.events.ListByUserDate(ctx, userID, date)
}

func (s *Service) GetEvent(ctx context.Context, userID string, id uuid.UUID) (*Event, error) {
	return s.events.GetByID(ctx, userID, id)
}

// UpdateEvent is a full-record replace of an existing event.
func (s *Service) UpdateEvent(ctx context.Context, e *Event) error {
	if err := validateDate(e.Date); err != nil {
		return err
	}
	if e.TimeSlot != nil && !IsSlotLabel(*e.TimeSlot) {
		return fmt.Errorf("invalid time slot: %s", *e.TimeSlot)
	}
	if _, ok := CategoryByID(e.TaskType); !ok {
		return fmt.Errorf("invalid task category: %s", e.TaskType)
	}
	return s.events.Update(ctx, e)
}

// DeleteEvent removes the record. A second delete of the same id succeeds.
func (s *Service) DeleteEvent(ctx context.Context, userID string, id uuid.UUID) error {
	return s.events.Delete(ctx, userID, id)
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}
