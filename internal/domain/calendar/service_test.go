package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// mockEventRepo is a map-backed EventRepository for service and flow tests.
type mockEventRepo struct {
	mu         sync.Mutex
	events     map[uuid.UUID]*Event
	listErr    error
	createErr  error
	createGate chan struct{} // when set, Create blocks until the channel closes
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[uuid.UUID]*Event)}
}

func (m *mockEventRepo) Create(ctx context.Context, e *Event) error {
	if m.createGate != nil {
		<-m.createGate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if e.Category == CategoryAppointments && e.TimeSlot != nil && e.DoctorNPI != nil {
		for _, existing := range m.events {
			if existing.Category == CategoryAppointments &&
				existing.UserID == e.UserID && existing.Date == e.Date &&
				existing.TimeSlot != nil && *existing.TimeSlot == *e.TimeSlot &&
				existing.DoctorNPI != nil && *existing.DoctorNPI == *e.DoctorNPI {
				return ErrSlotTaken
			}
		}
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockEventRepo) Update(ctx context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.events[e.ID]
	if !ok || existing.UserID != e.UserID {
		return ErrNotFound
	}
	cp := *e
	cp.CreatedAt = existing.CreatedAt
	m.events[e.ID] = &cp
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[id]; ok && e.UserID == userID {
		delete(m.events, id)
	}
	return nil
}

func (m *mockEventRepo) ListByUserDate(ctx context.Context, userID, date string) ([]*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*Event
	for _, e := range m.events {
		if e.UserID == userID && e.Date == date {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockEventRepo) ListBookedSlots(ctx context.Context, userID, date, doctorNPI string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var slots []string
	for _, e := range m.events {
		if e.UserID != userID || e.Date != date || e.TimeSlot == nil {
			continue
		}
		if doctorNPI != "" {
			if e.Category != CategoryAppointments || e.DoctorNPI == nil || *e.DoctorNPI != doctorNPI {
				continue
			}
		}
		slots = append(slots, *e.TimeSlot)
	}
	return slots, nil
}

func newTestService(repo EventRepository) *Service {
	return NewService(repo, zerolog.Nop())
}

var testDoctor = &DoctorContext{
	ID:        "doc-1",
	Name:      "Dr. Rivera",
	Specialty: "Cardiology",
	Hospital:  "General Hospital",
	NPI:       "1234567890",
}

func TestSchedule_PersonalTask(t *testing.T) {
	svc := newTestService(newMockEventRepo())

	event, err := svc.Schedule(context.Background(), ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "10:00 AM", TaskType: "medicine",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Category != CategoryEvents {
		t.Errorf("expected category events, got %s", event.Category)
	}
	if event.TaskType != "medicine" {
		t.Errorf("expected task type medicine, got %s", event.TaskType)
	}
	if event.Title != "Medicine at 10:00 AM" {
		t.Errorf("unexpected title %q", event.Title)
	}
	if event.Status != "pending" {
		t.Errorf("expected status pending, got %s", event.Status)
	}
	if event.Description == "" {
		t.Error("expected a default description")
	}
	if event.DoctorNPI != nil {
		t.Error("personal task must not carry doctor fields")
	}
}

func TestSchedule_AppointmentWithDoctor(t *testing.T) {
	svc := newTestService(newMockEventRepo())

	event, err := svc.Schedule(context.Background(), ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "02:00 PM",
		TaskType: "appointment", Doctor: testDoctor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Category != CategoryAppointments {
		t.Errorf("expected category upcoming_appointments, got %s", event.Category)
	}
	if event.DoctorName == nil || *event.DoctorName != "Dr. Rivera" {
		t.Error("doctor name not copied from context")
	}
	if event.DoctorSpecialty == nil || *event.DoctorSpecialty != "Cardiology" {
		t.Error("doctor specialty not copied from context")
	}
	if event.DoctorHospital == nil || *event.DoctorHospital != "General Hospital" {
		t.Error("doctor hospital not copied from context")
	}
	if event.DoctorNPI == nil || *event.DoctorNPI != "1234567890" {
		t.Error("doctor NPI not copied from context")
	}
}

func TestSchedule_AppointmentWithoutDoctorIsPersonal(t *testing.T) {
	svc := newTestService(newMockEventRepo())

	event, err := svc.Schedule(context.Background(), ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "02:00 PM", TaskType: "appointment",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Category != CategoryEvents {
		t.Errorf("appointment without a doctor must be filed as events, got %s", event.Category)
	}
	if event.DoctorNPI != nil {
		t.Error("doctor fields must stay empty")
	}
}

func TestSchedule_Validation(t *testing.T) {
	svc := newTestService(newMockEventRepo())
	ctx := context.Background()

	cases := []ScheduleRequest{
		{UserID: "", Date: "2026-09-01", TimeSlot: "10:00 AM", TaskType: "meal"},
		{UserID: "u1", Date: "Sep 1 2026", TimeSlot: "10:00 AM", TaskType: "meal"},
		{UserID: "u1", Date: "2026-09-01", TimeSlot: "10:15 AM", TaskType: "meal"},
		{UserID: "u1", Date: "2026-09-01", TimeSlot: "10:00 AM", TaskType: "surgery"},
	}
	for i, req := range cases {
		if _, err := svc.Schedule(ctx, req); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestSchedule_SameSlotDifferentDoctors(t *testing.T) {
	svc := newTestService(newMockEventRepo())
	ctx := context.Background()

	other := *testDoctor
	other.NPI = "9999999999"

	if _, err := svc.Schedule(ctx, ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "10:00 AM",
		TaskType: "appointment", Doctor: testDoctor,
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Schedule(ctx, ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "10:00 AM",
		TaskType: "appointment", Doctor: &other,
	}); err != nil {
		t.Errorf("booking a different doctor in the same slot must be allowed: %v", err)
	}
}

func TestSchedule_DoubleBookingSameDoctor(t *testing.T) {
	svc := newTestService(newMockEventRepo())
	ctx := context.Background()

	req := ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "10:00 AM",
		TaskType: "appointment", Doctor: testDoctor,
	}
	if _, err := svc.Schedule(ctx, req); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Schedule(ctx, req); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}
}

func TestAvailableSlots_FiltersBooked(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Schedule(ctx, ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "10:00 AM",
		TaskType: "appointment", Doctor: testDoctor,
	}); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	slots, err := svc.AvailableSlots(ctx, "u1", "2026-09-01", testDoctor.NPI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 open slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s == "10:00 AM" {
			t.Error("booked slot leaked into available list")
		}
	}
}

func TestAvailableSlots_FailSafeOnQueryError(t *testing.T) {
	repo := newMockEventRepo()
	repo.listErr = errors.New("store unavailable")
	svc := newTestService(repo)

	slots, err := svc.AvailableSlots(context.Background(), "u1", "2026-09-01", "")
	if err != nil {
		t.Fatalf("booked-slot failures must not surface: %v", err)
	}
	if len(slots) != 17 {
		t.Errorf("expected all 17 slots on query failure, got %d", len(slots))
	}
}

func TestSlotBoard_MarksTaken(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Schedule(ctx, ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "09:30 AM", TaskType: "exercise",
	}); err != nil {
		t.Fatalf("seed task failed: %v", err)
	}

	board, err := svc.SlotBoard(ctx, "u1", "2026-09-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(board) != 17 {
		t.Fatalf("expected 17 entries, got %d", len(board))
	}
	for _, s := range board {
		if s.Slot == "09:30 AM" && !s.Taken {
			t.Error("expected 09:30 AM to be marked taken")
		}
		if s.Slot != "09:30 AM" && s.Taken {
			t.Errorf("slot %s wrongly marked taken", s.Slot)
		}
	}
}

func TestDeleteEvent_Idempotent(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	event, err := svc.Schedule(ctx, ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "11:00 AM", TaskType: "lab",
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := svc.DeleteEvent(ctx, "u1", event.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := svc.DeleteEvent(ctx, "u1", event.ID); err != nil {
		t.Errorf("second delete must be a no-op, got %v", err)
	}
}

func TestUpdateEvent_NotFound(t *testing.T) {
	svc := newTestService(newMockEventRepo())
	slot := "10:00 AM"
	err := svc.UpdateEvent(context.Background(), &Event{
		ID: uuid.New(), UserID: "u1", Title: "x", Date: "2026-09-01",
		TimeSlot: &slot, Category: CategoryEvents, TaskType: "meal", Status: "pending",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateEvent_PreservesCreatedAt(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	event, err := svc.Schedule(ctx, ScheduleRequest{
		UserID: "u1", Date: "2026-09-01", TimeSlot: "11:00 AM", TaskType: "meal",
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	event.Title = "Lunch with family"
	if err := svc.UpdateEvent(ctx, event); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := svc.GetEvent(ctx, "u1", event.ID)
	if err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if got.Title != "Lunch with family" {
		t.Errorf("title not updated, got %q", got.Title)
	}
}
