package calendar

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// FlowState is one step of the multi-step "add to calendar" flow.
type FlowState string

const (
	StateIdle              FlowState = "idle"
	StateSlotModalOpen     FlowState = "slot_modal_open"
	StateCategoryModalOpen FlowState = "category_modal_open"
	StatePersisting        FlowState = "persisting"
)

// Cancel affordances. Dismiss drops everything; Back re-opens the slot
// picker keeping the selected date.
const (
	CancelDismiss = "dismiss"
	CancelBack    = "back"
)

// Flow is the transient state of one scheduling session. Doctor is fixed at
// flow start; Date, TakenSlots and TempTimeSlot accumulate as the user steps
// through.
type Flow struct {
	ID           uuid.UUID      `json:"id"`
	UserID       string         `json:"user_id"`
	State        FlowState      `json:"state"`
	Date         string         `json:"date,omitempty"`
	TakenSlots   []string       `json:"taken_slots,omitempty"`
	OpenSlots    []string       `json:"open_slots,omitempty"`
	TempTimeSlot string         `json:"temp_time_slot,omitempty"`
	Doctor       *DoctorContext `json:"doctor,omitempty"`
}

func (f *Flow) snapshot() *Flow {
	cp := *f
	cp.TakenSlots = append([]string(nil), f.TakenSlots...)
	cp.OpenSlots = append([]string(nil), f.OpenSlots...)
	return &cp
}

// FlowManager tracks in-flight scheduling flows in memory, keyed by flow id.
type FlowManager struct {
	mu    sync.Mutex
	flows map[uuid.UUID]*Flow
	svc   *Service
}

func NewFlowManager(svc *Service) *FlowManager {
	return &FlowManager{flows: make(map[uuid.UUID]*Flow), svc: svc}
}

// Start opens a new flow for the user, optionally bound to a doctor. The
// doctor binding decides both the conflict-check resource and whether a
// later appointment pick lands in the appointments partition.
func (m *FlowManager) Start(userID string, doctor *DoctorContext) *Flow {
	f := &Flow{
		ID:     uuid.New(),
		UserID: userID,
		State:  StateIdle,
		Doctor: doctor,
	}
	m.mu.Lock()
	m.flows[f.ID] = f
	m.mu.Unlock()
	return f.snapshot()
}

// lookup resolves a flow by id for a given owner. A flow belonging to
// another user is indistinguishable from a missing one. Callers must hold
// the mutex.
func (m *FlowManager) lookup(id uuid.UUID, userID string) (*Flow, error) {
	f, ok := m.flows[id]
	if !ok || f.UserID != userID {
		return nil, ErrFlowNotFound
	}
	return f, nil
}

func (m *FlowManager) Get(id uuid.UUID, userID string) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookup(id, userID)
	if err != nil {
		return nil, err
	}
	return f.snapshot(), nil
}

// SelectDate records the date, fetches the taken slots for it and opens the
// slot picker. A failed booked-slot fetch leaves the taken set empty rather
// than blocking the flow.
func (m *FlowManager) SelectDate(ctx context.Context, id uuid.UUID, userID, date string) (*Flow, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	m.mu.Lock()
	f, err := m.lookup(id, userID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if f.State == StatePersisting {
		m.mu.Unlock()
		return nil, ErrFlowBusy
	}
	doctor := f.Doctor
	m.mu.Unlock()

	doctorNPI := ""
	if doctor != nil {
		doctorNPI = doctor.NPI
	}
	taken := m.svc.bookedSlots(ctx, userID, date, doctorNPI)

	m.mu.Lock()
	defer m.mu.Unlock()
	f, err = m.lookup(id, userID)
	if err != nil {
		return nil, err
	}
	if f.State == StatePersisting {
		return nil, ErrFlowBusy
	}
	f.Date = date
	f.TakenSlots = taken
	f.OpenSlots = OpenSlots(DaySlots(), taken)
	f.TempTimeSlot = ""
	f.State = StateSlotModalOpen
	return f.snapshot(), nil
}

// SelectSlot stores the chosen slot and moves on to category selection.
// Taken slots are rejected.
func (m *FlowManager) SelectSlot(id uuid.UUID, userID, slot string) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookup(id, userID)
	if err != nil {
		return nil, err
	}
	if f.State == StatePersisting {
		return nil, ErrFlowBusy
	}
	if f.State != StateSlotModalOpen {
		return nil, ErrInvalidStep
	}
	if !IsSlotLabel(slot) {
		return nil, fmt.Errorf("invalid time slot: %s", slot)
	}
	for _, t := range f.TakenSlots {
		if t == slot {
			return nil, ErrSlotUnavailable
		}
	}
	f.TempTimeSlot = slot
	f.State = StateCategoryModalOpen
	return f.snapshot(), nil
}

// SelectCategory persists the record and completes the flow. On persistence
// failure the flow stays in category selection with the slot retained so the
// user can retry. While the write is in flight every other call on the flow
// returns ErrFlowBusy. A completed flow is dropped from the manager.
func (m *FlowManager) SelectCategory(ctx context.Context, id uuid.UUID, userID, categoryID string) (*Event, *Flow, error) {
	m.mu.Lock()
	f, err := m.lookup(id, userID)
	if err != nil {
		m.mu.Unlock()
		return nil, nil, err
	}
	if f.State == StatePersisting {
		m.mu.Unlock()
		return nil, nil, ErrFlowBusy
	}
	if f.State != StateCategoryModalOpen || f.TempTimeSlot == "" {
		m.mu.Unlock()
		return nil, nil, ErrInvalidStep
	}
	if _, ok := CategoryByID(categoryID); !ok {
		m.mu.Unlock()
		return nil, nil, fmt.Errorf("invalid task category: %s", categoryID)
	}
	req := ScheduleRequest{
		UserID:   f.UserID,
		Date:     f.Date,
		TimeSlot: f.TempTimeSlot,
		TaskType: categoryID,
		Doctor:   f.Doctor,
	}
	f.State = StatePersisting
	m.mu.Unlock()

	event, schedErr := m.svc.Schedule(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	f, err = m.lookup(id, userID)
	if err != nil {
		return nil, nil, err
	}
	if schedErr != nil {
		f.State = StateCategoryModalOpen
		return nil, f.snapshot(), schedErr
	}
	f.State = StateIdle
	f.Date = ""
	f.TakenSlots = nil
	f.OpenSlots = nil
	f.TempTimeSlot = ""
	delete(m.flows, id)
	return event, f.snapshot(), nil
}

// Cancel aborts the current step. Dismiss drops the whole flow; back keeps
// the date and re-opens the slot picker.
func (m *FlowManager) Cancel(id uuid.UUID, userID, mode string) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookup(id, userID)
	if err != nil {
		return nil, err
	}
	if f.State == StatePersisting {
		return nil, ErrFlowBusy
	}
	switch mode {
	case CancelDismiss:
		f.State = StateIdle
		f.Date = ""
		f.TakenSlots = nil
		f.OpenSlots = nil
		f.TempTimeSlot = ""
		delete(m.flows, id)
	case CancelBack:
		if f.Date == "" {
			return nil, ErrInvalidStep
		}
		f.State = StateSlotModalOpen
		f.TempTimeSlot = ""
	default:
		return nil, fmt.Errorf("invalid cancel mode: %s", mode)
	}
	return f.snapshot(), nil
}
