package moodlog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	mu      sync.Mutex
	logs    map[uuid.UUID]*MoodLog
	clock   time.Time
	listErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		logs:  make(map[uuid.UUID]*MoodLog),
		clock: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockRepo) Create(ctx context.Context, l *MoodLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = uuid.New()
	m.clock = m.clock.Add(time.Minute)
	l.CreatedAt = m.clock
	cp := *l
	m.logs[l.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (*MoodLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[id]
	if !ok || l.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, l *MoodLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.logs[l.ID]
	if !ok || existing.UserID != l.UserID {
		return ErrNotFound
	}
	existing.Mood = l.Mood
	existing.Symptoms = l.Symptoms
	existing.Note = l.Note
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.logs[id]; ok && l.UserID == userID {
		delete(m.logs, id)
	}
	return nil
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]*MoodLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*MoodLog
	for _, l := range m.logs {
		if l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func TestCreate_RoundTrip(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateRequest{
		UserID: "u1", Date: "2026-08-01", Mood: "happy",
		Symptoms: []string{"headache"}, Note: "ok",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	got := items[0]
	if got.ID != m.ID || got.Mood != "happy" {
		t.Errorf("unexpected entry %+v", got)
	}
	if len(got.Symptoms) != 1 || got.Symptoms[0] != "headache" {
		t.Errorf("unexpected symptoms %v", got.Symptoms)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at set")
	}
}

func TestCreate_MoodRequired(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Create(context.Background(), CreateRequest{
		UserID: "u1", Date: "2026-08-01",
	}); err == nil {
		t.Error("expected validation error for missing mood")
	}
}

func TestCreate_SymptomsDefaultEmpty(t *testing.T) {
	svc := NewService(newMockRepo())
	m, err := svc.Create(context.Background(), CreateRequest{
		UserID: "u1", Date: "2026-08-01", Mood: "fine",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.Symptoms == nil || len(m.Symptoms) != 0 {
		t.Errorf("expected empty symptom set, got %v", m.Symptoms)
	}
}

func TestUpdate_ReplacesMoodOnly(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateRequest{
		UserID: "u1", Date: "2026-08-01", Mood: "happy",
		Symptoms: []string{"headache"}, Note: "ok",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, "u1", m.ID, UpdateRequest{Mood: "sad"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Mood != "sad" {
		t.Errorf("expected mood sad, got %s", updated.Mood)
	}
	if updated.Date != "2026-08-01" {
		t.Errorf("date must not change, got %s", updated.Date)
	}
	if !updated.CreatedAt.Equal(m.CreatedAt) {
		t.Error("created_at must not change")
	}

	got, err := svc.Get(ctx, "u1", m.ID)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got.Mood != "sad" {
		t.Errorf("refetch shows mood %s", got.Mood)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Update(context.Background(), "u1", uuid.New(), UpdateRequest{Mood: "sad"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateRequest{UserID: "u1", Date: "2026-08-01", Mood: "ok"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, "u1", m.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, "u1", m.ID); err != nil {
		t.Errorf("second delete must be a no-op, got %v", err)
	}
}

func TestList_SortedNewestFirst(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	for _, mood := range []string{"first", "second", "third"} {
		if _, err := svc.Create(ctx, CreateRequest{
			UserID: "u1", Date: "2026-08-01", Mood: mood,
		}); err != nil {
			t.Fatalf("create %s: %v", mood, err)
		}
	}

	items, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(items))
	}
	want := []string{"third", "second", "first"}
	for i, w := range want {
		if items[i].Mood != w {
			t.Errorf("position %d: expected %s, got %s", i, w, items[i].Mood)
		}
	}
}

func TestList_ScopedByUser(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRequest{UserID: "u1", Date: "2026-08-01", Mood: "ok"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateRequest{UserID: "u2", Date: "2026-08-01", Mood: "ok"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected only u1's entry, got %d", len(items))
	}
}
