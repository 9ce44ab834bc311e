package calendar

import "testing"

func TestDaySlots_Count(t *testing.T) {
	slots := DaySlots()
	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(slots))
	}
}

func TestDaySlots_Boundaries(t *testing.T) {
	slots := DaySlots()
	if slots[0] != "09:00 AM" {
		t.Errorf("expected first slot 09:00 AM, got %s", slots[0])
	}
	if slots[len(slots)-1] != "05:00 PM" {
		t.Errorf("expected last slot 05:00 PM, got %s", slots[len(slots)-1])
	}
	for _, s := range slots {
		if s == "05:30 PM" {
			t.Error("05:30 PM must not be produced")
		}
	}
}

func TestDaySlots_Order(t *testing.T) {
	want := []string{
		"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
		"12:00 PM", "12:30 PM", "01:00 PM", "01:30 PM", "02:00 PM", "02:30 PM",
		"03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM", "05:00 PM",
	}
	got := DaySlots()
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestIsSlotLabel(t *testing.T) {
	if !IsSlotLabel("10:00 AM") {
		t.Error("10:00 AM should be a slot label")
	}
	if IsSlotLabel("05:30 PM") {
		t.Error("05:30 PM should not be a slot label")
	}
	if IsSlotLabel("9:00 AM") {
		t.Error("single-digit hour should not be a slot label")
	}
}

func TestOpenSlots_ExcludesBooked(t *testing.T) {
	open := OpenSlots(DaySlots(), []string{"10:00 AM"})
	if len(open) != 16 {
		t.Fatalf("expected 16 open slots, got %d", len(open))
	}
	prev := -1
	full := DaySlots()
	index := make(map[string]int, len(full))
	for i, s := range full {
		index[s] = i
	}
	for _, s := range open {
		if s == "10:00 AM" {
			t.Error("booked slot must be excluded")
		}
		if index[s] <= prev {
			t.Errorf("order not preserved at %s", s)
		}
		prev = index[s]
	}
}

func TestOpenSlots_EmptyBookedIsIdentity(t *testing.T) {
	full := DaySlots()
	open := OpenSlots(full, nil)
	if len(open) != len(full) {
		t.Fatalf("expected identity, got %d slots", len(open))
	}
	for i := range full {
		if open[i] != full[i] {
			t.Errorf("slot %d changed: %s != %s", i, open[i], full[i])
		}
	}
}

func TestAnnotateSlots(t *testing.T) {
	board := AnnotateSlots(DaySlots(), []string{"09:00 AM", "05:00 PM"})
	if len(board) != 17 {
		t.Fatalf("expected all 17 slots kept, got %d", len(board))
	}
	takenCount := 0
	for _, s := range board {
		if s.Taken {
			takenCount++
			if s.Slot != "09:00 AM" && s.Slot != "05:00 PM" {
				t.Errorf("unexpected taken slot %s", s.Slot)
			}
		}
	}
	if takenCount != 2 {
		t.Errorf("expected 2 taken slots, got %d", takenCount)
	}
}
