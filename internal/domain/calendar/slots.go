package calendar

// Business day runs 09:00 through 17:00 at half-hour steps. The closing
// boundary 17:00 is bookable, 17:30 is not, which yields 17 labels.
const (
	dayOpenMinutes  = 9 * 60
	dayCloseMinutes = 17 * 60
	slotStepMinutes = 30
)

var daySlots = buildDaySlots()

func buildDaySlots() []string {
	var slots []string
	for m := dayOpenMinutes; m <= dayCloseMinutes; m += slotStepMinutes {
		slots = append(slots, formatSlot(m))
	}
	return slots
}

func formatSlot(minutes int) string {
	hour := minutes / 60
	min := minutes % 60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return twoDigits(display) + ":" + twoDigits(min) + " " + suffix
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

// DaySlots returns the ordered bookable slot labels for a business day.
// Callers own the returned slice.
func DaySlots() []string {
	out := make([]string, len(daySlots))
	copy(out, daySlots)
	return out
}

// IsSlotLabel reports whether s is one of the bookable slot labels.
func IsSlotLabel(s string) bool {
	for _, slot := range daySlots {
		if slot == s {
			return true
		}
	}
	return false
}

// OpenSlots returns the slots not present in booked, preserving order. This
// is the doctor-scheduling presentation: taken slots disappear entirely.
func OpenSlots(slots []string, booked []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}
	open := make([]string, 0, len(slots))
	for _, s := range slots {
		if !taken[s] {
			open = append(open, s)
		}
	}
	return open
}

// SlotStatus is one slot in the personal-calendar presentation, where taken
// slots stay visible but are not selectable.
type SlotStatus struct {
	Slot  string `json:"slot"`
	Taken bool   `json:"taken"`
}

// AnnotateSlots keeps every slot and flags the booked ones.
func AnnotateSlots(slots []string, booked []string) []SlotStatus {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}
	out := make([]SlotStatus, len(slots))
	for i, s := range slots {
		out[i] = SlotStatus{Slot: s, Taken: taken[s]}
	}
	return out
}
