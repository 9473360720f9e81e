package domain

import (
	"strings"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// TimeSlotSeparator separates start and end in a slot label.
const TimeSlotSeparator = " - "

// TimeSlot is one fixed daily seating range.
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// Label renders the canonical wire form "HH:MM - HH:MM".
func (s TimeSlot) Label() string {
	return s.Start.String() + TimeSlotSeparator + s.End.String()
}

func (s TimeSlot) String() string {
	return s.Label()
}

// catalog is ordered by start time; position in it is the slot index.
var catalog = [...]TimeSlot{
	{Start: "10:30", End: "12:00"},
	{Start: "12:15", End: "13:45"},
	{Start: "14:00", End: "15:30"},
	{Start: "15:45", End: "17:15"},
	{Start: "17:30", End: "19:00"},
	{Start: "19:15", End: "20:45"},
	{Start: "21:00", End: "22:30"},
}

// TimeSlotCount is the number of slots in a day.
const TimeSlotCount = len(catalog)

// AllTimeSlots returns the whole catalog in order.
func AllTimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(catalog))
	copy(out, catalog[:])
	return out
}

// TimeSlotAt returns the slot at catalog index i.
func TimeSlotAt(i int) (TimeSlot, bool) {
	if i < 0 || i >= len(catalog) {
		return TimeSlot{}, false
	}
	return catalog[i], true
}

// TimeSlotsAtOrAfter returns the slots starting at or after t.
// An empty time or "00:00" means no restriction.
func TimeSlotsAtOrAfter(t types.TimeString) []TimeSlot {
	if t.IsZero() || t == AnyTime {
		return AllTimeSlots()
	}
	out := make([]TimeSlot, 0, len(catalog))
	for _, s := range catalog {
		if !s.Start.IsBefore(t) {
			out = append(out, s)
		}
	}
	return out
}

// TimeSlotIndex returns the catalog position of a label.
func TimeSlotIndex(label string) (int, bool) {
	label = strings.TrimSpace(label)
	for i, s := range catalog {
		if s.Label() == label {
			return i, true
		}
	}
	return -1, false
}

// FindTimeSlotByStart returns the slot whose start equals start.
func FindTimeSlotByStart(start types.TimeString) (TimeSlot, bool) {
	for _, s := range catalog {
		if s.Start == start {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// TimeSlotFromRange matches a (from, to) pair to a catalog entry exactly.
func TimeSlotFromRange(from, to types.TimeString) (TimeSlot, bool) {
	s, ok := FindTimeSlotByStart(from)
	if !ok || s.End != to {
		return TimeSlot{}, false
	}
	return s, true
}

// ParseTimeSlotLabel parses "HH:MM - HH:MM" into a catalog entry.
func ParseTimeSlotLabel(label string) (TimeSlot, bool) {
	i, ok := TimeSlotIndex(label)
	if !ok {
		return TimeSlot{}, false
	}
	return catalog[i], true
}
