package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"
	"sort"
	"time"
)

// ErrUnknownTimeSlot is returned when a label is not part of the catalog.
var ErrUnknownTimeSlot = errors.New("domain: unknown time slot")

// SlotMask is a set of catalog indexes for one day; bit i set means slot i is free.
type SlotMask uint16

// FullMask has every catalog slot free.
const FullMask SlotMask = 1<<TimeSlotCount - 1

// Has reports whether slot i is in the set.
func (m SlotMask) Has(i int) bool {
	return i >= 0 && i < TimeSlotCount && m&(1<<uint(i)) != 0
}

// With returns the set with slot i added.
func (m SlotMask) With(i int) SlotMask {
	return m | 1<<uint(i)
}

// Without returns the set with slot i removed.
func (m SlotMask) Without(i int) SlotMask {
	return m &^ (1 << uint(i))
}

// Count is the number of free slots.
func (m SlotMask) Count() int {
	return bits.OnesCount16(uint16(m & FullMask))
}

// Indexes lists the free slot indexes in catalog order.
func (m SlotMask) Indexes() []int {
	out := make([]int, 0, m.Count())
	for i := 0; i < TimeSlotCount; i++ {
		if m.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Slots lists the free slots in catalog order.
func (m SlotMask) Slots() []TimeSlot {
	out := make([]TimeSlot, 0, m.Count())
	for _, i := range m.Indexes() {
		out = append(out, catalog[i])
	}
	return out
}

// Labels lists the free slot labels in catalog order.
func (m SlotMask) Labels() []string {
	out := make([]string, 0, m.Count())
	for _, i := range m.Indexes() {
		out = append(out, catalog[i].Label())
	}
	return out
}

// MaskFromLabels builds a mask, rejecting labels outside the catalog.
func MaskFromLabels(labels []string) (SlotMask, error) {
	var m SlotMask
	for _, l := range labels {
		i, ok := TimeSlotIndex(l)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownTimeSlot, l)
		}
		m = m.With(i)
	}
	return m, nil
}

// DateSlot is the free slots of one owner on one date.
type DateSlot struct {
	Date time.Time
	Free SlotMask
}

type dateSlotJSON struct {
	Date               string   `json:"date"`
	AvailableTimeSlots []string `json:"availableTimeSlots"`
}

// MarshalJSON renders {"date": "...", "availableTimeSlots": [...]}.
func (d DateSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateSlotJSON{
		Date:               DateKey(d.Date),
		AvailableTimeSlots: d.Free.Labels(),
	})
}

// UnmarshalJSON parses the wire form and validates every label.
func (d *DateSlot) UnmarshalJSON(data []byte) error {
	var raw dateSlotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := ParseDate(raw.Date)
	if err != nil {
		return fmt.Errorf("domain: invalid date slot date %q: %w", raw.Date, err)
	}
	mask, err := MaskFromLabels(raw.AvailableTimeSlots)
	if err != nil {
		return err
	}
	d.Date = date
	d.Free = mask
	return nil
}

// SlotSet maps a date to the free slots of a single owner.
// A date with an empty mask is an explicit fully-booked day, not a missing one.
type SlotSet struct {
	days map[string]SlotMask
}

// NewSlotSet builds a set from date slots; later duplicates of a date win.
func NewSlotSet(dateSlots ...DateSlot) SlotSet {
	s := SlotSet{days: make(map[string]SlotMask, len(dateSlots))}
	for _, ds := range dateSlots {
		s.days[DateKey(ds.Date)] = ds.Free & FullMask
	}
	return s
}

// Day returns the mask for date and whether the date is recorded at all.
func (s SlotSet) Day(date time.Time) (SlotMask, bool) {
	m, ok := s.days[DateKey(date)]
	return m, ok
}

// Has reports whether slot i is free on date.
func (s SlotSet) Has(date time.Time, i int) bool {
	m, ok := s.Day(date)
	return ok && m.Has(i)
}

// Take removes slot i from date. It fails when the day is not recorded
// or the slot is not free, leaving the set unchanged.
func (s *SlotSet) Take(date time.Time, i int) bool {
	m, ok := s.Day(date)
	if !ok || !m.Has(i) {
		return false
	}
	s.days[DateKey(date)] = m.Without(i)
	return true
}

// Put adds slot i to date, creating the day when absent. Idempotent.
func (s *SlotSet) Put(date time.Time, i int) {
	if s.days == nil {
		s.days = make(map[string]SlotMask)
	}
	key := DateKey(date)
	s.days[key] = s.days[key].With(i)
}

// SetDay replaces the mask for date.
func (s *SlotSet) SetDay(date time.Time, m SlotMask) {
	if s.days == nil {
		s.days = make(map[string]SlotMask)
	}
	s.days[DateKey(date)] = m & FullMask
}

// Len is the number of recorded dates.
func (s SlotSet) Len() int {
	return len(s.days)
}

// Clone returns an independent copy.
func (s SlotSet) Clone() SlotSet {
	c := SlotSet{days: make(map[string]SlotMask, len(s.days))}
	for k, v := range s.days {
		c.days[k] = v
	}
	return c
}

// DateSlots lists the recorded days ordered by date.
func (s SlotSet) DateSlots() []DateSlot {
	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DateSlot, 0, len(keys))
	for _, k := range keys {
		date, err := ParseDate(k)
		if err != nil {
			continue
		}
		out = append(out, DateSlot{Date: date, Free: s.days[k]})
	}
	return out
}

// MarshalJSON renders the set as a list of DateSlot.
func (s SlotSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.DateSlots())
}

// UnmarshalJSON reads a list of DateSlot.
func (s *SlotSet) UnmarshalJSON(data []byte) error {
	var list []DateSlot
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = NewSlotSet(list...)
	return nil
}

// Scan reads a JSONB column.
func (s *SlotSet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = NewSlotSet()
		return nil
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("domain: unsupported slot set scan type %T", src)
	}
}

// Value writes a JSONB column.
func (s SlotSet) Value() (driver.Value, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
