package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june2 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestSlotMask(t *testing.T) {
	var m SlotMask
	m = m.With(3).With(0).With(3)

	assert.Equal(t, 2, m.Count())
	assert.Equal(t, []int{0, 3}, m.Indexes())
	assert.Equal(t, []string{"10:30 - 12:00", "15:45 - 17:15"}, m.Labels())
	assert.True(t, m.Has(3))
	assert.False(t, m.Without(3).Has(3))
	assert.False(t, m.Has(TimeSlotCount))
	assert.Equal(t, TimeSlotCount, FullMask.Count())
}

func TestSlotSet_TakeAndPut(t *testing.T) {
	mask, err := MaskFromLabels([]string{"12:15 - 13:45", "10:30 - 12:00"})
	require.NoError(t, err)
	set := NewSlotSet(DateSlot{Date: june2, Free: mask})

	assert.True(t, set.Take(june2, 0))
	assert.False(t, set.Take(june2, 0), "slot already taken")
	assert.False(t, set.Take(june2.AddDate(0, 0, 1), 0), "day never offered")

	day, ok := set.Day(june2)
	require.True(t, ok)
	assert.Equal(t, []string{"12:15 - 13:45"}, day.Labels())

	set.Put(june2, 0)
	set.Put(june2, 0)
	day, _ = set.Day(june2)
	assert.Equal(t, []string{"10:30 - 12:00", "12:15 - 13:45"}, day.Labels())

	next := june2.AddDate(0, 0, 1)
	set.Put(next, 6)
	day, ok = set.Day(next)
	require.True(t, ok)
	assert.Equal(t, []string{"21:00 - 22:30"}, day.Labels())
}

func TestSlotSet_EmptyDayIsKept(t *testing.T) {
	set := NewSlotSet(DateSlot{Date: june2, Free: SlotMask(0).With(1)})
	require.True(t, set.Take(june2, 1))

	day, ok := set.Day(june2)
	assert.True(t, ok)
	assert.Zero(t, day.Count())
}

func TestSlotSet_CloneIsIndependent(t *testing.T) {
	set := NewSlotSet(DateSlot{Date: june2, Free: FullMask})
	clone := set.Clone()
	clone.Take(june2, 2)

	assert.True(t, set.Has(june2, 2))
	assert.False(t, clone.Has(june2, 2))
}

func TestSlotSet_JSON(t *testing.T) {
	raw := `[{"date":"2025-06-03","availableTimeSlots":["21:00 - 22:30"]},
	         {"date":"2025-06-02","availableTimeSlots":["12:15 - 13:45","10:30 - 12:00"]}]`

	var set SlotSet
	require.NoError(t, json.Unmarshal([]byte(raw), &set))
	assert.Equal(t, 2, set.Len())

	out, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"date":"2025-06-02","availableTimeSlots":["10:30 - 12:00","12:15 - 13:45"]},
		  {"date":"2025-06-03","availableTimeSlots":["21:00 - 22:30"]}]`,
		string(out))
}

func TestSlotSet_JSONRejectsUnknownLabel(t *testing.T) {
	var set SlotSet
	err := json.Unmarshal([]byte(`[{"date":"2025-06-02","availableTimeSlots":["09:00 - 10:00"]}]`), &set)
	assert.ErrorIs(t, err, ErrUnknownTimeSlot)
}

func TestSlotSet_Scan(t *testing.T) {
	var set SlotSet
	require.NoError(t, set.Scan([]byte(`[{"date":"2025-06-02","availableTimeSlots":[]}]`)))
	day, ok := set.Day(june2)
	assert.True(t, ok)
	assert.Zero(t, day.Count())

	require.NoError(t, set.Scan(nil))
	assert.Zero(t, set.Len())
}
