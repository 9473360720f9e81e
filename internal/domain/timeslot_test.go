package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func labels(slots []TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label()
	}
	return out
}

func TestAllTimeSlots(t *testing.T) {
	all := AllTimeSlots()
	require.Len(t, all, TimeSlotCount)
	assert.Equal(t, "10:30 - 12:00", all[0].Label())
	assert.Equal(t, "21:00 - 22:30", all[len(all)-1].Label())

	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Start.IsBefore(all[i].Start), "catalog must be ordered")
	}

	all[0] = TimeSlot{}
	assert.Equal(t, "10:30 - 12:00", AllTimeSlots()[0].Label(), "callers must not mutate the catalog")
}

func TestTimeSlotsAtOrAfter(t *testing.T) {
	assert.Len(t, TimeSlotsAtOrAfter(""), TimeSlotCount)
	assert.Len(t, TimeSlotsAtOrAfter("00:00"), TimeSlotCount)

	assert.Equal(t,
		[]string{"17:30 - 19:00", "19:15 - 20:45", "21:00 - 22:30"},
		labels(TimeSlotsAtOrAfter("17:30")))

	assert.Equal(t,
		[]string{"19:15 - 20:45", "21:00 - 22:30"},
		labels(TimeSlotsAtOrAfter("17:31")))

	assert.Empty(t, TimeSlotsAtOrAfter("23:00"))
}

func TestTimeSlotIndex(t *testing.T) {
	i, ok := TimeSlotIndex("14:00 - 15:30")
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = TimeSlotIndex("14:00-15:30")
	assert.False(t, ok)
}

func TestFindTimeSlotByStart(t *testing.T) {
	s, ok := FindTimeSlotByStart("12:15")
	require.True(t, ok)
	assert.Equal(t, types.TimeString("13:45"), s.End)

	_, ok = FindTimeSlotByStart("12:00")
	assert.False(t, ok)
}

func TestTimeSlotFromRange(t *testing.T) {
	_, ok := TimeSlotFromRange("10:30", "12:00")
	assert.True(t, ok)

	_, ok = TimeSlotFromRange("10:30", "12:15")
	assert.False(t, ok)
}
