package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
)

const sample = `
[[locations]]
id = "L1"
address = "48 Rustaveli Avenue"

[[tables]]
location_id = "L1"
table_number = "T1"
guest_capacity = 4

  [[tables.slots]]
  date = "2025-06-02"
  time_slots = ["12:15 - 13:45", "10:30 - 12:00"]

[[waiters]]
email = "w1@x.com"
name = "Nino"
location_id = "L1"

  [[waiters.slots]]
  date = "today+1"
  all = true
`

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	f, err := Load(path)
	require.NoError(t, err)

	locations := memory.NewLocationRepository()
	tables := memory.NewTableRepository()
	waiters := memory.NewWaiterRepository()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, Apply(context.Background(), f, Target{
		Locations: locations,
		Tables:    tables,
		Waiters:   waiters,
	}, now))

	ctx := context.Background()

	loc, err := locations.GetByID(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "48 Rustaveli Avenue", loc.Address)

	table, err := tables.Get(ctx, "L1", "T1")
	require.NoError(t, err)
	day, ok := table.Slots.Day(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, []string{"10:30 - 12:00", "12:15 - 13:45"}, day.Labels())

	waiter, err := waiters.GetByEmail(ctx, "w1@x.com")
	require.NoError(t, err)
	day, ok = waiter.Slots.Day(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 7, day.Count())
}

func TestApply_RejectsUnknownLabel(t *testing.T) {
	f := &File{Tables: []Table{{
		LocationID:    "L1",
		TableNumber:   "T1",
		GuestCapacity: 2,
		Slots:         []DaySlot{{Date: "2025-06-02", TimeSlots: []string{"09:00 - 10:00"}}},
	}}}

	err := Apply(context.Background(), f, Target{
		Locations: memory.NewLocationRepository(),
		Tables:    memory.NewTableRepository(),
		Waiters:   memory.NewWaiterRepository(),
	}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidSeed)
}
