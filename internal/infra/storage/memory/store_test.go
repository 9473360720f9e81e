package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
)

var june2 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestTableRepository_UpdateSlotsVersioning(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository()
	require.NoError(t, repo.Upsert(ctx, &domain.Table{LocationID: "L1", TableNumber: "T1", GuestCapacity: 4}))

	table, err := repo.Get(ctx, "L1", "T1")
	require.NoError(t, err)

	slots := table.Slots.Clone()
	slots.Put(june2, 0)

	v, err := repo.UpdateSlots(ctx, "L1", "T1", slots, table.Version)
	require.NoError(t, err)
	assert.Equal(t, table.Version+1, v)

	_, err = repo.UpdateSlots(ctx, "L1", "T1", slots, table.Version)
	assert.ErrorIs(t, err, tableRepo.ErrVersionConflict)

	_, err = repo.UpdateSlots(ctx, "L1", "T9", slots, 1)
	assert.ErrorIs(t, err, tableRepo.ErrTableNotFound)
}

func TestTableRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository()
	require.NoError(t, repo.Upsert(ctx, &domain.Table{
		LocationID: "L1", TableNumber: "T1", GuestCapacity: 4,
		Slots: domain.NewSlotSet(domain.DateSlot{Date: june2, Free: domain.FullMask}),
	}))

	table, err := repo.Get(ctx, "L1", "T1")
	require.NoError(t, err)
	table.Slots.Take(june2, 0)

	again, err := repo.Get(ctx, "L1", "T1")
	require.NoError(t, err)
	assert.True(t, again.Slots.Has(june2, 0))
}

func TestReservationRepository_ListByWaiter(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()

	add := func(id, table string, from domain.TimeSlot, status domain.ReservationStatus) {
		_, err := repo.Create(ctx, &domain.Reservation{
			ID: id, UserID: "alice@x.com", LocationID: "L1", TableNumber: table,
			Date: june2, TimeFrom: from.Start, TimeTo: from.End,
			GuestsNumber: 2, Status: status, WaiterEmail: "w1@x.com",
		})
		require.NoError(t, err)
	}
	slots := domain.AllTimeSlots()
	add("r1", "T1", slots[0], domain.StatusReserved)
	add("r2", "T2", slots[1], domain.StatusReserved)
	add("r3", "T1", slots[2], domain.StatusCancelled)

	got, err := repo.ListByWaiter(ctx, domain.ReservationFilter{
		WaiterEmail: "w1@x.com",
		Date:        &june2,
		TimeFrom:    domain.AnyTime,
		TableNumber: domain.AnyTable,
		Statuses:    domain.ActiveStatuses,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r2", got[1].ID)

	got, err = repo.ListByWaiter(ctx, domain.ReservationFilter{WaiterEmail: "w1@x.com", TableNumber: "T1"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReservationRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()

	_, err := repo.Create(ctx, &domain.Reservation{ID: "r1", UserID: domain.VisitorUserID})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Delete(ctx, "r1", 7), reservationRepo.ErrVersionConflict)
	require.NoError(t, repo.Delete(ctx, "r1", 1))

	_, err = repo.GetByID(ctx, "r1")
	assert.ErrorIs(t, err, reservationRepo.ErrReservationNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "r1", 1), reservationRepo.ErrReservationNotFound)
}

func TestReservationRepository_WritesCompareVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()

	created, err := repo.Create(ctx, &domain.Reservation{ID: "r1", UserID: "alice@x.com", GuestsNumber: 2, Status: domain.StatusReserved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	stale, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, "r1", domain.StatusCancelled, 1))

	stale.GuestsNumber = 3
	assert.ErrorIs(t, repo.Update(ctx, stale), reservationRepo.ErrVersionConflict)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "r1", domain.StatusInProgress, 1), reservationRepo.ErrVersionConflict)

	stored, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Equal(t, 2, stored.GuestsNumber)
	assert.Equal(t, int64(2), stored.Version)

	stored.GuestsNumber = 4
	require.NoError(t, repo.Update(ctx, stored))
	assert.Equal(t, int64(3), stored.Version)
}
