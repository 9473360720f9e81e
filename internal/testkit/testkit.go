// Package testkit собирает in-memory окружение для тестов usecase и сервисов.
package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/internal/service/assignment"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
	"github.com/m04kA/SMC-ReservationService/pkg/keylock"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

// Clock управляемые часы
type Clock struct {
	T time.Time
}

// Now возвращает текущее значение часов
func (c *Clock) Now() time.Time {
	return c.T
}

// Events считает события бронирований
type Events struct {
	Counts map[string]int
}

// IncReservationEvent увеличивает счетчик события
func (e *Events) IncReservationEvent(event string) {
	if e.Counts == nil {
		e.Counts = make(map[string]int)
	}
	e.Counts[event]++
}

// Env хранилища, сервисы и часы одного теста
type Env struct {
	Clock        *Clock
	Events       *Events
	Logger       *logger.Logger
	Locker       *keylock.LocalLocker
	Locations    *memory.LocationRepository
	Tables       *memory.TableRepository
	Waiters      *memory.WaiterRepository
	Reservations *memory.ReservationRepository
	Availability *availability.Store
	Assignment   *assignment.Service
	Policy       domain.Policy
}

// New создает пустое окружение с часами, установленными в now
func New(now time.Time) *Env {
	e := &Env{
		Clock:        &Clock{T: now},
		Events:       &Events{},
		Logger:       logger.NewNop(),
		Locker:       keylock.NewLocalLocker(),
		Locations:    memory.NewLocationRepository(),
		Tables:       memory.NewTableRepository(),
		Waiters:      memory.NewWaiterRepository(),
		Reservations: memory.NewReservationRepository(),
		Policy:       domain.DefaultPolicy(),
	}
	e.Availability = availability.NewStore(e.Tables, e.Waiters, e.Locker, e.Policy.HorizonDays, e.Logger,
		availability.WithTimeProvider(e.Clock))
	e.Assignment = assignment.NewService(e.Waiters, e.Logger)
	return e
}

// Day собирает DateSlot из меток слотов
func Day(t testing.TB, date time.Time, labels ...string) domain.DateSlot {
	t.Helper()
	m, err := domain.MaskFromLabels(labels)
	require.NoError(t, err)
	return domain.DateSlot{Date: date, Free: m}
}

// AddLocation добавляет локацию
func (e *Env) AddLocation(t testing.TB, id, address string) {
	t.Helper()
	require.NoError(t, e.Locations.Upsert(context.Background(), &domain.Location{ID: id, Address: address}))
}

// AddTable добавляет столик с явным расписанием
func (e *Env) AddTable(t testing.TB, locationID, number string, capacity int, days ...domain.DateSlot) {
	t.Helper()
	require.NoError(t, e.Tables.Upsert(context.Background(), &domain.Table{
		LocationID:    locationID,
		TableNumber:   number,
		GuestCapacity: capacity,
		Slots:         domain.NewSlotSet(days...),
	}))
}

// AddWaiter добавляет официанта
func (e *Env) AddWaiter(t testing.TB, email, locationID string, days ...domain.DateSlot) {
	t.Helper()
	require.NoError(t, e.Waiters.Upsert(context.Background(), &domain.Waiter{
		Email:      email,
		Name:       email,
		LocationID: locationID,
		Slots:      domain.NewSlotSet(days...),
	}))
}

// FreeLabels свободные слоты владельца на дату
func (e *Env) FreeLabels(t testing.TB, owner domain.OwnerKey, date time.Time) []string {
	t.Helper()
	slots, err := e.Availability.FreeSlots(context.Background(), owner, date)
	require.NoError(t, err)

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Label())
	}
	return out
}
