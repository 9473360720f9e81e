package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/testkit"
)

const (
	slotMorning = "10:30 - 12:00"
	slotLunch   = "12:15 - 13:45"
)

var june2 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// setup создает бронирование на 10:30, слот которого уже занят у столика и официанта
func setup(t *testing.T, userID string) (*testkit.Env, *UseCase, *domain.Reservation) {
	t.Helper()
	env := testkit.New(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env.AddLocation(t, "L1", "14 Rustaveli Ave")
	env.AddTable(t, "L1", "T1", 4, testkit.Day(t, june2, slotLunch))
	env.AddWaiter(t, "w1@x.com", "L1", testkit.Day(t, june2, slotLunch))

	res, err := env.Reservations.Create(context.Background(), &domain.Reservation{
		ID: "r1", UserID: userID, LocationID: "L1", TableNumber: "T1", Date: june2,
		TimeFrom: "10:30", TimeTo: "12:00", GuestsNumber: 2,
		Status: domain.StatusReserved, WaiterEmail: "w1@x.com",
	})
	require.NoError(t, err)

	uc := NewUseCase(env.Reservations, env.Availability, env.Events, env.Policy, env.Logger)
	uc.timeProvider = env.Clock
	return env, uc, res
}

func TestExecute_CancelWindow(t *testing.T) {
	ctx := context.Background()
	env, uc, res := setup(t, "alice@x.com")
	alice := domain.Actor{Email: "alice@x.com", Role: domain.RoleCustomer}

	env.Clock.T = time.Date(2025, 6, 2, 10, 20, 0, 0, time.UTC)
	_, err := uc.Execute(ctx, &Request{ReservationID: res.ID, Actor: alice})
	assert.ErrorIs(t, err, ErrTooLate)

	env.Clock.T = time.Date(2025, 6, 2, 9, 59, 0, 0, time.UTC)
	resp, err := uc.Execute(ctx, &Request{ReservationID: res.ID, Actor: alice})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.False(t, resp.Deleted)
	assert.Empty(t, resp.Warnings)

	stored, err := env.Reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	assert.Equal(t, []string{slotMorning, slotLunch}, env.FreeLabels(t, domain.TableKey("L1", "T1"), june2))
	assert.Equal(t, []string{slotMorning, slotLunch}, env.FreeLabels(t, domain.WaiterKey("w1@x.com"), june2))
	assert.Equal(t, 1, env.Events.Counts["cancelled"])

	_, err = uc.Execute(ctx, &Request{ReservationID: res.ID, Actor: alice})
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestExecute_WaiterCancelsVisitorReservation(t *testing.T) {
	ctx := context.Background()
	env, uc, res := setup(t, domain.VisitorUserID)

	resp, err := uc.Execute(ctx, &Request{
		ReservationID: res.ID,
		Actor:         domain.Actor{Email: "w1@x.com", Role: domain.RoleWaiter},
	})
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	_, err = env.Reservations.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, reservationRepo.ErrReservationNotFound)
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()
	_, uc, res := setup(t, "alice@x.com")

	_, err := uc.Execute(ctx, &Request{ReservationID: "", Actor: domain.Actor{Email: "alice@x.com"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ReservationID: "missing", Actor: domain.Actor{Email: "alice@x.com"}})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = uc.Execute(ctx, &Request{ReservationID: res.ID, Actor: domain.Actor{Email: "mallory@x.com"}})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_ReleaseFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	env, uc, _ := setup(t, "alice@x.com")

	res, err := env.Reservations.Create(ctx, &domain.Reservation{
		ID: "r2", UserID: "alice@x.com", LocationID: "L1", TableNumber: "T1", Date: june2,
		TimeFrom: "12:15", TimeTo: "13:45", GuestsNumber: 2,
		Status: domain.StatusReserved, WaiterEmail: "gone@x.com",
	})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{ReservationID: res.ID, Actor: domain.Actor{Email: "alice@x.com"}})
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "gone@x.com")
}

// clockWithHook выполняет hook при первом обращении к часам
type clockWithHook struct {
	*testkit.Clock
	hook func()
}

func (c *clockWithHook) Now() time.Time {
	if c.hook != nil {
		hook := c.hook
		c.hook = nil
		hook()
	}
	return c.Clock.Now()
}

func TestExecute_ReservationChangedAfterRead(t *testing.T) {
	ctx := context.Background()
	env, uc, res := setup(t, "alice@x.com")

	uc.timeProvider = &clockWithHook{
		Clock: env.Clock,
		hook: func() {
			moved, err := env.Reservations.GetByID(ctx, res.ID)
			require.NoError(t, err)
			moved.TimeFrom, moved.TimeTo = "12:15", "13:45"
			require.NoError(t, env.Reservations.Update(ctx, moved))
		},
	}
	tableBefore := env.FreeLabels(t, domain.TableKey("L1", "T1"), june2)

	_, err := uc.Execute(ctx, &Request{ReservationID: res.ID, Actor: domain.Actor{Email: "alice@x.com"}})
	assert.ErrorIs(t, err, ErrNotCancellable)

	stored, err := env.Reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReserved, stored.Status)
	assert.Equal(t, tableBefore, env.FreeLabels(t, domain.TableKey("L1", "T1"), june2))
	assert.Zero(t, env.Events.Counts["cancelled"])
}
