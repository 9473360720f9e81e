package get_available_tables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/testkit"
)

var june2 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T, now time.Time) (*testkit.Env, *UseCase) {
	t.Helper()
	env := testkit.New(now)
	env.AddLocation(t, "L1", "")
	env.AddTable(t, "L1", "T1", 2, testkit.Day(t, june2, "10:30 - 12:00", "19:15 - 20:45"))
	env.AddTable(t, "L1", "T2", 6)                         // default schedule
	env.AddTable(t, "L1", "T3", 4, testkit.Day(t, june2)) // fully booked

	uc := NewUseCase(env.Locations, env.Tables, env.Availability, env.Policy, env.Logger)
	uc.timeProvider = env.Clock
	return env, uc
}

func tableNumbers(resp *Response) []string {
	out := make([]string, 0, len(resp.Tables))
	for _, tbl := range resp.Tables {
		out = append(out, tbl.TableNumber)
	}
	return out
}

func TestExecute_FiltersByCapacityAndTime(t *testing.T) {
	ctx := context.Background()
	_, uc := setup(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, tableNumbers(resp))
	assert.Equal(t, domain.UnknownLocationAddress, resp.Tables[0].LocationAddress)
	assert.Len(t, resp.Tables[1].AvailableSlots, domain.TimeSlotCount)

	resp, err = uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, Guests: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"T2"}, tableNumbers(resp))

	resp, err = uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, Guests: 2, Time: "19:00"})
	require.NoError(t, err)
	require.Len(t, resp.Tables, 2)
	assert.Equal(t, []string{"19:15 - 20:45"}, resp.Tables[0].AvailableSlots)
	assert.Equal(t, []string{"19:15 - 20:45", "21:00 - 22:30"}, resp.Tables[1].AvailableSlots)

	resp, err = uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, AnyCapacity: true, Time: "21:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"T2"}, tableNumbers(resp))
}

func TestExecute_TodayDropsStartedSlots(t *testing.T) {
	ctx := context.Background()
	env, uc := setup(t, time.Date(2025, 6, 2, 12, 15, 0, 0, time.UTC))

	// слот, начинающийся ровно сейчас, еще предлагается
	resp, err := uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, Guests: 5})
	require.NoError(t, err)
	require.Len(t, resp.Tables, 1)
	assert.Equal(t, []string{
		"12:15 - 13:45", "14:00 - 15:30", "15:45 - 17:15", "17:30 - 19:00", "19:15 - 20:45", "21:00 - 22:30",
	}, resp.Tables[0].AvailableSlots)

	env.Clock.T = time.Date(2025, 6, 2, 12, 16, 0, 0, time.UTC)
	resp, err = uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, Guests: 5})
	require.NoError(t, err)
	assert.Equal(t, "14:00 - 15:30", resp.Tables[0].AvailableSlots[0])

	_, err = uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, Guests: 2, Time: "11:00"})
	assert.ErrorIs(t, err, ErrTimePassed)
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()
	_, uc := setup(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	_, err := uc.Execute(ctx, &Request{LocationID: "", Date: june2, Guests: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, Guests: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{LocationID: "L1", Date: june2.AddDate(0, 0, 31), Guests: 2})
	assert.ErrorIs(t, err, ErrDateOutOfRange)

	_, err = uc.Execute(ctx, &Request{LocationID: "L9", Date: june2, Guests: 2})
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = uc.Execute(ctx, &Request{LocationID: "L1", Date: june2, Guests: 10})
	assert.ErrorIs(t, err, ErrNoTablesFound)
}
