package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

var june2 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func mask(t *testing.T, labels ...string) domain.SlotMask {
	t.Helper()
	m, err := domain.MaskFromLabels(labels)
	require.NoError(t, err)
	return m
}

func addWaiter(t *testing.T, repo *memory.WaiterRepository, email string, free domain.SlotMask) {
	t.Helper()
	require.NoError(t, repo.Upsert(context.Background(), &domain.Waiter{
		Email: email, LocationID: "L1",
		Slots: domain.NewSlotSet(domain.DateSlot{Date: june2, Free: free}),
	}))
}

func TestSelectWaiter_LeastBusyWins(t *testing.T) {
	repo := memory.NewWaiterRepository()
	addWaiter(t, repo, "w1@x.com", mask(t, "10:30 - 12:00", "12:15 - 13:45", "14:00 - 15:30"))
	addWaiter(t, repo, "w2@x.com", mask(t, "10:30 - 12:00"))

	svc := NewService(repo, logger.NewNop())
	email, err := svc.SelectWaiter(context.Background(), "L1", june2, "10:30")
	require.NoError(t, err)
	assert.Equal(t, "w1@x.com", email)
}

func TestSelectWaiter_SingleCandidate(t *testing.T) {
	repo := memory.NewWaiterRepository()
	addWaiter(t, repo, "w1@x.com", mask(t, "12:15 - 13:45"))
	addWaiter(t, repo, "w2@x.com", mask(t, "10:30 - 12:00", "14:00 - 15:30"))

	svc := NewService(repo, logger.NewNop())
	email, err := svc.SelectWaiter(context.Background(), "L1", june2, "12:15")
	require.NoError(t, err)
	assert.Equal(t, "w1@x.com", email)
}

func TestSelectWaiter_Errors(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewWaiterRepository()
	svc := NewService(repo, logger.NewNop())

	_, err := svc.SelectWaiter(ctx, "L1", june2, "10:30")
	assert.ErrorIs(t, err, ErrNoWaiters)

	addWaiter(t, repo, "w1@x.com", mask(t, "12:15 - 13:45"))

	_, err = svc.SelectWaiter(ctx, "L1", june2, "10:30")
	assert.ErrorIs(t, err, ErrNoWaiterAvailable)

	_, err = svc.SelectWaiter(ctx, "L1", june2, "11:00")
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// no shift on another date
	_, err = svc.SelectWaiter(ctx, "L1", june2.AddDate(0, 0, 1), "12:15")
	assert.ErrorIs(t, err, ErrNoWaiterAvailable)
}

func TestSelectWaiter_LeastBusyWinsOverBusierWaiter(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewWaiterRepository()
	addWaiter(t, repo, "w1@x.com", mask(t, "10:30 - 12:00", "12:15 - 13:45"))
	addWaiter(t, repo, "w2@x.com", mask(t, "10:30 - 12:00", "12:15 - 13:45", "14:00 - 15:30", "17:30 - 19:00", "19:15 - 20:45"))
	svc := NewService(repo, logger.NewNop())

	email, err := svc.SelectWaiter(ctx, "L1", june2, "12:15")
	require.NoError(t, err)
	assert.Equal(t, "w2@x.com", email)
}

type failingWaiters struct{}

func (failingWaiters) ListByLocation(context.Context, string) ([]*domain.Waiter, error) {
	return nil, errors.New("connection refused")
}

func TestSelectWaiter_RepositoryError(t *testing.T) {
	svc := NewService(failingWaiters{}, logger.NewNop())
	_, err := svc.SelectWaiter(context.Background(), "L1", june2, "10:30")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestPick(t *testing.T) {
	// index 0..6; bits are catalog positions
	bitsOf := func(idx ...int) domain.SlotMask {
		var m domain.SlotMask
		for _, i := range idx {
			m = m.With(i)
		}
		return m
	}

	tests := []struct {
		name       string
		candidates []candidate
		target     int
		want       string
	}{
		{
			name: "more free slots wins",
			candidates: []candidate{
				{email: "a", free: bitsOf(1)},
				{email: "b", free: bitsOf(0, 1, 2)},
			},
			target: 1,
			want:   "b",
		},
		{
			name: "equal distance keeps first",
			candidates: []candidate{
				{email: "a", free: bitsOf(0)},
				{email: "b", free: bitsOf(2)},
			},
			target: 1,
			want:   "a",
		},
		{
			name: "strictly farther wins",
			candidates: []candidate{
				{email: "a", free: bitsOf(2, 4)},
				{email: "b", free: bitsOf(0, 6)},
			},
			target: 3,
			want:   "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pick(tt.candidates, tt.target))
		})
	}
}

func TestFarthestDistance(t *testing.T) {
	var m domain.SlotMask
	assert.Equal(t, domain.TimeSlotCount, farthestDistance(m, 3))

	m = m.With(2).With(5)
	assert.Equal(t, 2, farthestDistance(m, 3))
}
