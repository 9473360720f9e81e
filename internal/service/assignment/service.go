package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service выбирает официанта для нового бронирования
type Service struct {
	waiters WaiterRepository
	logger  Logger
}

// NewService создает сервис назначения официантов
func NewService(waiters WaiterRepository, logger Logger) *Service {
	return &Service{
		waiters: waiters,
		logger:  logger,
	}
}

// SelectWaiter выбирает наименее загруженного официанта, свободного в слот,
// начинающийся в slotStart. Равенство загрузки решает дальность до ближайшего
// свободного слота, затем порядок по email.
func (s *Service) SelectWaiter(ctx context.Context, locationID string, date time.Time, slotStart types.TimeString) (string, error) {
	slot, ok := domain.FindTimeSlotByStart(slotStart)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidTimeSlot, slotStart)
	}
	idx, _ := domain.TimeSlotIndex(slot.Label())

	waiters, err := s.waiters.ListByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("SelectWaiter: failed to list waiters, location_id=%s: %v", locationID, err)
		return "", fmt.Errorf("%w: failed to list waiters: %v", ErrInternal, err)
	}
	if len(waiters) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoWaiters, locationID)
	}

	candidates := make([]candidate, 0, len(waiters))
	for _, w := range waiters {
		mask, _ := w.Slots.Day(date)
		if !mask.Has(idx) {
			continue
		}
		candidates = append(candidates, candidate{email: w.Email, free: mask})
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: location=%s date=%s slot=%s",
			ErrNoWaiterAvailable, locationID, domain.DateKey(date), slot.Label())
	}

	email := pick(candidates, idx)
	s.logger.Info("SelectWaiter: location_id=%s, date=%s, slot=%s, candidates=%d, selected=%s",
		locationID, domain.DateKey(date), slot.Label(), len(candidates), email)
	return email, nil
}

type candidate struct {
	email string
	free  domain.SlotMask
}

// pick выбирает официанта с максимумом свободных слотов; при равенстве
// побеждает тот, у кого ближайшие свободные слоты дальше от целевого.
// Точные совпадения решаются порядком перечисления.
func pick(candidates []candidate, target int) string {
	if len(candidates) == 1 {
		return candidates[0].email
	}

	maxFree := -1
	for _, c := range candidates {
		if n := c.free.Count(); n > maxFree {
			maxFree = n
		}
	}

	leastBusy := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.free.Count() == maxFree {
			leastBusy = append(leastBusy, c)
		}
	}
	if len(leastBusy) == 1 {
		return leastBusy[0].email
	}

	best, bestScore := leastBusy[0].email, -1
	for _, c := range leastBusy {
		if score := farthestDistance(c.free, target); score > bestScore {
			best, bestScore = c.email, score
		}
	}
	return best
}

// farthestDistance возвращает большее из расстояний до ближайшего свободного
// слота слева и справа от target; если с какой-то стороны свободных нет,
// расстояние равно длине каталога.
func farthestDistance(free domain.SlotMask, target int) int {
	left, right := domain.TimeSlotCount, domain.TimeSlotCount

	for i := target - 1; i >= 0; i-- {
		if free.Has(i) {
			left = target - i
			break
		}
	}
	for i := target + 1; i < domain.TimeSlotCount; i++ {
		if free.Has(i) {
			right = i - target
			break
		}
	}

	if left > right {
		return left
	}
	return right
}
