package modify_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	"github.com/m04kA/SMC-ReservationService/internal/service/assignment"
)

// UseCase use case для изменения времени или числа гостей бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	availability    AvailabilityStore
	waiters         WaiterSelector
	locker          Locker
	metrics         Metrics
	policy          domain.Policy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	availability AvailabilityStore,
	waiters WaiterSelector,
	locker Locker,
	metrics Metrics,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		availability:    availability,
		waiters:         waiters,
		locker:          locker,
		metrics:         metrics,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// SetTimeProvider подменяет источник текущего времени (часовой пояс ресторана, тесты)
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}

// Execute изменяет бронирование.
//
// При смене времени наименее загруженный официант выбирается до любых изменений; после
// сохранения старая пара (столик, официант) освобождается, новая занимается.
// Ошибки этих шагов попадают в Response.Warnings.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyReservation: reservation=%s, user=%s, time=%s-%s",
		req.ReservationID, req.Actor.Email, req.TimeFrom, req.TimeTo)

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ModifyReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирование
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ModifyReservation: reservation id=%s not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ModifyReservation: failed to get reservation id=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Права, статус, срок
	if !res.IsParticipant(req.Actor.Email) {
		uc.logger.Warn("ModifyReservation: user=%s is not a participant of reservation id=%s", req.Actor.Email, res.ID)
		return nil, ErrForbidden
	}
	if res.Status != domain.StatusReserved {
		uc.logger.Warn("ModifyReservation: reservation id=%s has status %s", res.ID, res.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrNotModifiable, res.Status)
	}
	now := uc.timeProvider.Now()
	if err := validateModifyWindow(res, now, uc.policy.ModifyCutoffMinutes); err != nil {
		uc.logger.Warn("ModifyReservation: reservation id=%s: %v", res.ID, err)
		return nil, err
	}

	oldSlot, ok := res.TimeSlot()
	if !ok {
		uc.logger.Error("ModifyReservation: reservation id=%s has non-catalog time %s-%s", res.ID, res.TimeFrom, res.TimeTo)
		return nil, fmt.Errorf("%w: stored time %s-%s is not a catalog slot", ErrInternal, res.TimeFrom, res.TimeTo)
	}

	// 4. Вместимость столика
	table, err := uc.tableRepo.Get(ctx, res.LocationID, res.TableNumber)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("ModifyReservation: table %s of reservation id=%s not found", res.TableKey(), res.ID)
			return nil, ErrTableNotFound
		}
		uc.logger.Error("ModifyReservation: failed to get table %s: %v", res.TableKey(), err)
		return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
	}
	updated := *res
	if req.GuestsNumber != nil {
		if !table.Fits(*req.GuestsNumber) {
			uc.logger.Warn("ModifyReservation: %d guests exceed capacity %d", *req.GuestsNumber, table.GuestCapacity)
			return nil, fmt.Errorf("%w: table %s seats up to %d guests", ErrCapacityExceeded, table.TableNumber, table.GuestCapacity)
		}
		updated.GuestsNumber = *req.GuestsNumber
	}

	newSlot := oldSlot
	if !req.TimeFrom.IsZero() {
		slot, ok := domain.TimeSlotFromRange(req.TimeFrom, req.TimeTo)
		if !ok {
			uc.logger.Warn("ModifyReservation: %s-%s is not a catalog slot", req.TimeFrom, req.TimeTo)
			return nil, fmt.Errorf("%w: %s - %s", ErrInvalidTimeSlot, req.TimeFrom, req.TimeTo)
		}
		newSlot = slot
	}

	// 5. Только гости
	if newSlot == oldSlot {
		if err := uc.reservationRepo.Update(ctx, &updated); err != nil {
			return nil, uc.updateError(res.ID, err)
		}
		uc.metrics.IncReservationEvent("modified")
		uc.logger.Info("ModifyReservation: reservation id=%s guests=%d", res.ID, updated.GuestsNumber)
		return toResponse(&updated, oldSlot, nil), nil
	}

	// 6. Смена времени
	if err := validateNewTime(res.Date, newSlot, now, uc.policy.SameDayNoticeMinutes); err != nil {
		uc.logger.Warn("ModifyReservation: reservation id=%s: %v", res.ID, err)
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, "booking:"+table.Key().String())
	if err != nil {
		uc.logger.Error("ModifyReservation: failed to lock table %s: %v", table.Key(), err)
		return nil, fmt.Errorf("%w: failed to lock table: %v", ErrInternal, err)
	}
	defer unlock()

	free, err := uc.availability.IsFree(ctx, table.Key(), res.Date, newSlot.Label())
	if err != nil {
		uc.logger.Error("ModifyReservation: failed to check table slot: %v", err)
		return nil, fmt.Errorf("%w: failed to check table slot: %v", ErrInternal, err)
	}
	if !free {
		uc.logger.Warn("ModifyReservation: slot %s is taken for table %s", newSlot.Label(), table.Key())
		return nil, ErrSlotNotAvailable
	}

	waiterEmail, err := uc.waiters.SelectWaiter(ctx, res.LocationID, res.Date, newSlot.Start)
	if err != nil {
		uc.logger.Warn("ModifyReservation: waiter selection failed: %v", err)
		return nil, mapAssignmentError(err)
	}

	updated.TimeFrom = newSlot.Start
	updated.TimeTo = newSlot.End
	updated.WaiterEmail = waiterEmail
	if err := uc.reservationRepo.Update(ctx, &updated); err != nil {
		return nil, uc.updateError(res.ID, err)
	}

	// 7. Перестановка слотов
	warnings := uc.moveSlots(ctx, res, &updated, oldSlot, newSlot)

	uc.metrics.IncReservationEvent("modified")
	uc.logger.Info("ModifyReservation: reservation id=%s moved %s -> %s, waiter %s -> %s, warnings=%d",
		res.ID, oldSlot, newSlot, res.WaiterEmail, waiterEmail, len(warnings))
	return toResponse(&updated, newSlot, warnings), nil
}

func (uc *UseCase) moveSlots(ctx context.Context, old, updated *domain.Reservation, oldSlot, newSlot domain.TimeSlot) []string {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		uc.logger.Error("ModifyReservation: reservation id=%s: %s", old.ID, msg)
		warnings = append(warnings, msg)
	}

	if err := uc.availability.Release(ctx, old.TableKey(), old.Date, oldSlot.Label()); err != nil {
		warn("table %s slot %s was not released: %v", old.TableNumber, oldSlot, err)
	}
	if old.WaiterEmail != "" {
		if err := uc.availability.Release(ctx, old.WaiterKey(), old.Date, oldSlot.Label()); err != nil {
			warn("waiter %s slot %s was not released: %v", old.WaiterEmail, oldSlot, err)
		}
	}
	if err := uc.availability.Reserve(ctx, updated.TableKey(), updated.Date, newSlot.Label()); err != nil {
		warn("table %s slot %s was not reserved: %v", updated.TableNumber, newSlot, err)
	}
	if err := uc.availability.Reserve(ctx, updated.WaiterKey(), updated.Date, newSlot.Label()); err != nil {
		warn("waiter %s slot %s was not reserved: %v", updated.WaiterEmail, newSlot, err)
	}
	return warnings
}

// updateError переводит ошибку записи. Конфликт версии означает, что бронирование
// отменили или изменили после чтения; слоты в этом случае не трогаются.
func (uc *UseCase) updateError(id string, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrVersionConflict):
		uc.logger.Warn("ModifyReservation: reservation id=%s was changed concurrently", id)
		return fmt.Errorf("%w: reservation was changed concurrently, reload it", ErrNotModifiable)
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		uc.logger.Warn("ModifyReservation: reservation id=%s disappeared before update", id)
		return ErrReservationNotFound
	default:
		uc.logger.Error("ModifyReservation: failed to update reservation id=%s: %v", id, err)
		return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
	}
}

func mapAssignmentError(err error) error {
	switch {
	case errors.Is(err, assignment.ErrNoWaiters):
		return ErrNoWaiters
	case errors.Is(err, assignment.ErrNoWaiterAvailable):
		return ErrNoWaiterAvailable
	case errors.Is(err, assignment.ErrInvalidTimeSlot):
		return ErrInvalidTimeSlot
	default:
		return fmt.Errorf("%w: failed to select waiter: %v", ErrInternal, err)
	}
}
