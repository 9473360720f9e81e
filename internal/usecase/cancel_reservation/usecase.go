package cancel_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	availability    AvailabilityStore
	metrics         Metrics
	policy          domain.Policy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	availability AvailabilityStore,
	metrics Metrics,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		availability:    availability,
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

// Execute отменяет бронирование и возвращает слоты столика и официанта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%s, user=%s", req.ReservationID, req.Actor.Email)

	// 1. Валидация
	if strings.TrimSpace(req.ReservationID) == "" {
		return nil, fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%s not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Права: клиент или назначенный официант
	if !res.IsParticipant(req.Actor.Email) {
		uc.logger.Warn("CancelReservation: user=%s is not a participant of reservation id=%s", req.Actor.Email, res.ID)
		return nil, ErrForbidden
	}

	// 4. Статус
	if res.Status != domain.StatusReserved {
		uc.logger.Warn("CancelReservation: reservation id=%s has status %s", res.ID, res.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, res.Status)
	}

	// 5. Срок отмены
	now := uc.timeProvider.Now()
	deadline := res.StartsAt(now.Location()).Add(-time.Duration(uc.policy.CancelCutoffMinutes) * time.Minute)
	if !now.Before(deadline) {
		uc.logger.Warn("CancelReservation: reservation id=%s starts at %s, cancellation closed", res.ID, res.TimeFrom)
		return nil, fmt.Errorf("%w: cancellation is allowed up to %d minutes before start", ErrTooLate, uc.policy.CancelCutoffMinutes)
	}

	// 6. Гостевое бронирование удаляем, клиентское помечаем отмененным.
	// Обе записи проверяют версию: если бронирование изменили после чтения,
	// слоты не трогаем.
	resp := &Response{ID: res.ID, Status: domain.StatusCancelled}
	if res.IsVisitor() {
		if err := uc.reservationRepo.Delete(ctx, res.ID, res.Version); err != nil {
			return nil, uc.writeError(res.ID, "delete reservation", err)
		}
		resp.Deleted = true
	} else {
		if err := uc.reservationRepo.UpdateStatus(ctx, res.ID, domain.StatusCancelled, res.Version); err != nil {
			return nil, uc.writeError(res.ID, "update status", err)
		}
	}

	// 7. Возвращаем слоты
	resp.Warnings = uc.releaseSlots(ctx, res)

	uc.metrics.IncReservationEvent("cancelled")
	uc.logger.Info("CancelReservation: reservation id=%s cancelled, deleted=%t, warnings=%d", res.ID, resp.Deleted, len(resp.Warnings))
	return resp, nil
}

func (uc *UseCase) writeError(id, step string, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrVersionConflict):
		uc.logger.Warn("CancelReservation: reservation id=%s was changed concurrently", id)
		return fmt.Errorf("%w: reservation was changed concurrently, reload it", ErrNotCancellable)
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		uc.logger.Warn("CancelReservation: reservation id=%s disappeared before %s", id, step)
		return ErrReservationNotFound
	default:
		uc.logger.Error("CancelReservation: failed to %s id=%s: %v", step, id, err)
		return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
	}
}

func (uc *UseCase) releaseSlots(ctx context.Context, res *domain.Reservation) []string {
	slot, ok := res.TimeSlot()
	if !ok {
		uc.logger.Error("CancelReservation: reservation id=%s has non-catalog time %s-%s", res.ID, res.TimeFrom, res.TimeTo)
		return []string{fmt.Sprintf("time %s-%s is not a known slot, nothing released", res.TimeFrom, res.TimeTo)}
	}

	var warnings []string
	if err := uc.availability.Release(ctx, res.TableKey(), res.Date, slot.Label()); err != nil {
		uc.logger.Error("CancelReservation: failed to release table slot for reservation id=%s: %v", res.ID, err)
		warnings = append(warnings, fmt.Sprintf("table %s slot %s was not released: %v", res.TableNumber, slot.Label(), err))
	}
	if res.WaiterEmail != "" {
		if err := uc.availability.Release(ctx, res.WaiterKey(), res.Date, slot.Label()); err != nil {
			uc.logger.Error("CancelReservation: failed to release waiter slot for reservation id=%s: %v", res.ID, err)
			warnings = append(warnings, fmt.Sprintf("waiter %s slot %s was not released: %v", res.WaiterEmail, slot.Label(), err))
		}
	}
	return warnings
}
