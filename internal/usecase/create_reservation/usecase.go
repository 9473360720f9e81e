package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	locationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/location"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	waiterRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/waiter"
	"github.com/m04kA/SMC-ReservationService/internal/service/assignment"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	locationRepo    LocationRepository
	tableRepo       TableRepository
	waiterRepo      WaiterRepository
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
	locationRepo LocationRepository,
	tableRepo TableRepository,
	waiterRepo WaiterRepository,
	availability AvailabilityStore,
	waiters WaiterSelector,
	locker Locker,
	metrics Metrics,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		locationRepo:    locationRepo,
		tableRepo:       tableRepo,
		waiterRepo:      waiterRepo,
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

// Execute создает бронирование от имени клиента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, location=%s, table=%s, date=%s, time=%s-%s, guests=%d",
		req.UserID, req.LocationID, req.TableNumber, domain.DateKey(req.Date), req.TimeFrom, req.TimeTo, req.GuestsNumber)

	b := req.toBooking()
	return uc.create(ctx, "CreateReservation", &b)
}

// ExecuteByWaiter создает бронирование официантом для клиента или гостя без аккаунта.
// Обслуживающий официант выбирается так же, как для клиента: наименее загруженный.
func (uc *UseCase) ExecuteByWaiter(ctx context.Context, req *WaiterRequest) (*Response, error) {
	uc.logger.Info("CreateReservationByWaiter: waiter=%s, client_type=%s, location=%s, table=%s, date=%s, time=%s-%s",
		req.WaiterEmail, req.ClientType, req.LocationID, req.TableNumber, domain.DateKey(req.Date), req.TimeFrom, req.TimeTo)

	// 1. Тип клиента и имя
	b, err := waiterRequestToBooking(req)
	if err != nil {
		uc.logger.Warn("CreateReservationByWaiter: validation failed: %v", err)
		return nil, err
	}

	// 2. Официант работает в этой локации
	waiter, err := uc.waiterRepo.GetByEmail(ctx, req.WaiterEmail)
	if err != nil {
		if errors.Is(err, waiterRepo.ErrWaiterNotFound) {
			uc.logger.Warn("CreateReservationByWaiter: %s is not a waiter", req.WaiterEmail)
			return nil, fmt.Errorf("%w: user is not a waiter", ErrForbidden)
		}
		uc.logger.Error("CreateReservationByWaiter: failed to get waiter %s: %v", req.WaiterEmail, err)
		return nil, fmt.Errorf("%w: failed to get waiter: %v", ErrInternal, err)
	}
	if waiter.LocationID != req.LocationID {
		uc.logger.Warn("CreateReservationByWaiter: waiter %s works at %s, not %s",
			req.WaiterEmail, waiter.LocationID, req.LocationID)
		return nil, fmt.Errorf("%w: waiter can only book tables at own location", ErrForbidden)
	}

	return uc.create(ctx, "CreateReservationByWaiter", &b)
}

func (uc *UseCase) create(ctx context.Context, op string, b *booking) (*Response, error) {
	// 1. Валидация входных данных
	slot, err := validateBooking(b)
	if err != nil {
		uc.logger.Warn("%s: validation failed: %v", op, err)
		return nil, err
	}
	date := domain.DateOnly(b.date)
	label := slot.Label()

	// 2. Окно бронирования
	now := uc.timeProvider.Now()
	if err := validateTiming(date, slot, now, uc.policy); err != nil {
		uc.logger.Warn("%s: timing validation failed: %v", op, err)
		return nil, err
	}

	// 3. Локация
	location, err := uc.locationRepo.GetByID(ctx, b.locationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("%s: location id=%s not found", op, b.locationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("%s: failed to get location id=%s: %v", op, b.locationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 4. Столик и вместимость
	table, err := uc.tableRepo.Get(ctx, b.locationID, b.tableNumber)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("%s: table %s not found at location %s", op, b.tableNumber, b.locationID)
			return nil, ErrTableNotFound
		}
		uc.logger.Error("%s: failed to get table %s: %v", op, b.tableNumber, err)
		return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
	}
	if !table.Fits(b.guests) {
		uc.logger.Warn("%s: %d guests exceed capacity %d of table %s", op, b.guests, table.GuestCapacity, table.TableNumber)
		return nil, fmt.Errorf("%w: table %s seats up to %d guests", ErrCapacityExceeded, table.TableNumber, table.GuestCapacity)
	}

	// 5. Блокировка столика на время проверки и резервирования
	unlock, err := uc.locker.Lock(ctx, "booking:"+table.Key().String())
	if err != nil {
		uc.logger.Error("%s: failed to lock table %s: %v", op, table.Key(), err)
		return nil, fmt.Errorf("%w: failed to lock table: %v", ErrInternal, err)
	}
	defer unlock()

	// 6. Слот столика свободен
	free, err := uc.availability.IsFree(ctx, table.Key(), date, label)
	if err != nil {
		uc.logger.Error("%s: failed to check table slot: %v", op, err)
		return nil, fmt.Errorf("%w: failed to check table slot: %v", ErrInternal, err)
	}
	if !free {
		uc.logger.Warn("%s: slot %s on %s is taken for table %s", op, label, domain.DateKey(date), table.Key())
		return nil, ErrSlotNotAvailable
	}

	// 7. Выбор официанта
	waiterEmail, err := uc.waiters.SelectWaiter(ctx, b.locationID, date, slot.Start)
	if err != nil {
		uc.logger.Warn("%s: waiter selection failed: %v", op, err)
		return nil, mapAssignmentError(err)
	}

	// 8. Сохраняем бронирование
	created, err := uc.reservationRepo.Create(ctx, &domain.Reservation{
		ID:           uuid.NewString(),
		UserID:       b.userID,
		CustomerName: b.customerName,
		LocationID:   b.locationID,
		TableNumber:  b.tableNumber,
		Date:         date,
		TimeFrom:     slot.Start,
		TimeTo:       slot.End,
		GuestsNumber: b.guests,
		Status:       domain.StatusReserved,
		WaiterEmail:  waiterEmail,
	})
	if err != nil {
		uc.logger.Error("%s: failed to save reservation: %v", op, err)
		return nil, fmt.Errorf("%w: failed to save reservation: %v", ErrInternal, err)
	}

	// 9. Занимаем слоты официанта и столика; ошибки не откатывают бронирование
	var warnings []string
	if err := uc.availability.Reserve(ctx, domain.WaiterKey(waiterEmail), date, label); err != nil {
		uc.logger.Error("%s: reservation id=%s saved, but waiter slot was not reserved: %v", op, created.ID, err)
		warnings = append(warnings, fmt.Sprintf("waiter %s slot %s was not reserved: %v", waiterEmail, label, err))
	}
	if err := uc.availability.Reserve(ctx, table.Key(), date, label); err != nil {
		uc.logger.Error("%s: reservation id=%s saved, but table slot was not reserved: %v", op, created.ID, err)
		warnings = append(warnings, fmt.Sprintf("table %s slot %s was not reserved: %v", table.TableNumber, label, err))
	}

	uc.metrics.IncReservationEvent("created")
	uc.logger.Info("%s: successfully created reservation id=%s, waiter=%s", op, created.ID, waiterEmail)

	return toResponse(created, location, slot, warnings), nil
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

