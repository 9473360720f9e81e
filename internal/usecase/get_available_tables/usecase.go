package get_available_tables

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	locationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/location"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// UseCase use case для поиска свободных столиков локации
type UseCase struct {
	locationRepo LocationRepository
	tableRepo    TableRepository
	slots        SlotView
	policy       domain.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	locationRepo LocationRepository,
	tableRepo TableRepository,
	slots SlotView,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		locationRepo: locationRepo,
		tableRepo:    tableRepo,
		slots:        slots,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider подменяет источник текущего времени (часовой пояс ресторана, тесты)
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}

// Execute возвращает столики, у которых на дату остались подходящие слоты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTables: location=%s, date=%s, time=%s, guests=%d",
		req.LocationID, domain.DateKey(req.Date), req.Time, req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTables: validation failed: %v", err)
		return nil, err
	}
	date := domain.DateOnly(req.Date)

	// 2. Дата и время
	now := uc.timeProvider.Now()
	if !domain.WithinHorizon(date, now, uc.policy.HorizonDays) {
		uc.logger.Warn("GetAvailableTables: date %s is out of range", domain.DateKey(date))
		return nil, fmt.Errorf("%w: allowed from today to %d days ahead", ErrDateOutOfRange, uc.policy.HorizonDays)
	}
	today := domain.SameDay(date, now)
	if today && !req.Time.IsZero() && req.Time.IsBefore(types.NewTimeString(now)) {
		uc.logger.Warn("GetAvailableTables: time %s has already passed", req.Time)
		return nil, ErrTimePassed
	}

	// 3. Локация
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetAvailableTables: location id=%s not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailableTables: failed to get location id=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 4. Столики
	tables, err := uc.tableRepo.ListByLocation(ctx, req.LocationID)
	if err != nil {
		uc.logger.Error("GetAvailableTables: failed to list tables of location id=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
	}

	// 5. Фильтрация по вместимости и времени
	resp := &Response{Tables: make([]AvailableTable, 0, len(tables))}
	for _, table := range tables {
		if !req.AnyCapacity && !table.Fits(req.Guests) {
			continue
		}

		labels := filterSlots(uc.slots.TableFreeSlots(table, date), req.Time, today, now)
		if len(labels) == 0 {
			continue
		}

		resp.Tables = append(resp.Tables, AvailableTable{
			LocationID:      location.ID,
			LocationAddress: location.DisplayAddress(),
			TableNumber:     table.TableNumber,
			GuestCapacity:   table.GuestCapacity,
			AvailableSlots:  labels,
		})
	}

	if len(resp.Tables) == 0 {
		uc.logger.Info("GetAvailableTables: no tables for location=%s on %s", req.LocationID, domain.DateKey(date))
		return nil, ErrNoTablesFound
	}

	uc.logger.Info("GetAvailableTables: found %d tables", len(resp.Tables))
	return resp, nil
}

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.LocationID) == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.Time.IsZero() {
		if err := req.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
	}
	if !req.AnyCapacity && req.Guests < 1 {
		return fmt.Errorf("%w: guests must be at least 1", ErrInvalidInput)
	}
	return nil
}
