package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	locationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/location"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	waiterRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/waiter"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service чтение бронирований и продвижение статусов по времени
type Service struct {
	reservationRepo ReservationRepository
	locationRepo    LocationRepository
	waiterRepo      WaiterRepository
	metrics         Metrics
	policy          domain.Policy
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	locationRepo LocationRepository,
	waiterRepo WaiterRepository,
	metrics Metrics,
	policy domain.Policy,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		locationRepo:    locationRepo,
		waiterRepo:      waiterRepo,
		metrics:         metrics,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// SetTimeProvider подменяет источник текущего времени
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.timeProvider = tp
}

// AutoAdvanceStatuses переводит RESERVED в IN_PROGRESS после начала и
// RESERVED/IN_PROGRESS в FINISHED после окончания. Возвращает число измененных.
func (s *Service) AutoAdvanceStatuses(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	active, err := s.reservationRepo.ListByStatuses(ctx, domain.ActiveStatuses)
	if err != nil {
		s.logger.Error("AutoAdvanceStatuses: failed to list active reservations: %v", err)
		return 0, fmt.Errorf("%w: AutoAdvanceStatuses - repository error: %v", ErrInternal, err)
	}

	changed := 0
	for _, res := range active {
		next := res.NextStatus(now)
		if next == res.Status {
			continue
		}
		if err := s.reservationRepo.UpdateStatus(ctx, res.ID, next, res.Version); err != nil {
			if errors.Is(err, reservationRepo.ErrVersionConflict) || errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("AutoAdvanceStatuses: reservation id=%s changed meanwhile, skipped: %v", res.ID, err)
				continue
			}
			s.logger.Error("AutoAdvanceStatuses: failed to move reservation id=%s %s -> %s: %v", res.ID, res.Status, next, err)
			continue
		}
		s.metrics.IncReservationEvent(strings.ToLower(string(next)))
		changed++
	}

	if changed > 0 {
		s.logger.Info("AutoAdvanceStatuses: advanced %d of %d active reservations", changed, len(active))
	}
	return changed, nil
}

// ListByUser бронирования клиента, новые сначала
func (s *Service) ListByUser(ctx context.Context, actor domain.Actor) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByUser: fetching reservations for user=%s", actor.Email)

	if strings.TrimSpace(actor.Email) == "" {
		return nil, fmt.Errorf("%w: user email is required", ErrInvalidInput)
	}
	s.advanceBeforeRead(ctx, "ListByUser")

	list, err := s.reservationRepo.ListByUser(ctx, actor.Email)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%s: %v", actor.Email, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	addresses := s.addressCache()
	resp := &models.ReservationListResponse{Reservations: make([]models.ReservationResponse, 0, len(list))}
	for _, res := range list {
		resp.Reservations = append(resp.Reservations, models.FromDomainReservation(res, addresses(ctx, res.LocationID)))
	}

	s.logger.Info("ListByUser: successfully fetched %d reservations for user=%s", len(list), actor.Email)
	return resp, nil
}

// ListByWaiter активные бронирования официанта в его локации с фильтрами даты, времени и столика
func (s *Service) ListByWaiter(ctx context.Context, req *models.GetWaiterReservationsRequest) (*models.WaiterReservationListResponse, error) {
	s.logger.Info("ListByWaiter: fetching reservations for waiter=%s, time=%s, table=%s", req.WaiterEmail, req.Time, req.TableNumber)

	if req.Time != "" {
		if err := types.TimeString(req.Time).Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
	}

	waiter, err := s.waiterRepo.GetByEmail(ctx, req.WaiterEmail)
	if err != nil {
		if errors.Is(err, waiterRepo.ErrWaiterNotFound) {
			s.logger.Warn("ListByWaiter: %s is not a waiter", req.WaiterEmail)
			return nil, fmt.Errorf("%w: user is not a waiter", ErrForbidden)
		}
		s.logger.Error("ListByWaiter: repository error for waiter=%s: %v", req.WaiterEmail, err)
		return nil, fmt.Errorf("%w: ListByWaiter - get waiter: %v", ErrInternal, err)
	}

	s.advanceBeforeRead(ctx, "ListByWaiter")

	list, err := s.reservationRepo.ListByWaiter(ctx, req.ToDomainFilter(waiter.LocationID))
	if err != nil {
		s.logger.Error("ListByWaiter: repository error for waiter=%s: %v", req.WaiterEmail, err)
		return nil, fmt.Errorf("%w: ListByWaiter - repository error: %v", ErrInternal, err)
	}

	addresses := s.addressCache()
	resp := &models.WaiterReservationListResponse{Reservations: make([]models.WaiterReservationResponse, 0, len(list))}
	for _, res := range list {
		resp.Reservations = append(resp.Reservations, models.FromDomainWaiterReservation(res, addresses(ctx, res.LocationID)))
	}

	s.logger.Info("ListByWaiter: successfully fetched %d reservations for waiter=%s", len(list), req.WaiterEmail)
	return resp, nil
}

// GetDetails данные бронирования для формы редактирования.
// Проверки те же, что при изменении: участник, RESERVED, до начала больше cutoff.
func (s *Service) GetDetails(ctx context.Context, id string, actor domain.Actor) (*models.ReservationDetailsResponse, error) {
	s.logger.Info("GetDetails: reservation=%s, user=%s", id, actor.Email)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetDetails: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetDetails: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetDetails - repository error: %v", ErrInternal, err)
	}

	if !res.IsParticipant(actor.Email) {
		s.logger.Warn("GetDetails: access denied for user=%s to reservation id=%s", actor.Email, id)
		return nil, ErrForbidden
	}

	now := s.timeProvider.Now()
	deadline := res.StartsAt(now.Location()).Add(-time.Duration(s.policy.ModifyCutoffMinutes) * time.Minute)
	if !now.Before(deadline) {
		return nil, fmt.Errorf("%w: changes are allowed up to %d minutes before start", ErrTooLate, s.policy.ModifyCutoffMinutes)
	}
	if res.Status != domain.StatusReserved {
		return nil, fmt.Errorf("%w: status is %s", ErrNotModifiable, res.Status)
	}

	return models.FromDomainDetails(res), nil
}

// advanceBeforeRead продвигает статусы перед чтением; ошибка не мешает отдать список
func (s *Service) advanceBeforeRead(ctx context.Context, op string) {
	if _, err := s.AutoAdvanceStatuses(ctx); err != nil {
		s.logger.Warn("%s: statuses were not advanced: %v", op, err)
	}
}

// addressCache адреса локаций в пределах одного запроса
func (s *Service) addressCache() func(ctx context.Context, locationID string) string {
	cache := make(map[string]string)
	return func(ctx context.Context, locationID string) string {
		if addr, ok := cache[locationID]; ok {
			return addr
		}

		loc, err := s.locationRepo.GetByID(ctx, locationID)
		if err != nil && !errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("addressCache: failed to get location id=%s: %v", locationID, err)
		}
		addr := loc.DisplayAddress()
		cache[locationID] = addr
		return addr
	}
}
