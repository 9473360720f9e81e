package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgDateOutOfRange     = "дата вне допустимого диапазона бронирования"
	msgTooLate            = "слишком поздно для бронирования этого слота"
	msgLocationNotFound   = "локация не найдена"
	msgTableNotFound      = "столик не найден"
	msgCapacityExceeded   = "количество гостей превышает вместимость столика"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgNoWaiters          = "в локации нет официантов"
	msgNoWaiterAvailable  = "нет свободного официанта на выбранный слот"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.Email)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		h.respondParseError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, "POST /reservations", actor.Email, req.LocationID, err)
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%s, user=%s, location=%s, table=%s, warnings=%d",
		result.ID, actor.Email, result.LocationID, result.TableNumber, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// HandleByWaiter POST /api/v1/reservations/waiter
func (h *Handler) HandleByWaiter(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateWaiterReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/waiter - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.Email)
	if err != nil {
		h.logger.Warn("POST /reservations/waiter - Failed to parse request: %v", err)
		h.respondParseError(w, err)
		return
	}

	result, err := h.useCase.ExecuteByWaiter(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, "POST /reservations/waiter", actor.Email, req.LocationID, err)
		return
	}

	h.logger.Info("POST /reservations/waiter - Reservation created: id=%s, waiter=%s, client=%s, warnings=%d",
		result.ID, actor.Email, result.UserID, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondParseError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidTime) {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	handlers.RespondBadRequest(w, msgInvalidDate)
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, route, user, locationID string, err error) {
	switch {
	case errors.Is(err, createReservation.ErrInvalidTimeSlot):
		h.logger.Warn("%s - Invalid time slot: user=%s, location=%s", route, user, locationID)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createReservation.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: user=%s, error=%v", route, user, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createReservation.ErrDateOutOfRange):
		h.logger.Warn("%s - Date out of range: user=%s, location=%s", route, user, locationID)
		handlers.RespondUnprocessable(w, msgDateOutOfRange)

	case errors.Is(err, createReservation.ErrTooLate):
		h.logger.Warn("%s - Too late to book: user=%s, location=%s", route, user, locationID)
		handlers.RespondUnprocessable(w, msgTooLate)

	case errors.Is(err, createReservation.ErrLocationNotFound):
		h.logger.Warn("%s - Location not found: location=%s", route, locationID)
		handlers.RespondNotFound(w, msgLocationNotFound)

	case errors.Is(err, createReservation.ErrTableNotFound):
		h.logger.Warn("%s - Table not found: location=%s", route, locationID)
		handlers.RespondNotFound(w, msgTableNotFound)

	case errors.Is(err, createReservation.ErrCapacityExceeded):
		h.logger.Warn("%s - Capacity exceeded: user=%s, location=%s", route, user, locationID)
		handlers.RespondConflict(w, msgCapacityExceeded)

	case errors.Is(err, createReservation.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot not available: user=%s, location=%s", route, user, locationID)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, createReservation.ErrNoWaiters):
		h.logger.Warn("%s - No waiters: location=%s", route, locationID)
		handlers.RespondConflict(w, msgNoWaiters)

	case errors.Is(err, createReservation.ErrNoWaiterAvailable):
		h.logger.Warn("%s - No waiter available: location=%s", route, locationID)
		handlers.RespondConflict(w, msgNoWaiterAvailable)

	case errors.Is(err, createReservation.ErrForbidden):
		h.logger.Warn("%s - Forbidden: user=%s, location=%s", route, user, locationID)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("%s - Failed to create reservation: user=%s, location=%s, error=%v", route, user, locationID, err)
		handlers.RespondInternalError(w)
	}
}
