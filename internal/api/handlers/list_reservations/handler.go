package list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректные параметры фильтра"
	msgForbidden    = "пользователь не является официантом"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Клиент получает свои бронирования, официант свои активные с фильтрами date, time, tableNumber.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if actor.IsWaiter() {
		h.handleWaiter(w, r, actor)
		return
	}

	result, err := h.service.ListByUser(r.Context(), actor)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /reservations - Failed to list reservations: user=%s, error=%v", actor.Email, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved: user=%s, count=%d", actor.Email, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}

func (h *Handler) handleWaiter(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	query := r.URL.Query()
	req := &models.GetWaiterReservationsRequest{
		WaiterEmail: actor.Email,
		Time:        query.Get("time"),
		TableNumber: query.Get("tableNumber"),
	}
	if raw := query.Get("date"); raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.service.ListByWaiter(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: waiter=%s, error=%v", actor.Email, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reservations.ErrForbidden):
			h.logger.Warn("GET /reservations - Not a waiter: user=%s", actor.Email)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /reservations - Failed to list waiter reservations: waiter=%s, error=%v", actor.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Waiter reservations retrieved: waiter=%s, count=%d", actor.Email, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
