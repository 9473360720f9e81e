package get_reservation_details

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgInvalidID       = "некорректный ID бронирования"
	msgNotFound        = "бронирование не найдено"
	msgForbidden       = "доступ запрещен"
	msgNotModifiable   = "бронирование нельзя изменить в текущем статусе"
	msgTooLateToModify = "до начала осталось слишком мало времени для изменения"
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

// Handle GET /api/v1/reservations/{reservationId}/details
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	id := mux.Vars(r)["reservationId"]

	result, err := h.service.GetDetails(r.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id}/details - Reservation not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrForbidden):
			h.logger.Warn("GET /reservations/{id}/details - Access denied: id=%s, user=%s", id, actor.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrTooLate):
			h.logger.Warn("GET /reservations/{id}/details - Too late to modify: id=%s", id)
			handlers.RespondUnprocessable(w, msgTooLateToModify)

		case errors.Is(err, reservations.ErrNotModifiable):
			h.logger.Warn("GET /reservations/{id}/details - Not modifiable: id=%s", id)
			handlers.RespondConflict(w, msgNotModifiable)

		default:
			h.logger.Error("GET /reservations/{id}/details - Failed to get details: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/{id}/details - Details retrieved: id=%s, user=%s", id, actor.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
