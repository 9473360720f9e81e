package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	cancelReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_reservation"
)

const (
	msgUnauthorized  = "требуется аутентификация"
	msgInvalidID     = "некорректный ID бронирования"
	msgNotFound      = "бронирование не найдено"
	msgForbidden     = "доступ запрещен"
	msgCannotCancel  = "бронирование не может быть отменено"
	msgTooLateCancel = "слишком поздно для отмены бронирования"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	id := mux.Vars(r)["reservationId"]

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{ReservationID: id, Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelReservation.ErrForbidden):
			h.logger.Warn("DELETE /reservations/{id} - Access denied: id=%s, user=%s", id, actor.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelReservation.ErrNotCancellable):
			h.logger.Warn("DELETE /reservations/{id} - Cannot cancel: id=%s", id)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, cancelReservation.ErrTooLate):
			h.logger.Warn("DELETE /reservations/{id} - Too late to cancel: id=%s", id)
			handlers.RespondUnprocessable(w, msgTooLateCancel)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled: id=%s, user=%s, deleted=%t", id, actor.Email, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
