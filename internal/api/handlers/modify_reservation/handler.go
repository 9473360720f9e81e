package modify_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	modifyReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/modify_reservation"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные изменения"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgNotFound           = "бронирование не найдено"
	msgTableNotFound      = "столик не найден"
	msgForbidden          = "доступ запрещен"
	msgNotModifiable      = "бронирование нельзя изменить в текущем статусе"
	msgTooLate            = "слишком поздно для изменения бронирования"
	msgCapacityExceeded   = "количество гостей превышает вместимость столика"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgNoWaiters          = "в локации нет официантов"
	msgNoWaiterAvailable  = "нет свободного официанта на выбранный слот"
)

type Handler struct {
	useCase ModifyReservationUseCase
	logger  Logger
}

func NewHandler(useCase ModifyReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	id := mux.Vars(r)["reservationId"]

	var req ModifyReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id, actor))
	if err != nil {
		switch {
		case errors.Is(err, modifyReservation.ErrInvalidTimeSlot):
			h.logger.Warn("PATCH /reservations/{id} - Invalid time slot: id=%s", id)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, modifyReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: id=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, modifyReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifyReservation.ErrTableNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Table not found: id=%s", id)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, modifyReservation.ErrForbidden):
			h.logger.Warn("PATCH /reservations/{id} - Access denied: id=%s, user=%s", id, actor.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, modifyReservation.ErrNotModifiable):
			h.logger.Warn("PATCH /reservations/{id} - Not modifiable: id=%s", id)
			handlers.RespondConflict(w, msgNotModifiable)

		case errors.Is(err, modifyReservation.ErrTooLate):
			h.logger.Warn("PATCH /reservations/{id} - Too late: id=%s", id)
			handlers.RespondUnprocessable(w, msgTooLate)

		case errors.Is(err, modifyReservation.ErrCapacityExceeded):
			h.logger.Warn("PATCH /reservations/{id} - Capacity exceeded: id=%s", id)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, modifyReservation.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /reservations/{id} - Slot not available: id=%s", id)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, modifyReservation.ErrNoWaiters):
			handlers.RespondConflict(w, msgNoWaiters)

		case errors.Is(err, modifyReservation.ErrNoWaiterAvailable):
			h.logger.Warn("PATCH /reservations/{id} - No waiter available: id=%s", id)
			handlers.RespondConflict(w, msgNoWaiterAvailable)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to modify reservation: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation modified: id=%s, user=%s, warnings=%d", id, actor.Email, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
