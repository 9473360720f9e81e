package cancel_reservation

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модель запроса на отмену
type Request struct {
	ReservationID string
	Actor         domain.Actor
}

// Response результат отмены
type Response struct {
	ID      string
	Status  domain.ReservationStatus
	Deleted bool // бронирование гостя удаляется целиком

	// Warnings ошибки освобождения слотов
	Warnings []string
}
