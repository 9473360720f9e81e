package reservations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrForbidden возвращается, когда у пользователя нет доступа
	ErrForbidden = errors.New("reservations: forbidden")

	// ErrNotModifiable возвращается, когда бронирование нельзя редактировать
	ErrNotModifiable = errors.New("reservations: reservation cannot be modified in its current status")

	// ErrTooLate возвращается, когда редактирование уже закрыто
	ErrTooLate = errors.New("reservations: too late to modify")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
