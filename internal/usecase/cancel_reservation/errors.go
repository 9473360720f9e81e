package cancel_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrForbidden возвращается, когда пользователь не клиент и не официант бронирования
	ErrForbidden = errors.New("cancel_reservation: forbidden")

	// ErrNotCancellable возвращается для бронирований не в статусе RESERVED
	ErrNotCancellable = errors.New("cancel_reservation: reservation cannot be cancelled in its current status")

	// ErrTooLate возвращается, когда до начала осталось меньше допустимого
	ErrTooLate = errors.New("cancel_reservation: too late to cancel")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
