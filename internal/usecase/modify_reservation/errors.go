package modify_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_reservation: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда новое время не совпадает со слотом каталога
	ErrInvalidTimeSlot = errors.New("modify_reservation: invalid time slot")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("modify_reservation: reservation not found")

	// ErrTableNotFound возвращается, когда столик бронирования больше не существует
	ErrTableNotFound = errors.New("modify_reservation: table not found")

	// ErrForbidden возвращается, когда пользователь не клиент и не официант бронирования
	ErrForbidden = errors.New("modify_reservation: forbidden")

	// ErrNotModifiable возвращается для бронирований не в статусе RESERVED
	ErrNotModifiable = errors.New("modify_reservation: reservation cannot be modified in its current status")

	// ErrTooLate возвращается, когда изменение запрошено слишком поздно
	ErrTooLate = errors.New("modify_reservation: too late to modify")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем мест за столиком
	ErrCapacityExceeded = errors.New("modify_reservation: guests exceed table capacity")

	// ErrSlotNotAvailable возвращается, когда новый слот столика занят
	ErrSlotNotAvailable = errors.New("modify_reservation: slot is not available")

	// ErrNoWaiters возвращается, когда в локации нет официантов
	ErrNoWaiters = errors.New("modify_reservation: no waiters at location")

	// ErrNoWaiterAvailable возвращается, когда нет свободного официанта на новый слот
	ErrNoWaiterAvailable = errors.New("modify_reservation: no waiter available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_reservation: internal error")
)
