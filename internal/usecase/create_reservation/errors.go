package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда timeFrom/timeTo не совпадают со слотом каталога
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrDateOutOfRange возвращается, когда дата в прошлом или дальше горизонта бронирования
	ErrDateOutOfRange = errors.New("create_reservation: date is out of booking range")

	// ErrTooLate возвращается, когда до начала слота осталось меньше допустимого
	ErrTooLate = errors.New("create_reservation: too late to book this slot")

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("create_reservation: location not found")

	// ErrTableNotFound возвращается, когда столик не найден
	ErrTableNotFound = errors.New("create_reservation: table not found")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем мест за столиком
	ErrCapacityExceeded = errors.New("create_reservation: guests exceed table capacity")

	// ErrSlotNotAvailable возвращается, когда слот столика занят
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrNoWaiters возвращается, когда в локации нет официантов
	ErrNoWaiters = errors.New("create_reservation: no waiters at location")

	// ErrNoWaiterAvailable возвращается, когда нет свободного официанта на слот
	ErrNoWaiterAvailable = errors.New("create_reservation: no waiter available")

	// ErrForbidden возвращается, когда пользователь не может создать бронирование
	ErrForbidden = errors.New("create_reservation: forbidden")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
