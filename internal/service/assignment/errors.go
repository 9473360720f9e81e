package assignment

import "errors"

var (
	// ErrInvalidTimeSlot время начала не совпадает ни с одним слотом каталога
	ErrInvalidTimeSlot = errors.New("assignment: invalid time slot")

	// ErrNoWaiters в локации нет официантов
	ErrNoWaiters = errors.New("assignment: no waiters at location")

	// ErrNoWaiterAvailable ни у одного официанта нет свободного слота
	ErrNoWaiterAvailable = errors.New("assignment: no waiter available for the time slot")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("assignment: internal error")
)
