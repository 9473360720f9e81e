package availability

import "errors"

var (
	// ErrInvalidTimeSlot метка слота не из каталога
	ErrInvalidTimeSlot = errors.New("availability: invalid time slot")

	// ErrOwnerNotFound столик или официант не найден
	ErrOwnerNotFound = errors.New("availability: slot owner not found")

	// ErrSlotNotOffered у владельца нет расписания на эту дату
	ErrSlotNotOffered = errors.New("availability: slot is not offered on this date")

	// ErrSlotNotFree слот уже занят
	ErrSlotNotFree = errors.New("availability: slot is not free")

	// ErrTooManyConflicts не удалось записать слоты из-за параллельных изменений
	ErrTooManyConflicts = errors.New("availability: too many concurrent updates")

	// ErrInternal внутренняя ошибка хранилища
	ErrInternal = errors.New("availability: internal error")
)
