package get_available_tables

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_tables: invalid input data")

	// ErrDateOutOfRange возвращается, когда дата в прошлом или дальше горизонта бронирования
	ErrDateOutOfRange = errors.New("get_available_tables: date is out of booking range")

	// ErrTimePassed возвращается, когда запрошенное время сегодня уже прошло
	ErrTimePassed = errors.New("get_available_tables: requested time has already passed")

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("get_available_tables: location not found")

	// ErrNoTablesFound возвращается, когда нет ни одного столика со свободными слотами
	ErrNoTablesFound = errors.New("get_available_tables: no table found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_tables: internal error")
)
