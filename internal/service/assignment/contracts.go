package assignment

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// WaiterRepository интерфейс для получения официантов локации
type WaiterRepository interface {
	ListByLocation(ctx context.Context, locationID string) ([]*domain.Waiter, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
