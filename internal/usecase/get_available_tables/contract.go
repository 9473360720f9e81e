package get_available_tables

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}

// TableRepository интерфейс репозитория столиков
type TableRepository interface {
	ListByLocation(ctx context.Context, locationID string) ([]*domain.Table, error)
}

// SlotView свободные слоты столика с учетом расписания по умолчанию
type SlotView interface {
	TableFreeSlots(table *domain.Table, date time.Time) []domain.TimeSlot
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
