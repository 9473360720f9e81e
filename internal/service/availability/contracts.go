package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/keylock"
)

// TableRepository доступ к слотам столиков
type TableRepository interface {
	Get(ctx context.Context, locationID, tableNumber string) (*domain.Table, error)
	UpdateSlots(ctx context.Context, locationID, tableNumber string, slots domain.SlotSet, expectedVersion int64) (int64, error)
}

// WaiterRepository доступ к слотам официантов
type WaiterRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Waiter, error)
	UpdateSlots(ctx context.Context, email string, slots domain.SlotSet, expectedVersion int64) (int64, error)
}

// Locker блокировка по ключу владельца слотов
type Locker = keylock.Locker

// Metrics счетчики конфликтов версий
type Metrics interface {
	IncSlotConflict(ownerKind string)
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

type noopMetrics struct{}

func (noopMetrics) IncSlotConflict(string) {}
