package modify_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/keylock"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
}

// TableRepository интерфейс репозитория столиков
type TableRepository interface {
	Get(ctx context.Context, locationID, tableNumber string) (*domain.Table, error)
}

// AvailabilityStore интерфейс хранилища слотов
type AvailabilityStore interface {
	IsFree(ctx context.Context, owner domain.OwnerKey, date time.Time, label string) (bool, error)
	Reserve(ctx context.Context, owner domain.OwnerKey, date time.Time, label string) error
	Release(ctx context.Context, owner domain.OwnerKey, date time.Time, label string) error
}

// WaiterSelector интерфейс выбора официанта
type WaiterSelector interface {
	SelectWaiter(ctx context.Context, locationID string, date time.Time, slotStart types.TimeString) (string, error)
}

// Locker блокировка бронирования столика
type Locker = keylock.Locker

// Metrics счетчики событий бронирования
type Metrics interface {
	IncReservationEvent(event string)
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
