package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, expectedVersion int64) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	ListByWaiter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	ListByStatuses(ctx context.Context, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}

// WaiterRepository интерфейс репозитория официантов
type WaiterRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Waiter, error)
}

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
