package list_reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	ListByUser(ctx context.Context, actor domain.Actor) (*models.ReservationListResponse, error)
	ListByWaiter(ctx context.Context, req *models.GetWaiterReservationsRequest) (*models.WaiterReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
