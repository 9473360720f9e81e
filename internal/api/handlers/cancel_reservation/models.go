package cancel_reservation

import (
	cancelReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_reservation"
)

// CancelReservationResponse HTTP модель результата отмены
type CancelReservationResponse struct {
	ID       string   `json:"id"`
	Status   string   `json:"status"`
	Deleted  bool     `json:"deleted"`
	Warnings []string `json:"warnings,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ID:       resp.ID,
		Status:   string(resp.Status),
		Deleted:  resp.Deleted,
		Warnings: resp.Warnings,
	}
}
