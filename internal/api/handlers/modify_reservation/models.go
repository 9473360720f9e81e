package modify_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	modifyReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/modify_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ModifyReservationRequest HTTP модель изменения. Все поля опциональны, время передается парой.
type ModifyReservationRequest struct {
	TimeFrom     string `json:"timeFrom,omitempty"`
	TimeTo       string `json:"timeTo,omitempty"`
	GuestsNumber *int   `json:"guestsNumber,omitempty"`
}

// ReservationResponse HTTP модель измененного бронирования
type ReservationResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	LocationID   string   `json:"locationId"`
	TableNumber  string   `json:"tableNumber"`
	Date         string   `json:"date"`
	TimeFrom     string   `json:"timeFrom"`
	TimeTo       string   `json:"timeTo"`
	TimeSlot     string   `json:"timeSlot"`
	GuestsNumber int      `json:"guestsNumber"`
	Status       string   `json:"status"`
	WaiterEmail  string   `json:"waiterEmail"`
	PreOrder     string   `json:"preOrder"`
	FeedbackID   string   `json:"feedbackId"`
	Warnings     []string `json:"warnings,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyReservationRequest) ToUseCaseRequest(id string, actor domain.Actor) *modifyReservation.Request {
	return &modifyReservation.Request{
		ReservationID: id,
		Actor:         actor,
		TimeFrom:      types.TimeString(r.TimeFrom),
		TimeTo:        types.TimeString(r.TimeTo),
		GuestsNumber:  r.GuestsNumber,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *modifyReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		LocationID:   resp.LocationID,
		TableNumber:  resp.TableNumber,
		Date:         domain.DateKey(resp.Date),
		TimeFrom:     resp.TimeFrom.String(),
		TimeTo:       resp.TimeTo.String(),
		TimeSlot:     resp.TimeSlot,
		GuestsNumber: resp.GuestsNumber,
		Status:       string(resp.Status),
		WaiterEmail:  resp.WaiterEmail,
		PreOrder:     resp.PreOrder,
		FeedbackID:   resp.FeedbackID,
		Warnings:     resp.Warnings,
	}
}
