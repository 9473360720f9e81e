package modify_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на изменение. Время передается парой или не передается вовсе.
type Request struct {
	ReservationID string
	Actor         domain.Actor
	TimeFrom      types.TimeString // опционально
	TimeTo        types.TimeString // опционально
	GuestsNumber  *int             // опционально
}

// Response модель ответа с измененным бронированием
type Response struct {
	ID           string
	UserID       string
	LocationID   string
	TableNumber  string
	Date         time.Time
	TimeFrom     types.TimeString
	TimeTo       types.TimeString
	TimeSlot     string
	GuestsNumber int
	Status       domain.ReservationStatus
	WaiterEmail  string
	PreOrder     string
	FeedbackID   string

	// Warnings ошибки перестановки слотов после сохранения
	Warnings []string
}

func toResponse(res *domain.Reservation, slot domain.TimeSlot, warnings []string) *Response {
	return &Response{
		ID:           res.ID,
		UserID:       res.UserID,
		LocationID:   res.LocationID,
		TableNumber:  res.TableNumber,
		Date:         res.Date,
		TimeFrom:     res.TimeFrom,
		TimeTo:       res.TimeTo,
		TimeSlot:     slot.Label(),
		GuestsNumber: res.GuestsNumber,
		Status:       res.Status,
		WaiterEmail:  res.WaiterEmail,
		PreOrder:     res.PreOrder,
		FeedbackID:   res.FeedbackID,
		Warnings:     warnings,
	}
}
