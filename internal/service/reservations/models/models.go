package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// GetWaiterReservationsRequest фильтры экрана бронирований официанта
type GetWaiterReservationsRequest struct {
	WaiterEmail string     `json:"waiterEmail"`
	Date        *time.Time `json:"date,omitempty"`        // опционально
	Time        string     `json:"time,omitempty"`        // "HH:MM", "00:00" означает любое
	TableNumber string     `json:"tableNumber,omitempty"` // "Any Table" означает любой
}

// Response модели

// ReservationResponse бронирование клиента
type ReservationResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	LocationID      string    `json:"locationId"`
	LocationAddress string    `json:"locationAddress"`
	TableNumber     string    `json:"tableNumber"`
	Date            string    `json:"date"`
	TimeFrom        string    `json:"timeFrom"`
	TimeTo          string    `json:"timeTo"`
	TimeSlot        string    `json:"timeSlot"`
	GuestsNumber    int       `json:"guestsNumber"`
	WaiterEmail     string    `json:"waiterEmail"`
	PreOrder        string    `json:"preOrder"`
	FeedbackID      string    `json:"feedbackId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReservationListResponse список бронирований клиента
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// WaiterReservationResponse бронирование на экране официанта
type WaiterReservationResponse struct {
	ReservationID string `json:"reservationId"`
	LocationID    string `json:"locationId"`
	Location      string `json:"location"`
	TableNumber   string `json:"tableNumber"`
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	PreOrder      string `json:"preOrder"`
	CustomerName  string `json:"customerName"`
	GuestsNumber  int    `json:"guestsNumber"`
	Status        string `json:"status"`
	WaiterEmail   string `json:"waiterEmail"`
	FeedbackID    string `json:"feedbackId"`
	UserID        string `json:"userId"`
}

// WaiterReservationListResponse список бронирований официанта
type WaiterReservationListResponse struct {
	Reservations []WaiterReservationResponse `json:"reservations"`
}

// ReservationDetailsResponse данные для формы редактирования
type ReservationDetailsResponse struct {
	ReservationID string `json:"reservationId"`
	LocationID    string `json:"locationId"`
	TableNumber   string `json:"tableNumber"`
	Date          string `json:"date"`
	TimeFrom      string `json:"timeFrom"`
	TimeTo        string `json:"timeTo"`
	GuestsNumber  int    `json:"guestsNumber"`
}

// Методы конвертации

// noPreOrder показывается официанту, когда предзаказа нет
const noPreOrder = "0"

// ToDomainFilter конвертирует request в domain фильтр активных бронирований официанта
func (r *GetWaiterReservationsRequest) ToDomainFilter(locationID string) domain.ReservationFilter {
	return domain.ReservationFilter{
		WaiterEmail: r.WaiterEmail,
		LocationID:  locationID,
		Date:        r.Date,
		TimeFrom:    types.TimeString(r.Time),
		TableNumber: r.TableNumber,
		Statuses:    domain.ActiveStatuses,
	}
}

func timeSlot(r *domain.Reservation) string {
	if slot, ok := r.TimeSlot(); ok {
		return slot.Label()
	}
	return r.TimeFrom.String() + domain.TimeSlotSeparator + r.TimeTo.String()
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, address string) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		Status:          string(r.Status),
		LocationID:      r.LocationID,
		LocationAddress: address,
		TableNumber:     r.TableNumber,
		Date:            domain.DateKey(r.Date),
		TimeFrom:        r.TimeFrom.String(),
		TimeTo:          r.TimeTo.String(),
		TimeSlot:        timeSlot(r),
		GuestsNumber:    r.GuestsNumber,
		WaiterEmail:     r.WaiterEmail,
		PreOrder:        r.PreOrder,
		FeedbackID:      r.FeedbackID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainWaiterReservation конвертирует domain модель в DTO экрана официанта
func FromDomainWaiterReservation(r *domain.Reservation, address string) WaiterReservationResponse {
	preOrder := r.PreOrder
	if preOrder == "" {
		preOrder = noPreOrder
	}
	customer := r.CustomerName
	if customer == "" {
		customer = r.UserID
	}

	return WaiterReservationResponse{
		ReservationID: r.ID,
		LocationID:    r.LocationID,
		Location:      address,
		TableNumber:   r.TableNumber,
		Date:          domain.DateKey(r.Date),
		TimeSlot:      timeSlot(r),
		PreOrder:      preOrder,
		CustomerName:  customer,
		GuestsNumber:  r.GuestsNumber,
		Status:        string(r.Status),
		WaiterEmail:   r.WaiterEmail,
		FeedbackID:    r.FeedbackID,
		UserID:        r.UserID,
	}
}

// FromDomainDetails конвертирует domain модель в данные формы редактирования
func FromDomainDetails(r *domain.Reservation) *ReservationDetailsResponse {
	return &ReservationDetailsResponse{
		ReservationID: r.ID,
		LocationID:    r.LocationID,
		TableNumber:   r.TableNumber,
		Date:          domain.DateKey(r.Date),
		TimeFrom:      r.TimeFrom.String(),
		TimeTo:        r.TimeTo.String(),
		GuestsNumber:  r.GuestsNumber,
	}
}
