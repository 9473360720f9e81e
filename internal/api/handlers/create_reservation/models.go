package create_reservation

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateReservationRequest HTTP модель бронирования клиентом
type CreateReservationRequest struct {
	LocationID   string `json:"locationId"`
	TableNumber  string `json:"tableNumber"`
	Date         string `json:"date"`     // "2025-06-02"
	TimeFrom     string `json:"timeFrom"` // "12:15"
	TimeTo       string `json:"timeTo"`   // "13:45"
	GuestsNumber int    `json:"guestsNumber"`
}

// CreateWaiterReservationRequest HTTP модель бронирования официантом
type CreateWaiterReservationRequest struct {
	CreateReservationRequest
	ClientType   string `json:"clientType"`   // CUSTOMER | VISITOR
	CustomerName string `json:"customerName"` // "Имя, email" для CUSTOMER
}

// ReservationResponse HTTP модель созданного бронирования
type ReservationResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"userId"`
	CustomerName    string   `json:"customerName,omitempty"`
	LocationID      string   `json:"locationId"`
	LocationAddress string   `json:"locationAddress"`
	TableNumber     string   `json:"tableNumber"`
	Date            string   `json:"date"`
	TimeFrom        string   `json:"timeFrom"`
	TimeTo          string   `json:"timeTo"`
	TimeSlot        string   `json:"timeSlot"`
	GuestsNumber    int      `json:"guestsNumber"`
	Status          string   `json:"status"`
	WaiterEmail     string   `json:"waiterEmail"`
	PreOrder        string   `json:"preOrder"`
	FeedbackID      string   `json:"feedbackId"`
	CreatedAt       string   `json:"createdAt"`
	Warnings        []string `json:"warnings,omitempty"`
}

type parsedSlot struct {
	date     time.Time
	timeFrom types.TimeString
	timeTo   types.TimeString
}

func (r *CreateReservationRequest) parse() (parsedSlot, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return parsedSlot{}, errInvalidDate
	}
	from, err := types.NewTimeStringFromString(r.TimeFrom)
	if err != nil {
		return parsedSlot{}, errInvalidTime
	}
	to, err := types.NewTimeStringFromString(r.TimeTo)
	if err != nil {
		return parsedSlot{}, errInvalidTime
	}
	return parsedSlot{date: date, timeFrom: from, timeTo: to}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос клиента в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userEmail string) (*createReservation.Request, error) {
	slot, err := r.parse()
	if err != nil {
		return nil, err
	}
	return &createReservation.Request{
		UserID:       userEmail,
		LocationID:   r.LocationID,
		TableNumber:  r.TableNumber,
		Date:         slot.date,
		TimeFrom:     slot.timeFrom,
		TimeTo:       slot.timeTo,
		GuestsNumber: r.GuestsNumber,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос официанта в модель use case
func (r *CreateWaiterReservationRequest) ToUseCaseRequest(waiterEmail string) (*createReservation.WaiterRequest, error) {
	slot, err := r.parse()
	if err != nil {
		return nil, err
	}
	return &createReservation.WaiterRequest{
		WaiterEmail:  waiterEmail,
		ClientType:   domain.ClientType(r.ClientType),
		CustomerName: r.CustomerName,
		LocationID:   r.LocationID,
		TableNumber:  r.TableNumber,
		Date:         slot.date,
		TimeFrom:     slot.timeFrom,
		TimeTo:       slot.timeTo,
		GuestsNumber: r.GuestsNumber,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		CustomerName:    resp.CustomerName,
		LocationID:      resp.LocationID,
		LocationAddress: resp.LocationAddress,
		TableNumber:     resp.TableNumber,
		Date:            domain.DateKey(resp.Date),
		TimeFrom:        resp.TimeFrom.String(),
		TimeTo:          resp.TimeTo.String(),
		TimeSlot:        resp.TimeSlot,
		GuestsNumber:    resp.GuestsNumber,
		Status:          string(resp.Status),
		WaiterEmail:     resp.WaiterEmail,
		PreOrder:        resp.PreOrder,
		FeedbackID:      resp.FeedbackID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		Warnings:        resp.Warnings,
	}
}
