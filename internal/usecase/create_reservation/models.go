package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса клиента на бронирование
type Request struct {
	UserID       string           // email клиента
	LocationID   string           // ID локации
	TableNumber  string           // номер столика
	Date         time.Time        // дата (без времени)
	TimeFrom     types.TimeString // начало слота
	TimeTo       types.TimeString // конец слота
	GuestsNumber int              // количество гостей
}

// WaiterRequest модель запроса официанта на бронирование для клиента или гостя
type WaiterRequest struct {
	WaiterEmail  string            // email официанта (текущий пользователь)
	ClientType   domain.ClientType // CUSTOMER или VISITOR
	CustomerName string            // "Имя, email" для CUSTOMER, имя для VISITOR
	LocationID   string
	TableNumber  string
	Date         time.Time
	TimeFrom     types.TimeString
	TimeTo       types.TimeString
	GuestsNumber int
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string
	UserID          string
	CustomerName    string
	LocationID      string
	LocationAddress string
	TableNumber     string
	Date            time.Time
	TimeFrom        types.TimeString
	TimeTo          types.TimeString
	TimeSlot        string // "HH:MM - HH:MM"
	GuestsNumber    int
	Status          domain.ReservationStatus
	WaiterEmail     string
	PreOrder        string
	FeedbackID      string
	CreatedAt       time.Time

	// Warnings ошибки вторичных операций после сохранения бронирования
	Warnings []string
}

// booking общие данные обоих видов запроса
type booking struct {
	userID       string
	customerName string
	locationID   string
	tableNumber  string
	date         time.Time
	timeFrom     types.TimeString
	timeTo       types.TimeString
	guests       int
}

func (r *Request) toBooking() booking {
	return booking{
		userID:      r.UserID,
		locationID:  r.LocationID,
		tableNumber: r.TableNumber,
		date:        r.Date,
		timeFrom:    r.TimeFrom,
		timeTo:      r.TimeTo,
		guests:      r.GuestsNumber,
	}
}

func toResponse(res *domain.Reservation, location *domain.Location, slot domain.TimeSlot, warnings []string) *Response {
	return &Response{
		ID:              res.ID,
		UserID:          res.UserID,
		CustomerName:    res.CustomerName,
		LocationID:      res.LocationID,
		LocationAddress: location.DisplayAddress(),
		TableNumber:     res.TableNumber,
		Date:            res.Date,
		TimeFrom:        res.TimeFrom,
		TimeTo:          res.TimeTo,
		TimeSlot:        slot.Label(),
		GuestsNumber:    res.GuestsNumber,
		Status:          res.Status,
		WaiterEmail:     res.WaiterEmail,
		PreOrder:        res.PreOrder,
		FeedbackID:      res.FeedbackID,
		CreatedAt:       res.CreatedAt,
		Warnings:        warnings,
	}
}
