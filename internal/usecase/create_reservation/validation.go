package create_reservation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateBooking проверяет поля и возвращает слот каталога
func validateBooking(b *booking) (domain.TimeSlot, error) {
	if strings.TrimSpace(b.userID) == "" {
		return domain.TimeSlot{}, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(b.locationID) == "" {
		return domain.TimeSlot{}, fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(b.tableNumber) == "" {
		return domain.TimeSlot{}, fmt.Errorf("%w: tableNumber is required", ErrInvalidInput)
	}
	if b.date.IsZero() {
		return domain.TimeSlot{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := b.timeFrom.Validate(); err != nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: invalid timeFrom: %v", ErrInvalidInput, err)
	}
	if err := b.timeTo.Validate(); err != nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: invalid timeTo: %v", ErrInvalidInput, err)
	}
	if b.guests < 1 {
		return domain.TimeSlot{}, fmt.Errorf("%w: guestsNumber must be at least 1", ErrInvalidInput)
	}

	slot, ok := domain.TimeSlotFromRange(b.timeFrom, b.timeTo)
	if !ok {
		return domain.TimeSlot{}, fmt.Errorf("%w: %s - %s", ErrInvalidTimeSlot, b.timeFrom, b.timeTo)
	}
	return slot, nil
}

// validateTiming проверяет горизонт бронирования и минимальный запас времени в день визита
func validateTiming(date time.Time, slot domain.TimeSlot, now time.Time, policy domain.Policy) error {
	if !domain.WithinHorizon(date, now, policy.HorizonDays) {
		return fmt.Errorf("%w: allowed from today to %d days ahead", ErrDateOutOfRange, policy.HorizonDays)
	}

	if !domain.SameDay(date, now) {
		return nil
	}

	start := slot.Start.On(date, now.Location())
	if start.Before(now.Add(time.Duration(policy.SameDayNoticeMinutes) * time.Minute)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLate, policy.SameDayNoticeMinutes)
	}
	return nil
}

// parseCustomer разбирает "Имя, email" клиента, для которого бронирует официант
func parseCustomer(value string) (name, email string, err error) {
	i := strings.LastIndex(value, ",")
	if i < 0 {
		return "", "", fmt.Errorf("%w: customerName must be in the form \"Name, email\"", ErrInvalidInput)
	}
	name = strings.TrimSpace(value[:i])
	email = strings.TrimSpace(value[i+1:])

	if name == "" {
		return "", "", fmt.Errorf("%w: customer name is empty", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", "", fmt.Errorf("%w: invalid customer email %q", ErrInvalidInput, email)
	}
	return name, email, nil
}

// waiterRequestToBooking проверяет тип клиента и собирает данные бронирования
func waiterRequestToBooking(req *WaiterRequest) (booking, error) {
	b := booking{
		locationID:  req.LocationID,
		tableNumber: req.TableNumber,
		date:        req.Date,
		timeFrom:    req.TimeFrom,
		timeTo:      req.TimeTo,
		guests:      req.GuestsNumber,
	}

	switch req.ClientType {
	case domain.ClientCustomer:
		name, email, err := parseCustomer(req.CustomerName)
		if err != nil {
			return booking{}, err
		}
		b.userID = email
		b.customerName = name
	case domain.ClientVisitor:
		b.userID = domain.VisitorUserID
		b.customerName = strings.TrimSpace(req.CustomerName)
	default:
		return booking{}, fmt.Errorf("%w: clientType must be CUSTOMER or VISITOR", ErrInvalidInput)
	}
	return b, nil
}
