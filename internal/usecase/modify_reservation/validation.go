package modify_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest проверяет, что передано хотя бы одно изменение и время передано парой
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ReservationID) == "" {
		return fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}

	if req.TimeFrom.IsZero() != req.TimeTo.IsZero() {
		return fmt.Errorf("%w: timeFrom and timeTo must be provided together", ErrInvalidInput)
	}
	if req.TimeFrom.IsZero() && req.GuestsNumber == nil {
		return fmt.Errorf("%w: nothing to modify", ErrInvalidInput)
	}

	if !req.TimeFrom.IsZero() {
		if err := req.TimeFrom.Validate(); err != nil {
			return fmt.Errorf("%w: invalid timeFrom: %v", ErrInvalidInput, err)
		}
		if err := req.TimeTo.Validate(); err != nil {
			return fmt.Errorf("%w: invalid timeTo: %v", ErrInvalidInput, err)
		}
	}

	if req.GuestsNumber != nil && *req.GuestsNumber < 1 {
		return fmt.Errorf("%w: guestsNumber must be at least 1", ErrInvalidInput)
	}
	return nil
}

// validateModifyWindow изменение возможно, пока до начала больше cutoff минут
func validateModifyWindow(res *domain.Reservation, now time.Time, cutoffMinutes int) error {
	deadline := res.StartsAt(now.Location()).Add(-time.Duration(cutoffMinutes) * time.Minute)
	if !now.Before(deadline) {
		return fmt.Errorf("%w: changes are allowed up to %d minutes before start", ErrTooLate, cutoffMinutes)
	}
	return nil
}

// validateNewTime новый слот в день визита должен начинаться не раньше now+notice
func validateNewTime(date time.Time, slot domain.TimeSlot, now time.Time, noticeMinutes int) error {
	if !domain.SameDay(date, now) {
		return nil
	}
	start := slot.Start.On(date, now.Location())
	if start.Before(now.Add(time.Duration(noticeMinutes) * time.Minute)) {
		return fmt.Errorf("%w: new time must start at least %d minutes from now", ErrTooLate, noticeMinutes)
	}
	return nil
}
