package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusReserved   ReservationStatus = "RESERVED"
	StatusInProgress ReservationStatus = "IN_PROGRESS"
	StatusFinished   ReservationStatus = "FINISHED"
	StatusCancelled  ReservationStatus = "CANCELLED"
)

// VisitorUserID marks walk-in reservations created by a waiter.
const VisitorUserID = "VISITOR"

// ActiveStatuses are the statuses shown in the waiter view and advanced over time.
var ActiveStatuses = []ReservationStatus{StatusReserved, StatusInProgress}

// IsValid reports whether s is a known status.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusReserved, StatusInProgress, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for FINISHED and CANCELLED.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// Reservation is a table booking for one date and time slot
type Reservation struct {
	ID           string
	UserID       string // customer email or VisitorUserID
	LocationID   string
	TableNumber  string
	Date         time.Time
	TimeFrom     types.TimeString
	TimeTo       types.TimeString
	GuestsNumber int
	Status       ReservationStatus
	WaiterEmail  string
	CustomerName string
	PreOrder     string
	FeedbackID   string
	Version      int64 // bumped on every write; writes compare it

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsVisitor returns true for walk-in reservations.
func (r *Reservation) IsVisitor() bool {
	return r.UserID == VisitorUserID
}

// TableKey returns the owner key of the reserved table.
func (r *Reservation) TableKey() OwnerKey {
	return TableKey(r.LocationID, r.TableNumber)
}

// WaiterKey returns the owner key of the assigned waiter.
func (r *Reservation) WaiterKey() OwnerKey {
	return WaiterKey(r.WaiterEmail)
}

// TimeSlot returns the catalog slot of the reservation.
func (r *Reservation) TimeSlot() (TimeSlot, bool) {
	return TimeSlotFromRange(r.TimeFrom, r.TimeTo)
}

// StartsAt is the start instant in loc.
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.TimeFrom.On(r.Date, loc)
}

// EndsAt is the end instant in loc.
func (r *Reservation) EndsAt(loc *time.Location) time.Time {
	return r.TimeTo.On(r.Date, loc)
}

// IsParticipant reports whether email is the customer or the assigned waiter.
func (r *Reservation) IsParticipant(email string) bool {
	return email != "" && (r.UserID == email || r.WaiterEmail == email)
}

// NextStatus computes the time-driven status at now. It never moves
// backwards and never produces CANCELLED; terminal statuses are kept.
func (r *Reservation) NextStatus(now time.Time) ReservationStatus {
	if r.Status.IsTerminal() {
		return r.Status
	}
	loc := now.Location()
	start, end := r.StartsAt(loc), r.EndsAt(loc)

	switch {
	case !now.Before(end):
		return StatusFinished
	case !now.Before(start) && r.Status == StatusReserved:
		return StatusInProgress
	default:
		return r.Status
	}
}

// ReservationFilter narrows the waiter reservation view
type ReservationFilter struct {
	WaiterEmail string
	LocationID  string           // optional
	Date        *time.Time       // optional
	TimeFrom    types.TimeString // optional, AnyTime means any
	TableNumber string           // optional, AnyTable means any
	Statuses    []ReservationStatus
}
