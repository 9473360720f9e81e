package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Filter wildcards used by the waiter reservation view.
const (
	AnyTime  types.TimeString = "00:00"
	AnyTable                  = "Any Table"
)

// Default booking policy
const (
	DefaultHorizonDays          = 30
	DefaultSameDayNoticeMinutes = 30
	DefaultModifyCutoffMinutes  = 120
	DefaultCancelCutoffMinutes  = 30
)

// Policy holds the time windows of the reservation lifecycle.
type Policy struct {
	HorizonDays          int // bookable dates: today .. today+HorizonDays
	SameDayNoticeMinutes int // same-day start must be at least now+notice
	ModifyCutoffMinutes  int // modify allowed while now < start-cutoff
	CancelCutoffMinutes  int // cancel allowed while now < start-cutoff
}

// DefaultPolicy returns the standard restaurant policy.
func DefaultPolicy() Policy {
	return Policy{
		HorizonDays:          DefaultHorizonDays,
		SameDayNoticeMinutes: DefaultSameDayNoticeMinutes,
		ModifyCutoffMinutes:  DefaultModifyCutoffMinutes,
		CancelCutoffMinutes:  DefaultCancelCutoffMinutes,
	}
}
