package get_available_tables

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// filterSlots оставляет слоты, начинающиеся не раньше from, а сегодня еще и не раньше now
func filterSlots(free []domain.TimeSlot, from types.TimeString, today bool, now time.Time) []string {
	current := types.NewTimeString(now)

	out := make([]string, 0, len(free))
	for _, s := range free {
		if !from.IsZero() && s.Start.IsBefore(from) {
			continue
		}
		if today && s.Start.IsBefore(current) {
			continue
		}
		out = append(out, s.Label())
	}
	return out
}
