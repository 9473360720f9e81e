package get_available_tables

import (
	getAvailableTables "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_tables"
)

// AvailableTableResponse HTTP модель столика со свободными слотами
type AvailableTableResponse struct {
	LocationID      string   `json:"locationId"`
	LocationAddress string   `json:"locationAddress"`
	TableNumber     string   `json:"tableNumber"`
	Capacity        int      `json:"capacity"`
	AvailableSlots  []string `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTables.Response) []AvailableTableResponse {
	out := make([]AvailableTableResponse, 0, len(resp.Tables))
	for _, t := range resp.Tables {
		out = append(out, AvailableTableResponse{
			LocationID:      t.LocationID,
			LocationAddress: t.LocationAddress,
			TableNumber:     t.TableNumber,
			Capacity:        t.GuestCapacity,
			AvailableSlots:  t.AvailableSlots,
		})
	}
	return out
}
