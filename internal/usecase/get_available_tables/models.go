package get_available_tables

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса свободных столиков
type Request struct {
	LocationID  string
	Date        time.Time
	Time        types.TimeString // опционально: слоты, начинающиеся не раньше
	Guests      int
	AnyCapacity bool // не фильтровать столики по вместимости
}

// AvailableTable столик и его свободные слоты
type AvailableTable struct {
	LocationID      string
	LocationAddress string
	TableNumber     string
	GuestCapacity   int
	AvailableSlots  []string
}

// Response модель ответа
type Response struct {
	Tables []AvailableTable
}
