package get_available_tables

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableTables "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_tables"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidGuests    = "некорректное количество гостей"
	msgInvalidInput     = "некорректные параметры запроса"
	msgDateOutOfRange   = "дата вне допустимого диапазона бронирования"
	msgTimePassed       = "указанное время уже прошло"
	msgLocationNotFound = "локация не найдена"
	msgNoTablesFound    = "нет свободных столиков"
)

// anyCapacity значение guests, отключающее фильтр по вместимости
const anyCapacity = "any"

type Handler struct {
	useCase GetAvailableTablesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTablesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/available-tables?date=YYYY-MM-DD&time=HH:MM&guests=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]
	query := r.URL.Query()

	date, err := domain.ParseDate(query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /locations/{id}/available-tables - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var at types.TimeString
	if raw := query.Get("time"); raw != "" {
		at, err = types.NewTimeStringFromString(raw)
		if err != nil {
			h.logger.Warn("GET /locations/{id}/available-tables - Invalid time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
	}

	req := &getAvailableTables.Request{LocationID: locationID, Date: date, Time: at}
	switch raw := strings.TrimSpace(query.Get("guests")); {
	case raw == "" || strings.EqualFold(raw, anyCapacity):
		req.AnyCapacity = true
	default:
		guests, err := strconv.Atoi(raw)
		if err != nil || guests < 1 {
			h.logger.Warn("GET /locations/{id}/available-tables - Invalid guests: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidGuests)
			return
		}
		req.Guests = guests
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTables.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/available-tables - Invalid input: location=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableTables.ErrDateOutOfRange):
			h.logger.Warn("GET /locations/{id}/available-tables - Date out of range: location=%s", locationID)
			handlers.RespondUnprocessable(w, msgDateOutOfRange)

		case errors.Is(err, getAvailableTables.ErrTimePassed):
			h.logger.Warn("GET /locations/{id}/available-tables - Time passed: location=%s", locationID)
			handlers.RespondUnprocessable(w, msgTimePassed)

		case errors.Is(err, getAvailableTables.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/available-tables - Location not found: location=%s", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailableTables.ErrNoTablesFound):
			h.logger.Info("GET /locations/{id}/available-tables - No tables: location=%s", locationID)
			handlers.RespondNotFound(w, msgNoTablesFound)

		default:
			h.logger.Error("GET /locations/{id}/available-tables - Failed to get tables: location=%s, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/available-tables - Found %d tables: location=%s", len(result.Tables), locationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
