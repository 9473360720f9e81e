package get_reservation_details

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeService struct {
	err   error
	gotID string
}

func (f *fakeService) GetDetails(_ context.Context, id string, _ domain.Actor) (*models.ReservationDetailsResponse, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationDetailsResponse{ReservationID: id, TimeFrom: "12:15", TimeTo: "13:45"}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{name: "not found", err: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: reservations.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "too late", err: reservations.ErrTooLate, wantStatus: http.StatusUnprocessableEntity},
		{name: "not modifiable", err: reservations.ErrNotModifiable, wantStatus: http.StatusConflict},
		{name: "internal", err: reservations.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			r := mux.NewRouter()
			r.HandleFunc("/reservations/{reservationId}/details", NewHandler(svc, logger.NewNop()).Handle)

			req := httptest.NewRequest(http.MethodGet, "/reservations/abc/details", nil)
			req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{Email: "alice@x.com"}))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "abc", svc.gotID)
		})
	}
}
