package modify_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	modifyReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/modify_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeUseCase struct {
	err    error
	gotReq *modifyReservation.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *modifyReservation.Request) (*modifyReservation.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &modifyReservation.Response{
		ID: req.ReservationID, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		TimeFrom: req.TimeFrom, TimeTo: req.TimeTo, TimeSlot: "14:00 - 15:30",
		Status: domain.StatusReserved, Warnings: []string{"old waiter slot was not released"},
	}, nil
}

func patch(uc ModifyReservationUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/reservations/r1", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{Email: "alice@x.com", Role: domain.RoleCustomer}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := patch(uc, `{"timeFrom":"14:00","timeTo":"15:30","guestsNumber":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "r1", uc.gotReq.ReservationID)
	assert.Equal(t, "alice@x.com", uc.gotReq.Actor.Email)
	require.NotNil(t, uc.gotReq.GuestsNumber)
	assert.Equal(t, 3, *uc.gotReq.GuestsNumber)

	var resp ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "14:00 - 15:30", resp.TimeSlot)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Len(t, resp.Warnings, 1)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad body", body: `[]`, wantStatus: http.StatusBadRequest},
		{name: "unpaired time", body: `{"timeFrom":"14:00"}`, err: modifyReservation.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", body: `{}`, err: modifyReservation.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", body: `{}`, err: modifyReservation.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "too late", body: `{}`, err: modifyReservation.ErrTooLate, wantStatus: http.StatusUnprocessableEntity},
		{name: "taken", body: `{}`, err: modifyReservation.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "status", body: `{}`, err: modifyReservation.ErrNotModifiable, wantStatus: http.StatusConflict},
		{name: "internal", body: `{}`, err: modifyReservation.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, patch(&fakeUseCase{err: tt.err}, tt.body).Code)
		})
	}
}
