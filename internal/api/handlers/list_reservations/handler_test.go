package list_reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeService struct {
	waiterErr error
	gotWaiter *models.GetWaiterReservationsRequest
}

func (f *fakeService) ListByUser(_ context.Context, actor domain.Actor) (*models.ReservationListResponse, error) {
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{{ID: "r1", UserID: actor.Email}}}, nil
}

func (f *fakeService) ListByWaiter(_ context.Context, req *models.GetWaiterReservationsRequest) (*models.WaiterReservationListResponse, error) {
	f.gotWaiter = req
	if f.waiterErr != nil {
		return nil, f.waiterErr
	}
	return &models.WaiterReservationListResponse{Reservations: []models.WaiterReservationResponse{{ReservationID: "r2"}}}, nil
}

func call(h *Handler, url string, actor *domain.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleCustomer(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := call(h, "/api/v1/reservations", &domain.Actor{Email: "alice@x.com", Role: domain.RoleCustomer})
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "alice@x.com", list[0].UserID)

	assert.Equal(t, http.StatusUnauthorized, call(h, "/api/v1/reservations", nil).Code)
}

func TestHandleWaiterFilters(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())
	waiter := &domain.Actor{Email: "w1@x.com", Role: domain.RoleWaiter}

	rec := call(h, "/api/v1/reservations?date=2025-06-02&time=12:15&tableNumber=T1", waiter)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotWaiter)
	assert.Equal(t, "w1@x.com", svc.gotWaiter.WaiterEmail)
	assert.Equal(t, "12:15", svc.gotWaiter.Time)
	assert.Equal(t, "T1", svc.gotWaiter.TableNumber)
	require.NotNil(t, svc.gotWaiter.Date)
	assert.Equal(t, "2025-06-02", domain.DateKey(*svc.gotWaiter.Date))

	assert.Equal(t, http.StatusBadRequest, call(h, "/api/v1/reservations?date=tomorrow", waiter).Code)

	h = NewHandler(&fakeService{waiterErr: reservations.ErrForbidden}, logger.NewNop())
	assert.Equal(t, http.StatusForbidden, call(h, "/api/v1/reservations", waiter).Code)
}
