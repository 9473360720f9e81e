package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Exposition(t *testing.T) {
	m := New("reservation-test")

	m.ObserveHTTP(http.MethodGet, "/api/v1/reservations", http.StatusOK, 10*time.Millisecond)
	m.ObserveQuery("select", time.Millisecond, errors.New("boom"))
	m.IncSlotConflict("table")
	m.IncSlotConflict("table")
	m.IncReservationEvent("created")

	body := scrape(t, m)

	assert.Contains(t, body, `http_requests_total{method="GET",route="/api/v1/reservations",service="reservation-test",status="200"} 1`)
	assert.Contains(t, body, `db_query_errors_total{operation="select",service="reservation-test"} 1`)
	assert.Contains(t, body, `slot_update_conflicts_total{owner_kind="table",service="reservation-test"} 2`)
	assert.Contains(t, body, `reservations_total{event="created",service="reservation-test"} 1`)
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("b")
	})
}
