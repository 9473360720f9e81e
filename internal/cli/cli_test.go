package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

const seedFile = `
[[locations]]
id = "L1"
address = "14 Rustaveli Ave"

[[tables]]
location_id = "L1"
table_number = "T1"
guest_capacity = 4
slots = [{ date = "today+1", time_slots = ["10:30 - 12:00", "12:15 - 13:45"] }]

[[waiters]]
email = "w1@x.com"
name = "Nino"
location_id = "L1"
slots = [{ date = "today+1", all = true }]
`

func newMemoryApp(t *testing.T) *app {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(seedFile), 0o600))

	cfg := config.Default()
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.Storage.SeedFile = path
	cfg.Metrics.Enabled = true

	a, err := newApp(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func do(t *testing.T, h http.Handler, method, url, email, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	if email != "" {
		req.Header.Set("X-User-Email", email)
		req.Header.Set("X-User-Role", role)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReservationFlow(t *testing.T) {
	a := newMemoryApp(t)
	h := newRouter(a, nil)
	tomorrow := domain.DateKey(a.clock.Now().AddDate(0, 0, 1))

	rec := do(t, h, http.MethodGet, "/api/v1/locations/L1/available-tables?date="+tomorrow+"&guests=4", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := `{"locationId":"L1","tableNumber":"T1","date":"` + tomorrow + `","timeFrom":"10:30","timeTo":"12:00","guestsNumber":4}`
	rec = do(t, h, http.MethodPost, "/api/v1/reservations", "alice@x.com", "CUSTOMER", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID          string   `json:"id"`
		WaiterEmail string   `json:"waiterEmail"`
		Warnings    []string `json:"warnings"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "w1@x.com", created.WaiterEmail)
	assert.Empty(t, created.Warnings)

	// тот же слот второй раз
	rec = do(t, h, http.MethodPost, "/api/v1/reservations", "bob@x.com", "CUSTOMER", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/locations/L1/available-tables?date="+tomorrow+"&guests=2", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tables []struct {
		AvailableSlots []string `json:"availableSlots"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tables))
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"12:15 - 13:45"}, tables[0].AvailableSlots)

	rec = do(t, h, http.MethodGet, "/api/v1/reservations", "w1@x.com", "WAITER", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.ID)

	rec = do(t, h, http.MethodPatch, "/api/v1/reservations/"+created.ID, "alice@x.com", "CUSTOMER", `{"timeFrom":"12:15","timeTo":"13:45"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/v1/reservations/"+created.ID, "alice@x.com", "CUSTOMER", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/locations/L1/available-tables?date="+tomorrow+"&guests=2", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tables))
	assert.Equal(t, []string{"10:30 - 12:00", "12:15 - 13:45"}, tables[0].AvailableSlots)

	rec = do(t, h, http.MethodPost, "/api/v1/reservations", "", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reservation")
}

func TestRateLimitedRouter(t *testing.T) {
	a := newMemoryApp(t)
	h := newRouter(a, nil)
	limited := newRouter(a, middleware.NewRateLimiter(0.001, 1))

	url := "/api/v1/locations/L1/available-tables?date=" + domain.DateKey(a.clock.Now().AddDate(0, 0, 1))
	assert.Equal(t, http.StatusOK, do(t, limited, http.MethodGet, url, "", "", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, limited, http.MethodGet, url, "", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, url, "", "", "").Code)
}

type fakeAdvancer struct {
	calls int
	err   error
}

func (f *fakeAdvancer) AutoAdvanceStatuses(ctx context.Context) (int, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("no deadline")
	}
	return 2, f.err
}

func TestStatusJob(t *testing.T) {
	adv := &fakeAdvancer{}
	job := &statusJob{advancer: adv, timeout: time.Second, logger: logger.NewNop()}
	job.Run()
	job.Run()
	assert.Equal(t, 2, adv.calls)

	sched := newScheduler()
	assert.Error(t, sched.add("not a cron spec", job))
	require.NoError(t, sched.add("@every 1h", job))
	sched.start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sched.stop(ctx)
}

func TestRootCommands(t *testing.T) {
	root := NewRoot()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "advance-statuses", "seed"}, names)

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, defaultConfigPath, flag.DefValue)
}

func TestMigrateRejectsMemoryStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\ndriver = \"memory\"\n"), 0o600))

	root := NewRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"migrate", "--config", path})

	assert.ErrorIs(t, root.Execute(), errMemoryStorage)
}
