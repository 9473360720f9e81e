package cli

import (
	"net/http"

	"github.com/gorilla/mux"

	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getAvailableTablesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_tables"
	getReservationDetailsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation_details"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	modifyReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/modify_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
)

// newRouter маршруты /api/v1 и /metrics. rateLimiter может быть nil.
func newRouter(a *app, rateLimiter *middleware.RateLimiter) http.Handler {
	getAvailableTables := getAvailableTablesHandler.NewHandler(a.getAvailableTables, a.log)
	createReservation := createReservationHandler.NewHandler(a.createReservation, a.log)
	listReservations := listReservationsHandler.NewHandler(a.reservation, a.log)
	getReservationDetails := getReservationDetailsHandler.NewHandler(a.reservation, a.log)
	modifyReservation := modifyReservationHandler.NewHandler(a.modifyReservation, a.log)
	cancelReservation := cancelReservationHandler.NewHandler(a.cancelReservation, a.log)

	r := mux.NewRouter()

	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(a.cfg.Metrics.Path, a.metrics.Handler()).Methods(http.MethodGet)
		a.log.Info("Prometheus metrics endpoint exposed at %s", a.cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	if rateLimiter != nil {
		api.Use(rateLimiter.Limit)
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/locations/{locationId}/available-tables",
		getAvailableTables.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (X-User-Email, X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/waiter", createReservation.HandleByWaiter).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/details", getReservationDetails.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", modifyReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	return middleware.Wrap(r, a.cfg.CORS.AllowedOrigins, a.log)
}
