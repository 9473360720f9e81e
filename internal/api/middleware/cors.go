package middleware

import (
	"fmt"
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
)

// Logger логгер для сообщений о панике
type Logger interface {
	Error(format string, v ...interface{})
}

type recoveryLogger struct {
	logger Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("panic recovered: %s", fmt.Sprint(v...))
}

// Wrap оборачивает роутер: восстановление после паники и CORS.
// Пустой allowedOrigins отключает CORS.
func Wrap(h http.Handler, allowedOrigins []string, logger Logger) http.Handler {
	if len(allowedOrigins) > 0 {
		h = gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(allowedOrigins),
			gorillaHandlers.AllowedMethods([]string{
				http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
			}),
			gorillaHandlers.AllowedHeaders([]string{"Content-Type", HeaderUserEmail, HeaderUserRole}),
		)(h)
	}
	return gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{logger: logger}),
	)(h)
}
