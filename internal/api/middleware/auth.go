// Package middleware HTTP middleware: аутентификация по заголовкам, метрики, ограничение частоты, CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"

	msgUnauthorized = "требуется аутентификация"
	msgInvalidRole  = "некорректная роль пользователя"
)

type actorKey struct{}

// Auth кладет в контекст пользователя из заголовков X-User-Email и X-User-Role.
// Роль по умолчанию CUSTOMER.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(HeaderUserEmail))
		if email == "" {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		role := domain.Role(strings.ToUpper(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
		switch role {
		case "":
			role = domain.RoleCustomer
		case domain.RoleCustomer, domain.RoleWaiter:
		default:
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		actor := domain.Actor{Email: email, Role: role}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor возвращает контекст с пользователем
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext пользователь, положенный Auth
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
