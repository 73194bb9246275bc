package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/domain"
)

type contextKey int

const (
	actorKey contextKey = iota
	requestIDKey
)

const (
	msgMissingToken  = "отсутствует токен авторизации"
	msgInvalidHeader = "некорректный формат заголовка Authorization"
	msgInvalidToken  = "недействительный токен"
	msgAdminRequired = "требуются права администратора"
)

// Auth проверяет заголовок "Authorization: Bearer <jwt>" и кладёт участника в контекст
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("Auth: missing authorization header for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				logger.Warn("Auth: malformed authorization header for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidHeader)
				return
			}

			actor, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("Auth: token rejected for %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		if !actor.IsAdministrator() {
			handlers.RespondForbidden(w, msgAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor кладёт участника в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает участника, положенного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
