package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/integrations/identity"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
)

const secret = "test-secret"

func issue(t *testing.T, actor domain.Actor) string {
	t.Helper()
	return sign(t, secret, actor)
}

func sign(t *testing.T, key string, actor domain.Actor) string {
	t.Helper()
	claims := identity.Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(actor.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func echoActor(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Actor-Role", string(actor.Role))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	handler := Auth(identity.NewVerifier(secret, ""), logger.Nop())(echoActor(t))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + issue(t, domain.Actor{UserID: 7, Role: domain.RoleRequester}), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/spaces/1", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuth_TokenSignedWithOtherSecret(t *testing.T) {
	token := sign(t, "other", domain.Actor{UserID: 7, Role: domain.RoleRequester})

	handler := Auth(identity.NewVerifier(secret, ""), logger.Nop())(echoActor(t))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := RequireAdmin(ok)

	serve := func(r *http.Request) int {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r))

	r = r.WithContext(WithActor(r.Context(), domain.Actor{UserID: 7, Role: domain.RoleRequester}))
	assert.Equal(t, http.StatusForbidden, serve(r))

	r = r.WithContext(WithActor(r.Context(), domain.Actor{UserID: 1, Role: domain.RoleAdministrator}))
	assert.Equal(t, http.StatusOK, serve(r))
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	incoming := "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, incoming, seen)
}

func TestRecovery(t *testing.T) {
	handler := Recovery(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type recordedRequest struct {
	method string
	route  string
	status int
}

type fakeHTTPMetrics struct{ requests []recordedRequest }

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/v1/reservations/{reservationId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/reservations/42", nil))

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{
		method: http.MethodGet,
		route:  "/api/v1/reservations/{reservationId}",
		status: http.StatusNotFound,
	}, m.requests[0])
}
