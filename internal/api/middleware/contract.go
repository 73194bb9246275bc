package middleware

import (
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

// TokenVerifier проверяет bearer токен и возвращает участника
type TokenVerifier interface {
	Verify(token string) (domain.Actor, error)
}

// HTTPMetrics интерфейс для учёта HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
