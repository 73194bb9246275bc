package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error
	SetAdminNote(ctx context.Context, id int64, note string) error
	List(ctx context.Context, filter domain.ReservationFilter) (*domain.ReservationPage, error)
	UsageReport(ctx context.Context, from, to time.Time, kind *domain.SpaceKind) ([]*domain.SpaceUsage, error)
	ReservationStats(ctx context.Context, filter domain.ReportFilter) (*domain.ReservationStats, error)
	RequesterReport(ctx context.Context, from, to *time.Time) ([]*domain.RequesterUsage, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для учёта переходов жизненного цикла
type Metrics interface {
	ObserveTransition(from, to, trigger string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
