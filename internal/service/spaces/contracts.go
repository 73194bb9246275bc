package spaces

import (
	"context"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

// SpaceRepository интерфейс реестра пространств
type SpaceRepository interface {
	Create(ctx context.Context, space *domain.Space) (*domain.Space, error)
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	List(ctx context.Context, filter domain.SpaceFilter) (*domain.SpacePage, error)
	Update(ctx context.Context, space *domain.Space) (*domain.Space, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SpaceStatus) error
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	HasUpcoming(ctx context.Context, spaceID int64, from time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
