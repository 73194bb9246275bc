package update_reservation

import (
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/pkg/types"
)

// Settings ограничения бронирования из конфигурации
type Settings struct {
	AdvanceBookingDays int            // 0 - без ограничений
	Location           *time.Location // часовой пояс площадки
}

// Request модель запроса на изменение бронирования.
// Поля со значением nil остаются без изменений.
type Request struct {
	Actor         domain.Actor
	ReservationID int64
	SpaceID       *int64
	Date          *time.Time
	StartTime     *types.TimeString
	EndTime       *types.TimeString
	PartySize     *int
	Purpose       *string
}

// Response модель ответа с изменённым бронированием
type Response struct {
	Reservation *domain.Reservation
	Space       *domain.Space
}
