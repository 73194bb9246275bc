package create_reservation

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

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID int64            // ID пользователя из токена
	SpaceID     int64            // ID пространства
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Начало, например "09:00"
	EndTime     types.TimeString // Окончание, например "10:30"
	PartySize   int              // Количество участников
	Purpose     string           // Цель бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	Space       *domain.Space
}
