package get_available_slots

import (
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

// Settings параметры расчёта слотов из конфигурации
type Settings struct {
	DefaultGranularityMinutes int            // ширина слота, если не задана в запросе
	AdvanceBookingDays        int            // 0 - без ограничений
	Location                  *time.Location // часовой пояс площадки
}

// Request модель запроса на получение свободных слотов
type Request struct {
	UserID             int64     // ID пользователя (для логирования, не влияет на результат)
	SpaceID            int64     // ID пространства
	Date               time.Time // Дата (без времени)
	GranularityMinutes int       // Ширина слота; 0 - значение из конфигурации
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date               time.Time          // Дата, на которую запрашивались слоты
	Space              *domain.Space      // Пространство (статус объясняет пустой список)
	GranularityMinutes int                // Фактическая ширина слота
	Slots              []domain.TimeRange // Свободные слоты по возрастанию
}
