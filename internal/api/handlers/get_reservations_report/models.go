package get_reservations_report

import (
	"net/url"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(actor domain.Actor, query url.Values) (*models.ReservationsReportRequest, error) {
	from, err := handlers.OptionalDate(query, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.OptionalDate(query, "to")
	if err != nil {
		return nil, err
	}
	spaceID, err := handlers.OptionalInt64(query, "spaceId")
	if err != nil {
		return nil, err
	}

	return &models.ReservationsReportRequest{
		Actor:   actor,
		From:    from,
		To:      to,
		Status:  handlers.OptionalString(query, "status"),
		SpaceID: spaceID,
	}, nil
}
