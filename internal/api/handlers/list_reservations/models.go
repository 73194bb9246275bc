package list_reservations

import (
	"net/url"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(actor domain.Actor, query url.Values) (*models.ListAllRequest, error) {
	page, limit, err := handlers.ParsePagination(query)
	if err != nil {
		return nil, err
	}

	spaceID, err := handlers.OptionalInt64(query, "spaceId")
	if err != nil {
		return nil, err
	}

	date, err := handlers.OptionalDate(query, "date")
	if err != nil {
		return nil, err
	}

	return &models.ListAllRequest{
		Actor:   actor,
		Status:  handlers.OptionalString(query, "status"),
		SpaceID: spaceID,
		Date:    date,
		Page:    page,
		Limit:   limit,
	}, nil
}
