package get_usage_report

import (
	"errors"
	"net/url"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

var errMissingPeriod = errors.New("from and to are required")

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(actor domain.Actor, query url.Values) (*models.UsageReportRequest, error) {
	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr == "" || toStr == "" {
		return nil, errMissingPeriod
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &models.UsageReportRequest{
		Actor: actor,
		From:  from,
		To:    to,
		Kind:  handlers.OptionalString(query, "kind"),
	}, nil
}
