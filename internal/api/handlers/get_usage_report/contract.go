package get_usage_report

import (
	"context"

	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	UsageReport(ctx context.Context, req *models.UsageReportRequest) (*models.UsageReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
