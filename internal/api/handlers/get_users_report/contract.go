package get_users_report

import (
	"context"

	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	RequesterReport(ctx context.Context, req *models.RequesterReportRequest) (*models.RequesterReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
