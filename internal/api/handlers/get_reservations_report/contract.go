package get_reservations_report

import (
	"context"

	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ReservationsReport(ctx context.Context, req *models.ReservationsReportRequest) (*models.ReservationsReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
