package add_admin_notes

import (
	"context"

	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	AddAdminNote(ctx context.Context, id int64, req *models.AdminNoteRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
