package add_admin_notes

import (
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

// AdminNoteRequest HTTP request model
type AdminNoteRequest struct {
	Note string `json:"note"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AdminNoteRequest) ToServiceRequest(actor domain.Actor) *models.AdminNoteRequest {
	return &models.AdminNoteRequest{
		Actor: actor,
		Note:  r.Note,
	}
}
