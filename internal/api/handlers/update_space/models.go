package update_space

import (
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces/models"
)

// UpdateSpaceRequest HTTP request model. Описание заменяется целиком.
type UpdateSpaceRequest struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	OpenTime    string   `json:"openTime,omitempty"`
	CloseTime   string   `json:"closeTime,omitempty"`
	Equipment   []string `json:"equipment,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSpaceRequest) ToServiceRequest(actor domain.Actor) *models.UpdateSpaceRequest {
	return &models.UpdateSpaceRequest{
		Actor:       actor,
		Name:        r.Name,
		Kind:        r.Kind,
		Location:    r.Location,
		Capacity:    r.Capacity,
		OpenTime:    r.OpenTime,
		CloseTime:   r.CloseTime,
		Equipment:   r.Equipment,
		Description: r.Description,
	}
}
