package create_space

import (
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces/models"
)

// CreateSpaceRequest HTTP request model
type CreateSpaceRequest struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	OpenTime    string   `json:"openTime,omitempty"`  // "08:00"
	CloseTime   string   `json:"closeTime,omitempty"` // "20:00"
	Equipment   []string `json:"equipment,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateSpaceRequest) ToServiceRequest(actor domain.Actor) *models.CreateSpaceRequest {
	return &models.CreateSpaceRequest{
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
