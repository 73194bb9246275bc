package models

import (
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

// Request модели

// CreateSpaceRequest запрос на регистрацию пространства
type CreateSpaceRequest struct {
	Actor       domain.Actor
	Name        string
	Kind        string
	Location    string
	Capacity    int
	OpenTime    string // "08:00", пусто - значение по умолчанию
	CloseTime   string // "20:00", пусто - значение по умолчанию
	Equipment   []string
	Description *string
}

// UpdateSpaceRequest запрос на полную замену описания пространства.
// Поля совпадают с CreateSpaceRequest; статус меняется отдельно.
type UpdateSpaceRequest CreateSpaceRequest

// ListSpacesRequest запрос на получение списка пространств
type ListSpacesRequest struct {
	Kind   *string
	Status *string
	Search *string // подстрока названия, расположения или описания
	Page   int
	Limit  int
}

// UpdateStatusRequest запрос на смену статуса пространства
type UpdateStatusRequest struct {
	Actor  domain.Actor
	Status string
}

// Response модели

// SpaceResponse ответ с данными пространства
type SpaceResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	OpenTime    string   `json:"openTime"`
	CloseTime   string   `json:"closeTime"`
	Status      string   `json:"status"`
	Equipment   []string `json:"equipment"`
	Description *string  `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SpaceListResponse страница реестра пространств
type SpaceListResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Pages  int             `json:"pages"`
}

// FromDomainSpace конвертирует domain модель в DTO
func FromDomainSpace(s *domain.Space) *SpaceResponse {
	if s == nil {
		return nil
	}

	equipment := s.Equipment
	if equipment == nil {
		equipment = []string{}
	}

	return &SpaceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Kind:        string(s.Kind),
		Location:    s.Location,
		Capacity:    s.Capacity,
		OpenTime:    s.OperatingHours.Start.String(),
		CloseTime:   s.OperatingHours.End.String(),
		Status:      string(s.Status),
		Equipment:   equipment,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSpacePage конвертирует страницу domain моделей в DTO
func FromDomainSpacePage(page *domain.SpacePage) *SpaceListResponse {
	resp := &SpaceListResponse{
		Spaces: make([]SpaceResponse, 0, len(page.Spaces)),
		Total:  page.Total,
		Page:   page.Page,
		Limit:  page.Limit,
		Pages:  page.Pages(),
	}
	for _, s := range page.Spaces {
		if item := FromDomainSpace(s); item != nil {
			resp.Spaces = append(resp.Spaces, *item)
		}
	}
	return resp
}
