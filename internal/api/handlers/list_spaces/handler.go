package list_spaces

import (
	"errors"
	"net/http"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service SpaceService
	logger  Logger
}

func NewHandler(service SpaceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces
// Query params: kind, status, search, page, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, limit, err := handlers.ParsePagination(query)
	if err != nil {
		h.logger.Warn("GET /spaces - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListSpacesRequest{
		Kind:   handlers.OptionalString(query, "kind"),
		Status: handlers.OptionalString(query, "status"),
		Search: handlers.OptionalString(query, "search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, spaces.ErrInvalidInput) {
			h.logger.Warn("GET /spaces - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /spaces - Failed to list spaces: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /spaces - Spaces retrieved successfully: count=%d, total=%d", len(result.Spaces), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
