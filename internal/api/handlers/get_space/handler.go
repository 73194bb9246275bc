package get_space

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces"
)

const (
	msgInvalidSpaceID = "некорректный ID пространства"
	msgNotFound       = "пространство не найдено"
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

// Handle GET /api/v1/spaces/{spaceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	space, err := h.service.GetByID(r.Context(), spaceID)
	if err != nil {
		if errors.Is(err, spaces.ErrSpaceNotFound) {
			h.logger.Warn("GET /spaces/{id} - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /spaces/{id} - Failed to get space: space_id=%d, error=%v", spaceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /spaces/{id} - Space retrieved successfully: space_id=%d", spaceID)
	handlers.RespondJSON(w, http.StatusOK, space)
}
