package update_space

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces"
)

const (
	msgInvalidSpaceID     = "некорректный ID пространства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные пространства"
	msgMissingActor       = "требуется авторизация"
	msgNotFound           = "пространство не найдено"
	msgForbidden          = "доступ запрещен"
	msgDuplicateName      = "пространство с таким названием уже существует"
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

// Handle PUT /api/v1/admin/spaces/{spaceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req UpdateSpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/spaces/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	space, err := h.service.Update(r.Context(), spaceID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, spaces.ErrInvalidInput):
			h.logger.Warn("PUT /admin/spaces/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, spaces.ErrSpaceNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spaces.ErrDuplicateName):
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, domain.ErrUnauthorized):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /admin/spaces/{id} - Failed to update space: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/spaces/{id} - Space updated successfully: space_id=%d", spaceID)
	handlers.RespondJSON(w, http.StatusOK, space)
}
