package create_space

import (
	"errors"
	"net/http"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные пространства"
	msgMissingActor       = "требуется авторизация"
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

// Handle POST /api/v1/admin/spaces
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateSpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/spaces - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	space, err := h.service.Create(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, spaces.ErrInvalidInput):
			h.logger.Warn("POST /admin/spaces - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, spaces.ErrDuplicateName):
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, domain.ErrUnauthorized):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /admin/spaces - Failed to create space: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/spaces - Space created successfully: space_id=%d, name=%q", space.ID, space.Name)
	handlers.RespondJSON(w, http.StatusCreated, space)
}
