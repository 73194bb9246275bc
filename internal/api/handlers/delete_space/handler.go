package delete_space

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
	msgInvalidSpaceID = "некорректный ID пространства"
	msgMissingActor   = "требуется авторизация"
	msgNotFound       = "пространство не найдено"
	msgForbidden      = "доступ запрещен"
	msgSpaceInUse     = "у пространства есть предстоящие бронирования"
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

// Handle DELETE /api/v1/admin/spaces/{spaceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	if err := h.service.Delete(r.Context(), spaceID, actor); err != nil {
		switch {
		case errors.Is(err, spaces.ErrSpaceNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spaces.ErrSpaceInUse):
			h.logger.Warn("DELETE /admin/spaces/{id} - Space has upcoming reservations: space_id=%d", spaceID)
			handlers.RespondConflict(w, msgSpaceInUse)

		case errors.Is(err, domain.ErrUnauthorized):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /admin/spaces/{id} - Failed to delete space: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/spaces/{id} - Space deleted successfully: space_id=%d, user_id=%d", spaceID, actor.UserID)
	w.WriteHeader(http.StatusNoContent)
}
