package get_user_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

const (
	msgMissingActor  = "требуется авторизация"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/me/reservations
// Query params: status, page, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	query := r.URL.Query()
	page, limit, err := handlers.ParsePagination(query)
	if err != nil {
		h.logger.Warn("GET /users/me/reservations - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListMine(r.Context(), &models.ListMineRequest{
		Actor:  actor,
		Status: handlers.OptionalString(query, "status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /users/me/reservations - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /users/me/reservations - Failed to get reservations: user_id=%d, error=%v",
			actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/reservations - Reservations retrieved successfully: user_id=%d, count=%d",
		actor.UserID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
