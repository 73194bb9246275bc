package get_reservations_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations"
)

const (
	msgMissingActor  = "требуется авторизация"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/admin/reports/reservations
// Query params: from, to (YYYY-MM-DD), status, spaceId (все опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	serviceReq, err := ToServiceRequest(actor, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/reports/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	report, err := h.service.ReservationsReport(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, domain.ErrUnauthorized):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/reports/reservations - Failed to build report: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reports/reservations - Report built successfully: total=%d", report.Total)
	handlers.RespondJSON(w, http.StatusOK, report)
}
