package get_users_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

const (
	msgMissingActor  = "требуется авторизация"
	msgInvalidPeriod = "некорректный период, ожидается формат YYYY-MM-DD"
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

// Handle GET /api/v1/admin/reports/users
// Query params: from, to (YYYY-MM-DD, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	query := r.URL.Query()
	from, err := handlers.OptionalDate(query, "from")
	if err != nil {
		h.logger.Warn("GET /admin/reports/users - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.OptionalDate(query, "to")
	if err != nil {
		h.logger.Warn("GET /admin/reports/users - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	report, err := h.service.RequesterReport(r.Context(), &models.RequesterReportRequest{
		Actor: actor,
		From:  from,
		To:    to,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, domain.ErrUnauthorized):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/reports/users - Failed to build report: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reports/users - Report built successfully: requesters=%d", len(report.Requesters))
	handlers.RespondJSON(w, http.StatusOK, report)
}
