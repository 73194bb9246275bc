package get_usage_report

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
	msgInvalidPeriod = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
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

// Handle GET /api/v1/admin/reports/usage
// Query params: from, to (required, YYYY-MM-DD), kind (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	serviceReq, err := ToServiceRequest(actor, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/reports/usage - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	report, err := h.service.UsageReport(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, domain.ErrUnauthorized):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/reports/usage - Failed to build report: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reports/usage - Report built successfully: %s..%s, spaces=%d",
		report.From, report.To, len(report.Spaces))
	handlers.RespondJSON(w, http.StatusOK, report)
}
