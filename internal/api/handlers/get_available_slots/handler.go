package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SpaceBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSpaceID     = "некорректный ID пространства"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGranularity = "некорректная ширина слота"
	msgInvalidParams      = "некорректные параметры запроса"
	msgPastDate           = "дата уже прошла"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgSpaceNotFound      = "пространство не найдено"
	msgMissingActor       = "требуется авторизация"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/available-slots
// Query params: date (required, YYYY-MM-DD), granularity (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/available-slots - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(actor.UserID, spaceID, query.Get("date"), query.Get("granularity"))
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/available-slots - Invalid query: %v", err)
		switch {
		case errors.Is(err, errMissingDate):
			handlers.RespondBadRequest(w, msgMissingDate)
		case errors.Is(err, errInvalidGranularity):
			handlers.RespondBadRequest(w, msgInvalidGranularity)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, domain.ErrPastSchedule):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, domain.ErrBeyondHorizon):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{id}/available-slots - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		default:
			h.logger.Error("GET /spaces/{id}/available-slots - Failed to get slots: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/available-slots - Slots retrieved successfully: space_id=%d, slots_count=%d",
		spaceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
