package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	createReservation "github.com/m04kA/SpaceBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgMissingActor       = "требуется авторизация"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidRange       = "время начала должно быть раньше времени окончания"
	msgInvalidPartySize   = "количество участников должно быть положительным"
	msgInvalidPurpose     = "цель бронирования должна содержать от 5 до 300 символов"
	msgPastSchedule       = "выбранное время уже прошло"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgSpaceNotFound      = "пространство не найдено"
	msgSlotConflict       = "выбранное время пересекается с другим бронированием"
	msgCapacityExceeded   = "количество участников превышает вместимость пространства"
	msgSpaceUnavailable   = "пространство недоступно для бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, space_id=%d", actor.UserID, req.SpaceID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, domain.ErrCapacityExceeded):
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, domain.ErrSpaceUnavailable):
			handlers.RespondConflict(w, msgSpaceUnavailable)

		case errors.Is(err, createReservation.ErrSpaceNotFound):
			h.logger.Warn("POST /reservations - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, domain.ErrInvalidPartySize):
			handlers.RespondBadRequest(w, msgInvalidPartySize)

		case errors.Is(err, domain.ErrInvalidPurpose):
			handlers.RespondBadRequest(w, msgInvalidPurpose)

		case errors.Is(err, domain.ErrPastSchedule):
			handlers.RespondBadRequest(w, msgPastSchedule)

		case errors.Is(err, domain.ErrBeyondHorizon):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, space_id=%d, error=%v",
				actor.UserID, req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, space_id=%d",
		result.Reservation.ID, actor.UserID, req.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
