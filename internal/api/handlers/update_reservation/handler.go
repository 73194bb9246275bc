package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/SpaceBookingService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени, ожидается HH:MM"
	msgMissingActor         = "требуется авторизация"
	msgInvalidInput         = "некорректные данные бронирования"
	msgInvalidRange         = "время начала должно быть раньше времени окончания"
	msgInvalidPartySize     = "количество участников должно быть положительным"
	msgInvalidPurpose       = "цель бронирования должна содержать от 5 до 300 символов"
	msgPastSchedule         = "выбранное время уже прошло"
	msgDateTooFar           = "дата бронирования слишком далеко в будущем"
	msgNotFound             = "бронирование не найдено"
	msgSpaceNotFound        = "пространство не найдено"
	msgForbidden            = "доступ запрещен"
	msgNotModifiable        = "бронирование нельзя изменить в текущем статусе"
	msgSlotConflict         = "выбранное время пересекается с другим бронированием"
	msgCapacityExceeded     = "количество участников превышает вместимость пространства"
	msgSpaceUnavailable     = "пространство недоступно для бронирования"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse request: %v", err)
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
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrSpaceNotFound):
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("PUT /reservations/{id} - Access denied: reservation_id=%d, user_id=%d", reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrNotModifiable):
			handlers.RespondConflict(w, msgNotModifiable)

		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("PUT /reservations/{id} - Slot conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, domain.ErrCapacityExceeded):
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, domain.ErrSpaceUnavailable):
			handlers.RespondConflict(w, msgSpaceUnavailable)

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

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d, user_id=%d",
		reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(result.Reservation))
}
