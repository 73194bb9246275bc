package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/space"
)

// UseCase use case для изменения бронирования на месте
type UseCase struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	txManager       TransactionManager
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	txManager TransactionManager,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		txManager:       txManager,
		metrics:         metrics,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute изменяет бронирование в статусе pending или confirmed.
// Проверка конфликтов исключает само изменяемое бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: reservation=%d by user=%d role=%s",
		req.ReservationID, req.Actor.UserID, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.settings.Location)

	var (
		result  *Response
		guarded bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		guarded = false

		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		if err := domain.AuthorizeModification(current, req.Actor); err != nil {
			uc.logger.Warn("UpdateReservation: %v", err)
			return err
		}

		updated, err := merge(current, req)
		if err != nil {
			uc.logger.Warn("UpdateReservation: %v", err)
			return err
		}

		// Любое изменение слота (пространство, дата, границы) проверяется заново:
		// бронирование, которое уже началось, нельзя перенести или продлить
		scheduleChanged := req.SpaceID != nil || req.Date != nil || req.StartTime != nil || req.EndTime != nil
		if scheduleChanged {
			if err := domain.ValidateSchedule(updated.Date, updated.Range.Start, now, uc.settings.AdvanceBookingDays); err != nil {
				uc.logger.Warn("UpdateReservation: schedule validation failed: %v", err)
				return err
			}
		}

		space, err := uc.spaceRepo.GetByID(txCtx, updated.SpaceID)
		if err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				uc.logger.Warn("UpdateReservation: space id=%d not found", updated.SpaceID)
				return ErrSpaceNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get space id=%d: %v", updated.SpaceID, err)
			return fmt.Errorf("%w: failed to get space: %w", ErrInternal, err)
		}

		active, err := uc.reservationRepo.GetActiveBySpaceAndDate(txCtx, updated.SpaceID, updated.Date)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get active reservations: %v", err)
			return fmt.Errorf("%w: failed to get active reservations: %w", ErrInternal, err)
		}

		guarded = true
		admission := domain.AdmissionRequest{
			SpaceID:              updated.SpaceID,
			Date:                 updated.Date,
			Range:                updated.Range,
			PartySize:            updated.PartySize,
			ExcludeReservationID: &current.ID,
		}
		if err := domain.CheckAdmission(admission, *space, active); err != nil {
			uc.logger.Warn("UpdateReservation: rejected: %v", err)
			return err
		}

		if err := uc.reservationRepo.Update(txCtx, updated); err != nil {
			if errors.Is(err, reservationRepo.ErrSlotConflict) {
				uc.logger.Warn("UpdateReservation: overlap caught by storage constraint: %v", err)
				return fmt.Errorf("%w: %v", domain.ErrSlotConflict, err)
			}
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		result = &Response{Reservation: updated, Space: space}
		return nil
	})

	if guarded {
		uc.metrics.ObserveAdmission(domain.AdmissionOutcome(err))
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", result.Reservation.ID)
	return result, nil
}

// merge накладывает заданные поля запроса на копию текущего бронирования
func merge(current *domain.Reservation, req *Request) (*domain.Reservation, error) {
	updated := *current

	if req.SpaceID != nil {
		updated.SpaceID = *req.SpaceID
	}
	if req.Date != nil {
		updated.Date = domain.NormalizeDate(*req.Date)
	}
	if req.PartySize != nil {
		updated.PartySize = *req.PartySize
	}

	start, end := current.Range.Start, current.Range.End
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	timeRange, err := domain.NewTimeRangeFromTimes(start, end)
	if err != nil {
		return nil, err
	}
	updated.Range = timeRange

	if req.Purpose != nil {
		if err := domain.ValidatePurpose(*req.Purpose); err != nil {
			return nil, err
		}
		updated.Purpose = strings.TrimSpace(*req.Purpose)
	}

	return &updated, nil
}
