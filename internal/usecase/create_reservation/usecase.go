package create_reservation

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

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Чтение активных бронирований, проверка конфликтов и запись выполняются в одной
// сериализуемой транзакции; при конфликте сериализации всё замыкание повторяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: requester=%d, space=%d, date=%s, time=%s-%s, party=%d",
		req.RequesterID, req.SpaceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	timeRange, err := domain.NewTimeRangeFromTimes(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateReservation: invalid range: %v", err)
		uc.metrics.ObserveAdmission(domain.AdmissionOutcome(err))
		return nil, err
	}

	if err := domain.ValidatePurpose(req.Purpose); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 2. Дата и время относительно текущего момента в часовом поясе площадки
	date := domain.NormalizeDate(req.Date)
	now := uc.timeProvider.Now().In(uc.settings.Location)
	if err := domain.ValidateSchedule(date, timeRange.Start, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateReservation: schedule validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 3. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		space, err := uc.spaceRepo.GetByID(txCtx, req.SpaceID)
		if err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				uc.logger.Warn("CreateReservation: space id=%d not found", req.SpaceID)
				return ErrSpaceNotFound
			}
			uc.logger.Error("CreateReservation: failed to get space id=%d: %v", req.SpaceID, err)
			return fmt.Errorf("%w: failed to get space: %w", ErrInternal, err)
		}

		active, err := uc.reservationRepo.GetActiveBySpaceAndDate(txCtx, req.SpaceID, date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get active reservations: %v", err)
			return fmt.Errorf("%w: failed to get active reservations: %w", ErrInternal, err)
		}

		admission := domain.AdmissionRequest{
			SpaceID:   space.ID,
			Date:      date,
			Range:     timeRange,
			PartySize: req.PartySize,
		}
		if err := domain.CheckAdmission(admission, *space, active); err != nil {
			uc.logger.Warn("CreateReservation: rejected: %v", err)
			return err
		}

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			SpaceID:     space.ID,
			RequesterID: req.RequesterID,
			Date:        date,
			Range:       timeRange,
			PartySize:   req.PartySize,
			Purpose:     strings.TrimSpace(req.Purpose),
			Status:      domain.StatusPending,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateReservation: overlap caught by storage constraint: %v", err)
				return fmt.Errorf("%w: %v", domain.ErrSlotConflict, err)
			}
			if errors.Is(err, reservationRepo.ErrSpaceNotFound) {
				return ErrSpaceNotFound
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = &Response{Reservation: created, Space: space}
		return nil
	})

	uc.metrics.ObserveAdmission(domain.AdmissionOutcome(err))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.Reservation.ID)
	return result, nil
}
