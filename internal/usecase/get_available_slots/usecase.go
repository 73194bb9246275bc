package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	spaceRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SpaceBookingService/pkg/types"
)

// UseCase use case для получения свободных слотов пространства
type UseCase struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.DefaultGranularityMinutes <= 0 {
		settings.DefaultGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Для пространства не в статусе available возвращается пустой список вместе со статусом.
// Сегодня уже начавшиеся слоты не возвращаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, space=%d, date=%s, granularity=%d",
		req.UserID, req.SpaceID, req.Date.Format(domain.DateFormat), req.GranularityMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = uc.settings.DefaultGranularityMinutes
	}

	// 2. Дата относительно текущего дня площадки
	date := domain.NormalizeDate(req.Date)
	now := uc.timeProvider.Now().In(uc.settings.Location)
	if err := domain.ValidateDate(date, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем пространство
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("GetAvailableSlots: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %w", ErrInternal, err)
	}

	resp := &Response{
		Date:               date,
		Space:              space,
		GranularityMinutes: granularity,
		Slots:              []domain.TimeRange{},
	}

	if !space.IsBookable() {
		uc.logger.Info("GetAvailableSlots: space id=%d is %s, no slots", space.ID, space.Status)
		return resp, nil
	}

	// 4. Получаем активные бронирования на дату
	active, err := uc.reservationRepo.GetActiveBySpaceAndDate(ctx, space.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
	}

	// 5. Считаем свободные слоты
	isToday := date.Equal(domain.NormalizeDate(now))
	current := types.NewTimeString(now)
	for slot := range domain.OpenSlots(*space, date, active, granularity) {
		if isToday && slot.Start.IsBefore(current) {
			continue
		}
		resp.Slots = append(resp.Slots, slot)
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for space=%d on %s",
		len(resp.Slots), space.ID, date.Format(domain.DateFormat))
	return resp, nil
}
