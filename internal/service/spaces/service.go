package spaces

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	spaceRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces/models"
)

// Settings параметры сервиса из конфигурации
type Settings struct {
	Location *time.Location // часовой пояс площадки, от него считается "сегодня"
}

// Service сервис реестра пространств
type Service struct {
	spaceRepo       SpaceRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса пространств
func NewService(
	spaceRepo SpaceRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) *Service {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Service{
		spaceRepo:       spaceRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает пространство по ID.
// Публичный метод - доступен всем авторизованным пользователям.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SpaceResponse, error) {
	s.logger.Info("GetByID: fetching space id=%d", id)

	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("GetByID: space id=%d not found", id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("GetByID: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSpace(space), nil
}

// List возвращает страницу реестра с фильтрацией по типу, статусу и тексту
func (s *Service) List(ctx context.Context, req *models.ListSpacesRequest) (*models.SpaceListResponse, error) {
	s.logger.Info("List: fetching spaces, kind=%v, status=%v, search=%v, page=%d", req.Kind, req.Status, req.Search, req.Page)

	var filter domain.SpaceFilter

	if req.Kind != nil {
		k := domain.SpaceKind(*req.Kind)
		if !k.IsValid() {
			s.logger.Warn("List: invalid kind=%q", *req.Kind)
			return nil, fmt.Errorf("%w: unknown space kind %q", ErrInvalidInput, *req.Kind)
		}
		filter.Kind = &k
	}

	if req.Status != nil {
		st := domain.SpaceStatus(*req.Status)
		if !st.IsValid() {
			s.logger.Warn("List: invalid status=%q", *req.Status)
			return nil, fmt.Errorf("%w: unknown space status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &st
	}

	if req.Search != nil {
		if search := strings.TrimSpace(*req.Search); search != "" {
			filter.Search = &search
		}
	}

	applyPaging(&filter, req.Page, req.Limit)

	page, err := s.spaceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d of %d spaces", len(page.Spaces), page.Total)
	return models.FromDomainSpacePage(page), nil
}

// Create регистрирует новое пространство в статусе available.
// Доступно только администраторам.
func (s *Service) Create(ctx context.Context, req *models.CreateSpaceRequest) (*models.SpaceResponse, error) {
	s.logger.Info("Create: creating space name=%q, kind=%s by user=%d", req.Name, req.Kind, req.Actor.UserID)

	if !req.Actor.IsAdministrator() {
		s.logger.Warn("Create: user=%d is not an administrator", req.Actor.UserID)
		return nil, fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	space, err := toDomainSpace(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.spaceRepo.Create(ctx, space)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrDuplicateName) {
			s.logger.Warn("Create: space name=%q already exists", space.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created space id=%d", created.ID)
	return models.FromDomainSpace(created), nil
}

// UpdateStatus меняет статус пространства.
// Существующие бронирования не затрагиваются, новые допускаются только в статусе available.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.SpaceResponse, error) {
	s.logger.Info("UpdateStatus: moving space id=%d to status=%s by user=%d", id, req.Status, req.Actor.UserID)

	if !req.Actor.IsAdministrator() {
		s.logger.Warn("UpdateStatus: user=%d is not an administrator", req.Actor.UserID)
		return nil, fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	status := domain.SpaceStatus(req.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown space status %q", ErrInvalidInput, req.Status)
	}

	if err := s.spaceRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("UpdateStatus: space id=%d not found", id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("UpdateStatus: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: space id=%d is now %s", id, status)
	return s.GetByID(ctx, id)
}

// Update полностью заменяет описание пространства.
// Статус и существующие бронирования не затрагиваются. Доступно только администраторам.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSpaceRequest) (*models.SpaceResponse, error) {
	s.logger.Info("Update: updating space id=%d by user=%d", id, req.Actor.UserID)

	if !req.Actor.IsAdministrator() {
		s.logger.Warn("Update: user=%d is not an administrator", req.Actor.UserID)
		return nil, fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	space, err := toDomainSpace((*models.CreateSpaceRequest)(req))
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	space.ID = id

	updated, err := s.spaceRepo.Update(ctx, space)
	if err != nil {
		switch {
		case errors.Is(err, spaceRepo.ErrSpaceNotFound):
			s.logger.Warn("Update: space id=%d not found", id)
			return nil, ErrSpaceNotFound
		case errors.Is(err, spaceRepo.ErrDuplicateName):
			s.logger.Warn("Update: space name=%q already exists", space.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Update: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated space id=%d", id)
	return models.FromDomainSpace(updated), nil
}

// Delete снимает пространство с учета.
// Пространство с активными бронированиями на сегодня или позже удалить нельзя.
// Строка пространства блокируется до проверки бронирований, поэтому параллельное
// создание бронирования либо завершится раньше и будет учтено, либо увидит удаление.
func (s *Service) Delete(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Delete: deleting space id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdministrator() {
		s.logger.Warn("Delete: user=%d is not an administrator", actor.UserID)
		return fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	today := domain.NormalizeDate(s.timeProvider.Now().In(s.settings.Location))

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.spaceRepo.Delete(ctx, id); err != nil {
			return err
		}

		upcoming, err := s.reservationRepo.HasUpcoming(ctx, id, today)
		if err != nil {
			return err
		}
		if upcoming {
			return ErrSpaceInUse
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, spaceRepo.ErrSpaceNotFound):
			s.logger.Warn("Delete: space id=%d not found", id)
			return ErrSpaceNotFound
		case errors.Is(err, ErrSpaceInUse):
			s.logger.Warn("Delete: space id=%d has upcoming reservations", id)
			return ErrSpaceInUse
		}
		s.logger.Error("Delete: failed to delete space id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: space id=%d deleted", id)
	return nil
}

// toDomainSpace валидирует запрос и собирает domain модель
func toDomainSpace(req *models.CreateSpaceRequest) (*domain.Space, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxSpaceNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxSpaceNameLength)
	}

	kind := domain.SpaceKind(req.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown space kind %q", ErrInvalidInput, req.Kind)
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}

	openTime, closeTime := req.OpenTime, req.CloseTime
	if openTime == "" {
		openTime = domain.DefaultOperatingHoursStart
	}
	if closeTime == "" {
		closeTime = domain.DefaultOperatingHoursEnd
	}
	hours, err := domain.NewTimeRange(openTime, closeTime)
	if err != nil {
		return nil, fmt.Errorf("%w: operating hours: %w", ErrInvalidInput, err)
	}

	if req.Description != nil && utf8.RuneCountInString(*req.Description) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	equipment := make([]string, 0, len(req.Equipment))
	for _, item := range req.Equipment {
		if item = strings.TrimSpace(item); item != "" {
			equipment = append(equipment, item)
		}
	}

	return &domain.Space{
		Name:           name,
		Kind:           kind,
		Location:       location,
		Capacity:       req.Capacity,
		OperatingHours: hours,
		Status:         domain.SpaceStatusAvailable,
		Equipment:      equipment,
		Description:    req.Description,
	}, nil
}

func applyPaging(filter *domain.SpaceFilter, page, limit int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}
	filter.Page = page
	filter.Limit = limit
}
