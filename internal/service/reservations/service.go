package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями: просмотр, списки, переходы статусов,
// заметки администратора и отчёт об использовании
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование может его автор или администратор.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actor.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if !domain.CanView(reservation, actor) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", actor.UserID, id)
		return nil, fmt.Errorf("%w: reservation %d belongs to another user", domain.ErrUnauthorized, id)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// ListMine возвращает бронирования текущего пользователя, новые сначала
func (s *Service) ListMine(ctx context.Context, req *models.ListMineRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListMine: fetching reservations for user=%d, status=%v, page=%d", req.Actor.UserID, req.Status, req.Page)

	filter := domain.ReservationFilter{
		RequesterID: &req.Actor.UserID,
	}
	if err := applyStatus(&filter, req.Status); err != nil {
		s.logger.Warn("ListMine: invalid status for user=%d: %v", req.Actor.UserID, err)
		return nil, err
	}
	applyPaging(&filter, req.Page, req.Limit)

	return s.list(ctx, "ListMine", filter)
}

// ListAll возвращает все бронирования с фильтрацией по статусу, пространству и дате.
// Доступно только администраторам.
func (s *Service) ListAll(ctx context.Context, req *models.ListAllRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListAll: fetching reservations by user=%d, status=%v, space=%v, page=%d",
		req.Actor.UserID, req.Status, req.SpaceID, req.Page)

	if !req.Actor.IsAdministrator() {
		s.logger.Warn("ListAll: user=%d is not an administrator", req.Actor.UserID)
		return nil, fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	filter := domain.ReservationFilter{
		SpaceID: req.SpaceID,
	}
	if req.Date != nil {
		date := domain.NormalizeDate(*req.Date)
		filter.Date = &date
	}
	if err := applyStatus(&filter, req.Status); err != nil {
		s.logger.Warn("ListAll: invalid status: %v", err)
		return nil, err
	}
	applyPaging(&filter, req.Page, req.Limit)

	return s.list(ctx, "ListAll", filter)
}

func (s *Service) list(ctx context.Context, op string, filter domain.ReservationFilter) (*models.ReservationListResponse, error) {
	page, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully fetched %d of %d reservations", op, len(page.Reservations), page.Total)
	return models.FromDomainPage(page), nil
}

// Cancel отменяет бронирование от имени автора или администратора
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	return s.transition(ctx, "Cancel", id, actor, domain.StatusCancelled)
}

// UpdateStatus переводит бронирование в новый статус.
// Допустимость перехода и права определяет таблица жизненного цикла.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.TransitionRequest) (*models.ReservationResponse, error) {
	status, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	return s.transition(ctx, "UpdateStatus", id, req.Actor, status)
}

func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	actor domain.Actor,
	to domain.ReservationStatus,
) (*models.ReservationResponse, error) {
	s.logger.Info("%s: moving reservation id=%d to status=%s by user=%d (%s)", op, id, to, actor.UserID, actor.Role)

	var (
		from    domain.ReservationStatus
		trigger domain.Trigger
		updated *domain.Reservation
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		trigger, err = domain.AuthorizeTransition(reservation, actor, to)
		if err != nil {
			return err
		}
		from = reservation.Status

		if err := s.reservationRepo.UpdateStatus(ctx, id, from, to); err != nil {
			return err
		}

		updated, err = s.reservationRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStatusChanged):
			s.logger.Warn("%s: reservation id=%d changed concurrently", op, id)
			return nil, fmt.Errorf("%w: %v", ErrStatusChanged, err)
		case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrUnauthorized):
			s.logger.Warn("%s: transition rejected for reservation id=%d: %v", op, id, err)
			return nil, err
		default:
			s.logger.Error("%s: failed to update reservation id=%d: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
		}
	}

	s.metrics.ObserveTransition(string(from), string(to), string(trigger))

	s.logger.Info("%s: reservation id=%d moved %s -> %s by %s", op, id, from, to, trigger)
	return models.FromDomainReservation(updated), nil
}

// AddAdminNote сохраняет заметку администратора к бронированию
func (s *Service) AddAdminNote(ctx context.Context, id int64, req *models.AdminNoteRequest) (*models.ReservationResponse, error) {
	s.logger.Info("AddAdminNote: annotating reservation id=%d by user=%d", id, req.Actor.UserID)

	if !req.Actor.IsAdministrator() {
		s.logger.Warn("AddAdminNote: user=%d is not an administrator", req.Actor.UserID)
		return nil, fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, fmt.Errorf("%w: note is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(note) > domain.MaxAdminNoteLength {
		return nil, fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxAdminNoteLength)
	}

	if err := s.reservationRepo.SetAdminNote(ctx, id, note); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("AddAdminNote: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("AddAdminNote: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AddAdminNote - repository error: %w", ErrInternal, err)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("AddAdminNote: failed to reload reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AddAdminNote - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("AddAdminNote: successfully annotated reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// UsageReport строит отчёт об использовании пространств за период [From, To].
// Отменённые и отклонённые бронирования не учитываются.
func (s *Service) UsageReport(ctx context.Context, req *models.UsageReportRequest) (*models.UsageReportResponse, error) {
	s.logger.Info("UsageReport: building report %s..%s, kind=%v by user=%d",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.Kind, req.Actor.UserID)

	if !req.Actor.IsAdministrator() {
		s.logger.Warn("UsageReport: user=%d is not an administrator", req.Actor.UserID)
		return nil, fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	from := domain.NormalizeDate(req.From)
	to := domain.NormalizeDate(req.To)
	if to.Before(from) {
		s.logger.Warn("UsageReport: inverted period %s..%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	var kind *domain.SpaceKind
	if req.Kind != nil {
		k, err := models.ToDomainSpaceKind(*req.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown space kind %q", ErrInvalidInput, *req.Kind)
		}
		kind = &k
	}

	usage, err := s.reservationRepo.UsageReport(ctx, from, to, kind)
	if err != nil {
		s.logger.Error("UsageReport: repository error: %v", err)
		return nil, fmt.Errorf("%w: UsageReport - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UsageReport: %d spaces in report", len(usage))
	return models.FromDomainUsage(from, to, usage), nil
}

// ReservationsReport считает бронирования в разрезе статуса и типа пространства.
// Доступно только администраторам.
func (s *Service) ReservationsReport(ctx context.Context, req *models.ReservationsReportRequest) (*models.ReservationsReportResponse, error) {
	s.logger.Info("ReservationsReport: status=%v, space=%v by user=%d", req.Status, req.SpaceID, req.Actor.UserID)

	if !req.Actor.IsAdministrator() {
		s.logger.Warn("ReservationsReport: user=%d is not an administrator", req.Actor.UserID)
		return nil, fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	from, to, err := normalizePeriod(req.From, req.To)
	if err != nil {
		s.logger.Warn("ReservationsReport: %v", err)
		return nil, err
	}

	filter := domain.ReportFilter{From: from, To: to, SpaceID: req.SpaceID}
	if req.Status != nil {
		st, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &st
	}

	stats, err := s.reservationRepo.ReservationStats(ctx, filter)
	if err != nil {
		s.logger.Error("ReservationsReport: repository error: %v", err)
		return nil, fmt.Errorf("%w: ReservationsReport - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ReservationsReport: %d reservations matched", stats.Total)
	return models.FromDomainStats(from, to, stats), nil
}

// RequesterReport агрегирует активность заявителей: число бронирований, минуты,
// первая и последняя даты. Доступно только администраторам.
func (s *Service) RequesterReport(ctx context.Context, req *models.RequesterReportRequest) (*models.RequesterReportResponse, error) {
	s.logger.Info("RequesterReport: building report by user=%d", req.Actor.UserID)

	if !req.Actor.IsAdministrator() {
		s.logger.Warn("RequesterReport: user=%d is not an administrator", req.Actor.UserID)
		return nil, fmt.Errorf("%w: administrator role required", domain.ErrUnauthorized)
	}

	from, to, err := normalizePeriod(req.From, req.To)
	if err != nil {
		s.logger.Warn("RequesterReport: %v", err)
		return nil, err
	}

	usage, err := s.reservationRepo.RequesterReport(ctx, from, to)
	if err != nil {
		s.logger.Error("RequesterReport: repository error: %v", err)
		return nil, fmt.Errorf("%w: RequesterReport - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("RequesterReport: %d requesters in report", len(usage))
	return models.FromDomainRequesterUsage(from, to, usage), nil
}

// normalizePeriod приводит необязательные границы периода к датам и проверяет порядок
func normalizePeriod(from, to *time.Time) (*time.Time, *time.Time, error) {
	if from != nil {
		d := domain.NormalizeDate(*from)
		from = &d
	}
	if to != nil {
		d := domain.NormalizeDate(*to)
		to = &d
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	return from, to, nil
}

func applyStatus(filter *domain.ReservationFilter, status *string) error {
	if status == nil {
		return nil
	}
	st, err := models.ToDomainReservationStatus(*status)
	if err != nil {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
	}
	filter.Status = &st
	return nil
}

func applyPaging(filter *domain.ReservationFilter, page, limit int) {
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
