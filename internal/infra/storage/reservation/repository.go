package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SpaceBookingService/pkg/psqlbuilder"
)

const (
	table = "reservations"

	// SQLSTATE кодов PostgreSQL
	pgExclusionViolation  = "23P01"
	pgForeignKeyViolation = "23503"

	timestampLayout = "2006-01-02 15:04:05"
)

var columns = []string{
	"id",
	"space_id",
	"requester_id",
	"booking_date",
	"start_time",
	"end_time",
	"party_size",
	"purpose",
	"status",
	"admin_note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями пространств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Пересечение с активным бронированием, пойманное ограничением исключения, возвращается как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"space_id",
			"requester_id",
			"booking_date",
			"start_time",
			"end_time",
			"party_size",
			"purpose",
			"status",
			"admin_note",
		).
		Values(
			reservation.SpaceID,
			reservation.RequesterID,
			reservation.Date.Format(domain.DateFormat),
			reservation.Range.Start,
			reservation.Range.End,
			reservation.PartySize,
			reservation.Purpose,
			reservation.Status,
			reservation.AdminNote,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// GetActiveBySpaceAndDate возвращает активные бронирования пространства на дату, упорядоченные по началу.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка конфликтов и запись
// видели один и тот же снимок.
func (r *Repository) GetActiveBySpaceAndDate(ctx context.Context, spaceID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := activeBySpaceAndDateQuery(spaceID, date, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySpaceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySpaceAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Update перезаписывает изменяемые поля бронирования (пространство, дата, время, состав, цель)
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("space_id", reservation.SpaceID).
		Set("booking_date", reservation.Date.Format(domain.DateFormat)).
		Set("start_time", reservation.Range.Start).
		Set("end_time", reservation.Range.End).
		Set("party_size", reservation.PartySize).
		Set("purpose", reservation.Purpose).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	if err != nil {
		return mapWriteError("Update", err)
	}

	reservation.UpdatedAt = updatedAt.Time
	return nil
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Если статус успел измениться, возвращает ErrStatusChanged.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("UpdateStatus", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: reservation %d is no longer %s", ErrStatusChanged, id, from)
	}

	return nil
}

// SetAdminNote сохраняет заметку администратора
func (r *Repository) SetAdminNote(ctx context.Context, id int64, note string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("admin_note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAdminNote - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAdminNote - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAdminNote - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// List возвращает страницу бронирований по фильтру (новые сначала) и общее число совпадений
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) (*domain.ReservationPage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%w: List - count reservations: %w", ErrScanRow, err)
	}

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}

	return &domain.ReservationPage{
		Reservations: reservations,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}, nil
}

// ListDue возвращает бронирования в статусе status, для которых наступил момент перехода:
// начало для confirmed и окончание для in_progress. now - локальное время площадки.
func (r *Repository) ListDue(ctx context.Context, status domain.ReservationStatus, now time.Time, limit int) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder, err := dueQuery(status, now, limit)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UsageReport агрегирует использование пространств за период [from, to].
// Отменённые и отклонённые бронирования не учитываются; пространства без бронирований не попадают в отчёт.
func (r *Repository) UsageReport(ctx context.Context, from, to time.Time, kind *domain.SpaceKind) ([]*domain.SpaceUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := usageQuery(from, to, kind).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UsageReport - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UsageReport - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	report := make([]*domain.SpaceUsage, 0)
	for rows.Next() {
		var usage domain.SpaceUsage
		if err := rows.Scan(
			&usage.SpaceID,
			&usage.SpaceName,
			&usage.SpaceKind,
			&usage.Reservations,
			&usage.BookedMinutes,
			&usage.AveragePartySize,
		); err != nil {
			return nil, fmt.Errorf("%w: UsageReport - scan row: %w", ErrScanRow, err)
		}
		report = append(report, &usage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: UsageReport - rows error: %w", ErrScanRow, err)
	}

	return report, nil
}

// HasUpcoming сообщает, есть ли у пространства активные бронирования на дату from или позже
func (r *Repository) HasUpcoming(ctx context.Context, spaceID int64, from time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upcomingQuery(spaceID, from).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	var found int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasUpcoming - execute query: %w", ErrExecQuery, err)
	}

	return true, nil
}

// ReservationStats считает бронирования, подходящие под фильтр, в разрезе статуса и типа пространства
func (r *Repository) ReservationStats(ctx context.Context, filter domain.ReportFilter) (*domain.ReservationStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := statsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReservationStats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReservationStats - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.StatusKindCount, 0)
	for rows.Next() {
		var count domain.StatusKindCount
		if err := rows.Scan(&count.Status, &count.Kind, &count.Count); err != nil {
			return nil, fmt.Errorf("%w: ReservationStats - scan row: %w", ErrScanRow, err)
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReservationStats - rows error: %w", ErrScanRow, err)
	}

	return domain.NewReservationStats(counts), nil
}

// RequesterReport агрегирует активность заявителей за период.
// Границы периода необязательны; отменённые и отклонённые бронирования не учитываются.
func (r *Repository) RequesterReport(ctx context.Context, from, to *time.Time) ([]*domain.RequesterUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := requesterQuery(from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: RequesterReport - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RequesterReport - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	report := make([]*domain.RequesterUsage, 0)
	for rows.Next() {
		var usage domain.RequesterUsage
		if err := rows.Scan(
			&usage.RequesterID,
			&usage.Reservations,
			&usage.BookedMinutes,
			&usage.FirstDate,
			&usage.LastDate,
		); err != nil {
			return nil, fmt.Errorf("%w: RequesterReport - scan row: %w", ErrScanRow, err)
		}
		report = append(report, &usage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RequesterReport - rows error: %w", ErrScanRow, err)
	}

	return report, nil
}

func activeBySpaceAndDateQuery(spaceID int64, date time.Time, lock bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"space_id":     spaceID,
			"booking_date": date.Format(domain.DateFormat),
			"status":       statusStrings(domain.ActiveStatuses),
		}).
		OrderBy("start_time ASC")

	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}
	return builder
}

func applyFilter(builder squirrel.SelectBuilder, filter domain.ReservationFilter) squirrel.SelectBuilder {
	if filter.SpaceID != nil {
		builder = builder.Where(squirrel.Eq{"space_id": *filter.SpaceID})
	}
	if filter.RequesterID != nil {
		builder = builder.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"booking_date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"booking_date": filter.DateTo.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	return builder
}

func listQuery(filter domain.ReservationFilter) squirrel.SelectBuilder {
	builder := applyFilter(psqlbuilder.Select(columns...).From(table), filter).
		OrderBy("booking_date DESC", "start_time DESC", "id DESC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset()))
	}
	return builder
}

func dueQuery(status domain.ReservationStatus, now time.Time, limit int) (squirrel.SelectBuilder, error) {
	var boundary string
	switch status {
	case domain.StatusConfirmed:
		boundary = "start_time"
	case domain.StatusInProgress:
		boundary = "end_time"
	default:
		return squirrel.SelectBuilder{}, fmt.Errorf("%w: ListDue - no time boundary for %s", ErrInvalidStatus, status)
	}

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.Expr("booking_date + "+boundary+" <= ?::timestamp", now.Format(timestampLayout))).
		OrderBy("booking_date ASC", boundary+" ASC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return builder, nil
}

func usageQuery(from, to time.Time, kind *domain.SpaceKind) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(
		"s.id",
		"s.name",
		"s.kind",
		"COUNT(r.id)",
		"COALESCE(SUM(EXTRACT(EPOCH FROM (r.end_time - r.start_time)) / 60), 0)::bigint",
		"COALESCE(AVG(r.party_size), 0)::float8",
	).
		From("reservations r").
		Join("spaces s ON s.id = r.space_id").
		Where(squirrel.GtOrEq{"r.booking_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"r.booking_date": to.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"r.status": []string{string(domain.StatusCancelled), string(domain.StatusRejected)}}).
		GroupBy("s.id", "s.name", "s.kind").
		OrderBy("COUNT(r.id) DESC", "s.id ASC")

	if kind != nil {
		builder = builder.Where(squirrel.Eq{"s.kind": *kind})
	}
	return builder
}

func upcomingQuery(spaceID int64, from time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{
			"space_id": spaceID,
			"status":   statusStrings(domain.ActiveStatuses),
		}).
		Where(squirrel.GtOrEq{"booking_date": from.Format(domain.DateFormat)}).
		Limit(1)
}

func statsQuery(filter domain.ReportFilter) squirrel.SelectBuilder {
	builder := psqlbuilder.Select("r.status", "s.kind", "COUNT(r.id)").
		From("reservations r").
		Join("spaces s ON s.id = r.space_id").
		GroupBy("r.status", "s.kind")

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"r.booking_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"r.booking_date": filter.To.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"r.status": *filter.Status})
	}
	if filter.SpaceID != nil {
		builder = builder.Where(squirrel.Eq{"r.space_id": *filter.SpaceID})
	}
	return builder
}

func requesterQuery(from, to *time.Time) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(
		"requester_id",
		"COUNT(id)",
		"COALESCE(SUM(EXTRACT(EPOCH FROM (end_time - start_time)) / 60), 0)::bigint",
		"MIN(booking_date)",
		"MAX(booking_date)",
	).
		From(table).
		Where(squirrel.NotEq{"status": []string{string(domain.StatusCancelled), string(domain.StatusRejected)}}).
		GroupBy("requester_id").
		OrderBy("COUNT(id) DESC", "requester_id ASC")

	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"booking_date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"booking_date": to.Format(domain.DateFormat)})
	}
	return builder
}

// mapWriteError переводит ошибки PostgreSQL в ошибки репозитория, сохраняя исходную
// ошибку в цепочке, чтобы менеджер транзакций мог распознать конфликт сериализации
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgExclusionViolation:
			return fmt.Errorf("%w: %s - %s", ErrSlotConflict, op, pqErr.Constraint)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s - %s", ErrSpaceNotFound, op, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.SpaceID,
		&reservation.RequesterID,
		&reservation.Date,
		&reservation.Range.Start,
		&reservation.Range.End,
		&reservation.PartySize,
		&reservation.Purpose,
		&reservation.Status,
		&reservation.AdminNote,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Date = domain.NormalizeDate(reservation.Date)
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
