package space

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SpaceBookingService/pkg/psqlbuilder"
)

const (
	table = "spaces"

	pgUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"name",
	"kind",
	"location",
	"capacity",
	"open_time",
	"close_time",
	"status",
	"equipment",
	"description",
	"created_at",
	"updated_at",
}

// Удаленные пространства скрыты от всех выборок
var notDeleted = squirrel.Eq{"deleted_at": nil}

// Спецсимволы шаблона LIKE экранируются обратным слешем (escape-символ PostgreSQL по умолчанию)
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Repository реестр пространств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пространств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует новое пространство
func (r *Repository) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"kind",
			"location",
			"capacity",
			"open_time",
			"close_time",
			"status",
			"equipment",
			"description",
		).
		Values(
			space.Name,
			space.Kind,
			space.Location,
			space.Capacity,
			space.OperatingHours.Start,
			space.OperatingHours.End,
			space.Status,
			pq.Array(space.Equipment),
			space.Description,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&space.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, space.Name)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return space, nil
}

// GetByID получает пространство по ID.
// Внутри транзакции строка блокируется на чтение (FOR SHARE), чтобы статус
// не изменился до записи бронирования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		Where(notDeleted)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR SHARE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	space, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %w", ErrScanRow, err)
	}

	return space, nil
}

// List возвращает страницу реестра и общее число совпадений с фильтром
func (r *Repository) List(ctx context.Context, filter domain.SpaceFilter) (*domain.SpacePage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%w: List - execute count query: %w", ErrExecQuery, err)
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

	spaces := make([]*domain.Space, 0, filter.Limit)
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		spaces = append(spaces, space)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return &domain.SpacePage{
		Spaces: spaces,
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}, nil
}

// Update полностью заменяет описание пространства. Статус не меняется.
func (r *Repository) Update(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateQuery(space).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, space.Name)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete помечает пространство удаленным.
// История бронирований сохраняется, поэтому строка не удаляется физически.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(notDeleted).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpaceNotFound
	}

	return nil
}

// UpdateStatus меняет статус пространства
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SpaceStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(notDeleted).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpaceNotFound
	}

	return nil
}

func applyFilter(builder squirrel.SelectBuilder, filter domain.SpaceFilter) squirrel.SelectBuilder {
	builder = builder.Where(notDeleted)

	if filter.Kind != nil {
		builder = builder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Search != nil {
		pattern := "%" + likeEscaper.Replace(*filter.Search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"location": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	return builder
}

func listQuery(filter domain.SpaceFilter) squirrel.SelectBuilder {
	builder := applyFilter(psqlbuilder.Select(columns...).From(table), filter).
		OrderBy("name ASC", "id ASC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset()))
	}
	return builder
}

func updateQuery(space *domain.Space) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("name", space.Name).
		Set("kind", space.Kind).
		Set("location", space.Location).
		Set("capacity", space.Capacity).
		Set("open_time", space.OperatingHours.Start).
		Set("close_time", space.OperatingHours.End).
		Set("equipment", pq.Array(space.Equipment)).
		Set("description", space.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": space.ID}).
		Where(notDeleted).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpace(row rowScanner) (*domain.Space, error) {
	var space domain.Space
	var equipment pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&space.ID,
		&space.Name,
		&space.Kind,
		&space.Location,
		&space.Capacity,
		&space.OperatingHours.Start,
		&space.OperatingHours.End,
		&space.Status,
		&equipment,
		&space.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	space.Equipment = []string(equipment)
	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return &space, nil
}
