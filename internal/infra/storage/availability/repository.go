package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

var windowColumns = []string{
	"id",
	"professional_id",
	"day_of_week",
	"start_time",
	"end_time",
	"service_type",
	"created_at",
	"updated_at",
}

var blockColumns = []string{
	"id",
	"professional_id",
	"blocked_date",
	"start_time",
	"end_time",
	"block_type",
	"created_at",
}

// Repository репозиторий хранилища доступности: недельные окна приёма
// и блокировки конкретных дат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWindowsByProfessional возвращает все окна доступности врача
func (r *Repository) ListWindowsByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityWindow, error) {
	return r.listWindows(ctx, squirrel.Eq{"professional_id": professionalID})
}

// ListWindowsForDay возвращает окна врача на день недели (0 = воскресенье),
// отсортированные по времени начала
func (r *Repository) ListWindowsForDay(ctx context.Context, professionalID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	return r.listWindows(ctx, squirrel.Eq{
		"professional_id": professionalID,
		"day_of_week":     dayOfWeek,
	})
}

func (r *Repository) listWindows(ctx context.Context, where squirrel.Eq) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(where).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&w.ID,
			&w.ProfessionalID,
			&w.DayOfWeek,
			&w.StartTime,
			&w.EndTime,
			&w.ServiceType,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: listWindows - scan window: %v", ErrScanRow, err)
		}

		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// CreateWindow вставляет новое окно доступности (ADD_HOURS).
// Точный дубликат (врач/день/время) отклоняется уникальным индексом.
func (r *Repository) CreateWindow(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns(
			"professional_id",
			"day_of_week",
			"start_time",
			"end_time",
			"service_type",
		).
		Values(
			w.ProfessionalID,
			w.DayOfWeek,
			w.StartTime,
			w.EndTime,
			w.ServiceType,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: professional_id=%d day=%d %s-%s",
				ErrWindowExists, w.ProfessionalID, w.DayOfWeek, w.StartTime, w.EndTime)
		}
		return nil, fmt.Errorf("%w: CreateWindow - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return w, nil
}

// DeleteWindow удаляет окно с точным совпадением день/время (REMOVE_HOURS)
func (r *Repository) DeleteWindow(ctx context.Context, professionalID int64, dayOfWeek int, start, end types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"day_of_week":     dayOfWeek,
			"start_time":      start,
			"end_time":        end,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingWindow(ctx, executor, query, args, "DeleteWindow")
}

// UpdateWindowTimes заменяет границы окна (MODIFY_HOURS).
// Старые границы обязаны совпасть точно.
func (r *Repository) UpdateWindowTimes(ctx context.Context, professionalID int64, dayOfWeek int, oldStart, oldEnd, newStart, newEnd types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_windows").
		Set("start_time", newStart).
		Set("end_time", newEnd).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"day_of_week":     dayOfWeek,
			"start_time":      oldStart,
			"end_time":        oldEnd,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateWindowTimes - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingWindow(ctx, executor, query, args, "UpdateWindowTimes")
}

// UpdateWindowServiceType меняет тип приёма окна (CHANGE_SERVICE_TYPE)
func (r *Repository) UpdateWindowServiceType(ctx context.Context, professionalID int64, dayOfWeek int, start, end types.TimeString, serviceType domain.ServiceType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_windows").
		Set("service_type", serviceType).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"day_of_week":     dayOfWeek,
			"start_time":      start,
			"end_time":        end,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateWindowServiceType - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingWindow(ctx, executor, query, args, "UpdateWindowServiceType")
}

func (r *Repository) execExpectingWindow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// ListBlocksForDate возвращает блокировки врача на конкретную дату
func (r *Repository) ListBlocksForDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.DateBlock, error) {
	return r.listBlocks(ctx, squirrel.And{
		squirrel.Eq{"professional_id": professionalID},
		squirrel.Eq{"blocked_date": domain.DateOnly(date)},
	})
}

// ListBlocksInRange возвращает блокировки врача в диапазоне дат [from, to]
func (r *Repository) ListBlocksInRange(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.DateBlock, error) {
	return r.listBlocks(ctx, squirrel.And{
		squirrel.Eq{"professional_id": professionalID},
		squirrel.GtOrEq{"blocked_date": domain.DateOnly(from)},
		squirrel.LtOrEq{"blocked_date": domain.DateOnly(to)},
	})
}

func (r *Repository) listBlocks(ctx context.Context, where squirrel.Sqlizer) ([]*domain.DateBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("date_blocks").
		Where(where).
		OrderBy("blocked_date ASC, start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.DateBlock, 0)
	for rows.Next() {
		var b domain.DateBlock
		var createdAt sql.NullTime

		if err := rows.Scan(
			&b.ID,
			&b.ProfessionalID,
			&b.Date,
			&b.StartTime,
			&b.EndTime,
			&b.BlockType,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: listBlocks - scan block: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// CreateBlock вставляет блокировку даты (BLOCK_DATES).
// Вставка идемпотентна: дубликат не ошибка, возвращается applied=false.
// Так пакет дат применяется по одной с отчётом о каждом результате.
func (r *Repository) CreateBlock(ctx context.Context, b *domain.DateBlock) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_blocks").
		Columns(
			"professional_id",
			"blocked_date",
			"start_time",
			"end_time",
			"block_type",
		).
		Values(
			b.ProfessionalID,
			domain.DateOnly(b.Date),
			b.StartTime,
			b.EndTime,
			b.BlockType,
		).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateBlock - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateBlock - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// DeleteBlocksForDate удаляет все блокировки врача на дату (UNBLOCK_DATES).
// Возвращает количество удалённых блокировок.
func (r *Repository) DeleteBlocksForDate(ctx context.Context, professionalID int64, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_blocks").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"blocked_date":    domain.DateOnly(date),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBlocksForDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBlocksForDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBlocksForDate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 23505 = unique_violation
		return pqErr.Code == "23505"
	}
	return false
}
