package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

// Имя exclusion constraint из миграции 001_init.sql
const overlapConstraintName = "resource_bookings_no_overlap"

var bookingColumns = []string{
	"id",
	"resource_id",
	"encounter_id",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий ресурсов и их бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ресурс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	resources, err := r.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, ErrResourceNotFound
	}
	return resources[0], nil
}

// GetByIDs получает ресурсы по списку ID, отсортированные по ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"type",
		"capacity",
		"is_bookable",
		"status",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0, len(ids))
	for rows.Next() {
		var res domain.Resource
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&res.ID,
			&res.Name,
			&res.Type,
			&res.Capacity,
			&res.IsBookable,
			&res.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan resource: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time
		resources = append(resources, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// FindConfirmedOverlaps возвращает подтверждённые бронирования перечисленных
// ресурсов, пересекающиеся с интервалом [rng.Start, rng.End).
// excludeEncounterID исключает бронирования собственного приёма при переносе.
// Внутри транзакции выборка блокируется через FOR UPDATE.
func (r *Repository) FindConfirmedOverlaps(ctx context.Context, resourceIDs []int64, rng domain.TimeRange, excludeEncounterID *int64) ([]*domain.ResourceBooking, error) {
	if len(resourceIDs) == 0 {
		return []*domain.ResourceBooking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("resource_bookings").
		Where(squirrel.Eq{"resource_id": resourceIDs}).
		Where(squirrel.Eq{"status": domain.BookingConfirmed}).
		Where(squirrel.Lt{"start_time": rng.End}).
		Where(squirrel.Gt{"end_time": rng.Start}).
		OrderBy("start_time ASC")

	if excludeEncounterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"encounter_id": *excludeEncounterID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOverlaps - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOverlaps - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CreateBooking создает бронирование ресурса.
// Exclusion constraint БД страхует от пересечения подтверждённых
// бронирований, если проверка конфликтов была обойдена.
func (r *Repository) CreateBooking(ctx context.Context, booking *domain.ResourceBooking) (*domain.ResourceBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resource_bookings").
		Columns(
			"resource_id",
			"encounter_id",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			booking.ResourceID,
			booking.EncounterID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBooking - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, fmt.Errorf("%w: resource_id=%d", ErrOverlapConstraint, booking.ResourceID)
		}
		return nil, fmt.Errorf("%w: CreateBooking - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// ListBookingsByEncounter возвращает все бронирования ресурсов приёма
func (r *Repository) ListBookingsByEncounter(ctx context.Context, encounterID int64) ([]*domain.ResourceBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("resource_bookings").
		Where(squirrel.Eq{"encounter_id": encounterID}).
		OrderBy("resource_id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookingsByEncounter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookingsByEncounter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateBookingIntervalsByEncounter переносит все бронирования приёма на новый
// интервал. Вызывается в одной транзакции с переносом самого приёма.
func (r *Repository) UpdateBookingIntervalsByEncounter(ctx context.Context, encounterID int64, rng domain.TimeRange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resource_bookings").
		Set("start_time", rng.Start).
		Set("end_time", rng.End).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"encounter_id": encounterID}).
		Where(squirrel.Eq{"status": domain.BookingConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateBookingIntervalsByEncounter - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isOverlapViolation(err) {
			return fmt.Errorf("%w: encounter_id=%d", ErrOverlapConstraint, encounterID)
		}
		return fmt.Errorf("%w: UpdateBookingIntervalsByEncounter - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// CancelBookingsByEncounter отменяет все подтверждённые бронирования приёма.
// Отменённые бронирования сохраняются для истории и не участвуют
// в проверках конфликтов.
func (r *Repository) CancelBookingsByEncounter(ctx context.Context, encounterID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resource_bookings").
		Set("status", domain.BookingCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"encounter_id": encounterID}).
		Where(squirrel.Eq{"status": domain.BookingConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelBookingsByEncounter - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CancelBookingsByEncounter - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 23P01 = exclusion_violation
		return pqErr.Code == "23P01" && pqErr.Constraint == overlapConstraintName
	}
	return false
}

func scanBookings(rows *sql.Rows) ([]*domain.ResourceBooking, error) {
	bookings := make([]*domain.ResourceBooking, 0)

	for rows.Next() {
		var b domain.ResourceBooking
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&b.ID,
			&b.ResourceID,
			&b.EncounterID,
			&b.StartTime,
			&b.EndTime,
			&b.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
