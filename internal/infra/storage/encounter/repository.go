package encounter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

var encounterColumns = []string{
	"id",
	"professional_id",
	"patient_id",
	"scheduled_start",
	"scheduled_end",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий приёмов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приёмов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый приём.
// Вызывается только внутри сериализуемой транзакции менеджера бронирований:
// проверка конфликтов и вставка должны быть единой атомарной операцией.
func (r *Repository) Create(ctx context.Context, enc *domain.Encounter) (*domain.Encounter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("encounters").
		Columns(
			"professional_id",
			"patient_id",
			"scheduled_start",
			"scheduled_end",
			"status",
			"notes",
		).
		Values(
			enc.ProfessionalID,
			enc.PatientID,
			enc.ScheduledStart,
			enc.ScheduledEnd,
			enc.Status,
			enc.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&enc.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	enc.CreatedAt = createdAt.Time
	enc.UpdatedAt = updatedAt.Time

	return enc, nil
}

// GetByID получает приём по ID.
// Внутри транзакции строка блокируется через FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Encounter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(encounterColumns...).
		From("encounters").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	enc, err := scanEncounterRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEncounterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan encounter: %v", ErrScanRow, err)
	}

	return enc, nil
}

// FindOverlapping возвращает активные (не отменённые) приёмы врача,
// пересекающиеся с интервалом [rng.Start, rng.End).
// Пересечение полуоткрытых интервалов: scheduled_start < end AND scheduled_end > start.
// Внутри транзакции выборка блокируется через FOR UPDATE.
func (r *Repository) FindOverlapping(ctx context.Context, professionalID int64, rng domain.TimeRange, excludeID *int64) ([]*domain.Encounter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(encounterColumns...).
		From("encounters").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.NotEq{"status": domain.EncounterCancelled}).
		Where(squirrel.Lt{"scheduled_start": rng.End}).
		Where(squirrel.Gt{"scheduled_end": rng.Start}).
		OrderBy("scheduled_start ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEncounters(rows)
}

// ListByProfessionalAndRange возвращает приёмы врача в диапазоне дат.
// Используется генератором слотов и календарной проекцией.
func (r *Repository) ListByProfessionalAndRange(ctx context.Context, professionalID int64, from, to time.Time, includeCancelled bool) ([]*domain.Encounter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(encounterColumns...).
		From("encounters").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Lt{"scheduled_start": to}).
		Where(squirrel.Gt{"scheduled_end": from}).
		OrderBy("scheduled_start ASC")

	if !includeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.EncounterCancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessionalAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessionalAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEncounters(rows)
}

// UpdateInterval переносит приём на новый интервал
func (r *Repository) UpdateInterval(ctx context.Context, id int64, rng domain.TimeRange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("encounters").
		Set("scheduled_start", rng.Start).
		Set("scheduled_end", rng.End).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "UpdateInterval")
}

// UpdateStatusFrom условно обновляет статус: затрагивает строку только если
// текущий статус входит в allowed. Ноль затронутых строк означает, что
// статус изменился конкурентно, возвращается ErrStatusNotUpdated.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, allowed []domain.EncounterStatus, to domain.EncounterStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	allowedStrings := make([]string, len(allowed))
	for i, s := range allowed {
		allowedStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("encounters").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": allowedStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusNotUpdated
	}

	return nil
}

// Cancel отменяет приём с указанием причины.
// Сами бронирования ресурсов отменяются репозиторием ресурсов в той же транзакции.
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("encounters").
		Set("status", domain.EncounterCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "Cancel")
}

func execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrEncounterNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEncounterRow(row rowScanner) (*domain.Encounter, error) {
	var enc domain.Encounter
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&enc.ID,
		&enc.ProfessionalID,
		&enc.PatientID,
		&enc.ScheduledStart,
		&enc.ScheduledEnd,
		&enc.Status,
		&enc.Notes,
		&enc.CancellationReason,
		&enc.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	enc.CreatedAt = createdAt.Time
	enc.UpdatedAt = updatedAt.Time

	return &enc, nil
}

func scanEncounters(rows *sql.Rows) ([]*domain.Encounter, error) {
	encounters := make([]*domain.Encounter, 0)

	for rows.Next() {
		enc, err := scanEncounterRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan encounter: %v", ErrScanRow, err)
		}
		encounters = append(encounters, enc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return encounters, nil
}
