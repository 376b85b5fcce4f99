package schedulerequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

var requestColumns = []string{
	"id",
	"professional_id",
	"request_type",
	"request_data",
	"reason",
	"status",
	"reviewer_id",
	"review_notes",
	"created_at",
	"reviewed_at",
}

// Repository репозиторий заявок на изменение расписания.
// Payload заявки хранится в JSONB-колонке request_data.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку в статусе pending
func (r *Repository) Create(ctx context.Context, req *domain.ScheduleChangeRequest) (*domain.ScheduleChangeRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := json.Marshal(req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal request data: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("schedule_change_requests").
		Columns(
			"professional_id",
			"request_type",
			"request_data",
			"reason",
			"status",
		).
		Values(
			req.ProfessionalID,
			req.RequestType,
			payload,
			req.Reason,
			domain.RequestPending,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.Status = domain.RequestPending
	req.CreatedAt = createdAt.Time

	return req, nil
}

// GetByID получает заявку по ID.
// Внутри транзакции ревью строка блокируется через FOR UPDATE, ревью
// выполняется строго одним писателем.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleChangeRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("schedule_change_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequestRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// ListByProfessional возвращает заявки врача, опционально фильтруя по статусу.
// Сортировка: сначала новые.
func (r *Repository) ListByProfessional(ctx context.Context, professionalID int64, status *domain.ScheduleRequestStatus) ([]*domain.ScheduleChangeRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("schedule_change_requests").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.ScheduleChangeRequest, 0)
	for rows.Next() {
		req, err := scanRequestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProfessional - scan request: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// Review переводит заявку из pending в approved/rejected.
// Условие status = pending в WHERE закрывает гонку двойного ревью:
// ноль затронутых строк означает, что заявка уже рассмотрена.
func (r *Repository) Review(ctx context.Context, id int64, status domain.ScheduleRequestStatus, reviewerID int64, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_change_requests").
		Set("status", status).
		Set("reviewer_id", reviewerID).
		Set("review_notes", notes).
		Set("reviewed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.RequestPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Review - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Review - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Review - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyReviewed
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequestRow(row rowScanner) (*domain.ScheduleChangeRequest, error) {
	var req domain.ScheduleChangeRequest
	var payload []byte
	var createdAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.ProfessionalID,
		&req.RequestType,
		&payload,
		&req.Reason,
		&req.Status,
		&req.ReviewerID,
		&req.ReviewNotes,
		&createdAt,
		&req.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(payload, &req.Data); err != nil {
		return nil, fmt.Errorf("unmarshal request data: %v", err)
	}

	req.CreatedAt = createdAt.Time

	return &req, nil
}
