package entitlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с абонементами (entitlements)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория абонементов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var entitlementColumns = []string{
	"id",
	"member_id",
	"package_id",
	"trainer_id",
	"sessions_total",
	"sessions_used",
	"sessions_remaining",
	"validity_start",
	"validity_end",
	"status",
	"total_frozen_days",
	"package_name",
	"amount_paid",
	"purchased_at",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает новый абонемент
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, e *domain.EntitlementInstance) (*domain.EntitlementInstance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("entitlements").
		Columns(
			"member_id",
			"package_id",
			"trainer_id",
			"sessions_total",
			"sessions_used",
			"sessions_remaining",
			"validity_start",
			"validity_end",
			"status",
			"total_frozen_days",
			"package_name",
			"amount_paid",
			"purchased_at",
		).
		Values(
			e.MemberID,
			e.PackageID,
			e.TrainerID,
			e.SessionsTotal,
			e.SessionsUsed,
			e.SessionsRemaining,
			e.ValidityStart,
			e.ValidityEnd,
			e.Status,
			e.TotalFrozenDays,
			e.PackageName,
			e.AmountPaid,
			e.PurchasedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// GetByID получает абонемент по ID вместе с историей заморозок и продлений
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EntitlementInstance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entitlementColumns...).
		From("entitlements").
		Where(squirrel.Eq{"id": id})

	// В транзакции блокируем строку абонемента на время операции
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := r.scanEntitlement(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadFreezes(ctx, e); err != nil {
		return nil, err
	}
	if err := r.loadExtensions(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// GetByMember получает все абонементы клиента, сначала новые
func (r *Repository) GetByMember(ctx context.Context, memberID int64) ([]*domain.EntitlementInstance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entitlementColumns...).
		From("entitlements").
		Where(squirrel.Eq{"member_id": memberID}).
		OrderBy("purchased_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMember - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMember - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntitlements(rows)
}

// GetActiveByMember получает активный абонемент клиента
// При нескольких активных абонементах возвращает тот, что истекает раньше
func (r *Repository) GetActiveByMember(ctx context.Context, memberID int64) (*domain.EntitlementInstance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entitlementColumns...).
		From("entitlements").
		Where(squirrel.Eq{"member_id": memberID, "status": domain.EntitlementActive}).
		OrderBy("validity_end ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMember - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEntitlement(executor.QueryRowContext(ctx, query, args...))
}

// Update сохраняет изменяемые поля абонемента (счётчики, окно действия, статус)
func (r *Repository) Update(ctx context.Context, e *domain.EntitlementInstance) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("entitlements").
		Set("trainer_id", e.TrainerID).
		Set("sessions_total", e.SessionsTotal).
		Set("sessions_used", e.SessionsUsed).
		Set("sessions_remaining", e.SessionsRemaining).
		Set("validity_start", e.ValidityStart).
		Set("validity_end", e.ValidityEnd).
		Set("status", e.Status).
		Set("total_frozen_days", e.TotalFrozenDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntitlementNotFound
	}

	return nil
}

// ConsumeSession атомарно списывает одну сессию с абонемента.
// Условный UPDATE защищает от одновременного списания двумя запросами:
// сессия списывается только если абонемент активен и остаток больше нуля.
// Когда остаток доходит до нуля, статус сразу переводится в completed.
//
// Возвращает false (без ошибки), если списание не прошло - для вызывающего
// это "отказ в списании", а не сбой.
func (r *Repository) ConsumeSession(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("entitlements").
		Set("sessions_used", squirrel.Expr("sessions_used + 1")).
		Set("sessions_remaining", squirrel.Expr("sessions_remaining - 1")).
		Set("status", squirrel.Expr("CASE WHEN sessions_remaining = 1 THEN 'completed' ELSE status END")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.EntitlementActive}).
		Where(squirrel.Gt{"sessions_remaining": 0}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ConsumeSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ConsumeSession - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ConsumeSession - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Cancel отменяет абонемент с указанием причины
// Отмена терминальна и применяется из любого статуса
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("entitlements").
		Set("status", domain.EntitlementCancelled).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntitlementNotFound
	}

	return nil
}

// AddFreeze добавляет запись о заморозке
func (r *Repository) AddFreeze(ctx context.Context, freeze *domain.FreezeRecord) (*domain.FreezeRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("entitlement_freezes").
		Columns("entitlement_id", "start_date", "end_date", "days", "reason").
		Values(freeze.EntitlementID, freeze.StartDate, freeze.EndDate, freeze.Days, freeze.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddFreeze - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&freeze.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: AddFreeze - execute insert: %w", ErrExecQuery, err)
	}

	freeze.CreatedAt = createdAt.Time
	return freeze, nil
}

// AddExtension добавляет запись о продлении
func (r *Repository) AddExtension(ctx context.Context, ext *domain.ExtensionRecord) (*domain.ExtensionRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("entitlement_extensions").
		Columns("entitlement_id", "additional_days", "additional_sessions", "amount_paid", "created_by", "reason").
		Values(ext.EntitlementID, ext.AdditionalDays, ext.AdditionalSessions, ext.AmountPaid, ext.CreatedBy, ext.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddExtension - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ext.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: AddExtension - execute insert: %w", ErrExecQuery, err)
	}

	ext.CreatedAt = createdAt.Time
	return ext, nil
}

// loadFreezes загружает историю заморозок абонемента
func (r *Repository) loadFreezes(ctx context.Context, e *domain.EntitlementInstance) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "entitlement_id", "start_date", "end_date", "days", "reason", "created_at").
		From("entitlement_freezes").
		Where(squirrel.Eq{"entitlement_id": e.ID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadFreezes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadFreezes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	freezes := make([]domain.FreezeRecord, 0)
	for rows.Next() {
		var f domain.FreezeRecord
		var createdAt sql.NullTime

		if err := rows.Scan(&f.ID, &f.EntitlementID, &f.StartDate, &f.EndDate, &f.Days, &f.Reason, &createdAt); err != nil {
			return fmt.Errorf("%w: loadFreezes - scan row: %w", ErrScanRow, err)
		}

		f.CreatedAt = createdAt.Time
		freezes = append(freezes, f)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadFreezes - rows error: %w", ErrScanRow, err)
	}

	e.Freezes = freezes
	return nil
}

// loadExtensions загружает историю продлений абонемента
func (r *Repository) loadExtensions(ctx context.Context, e *domain.EntitlementInstance) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "entitlement_id", "additional_days", "additional_sessions", "amount_paid", "created_by", "reason", "created_at").
		From("entitlement_extensions").
		Where(squirrel.Eq{"entitlement_id": e.ID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadExtensions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadExtensions - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	extensions := make([]domain.ExtensionRecord, 0)
	for rows.Next() {
		var ext domain.ExtensionRecord
		var createdAt sql.NullTime

		if err := rows.Scan(&ext.ID, &ext.EntitlementID, &ext.AdditionalDays, &ext.AdditionalSessions,
			&ext.AmountPaid, &ext.CreatedBy, &ext.Reason, &createdAt); err != nil {
			return fmt.Errorf("%w: loadExtensions - scan row: %w", ErrScanRow, err)
		}

		ext.CreatedAt = createdAt.Time
		extensions = append(extensions, ext)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadExtensions - rows error: %w", ErrScanRow, err)
	}

	e.Extensions = extensions
	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntitlement сканирует одну строку абонемента
func (r *Repository) scanEntitlement(row rowScanner) (*domain.EntitlementInstance, error) {
	var e domain.EntitlementInstance
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.MemberID,
		&e.PackageID,
		&e.TrainerID,
		&e.SessionsTotal,
		&e.SessionsUsed,
		&e.SessionsRemaining,
		&e.ValidityStart,
		&e.ValidityEnd,
		&e.Status,
		&e.TotalFrozenDays,
		&e.PackageName,
		&e.AmountPaid,
		&e.PurchasedAt,
		&e.CancelledBy,
		&e.CancellationReason,
		&e.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEntitlementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanEntitlement - scan row: %w", ErrScanRow, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

// scanEntitlements сканирует результаты запроса в слайс абонементов
func (r *Repository) scanEntitlements(rows *sql.Rows) ([]*domain.EntitlementInstance, error) {
	entitlements := make([]*domain.EntitlementInstance, 0)

	for rows.Next() {
		e, err := r.scanEntitlement(rows)
		if err != nil {
			return nil, err
		}
		entitlements = append(entitlements, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntitlements - rows error: %w", ErrScanRow, err)
	}

	return entitlements, nil
}
