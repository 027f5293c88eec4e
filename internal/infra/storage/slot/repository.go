package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL при нарушении exclusion constraint
const pqExclusionViolation = "23P01"

// Repository репозиторий для работы со слотами (записями на тренировки)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var slotColumns = []string{
	"id",
	"member_id",
	"trainer_id",
	"program_id",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"recurrence_enabled",
	"recurrence_frequency",
	"recurrence_interval",
	"recurrence_weekdays",
	"recurrence_until",
	"recurrence_count",
	"parent_slot_id",
	"is_recurring_instance",
	"entitlement_id",
	"notes",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

var slotInsertColumns = []string{
	"member_id",
	"trainer_id",
	"program_id",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"recurrence_enabled",
	"recurrence_frequency",
	"recurrence_interval",
	"recurrence_weekdays",
	"recurrence_until",
	"recurrence_count",
	"parent_slot_id",
	"is_recurring_instance",
	"entitlement_id",
	"notes",
}

// Create создает один слот
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, s *domain.BookedSlot) (*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(slotInsertColumns...).
		Values(insertValues(s)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrIntervalTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// CreateBatch создает пакет слотов одним INSERT
// Вставка атомарна: либо создаются все слоты, либо ни одного
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.BookedSlot) ([]*domain.BookedSlot, error) {
	if len(slots) == 0 {
		return slots, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").Columns(slotInsertColumns...)
	for _, s := range slots {
		insertBuilder = insertBuilder.Values(insertValues(s)...)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrIntervalTaken
		}
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	// RETURNING возвращает строки в порядке вставки
	i := 0
	for rows.Next() {
		if i >= len(slots) {
			break
		}
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&slots[i].ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan row: %w", ErrScanRow, err)
		}
		slots[i].CreatedAt = createdAt.Time
		slots[i].UpdatedAt = updatedAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		if isExclusionViolation(err) {
			return nil, ErrIntervalTaken
		}
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// GetByTrainerWithFilter получает слоты тренера с фильтрацией по периоду и статусу
//
// Для проверки конфликтов используется с OnlyCommitted=true и границами окна:
// выборка выполняется один раз на весь пакет кандидатов, а не на каждый кандидат.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка пересечений
// и вставка были одной атомарной единицей.
func (r *Repository) GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerSlotsFilter) ([]*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"trainer_id": filter.TrainerID})

	selectBuilder = applyCommonFilter(selectBuilder, filter.From, filter.To, filter.OnlyCommitted, filter.Status)

	// В транзакции блокируем выбранные слоты до конца проверки и вставки
	if dbmetrics.IsInTransaction(ctx) && filter.OnlyCommitted {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByMemberWithFilter получает слоты клиента с фильтрацией по периоду и статусу
func (r *Repository) GetByMemberWithFilter(ctx context.Context, filter domain.MemberSlotsFilter) ([]*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"member_id": filter.MemberID})

	selectBuilder = applyCommonFilter(selectBuilder, filter.From, filter.To, filter.OnlyCommitted, filter.Status)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMemberWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMemberWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// CountCompletedByEntitlement возвращает количество завершённых слотов,
// привязанных к абонементу. Используется для сверки счётчика sessions_used.
func (r *Repository) CountCompletedByEntitlement(ctx context.Context, entitlementID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"entitlement_id": entitlementID, "status": domain.SlotStatusCompleted}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCompletedByEntitlement - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCompletedByEntitlement - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус слота
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// UpdateInterval переносит слот на новый интервал и помечает его rescheduled
func (r *Repository) UpdateInterval(ctx context.Context, id int64, start, end time.Time, durationMinutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("start_time", start).
		Set("end_time", end).
		Set("duration_minutes", durationMinutes).
		Set("status", domain.SlotStatusRescheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrIntervalTaken
		}
		return fmt.Errorf("%w: UpdateInterval - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Complete помечает слот завершённым и привязывает абонемент, с которого
// списана сессия (nil, если списание не производилось)
func (r *Repository) Complete(ctx context.Context, id int64, entitlementID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotStatusCompleted).
		Set("entitlement_id", entitlementID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Complete")
}

// Cancel отменяет слот с указанием, кто и почему отменил
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotStatusCancelled).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// MarkNoShow помечает слот как неявку клиента
func (r *Repository) MarkNoShow(ctx context.Context, id int64) error {
	return r.UpdateStatus(ctx, id, domain.SlotStatusNoShow)
}

// DeletePendingByMember удаляет все незавершённые (scheduled/rescheduled)
// слоты клиента. Используется при полном пересоздании расписания:
// старые слоты физически удаляются перед генерацией новых.
func (r *Repository) DeletePendingByMember(ctx context.Context, memberID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	committedStatuses := make([]string, len(domain.CommittedSlotStatuses))
	for i, s := range domain.CommittedSlotStatuses {
		committedStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"member_id": memberID, "status": committedStatuses}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeletePendingByMember - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePendingByMember - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePendingByMember - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

// execExpectingRow выполняет запрос и ожидает ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// applyCommonFilter добавляет общие условия фильтрации по периоду и статусу
func applyCommonFilter(b squirrel.SelectBuilder, from, to *time.Time, onlyCommitted bool, status *domain.SlotStatus) squirrel.SelectBuilder {
	if from != nil {
		b = b.Where(squirrel.GtOrEq{"start_time": *from})
	}
	if to != nil {
		b = b.Where(squirrel.Lt{"start_time": *to})
	}

	if status != nil {
		b = b.Where(squirrel.Eq{"status": *status})
	} else if onlyCommitted {
		committedStatuses := make([]string, len(domain.CommittedSlotStatuses))
		for i, s := range domain.CommittedSlotStatuses {
			committedStatuses[i] = string(s)
		}
		b = b.Where(squirrel.Eq{"status": committedStatuses})
	}

	return b.OrderBy("start_time ASC")
}

// insertValues собирает значения для вставки слота в порядке slotInsertColumns
func insertValues(s *domain.BookedSlot) []interface{} {
	var (
		frequency *string
		interval  *int
		weekdays  pq.Int64Array
		until     *time.Time
		count     *int
		enabled   bool
	)

	if s.Recurrence != nil {
		enabled = s.Recurrence.Enabled
		freq := string(s.Recurrence.Frequency)
		frequency = &freq
		interval = &s.Recurrence.Interval
		weekdays = weekdaysToArray(s.Recurrence.Weekdays)
		until = s.Recurrence.Until
		count = s.Recurrence.Count
	}

	return []interface{}{
		s.MemberID,
		s.TrainerID,
		s.ProgramID,
		s.StartTime,
		s.EndTime,
		s.DurationMinutes,
		s.Status,
		enabled,
		frequency,
		interval,
		weekdays,
		until,
		count,
		s.ParentSlotID,
		s.IsRecurringInstance,
		s.EntitlementID,
		s.Notes,
	}
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует одну строку слота
func scanSlot(row rowScanner) (*domain.BookedSlot, error) {
	var (
		s                   domain.BookedSlot
		createdAt, updatedAt sql.NullTime
		recurrenceEnabled   bool
		recurrenceFrequency *string
		recurrenceInterval  *int
		recurrenceWeekdays  pq.Int64Array
		recurrenceUntil     *time.Time
		recurrenceCount     *int
	)

	err := row.Scan(
		&s.ID,
		&s.MemberID,
		&s.TrainerID,
		&s.ProgramID,
		&s.StartTime,
		&s.EndTime,
		&s.DurationMinutes,
		&s.Status,
		&recurrenceEnabled,
		&recurrenceFrequency,
		&recurrenceInterval,
		&recurrenceWeekdays,
		&recurrenceUntil,
		&recurrenceCount,
		&s.ParentSlotID,
		&s.IsRecurringInstance,
		&s.EntitlementID,
		&s.Notes,
		&s.CancelledBy,
		&s.CancellationReason,
		&s.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSlot - scan row: %w", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	if recurrenceEnabled && recurrenceFrequency != nil {
		rule := &domain.RecurrenceRule{
			Enabled:   true,
			Frequency: domain.RecurrenceFrequency(*recurrenceFrequency),
			Weekdays:  arrayToWeekdays(recurrenceWeekdays),
			Until:     recurrenceUntil,
			Count:     recurrenceCount,
		}
		if recurrenceInterval != nil {
			rule.Interval = *recurrenceInterval
		}
		s.Recurrence = rule
	}

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.BookedSlot, error) {
	slots := make([]*domain.BookedSlot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// isExclusionViolation проверяет нарушение exclusion constraint по интервалам
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqExclusionViolation
	}
	return false
}

// weekdaysToArray конвертирует дни недели в массив для хранения в БД
func weekdaysToArray(weekdays []time.Weekday) pq.Int64Array {
	arr := make(pq.Int64Array, len(weekdays))
	for i, w := range weekdays {
		arr[i] = int64(w)
	}
	return arr
}

// arrayToWeekdays конвертирует массив из БД в дни недели
func arrayToWeekdays(arr pq.Int64Array) []time.Weekday {
	weekdays := make([]time.Weekday, len(arr))
	for i, v := range arr {
		weekdays[i] = time.Weekday(v)
	}
	return weekdays
}
