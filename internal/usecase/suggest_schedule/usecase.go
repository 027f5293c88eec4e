package suggest_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
)

// UseCase use case для рекомендации схемы расписания по остатку абонемента
type UseCase struct {
	entitlementRepo EntitlementRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(entitlementRepo EntitlementRepository, logger Logger) *UseCase {
	return &UseCase{
		entitlementRepo: entitlementRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case рекомендации расписания
//
// Эвристика по плотности: остаток сессий на оставшийся день действия.
// Плотный остаток - тренировки каждый будний день, разреженный - два раза
// в неделю, иначе - три раза в неделю
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SuggestSchedule: entitlement=%d", req.EntitlementID)

	if req.EntitlementID <= 0 {
		return nil, fmt.Errorf("%w: entitlementID must be positive", ErrInvalidInput)
	}

	ent, err := uc.entitlementRepo.GetByID(ctx, req.EntitlementID)
	if err != nil {
		if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
			uc.logger.Warn("SuggestSchedule: entitlement id=%d not found", req.EntitlementID)
			return nil, ErrEntitlementNotFound
		}
		uc.logger.Error("SuggestSchedule: failed to get entitlement id=%d: %v", req.EntitlementID, err)
		return nil, fmt.Errorf("%w: failed to get entitlement: %w", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// Операция читающая, деривацию применяем только в памяти
	ent.ApplyDerivedStatus(now)

	if !ent.IsActive() {
		uc.logger.Warn("SuggestSchedule: entitlement id=%d is not active, status=%s", ent.ID, ent.Status)
		return nil, ErrNoActiveEntitlement
	}

	days := ent.DaysRemaining(now)
	density := float64(ent.SessionsRemaining) / float64(days)

	var (
		frequency domain.RecurrenceFrequency
		weekdays  []time.Weekday
	)

	switch {
	case density >= domain.DenseLoadThreshold:
		frequency = domain.FrequencyDaily
		weekdays = nil
	case density <= domain.SparseLoadThreshold:
		frequency = domain.FrequencyWeekly
		weekdays = []time.Weekday{time.Tuesday, time.Thursday}
	default:
		frequency = domain.FrequencyWeekly
		weekdays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	}

	// Предпросмотр дат: старт с завтрашнего дня, потолок - конец действия
	startDate := domain.DateOnly(now).AddDate(0, 0, 1)
	preview := domain.GenerateDates(domain.ScheduleSpec{
		Frequency: frequency,
		Weekdays:  weekdays,
	}, startDate, ent.ValidityEnd, ent.SessionsRemaining)

	uc.logger.Info("SuggestSchedule: entitlement=%d density=%.3f -> %s", ent.ID, density, frequency)

	return &Response{
		EntitlementID:     ent.ID,
		SessionsRemaining: ent.SessionsRemaining,
		DaysRemaining:     days,
		Density:           density,
		Frequency:         string(frequency),
		Weekdays:          weekdays,
		PreviewDates:      preview,
	}, nil
}
