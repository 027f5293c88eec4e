package suggest_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
)

type mockEntitlementRepo struct {
	entitlement *domain.EntitlementInstance
}

func (m *mockEntitlementRepo) GetByID(_ context.Context, id int64) (*domain.EntitlementInstance, error) {
	if m.entitlement == nil || m.entitlement.ID != id {
		return nil, entitlementRepo.ErrEntitlementNotFound
	}
	return m.entitlement, nil
}

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

// Понедельник, полдень
var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func entitlementWith(remaining, daysLeft int) *domain.EntitlementInstance {
	return &domain.EntitlementInstance{
		ID:                1,
		MemberID:          100,
		SessionsRemaining: remaining,
		ValidityEnd:       testNow.AddDate(0, 0, daysLeft),
		Status:            domain.EntitlementActive,
	}
}

func newTestUseCase(e *domain.EntitlementInstance) *UseCase {
	uc := NewUseCase(&mockEntitlementRepo{entitlement: e}, stubLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func TestSuggestSchedule_DenseLoadDaily(t *testing.T) {
	// 10 сессий на 10 дней: плотность 1.0, тренировки каждый будний день
	uc := newTestUseCase(entitlementWith(10, 10))

	resp, err := uc.Execute(context.Background(), &Request{EntitlementID: 1})

	require.NoError(t, err)
	assert.Equal(t, string(domain.FrequencyDaily), resp.Frequency)
	assert.Nil(t, resp.Weekdays)
	assert.InDelta(t, 1.0, resp.Density, 1e-9)
	assert.Equal(t, 10, resp.DaysRemaining)

	// Предпросмотр стартует с завтрашнего дня и не выходит за конец действия
	require.NotEmpty(t, resp.PreviewDates)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), resp.PreviewDates[0])
	last := resp.PreviewDates[len(resp.PreviewDates)-1]
	assert.False(t, last.After(domain.DateOnly(entitlementWith(10, 10).ValidityEnd)))
	for _, d := range resp.PreviewDates {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}

func TestSuggestSchedule_DensityBoundaryDense(t *testing.T) {
	// Ровно 0.5 - еще плотная нагрузка
	uc := newTestUseCase(entitlementWith(5, 10))

	resp, err := uc.Execute(context.Background(), &Request{EntitlementID: 1})

	require.NoError(t, err)
	assert.Equal(t, string(domain.FrequencyDaily), resp.Frequency)
}

func TestSuggestSchedule_SparseLoadTwiceAWeek(t *testing.T) {
	// 3 сессии на 30 дней: плотность 0.1, два раза в неделю
	uc := newTestUseCase(entitlementWith(3, 30))

	resp, err := uc.Execute(context.Background(), &Request{EntitlementID: 1})

	require.NoError(t, err)
	assert.Equal(t, string(domain.FrequencyWeekly), resp.Frequency)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, resp.Weekdays)

	require.Len(t, resp.PreviewDates, 3)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), resp.PreviewDates[0])
	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), resp.PreviewDates[1])
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), resp.PreviewDates[2])
}

func TestSuggestSchedule_DensityBoundarySparse(t *testing.T) {
	// Ровно 0.15 - еще разреженная нагрузка
	uc := newTestUseCase(entitlementWith(3, 20))

	resp, err := uc.Execute(context.Background(), &Request{EntitlementID: 1})

	require.NoError(t, err)
	assert.Equal(t, string(domain.FrequencyWeekly), resp.Frequency)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, resp.Weekdays)
}

func TestSuggestSchedule_ModerateLoadThriceAWeek(t *testing.T) {
	// 9 сессий на 30 дней: плотность 0.3, три раза в неделю
	uc := newTestUseCase(entitlementWith(9, 30))

	resp, err := uc.Execute(context.Background(), &Request{EntitlementID: 1})

	require.NoError(t, err)
	assert.Equal(t, string(domain.FrequencyWeekly), resp.Frequency)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, resp.Weekdays)

	// Завтра вторник, первая рекомендованная дата - среда
	require.NotEmpty(t, resp.PreviewDates)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), resp.PreviewDates[0])
}

func TestSuggestSchedule_ExpiredEntitlementRejected(t *testing.T) {
	// В БД статус остался active, но окно действия истекло:
	// деривация в памяти переводит абонемент в expired
	ent := entitlementWith(5, 30)
	ent.ValidityEnd = testNow.AddDate(0, 0, -1)
	uc := newTestUseCase(ent)

	_, err := uc.Execute(context.Background(), &Request{EntitlementID: 1})

	assert.ErrorIs(t, err, ErrNoActiveEntitlement)
}

func TestSuggestSchedule_CancelledEntitlementRejected(t *testing.T) {
	ent := entitlementWith(5, 30)
	ent.Status = domain.EntitlementCancelled
	uc := newTestUseCase(ent)

	_, err := uc.Execute(context.Background(), &Request{EntitlementID: 1})

	assert.ErrorIs(t, err, ErrNoActiveEntitlement)
}

func TestSuggestSchedule_NotFound(t *testing.T) {
	uc := newTestUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{EntitlementID: 1})

	assert.ErrorIs(t, err, ErrEntitlementNotFound)
}

func TestSuggestSchedule_InvalidInput(t *testing.T) {
	uc := newTestUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{EntitlementID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
