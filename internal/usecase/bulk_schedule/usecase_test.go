package bulk_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
)

// Понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type mockEntitlementRepo struct {
	entitlement *domain.EntitlementInstance
	updated     bool
}

func (m *mockEntitlementRepo) GetByID(_ context.Context, id int64) (*domain.EntitlementInstance, error) {
	if m.entitlement == nil || m.entitlement.ID != id {
		return nil, entitlementRepo.ErrEntitlementNotFound
	}
	return m.entitlement, nil
}

func (m *mockEntitlementRepo) Update(_ context.Context, e *domain.EntitlementInstance) error {
	m.entitlement = e
	m.updated = true
	return nil
}

type mockSlotRepo struct {
	existing []*domain.BookedSlot
	created  []*domain.BookedSlot
	nextID   int64
}

func (m *mockSlotRepo) GetByTrainerWithFilter(_ context.Context, filter domain.TrainerSlotsFilter) ([]*domain.BookedSlot, error) {
	result := make([]*domain.BookedSlot, 0)
	for _, s := range m.existing {
		if s.TrainerID != filter.TrainerID {
			continue
		}
		if filter.From != nil && s.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !s.StartTime.Before(*filter.To) {
			continue
		}
		if filter.OnlyCommitted && !s.IsCommitted() {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockSlotRepo) CreateBatch(_ context.Context, slots []*domain.BookedSlot) ([]*domain.BookedSlot, error) {
	for _, s := range slots {
		m.nextID++
		s.ID = m.nextID
		m.created = append(m.created, s)
	}
	return slots, nil
}

type mockNotifier struct {
	events []notifier.Event
}

func (m *mockNotifier) Publish(_ context.Context, event notifier.Event) error {
	m.events = append(m.events, event)
	return nil
}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

func activeEntitlement(remaining int) *domain.EntitlementInstance {
	return &domain.EntitlementInstance{
		ID:                1,
		MemberID:          100,
		PackageID:         7,
		SessionsTotal:     remaining,
		SessionsRemaining: remaining,
		ValidityStart:     monday.AddDate(0, -1, 0),
		ValidityEnd:       monday.AddDate(0, 3, 0),
		Status:            domain.EntitlementActive,
	}
}

func newTestUseCase(entRepo *mockEntitlementRepo, slots *mockSlotRepo, events *mockNotifier) *UseCase {
	uc := NewUseCase(slots, entRepo, events, stubTxManager{}, stubLogger{})
	uc.timeProvider = fixedTimeProvider{now: monday.Add(-24 * time.Hour)}
	return uc
}

func weeklyRequest(count int) *Request {
	start, _ := time.Parse(domain.DateFormat, "2025-06-02")

	return &Request{
		EntitlementID: 1,
		TrainerID:     200,
		Count:         count,
		StartDate:     start.UTC(),
		StartTime:     "10:00",
		Frequency:     string(domain.FrequencyWeekly),
		Weekdays:      []time.Weekday{time.Monday, time.Wednesday, time.Friday},
	}
}

func TestBulkSchedule_TenWeeklySlotsNoConflicts(t *testing.T) {
	entRepo := &mockEntitlementRepo{entitlement: activeEntitlement(10)}
	slots := &mockSlotRepo{}
	events := &mockNotifier{}
	uc := newTestUseCase(entRepo, slots, events)

	resp, err := uc.Execute(context.Background(), weeklyRequest(10))

	require.NoError(t, err)
	assert.Equal(t, 10, resp.ScheduledCount)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, 0, resp.RemainingUnscheduled)
	require.Len(t, resp.Created, 10)

	// Первый слот - понедельник 10:00-11:00, длительность по умолчанию
	first := resp.Created[0]
	assert.Equal(t, monday.Add(10*time.Hour), first.StartTime)
	assert.Equal(t, monday.Add(11*time.Hour), first.EndTime)
	assert.Equal(t, string(domain.SlotStatusScheduled), first.Status)

	// Даты строго возрастают, только Пн/Ср/Пт
	for i, c := range resp.Created {
		wd := c.StartTime.Weekday()
		assert.True(t, wd == time.Monday || wd == time.Wednesday || wd == time.Friday)
		if i > 0 {
			assert.True(t, resp.Created[i-1].StartTime.Before(c.StartTime))
		}
	}

	// Все слоты привязаны к клиенту абонемента и тренеру из запроса
	for _, s := range slots.created {
		assert.Equal(t, int64(100), s.MemberID)
		assert.Equal(t, int64(200), s.TrainerID)
		assert.True(t, s.IsRecurringInstance)
	}

	// Событие на каждый созданный слот
	assert.Len(t, events.events, 10)
}

func TestBulkSchedule_PreexistingSlotReportedAsConflict(t *testing.T) {
	entRepo := &mockEntitlementRepo{entitlement: activeEntitlement(10)}

	// Занятый слот тренера совпадает с четвертым кандидатом (понедельник второй недели)
	takenStart := monday.AddDate(0, 0, 7).Add(10 * time.Hour)
	slots := &mockSlotRepo{
		existing: []*domain.BookedSlot{{
			ID:        999,
			MemberID:  42,
			TrainerID: 200,
			StartTime: takenStart,
			EndTime:   takenStart.Add(time.Hour),
			Status:    domain.SlotStatusScheduled,
		}},
	}
	events := &mockNotifier{}
	uc := newTestUseCase(entRepo, slots, events)

	resp, err := uc.Execute(context.Background(), weeklyRequest(10))

	require.NoError(t, err)
	assert.Equal(t, 9, resp.ScheduledCount)
	assert.Equal(t, 1, resp.RemainingUnscheduled)
	require.Len(t, resp.Conflicts, 1)

	conflict := resp.Conflicts[0]
	assert.Equal(t, monday.AddDate(0, 0, 7), conflict.Date)
	assert.Equal(t, takenStart, conflict.RequestedStart)
	assert.Equal(t, int64(999), conflict.ConflictingSlotID)

	// Занятая дата не попала в созданные
	for _, c := range resp.Created {
		assert.NotEqual(t, takenStart, c.StartTime)
	}
}

func TestBulkSchedule_CeilingTruncatesToValidityEnd(t *testing.T) {
	ent := activeEntitlement(10)
	// Окно действия заканчивается через неделю: влезают только 3 тренировки Пн/Ср/Пт
	ent.ValidityEnd = monday.AddDate(0, 0, 6)
	entRepo := &mockEntitlementRepo{entitlement: ent}
	slots := &mockSlotRepo{}
	uc := newTestUseCase(entRepo, slots, &mockNotifier{})

	resp, err := uc.Execute(context.Background(), weeklyRequest(10))

	require.NoError(t, err)
	assert.Equal(t, 3, resp.ScheduledCount)
	assert.Equal(t, 7, resp.RemainingUnscheduled)
	assert.Empty(t, resp.Conflicts)
}

func TestBulkSchedule_CountCappedByRemaining(t *testing.T) {
	entRepo := &mockEntitlementRepo{entitlement: activeEntitlement(4)}
	slots := &mockSlotRepo{}
	uc := newTestUseCase(entRepo, slots, &mockNotifier{})

	resp, err := uc.Execute(context.Background(), weeklyRequest(10))

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Requested)
	assert.Equal(t, 4, resp.ScheduledCount)
}

func TestBulkSchedule_NoSessionsRemaining(t *testing.T) {
	ent := activeEntitlement(10)
	ent.SessionsRemaining = 0
	ent.SessionsUsed = 10
	entRepo := &mockEntitlementRepo{entitlement: ent}
	uc := newTestUseCase(entRepo, &mockSlotRepo{}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), weeklyRequest(10))

	// Деривация переводит active с нулевым остатком в completed
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoActiveEntitlement)
	assert.True(t, entRepo.updated)
}

func TestBulkSchedule_CancelledEntitlement(t *testing.T) {
	ent := activeEntitlement(10)
	ent.Status = domain.EntitlementCancelled
	uc := newTestUseCase(&mockEntitlementRepo{entitlement: ent}, &mockSlotRepo{}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), weeklyRequest(10))

	assert.ErrorIs(t, err, ErrNoActiveEntitlement)
}

func TestBulkSchedule_EntitlementNotFound(t *testing.T) {
	uc := newTestUseCase(&mockEntitlementRepo{}, &mockSlotRepo{}, &mockNotifier{})

	req := weeklyRequest(10)
	req.EntitlementID = 77

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrEntitlementNotFound)
}

func TestBulkSchedule_CustomDatesDuplicateConflictsWithStaged(t *testing.T) {
	entRepo := &mockEntitlementRepo{entitlement: activeEntitlement(5)}
	slots := &mockSlotRepo{}
	uc := newTestUseCase(entRepo, slots, &mockNotifier{})

	req := weeklyRequest(0)
	req.Frequency = string(domain.FrequencyCustom)
	req.Weekdays = nil
	req.CustomDates = []time.Time{monday, monday.AddDate(0, 0, 2), monday}

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	// Дубликат даты пересекается с уже принятым кандидатом того же батча
	assert.Equal(t, 2, resp.ScheduledCount)
	assert.Len(t, resp.Conflicts, 1)
}

func TestBulkSchedule_InvalidFrequency(t *testing.T) {
	uc := newTestUseCase(&mockEntitlementRepo{entitlement: activeEntitlement(5)}, &mockSlotRepo{}, &mockNotifier{})

	req := weeklyRequest(5)
	req.Frequency = "hourly"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
