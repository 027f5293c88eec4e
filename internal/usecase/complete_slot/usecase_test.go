package complete_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
	slotRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
)

type mockSlotRepo struct {
	slot        *domain.BookedSlot
	completedID *int64
	linkedEntID *int64
}

func (m *mockSlotRepo) GetByID(_ context.Context, id int64) (*domain.BookedSlot, error) {
	if m.slot == nil || m.slot.ID != id {
		return nil, slotRepo.ErrSlotNotFound
	}
	return m.slot, nil
}

func (m *mockSlotRepo) Complete(_ context.Context, id int64, entitlementID *int64) error {
	if m.slot == nil || m.slot.ID != id {
		return slotRepo.ErrSlotNotFound
	}
	m.slot.Status = domain.SlotStatusCompleted
	m.slot.EntitlementID = entitlementID
	m.completedID = &id
	m.linkedEntID = entitlementID
	return nil
}

type mockEntitlementRepo struct {
	entitlement *domain.EntitlementInstance
	updated     *domain.EntitlementInstance
}

func (m *mockEntitlementRepo) GetByID(_ context.Context, id int64) (*domain.EntitlementInstance, error) {
	if m.entitlement == nil || m.entitlement.ID != id {
		return nil, entitlementRepo.ErrEntitlementNotFound
	}
	return m.entitlement, nil
}

func (m *mockEntitlementRepo) GetActiveByMember(_ context.Context, memberID int64) (*domain.EntitlementInstance, error) {
	if m.entitlement == nil || m.entitlement.MemberID != memberID || !m.entitlement.IsActive() {
		return nil, entitlementRepo.ErrEntitlementNotFound
	}
	return m.entitlement, nil
}

func (m *mockEntitlementRepo) Update(_ context.Context, e *domain.EntitlementInstance) error {
	if m.entitlement == nil || m.entitlement.ID != e.ID {
		return entitlementRepo.ErrEntitlementNotFound
	}
	m.entitlement = e
	m.updated = e
	return nil
}

// ConsumeSession повторяет семантику условного UPDATE в хранилище:
// отказ при неактивном статусе или нулевом остатке - не ошибка
func (m *mockEntitlementRepo) ConsumeSession(_ context.Context, id int64) (bool, error) {
	e := m.entitlement
	if e == nil || e.ID != id || !e.IsActive() || e.SessionsRemaining <= 0 {
		return false, nil
	}
	e.SessionsRemaining--
	e.SessionsUsed++
	if e.SessionsRemaining == 0 {
		e.Status = domain.EntitlementCompleted
	}
	return true, nil
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

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

func newTestUseCase(slots *mockSlotRepo, ents *mockEntitlementRepo, events *mockNotifier) *UseCase {
	uc := NewUseCase(slots, ents, events, stubTxManager{}, stubLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)}
	return uc
}

func scheduledSlot() *domain.BookedSlot {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	return &domain.BookedSlot{
		ID:              5,
		MemberID:        100,
		TrainerID:       200,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          domain.SlotStatusScheduled,
	}
}

func entitlementWithRemaining(remaining int) *domain.EntitlementInstance {
	return &domain.EntitlementInstance{
		ID:                1,
		MemberID:          100,
		SessionsTotal:     10,
		SessionsUsed:      10 - remaining,
		SessionsRemaining: remaining,
		ValidityEnd:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:            domain.EntitlementActive,
	}
}

func trainerRequest() *Request {
	return &Request{SlotID: 5, ActorID: 200, ActorRole: domain.RoleTrainer}
}

func TestCompleteSlot_ConsumesSession(t *testing.T) {
	slots := &mockSlotRepo{slot: scheduledSlot()}
	ents := &mockEntitlementRepo{entitlement: entitlementWithRemaining(3)}
	events := &mockNotifier{}
	uc := newTestUseCase(slots, ents, events)

	resp, err := uc.Execute(context.Background(), trainerRequest())

	require.NoError(t, err)
	assert.True(t, resp.SessionConsumed)
	assert.Nil(t, resp.Warning)
	require.NotNil(t, resp.EntitlementID)
	assert.Equal(t, int64(1), *resp.EntitlementID)
	require.NotNil(t, resp.SessionsRemaining)
	assert.Equal(t, 2, *resp.SessionsRemaining)

	// Слот завершен и связан с абонементом
	assert.Equal(t, domain.SlotStatusCompleted, slots.slot.Status)
	require.NotNil(t, slots.linkedEntID)
	assert.Equal(t, int64(1), *slots.linkedEntID)

	require.Len(t, events.events, 1)
	assert.Equal(t, notifier.EventSlotCompleted, events.events[0].Type)
}

func TestCompleteSlot_LastSessionFlipsEntitlementCompleted(t *testing.T) {
	slots := &mockSlotRepo{slot: scheduledSlot()}
	ents := &mockEntitlementRepo{entitlement: entitlementWithRemaining(1)}
	uc := newTestUseCase(slots, ents, &mockNotifier{})

	resp, err := uc.Execute(context.Background(), trainerRequest())

	require.NoError(t, err)
	assert.True(t, resp.SessionConsumed)
	require.NotNil(t, resp.SessionsRemaining)
	assert.Equal(t, 0, *resp.SessionsRemaining)
	require.NotNil(t, resp.EntitlementStatus)
	assert.Equal(t, string(domain.EntitlementCompleted), *resp.EntitlementStatus)

	// Следующее завершение не списывает сессию: абонемент уже completed
	slots.slot.Status = domain.SlotStatusScheduled
	resp2, err := uc.Execute(context.Background(), trainerRequest())

	require.NoError(t, err)
	assert.False(t, resp2.SessionConsumed)
	require.NotNil(t, resp2.Warning)
	assert.Equal(t, WarningNoEntitlement, *resp2.Warning)
}

func TestCompleteSlot_NoEntitlementWarns(t *testing.T) {
	slots := &mockSlotRepo{slot: scheduledSlot()}
	uc := newTestUseCase(slots, &mockEntitlementRepo{}, &mockNotifier{})

	resp, err := uc.Execute(context.Background(), trainerRequest())

	require.NoError(t, err)
	assert.False(t, resp.SessionConsumed)
	assert.Nil(t, resp.EntitlementID)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, WarningNoEntitlement, *resp.Warning)

	// Слот все равно завершен, без связи с абонементом
	assert.Equal(t, domain.SlotStatusCompleted, slots.slot.Status)
	assert.Nil(t, slots.linkedEntID)
}

func TestCompleteSlot_NoSessionsWarns(t *testing.T) {
	slots := &mockSlotRepo{slot: scheduledSlot()}
	// Активный статус с нулевым остатком смоделирован нарочно:
	// derivation pass переводит абонемент в completed, а слот завершается
	ent := entitlementWithRemaining(0)
	ents := &mockEntitlementRepo{entitlement: ent}
	uc := newTestUseCase(slots, ents, &mockNotifier{})

	resp, err := uc.Execute(context.Background(), trainerRequest())

	require.NoError(t, err)
	assert.False(t, resp.SessionConsumed)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, WarningNoSessions, *resp.Warning)
	assert.Equal(t, domain.SlotStatusCompleted, slots.slot.Status)
}

func TestCompleteSlot_ExpiredEntitlementNotConsumed(t *testing.T) {
	slots := &mockSlotRepo{slot: scheduledSlot()}
	// В БД абонемент остался active, хотя окно действия давно истекло
	ent := entitlementWithRemaining(3)
	ent.ValidityEnd = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	ents := &mockEntitlementRepo{entitlement: ent}
	uc := newTestUseCase(slots, ents, &mockNotifier{})

	resp, err := uc.Execute(context.Background(), trainerRequest())

	require.NoError(t, err)
	assert.False(t, resp.SessionConsumed)
	assert.Nil(t, resp.EntitlementID)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, WarningNoEntitlement, *resp.Warning)

	// Остаток не тронут, переход active->expired зафиксирован в хранилище
	assert.Equal(t, 3, ent.SessionsRemaining)
	require.NotNil(t, ents.updated)
	assert.Equal(t, domain.EntitlementExpired, ents.updated.Status)

	// Слот завершен без связи с абонементом
	assert.Equal(t, domain.SlotStatusCompleted, slots.slot.Status)
	assert.Nil(t, slots.linkedEntID)
}

func TestCompleteSlot_TerminalSlotRejected(t *testing.T) {
	slot := scheduledSlot()
	slot.Status = domain.SlotStatusCancelled
	uc := newTestUseCase(&mockSlotRepo{slot: slot}, &mockEntitlementRepo{}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), trainerRequest())

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCompleteSlot_MemberDenied(t *testing.T) {
	uc := newTestUseCase(&mockSlotRepo{slot: scheduledSlot()}, &mockEntitlementRepo{}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 5, ActorID: 100, ActorRole: domain.RoleMember})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCompleteSlot_NotFound(t *testing.T) {
	uc := newTestUseCase(&mockSlotRepo{}, &mockEntitlementRepo{}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), trainerRequest())

	assert.ErrorIs(t, err, ErrSlotNotFound)
}
