package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TrainingService/internal/service/slots/models"
)

type mockSlotRepo struct {
	slot      *domain.BookedSlot
	cancelled bool
	noShow    bool
}

func (m *mockSlotRepo) GetByID(_ context.Context, id int64) (*domain.BookedSlot, error) {
	if m.slot == nil || m.slot.ID != id {
		return nil, slotRepo.ErrSlotNotFound
	}
	return m.slot, nil
}

func (m *mockSlotRepo) GetByMemberWithFilter(_ context.Context, filter domain.MemberSlotsFilter) ([]*domain.BookedSlot, error) {
	if m.slot != nil && m.slot.MemberID == filter.MemberID {
		return []*domain.BookedSlot{m.slot}, nil
	}
	return []*domain.BookedSlot{}, nil
}

func (m *mockSlotRepo) GetByTrainerWithFilter(_ context.Context, filter domain.TrainerSlotsFilter) ([]*domain.BookedSlot, error) {
	if m.slot != nil && m.slot.TrainerID == filter.TrainerID {
		return []*domain.BookedSlot{m.slot}, nil
	}
	return []*domain.BookedSlot{}, nil
}

func (m *mockSlotRepo) Cancel(_ context.Context, id int64, _ int64, _ string) error {
	if m.slot == nil || m.slot.ID != id {
		return slotRepo.ErrSlotNotFound
	}
	m.slot.Status = domain.SlotStatusCancelled
	m.cancelled = true
	return nil
}

func (m *mockSlotRepo) MarkNoShow(_ context.Context, id int64) error {
	if m.slot == nil || m.slot.ID != id {
		return slotRepo.ErrSlotNotFound
	}
	m.slot.Status = domain.SlotStatusNoShow
	m.noShow = true
	return nil
}

type mockNotifier struct {
	events []notifier.Event
}

func (m *mockNotifier) Publish(_ context.Context, event notifier.Event) error {
	m.events = append(m.events, event)
	return nil
}

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

var testNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

// slotStartingIn возвращает запланированный слот, начинающийся через offset от testNow
func slotStartingIn(offset time.Duration) *domain.BookedSlot {
	start := testNow.Add(offset)
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

func newTestService(repo *mockSlotRepo, events *mockNotifier) *Service {
	s := NewService(repo, events, stubLogger{})
	s.timeProvider = fixedTimeProvider{now: testNow}
	return s
}

func TestCancel_MemberInsideNoticeWindowRejected(t *testing.T) {
	repo := &mockSlotRepo{slot: slotStartingIn(2 * time.Hour)}
	svc := newTestService(repo, &mockNotifier{})

	err := svc.Cancel(context.Background(), 5, &models.CancelSlotRequest{
		ActorID:   100,
		ActorRole: models.RoleMember,
		Reason:    "не могу прийти",
	})

	assert.ErrorIs(t, err, ErrCancellationNotice)
	assert.False(t, repo.cancelled)
}

func TestCancel_MemberOutsideNoticeWindowSucceeds(t *testing.T) {
	repo := &mockSlotRepo{slot: slotStartingIn(48 * time.Hour)}
	events := &mockNotifier{}
	svc := newTestService(repo, events)

	err := svc.Cancel(context.Background(), 5, &models.CancelSlotRequest{
		ActorID:   100,
		ActorRole: models.RoleMember,
		Reason:    "уезжаю",
	})

	require.NoError(t, err)
	assert.True(t, repo.cancelled)
	require.Len(t, events.events, 1)
	assert.Equal(t, notifier.EventSlotCancelled, events.events[0].Type)
}

func TestCancel_AdminInsideNoticeWindowSucceeds(t *testing.T) {
	repo := &mockSlotRepo{slot: slotStartingIn(2 * time.Hour)}
	svc := newTestService(repo, &mockNotifier{})

	err := svc.Cancel(context.Background(), 5, &models.CancelSlotRequest{
		ActorID:   1,
		ActorRole: models.RoleAdmin,
	})

	require.NoError(t, err)
	assert.True(t, repo.cancelled)
}

func TestCancel_TrainerInsideNoticeWindowSucceeds(t *testing.T) {
	repo := &mockSlotRepo{slot: slotStartingIn(30 * time.Minute)}
	svc := newTestService(repo, &mockNotifier{})

	err := svc.Cancel(context.Background(), 5, &models.CancelSlotRequest{
		ActorID:   200,
		ActorRole: models.RoleTrainer,
	})

	require.NoError(t, err)
	assert.True(t, repo.cancelled)
}

func TestCancel_MemberWithoutReasonRejected(t *testing.T) {
	repo := &mockSlotRepo{slot: slotStartingIn(48 * time.Hour)}
	svc := newTestService(repo, &mockNotifier{})

	err := svc.Cancel(context.Background(), 5, &models.CancelSlotRequest{
		ActorID:   100,
		ActorRole: models.RoleMember,
	})

	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestCancel_MemberCannotCancelForeignSlot(t *testing.T) {
	repo := &mockSlotRepo{slot: slotStartingIn(48 * time.Hour)}
	svc := newTestService(repo, &mockNotifier{})

	err := svc.Cancel(context.Background(), 5, &models.CancelSlotRequest{
		ActorID:   777,
		ActorRole: models.RoleMember,
		Reason:    "чужой слот",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalSlotRejected(t *testing.T) {
	slot := slotStartingIn(48 * time.Hour)
	slot.Status = domain.SlotStatusCompleted
	svc := newTestService(&mockSlotRepo{slot: slot}, &mockNotifier{})

	err := svc.Cancel(context.Background(), 5, &models.CancelSlotRequest{
		ActorID:   1,
		ActorRole: models.RoleAdmin,
	})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestMarkNoShow_MemberDenied(t *testing.T) {
	svc := newTestService(&mockSlotRepo{slot: slotStartingIn(time.Hour)}, &mockNotifier{})

	err := svc.MarkNoShow(context.Background(), 5, models.RoleMember)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestMarkNoShow_TrainerSucceeds(t *testing.T) {
	repo := &mockSlotRepo{slot: slotStartingIn(-time.Hour)}
	svc := newTestService(repo, &mockNotifier{})

	err := svc.MarkNoShow(context.Background(), 5, models.RoleTrainer)

	require.NoError(t, err)
	assert.True(t, repo.noShow)
}

func TestGetMemberSlots_InvalidStatusRejected(t *testing.T) {
	svc := newTestService(&mockSlotRepo{}, &mockNotifier{})

	bad := "unknown"
	_, err := svc.GetMemberSlots(context.Background(), &models.GetMemberSlotsRequest{
		MemberID: 100,
		Status:   &bad,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
