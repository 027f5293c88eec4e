package reschedule_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	slotstorage "github.com/m04kA/SMC-TrainingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
)

// Понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type mockSlotRepo struct {
	slots map[int64]*domain.BookedSlot
}

func (m *mockSlotRepo) GetByID(_ context.Context, id int64) (*domain.BookedSlot, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, slotstorage.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSlotRepo) GetByTrainerWithFilter(_ context.Context, filter domain.TrainerSlotsFilter) ([]*domain.BookedSlot, error) {
	var result []*domain.BookedSlot
	for _, s := range m.slots {
		if s.TrainerID != filter.TrainerID {
			continue
		}
		if filter.OnlyCommitted && !s.IsCommitted() {
			continue
		}
		if filter.From != nil && s.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !s.StartTime.Before(*filter.To) {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockSlotRepo) UpdateInterval(_ context.Context, id int64, start, end time.Time, durationMinutes int) error {
	s := m.slots[id]
	s.StartTime = start
	s.EndTime = end
	s.DurationMinutes = durationMinutes
	s.Status = domain.SlotStatusRescheduled
	return nil
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

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

func scheduledSlot(id int64, start time.Time) *domain.BookedSlot {
	return &domain.BookedSlot{
		ID:              id,
		MemberID:        100,
		TrainerID:       200,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          domain.SlotStatusScheduled,
	}
}

func newTestUseCase(repo *mockSlotRepo, events *mockNotifier) *UseCase {
	uc := NewUseCase(repo, events, stubTxManager{}, stubLogger{})
	uc.timeProvider = &fixedTimeProvider{now: monday}
	return uc
}

func moveRequest(slotID int64) *Request {
	return &Request{
		SlotID:    slotID,
		ActorID:   100,
		ActorRole: domain.RoleMember,
		Date:      monday.AddDate(0, 0, 2),
		StartTime: "12:00",
	}
}

func TestExecute_MovesSlot(t *testing.T) {
	repo := &mockSlotRepo{slots: map[int64]*domain.BookedSlot{
		1: scheduledSlot(1, monday.Add(10*time.Hour)),
	}}
	events := &mockNotifier{}
	uc := newTestUseCase(repo, events)

	resp, err := uc.Execute(context.Background(), moveRequest(1))
	require.NoError(t, err)

	newStart := monday.AddDate(0, 0, 2).Add(12 * time.Hour)
	assert.Equal(t, newStart, resp.StartTime)
	assert.Equal(t, newStart.Add(time.Hour), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.SlotStatusRescheduled), resp.Status)

	require.Len(t, events.events, 1)
	assert.Equal(t, notifier.EventSlotRescheduled, events.events[0].Type)
}

func TestExecute_KeepsDurationWhenOmitted(t *testing.T) {
	slot := scheduledSlot(1, monday.Add(10*time.Hour))
	slot.DurationMinutes = 90
	slot.EndTime = slot.StartTime.Add(90 * time.Minute)

	repo := &mockSlotRepo{slots: map[int64]*domain.BookedSlot{1: slot}}
	uc := newTestUseCase(repo, &mockNotifier{})

	resp, err := uc.Execute(context.Background(), moveRequest(1))
	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecute_SelfOverlapAllowed(t *testing.T) {
	// Перенос на интервал, пересекающийся со старым положением самого слота
	repo := &mockSlotRepo{slots: map[int64]*domain.BookedSlot{
		1: scheduledSlot(1, monday.AddDate(0, 0, 2).Add(11*time.Hour+30*time.Minute)),
	}}
	uc := newTestUseCase(repo, &mockNotifier{})

	_, err := uc.Execute(context.Background(), moveRequest(1))
	assert.NoError(t, err)
}

func TestExecute_ConflictWithOtherSlot(t *testing.T) {
	repo := &mockSlotRepo{slots: map[int64]*domain.BookedSlot{
		1: scheduledSlot(1, monday.Add(10*time.Hour)),
		2: scheduledSlot(2, monday.AddDate(0, 0, 2).Add(12*time.Hour)),
	}}
	uc := newTestUseCase(repo, &mockNotifier{})

	_, err := uc.Execute(context.Background(), moveRequest(1))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_MemberCannotMoveForeignSlot(t *testing.T) {
	repo := &mockSlotRepo{slots: map[int64]*domain.BookedSlot{
		1: scheduledSlot(1, monday.Add(10*time.Hour)),
	}}
	uc := newTestUseCase(repo, &mockNotifier{})

	req := moveRequest(1)
	req.ActorID = 777

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_TerminalSlotRejected(t *testing.T) {
	slot := scheduledSlot(1, monday.Add(10*time.Hour))
	slot.Status = domain.SlotStatusCompleted

	repo := &mockSlotRepo{slots: map[int64]*domain.BookedSlot{1: slot}}
	uc := newTestUseCase(repo, &mockNotifier{})

	_, err := uc.Execute(context.Background(), moveRequest(1))
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_PastTargetRejected(t *testing.T) {
	repo := &mockSlotRepo{slots: map[int64]*domain.BookedSlot{
		1: scheduledSlot(1, monday.Add(10*time.Hour)),
	}}
	uc := newTestUseCase(repo, &mockNotifier{})

	req := moveRequest(1)
	req.Date = monday.AddDate(0, 0, -7)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &mockSlotRepo{slots: map[int64]*domain.BookedSlot{}}
	uc := newTestUseCase(repo, &mockNotifier{})

	_, err := uc.Execute(context.Background(), moveRequest(42))
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
