package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookedSlot, error)
	GetByMemberWithFilter(ctx context.Context, filter domain.MemberSlotsFilter) ([]*domain.BookedSlot, error)
	GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerSlotsFilter) ([]*domain.BookedSlot, error)
	Cancel(ctx context.Context, id int64, cancelledBy int64, reason string) error
	MarkNoShow(ctx context.Context, id int64) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
// Ошибки доставки не прерывают основную операцию
type NotifierClient interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
