package book_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.BookedSlot) (*domain.BookedSlot, error)
	GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerSlotsFilter) ([]*domain.BookedSlot, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
