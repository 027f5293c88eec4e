package complete_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookedSlot, error)
	Complete(ctx context.Context, id int64, entitlementID *int64) error
}

// EntitlementRepository интерфейс репозитория абонементов
type EntitlementRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EntitlementInstance, error)
	GetActiveByMember(ctx context.Context, memberID int64) (*domain.EntitlementInstance, error)
	Update(ctx context.Context, e *domain.EntitlementInstance) error
	ConsumeSession(ctx context.Context, id int64) (bool, error)
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
