package reschedule_all

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/usecase/bulk_schedule"
)

// EntitlementRepository интерфейс репозитория абонементов
type EntitlementRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EntitlementInstance, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeletePendingByMember(ctx context.Context, memberID int64) (int64, error)
}

// BulkScheduler интерфейс пакетного планировщика
// Внутри открытой транзакции переиспользует ее, а не открывает новую
type BulkScheduler interface {
	Execute(ctx context.Context, req *bulk_schedule.Request) (*bulk_schedule.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
