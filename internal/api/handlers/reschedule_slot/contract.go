package reschedule_slot

import (
	"context"

	rescheduleSlot "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_slot"
)

// RescheduleSlotUseCase интерфейс use case переноса слота
type RescheduleSlotUseCase interface {
	Execute(ctx context.Context, req *rescheduleSlot.Request) (*rescheduleSlot.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
