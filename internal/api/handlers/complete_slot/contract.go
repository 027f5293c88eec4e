package complete_slot

import (
	"context"

	completeSlot "github.com/m04kA/SMC-TrainingService/internal/usecase/complete_slot"
)

// CompleteSlotUseCase интерфейс use case завершения слота
type CompleteSlotUseCase interface {
	Execute(ctx context.Context, req *completeSlot.Request) (*completeSlot.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
