package reschedule_all

import (
	"context"

	rescheduleAll "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_all"
)

// RescheduleAllUseCase интерфейс use case полного перепланирования
type RescheduleAllUseCase interface {
	Execute(ctx context.Context, req *rescheduleAll.Request) (*rescheduleAll.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
