package suggest_schedule

import (
	"context"

	suggestSchedule "github.com/m04kA/SMC-TrainingService/internal/usecase/suggest_schedule"
)

// SuggestScheduleUseCase интерфейс use case рекомендации расписания
type SuggestScheduleUseCase interface {
	Execute(ctx context.Context, req *suggestSchedule.Request) (*suggestSchedule.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
