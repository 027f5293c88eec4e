package bulk_schedule

import (
	"context"

	bulkSchedule "github.com/m04kA/SMC-TrainingService/internal/usecase/bulk_schedule"
)

// BulkScheduleUseCase интерфейс use case пакетного планирования
type BulkScheduleUseCase interface {
	Execute(ctx context.Context, req *bulkSchedule.Request) (*bulkSchedule.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
