package cancel_slot

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/slots/models"
)

// SlotsService интерфейс сервиса слотов
type SlotsService interface {
	Cancel(ctx context.Context, slotID int64, req *models.CancelSlotRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
