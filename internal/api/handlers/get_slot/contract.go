package get_slot

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/slots/models"
)

// SlotsService интерфейс сервиса слотов
type SlotsService interface {
	GetByID(ctx context.Context, id int64) (*models.SlotResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
