package get_trainer_slots

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/slots/models"
)

// SlotsService интерфейс сервиса слотов
type SlotsService interface {
	GetTrainerSlots(ctx context.Context, req *models.GetTrainerSlotsRequest) (*models.SlotListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
