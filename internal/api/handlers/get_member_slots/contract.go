package get_member_slots

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/slots/models"
)

// SlotsService интерфейс сервиса слотов
type SlotsService interface {
	GetMemberSlots(ctx context.Context, req *models.GetMemberSlotsRequest) (*models.SlotListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
