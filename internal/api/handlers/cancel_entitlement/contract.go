package cancel_entitlement

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/entitlements/models"
)

// EntitlementsService интерфейс сервиса абонементов
type EntitlementsService interface {
	Cancel(ctx context.Context, id int64, req *models.CancelRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
