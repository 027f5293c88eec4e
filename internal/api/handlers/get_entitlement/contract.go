package get_entitlement

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/entitlements/models"
)

// EntitlementsService интерфейс сервиса абонементов
type EntitlementsService interface {
	GetByID(ctx context.Context, id int64) (*models.EntitlementResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
