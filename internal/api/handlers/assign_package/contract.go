package assign_package

import (
	"context"

	"github.com/m04kA/SMC-TrainingService/internal/service/entitlements/models"
)

// EntitlementsService интерфейс сервиса абонементов
type EntitlementsService interface {
	Assign(ctx context.Context, req *models.AssignRequest) (*models.EntitlementResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
