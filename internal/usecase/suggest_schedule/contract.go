package suggest_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// EntitlementRepository интерфейс репозитория абонементов
type EntitlementRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EntitlementInstance, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
