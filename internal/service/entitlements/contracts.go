package entitlements

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/packagecatalog"
)

// EntitlementRepository интерфейс репозитория абонементов
type EntitlementRepository interface {
	Create(ctx context.Context, e *domain.EntitlementInstance) (*domain.EntitlementInstance, error)
	GetByID(ctx context.Context, id int64) (*domain.EntitlementInstance, error)
	GetByMember(ctx context.Context, memberID int64) ([]*domain.EntitlementInstance, error)
	Update(ctx context.Context, e *domain.EntitlementInstance) error
	ConsumeSession(ctx context.Context, id int64) (bool, error)
	Cancel(ctx context.Context, id int64, cancelledBy int64, reason string) error
	AddFreeze(ctx context.Context, freeze *domain.FreezeRecord) (*domain.FreezeRecord, error)
	AddExtension(ctx context.Context, ext *domain.ExtensionRecord) (*domain.ExtensionRecord, error)
}

// PackageCatalogClient интерфейс клиента каталога тарифных пакетов
type PackageCatalogClient interface {
	GetPackage(ctx context.Context, packageID int64) (*packagecatalog.TrainingPackage, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
