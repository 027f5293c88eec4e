package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/txmanager"
)

// TransactionManager транзакционный менеджер поверх обычного *sql.DB (без метрик)
// Используется, когда сбор метрик отключен в конфигурации
type TransactionManager struct {
	inner *txmanager.TransactionManager
}

// NewTransactionManager создает transaction manager поверх *sql.DB
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{
		inner: txmanager.NewTransactionManager(&beginnerAdapter{db: db}),
	}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.inner.Do(ctx, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции с повторными попытками
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.inner.DoSerializable(ctx, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.inner.DoReadOnly(ctx, fn)
}

// beginnerAdapter приводит *sql.DB к интерфейсу txmanager.TxBeginner
type beginnerAdapter struct {
	db *sql.DB
}

func (a *beginnerAdapter) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := a.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
