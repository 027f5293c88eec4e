package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
)

type fakeTx struct {
	commits   *int
	rollbacks *int
}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t fakeTx) Commit() error {
	*t.commits++
	return nil
}

func (t fakeTx) Rollback() error {
	*t.rollbacks++
	return nil
}

type fakeBeginner struct {
	begun     int
	commits   int
	rollbacks int
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return fakeTx{commits: &b.commits, rollbacks: &b.rollbacks}, nil
}

// Конфликт сериализации приходит в менеджер не голым *pq.Error, а обёрнутым
// сентинелами хранилища и usecase. Цепочка обёрток ниже повторяет эту форму
func wrappedSerializationErr() error {
	driverErr := &pq.Error{Code: pq.ErrorCode(pqSerializationFailure)}
	storageErr := fmt.Errorf("storage: execute update: %w", driverErr)
	return fmt.Errorf("usecase: failed to update slot: %w", storageErr)
}

func TestDoSerializable_RetriesWrappedConflictThenSucceeds(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return wrappedSerializationErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, db.begun)
	assert.Equal(t, 1, db.commits)
	assert.Equal(t, 2, db.rollbacks)
}

func TestDoSerializable_SentinelAfterExhaustedRetries(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return wrappedSerializationErr()
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, maxSerializableAttempts, attempts)
}

func TestDoSerializable_DeadlockRetried(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("storage: %w", &pq.Error{Code: pq.ErrorCode(pqDeadlockDetected)})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_NonRetryableReturnedAsIs(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	sentinel := errors.New("usecase: invalid state")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_ReusesAmbientTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	var zero int
	ctx := dbmetrics.WithTransaction(context.Background(), fakeTx{commits: &zero, rollbacks: &zero})

	err := m.DoSerializable(ctx, func(ctx context.Context) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 0, db.begun)
}
