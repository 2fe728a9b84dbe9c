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

	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/dbmetrics"
)

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: true},
		{name: "deadlock", err: &pq.Error{Code: "40P01"}, want: true},
		{name: "wrapped", err: fmt.Errorf("create: %w", &pq.Error{Code: "40001"}), want: true},
		{name: "sentinel", err: fmt.Errorf("%w: retry", ErrSerialization), want: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSerializationFailure(tt.err))
		})
	}
}

type fakeTx struct {
	dbmetrics.DBExecutor
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx    *fakeTx
	opts  *sql.TxOptions
	calls int
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.calls++
	b.opts = opts
	return b.tx, nil
}

func TestTransactionManager_Run(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("commit", func(t *testing.T) {
		b := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(b)

		err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(ctx))
			return nil
		})

		require.NoError(t, err)
		assert.True(t, b.tx.committed)
		assert.False(t, b.tx.rolledBack)
		assert.Equal(t, sql.LevelSerializable, b.opts.Isolation)
	})

	t.Run("rollback on error", func(t *testing.T) {
		b := &fakeBeginner{tx: &fakeTx{}}

		err := NewTransactionManager(b).Do(context.Background(), func(context.Context) error { return errBoom })

		assert.ErrorIs(t, err, errBoom)
		assert.True(t, b.tx.rolledBack)
		assert.False(t, b.tx.committed)
	})

	t.Run("cancelled request is not committed", func(t *testing.T) {
		b := &fakeBeginner{tx: &fakeTx{}}
		ctx, cancel := context.WithCancel(context.Background())

		err := NewTransactionManager(b).Do(ctx, func(context.Context) error {
			cancel()
			return nil
		})

		assert.ErrorIs(t, err, ErrTransaction)
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, b.tx.rolledBack)
		assert.False(t, b.tx.committed)
	})

	t.Run("serialization failure on commit", func(t *testing.T) {
		b := &fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40001"}}}

		err := NewTransactionManager(b).DoSerializable(context.Background(), func(context.Context) error { return nil })

		assert.ErrorIs(t, err, ErrSerialization)
	})

	t.Run("nested call reuses transaction", func(t *testing.T) {
		b := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(b)

		err := m.Do(context.Background(), func(ctx context.Context) error {
			return m.DoReadOnly(ctx, func(context.Context) error { return nil })
		})

		require.NoError(t, err)
		assert.Equal(t, 1, b.calls)
	})
}
