package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedExecutor struct{ name string }

func (e *namedExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (e *namedExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (e *namedExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type namedTx struct{ namedExecutor }

func (t *namedTx) Commit() error   { return nil }
func (t *namedTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := &namedExecutor{name: "db"}
	tx := &namedTx{namedExecutor{name: "tx"}}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))

	got, ok := TxFromContext(txCtx)
	assert.True(t, ok)
	assert.Same(t, tx, got)
}

func TestWithTx_NilIsNotATransaction(t *testing.T) {
	ctx := WithTx(context.Background(), nil)

	assert.False(t, IsInTransaction(ctx))
	db := &namedExecutor{name: "db"}
	assert.Same(t, db, GetExecutor(ctx, db))
}
