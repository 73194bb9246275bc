package dbmetrics

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConnector драйвер без сети: Exec и транзакции выполняются в памяти
type stubConnector struct{ execErr error }

func (c *stubConnector) Connect(context.Context) (driver.Conn, error) { return &stubConn{c: c}, nil }
func (c *stubConnector) Driver() driver.Driver                        { return stubDriver{c: c} }

type stubDriver struct{ c *stubConnector }

func (d stubDriver) Open(string) (driver.Conn, error) { return &stubConn{c: d.c}, nil }

type stubConn struct{ c *stubConnector }

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare not supported") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

func (c *stubConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	if c.c.execErr != nil {
		return nil, c.c.execErr
	}
	return driver.RowsAffected(1), nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type observation struct {
	operation string
	err       error
}

type fakeCollector struct {
	mu           sync.Mutex
	observations []observation
	statsCalls   int
}

func (f *fakeCollector) ObserveDBQuery(operation string, _ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observations = append(f.observations, observation{operation: operation, err: err})
}

func (f *fakeCollector) SetDBStats(sql.DBStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
}

func (f *fakeCollector) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, 0, len(f.observations))
	for _, o := range f.observations {
		ops = append(ops, o.operation)
	}
	return ops
}

func (f *fakeCollector) stats() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statsCalls
}

func openStub(t *testing.T, execErr error) *sql.DB {
	t.Helper()
	db := sql.OpenDB(&stubConnector{execErr: execErr})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_ObservesStatementsAndTransactions(t *testing.T) {
	collector := &fakeCollector{}
	db := Wrap(openStub(t, nil), collector)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "UPDATE spaces SET status = 'available'")
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, "DELETE FROM reservations")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, []string{"exec", "begin", "tx_exec", "commit"}, collector.operations())
	for _, o := range collector.observations {
		assert.NoError(t, o.err, o.operation)
	}
}

func TestDB_ObservesFailures(t *testing.T) {
	failure := errors.New("connection reset")
	collector := &fakeCollector{}
	db := Wrap(openStub(t, failure), collector)

	_, err := db.ExecContext(context.Background(), "UPDATE spaces SET status = 'available'")
	require.ErrorIs(t, err, failure)

	require.Len(t, collector.observations, 1)
	assert.Equal(t, "exec", collector.observations[0].operation)
	assert.ErrorIs(t, collector.observations[0].err, failure)
}

func TestDB_NilCollectorPassesThrough(t *testing.T) {
	db := Wrap(openStub(t, nil), nil)

	res, err := db.ExecContext(context.Background(), "UPDATE spaces SET status = 'available'")
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestWrapWithDefault_CollectsPoolStatsUntilStopped(t *testing.T) {
	collector := &fakeCollector{}
	stopCh := make(chan struct{})

	WrapWithDefault(openStub(t, nil), collector, stopCh)

	require.Eventually(t, func() bool { return collector.stats() > 0 }, time.Second, 10*time.Millisecond)
	close(stopCh)
}

func TestWrapWithDefault_NilCollectorStartsNothing(t *testing.T) {
	stopCh := make(chan struct{})
	defer close(stopCh)

	db := WrapWithDefault(openStub(t, nil), nil, stopCh)
	assert.NotNil(t, db)
}
