package driver

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxConn is the query surface shared by *pgxpool.Pool and pgx.Tx
type pgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxExecutor struct {
	conn pgxConn
}

// Exec executes a query that doesn't return rows
func (e pgxExecutor) Exec(ctx context.Context, query string, args ...interface{}) (Result, error) {
	tag, err := e.conn.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgxResult(tag.RowsAffected()), nil
}

// Query executes a query that returns multiple rows
func (e pgxExecutor) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	rows, err := e.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &PgxRows{rows: rows}, nil
}

// QueryRow executes a query that returns a single row
func (e pgxExecutor) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return e.conn.QueryRow(ctx, query, args...)
}

// PgxPoolAdapter adapts *pgxpool.Pool to the driver.DB interface.
// pgx encodes Go slices as PostgreSQL arrays natively, so list columns
// need no conversion here.
type PgxPoolAdapter struct {
	pgxExecutor
	pool *pgxpool.Pool
}

// NewPgxPool creates a new adapter from *pgxpool.Pool
func NewPgxPool(pool *pgxpool.Pool) DB {
	return &PgxPoolAdapter{pgxExecutor: pgxExecutor{conn: pool}, pool: pool}
}

// Begin starts a transaction
func (a *PgxPoolAdapter) Begin(ctx context.Context) (Tx, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PgxTx{pgxExecutor: pgxExecutor{conn: tx}, tx: tx}, nil
}

// SQLDB returns nil as pgxpool.Pool doesn't provide *sql.DB directly
func (a *PgxPoolAdapter) SQLDB() *sql.DB {
	return nil
}

// Ping checks that a connection can be acquired
func (a *PgxPoolAdapter) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// Close closes every connection in the pool
func (a *PgxPoolAdapter) Close() error {
	a.pool.Close()
	return nil
}

type pgxResult int64

func (r pgxResult) RowsAffected() int64 {
	return int64(r)
}

// PgxRows wraps pgx.Rows
type PgxRows struct {
	rows pgx.Rows
}

func (r *PgxRows) Close() {
	r.rows.Close()
}

func (r *PgxRows) Err() error {
	return r.rows.Err()
}

func (r *PgxRows) Next() bool {
	return r.rows.Next()
}

func (r *PgxRows) Scan(dest ...interface{}) error {
	return r.rows.Scan(dest...)
}

// PgxTx wraps pgx.Tx
type PgxTx struct {
	pgxExecutor
	tx pgx.Tx
}

// Commit commits the transaction
func (t *PgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *PgxTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
