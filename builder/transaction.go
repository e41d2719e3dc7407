package builder

import (
	"context"
	"database/sql"
	"fmt"

	contextutil "github.com/carlosnayan/bemestar/internal/context"
	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/errors"
)

// Transaction represents a database transaction
type Transaction struct {
	tx driver.Tx
	// ctx carrega o prazo da transação inteira
	ctx context.Context
}

// TransactionFunc is a function that executes within a transaction
type TransactionFunc func(*Transaction) error

// BeginTransaction starts a new database transaction
func BeginTransaction(ctx context.Context, db driver.DB) (*Transaction, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, errors.MapDriverError(err, errors.OpExec)
	}
	return &Transaction{tx: tx, ctx: ctx}, nil
}

// Commit commits the transaction
func (t *Transaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *Transaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// DB exposes the transaction as a driver.DB. Every statement run through it
// is bound to the transaction deadline, whatever context the caller passes.
func (t *Transaction) DB() driver.DB {
	return &txDBAdapter{tx: t.tx, ctx: t.ctx}
}

// txDBAdapter adapts driver.Tx to driver.DB
type txDBAdapter struct {
	tx  driver.Tx
	ctx context.Context
}

// scoped encurta ctx para o prazo da transação e o cancela junto com ela
func (a *txDBAdapter) scoped(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.ctx == nil {
		return ctx, func() {}
	}
	var cancel context.CancelFunc
	if deadline, ok := a.ctx.Deadline(); ok {
		ctx, cancel = context.WithDeadline(ctx, deadline)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	stop := context.AfterFunc(a.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (a *txDBAdapter) Exec(ctx context.Context, sql string, args ...interface{}) (driver.Result, error) {
	ctx, done := a.scoped(ctx)
	defer done()
	return a.tx.Exec(ctx, sql, args...)
}

func (a *txDBAdapter) Query(ctx context.Context, sql string, args ...interface{}) (driver.Rows, error) {
	ctx, done := a.scoped(ctx)
	rows, err := a.tx.Query(ctx, sql, args...)
	if err != nil {
		done()
		return nil, err
	}
	return &scopedRows{Rows: rows, done: done}, nil
}

func (a *txDBAdapter) QueryRow(ctx context.Context, sql string, args ...interface{}) driver.Row {
	ctx, done := a.scoped(ctx)
	return &scopedRow{row: a.tx.QueryRow(ctx, sql, args...), done: done}
}

// scopedRows libera o contexto da consulta ao fechar as linhas
type scopedRows struct {
	driver.Rows
	done context.CancelFunc
}

func (r *scopedRows) Close() {
	r.Rows.Close()
	r.done()
}

type scopedRow struct {
	row  driver.Row
	done context.CancelFunc
}

func (r *scopedRow) Scan(dest ...interface{}) error {
	defer r.done()
	return r.row.Scan(dest...)
}

func (a *txDBAdapter) Begin(ctx context.Context) (driver.Tx, error) {
	return nil, fmt.Errorf("%w: transações aninhadas não são suportadas", errors.ErrNestedTx)
}

func (a *txDBAdapter) SQLDB() *sql.DB {
	return nil
}

// ExecuteTransaction executes a function within a transaction.
// If the function returns an error or panics, the transaction is rolled back;
// a panic is re-raised after the rollback.
func ExecuteTransaction(ctx context.Context, db driver.DB, fn TransactionFunc) (err error) {
	// o timeout cobre a transação inteira, não só o BEGIN
	ctx, cancel := contextutil.WithTransactionTimeout(ctx)
	defer cancel()

	tx, err := BeginTransaction(ctx, db)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(context.WithoutCancel(ctx))
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.MapDriverError(err, errors.OpExec)
	}
	return nil
}

// Transaction runs fn with an Executor bound to a new transaction.
// Calling it on an Executor that is already inside a transaction fails with ErrNestedTx.
func (e *Executor) Transaction(ctx context.Context, fn func(tx *Executor) error) error {
	if e.tx != nil {
		return errors.ErrNestedTx
	}

	var bound *Executor
	err := ExecuteTransaction(ctx, e.db, func(t *Transaction) error {
		bound = e.bind(t.DB())
		return fn(bound)
	})
	if err != nil {
		return err
	}

	// leituras feitas por fora durante a transação podem ter cacheado
	// dados antigos
	for table := range bound.tx.touched {
		e.invalidateTable(table)
	}
	return nil
}
