package driver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// sqlConn is the query surface shared by *sql.DB and *sql.Tx
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// listCodec converte campos de lista ([]string, []int64) entre Go e o banco.
// PostgreSQL usa arrays nativos via lib/pq; MySQL e SQLite gravam JSON.
type listCodec interface {
	arg(v interface{}) interface{}
	dest(v interface{}) interface{}
}

type sqlExecutor struct {
	conn  sqlConn
	codec listCodec
}

func (e sqlExecutor) Exec(ctx context.Context, query string, args ...interface{}) (Result, error) {
	result, err := e.conn.ExecContext(ctx, query, e.args(args)...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	return sqlResult(affected), nil
}

func (e sqlExecutor) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	rows, err := e.conn.QueryContext(ctx, query, e.args(args)...)
	if err != nil {
		return nil, err
	}
	return &SQLRows{rows: rows, codec: e.codec}, nil
}

func (e sqlExecutor) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return &SQLRow{row: e.conn.QueryRowContext(ctx, query, e.args(args)...), codec: e.codec}
}

func (e sqlExecutor) args(args []interface{}) []interface{} {
	converted := make([]interface{}, len(args))
	for i, arg := range args {
		if t, ok := arg.(time.Time); ok {
			arg = t.UTC()
		}
		converted[i] = e.codec.arg(arg)
	}
	return converted
}

// SQLDBAdapter adapts *sql.DB (lib/pq, go-sql-driver/mysql, SQLite) to driver.DB
type SQLDBAdapter struct {
	sqlExecutor
	db *sql.DB
}

// NewSQLDB creates a new adapter from *sql.DB. provider selects how list
// columns are encoded ("postgresql", "mysql" or "sqlite").
func NewSQLDB(db *sql.DB, provider string) DB {
	return &SQLDBAdapter{sqlExecutor: sqlExecutor{conn: db, codec: codecFor(provider)}, db: db}
}

func codecFor(provider string) listCodec {
	switch provider {
	case "postgresql", "postgres":
		return pqArrayCodec{}
	default:
		return jsonListCodec{}
	}
}

// Begin starts a transaction
func (a *SQLDBAdapter) Begin(ctx context.Context) (Tx, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &SQLTx{sqlExecutor: sqlExecutor{conn: tx, codec: a.codec}, tx: tx}, nil
}

// SQLDB returns the wrapped *sql.DB
func (a *SQLDBAdapter) SQLDB() *sql.DB {
	return a.db
}

// Ping verifies the connection
func (a *SQLDBAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close closes the database
func (a *SQLDBAdapter) Close() error {
	return a.db.Close()
}

type sqlResult int64

func (r sqlResult) RowsAffected() int64 {
	return int64(r)
}

// SQLRows wraps *sql.Rows
type SQLRows struct {
	rows  *sql.Rows
	codec listCodec
}

func (r *SQLRows) Close() {
	_ = r.rows.Close()
}

func (r *SQLRows) Err() error {
	return r.rows.Err()
}

func (r *SQLRows) Next() bool {
	return r.rows.Next()
}

func (r *SQLRows) Scan(dest ...interface{}) error {
	return r.rows.Scan(convertDests(r.codec, dest)...)
}

// SQLRow wraps *sql.Row
type SQLRow struct {
	row   *sql.Row
	codec listCodec
}

func (r *SQLRow) Scan(dest ...interface{}) error {
	return r.row.Scan(convertDests(r.codec, dest)...)
}

func convertDests(codec listCodec, dest []interface{}) []interface{} {
	converted := make([]interface{}, len(dest))
	for i, d := range dest {
		converted[i] = codec.dest(d)
	}
	return converted
}

// SQLTx wraps *sql.Tx
type SQLTx struct {
	sqlExecutor
	tx *sql.Tx
}

func (t *SQLTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *SQLTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback()
}

type pqArrayCodec struct{}

func (pqArrayCodec) arg(v interface{}) interface{} {
	switch v.(type) {
	case []string, []int64, []float64, []bool:
		return pq.Array(v)
	case []int:
		ints := v.([]int)
		converted := make([]int64, len(ints))
		for i, n := range ints {
			converted[i] = int64(n)
		}
		return pq.Array(converted)
	}
	return v
}

func (pqArrayCodec) dest(v interface{}) interface{} {
	switch v.(type) {
	case *[]string, *[]int64, *[]float64, *[]bool:
		return pq.Array(v)
	}
	return v
}

type jsonListCodec struct{}

func (jsonListCodec) arg(v interface{}) interface{} {
	switch v.(type) {
	case []string, []int64, []int, []float64, []bool:
		return jsonList{v: v}
	}
	return v
}

func (jsonListCodec) dest(v interface{}) interface{} {
	switch v.(type) {
	case *[]string, *[]int64, *[]int, *[]float64, *[]bool:
		return &jsonList{v: v}
	}
	return v
}

// jsonList grava uma lista como array JSON e lê de volta para o ponteiro em v
type jsonList struct {
	v interface{}
}

func (j jsonList) Value() (driver.Value, error) {
	data, err := json.Marshal(j.v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

func (j *jsonList) Scan(src interface{}) error {
	var data []byte
	switch s := src.(type) {
	case nil:
		data = []byte("[]")
	case string:
		data = []byte(s)
	case []byte:
		data = s
	default:
		return fmt.Errorf("lista: tipo de coluna não suportado %T", src)
	}
	return json.Unmarshal(data, j.v)
}
