package raw

import (
	"context"
	"fmt"

	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/limits"
)

// Executor provides methods for executing raw SQL queries.
// Placeholders are not rebound: write them in the dialect of the
// connection ($1 on PostgreSQL, ? on MySQL and SQLite).
type Executor struct {
	db        driver.DB
	afterExec func()
}

// Option configura o Executor
type Option func(*Executor)

// AfterExec registra fn para rodar depois de cada Exec bem-sucedido
func AfterExec(fn func()) Option {
	return func(e *Executor) {
		e.afterExec = fn
	}
}

func checkSize(sql string) error {
	if len(sql) > limits.MaxRawQuerySize {
		return fmt.Errorf("SQL cru de %d bytes passa do limite de %d", len(sql), limits.MaxRawQuerySize)
	}
	return nil
}

// New creates a new raw query executor
func New(db driver.DB, opts ...Option) *Executor {
	e := &Executor{db: db}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query executes a raw SQL query that returns multiple rows
//
// Example:
//
//	rows, err := client.Raw().Query(ctx, `
//	    SELECT u.nome, SUM(h.quantidade_ml)
//	    FROM usuarios u
//	    JOIN registros_hidratacao h ON h.usuario_id = u.id
//	    WHERE h.registrado_em >= $1
//	    GROUP BY u.nome
//	`, inicioDoDia)
func (e *Executor) Query(ctx context.Context, sql string, args ...interface{}) (driver.Rows, error) {
	if err := checkSize(sql); err != nil {
		return nil, err
	}
	return e.db.Query(ctx, sql, args...)
}

// QueryRow executes a raw SQL query that returns a single row
//
// Example:
//
//	row := client.Raw().QueryRow(ctx, `
//	    SELECT COUNT(*) AS total,
//	           COUNT(CASE WHEN ativo THEN 1 END) AS ativos
//	    FROM lembretes_sono
//	    WHERE usuario_id = $1
//	`, usuarioID)
//
//	var total, ativos int
//	err := row.Scan(&total, &ativos)
func (e *Executor) QueryRow(ctx context.Context, sql string, args ...interface{}) driver.Row {
	return e.db.QueryRow(ctx, sql, args...)
}

// Exec executes a raw SQL command (INSERT, UPDATE, DELETE)
//
// Example:
//
//	result, err := client.Raw().Exec(ctx, `
//	    UPDATE lembretes_sono
//	    SET ativo = false
//	    WHERE usuario_id = $1
//	`, usuarioID)
func (e *Executor) Exec(ctx context.Context, sql string, args ...interface{}) (driver.Result, error) {
	if err := checkSize(sql); err != nil {
		return nil, err
	}
	result, err := e.db.Exec(ctx, sql, args...)
	if err == nil && e.afterExec != nil {
		e.afterExec()
	}
	return result, err
}
