package builder

import (
	"context"
	"sync"
	"time"

	"github.com/carlosnayan/bemestar/internal/cache"
	contextutil "github.com/carlosnayan/bemestar/internal/context"
	"github.com/carlosnayan/bemestar/internal/dialect"
	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/errors"
	"github.com/carlosnayan/bemestar/internal/limits"
	"github.com/carlosnayan/bemestar/internal/logger"
)

// Executor liga o schema a uma conexão: compila, executa, loga e cacheia.
// Os delegates gerados compartilham um Executor.
type Executor struct {
	db      driver.DB
	dialect dialect.Dialect
	schema  *Schema
	logger  *logger.Logger
	cache   *cache.ResultCache

	tx *txState
}

type txState struct {
	mu      sync.Mutex
	touched map[string]struct{}
}

// ExecutorOption configura o Executor
type ExecutorOption func(*Executor)

// WithLogger define o logger das queries
func WithLogger(l *logger.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithCache liga o cache de leituras
func WithCache(c *cache.ResultCache) ExecutorOption {
	return func(e *Executor) {
		e.cache = c
	}
}

// NewExecutor cria um Executor
func NewExecutor(db driver.DB, d dialect.Dialect, schema *Schema, opts ...ExecutorOption) *Executor {
	if d == nil {
		d = dialect.GetDialect("postgresql")
	}
	e := &Executor{db: db, dialect: d, schema: schema}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// bind devolve uma cópia do Executor presa a uma transação
func (e *Executor) bind(db driver.DB) *Executor {
	return &Executor{
		db:      db,
		dialect: e.dialect,
		schema:  e.schema,
		logger:  e.logger,
		cache:   e.cache,
		tx:      &txState{touched: map[string]struct{}{}},
	}
}

// DB retorna a conexão (ou a transação) em uso
func (e *Executor) DB() driver.DB {
	return e.db
}

// Dialect retorna o dialeto em uso
func (e *Executor) Dialect() dialect.Dialect {
	return e.dialect
}

// Schema retorna o schema
func (e *Executor) Schema() *Schema {
	return e.schema
}

// InTransaction indica se o Executor está preso a uma transação
func (e *Executor) InTransaction() bool {
	return e.tx != nil
}

// query executa uma consulta e chama scan para cada linha. As linhas são
// fechadas antes do retorno.
func (e *Executor) query(ctx context.Context, op errors.OperationType, query string, args []interface{}, scan func(driver.Rows) error) error {
	ctx, cancel := contextutil.WithQueryTimeout(ctx)
	defer cancel()

	query = dialect.Rebind(e.dialect, query)
	start := time.Now()
	rows, err := e.db.Query(ctx, query, args...)
	if err != nil {
		e.logFailure(query, err)
		return errors.MapDriverError(err, op)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		if n++; n > limits.MaxScanRows {
			return errors.NewInvalidInputError("a consulta passou de %d linhas; pagine com take ou cursor", limits.MaxScanRows)
		}
		if err := scan(rows); err != nil {
			return errors.MapDriverError(err, op)
		}
	}
	if err := rows.Err(); err != nil {
		e.logFailure(query, err)
		return errors.MapDriverError(err, op)
	}
	e.logQuery(query, args, start)
	return nil
}

// exec executa um comando e retorna as linhas afetadas
func (e *Executor) exec(ctx context.Context, op errors.OperationType, query string, args []interface{}) (int64, error) {
	ctx, cancel := contextutil.WithQueryTimeout(ctx)
	defer cancel()

	query = dialect.Rebind(e.dialect, query)
	start := time.Now()
	result, err := e.db.Exec(ctx, query, args...)
	if err != nil {
		e.logFailure(query, err)
		return 0, errors.MapDriverError(err, op)
	}
	e.logQuery(query, args, start)
	return result.RowsAffected(), nil
}

func (e *Executor) logFailure(query string, err error) {
	e.getLogger().Error("%s failed: %v", detectQueryType(query), err)
}

// invalidate descarta do cache a tabela do model e as que dependem dela
func (e *Executor) invalidate(m *Model) {
	for _, table := range m.dependents {
		e.invalidateTable(table)
	}
}

func (e *Executor) invalidateTable(table string) {
	if e.cache == nil {
		return
	}
	e.cache.Invalidate(table)
	if e.tx != nil {
		e.tx.mu.Lock()
		e.tx.touched[table] = struct{}{}
		e.tx.mu.Unlock()
	}
}

// InvalidateAll descarta o cache de todas as tabelas do schema. Serve para
// escritas feitas fora do builder, como SQL cru, que não dizem o que tocaram.
func (e *Executor) InvalidateAll() {
	if e.cache == nil {
		return
	}
	for _, m := range e.schema.Models() {
		e.invalidateTable(m.Table)
	}
}

// cacheable indica se leituras podem usar o cache
func (e *Executor) cacheable() bool {
	return e.cache != nil && e.tx == nil
}
