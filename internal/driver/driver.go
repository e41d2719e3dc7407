// Package driver esconde do cliente a diferença entre o pool do pgx e os
// bancos abertos por database/sql (lib/pq, go-sql-driver/mysql, sqlite).
//
// O SQL chega aqui já com os placeholders do dialeto. Campos de lista
// (Int[], String[]) viram arrays nativos no PostgreSQL e JSON em TEXT nos
// demais; a conversão acontece nos adaptadores, nos dois sentidos.
package driver

import (
	"context"
	"database/sql"
)

// Querier é o que o builder precisa para ler e escrever, dentro ou fora de
// uma transação
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) Row
}

// DB é uma conexão (ou pool) aberta
type DB interface {
	Querier

	Begin(ctx context.Context) (Tx, error)

	// SQLDB devolve o *sql.DB por baixo; nil no pool do pgx
	SQLDB() *sql.DB
}

// Tx é uma transação. Commit e Rollback aceitam ctx porque o pgx exige.
type Tx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Result é o retorno de Exec
type Result interface {
	RowsAffected() int64
}

// Rows percorre o resultado de Query; Close é obrigatório, Err após o laço
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...interface{}) error
}

// Row é o resultado de QueryRow. Sem linha, Scan devolve o ErrNoRows do driver.
type Row interface {
	Scan(dest ...interface{}) error
}

// Closer é implementado pelos adaptadores donos do pool, que o cliente
// fecha em Close
type Closer interface {
	Close() error
}
