package contextutil

import (
	"context"
	"time"
)

// Timeouts padrão. Podem ser ajustados na inicialização do cliente.
var (
	QueryTimeout       = 5 * time.Second
	TransactionTimeout = 30 * time.Second
	MigrationTimeout   = 5 * time.Minute
)

// WithQueryTimeout aplica QueryTimeout, a menos que o contexto já tenha um deadline
func WithQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withDefault(ctx, QueryTimeout)
}

// WithTransactionTimeout aplica TransactionTimeout, a menos que o contexto já tenha um deadline
func WithTransactionTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withDefault(ctx, TransactionTimeout)
}

// WithMigrationTimeout aplica MigrationTimeout, a menos que o contexto já tenha um deadline
func WithMigrationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withDefault(ctx, MigrationTimeout)
}

func withDefault(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok || d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
