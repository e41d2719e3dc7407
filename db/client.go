// Package db é o cliente do banco do bem-estar: um delegate por model,
// transações e acesso a SQL cru.
//
//	client, err := db.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	receitas, err := client.Receita.FindMany().
//	    Where(inputs.ReceitaWhereInput{Tags: filters.Has("vegano")}).
//	    OrderBy(builder.Desc("criadoEm")).
//	    Include("ingredientes", "passos").
//	    Exec(ctx)
package db

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/inputs"
	"github.com/carlosnayan/bemestar/db/models"
	"github.com/carlosnayan/bemestar/internal/cache"
	"github.com/carlosnayan/bemestar/internal/config"
	"github.com/carlosnayan/bemestar/internal/dialect"
	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/logger"
	"github.com/carlosnayan/bemestar/raw"
)

type (
	UsuarioDelegate            = builder.Delegate[models.Usuario, inputs.UsuarioWhereInput, inputs.UsuarioWhereUniqueInput, inputs.UsuarioCreateInput, inputs.UsuarioUpdateInput]
	RefeicaoDelegate           = builder.Delegate[models.Refeicao, inputs.RefeicaoWhereInput, inputs.RefeicaoWhereUniqueInput, inputs.RefeicaoCreateInput, inputs.RefeicaoUpdateInput]
	RegistroRefeicaoDelegate   = builder.Delegate[models.RegistroRefeicao, inputs.RegistroRefeicaoWhereInput, inputs.RegistroRefeicaoWhereUniqueInput, inputs.RegistroRefeicaoCreateInput, inputs.RegistroRefeicaoUpdateInput]
	RegistroHidratacaoDelegate = builder.Delegate[models.RegistroHidratacao, inputs.RegistroHidratacaoWhereInput, inputs.RegistroHidratacaoWhereUniqueInput, inputs.RegistroHidratacaoCreateInput, inputs.RegistroHidratacaoUpdateInput]
	RegistroSonoDelegate       = builder.Delegate[models.RegistroSono, inputs.RegistroSonoWhereInput, inputs.RegistroSonoWhereUniqueInput, inputs.RegistroSonoCreateInput, inputs.RegistroSonoUpdateInput]
	LembreteSonoDelegate       = builder.Delegate[models.LembreteSono, inputs.LembreteSonoWhereInput, inputs.LembreteSonoWhereUniqueInput, inputs.LembreteSonoCreateInput, inputs.LembreteSonoUpdateInput]
	ReceitaDelegate            = builder.Delegate[models.Receita, inputs.ReceitaWhereInput, inputs.ReceitaWhereUniqueInput, inputs.ReceitaCreateInput, inputs.ReceitaUpdateInput]
	IngredienteDelegate        = builder.Delegate[models.Ingrediente, inputs.IngredienteWhereInput, inputs.IngredienteWhereUniqueInput, inputs.IngredienteCreateInput, inputs.IngredienteUpdateInput]
	PassoReceitaDelegate       = builder.Delegate[models.PassoReceita, inputs.PassoReceitaWhereInput, inputs.PassoReceitaWhereUniqueInput, inputs.PassoReceitaCreateInput, inputs.PassoReceitaUpdateInput]
	ReceitaFavoritaDelegate    = builder.Delegate[models.ReceitaFavorita, inputs.ReceitaFavoritaWhereInput, inputs.ReceitaFavoritaWhereUniqueInput, inputs.ReceitaFavoritaCreateInput, inputs.ReceitaFavoritaUpdateInput]
)

// Client reúne os delegates de todos os models
type Client struct {
	Usuario            *UsuarioDelegate
	Refeicao           *RefeicaoDelegate
	RegistroRefeicao   *RegistroRefeicaoDelegate
	RegistroHidratacao *RegistroHidratacaoDelegate
	RegistroSono       *RegistroSonoDelegate
	LembreteSono       *LembreteSonoDelegate
	Receita            *ReceitaDelegate
	Ingrediente        *IngredienteDelegate
	PassoReceita       *PassoReceitaDelegate
	ReceitaFavorita    *ReceitaFavoritaDelegate

	exec  *builder.Executor
	owned bool
	stop  context.CancelFunc
}

type clientOptions struct {
	provider string
	logger   *logger.Logger
	cache    *cache.ResultCache
}

// Option configura o Client
type Option func(*clientOptions)

// WithDialect escolhe o SQL gerado: "postgresql" (padrão), "mysql" ou "sqlite"
func WithDialect(provider string) Option {
	return func(o *clientOptions) {
		o.provider = provider
	}
}

// WithLogger loga as queries no slog da aplicação, nos níveis dados
// (query, info, warn, error)
func WithLogger(l *slog.Logger, levels ...string) Option {
	return func(o *clientOptions) {
		o.logger = logger.FromSlog(l, levels)
	}
}

// WithCache liga o cache de leituras
func WithCache(ttl time.Duration, maxEntries int) Option {
	return func(o *clientOptions) {
		o.cache = cache.New(maxEntries, ttl)
	}
}

var (
	schemaOnce sync.Once
	schema     *builder.Schema
	schemaErr  error
)

// Schema devolve o schema dos models, montado uma única vez
func Schema() (*builder.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = builder.NewSchema(applyHooks(modelsMetadata())...)
	})
	return schema, schemaErr
}

// NewClient cria um Client sobre uma conexão já aberta. Close não fecha
// essa conexão.
func NewClient(conn driver.DB, opts ...Option) (*Client, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	o := &clientOptions{provider: config.ProviderPostgreSQL}
	for _, opt := range opts {
		opt(o)
	}

	var execOpts []builder.ExecutorOption
	if o.logger != nil {
		execOpts = append(execOpts, builder.WithLogger(o.logger))
	}
	c := &Client{}
	if o.cache != nil {
		execOpts = append(execOpts, builder.WithCache(o.cache))
		ctx, cancel := context.WithCancel(context.Background())
		o.cache.StartCleanup(ctx, time.Minute)
		c.stop = cancel
	}
	c.bind(builder.NewExecutor(conn, dialect.GetDialect(o.provider), s, execOpts...))
	return c, nil
}

// Connect abre a conexão descrita no prisma.conf e aplica as seções
// [log] e [cache]. Close fecha a conexão.
func Connect(ctx context.Context, cfg *config.Config) (*Client, error) {
	conn, err := driver.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithDialect(cfg.GetProvider())}
	if cfg.Log != nil {
		l := logger.NewLogger(cfg.Log.Levels, os.Stdout, logger.WithFormat(cfg.Log.Format))
		opts = append(opts, func(o *clientOptions) { o.logger = l })
	}
	if cfg.Cache != nil && cfg.Cache.Enabled {
		opts = append(opts, WithCache(cfg.Cache.TTL.Duration, cfg.Cache.MaxEntries))
	}

	c, err := NewClient(conn, opts...)
	if err != nil {
		if closer, ok := conn.(driver.Closer); ok {
			closer.Close()
		}
		return nil, err
	}
	c.owned = true
	return c, nil
}

func (c *Client) bind(exec *builder.Executor) {
	c.exec = exec
	c.Usuario = builder.NewDelegate[models.Usuario, inputs.UsuarioWhereInput, inputs.UsuarioWhereUniqueInput, inputs.UsuarioCreateInput, inputs.UsuarioUpdateInput](exec, "Usuario")
	c.Refeicao = builder.NewDelegate[models.Refeicao, inputs.RefeicaoWhereInput, inputs.RefeicaoWhereUniqueInput, inputs.RefeicaoCreateInput, inputs.RefeicaoUpdateInput](exec, "Refeicao")
	c.RegistroRefeicao = builder.NewDelegate[models.RegistroRefeicao, inputs.RegistroRefeicaoWhereInput, inputs.RegistroRefeicaoWhereUniqueInput, inputs.RegistroRefeicaoCreateInput, inputs.RegistroRefeicaoUpdateInput](exec, "RegistroRefeicao")
	c.RegistroHidratacao = builder.NewDelegate[models.RegistroHidratacao, inputs.RegistroHidratacaoWhereInput, inputs.RegistroHidratacaoWhereUniqueInput, inputs.RegistroHidratacaoCreateInput, inputs.RegistroHidratacaoUpdateInput](exec, "RegistroHidratacao")
	c.RegistroSono = builder.NewDelegate[models.RegistroSono, inputs.RegistroSonoWhereInput, inputs.RegistroSonoWhereUniqueInput, inputs.RegistroSonoCreateInput, inputs.RegistroSonoUpdateInput](exec, "RegistroSono")
	c.LembreteSono = builder.NewDelegate[models.LembreteSono, inputs.LembreteSonoWhereInput, inputs.LembreteSonoWhereUniqueInput, inputs.LembreteSonoCreateInput, inputs.LembreteSonoUpdateInput](exec, "LembreteSono")
	c.Receita = builder.NewDelegate[models.Receita, inputs.ReceitaWhereInput, inputs.ReceitaWhereUniqueInput, inputs.ReceitaCreateInput, inputs.ReceitaUpdateInput](exec, "Receita")
	c.Ingrediente = builder.NewDelegate[models.Ingrediente, inputs.IngredienteWhereInput, inputs.IngredienteWhereUniqueInput, inputs.IngredienteCreateInput, inputs.IngredienteUpdateInput](exec, "Ingrediente")
	c.PassoReceita = builder.NewDelegate[models.PassoReceita, inputs.PassoReceitaWhereInput, inputs.PassoReceitaWhereUniqueInput, inputs.PassoReceitaCreateInput, inputs.PassoReceitaUpdateInput](exec, "PassoReceita")
	c.ReceitaFavorita = builder.NewDelegate[models.ReceitaFavorita, inputs.ReceitaFavoritaWhereInput, inputs.ReceitaFavoritaWhereUniqueInput, inputs.ReceitaFavoritaCreateInput, inputs.ReceitaFavoritaUpdateInput](exec, "ReceitaFavorita")
}

// Transaction roda fn com um Client preso a uma transação: commit quando
// fn retorna nil, rollback em erro ou pânico. Transações aninhadas
// falham com errors.ErrNestedTx.
func (c *Client) Transaction(ctx context.Context, fn func(tx *Client) error) error {
	return c.exec.Transaction(ctx, func(exec *builder.Executor) error {
		tx := &Client{}
		tx.bind(exec)
		return fn(tx)
	})
}

// InTransaction indica se o Client está preso a uma transação
func (c *Client) InTransaction() bool {
	return c.exec.InTransaction()
}

// Raw executa SQL escrito à mão na mesma conexão (ou transação) do Client.
// Como o SQL cru não diz quais tabelas altera, cada Exec esvazia o cache
// de leituras inteiro.
func (c *Client) Raw() *raw.Executor {
	return raw.New(c.exec.DB(), raw.AfterExec(c.exec.InvalidateAll))
}

// Executor expõe o Executor, para uso com builder.Where e afins
func (c *Client) Executor() *builder.Executor {
	return c.exec
}

// Close para a limpeza do cache e, se a conexão foi aberta por Connect,
// fecha o pool
func (c *Client) Close() error {
	if c.stop != nil {
		c.stop()
	}
	if !c.owned {
		return nil
	}
	if closer, ok := c.exec.DB().(driver.Closer); ok {
		return closer.Close()
	}
	return nil
}
