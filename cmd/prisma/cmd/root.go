// Package cmd implementa os comandos do binário prisma.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/carlosnayan/bemestar"
	"github.com/carlosnayan/bemestar/cli"
	"github.com/carlosnayan/bemestar/internal/config"
	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/logger"
	"github.com/carlosnayan/bemestar/internal/migrations"
	"github.com/carlosnayan/bemestar/internal/parser"
)

var (
	configFile string
	schemaPath string
	verbose    bool
)

// out recebe a saída dos comandos; os testes trocam por um buffer
var out io.Writer = os.Stdout

func newApp() *cli.App {
	app := cli.NewApp(
		"prisma",
		prisma.Version,
		"CLI do bemestar: schema, migrations e cliente Go",
	)
	app.Out = out

	app.AddGlobalFlag(&cli.Flag{
		Name:  "config",
		Short: "c",
		Usage: "Caminho do prisma.conf (padrão: procura a partir do diretório atual)",
		Value: &configFile,
	})
	app.AddGlobalFlag(&cli.Flag{
		Name:  "schema",
		Short: "s",
		Usage: "Caminho do schema.prisma (padrão: o do prisma.conf)",
		Value: &schemaPath,
	})
	app.AddGlobalFlag(&cli.Flag{
		Name:  "verbose",
		Short: "v",
		Usage: "Mostra logs detalhados, inclusive as queries",
		Value: &verbose,
	})

	app.AddCommand(initCmd)
	app.AddCommand(validateCmd)
	app.AddCommand(formatCmd)
	app.AddCommand(generateCmd)
	app.AddCommand(migrateCmd)
	app.AddCommand(dbCmd)
	app.AddCommand(versionCmd)
	return app
}

// Execute roda o CLI com os.Args
func Execute() error {
	return newApp().Execute()
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(out, format, args...)
}

func printLine(args ...interface{}) {
	fmt.Fprintln(out, args...)
}

// commandContext é cancelado com Ctrl+C ou SIGTERM
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadConfig carrega o prisma.conf (--config ou busca a partir do diretório
// atual) e configura o logger padrão
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if schemaPath != "" {
		cfg.Schema = schemaPath
	}

	levels := cfg.GetLogLevels()
	if verbose {
		levels = []string{"query", "info", "warn", "error"}
	}
	logger.SetLogLevels(levels, logger.WithFormat(cfg.Log.Format))
	return cfg, nil
}

// resolveSchemaPath: --schema, depois o prisma.conf, depois o padrão
func resolveSchemaPath() string {
	if schemaPath != "" {
		return schemaPath
	}
	if cfg, err := config.Load(configFile); err == nil {
		return cfg.GetSchemaPath()
	}
	return filepath.Join("prisma", "schema.prisma")
}

func relPath(path string) string {
	if rel, err := filepath.Rel(".", path); err == nil {
		return rel
	}
	return path
}

// loadSchema parseia e valida o schema, listando os erros encontrados
func loadSchema(path string) (*parser.Schema, error) {
	schema, errs, err := parser.ParseFile(path)
	if err != nil {
		if len(errs) > 0 {
			printSchemaErrors(errs)
			return nil, fmt.Errorf("schema inválido: %s", relPath(path))
		}
		return nil, err
	}
	return schema, nil
}

func printSchemaErrors(errs []string) {
	printLine(Warning("Erros de validação do schema:"))
	printLine()
	for i, e := range errs {
		printf("  %d. %s\n", i+1, e)
	}
	printLine()
	printf("Total de erros: %d\n", len(errs))
}

// openManager conecta ao banco do prisma.conf. closeConn fecha a conexão
// e pode ser chamada mais de uma vez.
func openManager(ctx context.Context, cfg *config.Config) (*migrations.Manager, driver.DB, func(), error) {
	conn, err := driver.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("erro ao conectar em %s: %w", cfg.GetProvider(), err)
	}
	var once sync.Once
	closeConn := func() {
		once.Do(func() {
			if closer, ok := conn.(driver.Closer); ok {
				closer.Close()
			}
		})
	}

	manager, err := migrations.NewManager(cfg, conn)
	if err != nil {
		closeConn()
		return nil, nil, nil, err
	}
	return manager, conn, closeConn, nil
}

// printHeader mostra o schema e o banco em uso
func printHeader(cfg *config.Config) {
	printLine(Info(fmt.Sprintf("Schema carregado de %s", relPath(cfg.GetSchemaPath()))))
	printLine(Info(fmt.Sprintf("Datasource: %s", cfg.GetProvider())))
}
