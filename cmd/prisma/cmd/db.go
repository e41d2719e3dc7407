package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/carlosnayan/bemestar/cli"
	"github.com/carlosnayan/bemestar/db"
	"github.com/carlosnayan/bemestar/internal/config"
	"github.com/carlosnayan/bemestar/internal/migrations"
)

var (
	dbPushSkipGenerate bool

	dbExecuteFile  string
	dbExecuteStdin bool

	dbHealthJSON    bool
	dbHealthTimeout = 5 * time.Second
)

var dbCmd = &cli.Command{
	Name:  "db",
	Short: "Comandos diretos no banco",
	Long: `Comandos que agem direto no banco, sem migrations:
  push     cria as tabelas que faltam
  seed     carrega os dados de exemplo
  execute  executa um arquivo SQL
  health   testa a conexão`,
	Subcommands: []*cli.Command{
		dbPushCmd,
		dbSeedCmd,
		dbExecuteCmd,
		dbHealthCmd,
	},
}

var dbPushCmd = &cli.Command{
	Name:  "push",
	Short: "Cria as tabelas do schema que ainda não existem",
	Long: `Cria direto no banco as tabelas e índices do schema que ainda não existem,
sem gravar migration. Tabelas existentes não são alteradas.`,
	Usage: "prisma db push [--skip-generate]",
	Flags: []*cli.Flag{
		{Name: "skip-generate", Usage: "Não roda o generate no final", Value: &dbPushSkipGenerate},
	},
	Run: runDbPush,
}

var dbSeedCmd = &cli.Command{
	Name:  "seed",
	Short: "Carrega o seed configurado em [migrations].seed",
	Long: `Se migrations.seed for um arquivo .yaml/.yml, os registros são inseridos pelo
cliente numa única transação. Qualquer outro valor é executado como comando
a partir do diretório do prisma.conf.`,
	Usage: "prisma db seed",
	Run:   runDbSeed,
}

var dbExecuteCmd = &cli.Command{
	Name:  "execute",
	Short: "Executa um script SQL",
	Usage: "prisma db execute --file script.sql | --stdin",
	Flags: []*cli.Flag{
		{Name: "file", Short: "f", Usage: "Arquivo SQL", Value: &dbExecuteFile},
		{Name: "stdin", Usage: "Lê o SQL da entrada padrão", Value: &dbExecuteStdin},
	},
	Run: runDbExecute,
}

var dbHealthCmd = &cli.Command{
	Name:  "health",
	Short: "Testa a conexão com o banco",
	Usage: "prisma db health [--json] [--timeout 5s]",
	Flags: []*cli.Flag{
		{Name: "json", Usage: "Saída em JSON", Value: &dbHealthJSON},
		{Name: "timeout", Usage: "Tempo máximo do teste", Value: &dbHealthTimeout},
	},
	Run: runDbHealth,
}

func runDbPush(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printHeader(cfg)

	schema, err := loadSchema(cfg.GetSchemaPath())
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	manager, _, closeConn, err := openManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeConn()

	start := time.Now()
	diff, err := manager.Push(ctx, schema)
	if err != nil {
		return err
	}

	printLine()
	if diff == nil || diff.Empty() {
		printLine("O banco já está sincronizado com o schema.")
	} else {
		printf("%s", migrations.FormatDiff(diff))
		printLine()
		if diff.HasDrift() {
			printLine(Warning("Colunas removidas ou alteradas não são aplicadas pelo push; use 'prisma migrate reset'."))
		}
		printLine(Success(fmt.Sprintf("Banco sincronizado em %dms.", time.Since(start).Milliseconds())))
	}

	if dbPushSkipGenerate {
		return nil
	}
	printLine()
	if err := generateOnce(cfg.GetSchemaPath(), generatorOptions(cfg)); err != nil {
		printLine(Warning(fmt.Sprintf("generate falhou: %v", err)))
	}
	return nil
}

func runDbSeed(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Migrations.Seed == "" {
		return fmt.Errorf("seed não configurado: defina [migrations] seed no prisma.conf")
	}

	ctx, cancel := commandContext()
	defer cancel()
	return runSeed(ctx, cfg)
}

// runSeed carrega o YAML pelo cliente ou executa o comando configurado
func runSeed(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	if !cfg.SeedIsYAML() {
		printf("Executando seed: %s\n", cfg.Migrations.Seed)
		if err := migrations.ExecuteSeed(ctx, cfg.Migrations.Seed, configDir()); err != nil {
			return err
		}
		printLine(Success(fmt.Sprintf("Seed executado em %dms.", time.Since(start).Milliseconds())))
		return nil
	}

	client, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	printf("Carregando %s\n", relPath(cfg.Migrations.Seed))
	counts, err := db.Seed(ctx, client, cfg.Migrations.Seed)
	if err != nil {
		return err
	}
	for _, c := range counts {
		printf("  %-20s %d\n", c.Model, c.Count)
	}
	printLine(Success(fmt.Sprintf("Seed carregado em %dms.", time.Since(start).Milliseconds())))
	return nil
}

// configDir é o diretório do prisma.conf, onde o comando de seed roda
func configDir() string {
	if configFile != "" {
		return filepath.Dir(configFile)
	}
	return "."
}

func runDbExecute(args []string) error {
	if dbExecuteFile == "" && !dbExecuteStdin {
		return fmt.Errorf("informe --file ou --stdin")
	}
	if dbExecuteFile != "" && dbExecuteStdin {
		return fmt.Errorf("use --file ou --stdin, não os dois")
	}

	var (
		script []byte
		err    error
	)
	if dbExecuteStdin {
		script, err = io.ReadAll(in)
	} else {
		script, err = os.ReadFile(dbExecuteFile)
	}
	if err != nil {
		return fmt.Errorf("erro ao ler SQL: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	manager, _, closeConn, err := openManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeConn()

	if err := manager.ExecuteSQL(ctx, string(script)); err != nil {
		return err
	}
	printLine(Success(fmt.Sprintf("Script executado (%d statement(s)).", len(migrations.SplitSQLStatements(string(script))))))
	return nil
}

func runDbHealth(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	_, conn, closeConn, err := openManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeConn()

	check, checkErr := migrations.CheckHealth(ctx, conn, cfg.GetProvider(), dbHealthTimeout)
	if dbHealthJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(check); err != nil {
			return err
		}
	} else {
		migrations.PrintHealthCheck(out, check)
	}
	return checkErr
}
