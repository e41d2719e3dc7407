package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carlosnayan/bemestar/cli"
	"github.com/carlosnayan/bemestar/internal/migrations"
)

// in é a entrada das confirmações; os testes trocam por um reader
var in io.Reader = os.Stdin

var (
	migrateDevName         string
	migrateDevCreateOnly   bool
	migrateDevSkipGenerate bool

	migrateResetForce    bool
	migrateResetSkipSeed bool

	migrateResolveApplied    string
	migrateResolveRolledBack string

	migrateDiffFromEmpty bool
	migrateDiffScript    bool
	migrateDiffOut       string
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Short: "Cria e aplica migrations",
	Long: `Comandos de migrations:
  dev      cria uma migration com as mudanças do schema e aplica
  deploy   aplica as migrations pendentes (CI/produção)
  status   compara migrations locais, aplicadas e o banco
  reset    apaga o banco e reaplica todas as migrations
  resolve  marca uma migration como aplicada ou revertida
  diff     mostra o que falta no banco em relação ao schema`,
	Subcommands: []*cli.Command{
		migrateDevCmd,
		migrateDeployCmd,
		migrateStatusCmd,
		migrateResetCmd,
		migrateResolveCmd,
		migrateDiffCmd,
	},
}

var migrateDevCmd = &cli.Command{
	Name:  "dev",
	Short: "Cria e aplica uma migration em desenvolvimento",
	Long: `Aplica as migrations pendentes, compara o schema com o banco e, se houver
tabelas novas, grava prisma/migrations/<timestamp>_<nome>/migration.sql e aplica.
Depois gera o cliente, a menos que --skip-generate seja usado.`,
	Usage: "prisma migrate dev --name <nome> [--create-only] [--skip-generate]",
	Flags: []*cli.Flag{
		{Name: "name", Short: "n", Usage: "Nome da migration", Value: &migrateDevName},
		{Name: "create-only", Usage: "Só cria o arquivo, sem aplicar", Value: &migrateDevCreateOnly},
		{Name: "skip-generate", Usage: "Não roda o generate no final", Value: &migrateDevSkipGenerate},
	},
	Run: runMigrateDev,
}

var migrateDeployCmd = &cli.Command{
	Name:  "deploy",
	Short: "Aplica as migrations pendentes",
	Long:  `Aplica, em ordem, todas as migrations ainda não aplicadas. Não cria migrations nem pede confirmação.`,
	Usage: "prisma migrate deploy",
	Run:   runMigrateDeploy,
}

var migrateStatusCmd = &cli.Command{
	Name:  "status",
	Short: "Mostra o estado das migrations",
	Usage: "prisma migrate status",
	Run:   runMigrateStatus,
}

var migrateResetCmd = &cli.Command{
	Name:  "reset",
	Short: "Apaga o banco e reaplica as migrations",
	Long: `Remove todas as tabelas (inclusive _prisma_migrations), reaplica todas as
migrations e roda o seed configurado. Todos os dados são perdidos.`,
	Usage: "prisma migrate reset [--force] [--skip-seed]",
	Flags: []*cli.Flag{
		{Name: "force", Short: "f", Usage: "Não pede confirmação", Value: &migrateResetForce},
		{Name: "skip-seed", Usage: "Não roda o seed", Value: &migrateResetSkipSeed},
	},
	Run: runMigrateReset,
}

var migrateResolveCmd = &cli.Command{
	Name:  "resolve",
	Short: "Marca uma migration como aplicada ou revertida",
	Usage: "prisma migrate resolve --applied <nome> | --rolled-back <nome>",
	Flags: []*cli.Flag{
		{Name: "applied", Usage: "Marca como aplicada sem executar", Value: &migrateResolveApplied},
		{Name: "rolled-back", Usage: "Marca como revertida", Value: &migrateResolveRolledBack},
	},
	Run: runMigrateResolve,
}

var migrateDiffCmd = &cli.Command{
	Name:  "diff",
	Short: "Mostra as diferenças entre o schema e o banco",
	Long: `Compara o schema com as tabelas do banco. Com --from-empty, compara com um
banco vazio e não precisa de conexão. --script imprime o SQL em vez do resumo.`,
	Usage: "prisma migrate diff [--from-empty] [--script] [--out arquivo.sql]",
	Flags: []*cli.Flag{
		{Name: "from-empty", Usage: "Parte de um banco vazio", Value: &migrateDiffFromEmpty},
		{Name: "script", Usage: "Imprime o SQL", Value: &migrateDiffScript},
		{Name: "out", Short: "o", Usage: "Grava o SQL no arquivo", Value: &migrateDiffOut},
	},
	Run: runMigrateDiff,
}

func printMigrationTree(names []string) {
	printLine("migrations/")
	for _, name := range names {
		printf("  └─ %s\n", MigrationName(name+"/"))
		printLine("    └─ migration.sql")
	}
	printLine()
}

func runMigrateDev(args []string) error {
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

	diagnostic, err := migrations.DevDiagnostic(ctx, manager, schema)
	if err != nil {
		return err
	}
	if diagnostic.Action.Tag == "reset" {
		printLine()
		printLine(diagnostic.Action.Reason)
		printLine()
		printLine("Use 'prisma migrate reset' para recriar o banco de desenvolvimento. Todos os dados serão perdidos.")
		return fmt.Errorf("o banco precisa ser resetado")
	}

	applied, err := manager.ApplyPending(ctx)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		printLine()
		printLine("As seguintes migrations foram aplicadas:")
		printLine()
		printMigrationTree(applied)
	}

	sql, _, err := manager.MissingTablesSQL(ctx, schema)
	if err != nil {
		return err
	}
	if strings.TrimSpace(sql) == "" {
		printLine()
		printLine("Já sincronizado: nenhuma mudança no schema e nenhuma migration pendente.")
		return nil
	}

	name := migrateDevName
	if name == "" && len(args) > 0 {
		name = args[0]
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("o schema tem mudanças; informe o nome da migration com --name")
	}

	migration, err := manager.CreateMigration(name, sql)
	if err != nil {
		return err
	}
	printf("Migration criada: %s\n", MigrationName(migration.Name))
	if migrateDevCreateOnly {
		printLine(Info("Rode 'prisma migrate dev' de novo para aplicá-la."))
		return nil
	}

	if err := manager.ApplyMigration(ctx, migration); err != nil {
		return err
	}
	printLine()
	printLine("As seguintes migrations foram criadas e aplicadas:")
	printLine()
	printMigrationTree([]string{migration.Name})
	printLine(Success("O banco está sincronizado com o schema."))

	if migrateDevSkipGenerate {
		return nil
	}
	printLine()
	opts := generatorOptions(cfg)
	if err := generateOnce(cfg.GetSchemaPath(), opts); err != nil {
		printLine(Warning(fmt.Sprintf("generate falhou: %v", err)))
	}
	return nil
}

func runMigrateDeploy(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printHeader(cfg)

	ctx, cancel := commandContext()
	defer cancel()

	manager, _, closeConn, err := openManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeConn()

	pending, err := manager.PendingMigrations(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		printLine()
		printLine("Nenhuma migration pendente.")
		return nil
	}

	printf("\n%d migration(s) pendente(s) em %s\n\n", len(pending), relPath(manager.Path()))
	var applied []string
	for _, migration := range pending {
		printf("Aplicando %s\n", MigrationName(migration.Name))
		if err := manager.ApplyMigration(ctx, migration); err != nil {
			return err
		}
		applied = append(applied, migration.Name)
	}

	printLine()
	printLine("As seguintes migrations foram aplicadas:")
	printLine()
	printMigrationTree(applied)
	printLine(Success("Todas as migrations foram aplicadas."))
	return nil
}

func runMigrateStatus(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printHeader(cfg)

	ctx, cancel := commandContext()
	defer cancel()

	manager, _, closeConn, err := openManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeConn()

	local, err := manager.LocalMigrations()
	if err != nil {
		return err
	}
	applied, err := manager.AppliedMigrations(ctx)
	if err != nil {
		return err
	}
	modified, err := manager.ModifiedMigrations(ctx)
	if err != nil {
		return err
	}
	missing, err := manager.MissingMigrations(ctx)
	if err != nil {
		return err
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, a := range applied {
		appliedSet[a.Name] = true
	}

	printLine()
	printf("%d migration(s) local(is), %d aplicada(s)\n\n", len(local), len(applied))
	pending := 0
	for _, m := range local {
		status := "aplicada"
		if !appliedSet[m.Name] {
			status = "pendente"
			pending++
		}
		printf("  %-9s %s\n", status, m.Name)
	}
	if len(local) > 0 {
		printLine()
	}

	if len(modified) > 0 {
		printLine(Warning("Modificadas depois de aplicadas: " + strings.Join(modified, ", ")))
	}
	if len(missing) > 0 {
		printLine(Warning("Aplicadas mas ausentes do diretório: " + strings.Join(missing, ", ")))
	}

	if schema, err := loadSchema(cfg.GetSchemaPath()); err == nil {
		if _, diff, err := manager.MissingTablesSQL(ctx, schema); err == nil && diff != nil && !diff.Empty() {
			printLine(Warning("O banco está diferente do schema:"))
			printf("%s", migrations.FormatDiff(diff))
		}
	}

	switch {
	case len(local) == 0:
		printLine(Warning("Nenhuma migration encontrada."))
	case pending > 0:
		printLine(Warning(fmt.Sprintf("%d migration(s) pendente(s). Rode 'prisma migrate deploy'.", pending)))
	default:
		printLine(Success("O banco está em dia com as migrations."))
	}
	return nil
}

// confirm lê "s"/"sim"/"y"/"yes" de in
func confirm(question string) bool {
	printf("%s %s ", question, Info("(s/N)"))
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func runMigrateReset(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printHeader(cfg)

	schema, err := loadSchema(cfg.GetSchemaPath())
	if err != nil {
		return err
	}

	if !migrateResetForce && !confirm(Warning("Apagar todos os dados do banco?")) {
		printLine("Reset cancelado.")
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	manager, _, closeConn, err := openManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeConn()

	applied, err := manager.Reset(ctx, schema)
	if err != nil {
		return err
	}

	printLine()
	printLine(Success("Banco resetado."))
	if len(applied) > 0 {
		printLine()
		printLine("As seguintes migrations foram aplicadas:")
		printLine()
		printMigrationTree(applied)
	}

	if migrateResetSkipSeed || cfg.Migrations.Seed == "" {
		return nil
	}
	// o seed precisa de conexão própria: no SQLite a do manager é a única
	closeConn()
	return runSeed(ctx, cfg)
}

func runMigrateResolve(args []string) error {
	if migrateResolveApplied == "" && migrateResolveRolledBack == "" {
		return fmt.Errorf("informe --applied ou --rolled-back com o nome da migration")
	}
	if migrateResolveApplied != "" && migrateResolveRolledBack != "" {
		return fmt.Errorf("use --applied ou --rolled-back, não os dois")
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

	if migrateResolveApplied != "" {
		if err := manager.MarkMigrationAsApplied(ctx, migrateResolveApplied); err != nil {
			return err
		}
		printf("Migration %s marcada como aplicada\n", MigrationName(migrateResolveApplied))
		return nil
	}
	if err := manager.MarkMigrationAsRolledBack(ctx, migrateResolveRolledBack); err != nil {
		return err
	}
	printf("Migration %s marcada como revertida\n", MigrationName(migrateResolveRolledBack))
	return nil
}

func runMigrateDiff(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	schema, err := loadSchema(cfg.GetSchemaPath())
	if err != nil {
		return err
	}

	var diff *migrations.SchemaDiff
	if migrateDiffFromEmpty {
		diff, err = migrations.SchemaToSQL(schema)
		if err != nil {
			return err
		}
	} else {
		ctx, cancel := commandContext()
		defer cancel()

		manager, _, closeConn, err := openManager(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeConn()

		if _, diff, err = manager.MissingTablesSQL(ctx, schema); err != nil {
			return err
		}
	}

	if diff.Empty() {
		printLine("Sem diferenças.")
		return nil
	}

	if !migrateDiffScript && migrateDiffOut == "" {
		printf("%s", migrations.FormatDiff(diff))
		return nil
	}

	sql, err := migrations.GenerateMigrationSQL(diff, cfg.GetProvider())
	if err != nil {
		return err
	}
	if migrateDiffOut != "" {
		if err := os.WriteFile(migrateDiffOut, []byte(sql), 0644); err != nil {
			return fmt.Errorf("erro ao gravar %s: %w", migrateDiffOut, err)
		}
		printf("SQL gravado em %s\n", migrateDiffOut)
		return nil
	}
	printf("%s", sql)
	return nil
}
