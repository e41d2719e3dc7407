package migrations

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-openapi/inflect"
	"github.com/google/uuid"

	"github.com/carlosnayan/bemestar/internal/config"
	contextutil "github.com/carlosnayan/bemestar/internal/context"
	"github.com/carlosnayan/bemestar/internal/dialect"
	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/logger"
	"github.com/carlosnayan/bemestar/internal/parser"
	"github.com/carlosnayan/bemestar/internal/textutil"
)

// TableName é a tabela de controle das migrations aplicadas
const TableName = "_prisma_migrations"

// Migration representa uma migration
type Migration struct {
	Name     string // Nome da migration (ex: "20241219120000_add_receitas")
	Path     string // Caminho completo para o diretório da migration
	SQL      string // Conteúdo do arquivo migration.sql
	Checksum string
}

// AppliedMigration é uma linha finalizada de _prisma_migrations
type AppliedMigration struct {
	Name     string
	Checksum string
}

// Manager gerencia migrations
type Manager struct {
	db             driver.DB
	dialect        dialect.Dialect
	migrationsPath string
}

// NewManager cria um novo gerenciador de migrations
func NewManager(cfg *config.Config, db driver.DB) (*Manager, error) {
	return NewManagerWithPath(cfg.GetMigrationsPath(), cfg.GetProvider(), db)
}

// NewManagerWithPath cria o gerenciador sem passar pelo prisma.conf
func NewManagerWithPath(migrationsPath, provider string, db driver.DB) (*Manager, error) {
	// Criar diretório se não existir
	if err := os.MkdirAll(migrationsPath, 0755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de migrations: %w", err)
	}

	return &Manager{
		db:             db,
		dialect:        dialect.GetDialect(provider),
		migrationsPath: migrationsPath,
	}, nil
}

// Path retorna o diretório das migrations
func (m *Manager) Path() string {
	return m.migrationsPath
}

func (m *Manager) exec(ctx context.Context, query string, args ...interface{}) (driver.Result, error) {
	query = dialect.Rebind(m.dialect, query)
	logger.Query(query, args, 0)
	return m.db.Exec(ctx, query, args...)
}

// EnsureMigrationsTable garante que a tabela _prisma_migrations existe
func (m *Manager) EnsureMigrationsTable(ctx context.Context) error {
	ts := m.dialect.MapType("DateTime", false)
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	checksum VARCHAR(64) NOT NULL,
	finished_at %s,
	migration_name VARCHAR(255) NOT NULL,
	logs TEXT,
	rolled_back_at %s,
	started_at %s NOT NULL,
	applied_steps_count INTEGER NOT NULL DEFAULT 0
)`, m.dialect.QuoteIdentifier(TableName), ts, ts, ts)

	if _, err := m.exec(ctx, query); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", TableName, err)
	}
	return nil
}

// AppliedMigrations retorna as migrations finalizadas e não revertidas, na ordem de aplicação
func (m *Manager) AppliedMigrations(ctx context.Context) ([]AppliedMigration, error) {
	if err := m.EnsureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT migration_name, checksum FROM %s
		WHERE finished_at IS NOT NULL AND rolled_back_at IS NULL
		ORDER BY started_at, migration_name`, m.dialect.QuoteIdentifier(TableName))
	rows, err := m.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar migrations aplicadas: %w", err)
	}
	defer rows.Close()

	var applied []AppliedMigration
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Name, &a.Checksum); err != nil {
			return nil, fmt.Errorf("erro ao ler migration: %w", err)
		}
		applied = append(applied, a)
	}
	return applied, rows.Err()
}

// LocalMigrations retorna as migrations do diretório, ordenadas pelo timestamp do nome
func (m *Manager) LocalMigrations() ([]*Migration, error) {
	entries, err := os.ReadDir(m.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler diretório de migrations: %w", err)
	}

	var migrations []*Migration
	for _, entry := range entries {
		if !entry.IsDir() || !isValidMigrationName(entry.Name()) {
			continue
		}

		migrationPath := filepath.Join(m.migrationsPath, entry.Name())
		sqlContent, err := os.ReadFile(filepath.Join(migrationPath, "migration.sql"))
		if err != nil {
			// diretório sem migration.sql não é migration
			continue
		}

		migrations = append(migrations, &Migration{
			Name:     entry.Name(),
			Path:     migrationPath,
			SQL:      string(sqlContent),
			Checksum: calculateChecksum(string(sqlContent)),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Name < migrations[j].Name
	})
	return migrations, nil
}

// isValidMigrationName verifica o formato YYYYMMDDHHMMSS_nome
func isValidMigrationName(name string) bool {
	parts := strings.SplitN(name, "_", 2)
	if len(parts) != 2 || parts[1] == "" || len(parts[0]) != 14 {
		return false
	}
	for _, r := range parts[0] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PendingMigrations retorna migrations locais ainda não aplicadas
func (m *Manager) PendingMigrations(ctx context.Context) ([]*Migration, error) {
	local, err := m.LocalMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := m.AppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	appliedMap := make(map[string]bool, len(applied))
	for _, a := range applied {
		appliedMap[a.Name] = true
	}

	var pending []*Migration
	for _, migration := range local {
		if !appliedMap[migration.Name] {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

// ModifiedMigrations lista migrations aplicadas cujo arquivo mudou depois
func (m *Manager) ModifiedMigrations(ctx context.Context) ([]string, error) {
	local, err := m.LocalMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := m.AppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	checksums := make(map[string]string, len(local))
	for _, l := range local {
		checksums[l.Name] = l.Checksum
	}

	var modified []string
	for _, a := range applied {
		if sum, ok := checksums[a.Name]; ok && a.Checksum != "manual" && sum != a.Checksum {
			modified = append(modified, a.Name)
		}
	}
	return modified, nil
}

// MissingMigrations lista migrations aplicadas que não existem mais no diretório
func (m *Manager) MissingMigrations(ctx context.Context) ([]string, error) {
	local, err := m.LocalMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := m.AppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(local))
	for _, l := range local {
		present[l.Name] = true
	}

	var missing []string
	for _, a := range applied {
		if !present[a.Name] {
			missing = append(missing, a.Name)
		}
	}
	return missing, nil
}

// ApplyMigration aplica uma migration em transação e registra em _prisma_migrations
func (m *Manager) ApplyMigration(ctx context.Context, migration *Migration) error {
	ctx, cancel := contextutil.WithMigrationTimeout(ctx)
	defer cancel()

	if err := m.EnsureMigrationsTable(ctx); err != nil {
		return err
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	migrationID := uuid.NewString()
	insertQuery := dialect.Rebind(m.dialect, fmt.Sprintf(`INSERT INTO %s (id, checksum, migration_name, started_at, applied_steps_count)
		VALUES (?, ?, ?, ?, 0)`, m.dialect.QuoteIdentifier(TableName)))
	if _, err := tx.Exec(ctx, insertQuery, migrationID, calculateChecksum(migration.SQL), migration.Name, time.Now()); err != nil {
		return fmt.Errorf("erro ao registrar migration: %w", err)
	}

	statements := SplitSQLStatements(migration.SQL)
	for _, stmt := range statements {
		logger.Query(stmt, nil, 0)
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao executar migration %s: %w\nSQL: %s", migration.Name, err, stmt)
		}
	}

	updateQuery := dialect.Rebind(m.dialect, fmt.Sprintf(`UPDATE %s SET finished_at = ?, applied_steps_count = ? WHERE id = ?`,
		m.dialect.QuoteIdentifier(TableName)))
	if _, err := tx.Exec(ctx, updateQuery, time.Now(), len(statements), migrationID); err != nil {
		return fmt.Errorf("erro ao finalizar migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao commitar migration: %w", err)
	}
	logger.Info("migration aplicada: %s (%d statements)", migration.Name, len(statements))
	return nil
}

// ApplyPending aplica todas as migrations pendentes, na ordem. Retorna as aplicadas.
func (m *Manager) ApplyPending(ctx context.Context) ([]string, error) {
	pending, err := m.PendingMigrations(ctx)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, migration := range pending {
		if err := m.ApplyMigration(ctx, migration); err != nil {
			return applied, err
		}
		applied = append(applied, migration.Name)
	}
	return applied, nil
}

// CreateMigration grava um novo diretório de migration com o SQL informado
func (m *Manager) CreateMigration(name, sql string) (*Migration, error) {
	slug := inflect.Underscore(textutil.Fold(name))
	if slug == "" {
		slug = "migration"
	}
	dirName := time.Now().UTC().Format("20060102150405") + "_" + slug
	dir := filepath.Join(m.migrationsPath, dirName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório da migration: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "migration.sql"), []byte(sql), 0644); err != nil {
		return nil, fmt.Errorf("erro ao gravar migration.sql: %w", err)
	}

	return &Migration{Name: dirName, Path: dir, SQL: sql, Checksum: calculateChecksum(sql)}, nil
}

// ExistingTables lista as tabelas do banco, sem a tabela de controle
func (m *Manager) ExistingTables(ctx context.Context) ([]string, error) {
	return ListTables(ctx, m.db, m.dialect)
}

// Introspect lê tabelas e colunas do banco
func (m *Manager) Introspect(ctx context.Context) (*DatabaseSchema, error) {
	return IntrospectDatabase(ctx, m.db, m.dialect)
}

// MissingTablesSQL gera o SQL das tabelas e colunas do schema que ainda não
// existem no banco. Colunas sobrando ou alteradas não geram SQL.
func (m *Manager) MissingTablesSQL(ctx context.Context, schema *parser.Schema) (string, *SchemaDiff, error) {
	db, err := m.Introspect(ctx)
	if err != nil {
		return "", nil, err
	}
	diff, err := CompareSchema(schema, db)
	if err != nil {
		return "", nil, err
	}
	if diff.Empty() {
		return "", diff, nil
	}
	sql, err := GenerateMigrationSQL(diff, m.dialect.Name())
	if strings.TrimSpace(sql) == "" {
		sql = ""
	}
	return sql, diff, err
}

// Push cria diretamente as tabelas que faltam, sem gravar migration (db push)
func (m *Manager) Push(ctx context.Context, schema *parser.Schema) (*SchemaDiff, error) {
	sql, diff, err := m.MissingTablesSQL(ctx, schema)
	if err != nil || sql == "" {
		return diff, err
	}
	if err := m.ExecuteSQL(ctx, sql); err != nil {
		return nil, err
	}
	return diff, nil
}

// ExecuteSQL executa um script, statement por statement (db execute)
func (m *Manager) ExecuteSQL(ctx context.Context, script string) error {
	ctx, cancel := contextutil.WithMigrationTimeout(ctx)
	defer cancel()

	for _, stmt := range SplitSQLStatements(script) {
		if _, err := m.exec(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao executar SQL: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}

// Reset remove todas as tabelas (inclusive _prisma_migrations) e reaplica as migrations
func (m *Manager) Reset(ctx context.Context, schema *parser.Schema) ([]string, error) {
	if schema != nil {
		drop, err := GenerateDropSQL(schema, m.dialect.Name())
		if err != nil {
			return nil, err
		}
		if err := m.ExecuteSQL(ctx, drop); err != nil {
			return nil, err
		}
	}

	// o que sobrou fora do schema
	tables, err := ListTables(ctx, m.db, m.dialect)
	if err != nil {
		return nil, err
	}
	tables = append(tables, TableName)
	for _, table := range tables {
		if _, err := m.exec(ctx, m.dialect.DropTable(table)); err != nil {
			return nil, fmt.Errorf("erro ao remover tabela %s: %w", table, err)
		}
	}
	logger.Warn("banco resetado: %d tabela(s) removida(s)", len(tables))

	return m.ApplyPending(ctx)
}

// MarkMigrationAsApplied marca uma migration como aplicada sem executá-la
func (m *Manager) MarkMigrationAsApplied(ctx context.Context, migrationName string) error {
	if err := m.EnsureMigrationsTable(ctx); err != nil {
		return err
	}

	table := m.dialect.QuoteIdentifier(TableName)
	now := time.Now()
	result, err := m.exec(ctx, fmt.Sprintf(`UPDATE %s SET finished_at = COALESCE(finished_at, ?), rolled_back_at = NULL
		WHERE migration_name = ?`, table), now, migrationName)
	if err != nil {
		return fmt.Errorf("erro ao atualizar migration: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	_, err = m.exec(ctx, fmt.Sprintf(`INSERT INTO %s (id, checksum, migration_name, started_at, finished_at, applied_steps_count)
		VALUES (?, ?, ?, ?, ?, 0)`, table), uuid.NewString(), "manual", migrationName, now, now)
	if err != nil {
		return fmt.Errorf("erro ao criar registro de migration: %w", err)
	}
	return nil
}

// MarkMigrationAsRolledBack marca uma migration como revertida
func (m *Manager) MarkMigrationAsRolledBack(ctx context.Context, migrationName string) error {
	if err := m.EnsureMigrationsTable(ctx); err != nil {
		return err
	}

	result, err := m.exec(ctx, fmt.Sprintf(`UPDATE %s SET rolled_back_at = ?, finished_at = NULL WHERE migration_name = ?`,
		m.dialect.QuoteIdentifier(TableName)), time.Now(), migrationName)
	if err != nil {
		return fmt.Errorf("erro ao atualizar migration: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("migration '%s' não encontrada", migrationName)
	}
	return nil
}

// calculateChecksum é o sha256 do conteúdo, em hex
func calculateChecksum(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:])
}

// SplitSQLStatements divide um script em statements, respeitando
// strings, identificadores citados e comentários
func SplitSQLStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" && !onlyComments(stmt) {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			end := i + 1
			for end < len(sql) {
				if sql[end] == ch {
					// aspas duplicadas são escape
					if end+1 < len(sql) && sql[end+1] == ch {
						end += 2
						continue
					}
					break
				}
				end++
			}
			if end >= len(sql) {
				end = len(sql) - 1
			}
			current.WriteString(sql[i : end+1])
			i = end
		case ch == '-' && i+1 < len(sql) && sql[i+1] == '-':
			end := strings.IndexByte(sql[i:], '\n')
			if end < 0 {
				end = len(sql) - i
			}
			current.WriteString(sql[i : i+end])
			i += end - 1
		case ch == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			if end < 0 {
				current.WriteString(sql[i:])
				i = len(sql)
				continue
			}
			current.WriteString(sql[i : i+2+end+2])
			i += 2 + end + 1
		case ch == ';':
			flush()
		default:
			current.WriteByte(ch)
		}
	}
	flush()

	return statements
}

// onlyComments indica se o trecho só tem comentários "--"
func onlyComments(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}
