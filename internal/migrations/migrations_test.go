package migrations

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/carlosnayan/bemestar/internal/driver"
)

// newSQLiteManager abre um banco SQLite em arquivo temporário
func newSQLiteManager(t *testing.T) (*Manager, driver.DB) {
	t.Helper()
	dir := t.TempDir()

	sqlDB, err := sql.Open("sqlite", driver.SQLiteDSN("sqlite", filepath.Join(dir, "test.db")))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := driver.NewSQLDB(sqlDB, "sqlite")
	manager, err := NewManagerWithPath(filepath.Join(dir, "migrations"), "sqlite", db)
	if err != nil {
		t.Fatalf("NewManagerWithPath() error = %v", err)
	}
	return manager, db
}

func TestManager_CreateAndApply(t *testing.T) {
	ctx := context.Background()
	manager, db := newSQLiteManager(t)
	schema := loadSchema(t)

	sqlText, diff, err := manager.MissingTablesSQL(ctx, schema)
	if err != nil {
		t.Fatalf("MissingTablesSQL() error = %v", err)
	}
	if len(diff.TablesToCreate) != 10 {
		t.Fatalf("got %d tables to create, want 10", len(diff.TablesToCreate))
	}

	migration, err := manager.CreateMigration("Início do bem-estar", sqlText)
	if err != nil {
		t.Fatalf("CreateMigration() error = %v", err)
	}
	if !strings.HasSuffix(migration.Name, "_inicio_do_bem_estar") {
		t.Errorf("migration name = %q", migration.Name)
	}

	pending, err := manager.PendingMigrations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending, want 1", len(pending))
	}

	applied, err := manager.ApplyPending(ctx)
	if err != nil {
		t.Fatalf("ApplyPending() error = %v", err)
	}
	if len(applied) != 1 || applied[0] != migration.Name {
		t.Errorf("applied = %v", applied)
	}

	tables, err := manager.ExistingTables(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 10 {
		t.Errorf("got tables %v, want the 10 models", tables)
	}

	// nada mais pendente, nada faltando
	if pending, _ := manager.PendingMigrations(ctx); len(pending) != 0 {
		t.Errorf("still pending: %d", len(pending))
	}
	if sqlText, _, _ := manager.MissingTablesSQL(ctx, schema); sqlText != "" {
		t.Errorf("no SQL expected after applying, got %q", sqlText)
	}

	// FK com cascade ativa
	if _, err := db.Exec(ctx, `INSERT INTO "receitas" ("id", "usuario_id", "titulo", "tags", "criado_em", "atualizado_em")
		VALUES ('r1', 'nao-existe', 'Bolo', '[]', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err == nil {
		t.Error("foreign key to usuarios should be enforced")
	}
}

func TestManager_ModifiedAndMissing(t *testing.T) {
	ctx := context.Background()
	manager, _ := newSQLiteManager(t)

	migration, err := manager.CreateMigration("notas", `CREATE TABLE "notas" ("id" TEXT NOT NULL PRIMARY KEY);`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manager.ApplyPending(ctx); err != nil {
		t.Fatalf("ApplyPending() error = %v", err)
	}

	sqlPath := filepath.Join(migration.Path, "migration.sql")
	if err := os.WriteFile(sqlPath, []byte(`CREATE TABLE "notas" ("id" TEXT);`), 0644); err != nil {
		t.Fatal(err)
	}
	modified, err := manager.ModifiedMigrations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(modified) != 1 || modified[0] != migration.Name {
		t.Errorf("modified = %v", modified)
	}

	schema := loadSchema(t)
	out, err := DevDiagnostic(ctx, manager, schema)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action.Tag != "reset" {
		t.Errorf("action = %q, want reset", out.Action.Tag)
	}

	if err := os.RemoveAll(migration.Path); err != nil {
		t.Fatal(err)
	}
	missing, err := manager.MissingMigrations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 1 {
		t.Errorf("missing = %v", missing)
	}
}

func TestManager_PushAndReset(t *testing.T) {
	ctx := context.Background()
	manager, _ := newSQLiteManager(t)
	schema := loadSchema(t)

	diff, err := manager.Push(ctx, schema)
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if len(diff.TablesToCreate) != 10 {
		t.Errorf("pushed %d tables", len(diff.TablesToCreate))
	}

	// segundo push não faz nada
	diff, err = manager.Push(ctx, schema)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.Empty() {
		t.Errorf("second push should be empty, got %s", FormatDiff(diff))
	}

	if _, err := manager.Reset(ctx, schema); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	tables, err := manager.ExistingTables(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 0 {
		t.Errorf("tables after reset without migrations = %v", tables)
	}
}

func TestManager_AddColumnToExistingTable(t *testing.T) {
	ctx := context.Background()
	manager, db := newSQLiteManager(t)

	if _, err := manager.Push(ctx, parseNotas(t, "")); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	withSlug := parseNotas(t, "slug String @unique")
	out, err := DevDiagnostic(ctx, manager, withSlug)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action.Tag != "createMigration" {
		t.Fatalf("action = %q: %s", out.Action.Tag, out.Action.Reason)
	}
	if out.Diff.Empty() {
		t.Fatal("a new column must produce a diff")
	}

	sqlText, _, err := manager.MissingTablesSQL(ctx, withSlug)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sqlText, `ALTER TABLE "notas" ADD COLUMN "slug"`) {
		t.Fatalf("SQL = %q", sqlText)
	}
	if err := manager.ExecuteSQL(ctx, sqlText); err != nil {
		t.Fatalf("ExecuteSQL() error = %v", err)
	}
	if _, err := db.Exec(ctx, `INSERT INTO "notas" ("id", "titulo", "slug") VALUES ('n1', 'Sono', 'sono')`); err != nil {
		t.Fatalf("insert with the new column: %v", err)
	}

	if sqlText, _, _ := manager.MissingTablesSQL(ctx, withSlug); sqlText != "" {
		t.Errorf("no SQL expected after adding the column, got %q", sqlText)
	}

	// a coluna slug continua no banco mas saiu do schema
	out, err = DevDiagnostic(ctx, manager, parseNotas(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if out.Action.Tag != "reset" || !strings.Contains(out.Action.Reason, "Removed column `slug`") {
		t.Errorf("action = %q, reason = %q", out.Action.Tag, out.Action.Reason)
	}
}

func TestManager_MarkApplied(t *testing.T) {
	ctx := context.Background()
	manager, _ := newSQLiteManager(t)

	if err := manager.MarkMigrationAsApplied(ctx, "20250101000000_manual"); err != nil {
		t.Fatalf("MarkMigrationAsApplied() error = %v", err)
	}
	applied, err := manager.AppliedMigrations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(applied) != 1 || applied[0].Checksum != "manual" {
		t.Errorf("applied = %+v", applied)
	}

	if err := manager.MarkMigrationAsRolledBack(ctx, "20250101000000_manual"); err != nil {
		t.Fatal(err)
	}
	if applied, _ := manager.AppliedMigrations(ctx); len(applied) != 0 {
		t.Errorf("rolled back migration still listed: %+v", applied)
	}
	if err := manager.MarkMigrationAsRolledBack(ctx, "nao_existe"); err == nil {
		t.Error("expected error for unknown migration")
	}
}

func TestCheckHealth(t *testing.T) {
	_, db := newSQLiteManager(t)
	check, err := CheckHealth(context.Background(), db, "sqlite", time.Second)
	if err != nil {
		t.Fatalf("CheckHealth() error = %v", err)
	}
	if check.Status != "healthy" {
		t.Errorf("status = %q", check.Status)
	}
}
