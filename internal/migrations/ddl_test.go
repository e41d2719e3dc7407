package migrations

import (
	"fmt"
	"strings"
	"testing"

	"github.com/carlosnayan/bemestar/internal/parser"
)

func loadSchema(t *testing.T) *parser.Schema {
	t.Helper()
	schema, err := parser.ParseAndValidateFile("../../prisma/schema.prisma")
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	return schema
}

func TestSchemaToSQL_DependencyOrder(t *testing.T) {
	diff, err := SchemaToSQL(loadSchema(t))
	if err != nil {
		t.Fatalf("SchemaToSQL() error = %v", err)
	}
	if len(diff.TablesToCreate) != 10 {
		t.Fatalf("got %d tables, want 10", len(diff.TablesToCreate))
	}

	pos := make(map[string]int)
	for i, table := range diff.TablesToCreate {
		pos[table.Name] = i
	}
	before := [][2]string{
		{"usuarios", "refeicoes"},
		{"refeicoes", "registros_refeicao"},
		{"usuarios", "receitas"},
		{"receitas", "ingredientes"},
		{"receitas", "passos_receita"},
		{"receitas", "receitas_favoritas"},
	}
	for _, pair := range before {
		if pos[pair[0]] >= pos[pair[1]] {
			t.Errorf("%s must be created before %s", pair[0], pair[1])
		}
	}
}

func TestGenerateMigrationSQL_PostgreSQL(t *testing.T) {
	diff, err := SchemaToSQL(loadSchema(t))
	if err != nil {
		t.Fatal(err)
	}
	sql, err := GenerateMigrationSQL(diff, "postgresql")
	if err != nil {
		t.Fatalf("GenerateMigrationSQL() error = %v", err)
	}

	expected := []string{
		`CREATE TABLE "usuarios" (`,
		`"senha_hash" TEXT NOT NULL`,
		`"alto_contraste" BOOLEAN NOT NULL DEFAULT FALSE`,
		`"meta_hidratacao_ml" INTEGER NOT NULL DEFAULT 2000`,
		`"criado_em" TIMESTAMP(3) NOT NULL DEFAULT CURRENT_TIMESTAMP`,
		`"dias_semana" INTEGER[] NOT NULL`,
		`"tags" TEXT[] NOT NULL`,
		`CONSTRAINT "usuarios_pkey" PRIMARY KEY ("id")`,
		`CONSTRAINT "registros_refeicao_refeicao_id_fkey" FOREIGN KEY ("refeicao_id") REFERENCES "refeicoes" ("id") ON DELETE SET NULL`,
		`CONSTRAINT "receitas_usuario_id_fkey" FOREIGN KEY ("usuario_id") REFERENCES "usuarios" ("id") ON DELETE CASCADE`,
		`CREATE UNIQUE INDEX "usuarios_email_key" ON "usuarios"("email");`,
		`CREATE UNIQUE INDEX "receitas_favoritas_usuario_id_receita_id_key" ON "receitas_favoritas"("usuario_id", "receita_id");`,
		`CREATE INDEX "registros_refeicao_usuario_id_data_idx" ON "registros_refeicao"("usuario_id", "data");`,
	}
	for _, want := range expected {
		if !strings.Contains(sql, want) {
			t.Errorf("generated SQL missing %q", want)
		}
	}

	// uuid() é gerado pelo cliente
	if strings.Contains(sql, "uuid()") {
		t.Error("uuid() must not be emitted as a column default")
	}
	// @updatedAt não tem default no banco
	if strings.Contains(sql, `"atualizado_em" TIMESTAMP(3) NOT NULL DEFAULT`) {
		t.Error("atualizado_em must not have a database default")
	}
}

func TestGenerateMigrationSQL_MySQLAndSQLite(t *testing.T) {
	diff, err := SchemaToSQL(loadSchema(t))
	if err != nil {
		t.Fatal(err)
	}

	mysql, err := GenerateMigrationSQL(diff, "mysql")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"CREATE TABLE `usuarios` (",
		"`email` VARCHAR(191) NOT NULL",
		"`tags` JSON NOT NULL",
		"`criado_em` DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3)",
	} {
		if !strings.Contains(mysql, want) {
			t.Errorf("mysql SQL missing %q", want)
		}
	}

	sqlite, err := GenerateMigrationSQL(diff, "sqlite")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`"dias_semana" TEXT NOT NULL`,
		`"peso_kg" REAL`,
		`"data" DATETIME NOT NULL`,
	} {
		if !strings.Contains(sqlite, want) {
			t.Errorf("sqlite SQL missing %q", want)
		}
	}
}

// existingTables monta um DatabaseSchema com as tabelas do schema já criadas
func existingTables(t *testing.T, schema *parser.Schema, names ...string) *DatabaseSchema {
	t.Helper()
	full, err := SchemaToSQL(schema)
	if err != nil {
		t.Fatal(err)
	}
	db := &DatabaseSchema{Tables: map[string]*TableInfo{}}
	for _, name := range names {
		for _, table := range full.TablesToCreate {
			if !strings.EqualFold(table.Name, name) {
				continue
			}
			info := &TableInfo{Name: name, Columns: map[string]*ColumnInfo{}}
			for _, col := range table.Columns {
				info.Columns[strings.ToLower(col.Name)] = &ColumnInfo{Name: col.Name, IsNullable: col.IsNullable}
			}
			db.Tables[strings.ToLower(name)] = info
		}
	}
	return db
}

func TestCompareSchema_OnlyMissingTables(t *testing.T) {
	schema := loadSchema(t)
	diff, err := CompareSchema(schema, existingTables(t, schema, "usuarios", "refeicoes", "Receitas"))
	if err != nil {
		t.Fatal(err)
	}
	if len(diff.TablesToCreate) != 7 {
		t.Errorf("got %d tables, want 7", len(diff.TablesToCreate))
	}
	if len(diff.TablesToAlter) != 0 {
		t.Errorf("unexpected alterations: %s", FormatDiff(diff))
	}
	for _, idx := range diff.IndexesToCreate {
		if idx.TableName == "usuarios" || idx.TableName == "receitas" {
			t.Errorf("index %s belongs to an existing table", idx.Name)
		}
	}
}

const notasSchema = `
datasource db {
  provider = "sqlite"
  url      = "file:dev.db"
}

model Nota {
  id     String  @id @default(uuid())
  titulo String
  %s

  @@map("notas")
}
`

func parseNotas(t *testing.T, extra string) *parser.Schema {
	t.Helper()
	schema, err := parser.ParseAndValidate(fmt.Sprintf(notasSchema, extra))
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	return schema
}

func notasTable(cols ...ColumnInfo) *DatabaseSchema {
	info := &TableInfo{Name: "notas", Columns: map[string]*ColumnInfo{}}
	for i := range cols {
		info.Columns[strings.ToLower(cols[i].Name)] = &cols[i]
	}
	return &DatabaseSchema{Tables: map[string]*TableInfo{"notas": info}}
}

func TestCompareSchema_AddedColumn(t *testing.T) {
	schema := parseNotas(t, "slug String @unique")
	diff, err := CompareSchema(schema, notasTable(ColumnInfo{Name: "id"}, ColumnInfo{Name: "titulo"}))
	if err != nil {
		t.Fatal(err)
	}
	if diff.Empty() || diff.HasDrift() {
		t.Fatalf("want an additive diff, got %s", FormatDiff(diff))
	}
	if len(diff.TablesToAlter) != 1 || len(diff.TablesToAlter[0].AddColumns) != 1 || diff.TablesToAlter[0].AddColumns[0].Name != "slug" {
		t.Fatalf("alterations = %+v", diff.TablesToAlter)
	}
	if len(diff.IndexesToCreate) != 1 || diff.IndexesToCreate[0].Name != "notas_slug_key" {
		t.Errorf("indexes = %+v", diff.IndexesToCreate)
	}
	if !strings.Contains(FormatDiff(diff), "[+] Added column `slug` on `notas`") {
		t.Errorf("FormatDiff() = %q", FormatDiff(diff))
	}

	sqlite, err := GenerateMigrationSQL(diff, "sqlite")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`ALTER TABLE "notas" ADD COLUMN "slug" TEXT NOT NULL DEFAULT '';`,
		`CREATE UNIQUE INDEX "notas_slug_key" ON "notas"("slug");`,
	} {
		if !strings.Contains(sqlite, want) {
			t.Errorf("sqlite SQL missing %q:\n%s", want, sqlite)
		}
	}

	pg, err := GenerateMigrationSQL(diff, "postgresql")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pg, `ALTER TABLE "notas" ADD COLUMN "slug" TEXT NOT NULL;`) {
		t.Errorf("postgresql SQL:\n%s", pg)
	}
}

func TestCompareSchema_OptionalAndDefaultedColumns(t *testing.T) {
	schema := parseNotas(t, "resumo String?\n  lida Boolean @default(false)\n  criadaEm DateTime @default(now())")
	diff, err := CompareSchema(schema, notasTable(ColumnInfo{Name: "id"}, ColumnInfo{Name: "titulo"}))
	if err != nil {
		t.Fatal(err)
	}
	sqlite, err := GenerateMigrationSQL(diff, "sqlite")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`ADD COLUMN "resumo" TEXT;`,
		`ADD COLUMN "lida" BOOLEAN NOT NULL DEFAULT FALSE;`,
		`ADD COLUMN "criadaEm" DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00';`,
	} {
		if !strings.Contains(sqlite, want) {
			t.Errorf("sqlite SQL missing %q:\n%s", want, sqlite)
		}
	}
}

func TestCompareSchema_RemovedAndChangedColumnsAreDrift(t *testing.T) {
	schema := parseNotas(t, "")
	diff, err := CompareSchema(schema, notasTable(
		ColumnInfo{Name: "id"},
		ColumnInfo{Name: "titulo", IsNullable: true},
		ColumnInfo{Name: "antiga"},
	))
	if err != nil {
		t.Fatal(err)
	}
	if !diff.HasDrift() {
		t.Fatalf("want drift, got %s", FormatDiff(diff))
	}
	out := FormatDiff(diff)
	for _, want := range []string{
		"[-] Removed column `antiga` on `notas`",
		"[*] Changed column `titulo` on `notas` to required",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDiff() missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateDropSQL_ReverseOrder(t *testing.T) {
	sql, err := GenerateDropSQL(loadSchema(t), "sqlite")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Index(sql, `"ingredientes"`) > strings.Index(sql, `"receitas"`) {
		t.Error("children must be dropped before their parents")
	}
	if !strings.HasSuffix(strings.TrimSpace(sql), `DROP TABLE IF EXISTS "usuarios";`) {
		t.Errorf("usuarios should be dropped last:\n%s", sql)
	}
}

func TestSortModels_Cycle(t *testing.T) {
	schema, err := parser.ParseAndValidate(`
model A {
  id  String @id
  bId String
  b   B      @relation("ab", fields: [bId], references: [id])
  bs  B[]    @relation("ba")
}

model B {
  id  String @id
  aId String
  a   A      @relation("ba", fields: [aId], references: [id])
  as  A[]    @relation("ab")
}
`)
	if err != nil {
		t.Fatalf("schema should be valid: %v", err)
	}
	if _, err := SchemaToSQL(schema); err == nil || !strings.Contains(err.Error(), "ciclo") {
		t.Errorf("expected a cycle error, got %v", err)
	}
}

func TestSplitSQLStatements(t *testing.T) {
	script := `
-- CreateTable
CREATE TABLE "a" ("x" TEXT DEFAULT 'a;b');
/* bloco; com ponto e vírgula */
INSERT INTO "a" VALUES ('it''s');
-- só comentário;
`
	got := SplitSQLStatements(script)
	if len(got) != 2 {
		t.Fatalf("got %d statements: %q", len(got), got)
	}
	if !strings.Contains(got[0], "'a;b'") {
		t.Errorf("statement 0 = %q", got[0])
	}
	if !strings.Contains(got[1], "'it''s'") {
		t.Errorf("statement 1 = %q", got[1])
	}
}

func TestIsValidMigrationName(t *testing.T) {
	tests := map[string]bool{
		"20250101120000_init":     true,
		"20250101120000_":         false,
		"2025010112000_init":      false,
		"2025010112000a_init":     false,
		"init":                    false,
		"20250101120000_add_sono": true,
	}
	for name, want := range tests {
		if got := isValidMigrationName(name); got != want {
			t.Errorf("isValidMigrationName(%q) = %v, want %v", name, got, want)
		}
	}
}
