package dialect

import (
	"testing"
)

// TestDialect_PostgreSQL tests PostgreSQL-specific features
func TestDialect_PostgreSQL(t *testing.T) {
	d := GetDialect("postgresql")
	if d.Name() != "postgresql" {
		t.Fatalf("GetDialect(postgresql).Name() = %s", d.Name())
	}

	tests := []struct {
		input    string
		list     bool
		expected string
	}{
		{"String", false, "TEXT"},
		{"Int", false, "INTEGER"},
		{"Boolean", false, "BOOLEAN"},
		{"DateTime", false, "TIMESTAMP(3)"},
		{"Float", false, "DOUBLE PRECISION"},
		{"Int", true, "INTEGER[]"},
		{"String", true, "TEXT[]"},
	}

	for _, tt := range tests {
		if result := d.MapType(tt.input, tt.list); result != tt.expected {
			t.Errorf("MapType(%s, %v) = %s, want %s", tt.input, tt.list, result, tt.expected)
		}
	}

	if quoted := d.QuoteIdentifier("usuarios"); quoted != `"usuarios"` {
		t.Errorf("QuoteIdentifier(usuarios) = %s", quoted)
	}
	if placeholder := d.GetPlaceholder(3); placeholder != "$3" {
		t.Errorf("GetPlaceholder(3) = %s, want $3", placeholder)
	}
	if !d.SupportsReturning() {
		t.Error("PostgreSQL should support RETURNING")
	}
	if got := d.ListContains(`"tags"`); got != `? = ANY("tags")` {
		t.Errorf("ListContains = %s", got)
	}
	if got := d.InsensitiveLike(`"nome"`); got != `"nome" ILIKE ?` {
		t.Errorf("InsensitiveLike = %s", got)
	}
}

// TestDialect_MySQL tests MySQL-specific features
func TestDialect_MySQL(t *testing.T) {
	d := GetDialect("mysql")

	tests := []struct {
		input    string
		list     bool
		expected string
	}{
		{"String", false, "VARCHAR(191)"},
		{"Int", false, "INT"},
		{"Boolean", false, "TINYINT(1)"},
		{"DateTime", false, "DATETIME(3)"},
		{"Int", true, "JSON"},
	}

	for _, tt := range tests {
		if result := d.MapType(tt.input, tt.list); result != tt.expected {
			t.Errorf("MapType(%s, %v) = %s, want %s", tt.input, tt.list, result, tt.expected)
		}
	}

	if quoted := d.QuoteIdentifier("receitas"); quoted != "`receitas`" {
		t.Errorf("QuoteIdentifier(receitas) = %s", quoted)
	}
	if d.SupportsReturning() {
		t.Error("MySQL does not support RETURNING")
	}
	if prefix, suffix := d.InsertIgnore(); prefix != "INSERT IGNORE INTO" || suffix != "" {
		t.Errorf("InsertIgnore() = %q, %q", prefix, suffix)
	}
	if got := d.GetLimitOffsetSyntax(0, 10); got != "LIMIT 18446744073709551615 OFFSET 10" {
		t.Errorf("GetLimitOffsetSyntax(0, 10) = %s", got)
	}
}

// TestDialect_SQLite tests SQLite-specific features
func TestDialect_SQLite(t *testing.T) {
	d := GetDialect("sqlite")

	if got := d.MapType("DateTime", false); got != "DATETIME" {
		t.Errorf("MapType(DateTime) = %s, want DATETIME", got)
	}
	if got := d.MapType("String", true); got != "TEXT" {
		t.Errorf("MapType(String, list) = %s, want TEXT", got)
	}
	if got := d.GetPlaceholder(2); got != "?" {
		t.Errorf("GetPlaceholder(2) = %s", got)
	}
	if got := d.GetLimitOffsetSyntax(0, 5); got != "LIMIT -1 OFFSET 5" {
		t.Errorf("GetLimitOffsetSyntax(0, 5) = %s", got)
	}
	if _, suffix := d.InsertIgnore(); suffix != " ON CONFLICT DO NOTHING" {
		t.Errorf("InsertIgnore suffix = %q", suffix)
	}
}

func TestMapDefaultValue(t *testing.T) {
	tests := []struct {
		provider string
		value    string
		expected string
	}{
		{"postgresql", "now()", "CURRENT_TIMESTAMP"},
		{"postgresql", "uuid()", ""},
		{"postgresql", "true", "TRUE"},
		{"postgresql", "2000", "2000"},
		{"mysql", "now()", "CURRENT_TIMESTAMP(3)"},
		{"sqlite", `"08:00"`, "'08:00'"},
		{"sqlite", `"it's"`, "'it''s'"},
	}

	for _, tt := range tests {
		if got := GetDialect(tt.provider).MapDefaultValue(tt.value); got != tt.expected {
			t.Errorf("%s MapDefaultValue(%s) = %q, want %q", tt.provider, tt.value, got, tt.expected)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := GetDialect("postgresql")
	got := Rebind(pg, `SELECT * FROM "usuarios" WHERE "nome" = ? AND "email" <> '?' AND "id" IN (?, ?)`)
	want := `SELECT * FROM "usuarios" WHERE "nome" = $1 AND "email" <> '?' AND "id" IN ($2, $3)`
	if got != want {
		t.Errorf("Rebind() = %s\nwant %s", got, want)
	}

	sqlite := GetDialect("sqlite")
	query := `SELECT 1 WHERE a = ?`
	if got := Rebind(sqlite, query); got != query {
		t.Errorf("Rebind for sqlite should be a no-op, got %s", got)
	}
}
