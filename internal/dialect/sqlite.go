package dialect

import (
	"fmt"
	"strings"
)

// SQLiteDialect implements the SQLite dialect
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

func (d *SQLiteDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d *SQLiteDialect) QuoteString(value string) string {
	return quoteString(value)
}

func (d *SQLiteDialect) MapType(prismaType string, list bool) string {
	// listas são gravadas como arrays JSON em TEXT
	if list {
		return "TEXT"
	}

	// SQLite tem tipos dinâmicos, mas mapeamos para tipos recomendados
	switch strings.ToLower(prismaType) {
	case "string":
		return "TEXT"
	case "int", "bigint":
		return "INTEGER"
	case "boolean", "bool":
		return "BOOLEAN"
	case "datetime":
		// os drivers só convertem para time.Time colunas declaradas como DATETIME
		return "DATETIME"
	case "float":
		return "REAL"
	case "decimal":
		return "NUMERIC"
	case "json":
		return "TEXT"
	case "bytes":
		return "BLOB"
	default:
		return "TEXT"
	}
}

func (d *SQLiteDialect) MapDefaultValue(value string) string {
	if mapped, ok := mapLiteralDefault(value); ok {
		return mapped
	}
	if strings.EqualFold(value, "now()") {
		return "CURRENT_TIMESTAMP"
	}
	return value
}

func (d *SQLiteDialect) GetPlaceholder(index int) string {
	return "?"
}

func (d *SQLiteDialect) GetNowFunction() string {
	return "CURRENT_TIMESTAMP"
}

func (d *SQLiteDialect) GetDriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) GetLimitOffsetSyntax(limit, offset int) string {
	if limit <= 0 && offset > 0 {
		return fmt.Sprintf("LIMIT -1 OFFSET %d", offset)
	}
	return limitOffset(limit, offset)
}

func (d *SQLiteDialect) SupportsReturning() bool {
	return true // 3.35+
}

func (d *SQLiteDialect) InsensitiveLike(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?)"
}

func (d *SQLiteDialect) ListContains(column string) string {
	return "EXISTS (SELECT 1 FROM json_each(" + column + ") WHERE json_each.value = ?)"
}

func (d *SQLiteDialect) ListLength(column string) string {
	return "COALESCE(json_array_length(" + column + "), 0)"
}

func (d *SQLiteDialect) InsertIgnore() (string, string) {
	return "INSERT INTO", " ON CONFLICT DO NOTHING"
}

func (d *SQLiteDialect) ListTablesQuery() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'"
}

func (d *SQLiteDialect) ListColumnsQuery() string {
	return `SELECT name, CASE WHEN "notnull" = 1 THEN 'NO' ELSE 'YES' END FROM pragma_table_info(?) ORDER BY cid`
}

func (d *SQLiteDialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteIdentifier(table)
}
