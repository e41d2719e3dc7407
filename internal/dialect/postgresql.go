package dialect

import (
	"fmt"
	"strings"
)

// PostgreSQLDialect implements the PostgreSQL dialect
type PostgreSQLDialect struct{}

func (d *PostgreSQLDialect) Name() string {
	return "postgresql"
}

func (d *PostgreSQLDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d *PostgreSQLDialect) QuoteString(value string) string {
	return quoteString(value)
}

func (d *PostgreSQLDialect) MapType(prismaType string, list bool) string {
	var sqlType string
	switch strings.ToLower(prismaType) {
	case "string":
		sqlType = "TEXT"
	case "int":
		sqlType = "INTEGER"
	case "bigint":
		sqlType = "BIGINT"
	case "boolean", "bool":
		sqlType = "BOOLEAN"
	case "datetime":
		sqlType = "TIMESTAMP(3)"
	case "float":
		sqlType = "DOUBLE PRECISION"
	case "decimal":
		sqlType = "DECIMAL(65, 30)"
	case "json":
		sqlType = "JSONB"
	case "bytes":
		sqlType = "BYTEA"
	default:
		sqlType = "TEXT"
	}
	if list {
		return sqlType + "[]"
	}
	return sqlType
}

func (d *PostgreSQLDialect) MapDefaultValue(value string) string {
	if mapped, ok := mapLiteralDefault(value); ok {
		return mapped
	}
	if strings.EqualFold(value, "now()") {
		return "CURRENT_TIMESTAMP"
	}
	return value
}

func (d *PostgreSQLDialect) GetPlaceholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

func (d *PostgreSQLDialect) GetNowFunction() string {
	return "NOW()"
}

func (d *PostgreSQLDialect) GetDriverName() string {
	return "pgx"
}

func (d *PostgreSQLDialect) GetLimitOffsetSyntax(limit, offset int) string {
	return limitOffset(limit, offset)
}

func (d *PostgreSQLDialect) SupportsReturning() bool {
	return true
}

func (d *PostgreSQLDialect) InsensitiveLike(column string) string {
	return column + " ILIKE ?"
}

func (d *PostgreSQLDialect) ListContains(column string) string {
	return "? = ANY(" + column + ")"
}

func (d *PostgreSQLDialect) ListLength(column string) string {
	return "COALESCE(cardinality(" + column + "), 0)"
}

func (d *PostgreSQLDialect) InsertIgnore() (string, string) {
	return "INSERT INTO", " ON CONFLICT DO NOTHING"
}

func (d *PostgreSQLDialect) ListTablesQuery() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'"
}

func (d *PostgreSQLDialect) ListColumnsQuery() string {
	return `SELECT column_name, is_nullable FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ? ORDER BY ordinal_position`
}

func (d *PostgreSQLDialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteIdentifier(table) + " CASCADE"
}
