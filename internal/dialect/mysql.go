package dialect

import (
	"fmt"
	"strings"
)

// MySQLDialect implements the MySQL dialect
type MySQLDialect struct{}

func (d *MySQLDialect) Name() string {
	return "mysql"
}

func (d *MySQLDialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *MySQLDialect) QuoteString(value string) string {
	// Escapar barras além das aspas simples
	return quoteString(strings.ReplaceAll(value, "\\", "\\\\"))
}

func (d *MySQLDialect) MapType(prismaType string, list bool) string {
	// listas são gravadas como arrays JSON
	if list {
		return "JSON"
	}

	switch strings.ToLower(prismaType) {
	case "string":
		return "VARCHAR(191)" // limite de índice do utf8mb4
	case "int":
		return "INT"
	case "bigint":
		return "BIGINT"
	case "boolean", "bool":
		return "TINYINT(1)"
	case "datetime":
		return "DATETIME(3)"
	case "float":
		return "DOUBLE"
	case "decimal":
		return "DECIMAL(65, 30)"
	case "json":
		return "JSON"
	case "bytes":
		return "BLOB"
	default:
		return "VARCHAR(191)"
	}
}

func (d *MySQLDialect) MapDefaultValue(value string) string {
	if mapped, ok := mapLiteralDefault(value); ok {
		return mapped
	}
	if strings.EqualFold(value, "now()") {
		return "CURRENT_TIMESTAMP(3)"
	}
	return value
}

func (d *MySQLDialect) GetPlaceholder(index int) string {
	return "?"
}

func (d *MySQLDialect) GetNowFunction() string {
	return "NOW()"
}

func (d *MySQLDialect) GetDriverName() string {
	return "mysql"
}

func (d *MySQLDialect) GetLimitOffsetSyntax(limit, offset int) string {
	if limit <= 0 && offset > 0 {
		// MySQL não suporta OFFSET sem LIMIT
		return fmt.Sprintf("LIMIT 18446744073709551615 OFFSET %d", offset)
	}
	return limitOffset(limit, offset)
}

func (d *MySQLDialect) SupportsReturning() bool {
	return false
}

func (d *MySQLDialect) InsensitiveLike(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?)"
}

func (d *MySQLDialect) ListContains(column string) string {
	return "JSON_CONTAINS(" + column + ", JSON_ARRAY(?))"
}

func (d *MySQLDialect) ListLength(column string) string {
	return "COALESCE(JSON_LENGTH(" + column + "), 0)"
}

func (d *MySQLDialect) InsertIgnore() (string, string) {
	return "INSERT IGNORE INTO", ""
}

func (d *MySQLDialect) ListTablesQuery() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'"
}

func (d *MySQLDialect) ListColumnsQuery() string {
	return `SELECT column_name, is_nullable FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position`
}

func (d *MySQLDialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteIdentifier(table)
}
