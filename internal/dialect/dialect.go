package dialect

import (
	"fmt"
	"strings"
)

// Dialect representa um dialeto de banco de dados
// Abstrai as diferenças entre PostgreSQL, MySQL e SQLite
type Dialect interface {
	// Name retorna o nome do dialeto (ex: "postgresql", "mysql", "sqlite")
	Name() string

	// QuoteIdentifier cita um identificador (tabela, coluna, etc.)
	// PostgreSQL: "table_name", MySQL: `table_name`, SQLite: "table_name"
	QuoteIdentifier(name string) string

	// QuoteString cita uma string literal
	QuoteString(value string) string

	// MapType mapeia um tipo Prisma para tipo SQL do banco.
	// list indica campos escalares de lista (Int[], String[])
	MapType(prismaType string, list bool) string

	// MapDefaultValue mapeia um valor default do Prisma para SQL.
	// Retorna "" quando o default é gerado apenas pelo cliente (uuid(), cuid())
	MapDefaultValue(value string) string

	// GetPlaceholder retorna o placeholder para parâmetros
	// PostgreSQL: $1, $2, MySQL: ?, ?, SQLite: ?, ?
	GetPlaceholder(index int) string

	// GetNowFunction retorna a função para obter data/hora atual
	GetNowFunction() string

	// GetDriverName retorna o nome do driver Go para database/sql
	GetDriverName() string

	// GetLimitOffsetSyntax retorna a sintaxe LIMIT/OFFSET
	GetLimitOffsetSyntax(limit, offset int) string

	// SupportsReturning indica se INSERT/UPDATE/DELETE aceitam RETURNING
	SupportsReturning() bool

	// InsensitiveLike retorna a comparação LIKE sem diferenciar maiúsculas,
	// com um único placeholder "?" para o padrão
	InsensitiveLike(column string) string

	// ListContains retorna a expressão "lista contém ?" para campos de lista
	ListContains(column string) string

	// ListLength retorna o tamanho de um campo de lista
	ListLength(column string) string

	// InsertIgnore retorna prefixo e sufixo de um INSERT que ignora duplicatas
	InsertIgnore() (prefix, suffix string)

	// ListTablesQuery lista as tabelas do schema atual
	ListTablesQuery() string

	// ListColumnsQuery lista nome e nulabilidade ('YES'/'NO') das colunas
	// de uma tabela, passada no único placeholder "?"
	ListColumnsQuery() string

	// DropTable remove uma tabela e as dependências que o banco exigir
	DropTable(table string) string
}

// GetDialect retorna o dialeto apropriado para o provider
func GetDialect(provider string) Dialect {
	switch strings.ToLower(provider) {
	case "postgresql", "postgres":
		return &PostgreSQLDialect{}
	case "mysql", "mariadb":
		return &MySQLDialect{}
	case "sqlite", "sqlite3":
		return &SQLiteDialect{}
	default:
		// Default para PostgreSQL
		return &PostgreSQLDialect{}
	}
}

// Rebind troca os placeholders "?" de uma query pelos do dialeto,
// ignorando "?" dentro de literais
func Rebind(d Dialect, query string) string {
	if d.GetPlaceholder(1) == "?" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	index := 0
	inString := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inString = !inString
			b.WriteByte(ch)
		case ch == '?' && !inString:
			index++
			b.WriteString(d.GetPlaceholder(index))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func limitOffset(limit, offset int) string {
	if limit > 0 && offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	} else if limit > 0 {
		return fmt.Sprintf("LIMIT %d", limit)
	} else if offset > 0 {
		return fmt.Sprintf("OFFSET %d", offset)
	}
	return ""
}

func quoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// mapLiteralDefault cobre os defaults comuns a todos os dialetos
func mapLiteralDefault(value string) (string, bool) {
	lower := strings.ToLower(value)
	switch {
	case strings.HasPrefix(lower, "uuid"), strings.HasPrefix(lower, "cuid"), strings.HasPrefix(lower, "autoincrement"):
		return "", true
	case lower == "true" || lower == "false":
		return strings.ToUpper(lower), true
	case strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2:
		return quoteString(value[1 : len(value)-1]), true
	}
	return "", false
}
