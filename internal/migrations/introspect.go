package migrations

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/carlosnayan/bemestar/internal/dialect"
	"github.com/carlosnayan/bemestar/internal/driver"
)

// DatabaseSchema é o que existe no banco, indexado pelo nome da tabela em minúsculas
type DatabaseSchema struct {
	Tables map[string]*TableInfo
}

// TableInfo representa uma tabela existente
type TableInfo struct {
	Name    string
	Columns map[string]*ColumnInfo // chave: nome da coluna em minúsculas
}

// ColumnInfo representa uma coluna existente
type ColumnInfo struct {
	Name       string
	IsNullable bool
}

// Table devolve a tabela pelo nome, sem diferenciar maiúsculas
func (s *DatabaseSchema) Table(name string) *TableInfo {
	if s == nil {
		return nil
	}
	return s.Tables[strings.ToLower(name)]
}

// TableNames lista as tabelas em ordem alfabética
func (s *DatabaseSchema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// ListTables lista as tabelas do schema atual, sem a tabela de controle
func ListTables(ctx context.Context, db driver.DB, d dialect.Dialect) ([]string, error) {
	rows, err := db.Query(ctx, d.ListTablesQuery())
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tabelas: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao ler nome da tabela: %w", err)
		}
		if name == TableName {
			continue
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(tables)
	return tables, nil
}

// ListColumns lista as colunas de uma tabela
func ListColumns(ctx context.Context, db driver.DB, d dialect.Dialect, table string) ([]ColumnInfo, error) {
	rows, err := db.Query(ctx, dialect.Rebind(d, d.ListColumnsQuery()), table)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar colunas de %s: %w", table, err)
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var name, nullable string
		if err := rows.Scan(&name, &nullable); err != nil {
			return nil, fmt.Errorf("erro ao ler coluna de %s: %w", table, err)
		}
		cols = append(cols, ColumnInfo{Name: name, IsNullable: strings.EqualFold(nullable, "YES")})
	}
	return cols, rows.Err()
}

// IntrospectDatabase lê tabelas e colunas do banco
func IntrospectDatabase(ctx context.Context, db driver.DB, d dialect.Dialect) (*DatabaseSchema, error) {
	tables, err := ListTables(ctx, db, d)
	if err != nil {
		return nil, err
	}

	schema := &DatabaseSchema{Tables: make(map[string]*TableInfo, len(tables))}
	for _, name := range tables {
		cols, err := ListColumns(ctx, db, d, name)
		if err != nil {
			return nil, err
		}
		table := &TableInfo{Name: name, Columns: make(map[string]*ColumnInfo, len(cols))}
		for i := range cols {
			table.Columns[strings.ToLower(cols[i].Name)] = &cols[i]
		}
		schema.Tables[strings.ToLower(name)] = table
	}
	return schema, nil
}
