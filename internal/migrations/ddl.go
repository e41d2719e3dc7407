package migrations

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/carlosnayan/bemestar/internal/dialect"
	"github.com/carlosnayan/bemestar/internal/parser"
)

// SchemaDiff representa o que precisa mudar no banco para chegar ao schema
type SchemaDiff struct {
	TablesToCreate  []TableDefinition
	TablesToAlter   []TableAlteration
	TablesToDrop    []string
	IndexesToCreate []IndexDefinition
}

// Empty indica que não há nada a aplicar
func (d *SchemaDiff) Empty() bool {
	return len(d.TablesToCreate) == 0 && len(d.TablesToAlter) == 0 &&
		len(d.TablesToDrop) == 0 && len(d.IndexesToCreate) == 0
}

// HasDrift indica mudanças que uma migration aditiva não resolve:
// tabelas ou colunas sobrando no banco e colunas com nulabilidade diferente
func (d *SchemaDiff) HasDrift() bool {
	if len(d.TablesToDrop) > 0 {
		return true
	}
	for _, alter := range d.TablesToAlter {
		if len(alter.DropColumns) > 0 || len(alter.AlterColumns) > 0 {
			return true
		}
	}
	return false
}

// TableAlteration são as mudanças de colunas numa tabela existente
type TableAlteration struct {
	TableName    string
	AddColumns   []ColumnDefinition
	DropColumns  []string
	AlterColumns []ColumnAlteration
}

// ColumnAlteration é uma coluna cuja nulabilidade no banco difere do schema
type ColumnAlteration struct {
	ColumnName  string
	NewNullable bool
}

// TableDefinition representa uma tabela a ser criada
type TableDefinition struct {
	Name        string
	Model       string
	Columns     []ColumnDefinition
	PrimaryKey  []string
	ForeignKeys []ForeignKeyDefinition
}

// ColumnDefinition representa uma coluna
type ColumnDefinition struct {
	Name         string
	Type         string // tipo Prisma (String, Int, DateTime...)
	IsList       bool
	IsNullable   bool
	DefaultValue string // já no formato aceito por Dialect.MapDefaultValue
}

// ForeignKeyDefinition representa uma FK declarada por @relation(fields, references)
type ForeignKeyDefinition struct {
	Name       string
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   string
}

// IndexDefinition representa um índice
type IndexDefinition struct {
	Name      string
	TableName string
	Columns   []string
	IsUnique  bool
}

// SchemaToSQL converte o schema inteiro em tabelas a criar, em ordem de dependência
func SchemaToSQL(schema *parser.Schema) (*SchemaDiff, error) {
	models, err := sortModels(schema)
	if err != nil {
		return nil, err
	}

	diff := &SchemaDiff{}
	for _, model := range models {
		table, indexes := tableFromModel(schema, model)
		diff.TablesToCreate = append(diff.TablesToCreate, table)
		diff.IndexesToCreate = append(diff.IndexesToCreate, indexes...)
	}
	return diff, nil
}

// CompareSchema compara o schema com o banco: tabelas que faltam são
// criadas, colunas que faltam são adicionadas, e colunas sobrando ou com
// nulabilidade diferente entram no diff como drift
func CompareSchema(schema *parser.Schema, db *DatabaseSchema) (*SchemaDiff, error) {
	full, err := SchemaToSQL(schema)
	if err != nil {
		return nil, err
	}

	diff := &SchemaDiff{}
	added := make(map[string]map[string]bool)
	for _, table := range full.TablesToCreate {
		existing := db.Table(table.Name)
		if existing == nil {
			diff.TablesToCreate = append(diff.TablesToCreate, table)
			continue
		}
		alter := compareColumns(table, existing)
		if len(alter.AddColumns) == 0 && len(alter.DropColumns) == 0 && len(alter.AlterColumns) == 0 {
			continue
		}
		diff.TablesToAlter = append(diff.TablesToAlter, alter)
		cols := make(map[string]bool, len(alter.AddColumns))
		for _, col := range alter.AddColumns {
			cols[strings.ToLower(col.Name)] = true
		}
		added[strings.ToLower(table.Name)] = cols
	}

	for _, idx := range full.IndexesToCreate {
		if db.Table(idx.TableName) == nil {
			diff.IndexesToCreate = append(diff.IndexesToCreate, idx)
			continue
		}
		// índices de tabelas existentes só acompanham colunas novas
		cols := added[strings.ToLower(idx.TableName)]
		for _, c := range idx.Columns {
			if cols[strings.ToLower(c)] {
				diff.IndexesToCreate = append(diff.IndexesToCreate, idx)
				break
			}
		}
	}
	return diff, nil
}

func compareColumns(table TableDefinition, existing *TableInfo) TableAlteration {
	alter := TableAlteration{TableName: existing.Name}
	declared := make(map[string]bool, len(table.Columns))
	for _, col := range table.Columns {
		key := strings.ToLower(col.Name)
		declared[key] = true
		current, ok := existing.Columns[key]
		switch {
		case !ok:
			alter.AddColumns = append(alter.AddColumns, col)
		case current.IsNullable != col.IsNullable:
			alter.AlterColumns = append(alter.AlterColumns, ColumnAlteration{ColumnName: current.Name, NewNullable: col.IsNullable})
		}
	}
	for key, col := range existing.Columns {
		if !declared[key] {
			alter.DropColumns = append(alter.DropColumns, col.Name)
		}
	}
	sort.Strings(alter.DropColumns)
	return alter
}

// sortModels ordena os models para que toda tabela referenciada por FK
// seja criada antes de quem a referencia
func sortModels(schema *parser.Schema) ([]*parser.Model, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(schema.Models))
	sorted := make([]*parser.Model, 0, len(schema.Models))

	var visit func(m *parser.Model) error
	visit = func(m *parser.Model) error {
		switch state[m.Name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("ciclo de chaves estrangeiras envolvendo o model '%s'", m.Name)
		}
		state[m.Name] = visiting
		for _, field := range m.Fields {
			if !field.IsRelation(schema) || len(field.Relation().Fields) == 0 {
				continue
			}
			target := schema.Model(field.Type.Name)
			if target == nil || target == m {
				continue
			}
			if err := visit(target); err != nil {
				return err
			}
		}
		state[m.Name] = done
		sorted = append(sorted, m)
		return nil
	}

	for _, m := range schema.Models {
		if m.Attribute("ignore") != nil {
			continue
		}
		if err := visit(m); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

func tableFromModel(schema *parser.Schema, model *parser.Model) (TableDefinition, []IndexDefinition) {
	tableName := model.TableName()
	table := TableDefinition{Name: tableName, Model: model.Name}

	for _, field := range model.Fields {
		if field.IsRelation(schema) {
			if rel := field.Relation(); len(rel.Fields) > 0 {
				table.ForeignKeys = append(table.ForeignKeys, foreignKey(schema, model, field, rel))
			}
			continue
		}
		if field.Attribute("ignore") != nil {
			continue
		}

		col := ColumnDefinition{
			Name:       field.ColumnName(),
			Type:       field.Type.Name,
			IsList:     field.Type.IsArray,
			IsNullable: field.Type.IsOptional,
		}
		if field.IsEnum(schema) {
			col.Type = "String"
		}
		if def := field.Default(); def != nil && !field.Type.IsArray {
			col.DefaultValue = defaultLiteral(def)
		}
		table.Columns = append(table.Columns, col)
	}

	table.PrimaryKey = columnsOf(model, model.IDFields())

	var indexes []IndexDefinition
	for _, field := range model.Fields {
		if field.Attribute("unique") != nil {
			indexes = append(indexes, newIndex(tableName, []string{field.ColumnName()}, true))
		}
	}
	for _, attr := range model.Attributes {
		if attr.Name != "unique" && attr.Name != "index" {
			continue
		}
		fields, _ := attr.ListArg("fields", 0)
		idx := newIndex(tableName, columnsOf(model, fields), attr.Name == "unique")
		if name, ok := attr.StringArg("map", -1); ok {
			idx.Name = name
		} else if name, ok := attr.StringArg("name", -1); ok {
			idx.Name = name
		}
		indexes = append(indexes, idx)
	}
	return table, indexes
}

func foreignKey(schema *parser.Schema, model *parser.Model, field *parser.ModelField, rel parser.Relation) ForeignKeyDefinition {
	target := schema.Model(field.Type.Name)
	cols := columnsOf(model, rel.Fields)
	onDelete := rel.OnDelete
	if onDelete == "" {
		// mesmo padrão do Prisma: Restrict para relações obrigatórias, SetNull para opcionais
		onDelete = "Restrict"
		if field.Type.IsOptional {
			onDelete = "SetNull"
		}
	}
	return ForeignKeyDefinition{
		Name:       fmt.Sprintf("%s_%s_fkey", model.TableName(), strings.Join(cols, "_")),
		Columns:    cols,
		RefTable:   target.TableName(),
		RefColumns: columnsOf(target, rel.References),
		OnDelete:   onDelete,
	}
}

func newIndex(table string, cols []string, unique bool) IndexDefinition {
	suffix := "idx"
	if unique {
		suffix = "key"
	}
	return IndexDefinition{
		Name:      fmt.Sprintf("%s_%s_%s", table, strings.Join(cols, "_"), suffix),
		TableName: table,
		Columns:   cols,
		IsUnique:  unique,
	}
}

// columnsOf traduz nomes de campos para nomes de coluna (@map)
func columnsOf(model *parser.Model, fields []string) []string {
	cols := make([]string, len(fields))
	for i, name := range fields {
		cols[i] = name
		if f := model.Field(name); f != nil {
			cols[i] = f.ColumnName()
		}
	}
	return cols
}

// defaultLiteral converte o valor de @default para a forma textual
// entendida por Dialect.MapDefaultValue
func defaultLiteral(value interface{}) string {
	switch v := value.(type) {
	case *parser.FunctionCall:
		return v.Name + "()"
	case string:
		// string literal ou valor de enum
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

var referentialActions = map[string]string{
	"Cascade":    "CASCADE",
	"Restrict":   "RESTRICT",
	"NoAction":   "NO ACTION",
	"SetNull":    "SET NULL",
	"SetDefault": "SET DEFAULT",
}

// GenerateMigrationSQL gera o SQL de uma migration a partir do diff
func GenerateMigrationSQL(diff *SchemaDiff, provider string) (string, error) {
	var sql strings.Builder
	d := dialect.GetDialect(provider)

	for _, table := range diff.TablesToDrop {
		sql.WriteString(d.DropTable(table) + ";\n")
	}
	if len(diff.TablesToDrop) > 0 {
		sql.WriteString("\n")
	}

	for _, table := range diff.TablesToCreate {
		if len(table.Columns) == 0 {
			return "", fmt.Errorf("tabela '%s' não tem colunas", table.Name)
		}
		fmt.Fprintf(&sql, "-- CreateTable\nCREATE TABLE %s (\n", d.QuoteIdentifier(table.Name))

		lines := make([]string, 0, len(table.Columns)+len(table.ForeignKeys)+1)
		for _, col := range table.Columns {
			def := fmt.Sprintf("    %s %s", d.QuoteIdentifier(col.Name), d.MapType(col.Type, col.IsList))
			if !col.IsNullable {
				def += " NOT NULL"
			}
			if col.DefaultValue != "" {
				if value := d.MapDefaultValue(col.DefaultValue); value != "" {
					def += " DEFAULT " + value
				}
			}
			lines = append(lines, def)
		}
		if len(table.PrimaryKey) > 0 {
			lines = append(lines, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)",
				d.QuoteIdentifier(table.Name+"_pkey"), quoteAll(d, table.PrimaryKey)))
		}
		for _, fk := range table.ForeignKeys {
			lines = append(lines, fmt.Sprintf("    CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s ON UPDATE CASCADE",
				d.QuoteIdentifier(fk.Name),
				quoteAll(d, fk.Columns),
				d.QuoteIdentifier(fk.RefTable),
				quoteAll(d, fk.RefColumns),
				referentialActions[fk.OnDelete]))
		}

		sql.WriteString(strings.Join(lines, ",\n"))
		sql.WriteString("\n);\n\n")
	}

	for _, alter := range diff.TablesToAlter {
		for _, col := range alter.AddColumns {
			fmt.Fprintf(&sql, "-- AlterTable\nALTER TABLE %s ADD COLUMN %s;\n\n",
				d.QuoteIdentifier(alter.TableName), addColumnDefinition(d, col))
		}
	}

	for _, idx := range diff.IndexesToCreate {
		unique := ""
		if idx.IsUnique {
			unique = "UNIQUE "
		}
		fmt.Fprintf(&sql, "-- CreateIndex\nCREATE %sINDEX %s ON %s(%s);\n\n",
			unique,
			d.QuoteIdentifier(idx.Name),
			d.QuoteIdentifier(idx.TableName),
			quoteAll(d, idx.Columns))
	}

	return strings.TrimRight(sql.String(), "\n") + "\n", nil
}

// GenerateDropSQL gera os DROP TABLE de todo o schema, na ordem inversa das FKs
func GenerateDropSQL(schema *parser.Schema, provider string) (string, error) {
	models, err := sortModels(schema)
	if err != nil {
		return "", err
	}
	d := dialect.GetDialect(provider)

	var sql strings.Builder
	for i := len(models) - 1; i >= 0; i-- {
		sql.WriteString(d.DropTable(models[i].TableName()) + ";\n")
	}
	return sql.String(), nil
}

// addColumnDefinition monta a coluna de um ADD COLUMN. O SQLite não aceita
// NOT NULL sem default nem default não constante, então colunas obrigatórias
// recebem ali um valor zero constante
func addColumnDefinition(d dialect.Dialect, col ColumnDefinition) string {
	def := fmt.Sprintf("%s %s", d.QuoteIdentifier(col.Name), d.MapType(col.Type, col.IsList))
	if col.IsNullable {
		return def
	}
	def += " NOT NULL"

	value := ""
	if col.DefaultValue != "" {
		value = d.MapDefaultValue(col.DefaultValue)
	}
	if d.Name() == "sqlite" && (value == "" || value == d.GetNowFunction()) {
		value = zeroDefault(d, col)
	}
	if value != "" {
		def += " DEFAULT " + value
	}
	return def
}

func zeroDefault(d dialect.Dialect, col ColumnDefinition) string {
	if col.IsList {
		return d.QuoteString("[]")
	}
	switch col.Type {
	case "Int", "BigInt", "Float", "Decimal":
		return "0"
	case "Boolean":
		return d.MapDefaultValue("false")
	case "DateTime":
		return d.QuoteString("1970-01-01 00:00:00")
	case "Json":
		return d.QuoteString("null")
	case "Bytes":
		return "X''"
	}
	return d.QuoteString("")
}

func quoteAll(d dialect.Dialect, names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.QuoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}

// FormatDiff descreve o diff em linhas legíveis para o terminal
func FormatDiff(diff *SchemaDiff) string {
	var output strings.Builder
	for _, tableName := range diff.TablesToDrop {
		fmt.Fprintf(&output, "[-] Removed table `%s`\n", tableName)
	}
	for _, table := range diff.TablesToCreate {
		fmt.Fprintf(&output, "[+] Added table `%s`\n", table.Name)
	}
	for _, alter := range diff.TablesToAlter {
		for _, col := range alter.DropColumns {
			fmt.Fprintf(&output, "[-] Removed column `%s` on `%s`\n", col, alter.TableName)
		}
		for _, col := range alter.AlterColumns {
			state := "required"
			if col.NewNullable {
				state = "optional"
			}
			fmt.Fprintf(&output, "[*] Changed column `%s` on `%s` to %s\n", col.ColumnName, alter.TableName, state)
		}
		for _, col := range alter.AddColumns {
			fmt.Fprintf(&output, "[+] Added column `%s` on `%s`\n", col.Name, alter.TableName)
		}
	}
	for _, idx := range diff.IndexesToCreate {
		fmt.Fprintf(&output, "[+] Added index `%s` on `%s`\n", idx.Name, idx.TableName)
	}
	return output.String()
}
