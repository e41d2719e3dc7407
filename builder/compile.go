package builder

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/carlosnayan/bemestar/internal/dialect"
	"github.com/carlosnayan/bemestar/internal/errors"
	"github.com/carlosnayan/bemestar/internal/limits"
)

// compiler monta fragmentos SQL com placeholders "?" e acumula os
// argumentos na ordem em que aparecem
type compiler struct {
	d      dialect.Dialect
	args   []interface{}
	aliasN int
	// tabelas lidas pelos filtros de relação (EXISTS)
	tables map[string]struct{}
}

func newCompiler(d dialect.Dialect) *compiler {
	return &compiler{d: d}
}

func (c *compiler) quote(name string) string {
	return c.d.QuoteIdentifier(name)
}

func (c *compiler) column(alias string, f *Field) string {
	return c.quote(alias) + "." + c.quote(f.Column)
}

func (c *compiler) nextAlias() string {
	c.aliasN++
	return fmt.Sprintf("r%d", c.aliasN)
}

func (c *compiler) readTable(table string) {
	if c.tables == nil {
		c.tables = map[string]struct{}{}
	}
	c.tables[table] = struct{}{}
}

func (c *compiler) arg(v interface{}) string {
	c.args = append(c.args, v)
	return "?"
}

// where compila um Where para o model m, cujas colunas são qualificadas
// com alias. Retorna "" quando não há condição.
func (c *compiler) where(m *Model, alias string, w Where) (string, error) {
	if len(w) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		value := w[key]
		var (
			sql string
			err error
		)
		switch key {
		case "AND", "OR", "NOT":
			sql, err = c.logical(m, alias, key, value)
		default:
			if f := m.Field(key); f != nil {
				sql, err = c.scalar(c.column(alias, f), f, value)
			} else if rel := m.Relation(key); rel != nil {
				sql, err = c.relation(m, alias, rel, value)
			} else {
				err = errors.NewInvalidInputError("campo desconhecido '%s' em %s", key, m.Name)
			}
		}
		if err != nil {
			return "", err
		}
		if sql != "" {
			parts = append(parts, sql)
		}
	}
	return strings.Join(parts, " AND "), nil
}

func (c *compiler) logical(m *Model, alias, key string, value interface{}) (string, error) {
	list, err := toWhereList(value)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, w := range list {
		sql, err := c.where(m, alias, w)
		if err != nil {
			return "", err
		}
		if sql == "" {
			// condição vazia é sempre verdadeira
			sql = "1=1"
		}
		parts = append(parts, "("+sql+")")
	}

	switch key {
	case "AND":
		return strings.Join(parts, " AND "), nil
	case "OR":
		if len(parts) == 0 {
			return "1=0", nil
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	default:
		if len(parts) == 0 {
			return "", nil
		}
		// cada condição do NOT precisa ser falsa
		for i, p := range parts {
			parts[i] = "NOT " + p
		}
		return "(" + strings.Join(parts, " AND ") + ")", nil
	}
}

func toWhereList(value interface{}) ([]Where, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case Where:
		return []Where{v}, nil
	case []Where:
		return v, nil
	case map[string]interface{}:
		return []Where{Where(v)}, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice {
		return whereList(rv)
	}
	w, err := WhereOf(value)
	if err != nil {
		return nil, err
	}
	return []Where{w}, nil
}

// scalar compila a condição sobre uma coluna (ou expressão) escalar
func (c *compiler) scalar(col string, f *Field, value interface{}) (string, error) {
	switch v := value.(type) {
	case WhereOperator:
		return c.operator(col, f, v)
	case []WhereOperator:
		parts := make([]string, 0, len(v))
		for _, op := range v {
			sql, err := c.operator(col, f, op)
			if err != nil {
				return "", err
			}
			parts = append(parts, sql)
		}
		return strings.Join(parts, " AND "), nil
	case Where, []Where:
		return "", errors.NewInvalidInputError("campo '%s' não é uma relação", fieldName(f))
	}

	value = deref(value)
	if value == nil {
		return col + " IS NULL", nil
	}
	return col + " = " + c.arg(normalize(f, value)), nil
}

func fieldName(f *Field) string {
	if f == nil {
		return "?"
	}
	return f.Name
}

func normalize(f *Field, value interface{}) interface{} {
	if f == nil || f.Normalize == nil || value == nil {
		return value
	}
	return f.Normalize(value)
}

func (c *compiler) operator(col string, f *Field, op WhereOperator) (string, error) {
	value := deref(op.value)

	switch op.op {
	case "=", "!=", ">", ">=", "<", "<=":
		if value == nil {
			switch op.op {
			case "=":
				return col + " IS NULL", nil
			case "!=":
				return col + " IS NOT NULL", nil
			}
			return "", errors.NewInvalidInputError("operador %s sem valor em '%s'", op.op, fieldName(f))
		}
		return col + " " + op.op + " " + c.arg(normalize(f, value)), nil

	case "IN", "NOT IN":
		values, err := valueList(value)
		if err != nil {
			return "", err
		}
		if len(values) == 0 {
			if op.op == "IN" {
				return "1=0", nil
			}
			return "1=1", nil
		}
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = c.arg(normalize(f, v))
		}
		return col + " " + op.op + " (" + strings.Join(placeholders, ", ") + ")", nil

	case "IS NULL", "IS NOT NULL":
		return col + " " + op.op, nil

	case "LIKE", "CONTAINS", "STARTS_WITH", "ENDS_WITH":
		s, ok := value.(string)
		if !ok {
			return "", errors.NewInvalidInputError("%s espera texto em '%s'", op.op, fieldName(f))
		}
		pattern := s
		escape := ""
		switch op.op {
		case "CONTAINS":
			pattern, escape = "%"+escapeLike(s)+"%", " ESCAPE '!'"
		case "STARTS_WITH":
			pattern, escape = escapeLike(s)+"%", " ESCAPE '!'"
		case "ENDS_WITH":
			pattern, escape = "%"+escapeLike(s), " ESCAPE '!'"
		}
		c.args = append(c.args, pattern)
		if op.insensitive {
			return c.d.InsensitiveLike(col) + escape, nil
		}
		return col + " LIKE ?" + escape, nil

	case "HAS", "HAS_EVERY", "HAS_SOME", "IS_EMPTY":
		if f != nil && !f.List {
			return "", errors.NewInvalidInputError("operador %s exige campo de lista, '%s' não é", op.op, f.Name)
		}
		return c.list(col, f, op.op, value)

	case "SOME", "EVERY", "NONE", "IS", "IS_NOT":
		return "", errors.NewInvalidInputError("operador %s só vale para relações, '%s' é escalar", op.op, fieldName(f))
	}
	return "", errors.NewInvalidInputError("operador desconhecido '%s'", op.op)
}

func (c *compiler) list(col string, f *Field, op string, value interface{}) (string, error) {
	switch op {
	case "HAS":
		if value == nil {
			return "", errors.NewInvalidInputError("has exige um valor")
		}
		c.args = append(c.args, normalize(f, value))
		return c.d.ListContains(col), nil
	case "IS_EMPTY":
		empty, _ := value.(bool)
		if empty {
			return c.d.ListLength(col) + " = 0", nil
		}
		return c.d.ListLength(col) + " > 0", nil
	}

	values, err := valueList(value)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		if op == "HAS_EVERY" {
			return "1=1", nil
		}
		return "1=0", nil
	}
	parts := make([]string, len(values))
	for i, v := range values {
		c.args = append(c.args, normalize(f, v))
		parts[i] = c.d.ListContains(col)
	}
	if op == "HAS_EVERY" {
		return "(" + strings.Join(parts, " AND ") + ")", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", nil
}

// valueList aceita []interface{} ou qualquer slice tipado
func valueList(value interface{}) ([]interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if list, ok := value.([]interface{}); ok {
		// In([]string{"a"}...) não compila; In(lista) chega aqui como um só item
		if len(list) == 1 {
			if rv := reflect.ValueOf(list[0]); rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
				return valueList(list[0])
			}
		}
		return list, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, errors.NewInvalidInputError("esperava uma lista, recebeu %T", value)
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// escapeLike escapa os curingas do LIKE usando '!' como escape
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

// relation compila filtros de relação em subconsultas EXISTS correlacionadas
func (c *compiler) relation(m *Model, alias string, rel *Relation, value interface{}) (string, error) {
	if ops, ok := value.([]WhereOperator); ok {
		parts := make([]string, 0, len(ops))
		for _, op := range ops {
			sql, err := c.relation(m, alias, rel, op)
			if err != nil {
				return "", err
			}
			if sql != "" {
				parts = append(parts, sql)
			}
		}
		return strings.Join(parts, " AND "), nil
	}

	op, isOp := value.(WhereOperator)
	if !isOp {
		if rel.List {
			return "", errors.NewInvalidInputError("relação de lista '%s' exige some, every ou none", rel.Name)
		}
		op = Is(value)
	}

	switch op.op {
	case "SOME", "EVERY", "NONE":
		if !rel.List {
			return "", errors.NewInvalidInputError("%s só vale para relações de lista, '%s' é to-one", strings.ToLower(op.op), rel.Name)
		}
	case "IS", "IS_NOT":
		if rel.List {
			return "", errors.NewInvalidInputError("%s só vale para relações to-one, '%s' é lista", strings.ToLower(op.op), rel.Name)
		}
	default:
		return "", errors.NewInvalidInputError("operador %s não vale para a relação '%s'", op.op, rel.Name)
	}

	target := rel.target
	if isNilPointer(op.value) {
		if op.op != "IS" && op.op != "IS_NOT" {
			return "", errors.NewInvalidInputError("filtro vazio para a relação '%s'", rel.Name)
		}
		if rel.Owner {
			cond := " IS NULL"
			if op.op == "IS_NOT" {
				cond = " IS NOT NULL"
			}
			parts := make([]string, len(rel.Fields))
			for i, name := range rel.Fields {
				parts[i] = c.column(alias, m.Field(name)) + cond
			}
			return strings.Join(parts, " AND "), nil
		}
		c.readTable(target.Table)
		sub := c.nextAlias()
		exists := c.exists(m, alias, rel, sub, "")
		if op.op == "IS" {
			return "NOT " + exists, nil
		}
		return exists, nil
	}

	inner, err := WhereOf(op.value)
	if err != nil {
		return "", err
	}
	c.readTable(target.Table)
	sub := c.nextAlias()
	cond, err := c.where(target, sub, inner)
	if err != nil {
		return "", err
	}

	switch op.op {
	case "SOME", "IS":
		return c.exists(m, alias, rel, sub, cond), nil
	case "NONE", "IS_NOT":
		return "NOT " + c.exists(m, alias, rel, sub, cond), nil
	default: // EVERY
		if cond == "" {
			return "", nil
		}
		return "NOT " + c.exists(m, alias, rel, sub, "NOT ("+cond+")"), nil
	}
}

func (c *compiler) exists(m *Model, alias string, rel *Relation, sub, cond string) string {
	target := rel.target
	join := make([]string, len(rel.Fields))
	for i := range rel.Fields {
		join[i] = c.column(sub, target.Field(rel.References[i])) + " = " + c.column(alias, m.Field(rel.Fields[i]))
	}
	sql := "EXISTS (SELECT 1 FROM " + c.quote(target.Table) + " AS " + c.quote(sub) + " WHERE " + strings.Join(join, " AND ")
	if cond != "" {
		sql += " AND (" + cond + ")"
	}
	return sql + ")"
}

// orderBy compila ORDER BY, acrescentando o id como desempate
func (c *compiler) orderBy(m *Model, alias string, orders []OrderBy, tiebreak bool) (string, error) {
	resolved, err := resolveOrder(m, orders, tiebreak)
	if err != nil {
		return "", err
	}
	if len(resolved) == 0 {
		return "", nil
	}
	parts := make([]string, len(resolved))
	for i, o := range resolved {
		parts[i] = c.column(alias, o.field) + " " + o.dir
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

type resolvedOrder struct {
	field *Field
	dir   string
}

func resolveOrder(m *Model, orders []OrderBy, tiebreak bool) ([]resolvedOrder, error) {
	if len(orders) > limits.MaxOrderByFields {
		return nil, errors.NewInvalidInputError("orderBy aceita até %d campos", limits.MaxOrderByFields)
	}
	resolved := make([]resolvedOrder, 0, len(orders)+1)
	seen := map[string]bool{}
	for _, o := range orders {
		f := m.Field(o.Field)
		if f == nil {
			return nil, errors.NewInvalidInputError("não é possível ordenar por '%s' em %s", o.Field, m.Name)
		}
		dir, err := o.direction()
		if err != nil {
			return nil, errors.NewInvalidInputError("%s", err.Error())
		}
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		resolved = append(resolved, resolvedOrder{field: f, dir: dir})
	}
	if tiebreak {
		for _, id := range m.IDFields() {
			if !seen[id.Name] {
				resolved = append(resolved, resolvedOrder{field: id, dir: "ASC"})
			}
		}
	}
	return resolved, nil
}

func (c *compiler) columns(alias string, fields []*Field) string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = c.column(alias, f)
	}
	return strings.Join(cols, ", ")
}
