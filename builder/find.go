package builder

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/carlosnayan/bemestar/internal/cache"
	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/errors"
)

// findArgs acumula os argumentos das consultas fluentes
type findArgs struct {
	where    []Where
	orderBy  []OrderBy
	take     *int
	skip     *int
	cursor   Where
	distinct []string
	selects  []string
	includes []string
	err      error
}

func (a *findArgs) addWhere(input interface{}) {
	w, err := WhereOf(input)
	if err != nil {
		a.setErr(err)
		return
	}
	if len(w) > 0 {
		a.where = append(a.where, w)
	}
}

func (a *findArgs) setErr(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *findArgs) combinedWhere() Where {
	return combineWhere(a.where)
}

func combineWhere(list []Where) Where {
	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	}
	return Where{"AND": list}
}

// findMany executa um SELECT no model e devolve um reflect.Value do tipo []T
func (e *Executor) findMany(ctx context.Context, m *Model, a *findArgs, op errors.OperationType) (reflect.Value, error) {
	sliceType := reflect.SliceOf(m.Type)
	empty := reflect.MakeSlice(sliceType, 0, 0)
	if a.err != nil {
		return empty, a.err
	}
	if err := a.checkPage(); err != nil {
		return empty, err
	}
	if a.emptyPage() {
		return empty, nil
	}

	tree, err := parseIncludes(m, a.includes)
	if err != nil {
		return empty, err
	}
	fields, err := selectFields(m, a.selects, tree)
	if err != nil {
		return empty, err
	}
	for _, name := range a.distinct {
		if m.Field(name) == nil {
			return empty, errors.NewInvalidInputError("distinct: campo desconhecido '%s' em %s", name, m.Name)
		}
	}

	c := newCompiler(e.dialect)
	cond, err := c.where(m, m.Table, a.combinedWhere())
	if err != nil {
		return empty, err
	}

	if a.cursor != nil {
		cursorCond, found, err := e.cursorCondition(ctx, m, c, a)
		if err != nil {
			return empty, err
		}
		if !found {
			return empty, nil
		}
		cond = joinConditions(cond, cursorCond)
	}

	tiebreak := len(a.orderBy) > 0 || a.cursor != nil || a.take != nil || a.skip != nil
	order, err := c.orderBy(m, m.Table, a.orderBy, tiebreak)
	if err != nil {
		return empty, err
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, "SELECT %s FROM %s", c.columns(m.Table, fields), c.quote(m.Table))
	if cond != "" {
		sql.WriteString(" WHERE " + cond)
	}
	sql.WriteString(order)
	if len(a.distinct) == 0 {
		if limit := e.dialect.GetLimitOffsetSyntax(intOr(a.take), intOr(a.skip)); limit != "" {
			sql.WriteString(" " + limit)
		}
	}
	query := sql.String()

	var cacheKey string
	if e.cacheable() {
		cacheKey, err = cache.Key(query+"|select="+strings.Join(a.selects, ",")+"|include="+strings.Join(a.includes, ","), c.args)
		if err == nil {
			out := reflect.New(sliceType)
			if e.cache.Get(cacheKey, out.Interface()) {
				if out.Elem().IsNil() {
					return empty, nil
				}
				return out.Elem(), nil
			}
		} else {
			cacheKey = ""
		}
	}

	items := empty
	err = e.query(ctx, op, query, c.args, func(rows driver.Rows) error {
		item, err := scanRow(rows, m.Type, fields)
		if err != nil {
			return err
		}
		items = reflect.Append(items, item)
		return nil
	})
	if err != nil {
		return empty, err
	}

	if len(a.distinct) > 0 {
		items = distinctRows(m, items, a.distinct, intOr(a.skip), a.take)
	}

	if err := e.loadIncludes(ctx, m, items, tree); err != nil {
		return empty, err
	}

	if cacheKey != "" {
		tables := includeTables(m, tree)
		for table := range c.tables {
			tables = append(tables, table)
		}
		if err := e.cache.Set(cacheKey, tables, items.Interface()); err != nil {
			e.getLogger().Warn("cache: não foi possível guardar o resultado: %v", err)
		}
	}
	return items, nil
}

func joinConditions(conds ...string) string {
	var parts []string
	for _, c := range conds {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " AND ")
}

// checkPage recusa take e skip negativos
func (a *findArgs) checkPage() error {
	if a.take != nil && *a.take < 0 {
		return errors.NewInvalidInputError("take negativo não é suportado")
	}
	if a.skip != nil && *a.skip < 0 {
		return errors.NewInvalidInputError("skip não pode ser negativo")
	}
	return nil
}

// emptyPage é take 0: nenhuma linha, sem ir ao banco
func (a *findArgs) emptyPage() bool {
	return a.take != nil && *a.take == 0
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// selectFields resolve as colunas lidas. Sem select, todas; com select, os
// campos pedidos mais o id e as FKs das relações incluídas.
func selectFields(m *Model, selects []string, tree map[string]*includeNode) ([]*Field, error) {
	if len(selects) == 0 {
		return m.Fields, nil
	}

	wanted := make(map[string]bool, len(selects)+2)
	for _, name := range selects {
		if m.Field(name) == nil {
			if m.Relation(name) != nil {
				return nil, errors.NewInvalidInputError("select: '%s' é uma relação, use Include", name)
			}
			return nil, errors.NewInvalidInputError("select: campo desconhecido '%s' em %s", name, m.Name)
		}
		wanted[name] = true
	}
	for _, f := range m.IDFields() {
		wanted[f.Name] = true
	}
	for _, node := range tree {
		for _, name := range node.rel.Fields {
			wanted[name] = true
		}
	}

	fields := make([]*Field, 0, len(wanted))
	for _, f := range m.Fields {
		if wanted[f.Name] {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// cursorCondition busca a linha do cursor e monta a condição de keyset
// que começa nela (inclusive), seguindo a ordenação pedida
func (e *Executor) cursorCondition(ctx context.Context, m *Model, c *compiler, a *findArgs) (string, bool, error) {
	if !m.coversUnique(a.cursor) {
		return "", false, errors.NewInvalidInputError("cursor precisa identificar um único registro de %s", m.Name)
	}
	orders, err := resolveOrder(m, a.orderBy, true)
	if err != nil {
		return "", false, err
	}

	lookup := newCompiler(e.dialect)
	cond, err := lookup.where(m, m.Table, a.cursor)
	if err != nil {
		return "", false, err
	}
	fields := make([]*Field, len(orders))
	for i, o := range orders {
		fields[i] = o.field
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s %s",
		lookup.columns(m.Table, fields), lookup.quote(m.Table), cond, e.dialect.GetLimitOffsetSyntax(1, 0))

	holders := make([]holder, len(fields))
	dest := make([]interface{}, len(fields))
	for i, f := range fields {
		holders[i] = newHolder(f)
		dest[i] = holders[i].dest
	}
	found := false
	err = e.query(ctx, errors.OpFindMany, query, lookup.args, func(rows driver.Rows) error {
		found = true
		return rows.Scan(dest...)
	})
	if err != nil || !found {
		return "", false, err
	}

	values := make([]interface{}, len(holders))
	for i, h := range holders {
		values[i] = h.value()
		if values[i] == nil {
			return "", false, errors.NewInvalidInputError("cursor: o registro tem '%s' nulo, usado na ordenação", fields[i].Name)
		}
	}

	// (c0 > v0) OR (c0 = v0 AND c1 > v1) OR ... OR (todos iguais)
	ors := make([]string, 0, len(orders)+1)
	for i, o := range orders {
		cmp := ">"
		if o.dir == "DESC" {
			cmp = "<"
		}
		parts := make([]string, 0, i+1)
		for j := 0; j < i; j++ {
			parts = append(parts, c.column(m.Table, orders[j].field)+" = "+c.arg(values[j]))
		}
		parts = append(parts, c.column(m.Table, o.field)+" "+cmp+" "+c.arg(values[i]))
		ors = append(ors, "("+strings.Join(parts, " AND ")+")")
	}
	eq := make([]string, len(orders))
	for j, o := range orders {
		eq[j] = c.column(m.Table, o.field) + " = " + c.arg(values[j])
	}
	ors = append(ors, "("+strings.Join(eq, " AND ")+")")
	return "(" + strings.Join(ors, " OR ") + ")", true, nil
}

// distinctRows mantém a primeira linha de cada combinação dos campos e
// aplica skip/take depois da deduplicação
func distinctRows(m *Model, items reflect.Value, fields []string, skip int, take *int) reflect.Value {
	out := reflect.MakeSlice(items.Type(), 0, items.Len())
	seen := make(map[string]bool, items.Len())
	for i := 0; i < items.Len(); i++ {
		values, err := fieldValues(m, items.Index(i), fields)
		if err != nil {
			continue
		}
		key := tupleKey(values)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = reflect.Append(out, items.Index(i))
	}

	if skip >= out.Len() {
		return reflect.MakeSlice(items.Type(), 0, 0)
	}
	out = out.Slice(skip, out.Len())
	if take != nil && *take < out.Len() {
		out = out.Slice(0, *take)
	}
	return out
}

func tupleKey(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, "\x00")
}

// findUnique valida o where único e devolve a primeira linha
func (e *Executor) findUnique(ctx context.Context, m *Model, a *findArgs) (reflect.Value, error) {
	if a.err == nil && !m.coversUnique(a.combinedWhere()) {
		a.setErr(errors.NewInvalidInputError("where de %s precisa cobrir um campo único: %v", m.Name, uniqueNames(m)))
	}
	one := 1
	a.take = &one
	items, err := e.findMany(ctx, m, a, errors.OpFindUnique)
	if err != nil {
		return reflect.Value{}, err
	}
	if items.Len() == 0 {
		return reflect.Value{}, errors.NewNotFoundError(m.Name)
	}
	return items.Index(0), nil
}

func uniqueNames(m *Model) []string {
	names := make([]string, len(m.uniqueSets))
	for i, set := range m.uniqueSets {
		names[i] = strings.Join(set, "+")
	}
	return names
}
