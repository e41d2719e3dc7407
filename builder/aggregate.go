package builder

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/errors"
	"github.com/carlosnayan/bemestar/internal/limits"
)

// AggregateResult representa o resultado de uma agregação, por nome de campo.
// Count usa a chave "_all" para COUNT(*).
type AggregateResult struct {
	Count map[string]int64
	Sum   map[string]*float64
	Avg   map[string]*float64
	Min   map[string]interface{}
	Max   map[string]interface{}
}

// GroupByResult é uma linha de GroupBy: os valores das chaves e as agregações do grupo
type GroupByResult struct {
	Keys map[string]interface{}
	AggregateResult
}

type aggKind string

const (
	aggCount aggKind = "COUNT"
	aggSum   aggKind = "SUM"
	aggAvg   aggKind = "AVG"
	aggMin   aggKind = "MIN"
	aggMax   aggKind = "MAX"
)

type aggregation struct {
	kind  aggKind
	field string // "_all" para COUNT(*)
}

// aggSpec reúne o que Aggregate e GroupBy têm em comum
type aggSpec struct {
	aggs []aggregation
}

func (s *aggSpec) add(kind aggKind, fields ...string) {
	for _, f := range fields {
		s.aggs = append(s.aggs, aggregation{kind: kind, field: f})
	}
}

// Having filtra grupos pelo valor de uma agregação
type Having struct {
	agg aggregation
	op  WhereOperator
}

// HavingCount filtra por COUNT(field); use "_all" para COUNT(*)
func HavingCount(field string, op WhereOperator) Having {
	return Having{agg: aggregation{kind: aggCount, field: field}, op: op}
}

// HavingSum filtra por SUM(field)
func HavingSum(field string, op WhereOperator) Having {
	return Having{agg: aggregation{kind: aggSum, field: field}, op: op}
}

// HavingAvg filtra por AVG(field)
func HavingAvg(field string, op WhereOperator) Having {
	return Having{agg: aggregation{kind: aggAvg, field: field}, op: op}
}

// HavingMin filtra por MIN(field)
func HavingMin(field string, op WhereOperator) Having {
	return Having{agg: aggregation{kind: aggMin, field: field}, op: op}
}

// HavingMax filtra por MAX(field)
func HavingMax(field string, op WhereOperator) Having {
	return Having{agg: aggregation{kind: aggMax, field: field}, op: op}
}

// aggExpr devolve a expressão SQL da agregação sobre alias
func (c *compiler) aggExpr(m *Model, alias string, a aggregation) (string, *Field, error) {
	if a.kind == aggCount && a.field == "_all" {
		return "COUNT(*)", nil, nil
	}
	f := m.Field(a.field)
	if f == nil {
		return "", nil, errors.NewInvalidInputError("%s: campo desconhecido '%s' em %s", strings.ToLower(string(a.kind)), a.field, m.Name)
	}
	if f.List {
		return "", nil, errors.NewInvalidInputError("%s não vale para a lista '%s'", strings.ToLower(string(a.kind)), f.Name)
	}
	col := c.column(alias, f)
	switch a.kind {
	case aggCount:
		return "COUNT(" + col + ")", f, nil
	case aggSum, aggAvg:
		if f.Type != "Int" && f.Type != "Float" {
			return "", nil, errors.NewInvalidInputError("%s exige campo numérico, '%s' é %s", strings.ToLower(string(a.kind)), f.Name, f.Type)
		}
		return fmt.Sprintf("CAST(%s(%s) AS %s)", a.kind, col, c.d.MapType("Float", false)), f, nil
	default:
		if f.Type == "Boolean" {
			return "", nil, errors.NewInvalidInputError("%s não vale para o campo booleano '%s'", strings.ToLower(string(a.kind)), f.Name)
		}
		return fmt.Sprintf("%s(%s)", a.kind, col), f, nil
	}
}

// aggTargets prepara os destinos de Scan de cada agregação e devolve
// a função que monta o resultado depois do Scan
func aggTargets(aggs []aggregation, fields []*Field) ([]interface{}, func() AggregateResult) {
	dest := make([]interface{}, len(aggs))
	finish := make([]func(*AggregateResult), len(aggs))
	for i, a := range aggs {
		a := a // cópia por iteração: as closures de finish rodam depois do laço
		switch a.kind {
		case aggCount:
			var n int64
			dest[i] = &n
			finish[i] = func(r *AggregateResult) { r.Count[a.field] = n }
		case aggSum, aggAvg:
			var v *float64
			dest[i] = &v
			finish[i] = func(r *AggregateResult) {
				if a.kind == aggSum {
					r.Sum[a.field] = v
				} else {
					r.Avg[a.field] = v
				}
			}
		default:
			h := newHolder(fields[i])
			dest[i] = h.dest
			finish[i] = func(r *AggregateResult) {
				if a.kind == aggMin {
					r.Min[a.field] = h.value()
				} else {
					r.Max[a.field] = h.value()
				}
			}
		}
	}
	return dest, func() AggregateResult {
		r := AggregateResult{
			Count: map[string]int64{},
			Sum:   map[string]*float64{},
			Avg:   map[string]*float64{},
			Min:   map[string]interface{}{},
			Max:   map[string]interface{}{},
		}
		for _, fn := range finish {
			fn(&r)
		}
		return r
	}
}

// aggregate roda as agregações sobre as linhas selecionadas por where,
// orderBy, take e skip
func (e *Executor) aggregate(ctx context.Context, m *Model, a *findArgs, spec *aggSpec) (*AggregateResult, error) {
	if a.err != nil {
		return nil, a.err
	}
	if len(spec.aggs) == 0 {
		return nil, errors.NewInvalidInputError("aggregate sem nenhuma agregação")
	}
	if err := a.checkPage(); err != nil {
		return nil, err
	}

	c := newCompiler(e.dialect)
	cond, err := c.where(m, m.Table, a.combinedWhere())
	if err != nil {
		return nil, err
	}

	const sub = "agg"
	exprs := make([]string, len(spec.aggs))
	fields := make([]*Field, len(spec.aggs))
	for i, agg := range spec.aggs {
		expr, f, err := c.aggExpr(m, sub, agg)
		if err != nil {
			return nil, err
		}
		exprs[i], fields[i] = expr, f
	}
	if a.emptyPage() {
		_, finish := aggTargets(spec.aggs, fields)
		r := finish()
		return &r, nil
	}

	var inner strings.Builder
	fmt.Fprintf(&inner, "SELECT %s FROM %s", c.columns(m.Table, m.Fields), c.quote(m.Table))
	if cond != "" {
		inner.WriteString(" WHERE " + cond)
	}
	if a.take != nil || a.skip != nil || len(a.orderBy) > 0 {
		order, err := c.orderBy(m, m.Table, a.orderBy, true)
		if err != nil {
			return nil, err
		}
		inner.WriteString(order)
		if limit := e.dialect.GetLimitOffsetSyntax(intOr(a.take), intOr(a.skip)); limit != "" {
			inner.WriteString(" " + limit)
		}
	}

	query := fmt.Sprintf("SELECT %s FROM (%s) AS %s", strings.Join(exprs, ", "), inner.String(), c.quote(sub))
	dest, finish := aggTargets(spec.aggs, fields)

	var result *AggregateResult
	err = e.query(ctx, errors.OpAggregate, query, c.args, func(rows driver.Rows) error {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		r := finish()
		result = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		r := finish()
		result = &r
	}
	return result, nil
}

// groupBy agrupa pelos campos em by e calcula as agregações por grupo
func (e *Executor) groupBy(ctx context.Context, m *Model, by []string, a *findArgs, spec *aggSpec, having []Having) ([]GroupByResult, error) {
	if a.err != nil {
		return nil, a.err
	}
	if len(by) == 0 {
		return nil, errors.NewInvalidInputError("groupBy precisa de ao menos um campo")
	}
	if len(by) > limits.MaxGroupByFields {
		return nil, errors.NewInvalidInputError("groupBy aceita até %d campos", limits.MaxGroupByFields)
	}
	if err := a.checkPage(); err != nil {
		return nil, err
	}

	c := newCompiler(e.dialect)
	keyFields := make([]*Field, len(by))
	byCols := make([]string, len(by))
	for i, name := range by {
		f := m.Field(name)
		if f == nil {
			return nil, errors.NewInvalidInputError("groupBy: campo desconhecido '%s' em %s", name, m.Name)
		}
		if f.List {
			return nil, errors.NewInvalidInputError("groupBy não vale para a lista '%s'", name)
		}
		keyFields[i] = f
		byCols[i] = c.column(m.Table, f)
	}

	exprs := make([]string, len(spec.aggs))
	aggFields := make([]*Field, len(spec.aggs))
	for i, agg := range spec.aggs {
		expr, f, err := c.aggExpr(m, m.Table, agg)
		if err != nil {
			return nil, err
		}
		exprs[i], aggFields[i] = expr, f
	}

	cond, err := c.where(m, m.Table, a.combinedWhere())
	if err != nil {
		return nil, err
	}

	havingParts := make([]string, 0, len(having))
	for _, h := range having {
		expr, f, err := c.aggExpr(m, m.Table, h.agg)
		if err != nil {
			return nil, err
		}
		switch h.op.op {
		case "=", "!=", ">", ">=", "<", "<=", "IN", "NOT IN":
		default:
			return nil, errors.NewInvalidInputError("having não aceita o operador %s", h.op.op)
		}
		if h.agg.kind == aggCount || h.agg.kind == aggSum || h.agg.kind == aggAvg {
			// o valor comparado é numérico mesmo quando o campo não é
			f = nil
		}
		part, err := c.operator(expr, f, h.op)
		if err != nil {
			return nil, err
		}
		havingParts = append(havingParts, part)
	}

	// sem orderBy, ordena pelas chaves para o resultado ser estável
	orders := a.orderBy
	if len(orders) == 0 {
		for _, name := range by {
			orders = append(orders, Asc(name))
		}
	}
	orderParts := make([]string, 0, len(orders))
	for _, o := range orders {
		f := m.Field(o.Field)
		if f == nil || !slices.Contains(by, o.Field) {
			return nil, errors.NewInvalidInputError("groupBy só ordena pelos campos agrupados, '%s' não está em by", o.Field)
		}
		dir, err := o.direction()
		if err != nil {
			return nil, errors.NewInvalidInputError("%s", err.Error())
		}
		orderParts = append(orderParts, c.column(m.Table, f)+" "+dir)
	}

	if a.emptyPage() {
		return []GroupByResult{}, nil
	}

	var sql strings.Builder
	selectList := append(append([]string{}, byCols...), exprs...)
	fmt.Fprintf(&sql, "SELECT %s FROM %s", strings.Join(selectList, ", "), c.quote(m.Table))
	if cond != "" {
		sql.WriteString(" WHERE " + cond)
	}
	sql.WriteString(" GROUP BY " + strings.Join(byCols, ", "))
	if len(havingParts) > 0 {
		sql.WriteString(" HAVING " + strings.Join(havingParts, " AND "))
	}
	sql.WriteString(" ORDER BY " + strings.Join(orderParts, ", "))
	if limit := e.dialect.GetLimitOffsetSyntax(intOr(a.take), intOr(a.skip)); limit != "" {
		sql.WriteString(" " + limit)
	}

	var results []GroupByResult
	err = e.query(ctx, errors.OpAggregate, sql.String(), c.args, func(rows driver.Rows) error {
		keys := make([]holder, len(keyFields))
		dest := make([]interface{}, 0, len(keyFields)+len(spec.aggs))
		for i, f := range keyFields {
			keys[i] = newHolder(f)
			dest = append(dest, keys[i].dest)
		}
		aggDest, finish := aggTargets(spec.aggs, aggFields)
		dest = append(dest, aggDest...)
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		row := GroupByResult{Keys: make(map[string]interface{}, len(keys)), AggregateResult: finish()}
		for i, f := range keyFields {
			row.Keys[f.Name] = keys[i].value()
		}
		results = append(results, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []GroupByResult{}
	}
	return results, nil
}
