package builder

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/errors"
)

// includeBatchSize limita quantas chaves vão num único IN
const includeBatchSize = 500

type includeNode struct {
	rel      *Relation
	children map[string]*includeNode
}

// parseIncludes monta a árvore de relações a partir de caminhos como
// "receitas" e "receitas.ingredientes"
func parseIncludes(m *Model, paths []string) (map[string]*includeNode, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	tree := map[string]*includeNode{}
	for _, path := range paths {
		current, level := m, tree
		for _, name := range strings.Split(path, ".") {
			name = strings.TrimSpace(name)
			rel := current.Relation(name)
			if rel == nil {
				return nil, errors.NewInvalidInputError("include: %s não tem a relação '%s'", current.Name, name)
			}
			node, ok := level[name]
			if !ok {
				node = &includeNode{rel: rel, children: map[string]*includeNode{}}
				level[name] = node
			}
			current, level = rel.target, node.children
		}
	}
	return tree, nil
}

// includeTables lista as tabelas lidas por uma consulta com include
func includeTables(m *Model, tree map[string]*includeNode) []string {
	tables := []string{m.Table}
	for _, node := range tree {
		tables = append(tables, includeTables(node.rel.target, node.children)...)
	}
	return tables
}

// loadIncludes carrega as relações de items ([]T endereçável). Relações
// irmãs rodam em paralelo, exceto dentro de transação.
func (e *Executor) loadIncludes(ctx context.Context, m *Model, items reflect.Value, tree map[string]*includeNode) error {
	if len(tree) == 0 || items.Len() == 0 {
		return nil
	}

	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	g, gctx := errgroup.WithContext(ctx)
	if e.tx != nil {
		g.SetLimit(1)
	}
	for _, name := range names {
		node := tree[name]
		g.Go(func() error {
			return e.loadRelation(gctx, m, items, node)
		})
	}
	return g.Wait()
}

func (e *Executor) loadRelation(ctx context.Context, m *Model, parents reflect.Value, node *includeNode) error {
	rel, target := node.rel, node.rel.target

	var keys [][]interface{}
	seen := map[string]bool{}
	for i := 0; i < parents.Len(); i++ {
		values, err := fieldValues(m, parents.Index(i), rel.Fields)
		if err != nil {
			return err
		}
		if hasNil(values) {
			continue
		}
		key := tupleKey(values)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, values)
		}
	}

	children := reflect.MakeSlice(reflect.SliceOf(target.Type), 0, len(keys))
	for start := 0; start < len(keys); start += includeBatchSize {
		end := min(start+includeBatchSize, len(keys))

		c := newCompiler(e.dialect)
		cond := c.keyCondition(target, target.Table, rel.References, keys[start:end])
		order, err := c.orderBy(target, target.Table, nil, true)
		if err != nil {
			return err
		}
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s%s",
			c.columns(target.Table, target.Fields), c.quote(target.Table), cond, order)

		err = e.query(ctx, errors.OpFindMany, query, c.args, func(rows driver.Rows) error {
			item, err := scanRow(rows, target.Type, target.Fields)
			if err != nil {
				return err
			}
			children = reflect.Append(children, item)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if len(node.children) > 0 {
		if err := e.loadIncludes(ctx, target, children, node.children); err != nil {
			return err
		}
	}

	groups := make(map[string][]int, len(keys))
	for j := 0; j < children.Len(); j++ {
		values, err := fieldValues(target, children.Index(j), rel.References)
		if err != nil {
			return err
		}
		key := tupleKey(values)
		groups[key] = append(groups[key], j)
	}

	for i := 0; i < parents.Len(); i++ {
		parent := parents.Index(i)
		field := parent.FieldByIndex(rel.index)
		values, err := fieldValues(m, parent, rel.Fields)
		if err != nil {
			return err
		}
		var matched []int
		if !hasNil(values) {
			matched = groups[tupleKey(values)]
		}

		if rel.List {
			list := reflect.MakeSlice(field.Type(), 0, len(matched))
			for _, j := range matched {
				list = reflect.Append(list, children.Index(j))
			}
			field.Set(list)
			continue
		}
		if len(matched) == 0 {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		ptr := reflect.New(target.Type)
		ptr.Elem().Set(children.Index(matched[0]))
		field.Set(ptr)
	}
	return nil
}

// keyCondition monta "col IN (...)" ou, para chaves compostas,
// "((a = ? AND b = ?) OR ...)"
func (c *compiler) keyCondition(m *Model, alias string, names []string, keys [][]interface{}) string {
	if len(names) == 1 {
		placeholders := make([]string, len(keys))
		for i, key := range keys {
			placeholders[i] = c.arg(key[0])
		}
		return c.column(alias, m.Field(names[0])) + " IN (" + strings.Join(placeholders, ", ") + ")"
	}

	ors := make([]string, len(keys))
	for i, key := range keys {
		ands := make([]string, len(names))
		for j, name := range names {
			ands[j] = c.column(alias, m.Field(name)) + " = " + c.arg(key[j])
		}
		ors[i] = "(" + strings.Join(ands, " AND ") + ")"
	}
	return "(" + strings.Join(ors, " OR ") + ")"
}

func hasNil(values []interface{}) bool {
	for _, v := range values {
		if v == nil {
			return true
		}
	}
	return false
}
