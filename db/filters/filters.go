// Package filters contém os filtros tipados usados nos WhereInput gerados.
// Cada filtro implementa builder.Filter; campos nil não geram condição.
package filters

import (
	"time"

	"github.com/carlosnayan/bemestar/builder"
)

// QueryMode controla a sensibilidade a maiúsculas de Contains, StartsWith e EndsWith
type QueryMode string

const (
	ModeDefault     QueryMode = "default"
	ModeInsensitive QueryMode = "insensitive"
)

// StringFilter filtra campos String
type StringFilter struct {
	Equals     *string
	Not        *string
	In         []string
	NotIn      []string
	Lt         *string
	Lte        *string
	Gt         *string
	Gte        *string
	Contains   *string
	StartsWith *string
	EndsWith   *string
	Mode       QueryMode
	// IsNull só faz sentido em campos opcionais
	IsNull *bool
}

func (f StringFilter) WhereOperators() []builder.WhereOperator {
	ops := comparisons(f.Equals, f.Not, f.In, f.NotIn, f.Lt, f.Lte, f.Gt, f.Gte)
	insensitive := f.Mode == ModeInsensitive
	if f.Contains != nil {
		if insensitive {
			ops = append(ops, builder.ContainsInsensitive(*f.Contains))
		} else {
			ops = append(ops, builder.Contains(*f.Contains))
		}
	}
	if f.StartsWith != nil {
		if insensitive {
			ops = append(ops, builder.StartsWithInsensitive(*f.StartsWith))
		} else {
			ops = append(ops, builder.StartsWith(*f.StartsWith))
		}
	}
	if f.EndsWith != nil {
		if insensitive {
			ops = append(ops, builder.EndsWithInsensitive(*f.EndsWith))
		} else {
			ops = append(ops, builder.EndsWith(*f.EndsWith))
		}
	}
	return appendIsNull(ops, f.IsNull)
}

// IntFilter filtra campos Int
type IntFilter struct {
	Equals *int
	Not    *int
	In     []int
	NotIn  []int
	Lt     *int
	Lte    *int
	Gt     *int
	Gte    *int
	IsNull *bool
}

func (f IntFilter) WhereOperators() []builder.WhereOperator {
	return appendIsNull(comparisons(f.Equals, f.Not, f.In, f.NotIn, f.Lt, f.Lte, f.Gt, f.Gte), f.IsNull)
}

// FloatFilter filtra campos Float
type FloatFilter struct {
	Equals *float64
	Not    *float64
	In     []float64
	NotIn  []float64
	Lt     *float64
	Lte    *float64
	Gt     *float64
	Gte    *float64
	IsNull *bool
}

func (f FloatFilter) WhereOperators() []builder.WhereOperator {
	return appendIsNull(comparisons(f.Equals, f.Not, f.In, f.NotIn, f.Lt, f.Lte, f.Gt, f.Gte), f.IsNull)
}

// BoolFilter filtra campos Boolean
type BoolFilter struct {
	Equals *bool
	Not    *bool
	IsNull *bool
}

func (f BoolFilter) WhereOperators() []builder.WhereOperator {
	return appendIsNull(comparisons(f.Equals, f.Not, nil, nil, nil, nil, nil, nil), f.IsNull)
}

// DateTimeFilter filtra campos DateTime
type DateTimeFilter struct {
	Equals *time.Time
	Not    *time.Time
	In     []time.Time
	NotIn  []time.Time
	Lt     *time.Time
	Lte    *time.Time
	Gt     *time.Time
	Gte    *time.Time
	IsNull *bool
}

func (f DateTimeFilter) WhereOperators() []builder.WhereOperator {
	return appendIsNull(comparisons(f.Equals, f.Not, f.In, f.NotIn, f.Lt, f.Lte, f.Gt, f.Gte), f.IsNull)
}

// StringListFilter filtra campos String[]
type StringListFilter struct {
	Has      *string
	HasEvery []string
	HasSome  []string
	IsEmpty  *bool
}

func (f StringListFilter) WhereOperators() []builder.WhereOperator {
	return listOperators(f.Has, f.HasEvery, f.HasSome, f.IsEmpty)
}

// IntListFilter filtra campos Int[]
type IntListFilter struct {
	Has      *int64
	HasEvery []int64
	HasSome  []int64
	IsEmpty  *bool
}

func (f IntListFilter) WhereOperators() []builder.WhereOperator {
	return listOperators(f.Has, f.HasEvery, f.HasSome, f.IsEmpty)
}

// RelationFilter filtra uma relação to-one pelo WhereInput do model alvo
type RelationFilter[W any] struct {
	Is    *W
	IsNot *W
	// IsNull true casa registros sem a relação; false, registros com ela
	IsNull *bool
}

func (f RelationFilter[W]) WhereOperators() []builder.WhereOperator {
	var ops []builder.WhereOperator
	if f.Is != nil {
		ops = append(ops, builder.Is(f.Is))
	}
	if f.IsNot != nil {
		ops = append(ops, builder.IsNot(f.IsNot))
	}
	if f.IsNull != nil {
		if *f.IsNull {
			ops = append(ops, builder.Is(nil))
		} else {
			ops = append(ops, builder.IsNot(nil))
		}
	}
	return ops
}

// ListRelationFilter filtra uma relação de lista
type ListRelationFilter[W any] struct {
	Some  *W
	Every *W
	None  *W
}

func (f ListRelationFilter[W]) WhereOperators() []builder.WhereOperator {
	var ops []builder.WhereOperator
	if f.Some != nil {
		ops = append(ops, builder.Some(f.Some))
	}
	if f.Every != nil {
		ops = append(ops, builder.Every(f.Every))
	}
	if f.None != nil {
		ops = append(ops, builder.None(f.None))
	}
	return ops
}

func comparisons[T any](equals, not *T, in, notIn []T, lt, lte, gt, gte *T) []builder.WhereOperator {
	var ops []builder.WhereOperator
	if equals != nil {
		ops = append(ops, builder.Equals(*equals))
	}
	if not != nil {
		ops = append(ops, builder.NotEquals(*not))
	}
	// slice vazio (não nil) é mantido: IN () não casa nada
	if in != nil {
		ops = append(ops, builder.In(values(in)...))
	}
	if notIn != nil {
		ops = append(ops, builder.NotIn(values(notIn)...))
	}
	for _, c := range []struct {
		v  *T
		op func(interface{}) builder.WhereOperator
	}{{lt, builder.Lt}, {lte, builder.Lte}, {gt, builder.Gt}, {gte, builder.Gte}} {
		if c.v != nil {
			ops = append(ops, c.op(*c.v))
		}
	}
	return ops
}

func listOperators[T any](has *T, every, some []T, empty *bool) []builder.WhereOperator {
	var ops []builder.WhereOperator
	if has != nil {
		ops = append(ops, builder.Has(*has))
	}
	if every != nil {
		ops = append(ops, builder.HasEvery(values(every)...))
	}
	if some != nil {
		ops = append(ops, builder.HasSome(values(some)...))
	}
	if empty != nil {
		ops = append(ops, builder.IsEmpty(*empty))
	}
	return ops
}

func appendIsNull(ops []builder.WhereOperator, isNull *bool) []builder.WhereOperator {
	if isNull == nil {
		return ops
	}
	if *isNull {
		return append(ops, builder.IsNull())
	}
	return append(ops, builder.IsNotNull())
}

func values[T any](in []T) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
