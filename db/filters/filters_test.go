package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carlosnayan/bemestar/builder"
)

type receitaWhere struct {
	Titulo *StringFilter `prisma:"titulo"`
}

func TestStringFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter *StringFilter
		want   []builder.WhereOperator
	}{
		{"equals", Equals("ana"), []builder.WhereOperator{builder.Equals("ana")}},
		{"in", In("a", "b"), []builder.WhereOperator{builder.In("a", "b")}},
		{"contains", Contains("bolo"), []builder.WhereOperator{builder.Contains("bolo")}},
		{"insensitive", ContainsInsensitive("Bolo"), []builder.WhereOperator{builder.ContainsInsensitive("Bolo")}},
		{"starts insensitive", &StringFilter{StartsWith: ptr("Pa"), Mode: ModeInsensitive}, []builder.WhereOperator{builder.StartsWithInsensitive("Pa")}},
		{"is null", StringIsNull(), []builder.WhereOperator{builder.IsNull()}},
		{"is set", StringIsSet(), []builder.WhereOperator{builder.IsNotNull()}},
		{"nothing", &StringFilter{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.WhereOperators())
		})
	}
}

func TestEmptyInKeepsCondition(t *testing.T) {
	ops := In().WhereOperators()
	if assert.Len(t, ops, 1) {
		assert.Equal(t, "IN", ops[0].GetOp())
		assert.Equal(t, []interface{}{}, ops[0].GetValue())
	}
}

func TestNumericFilters(t *testing.T) {
	assert.Equal(t, []builder.WhereOperator{builder.Lte(5), builder.Gte(1)}, IntBetween(1, 5).WhereOperators())
	assert.Equal(t, []builder.WhereOperator{builder.In(200, 250)}, IntIn(200, 250).WhereOperators())
	assert.Equal(t, []builder.WhereOperator{builder.Lte(9.0), builder.Gte(6.5)}, FloatBetween(6.5, 9).WhereOperators())
	assert.Equal(t, []builder.WhereOperator{builder.Equals(true)}, BoolEquals(true).WhereOperators())
}

func TestDateTimeBetween(t *testing.T) {
	from := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	ops := Between(from, to).WhereOperators()
	assert.Equal(t, []builder.WhereOperator{builder.Lt(to), builder.Gte(from)}, ops)
}

func TestListFilters(t *testing.T) {
	assert.Equal(t, []builder.WhereOperator{builder.Has("vegano")}, Has("vegano").WhereOperators())
	assert.Equal(t, []builder.WhereOperator{builder.HasEvery("doce", "rapido")}, HasEvery("doce", "rapido").WhereOperators())
	assert.Equal(t, []builder.WhereOperator{builder.Has(int64(0))}, HasInt(0).WhereOperators())
	assert.Equal(t, []builder.WhereOperator{builder.IsEmpty(true)}, StringListFilter{IsEmpty: ptr(true)}.WhereOperators())
}

func TestRelationFilters(t *testing.T) {
	where := receitaWhere{Titulo: Equals("Bolo")}

	ops := Is(where).WhereOperators()
	if assert.Len(t, ops, 1) {
		assert.Equal(t, "IS", ops[0].GetOp())
		assert.Equal(t, &where, ops[0].GetValue())
	}

	ops = IsNull[receitaWhere]().WhereOperators()
	if assert.Len(t, ops, 1) {
		assert.Equal(t, "IS", ops[0].GetOp())
		assert.Nil(t, ops[0].GetValue())
	}

	ops = (&ListRelationFilter[receitaWhere]{Some: &where, None: &receitaWhere{}}).WhereOperators()
	if assert.Len(t, ops, 2) {
		assert.Equal(t, "SOME", ops[0].GetOp())
		assert.Equal(t, "NONE", ops[1].GetOp())
	}
}
