package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosnayan/bemestar/internal/dialect"
	"github.com/carlosnayan/bemestar/internal/errors"
)

func compileWhere(t *testing.T, provider, model string, w Where) (string, []interface{}, error) {
	t.Helper()
	s := newTestSchema(t)
	m := s.Model(model)
	c := newCompiler(dialect.GetDialect(provider))
	sql, err := c.where(m, m.Table, w)
	return sql, c.args, err
}

func TestCompileWhere(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		where    Where
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "equality and comparison in key order",
			model:    "Usuario",
			where:    Where{"nome": "Ana", "idade": Gte(18)},
			wantSQL:  `"usuarios"."idade" >= ? AND "usuarios"."nome" = ?`,
			wantArgs: []interface{}{18, "Ana"},
		},
		{
			name:    "nil is null",
			model:   "Usuario",
			where:   Where{"idade": nil},
			wantSQL: `"usuarios"."idade" IS NULL`,
		},
		{
			name:    "not equals nil",
			model:   "Usuario",
			where:   Where{"idade": NotEquals(nil)},
			wantSQL: `"usuarios"."idade" IS NOT NULL`,
		},
		{
			name:     "in",
			model:    "Usuario",
			where:    Where{"email": In("a@x.com", "b@x.com")},
			wantSQL:  `"usuarios"."email" IN (?, ?)`,
			wantArgs: []interface{}{"a@x.com", "b@x.com"},
		},
		{
			name:     "in with typed slice",
			model:    "Usuario",
			where:    Where{"email": In([]string{"a@x.com"})},
			wantSQL:  `"usuarios"."email" IN (?)`,
			wantArgs: []interface{}{"a@x.com"},
		},
		{
			name:    "empty in never matches",
			model:   "Usuario",
			where:   Where{"email": In()},
			wantSQL: `1=0`,
		},
		{
			name:    "empty not in always matches",
			model:   "Usuario",
			where:   Where{"email": NotIn()},
			wantSQL: `1=1`,
		},
		{
			name:     "contains escapes wildcards",
			model:    "Receita",
			where:    Where{"titulo": Contains("50%_off")},
			wantSQL:  `"receitas"."titulo" LIKE ? ESCAPE '!'`,
			wantArgs: []interface{}{"%50!%!_off%"},
		},
		{
			name:     "insensitive starts with",
			model:    "Receita",
			where:    Where{"titulo": StartsWithInsensitive("bolo")},
			wantSQL:  `"receitas"."titulo" ILIKE ? ESCAPE '!'`,
			wantArgs: []interface{}{"bolo%"},
		},
		{
			name:     "operators on one field are ANDed",
			model:    "Receita",
			where:    Where{"calorias": []WhereOperator{Gt(100), Lte(500)}},
			wantSQL:  `"receitas"."calorias" > ? AND "receitas"."calorias" <= ?`,
			wantArgs: []interface{}{100, 500},
		},
		{
			name:     "list has is normalized",
			model:    "Receita",
			where:    Where{"tags": Has("Vegana")},
			wantSQL:  `? = ANY("receitas"."tags")`,
			wantArgs: []interface{}{"vegana"},
		},
		{
			name:     "has some",
			model:    "Receita",
			where:    Where{"tags": HasSome("doce", "fit")},
			wantSQL:  `(? = ANY("receitas"."tags") OR ? = ANY("receitas"."tags"))`,
			wantArgs: []interface{}{"doce", "fit"},
		},
		{
			name:    "is empty",
			model:   "Receita",
			where:   Where{"tags": IsEmpty(true)},
			wantSQL: `COALESCE(cardinality("receitas"."tags"), 0) = 0`,
		},
		{
			name:     "or",
			model:    "Usuario",
			where:    Or(Where{"nome": "Ana"}, Where{"nome": "Bia"}),
			wantSQL:  `(("usuarios"."nome" = ?) OR ("usuarios"."nome" = ?))`,
			wantArgs: []interface{}{"Ana", "Bia"},
		},
		{
			name:    "empty or never matches",
			model:   "Usuario",
			where:   Where{"OR": []Where{}},
			wantSQL: `1=0`,
		},
		{
			name:     "not",
			model:    "Usuario",
			where:    Not(Where{"ativo": true}),
			wantSQL:  `(NOT (("usuarios"."ativo" = ?)))`,
			wantArgs: []interface{}{true},
		},
		{
			name:     "not with two conditions excludes both",
			model:    "Usuario",
			where:    Not(Where{"nome": "Ana"}, Where{"nome": "Bia"}),
			wantSQL:  `(NOT (("usuarios"."nome" = ?)) AND NOT (("usuarios"."nome" = ?)))`,
			wantArgs: []interface{}{"Ana", "Bia"},
		},
		{
			name:     "some",
			model:    "Usuario",
			where:    Where{"receitas": Some(Where{"titulo": "Bolo"})},
			wantSQL:  `EXISTS (SELECT 1 FROM "receitas" AS "r1" WHERE "r1"."usuario_id" = "usuarios"."id" AND ("r1"."titulo" = ?))`,
			wantArgs: []interface{}{"Bolo"},
		},
		{
			name:     "every",
			model:    "Usuario",
			where:    Where{"receitas": Every(Where{"calorias": Lt(300)})},
			wantSQL:  `NOT EXISTS (SELECT 1 FROM "receitas" AS "r1" WHERE "r1"."usuario_id" = "usuarios"."id" AND (NOT ("r1"."calorias" < ?)))`,
			wantArgs: []interface{}{300},
		},
		{
			name:    "none without condition",
			model:   "Usuario",
			where:   Where{"receitas": None(Where{})},
			wantSQL: `NOT EXISTS (SELECT 1 FROM "receitas" AS "r1" WHERE "r1"."usuario_id" = "usuarios"."id")`,
		},
		{
			name:     "to-one filter by value",
			model:    "Receita",
			where:    Where{"usuario": Where{"email": "ana@x.com"}},
			wantSQL:  `EXISTS (SELECT 1 FROM "usuarios" AS "r1" WHERE "r1"."id" = "receitas"."usuario_id" AND ("r1"."email" = ?))`,
			wantArgs: []interface{}{"ana@x.com"},
		},
		{
			name:     "nested relations use fresh aliases",
			model:    "PassoReceita",
			where:    Where{"receita": Is(Where{"usuario": Is(Where{"nome": "Ana"})})},
			wantSQL:  `EXISTS (SELECT 1 FROM "receitas" AS "r1" WHERE "r1"."id" = "passos_receita"."receita_id" AND (EXISTS (SELECT 1 FROM "usuarios" AS "r2" WHERE "r2"."id" = "r1"."usuario_id" AND ("r2"."nome" = ?))))`,
			wantArgs: []interface{}{"Ana"},
		},
		{
			name:    "is nil on owner side checks the fk",
			model:   "Receita",
			where:   Where{"usuario": Is(nil)},
			wantSQL: `"receitas"."usuario_id" IS NULL`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := compileWhere(t, "postgresql", tt.model, tt.where)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCompileWhere_Dialects(t *testing.T) {
	sql, args, err := compileWhere(t, "sqlite", "Receita", Where{"titulo": ContainsInsensitive("Bolo"), "tags": Has("doce")})
	require.NoError(t, err)
	assert.Equal(t, `EXISTS (SELECT 1 FROM json_each("receitas"."tags") WHERE json_each.value = ?) AND LOWER("receitas"."titulo") LIKE LOWER(?) ESCAPE '!'`, sql)
	assert.Equal(t, []interface{}{"doce", "%Bolo%"}, args)

	sql, _, err = compileWhere(t, "mysql", "Usuario", Where{"nome": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "`usuarios`.`nome` = ?", sql)
}

func TestCompileWhere_Errors(t *testing.T) {
	tests := []struct {
		name  string
		model string
		where Where
	}{
		{"unknown field", "Usuario", Where{"apelido": "x"}},
		{"list relation without operator", "Usuario", Where{"receitas": Where{"titulo": "x"}}},
		{"some on to-one", "Receita", Where{"usuario": Some(Where{})}},
		{"is on list", "Usuario", Where{"receitas": Is(Where{})}},
		{"has on scalar", "Usuario", Where{"nome": Has("a")}},
		{"relation operator on scalar", "Usuario", Where{"nome": Some(Where{})}},
		{"in needs a list", "Usuario", Where{"idade": WhereOperator{op: "IN", value: 3}}},
		{"gt nil", "Usuario", Where{"idade": Gt(nil)}},
		{"unknown field in relation", "Usuario", Where{"receitas": Some(Where{"autor": "x"})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := compileWhere(t, "postgresql", tt.model, tt.where)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
}

func TestCompileOrderBy(t *testing.T) {
	s := newTestSchema(t)
	m := s.Model("Usuario")
	c := newCompiler(dialect.GetDialect("postgresql"))

	sql, err := c.orderBy(m, m.Table, []OrderBy{Desc("criadoEm"), Asc("nome")}, true)
	require.NoError(t, err)
	assert.Equal(t, ` ORDER BY "usuarios"."criado_em" DESC, "usuarios"."nome" ASC, "usuarios"."id" ASC`, sql)

	sql, err = c.orderBy(m, m.Table, []OrderBy{Desc("id")}, true)
	require.NoError(t, err)
	assert.Equal(t, ` ORDER BY "usuarios"."id" DESC`, sql)

	sql, err = c.orderBy(m, m.Table, nil, false)
	require.NoError(t, err)
	assert.Empty(t, sql)

	_, err = c.orderBy(m, m.Table, []OrderBy{{Field: "nome", Order: "up"}}, false)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = c.orderBy(m, m.Table, []OrderBy{Asc("receitas")}, false)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "100!%", escapeLike("100%"))
	assert.Equal(t, "a!_b", escapeLike("a_b"))
	assert.Equal(t, "uau!!", escapeLike("uau!"))
}
