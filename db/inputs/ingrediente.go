package inputs

import (
	"github.com/carlosnayan/bemestar/db/filters"
)

// IngredienteWhereInput filtra registros de Ingrediente
type IngredienteWhereInput struct {
	AND []IngredienteWhereInput `prisma:"AND"`
	OR  []IngredienteWhereInput `prisma:"OR"`
	NOT []IngredienteWhereInput `prisma:"NOT"`

	ID         *filters.StringFilter `prisma:"id"`
	ReceitaID  *filters.StringFilter `prisma:"receitaId"`
	Nome       *filters.StringFilter `prisma:"nome"`
	Quantidade *filters.FloatFilter  `prisma:"quantidade"`
	Unidade    *filters.StringFilter `prisma:"unidade"`

	Receita *filters.RelationFilter[ReceitaWhereInput] `prisma:"receita"`
}

// IngredienteWhereUniqueInput identifica um único registro de Ingrediente
type IngredienteWhereUniqueInput struct {
	ID *string `prisma:"id"`
}

// IngredienteCreateInput são os dados de um novo registro de Ingrediente.
// Campos ponteiro são opcionais ou têm default.
type IngredienteCreateInput struct {
	ID         *string `prisma:"id" yaml:"id"`
	ReceitaID  string  `prisma:"receitaId" yaml:"receitaId" validate:"required"`
	Nome       string  `prisma:"nome" yaml:"nome" validate:"required,max=100"`
	Quantidade float64 `prisma:"quantidade" yaml:"quantidade" validate:"min=0"`
	Unidade    string  `prisma:"unidade" yaml:"unidade" validate:"required,max=20"`
}

// IngredienteUpdateInput são as alterações de um registro de Ingrediente.
// Campos nil ficam como estão.
type IngredienteUpdateInput struct {
	ReceitaID  *string  `prisma:"receitaId"`
	Nome       *string  `prisma:"nome" validate:"omitempty,max=100"`
	Quantidade *float64 `prisma:"quantidade" validate:"omitempty,min=0"`
	Unidade    *string  `prisma:"unidade" validate:"omitempty,max=20"`
}
