package inputs

import (
	"github.com/carlosnayan/bemestar/db/filters"
)

// PassoReceitaWhereInput filtra registros de PassoReceita
type PassoReceitaWhereInput struct {
	AND []PassoReceitaWhereInput `prisma:"AND"`
	OR  []PassoReceitaWhereInput `prisma:"OR"`
	NOT []PassoReceitaWhereInput `prisma:"NOT"`

	ID        *filters.StringFilter `prisma:"id"`
	ReceitaID *filters.StringFilter `prisma:"receitaId"`
	Ordem     *filters.IntFilter    `prisma:"ordem"`
	Descricao *filters.StringFilter `prisma:"descricao"`

	Receita *filters.RelationFilter[ReceitaWhereInput] `prisma:"receita"`
}

// PassoReceitaWhereUniqueInput identifica um único registro de PassoReceita
type PassoReceitaWhereUniqueInput struct {
	ID             *string                                        `prisma:"id"`
	ReceitaIDOrdem *PassoReceitaReceitaIDOrdemCompoundUniqueInput `prisma:"receitaId_ordem,compound"`
}

// PassoReceitaReceitaIDOrdemCompoundUniqueInput é a chave única (receitaId, ordem)
type PassoReceitaReceitaIDOrdemCompoundUniqueInput struct {
	ReceitaID string `prisma:"receitaId"`
	Ordem     int    `prisma:"ordem"`
}

// PassoReceitaCreateInput são os dados de um novo registro de PassoReceita.
// Campos ponteiro são opcionais ou têm default.
type PassoReceitaCreateInput struct {
	ID        *string `prisma:"id" yaml:"id"`
	ReceitaID string  `prisma:"receitaId" yaml:"receitaId" validate:"required"`
	Ordem     int     `prisma:"ordem" yaml:"ordem" validate:"required,min=1"`
	Descricao string  `prisma:"descricao" yaml:"descricao" validate:"required"`
}

// PassoReceitaUpdateInput são as alterações de um registro de PassoReceita.
// Campos nil ficam como estão.
type PassoReceitaUpdateInput struct {
	ReceitaID *string `prisma:"receitaId"`
	Ordem     *int    `prisma:"ordem" validate:"omitempty,min=1"`
	Descricao *string `prisma:"descricao"`
}
