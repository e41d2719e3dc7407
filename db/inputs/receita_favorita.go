package inputs

import (
	"time"

	"github.com/carlosnayan/bemestar/db/filters"
)

// ReceitaFavoritaWhereInput filtra registros de ReceitaFavorita
type ReceitaFavoritaWhereInput struct {
	AND []ReceitaFavoritaWhereInput `prisma:"AND"`
	OR  []ReceitaFavoritaWhereInput `prisma:"OR"`
	NOT []ReceitaFavoritaWhereInput `prisma:"NOT"`

	ID        *filters.StringFilter   `prisma:"id"`
	UsuarioID *filters.StringFilter   `prisma:"usuarioId"`
	ReceitaID *filters.StringFilter   `prisma:"receitaId"`
	CriadoEm  *filters.DateTimeFilter `prisma:"criadoEm"`

	Usuario *filters.RelationFilter[UsuarioWhereInput] `prisma:"usuario"`
	Receita *filters.RelationFilter[ReceitaWhereInput] `prisma:"receita"`
}

// ReceitaFavoritaWhereUniqueInput identifica um único registro de ReceitaFavorita
type ReceitaFavoritaWhereUniqueInput struct {
	ID                 *string                                               `prisma:"id"`
	UsuarioIDReceitaID *ReceitaFavoritaUsuarioIDReceitaIDCompoundUniqueInput `prisma:"usuarioId_receitaId,compound"`
}

// ReceitaFavoritaUsuarioIDReceitaIDCompoundUniqueInput é a chave única (usuarioId, receitaId)
type ReceitaFavoritaUsuarioIDReceitaIDCompoundUniqueInput struct {
	UsuarioID string `prisma:"usuarioId"`
	ReceitaID string `prisma:"receitaId"`
}

// ReceitaFavoritaCreateInput são os dados de um novo registro de ReceitaFavorita.
// Campos ponteiro são opcionais ou têm default.
type ReceitaFavoritaCreateInput struct {
	ID        *string    `prisma:"id" yaml:"id"`
	UsuarioID string     `prisma:"usuarioId" yaml:"usuarioId" validate:"required"`
	ReceitaID string     `prisma:"receitaId" yaml:"receitaId" validate:"required"`
	CriadoEm  *time.Time `prisma:"criadoEm" yaml:"criadoEm"`
}

// ReceitaFavoritaUpdateInput são as alterações de um registro de ReceitaFavorita.
// Campos nil ficam como estão.
type ReceitaFavoritaUpdateInput struct {
	UsuarioID *string    `prisma:"usuarioId"`
	ReceitaID *string    `prisma:"receitaId"`
	CriadoEm  *time.Time `prisma:"criadoEm"`
}
