package inputs

import (
	"time"

	"github.com/carlosnayan/bemestar/db/filters"
)

// RegistroHidratacaoWhereInput filtra registros de RegistroHidratacao
type RegistroHidratacaoWhereInput struct {
	AND []RegistroHidratacaoWhereInput `prisma:"AND"`
	OR  []RegistroHidratacaoWhereInput `prisma:"OR"`
	NOT []RegistroHidratacaoWhereInput `prisma:"NOT"`

	ID           *filters.StringFilter   `prisma:"id"`
	UsuarioID    *filters.StringFilter   `prisma:"usuarioId"`
	QuantidadeMl *filters.IntFilter      `prisma:"quantidadeMl"`
	RegistradoEm *filters.DateTimeFilter `prisma:"registradoEm"`

	Usuario *filters.RelationFilter[UsuarioWhereInput] `prisma:"usuario"`
}

// RegistroHidratacaoWhereUniqueInput identifica um único registro de RegistroHidratacao
type RegistroHidratacaoWhereUniqueInput struct {
	ID *string `prisma:"id"`
}

// RegistroHidratacaoCreateInput são os dados de um novo registro de RegistroHidratacao.
// Campos ponteiro são opcionais ou têm default.
type RegistroHidratacaoCreateInput struct {
	ID           *string    `prisma:"id" yaml:"id"`
	UsuarioID    string     `prisma:"usuarioId" yaml:"usuarioId" validate:"required"`
	QuantidadeMl int        `prisma:"quantidadeMl" yaml:"quantidadeMl" validate:"required,min=1,max=5000"`
	RegistradoEm *time.Time `prisma:"registradoEm" yaml:"registradoEm"`
}

// RegistroHidratacaoUpdateInput são as alterações de um registro de RegistroHidratacao.
// Campos nil ficam como estão.
type RegistroHidratacaoUpdateInput struct {
	UsuarioID    *string    `prisma:"usuarioId"`
	QuantidadeMl *int       `prisma:"quantidadeMl" validate:"omitempty,min=1,max=5000"`
	RegistradoEm *time.Time `prisma:"registradoEm"`
}
