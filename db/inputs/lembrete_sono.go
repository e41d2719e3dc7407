package inputs

import (
	"time"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/filters"
)

// LembreteSonoWhereInput filtra registros de LembreteSono
type LembreteSonoWhereInput struct {
	AND []LembreteSonoWhereInput `prisma:"AND"`
	OR  []LembreteSonoWhereInput `prisma:"OR"`
	NOT []LembreteSonoWhereInput `prisma:"NOT"`

	ID         *filters.StringFilter   `prisma:"id"`
	UsuarioID  *filters.StringFilter   `prisma:"usuarioId"`
	Horario    *filters.StringFilter   `prisma:"horario"`
	DiasSemana *filters.IntListFilter  `prisma:"diasSemana"`
	Ativo      *filters.BoolFilter     `prisma:"ativo"`
	Mensagem   *filters.StringFilter   `prisma:"mensagem"`
	CriadoEm   *filters.DateTimeFilter `prisma:"criadoEm"`

	Usuario *filters.RelationFilter[UsuarioWhereInput] `prisma:"usuario"`
}

// LembreteSonoWhereUniqueInput identifica um único registro de LembreteSono
type LembreteSonoWhereUniqueInput struct {
	ID *string `prisma:"id"`
}

// LembreteSonoCreateInput são os dados de um novo registro de LembreteSono.
// Campos ponteiro são opcionais ou têm default.
type LembreteSonoCreateInput struct {
	ID         *string    `prisma:"id" yaml:"id"`
	UsuarioID  string     `prisma:"usuarioId" yaml:"usuarioId" validate:"required"`
	Horario    string     `prisma:"horario" yaml:"horario" validate:"required,hhmm"`
	DiasSemana []int64    `prisma:"diasSemana" yaml:"diasSemana" validate:"required,min=1,max=7,dive,min=0,max=6"`
	Ativo      *bool      `prisma:"ativo" yaml:"ativo"`
	Mensagem   *string    `prisma:"mensagem" yaml:"mensagem" validate:"omitempty,max=200"`
	CriadoEm   *time.Time `prisma:"criadoEm" yaml:"criadoEm"`
}

// LembreteSonoUpdateInput são as alterações de um registro de LembreteSono.
// Campos nil ficam como estão; builder.Null grava NULL nos opcionais.
type LembreteSonoUpdateInput struct {
	UsuarioID  *string                  `prisma:"usuarioId"`
	Horario    *string                  `prisma:"horario" validate:"omitempty,hhmm"`
	DiasSemana []int64                  `prisma:"diasSemana" validate:"omitempty,min=1,max=7,dive,min=0,max=6"`
	Ativo      *bool                    `prisma:"ativo"`
	Mensagem   builder.Nullable[string] `prisma:"mensagem" validate:"omitempty,max=200"`
	CriadoEm   *time.Time               `prisma:"criadoEm"`
}
