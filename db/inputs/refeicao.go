package inputs

import (
	"time"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/filters"
)

// RefeicaoWhereInput filtra registros de Refeicao
type RefeicaoWhereInput struct {
	AND []RefeicaoWhereInput `prisma:"AND"`
	OR  []RefeicaoWhereInput `prisma:"OR"`
	NOT []RefeicaoWhereInput `prisma:"NOT"`

	ID        *filters.StringFilter   `prisma:"id"`
	UsuarioID *filters.StringFilter   `prisma:"usuarioId"`
	Nome      *filters.StringFilter   `prisma:"nome"`
	Descricao *filters.StringFilter   `prisma:"descricao"`
	Horario   *filters.StringFilter   `prisma:"horario"`
	Calorias  *filters.IntFilter      `prisma:"calorias"`
	CriadoEm  *filters.DateTimeFilter `prisma:"criadoEm"`

	Usuario   *filters.RelationFilter[UsuarioWhereInput]              `prisma:"usuario"`
	Registros *filters.ListRelationFilter[RegistroRefeicaoWhereInput] `prisma:"registros"`
}

// RefeicaoWhereUniqueInput identifica um único registro de Refeicao
type RefeicaoWhereUniqueInput struct {
	ID *string `prisma:"id"`
}

// RefeicaoCreateInput são os dados de um novo registro de Refeicao.
// Campos ponteiro são opcionais ou têm default.
type RefeicaoCreateInput struct {
	ID        *string    `prisma:"id" yaml:"id"`
	UsuarioID string     `prisma:"usuarioId" yaml:"usuarioId" validate:"required"`
	Nome      string     `prisma:"nome" yaml:"nome" validate:"required,max=100"`
	Descricao *string    `prisma:"descricao" yaml:"descricao"`
	Horario   *string    `prisma:"horario" yaml:"horario" validate:"omitempty,hhmm"`
	Calorias  *int       `prisma:"calorias" yaml:"calorias" validate:"omitempty,min=0"`
	CriadoEm  *time.Time `prisma:"criadoEm" yaml:"criadoEm"`
}

// RefeicaoUpdateInput são as alterações de um registro de Refeicao.
// Campos nil ficam como estão; builder.Null grava NULL nos opcionais.
type RefeicaoUpdateInput struct {
	UsuarioID *string                  `prisma:"usuarioId"`
	Nome      *string                  `prisma:"nome" validate:"omitempty,max=100"`
	Descricao builder.Nullable[string] `prisma:"descricao"`
	Horario   builder.Nullable[string] `prisma:"horario" validate:"omitempty,hhmm"`
	Calorias  builder.Nullable[int]    `prisma:"calorias" validate:"omitempty,min=0"`
	CriadoEm  *time.Time               `prisma:"criadoEm"`
}
