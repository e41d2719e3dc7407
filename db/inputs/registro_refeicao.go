package inputs

import (
	"time"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/filters"
)

// RegistroRefeicaoWhereInput filtra registros de RegistroRefeicao
type RegistroRefeicaoWhereInput struct {
	AND []RegistroRefeicaoWhereInput `prisma:"AND"`
	OR  []RegistroRefeicaoWhereInput `prisma:"OR"`
	NOT []RegistroRefeicaoWhereInput `prisma:"NOT"`

	ID         *filters.StringFilter   `prisma:"id"`
	UsuarioID  *filters.StringFilter   `prisma:"usuarioId"`
	RefeicaoID *filters.StringFilter   `prisma:"refeicaoId"`
	Data       *filters.DateTimeFilter `prisma:"data"`
	Hora       *filters.StringFilter   `prisma:"hora"`
	Descricao  *filters.StringFilter   `prisma:"descricao"`
	FotoURL    *filters.StringFilter   `prisma:"fotoUrl"`
	Calorias   *filters.IntFilter      `prisma:"calorias"`
	CriadoEm   *filters.DateTimeFilter `prisma:"criadoEm"`

	Usuario  *filters.RelationFilter[UsuarioWhereInput]  `prisma:"usuario"`
	Refeicao *filters.RelationFilter[RefeicaoWhereInput] `prisma:"refeicao"`
}

// RegistroRefeicaoWhereUniqueInput identifica um único registro de RegistroRefeicao
type RegistroRefeicaoWhereUniqueInput struct {
	ID *string `prisma:"id"`
}

// RegistroRefeicaoCreateInput são os dados de um novo registro de RegistroRefeicao.
// Campos ponteiro são opcionais ou têm default.
type RegistroRefeicaoCreateInput struct {
	ID         *string    `prisma:"id" yaml:"id"`
	UsuarioID  string     `prisma:"usuarioId" yaml:"usuarioId" validate:"required"`
	RefeicaoID *string    `prisma:"refeicaoId" yaml:"refeicaoId"`
	Data       time.Time  `prisma:"data" yaml:"data" validate:"required"`
	Hora       string     `prisma:"hora" yaml:"hora" validate:"required,hhmm"`
	Descricao  string     `prisma:"descricao" yaml:"descricao" validate:"required,max=500"`
	FotoURL    *string    `prisma:"fotoUrl" yaml:"fotoUrl"`
	Calorias   *int       `prisma:"calorias" yaml:"calorias" validate:"omitempty,min=0"`
	CriadoEm   *time.Time `prisma:"criadoEm" yaml:"criadoEm"`
}

// RegistroRefeicaoUpdateInput são as alterações de um registro de RegistroRefeicao.
// Campos nil ficam como estão; builder.Null grava NULL nos opcionais.
type RegistroRefeicaoUpdateInput struct {
	UsuarioID  *string                  `prisma:"usuarioId"`
	RefeicaoID builder.Nullable[string] `prisma:"refeicaoId"`
	Data       *time.Time               `prisma:"data"`
	Hora       *string                  `prisma:"hora" validate:"omitempty,hhmm"`
	Descricao  *string                  `prisma:"descricao" validate:"omitempty,max=500"`
	FotoURL    builder.Nullable[string] `prisma:"fotoUrl"`
	Calorias   builder.Nullable[int]    `prisma:"calorias" validate:"omitempty,min=0"`
	CriadoEm   *time.Time               `prisma:"criadoEm"`
}
