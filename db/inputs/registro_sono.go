package inputs

import (
	"time"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/filters"
)

// RegistroSonoWhereInput filtra registros de RegistroSono
type RegistroSonoWhereInput struct {
	AND []RegistroSonoWhereInput `prisma:"AND"`
	OR  []RegistroSonoWhereInput `prisma:"OR"`
	NOT []RegistroSonoWhereInput `prisma:"NOT"`

	ID          *filters.StringFilter   `prisma:"id"`
	UsuarioID   *filters.StringFilter   `prisma:"usuarioId"`
	Inicio      *filters.DateTimeFilter `prisma:"inicio"`
	Fim         *filters.DateTimeFilter `prisma:"fim"`
	Qualidade   *filters.IntFilter      `prisma:"qualidade"`
	Observacoes *filters.StringFilter   `prisma:"observacoes"`
	CriadoEm    *filters.DateTimeFilter `prisma:"criadoEm"`

	Usuario *filters.RelationFilter[UsuarioWhereInput] `prisma:"usuario"`
}

// RegistroSonoWhereUniqueInput identifica um único registro de RegistroSono
type RegistroSonoWhereUniqueInput struct {
	ID *string `prisma:"id"`
}

// RegistroSonoCreateInput são os dados de um novo registro de RegistroSono.
// Campos ponteiro são opcionais ou têm default.
type RegistroSonoCreateInput struct {
	ID          *string    `prisma:"id" yaml:"id"`
	UsuarioID   string     `prisma:"usuarioId" yaml:"usuarioId" validate:"required"`
	Inicio      time.Time  `prisma:"inicio" yaml:"inicio" validate:"required"`
	Fim         time.Time  `prisma:"fim" yaml:"fim" validate:"required"`
	Qualidade   *int       `prisma:"qualidade" yaml:"qualidade" validate:"omitempty,min=1,max=5"`
	Observacoes *string    `prisma:"observacoes" yaml:"observacoes" validate:"omitempty,max=1000"`
	CriadoEm    *time.Time `prisma:"criadoEm" yaml:"criadoEm"`
}

// RegistroSonoUpdateInput são as alterações de um registro de RegistroSono.
// Campos nil ficam como estão; builder.Null grava NULL nos opcionais.
type RegistroSonoUpdateInput struct {
	UsuarioID   *string                  `prisma:"usuarioId"`
	Inicio      *time.Time               `prisma:"inicio"`
	Fim         *time.Time               `prisma:"fim"`
	Qualidade   builder.Nullable[int]    `prisma:"qualidade" validate:"omitempty,min=1,max=5"`
	Observacoes builder.Nullable[string] `prisma:"observacoes" validate:"omitempty,max=1000"`
	CriadoEm    *time.Time               `prisma:"criadoEm"`
}
