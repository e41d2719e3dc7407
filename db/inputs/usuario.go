package inputs

import (
	"time"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/filters"
)

// UsuarioWhereInput filtra registros de Usuario
type UsuarioWhereInput struct {
	AND []UsuarioWhereInput `prisma:"AND"`
	OR  []UsuarioWhereInput `prisma:"OR"`
	NOT []UsuarioWhereInput `prisma:"NOT"`

	ID                  *filters.StringFilter   `prisma:"id"`
	Nome                *filters.StringFilter   `prisma:"nome"`
	Email               *filters.StringFilter   `prisma:"email"`
	SenhaHash           *filters.StringFilter   `prisma:"senhaHash"`
	DataNascimento      *filters.DateTimeFilter `prisma:"dataNascimento"`
	PesoKg              *filters.FloatFilter    `prisma:"pesoKg"`
	AlturaCm            *filters.IntFilter      `prisma:"alturaCm"`
	AltoContraste       *filters.BoolFilter     `prisma:"altoContraste"`
	TamanhoFonte        *filters.IntFilter      `prisma:"tamanhoFonte"`
	LeitorTela          *filters.BoolFilter     `prisma:"leitorTela"`
	NotificarHidratacao *filters.BoolFilter     `prisma:"notificarHidratacao"`
	NotificarRefeicoes  *filters.BoolFilter     `prisma:"notificarRefeicoes"`
	NotificarSono       *filters.BoolFilter     `prisma:"notificarSono"`
	MetaHidratacaoMl    *filters.IntFilter      `prisma:"metaHidratacaoMl"`
	MetaSonoHoras       *filters.FloatFilter    `prisma:"metaSonoHoras"`
	MetaRefeicoesDia    *filters.IntFilter      `prisma:"metaRefeicoesDia"`
	CriadoEm            *filters.DateTimeFilter `prisma:"criadoEm"`
	AtualizadoEm        *filters.DateTimeFilter `prisma:"atualizadoEm"`

	Refeicoes           *filters.ListRelationFilter[RefeicaoWhereInput]           `prisma:"refeicoes"`
	RegistrosRefeicao   *filters.ListRelationFilter[RegistroRefeicaoWhereInput]   `prisma:"registrosRefeicao"`
	RegistrosHidratacao *filters.ListRelationFilter[RegistroHidratacaoWhereInput] `prisma:"registrosHidratacao"`
	RegistrosSono       *filters.ListRelationFilter[RegistroSonoWhereInput]       `prisma:"registrosSono"`
	LembretesSono       *filters.ListRelationFilter[LembreteSonoWhereInput]       `prisma:"lembretesSono"`
	Receitas            *filters.ListRelationFilter[ReceitaWhereInput]            `prisma:"receitas"`
	ReceitasFavoritas   *filters.ListRelationFilter[ReceitaFavoritaWhereInput]    `prisma:"receitasFavoritas"`
}

// UsuarioWhereUniqueInput identifica um único registro de Usuario
type UsuarioWhereUniqueInput struct {
	ID    *string `prisma:"id"`
	Email *string `prisma:"email"`
}

// UsuarioCreateInput são os dados de um novo registro de Usuario.
// Campos ponteiro são opcionais ou têm default.
type UsuarioCreateInput struct {
	ID                  *string    `prisma:"id" yaml:"id"`
	Nome                string     `prisma:"nome" yaml:"nome" validate:"required,max=120"`
	Email               string     `prisma:"email" yaml:"email" validate:"required,email"`
	SenhaHash           string     `prisma:"senhaHash" yaml:"senhaHash" validate:"required"`
	DataNascimento      *time.Time `prisma:"dataNascimento" yaml:"dataNascimento"`
	PesoKg              *float64   `prisma:"pesoKg" yaml:"pesoKg" validate:"omitempty,min=1,max=500"`
	AlturaCm            *int       `prisma:"alturaCm" yaml:"alturaCm" validate:"omitempty,min=30,max=300"`
	AltoContraste       *bool      `prisma:"altoContraste" yaml:"altoContraste"`
	TamanhoFonte        *int       `prisma:"tamanhoFonte" yaml:"tamanhoFonte" validate:"omitempty,min=10,max=40"`
	LeitorTela          *bool      `prisma:"leitorTela" yaml:"leitorTela"`
	NotificarHidratacao *bool      `prisma:"notificarHidratacao" yaml:"notificarHidratacao"`
	NotificarRefeicoes  *bool      `prisma:"notificarRefeicoes" yaml:"notificarRefeicoes"`
	NotificarSono       *bool      `prisma:"notificarSono" yaml:"notificarSono"`
	MetaHidratacaoMl    *int       `prisma:"metaHidratacaoMl" yaml:"metaHidratacaoMl" validate:"omitempty,min=250,max=10000"`
	MetaSonoHoras       *float64   `prisma:"metaSonoHoras" yaml:"metaSonoHoras" validate:"omitempty,min=1,max=24"`
	MetaRefeicoesDia    *int       `prisma:"metaRefeicoesDia" yaml:"metaRefeicoesDia" validate:"omitempty,min=1,max=12"`
	CriadoEm            *time.Time `prisma:"criadoEm" yaml:"criadoEm"`
}

// UsuarioUpdateInput são as alterações de um registro de Usuario.
// Campos nil ficam como estão; builder.Null grava NULL nos opcionais.
type UsuarioUpdateInput struct {
	Nome                *string                     `prisma:"nome" validate:"omitempty,max=120"`
	Email               *string                     `prisma:"email" validate:"omitempty,email"`
	SenhaHash           *string                     `prisma:"senhaHash"`
	DataNascimento      builder.Nullable[time.Time] `prisma:"dataNascimento"`
	PesoKg              builder.Nullable[float64]   `prisma:"pesoKg" validate:"omitempty,min=1,max=500"`
	AlturaCm            builder.Nullable[int]       `prisma:"alturaCm" validate:"omitempty,min=30,max=300"`
	AltoContraste       *bool                       `prisma:"altoContraste"`
	TamanhoFonte        *int                        `prisma:"tamanhoFonte" validate:"omitempty,min=10,max=40"`
	LeitorTela          *bool                       `prisma:"leitorTela"`
	NotificarHidratacao *bool                       `prisma:"notificarHidratacao"`
	NotificarRefeicoes  *bool                       `prisma:"notificarRefeicoes"`
	NotificarSono       *bool                       `prisma:"notificarSono"`
	MetaHidratacaoMl    *int                        `prisma:"metaHidratacaoMl" validate:"omitempty,min=250,max=10000"`
	MetaSonoHoras       *float64                    `prisma:"metaSonoHoras" validate:"omitempty,min=1,max=24"`
	MetaRefeicoesDia    *int                        `prisma:"metaRefeicoesDia" validate:"omitempty,min=1,max=12"`
	CriadoEm            *time.Time                  `prisma:"criadoEm"`
}
