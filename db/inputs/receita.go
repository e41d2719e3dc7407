package inputs

import (
	"time"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/filters"
)

// ReceitaWhereInput filtra registros de Receita
type ReceitaWhereInput struct {
	AND []ReceitaWhereInput `prisma:"AND"`
	OR  []ReceitaWhereInput `prisma:"OR"`
	NOT []ReceitaWhereInput `prisma:"NOT"`

	ID              *filters.StringFilter     `prisma:"id"`
	UsuarioID       *filters.StringFilter     `prisma:"usuarioId"`
	Titulo          *filters.StringFilter     `prisma:"titulo"`
	Descricao       *filters.StringFilter     `prisma:"descricao"`
	TempoPreparoMin *filters.IntFilter        `prisma:"tempoPreparoMin"`
	Porcoes         *filters.IntFilter        `prisma:"porcoes"`
	Calorias        *filters.IntFilter        `prisma:"calorias"`
	Categoria       *filters.StringFilter     `prisma:"categoria"`
	Tags            *filters.StringListFilter `prisma:"tags"`
	ImagemURL       *filters.StringFilter     `prisma:"imagemUrl"`
	CriadoEm        *filters.DateTimeFilter   `prisma:"criadoEm"`
	AtualizadoEm    *filters.DateTimeFilter   `prisma:"atualizadoEm"`

	Usuario      *filters.RelationFilter[UsuarioWhereInput]             `prisma:"usuario"`
	Ingredientes *filters.ListRelationFilter[IngredienteWhereInput]     `prisma:"ingredientes"`
	Passos       *filters.ListRelationFilter[PassoReceitaWhereInput]    `prisma:"passos"`
	Favoritos    *filters.ListRelationFilter[ReceitaFavoritaWhereInput] `prisma:"favoritos"`
}

// ReceitaWhereUniqueInput identifica um único registro de Receita
type ReceitaWhereUniqueInput struct {
	ID *string `prisma:"id"`
}

// ReceitaCreateInput são os dados de um novo registro de Receita.
// Campos ponteiro são opcionais ou têm default.
type ReceitaCreateInput struct {
	ID              *string    `prisma:"id" yaml:"id"`
	UsuarioID       string     `prisma:"usuarioId" yaml:"usuarioId" validate:"required"`
	Titulo          string     `prisma:"titulo" yaml:"titulo" validate:"required,max=200"`
	Descricao       *string    `prisma:"descricao" yaml:"descricao"`
	TempoPreparoMin *int       `prisma:"tempoPreparoMin" yaml:"tempoPreparoMin" validate:"omitempty,min=0"`
	Porcoes         *int       `prisma:"porcoes" yaml:"porcoes" validate:"omitempty,min=1"`
	Calorias        *int       `prisma:"calorias" yaml:"calorias" validate:"omitempty,min=0"`
	Categoria       *string    `prisma:"categoria" yaml:"categoria" validate:"omitempty,max=60"`
	Tags            []string   `prisma:"tags" yaml:"tags" validate:"max=20,dive,max=40"`
	ImagemURL       *string    `prisma:"imagemUrl" yaml:"imagemUrl"`
	CriadoEm        *time.Time `prisma:"criadoEm" yaml:"criadoEm"`
}

// ReceitaUpdateInput são as alterações de um registro de Receita.
// Campos nil ficam como estão; builder.Null grava NULL nos opcionais.
type ReceitaUpdateInput struct {
	UsuarioID       *string                  `prisma:"usuarioId"`
	Titulo          *string                  `prisma:"titulo" validate:"omitempty,max=200"`
	Descricao       builder.Nullable[string] `prisma:"descricao"`
	TempoPreparoMin builder.Nullable[int]    `prisma:"tempoPreparoMin" validate:"omitempty,min=0"`
	Porcoes         builder.Nullable[int]    `prisma:"porcoes" validate:"omitempty,min=1"`
	Calorias        builder.Nullable[int]    `prisma:"calorias" validate:"omitempty,min=0"`
	Categoria       builder.Nullable[string] `prisma:"categoria" validate:"omitempty,max=60"`
	Tags            []string                 `prisma:"tags" validate:"omitempty,max=20,dive,max=40"`
	ImagemURL       builder.Nullable[string] `prisma:"imagemUrl"`
	CriadoEm        *time.Time               `prisma:"criadoEm"`
}
