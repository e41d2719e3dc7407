package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/filters"
	"github.com/carlosnayan/bemestar/db/inputs"
	"github.com/carlosnayan/bemestar/internal/errors"
)

func TestSeed_ExampleFile(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	counts, err := Seed(ctx, c, filepath.Join("..", "prisma", "seed.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []SeedCount{
		{Model: "Usuario", Count: 2},
		{Model: "Refeicao", Count: 2},
		{Model: "RegistroRefeicao", Count: 1},
		{Model: "RegistroHidratacao", Count: 2},
		{Model: "RegistroSono", Count: 1},
		{Model: "LembreteSono", Count: 1},
		{Model: "Receita", Count: 1},
		{Model: "Ingrediente", Count: 2},
		{Model: "PassoReceita", Count: 2},
		{Model: "ReceitaFavorita", Count: 1},
	}, counts)

	receita, err := c.Receita.FindFirst().
		Where(inputs.ReceitaWhereInput{Tags: filters.Has("rapido")}).
		Include("ingredientes", "favoritos").
		Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Overnight oats", receita.Titulo)
	assert.Equal(t, []string{"vegetariano", "rapido", "sem acucar"}, receita.Tags)
	assert.Len(t, receita.Ingredientes, 2)
	assert.Len(t, receita.Favoritos, 1)

	ana, err := c.Usuario.FindUnique(inputs.UsuarioWhereUniqueInput{Email: builder.Ptr("ana@example.com")}).Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2500, ana.MetaHidratacaoMl)
	assert.Equal(t, 7.5, ana.MetaSonoHoras)
}

func TestSeed_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	data, err := ParseSeed(strings.NewReader(`
usuarios:
  - nome: Ana
    email: ana@example.com
    senhaHash: x
receitas:
  - usuarioId: ninguem
    titulo: Órfã
`))
	require.NoError(t, err)

	_, err = data.Apply(ctx, c)
	require.ErrorIs(t, err, errors.ErrForeignKeyConstraint)
	assert.Contains(t, err.Error(), "Receita")

	n, err := c.Usuario.Count(ctx, inputs.UsuarioWhereInput{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestParseSeed(t *testing.T) {
	data, err := ParseSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, data.Usuarios)

	_, err = ParseSeed(strings.NewReader("usuarios:\n  - nome: Ana\n    apelido: Aninha\n"))
	assert.Error(t, err)

	_, err = ParseSeed(strings.NewReader("pets: []\n"))
	assert.Error(t, err)
}
