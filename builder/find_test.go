package builder

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosnayan/bemestar/internal/cache"
	"github.com/carlosnayan/bemestar/internal/errors"
)

const usuarioSelect = `SELECT "usuarios"."id", "usuarios"."email", "usuarios"."nome", "usuarios"."idade", "usuarios"."ativo", "usuarios"."criado_em", "usuarios"."atualizado_em" FROM "usuarios"`

var usuarioCols = []string{"id", "email", "nome", "idade", "ativo", "criado_em", "atualizado_em"}

var t0 = time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

func usuarios(e *Executor) *Delegate[tUsuario, Where, Where, map[string]interface{}, map[string]interface{}] {
	return NewDelegate[tUsuario, Where, Where, map[string]interface{}, map[string]interface{}](e, "Usuario")
}

func receitas(e *Executor) *Delegate[tReceita, Where, Where, map[string]interface{}, map[string]interface{}] {
	return NewDelegate[tReceita, Where, Where, map[string]interface{}, map[string]interface{}](e, "Receita")
}

func passos(e *Executor) *Delegate[tPasso, Where, Where, map[string]interface{}, map[string]interface{}] {
	return NewDelegate[tPasso, Where, Where, map[string]interface{}, map[string]interface{}](e, "PassoReceita")
}

func usuarioRow(rows *sqlmock.Rows, id, email, nome string, idade interface{}) *sqlmock.Rows {
	return rows.AddRow(id, email, nome, idade, true, t0, t0)
}

func TestNewDelegate_PanicsOnMismatch(t *testing.T) {
	exec, _ := newMockExecutor(t)
	assert.Panics(t, func() {
		NewDelegate[tReceita, Where, Where, Where, Where](exec, "Usuario")
	})
	assert.Panics(t, func() {
		NewDelegate[tReceita, Where, Where, Where, Where](exec, "Pessoa")
	})
}

func TestFindMany(t *testing.T) {
	exec, mock := newMockExecutor(t)

	rows := sqlmock.NewRows(usuarioCols)
	usuarioRow(rows, "u1", "ana@x.com", "Ana", int64(30))
	usuarioRow(rows, "u2", "ana.b@x.com", "Ana", nil)
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect + ` WHERE "usuarios"."nome" = $1 ORDER BY "usuarios"."criado_em" DESC, "usuarios"."id" ASC LIMIT 10 OFFSET 5`)).
		WithArgs("Ana").
		WillReturnRows(rows)

	got, err := usuarios(exec).FindMany().
		Where(Where{"nome": "Ana"}).
		OrderBy(Desc("criadoEm")).
		Take(10).
		Skip(5).
		Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].ID)
	require.NotNil(t, got[0].Idade)
	assert.Equal(t, 30, *got[0].Idade)
	assert.Nil(t, got[1].Idade)
	assert.Equal(t, t0, got[1].CriadoEm)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_WhereCallsAreANDed(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect + ` WHERE ("usuarios"."nome" = $1) AND ("usuarios"."ativo" = $2)`)).
		WithArgs("Ana", true).
		WillReturnRows(sqlmock.NewRows(usuarioCols))

	got, err := usuarios(exec).FindMany().
		Where(Where{"nome": "Ana"}).
		Where(Where{"ativo": true}).
		Exec(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_TakeZero(t *testing.T) {
	exec, mock := newMockExecutor(t)
	got, err := usuarios(exec).FindMany().Take(0).Exec(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_InvalidInput(t *testing.T) {
	exec, _ := newMockExecutor(t)
	ctx := context.Background()

	_, err := usuarios(exec).FindMany().Take(-1).Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = usuarios(exec).FindMany().Where(Where{"apelido": "x"}).Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = usuarios(exec).FindMany().Select("receitas").Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = usuarios(exec).FindMany().Include("favoritas").Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = usuarios(exec).FindMany().Distinct("cidade").Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestFindMany_Select(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "usuarios"."id", "usuarios"."nome" FROM "usuarios"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome"}).AddRow("u1", "Ana"))

	got, err := usuarios(exec).FindMany().Select("nome").Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tUsuario{ID: "u1", Nome: "Ana"}, got[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_Cursor(t *testing.T) {
	exec, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "usuarios"."nome", "usuarios"."id" FROM "usuarios" WHERE "usuarios"."id" = $1 LIMIT 1`)).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"nome", "id"}).AddRow("Bia", "u2"))

	rows := sqlmock.NewRows(usuarioCols)
	usuarioRow(rows, "u2", "bia@x.com", "Bia", nil)
	usuarioRow(rows, "u5", "bia.c@x.com", "Bia", nil)
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect +
		` WHERE (("usuarios"."nome" > $1) OR ("usuarios"."nome" = $2 AND "usuarios"."id" > $3) OR ("usuarios"."nome" = $4 AND "usuarios"."id" = $5))` +
		` ORDER BY "usuarios"."nome" ASC, "usuarios"."id" ASC LIMIT 2`)).
		WithArgs("Bia", "Bia", "u2", "Bia", "u2").
		WillReturnRows(rows)

	got, err := usuarios(exec).FindMany().
		Cursor(Where{"id": "u2"}).
		OrderBy(Asc("nome")).
		Take(2).
		Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u2", got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_CursorNotFound(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "usuarios"."id" FROM "usuarios" WHERE "usuarios"."id" = $1 LIMIT 1`)).
		WithArgs("sumiu").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := usuarios(exec).FindMany().Cursor(Where{"id": "sumiu"}).Exec(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_CursorMustBeUnique(t *testing.T) {
	exec, _ := newMockExecutor(t)
	_, err := usuarios(exec).FindMany().Cursor(Where{"nome": "Ana"}).Exec(context.Background())
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestFindMany_Distinct(t *testing.T) {
	exec, mock := newMockExecutor(t)

	rows := sqlmock.NewRows(usuarioCols)
	usuarioRow(rows, "u1", "a@x.com", "Ana", nil)
	usuarioRow(rows, "u2", "b@x.com", "Ana", nil)
	usuarioRow(rows, "u3", "c@x.com", "Bia", nil)
	usuarioRow(rows, "u4", "d@x.com", "Caio", nil)
	// sem LIMIT: skip e take valem depois da deduplicação
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect + ` ORDER BY "usuarios"."id" ASC`)).
		WillReturnRows(rows)

	got, err := usuarios(exec).FindMany().Distinct("nome").Skip(1).Take(1).Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u3", got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUnique(t *testing.T) {
	exec, mock := newMockExecutor(t)
	rows := sqlmock.NewRows(usuarioCols)
	usuarioRow(rows, "u1", "ana@x.com", "Ana", int64(41))
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect + ` WHERE "usuarios"."email" = $1 ORDER BY "usuarios"."id" ASC LIMIT 1`)).
		WithArgs("ana@x.com").
		WillReturnRows(rows)

	got, err := usuarios(exec).FindUnique(Where{"email": "ana@x.com"}).Exec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUnique_NotFound(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect + ` WHERE "usuarios"."id" = $1`)).
		WithArgs("nada").
		WillReturnRows(sqlmock.NewRows(usuarioCols))

	got, err := usuarios(exec).FindUnique(Where{"id": "nada"}).Exec(context.Background())
	assert.Nil(t, got)
	assert.True(t, errors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUnique_RequiresUniqueWhere(t *testing.T) {
	exec, _ := newMockExecutor(t)
	_, err := usuarios(exec).FindUnique(Where{"nome": "Ana"}).Exec(context.Background())
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = passos(exec).FindUnique(Where{"receitaId": "r1"}).Exec(context.Background())
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestFindFirst(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect + ` WHERE "usuarios"."idade" > $1 ORDER BY "usuarios"."idade" DESC, "usuarios"."id" ASC LIMIT 1`)).
		WithArgs(60).
		WillReturnRows(sqlmock.NewRows(usuarioCols))

	_, err := usuarios(exec).FindFirst().Where(Where{"idade": Gt(60)}).OrderBy(Desc("idade")).Exec(context.Background())
	assert.True(t, errors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_Include(t *testing.T) {
	exec, mock := newMockExecutor(t)

	rows := sqlmock.NewRows(usuarioCols)
	usuarioRow(rows, "u1", "a@x.com", "Ana", nil)
	usuarioRow(rows, "u2", "b@x.com", "Bia", nil)
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect)).WillReturnRows(rows)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "receitas"."id", "receitas"."usuario_id", "receitas"."titulo", "receitas"."calorias", "receitas"."tags" FROM "receitas" WHERE "receitas"."usuario_id" IN ($1, $2) ORDER BY "receitas"."id" ASC`)).
		WithArgs("u1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "usuario_id", "titulo", "calorias", "tags"}).
			AddRow("r1", "u1", "Bolo", int64(300), "{doce,forno}").
			AddRow("r2", "u1", "Suco", nil, "{}"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "passos_receita"."id", "passos_receita"."receita_id", "passos_receita"."ordem", "passos_receita"."descricao" FROM "passos_receita" WHERE "passos_receita"."receita_id" IN ($1, $2) ORDER BY "passos_receita"."id" ASC`)).
		WithArgs("r1", "r2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "receita_id", "ordem", "descricao"}).
			AddRow("p1", "r1", int64(1), "Misture").
			AddRow("p2", "r1", int64(2), "Asse"))

	got, err := usuarios(exec).FindMany().Include("receitas.passos").Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Len(t, got[0].Receitas, 2)
	assert.Equal(t, []string{"doce", "forno"}, got[0].Receitas[0].Tags)
	assert.Len(t, got[0].Receitas[0].Passos, 2)
	assert.NotNil(t, got[0].Receitas[1].Passos)
	assert.Empty(t, got[0].Receitas[1].Passos)

	assert.NotNil(t, got[1].Receitas)
	assert.Empty(t, got[1].Receitas)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_IncludeToOne(t *testing.T) {
	exec, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "passos_receita"."id", "passos_receita"."receita_id", "passos_receita"."ordem", "passos_receita"."descricao" FROM "passos_receita"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "receita_id", "ordem", "descricao"}).
			AddRow("p1", "r1", int64(1), "Misture").
			AddRow("p2", "r9", int64(1), "Corte"))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "receitas" WHERE "receitas"."id" IN ($1, $2)`)).
		WithArgs("r1", "r9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "usuario_id", "titulo", "calorias", "tags"}).
			AddRow("r1", "u1", "Bolo", nil, "{}"))

	got, err := passos(exec).FindMany().Include("receita").Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Receita)
	assert.Equal(t, "Bolo", got[0].Receita.Titulo)
	assert.Nil(t, got[1].Receita)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_Cache(t *testing.T) {
	exec, mock := newMockExecutor(t, WithCache(cache.New(100, time.Minute)))
	ctx := context.Background()

	rows := sqlmock.NewRows(usuarioCols)
	usuarioRow(rows, "u1", "a@x.com", "Ana", nil)
	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect + ` WHERE "usuarios"."nome" = $1`)).
		WithArgs("Ana").
		WillReturnRows(rows)

	first, err := usuarios(exec).FindMany().Where(Where{"nome": "Ana"}).Exec(ctx)
	require.NoError(t, err)

	// a segunda leitura vem do cache, sem query
	second, err := usuarios(exec).FindMany().Where(Where{"nome": "Ana"}).Exec(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, first[0].CriadoEm.Equal(second[0].CriadoEm))
	require.NoError(t, mock.ExpectationsWereMet())

	// uma escrita em receitas não invalida usuarios
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "receitas"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = receitas(exec).DeleteMany(ctx, nil)
	require.NoError(t, err)
	_, err = usuarios(exec).FindMany().Where(Where{"nome": "Ana"}).Exec(ctx)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// uma escrita em usuarios invalida
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "usuarios" SET "ativo" = $1, "atualizado_em" = $2`)).
		WithArgs(false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = usuarios(exec).UpdateMany(ctx, nil, map[string]interface{}{"ativo": false})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(usuarioSelect + ` WHERE "usuarios"."nome" = $1`)).
		WithArgs("Ana").
		WillReturnRows(sqlmock.NewRows(usuarioCols))
	third, err := usuarios(exec).FindMany().Where(Where{"nome": "Ana"}).Exec(ctx)
	require.NoError(t, err)
	assert.Empty(t, third)
	require.NoError(t, mock.ExpectationsWereMet())
}
