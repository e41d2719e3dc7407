package builder

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosnayan/bemestar/internal/errors"
)

const receitaInner = `SELECT "receitas"."id", "receitas"."usuario_id", "receitas"."titulo", "receitas"."calorias", "receitas"."tags" FROM "receitas"`

func TestAggregate(t *testing.T) {
	exec, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COUNT("agg"."calorias"), CAST(AVG("agg"."calorias") AS DOUBLE PRECISION), CAST(SUM("agg"."calorias") AS DOUBLE PRECISION), MIN("agg"."titulo"), MAX("agg"."calorias") FROM (` +
		receitaInner + ` WHERE "receitas"."usuario_id" = $1) AS "agg"`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"c1", "c2", "avg", "sum", "min", "max"}).
			AddRow(int64(3), int64(2), 250.0, 500.0, "Bolo", int64(300)))

	res, err := receitas(exec).Aggregate().
		Where(Where{"usuarioId": "u1"}).
		CountAll().
		Count("calorias").
		Avg("calorias").
		Sum("calorias").
		Min("titulo").
		Max("calorias").
		Exec(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.Count["_all"])
	assert.Equal(t, int64(2), res.Count["calorias"])
	require.NotNil(t, res.Avg["calorias"])
	assert.Equal(t, 250.0, *res.Avg["calorias"])
	assert.Equal(t, 500.0, *res.Sum["calorias"])
	assert.Equal(t, "Bolo", res.Min["titulo"])
	assert.Equal(t, 300, res.Max["calorias"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregate_NullsAndWindow(t *testing.T) {
	exec, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT CAST(AVG("agg"."calorias") AS DOUBLE PRECISION), MAX("agg"."calorias") FROM (` +
		receitaInner + ` ORDER BY "receitas"."calorias" DESC, "receitas"."id" ASC LIMIT 5) AS "agg"`)).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "max"}).AddRow(nil, nil))

	res, err := receitas(exec).Aggregate().
		OrderBy(Desc("calorias")).
		Take(5).
		Avg("calorias").
		Max("calorias").
		Exec(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res.Avg["calorias"])
	assert.Contains(t, res.Max, "calorias")
	assert.Nil(t, res.Max["calorias"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregate_Errors(t *testing.T) {
	exec, _ := newMockExecutor(t)
	ctx := context.Background()

	_, err := receitas(exec).Aggregate().Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = receitas(exec).Aggregate().Sum("titulo").Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = receitas(exec).Aggregate().Max("tags").Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = usuarios(exec).Aggregate().Min("ativo").Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = usuarios(exec).Aggregate().Count("inexistente").Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestGroupBy(t *testing.T) {
	exec, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "receitas"."usuario_id", COUNT(*), CAST(AVG("receitas"."calorias") AS DOUBLE PRECISION) FROM "receitas" WHERE "receitas"."calorias" IS NOT NULL GROUP BY "receitas"."usuario_id" HAVING COUNT(*) >= $1 ORDER BY "receitas"."usuario_id" ASC`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"usuario_id", "count", "avg"}).
			AddRow("u1", int64(3), 310.5).
			AddRow("u2", int64(2), 120.0))

	groups, err := receitas(exec).GroupBy("usuarioId").
		Where(Where{"calorias": IsNotNull()}).
		CountAll().
		Avg("calorias").
		Having(HavingCount("_all", Gte(2))).
		Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "u1", groups[0].Keys["usuarioId"])
	assert.Equal(t, int64(3), groups[0].Count["_all"])
	assert.Equal(t, 310.5, *groups[0].Avg["calorias"])
	assert.Equal(t, "u2", groups[1].Keys["usuarioId"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupBy_OrderAndWindow(t *testing.T) {
	exec, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "passos_receita"."receita_id", "passos_receita"."ordem", MAX("passos_receita"."descricao") FROM "passos_receita" GROUP BY "passos_receita"."receita_id", "passos_receita"."ordem" HAVING MAX("passos_receita"."descricao") IN ($1, $2) ORDER BY "passos_receita"."ordem" DESC LIMIT 10 OFFSET 10`)).
		WithArgs("Asse", "Sirva").
		WillReturnRows(sqlmock.NewRows([]string{"receita_id", "ordem", "max"}))

	groups, err := passos(exec).GroupBy("receitaId", "ordem").
		Max("descricao").
		Having(HavingMax("descricao", In("Asse", "Sirva"))).
		OrderBy(Desc("ordem")).
		Take(10).
		Skip(10).
		Exec(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupBy_Errors(t *testing.T) {
	exec, _ := newMockExecutor(t)
	ctx := context.Background()

	_, err := receitas(exec).GroupBy().Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = receitas(exec).GroupBy("tags").Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = receitas(exec).GroupBy("usuarioId").OrderBy(Asc("titulo")).Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = receitas(exec).GroupBy("usuarioId").Having(HavingSum("calorias", Contains("1"))).Exec(ctx)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
