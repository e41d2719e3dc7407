package builder

import (
	"context"
	"fmt"
	"reflect"

	"github.com/carlosnayan/bemestar/internal/errors"
)

// Delegate expõe as operações de um model. T é a struct do model, W o
// WhereInput, U o WhereUniqueInput, C o CreateInput e D o UpdateInput.
type Delegate[T, W, U, C, D any] struct {
	exec  *Executor
	model *Model
}

// NewDelegate cria o delegate do model name. Entra em pânico se o model
// não existir no schema ou não corresponder a T, o que só acontece com
// código gerado desatualizado.
func NewDelegate[T, W, U, C, D any](exec *Executor, name string) *Delegate[T, W, U, C, D] {
	m := exec.schema.Model(name)
	if m == nil {
		panic(fmt.Sprintf("builder: model '%s' não está no schema", name))
	}
	if m.Type != reflect.TypeOf((*T)(nil)).Elem() {
		panic(fmt.Sprintf("builder: model '%s' usa %s, não %T", name, m.Type, *new(T)))
	}
	return &Delegate[T, W, U, C, D]{exec: exec, model: m}
}

// Model retorna os metadados do model
func (d *Delegate[T, W, U, C, D]) Model() *Model {
	return d.model
}

// FindUnique busca um registro por um campo único (ou chave composta)
func (d *Delegate[T, W, U, C, D]) FindUnique(where U) *FindUniqueQuery[T] {
	q := &FindUniqueQuery[T]{exec: d.exec, model: d.model}
	q.args.addWhere(where)
	return q
}

// FindFirst busca o primeiro registro que casa com os filtros
func (d *Delegate[T, W, U, C, D]) FindFirst() *FindFirstQuery[T, W, U] {
	return &FindFirstQuery[T, W, U]{exec: d.exec, model: d.model}
}

// FindMany busca registros
func (d *Delegate[T, W, U, C, D]) FindMany() *FindManyQuery[T, W, U] {
	return &FindManyQuery[T, W, U]{exec: d.exec, model: d.model}
}

// Create insere um registro
func (d *Delegate[T, W, U, C, D]) Create(ctx context.Context, data C) (*T, error) {
	item, err := d.exec.create(ctx, d.model, data)
	return itemOf[T](item, err)
}

// CreateMany insere vários registros
func (d *Delegate[T, W, U, C, D]) CreateMany(ctx context.Context, data []C, opts ...CreateManyOption) (BatchPayload, error) {
	inputs := make([]interface{}, len(data))
	for i := range data {
		inputs[i] = data[i]
	}
	return d.exec.createMany(ctx, d.model, inputs, opts...)
}

// Update altera um registro identificado por where
func (d *Delegate[T, W, U, C, D]) Update(ctx context.Context, where U, data D) (*T, error) {
	w, err := WhereOf(where)
	if err != nil {
		return nil, err
	}
	item, err := d.exec.update(ctx, d.model, w, data)
	return itemOf[T](item, err)
}

// UpdateMany altera todos os registros que casam com where
func (d *Delegate[T, W, U, C, D]) UpdateMany(ctx context.Context, where W, data D) (BatchPayload, error) {
	w, err := WhereOf(where)
	if err != nil {
		return BatchPayload{}, err
	}
	return d.exec.updateMany(ctx, d.model, w, data)
}

// Upsert atualiza o registro de where ou cria um novo com create
func (d *Delegate[T, W, U, C, D]) Upsert(ctx context.Context, where U, create C, update D) (*T, error) {
	w, err := WhereOf(where)
	if err != nil {
		return nil, err
	}
	item, err := d.exec.upsert(ctx, d.model, w, create, update)
	return itemOf[T](item, err)
}

// Delete remove um registro e o devolve
func (d *Delegate[T, W, U, C, D]) Delete(ctx context.Context, where U) (*T, error) {
	w, err := WhereOf(where)
	if err != nil {
		return nil, err
	}
	item, err := d.exec.delete(ctx, d.model, w)
	return itemOf[T](item, err)
}

// DeleteMany remove todos os registros que casam com where
func (d *Delegate[T, W, U, C, D]) DeleteMany(ctx context.Context, where W) (BatchPayload, error) {
	w, err := WhereOf(where)
	if err != nil {
		return BatchPayload{}, err
	}
	return d.exec.deleteMany(ctx, d.model, w)
}

// Count conta os registros que casam com where
func (d *Delegate[T, W, U, C, D]) Count(ctx context.Context, where W) (int64, error) {
	w, err := WhereOf(where)
	if err != nil {
		return 0, err
	}
	return d.exec.count(ctx, d.model, w)
}

// Aggregate inicia uma agregação
func (d *Delegate[T, W, U, C, D]) Aggregate() *AggregateQuery[W] {
	return &AggregateQuery[W]{exec: d.exec, model: d.model}
}

// GroupBy inicia um agrupamento pelos campos em by
func (d *Delegate[T, W, U, C, D]) GroupBy(by ...string) *GroupByQuery[W] {
	return &GroupByQuery[W]{exec: d.exec, model: d.model, by: by}
}

func itemOf[T any](item reflect.Value, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	out := item.Interface().(T)
	return &out, nil
}

// FindUniqueQuery é a consulta fluente de FindUnique
type FindUniqueQuery[T any] struct {
	exec  *Executor
	model *Model
	args  findArgs
}

// Select restringe os campos lidos
func (q *FindUniqueQuery[T]) Select(fields ...string) *FindUniqueQuery[T] {
	q.args.selects = append(q.args.selects, fields...)
	return q
}

// Include carrega relações, aceitando caminhos como "receitas.passos"
func (q *FindUniqueQuery[T]) Include(paths ...string) *FindUniqueQuery[T] {
	q.args.includes = append(q.args.includes, paths...)
	return q
}

// Exec executa a consulta. Retorna ErrNotFound quando não há registro.
func (q *FindUniqueQuery[T]) Exec(ctx context.Context) (*T, error) {
	item, err := q.exec.findUnique(ctx, q.model, &q.args)
	return itemOf[T](item, err)
}

// FindFirstQuery é a consulta fluente de FindFirst
type FindFirstQuery[T, W, U any] struct {
	exec  *Executor
	model *Model
	args  findArgs
}

// Where adiciona filtros; chamadas repetidas combinam com AND
func (q *FindFirstQuery[T, W, U]) Where(where W) *FindFirstQuery[T, W, U] {
	q.args.addWhere(where)
	return q
}

// OrderBy define a ordenação
func (q *FindFirstQuery[T, W, U]) OrderBy(orders ...OrderBy) *FindFirstQuery[T, W, U] {
	q.args.orderBy = append(q.args.orderBy, orders...)
	return q
}

// Skip pula n registros
func (q *FindFirstQuery[T, W, U]) Skip(n int) *FindFirstQuery[T, W, U] {
	q.args.skip = &n
	return q
}

// Cursor começa a busca no registro indicado, inclusive
func (q *FindFirstQuery[T, W, U]) Cursor(cursor U) *FindFirstQuery[T, W, U] {
	w, err := WhereOf(cursor)
	if err != nil {
		q.args.setErr(err)
	}
	q.args.cursor = w
	return q
}

// Select restringe os campos lidos
func (q *FindFirstQuery[T, W, U]) Select(fields ...string) *FindFirstQuery[T, W, U] {
	q.args.selects = append(q.args.selects, fields...)
	return q
}

// Include carrega relações
func (q *FindFirstQuery[T, W, U]) Include(paths ...string) *FindFirstQuery[T, W, U] {
	q.args.includes = append(q.args.includes, paths...)
	return q
}

// Exec executa a consulta. Retorna ErrNotFound quando nada casa.
func (q *FindFirstQuery[T, W, U]) Exec(ctx context.Context) (*T, error) {
	one := 1
	q.args.take = &one
	items, err := q.exec.findMany(ctx, q.model, &q.args, errors.OpFindFirst)
	if err != nil {
		return nil, err
	}
	if items.Len() == 0 {
		return nil, errors.NewNotFoundError(q.model.Name)
	}
	return itemOf[T](items.Index(0), nil)
}

// FindManyQuery é a consulta fluente de FindMany
type FindManyQuery[T, W, U any] struct {
	exec  *Executor
	model *Model
	args  findArgs
}

// Where adiciona filtros; chamadas repetidas combinam com AND
func (q *FindManyQuery[T, W, U]) Where(where W) *FindManyQuery[T, W, U] {
	q.args.addWhere(where)
	return q
}

// OrderBy define a ordenação
func (q *FindManyQuery[T, W, U]) OrderBy(orders ...OrderBy) *FindManyQuery[T, W, U] {
	q.args.orderBy = append(q.args.orderBy, orders...)
	return q
}

// Take limita a quantidade de registros
func (q *FindManyQuery[T, W, U]) Take(n int) *FindManyQuery[T, W, U] {
	q.args.take = &n
	return q
}

// Skip pula n registros
func (q *FindManyQuery[T, W, U]) Skip(n int) *FindManyQuery[T, W, U] {
	q.args.skip = &n
	return q
}

// Cursor começa a página no registro indicado, inclusive
func (q *FindManyQuery[T, W, U]) Cursor(cursor U) *FindManyQuery[T, W, U] {
	w, err := WhereOf(cursor)
	if err != nil {
		q.args.setErr(err)
	}
	q.args.cursor = w
	return q
}

// Distinct mantém só o primeiro registro de cada combinação dos campos
func (q *FindManyQuery[T, W, U]) Distinct(fields ...string) *FindManyQuery[T, W, U] {
	q.args.distinct = append(q.args.distinct, fields...)
	return q
}

// Select restringe os campos lidos
func (q *FindManyQuery[T, W, U]) Select(fields ...string) *FindManyQuery[T, W, U] {
	q.args.selects = append(q.args.selects, fields...)
	return q
}

// Include carrega relações
func (q *FindManyQuery[T, W, U]) Include(paths ...string) *FindManyQuery[T, W, U] {
	q.args.includes = append(q.args.includes, paths...)
	return q
}

// Exec executa a consulta. Sem resultados, devolve slice vazio.
func (q *FindManyQuery[T, W, U]) Exec(ctx context.Context) ([]T, error) {
	items, err := q.exec.findMany(ctx, q.model, &q.args, errors.OpFindMany)
	if err != nil {
		return nil, err
	}
	return items.Interface().([]T), nil
}

// AggregateQuery é a consulta fluente de Aggregate
type AggregateQuery[W any] struct {
	exec  *Executor
	model *Model
	args  findArgs
	spec  aggSpec
}

// Where adiciona filtros
func (q *AggregateQuery[W]) Where(where W) *AggregateQuery[W] {
	q.args.addWhere(where)
	return q
}

// OrderBy ordena as linhas antes de Take/Skip
func (q *AggregateQuery[W]) OrderBy(orders ...OrderBy) *AggregateQuery[W] {
	q.args.orderBy = append(q.args.orderBy, orders...)
	return q
}

// Take agrega só as n primeiras linhas
func (q *AggregateQuery[W]) Take(n int) *AggregateQuery[W] {
	q.args.take = &n
	return q
}

// Skip pula n linhas antes de agregar
func (q *AggregateQuery[W]) Skip(n int) *AggregateQuery[W] {
	q.args.skip = &n
	return q
}

// CountAll pede COUNT(*), em Count["_all"]
func (q *AggregateQuery[W]) CountAll() *AggregateQuery[W] {
	q.spec.add(aggCount, "_all")
	return q
}

// Count pede a contagem de valores não nulos dos campos
func (q *AggregateQuery[W]) Count(fields ...string) *AggregateQuery[W] {
	q.spec.add(aggCount, fields...)
	return q
}

// Sum pede a soma dos campos numéricos
func (q *AggregateQuery[W]) Sum(fields ...string) *AggregateQuery[W] {
	q.spec.add(aggSum, fields...)
	return q
}

// Avg pede a média dos campos numéricos
func (q *AggregateQuery[W]) Avg(fields ...string) *AggregateQuery[W] {
	q.spec.add(aggAvg, fields...)
	return q
}

// Min pede o menor valor dos campos
func (q *AggregateQuery[W]) Min(fields ...string) *AggregateQuery[W] {
	q.spec.add(aggMin, fields...)
	return q
}

// Max pede o maior valor dos campos
func (q *AggregateQuery[W]) Max(fields ...string) *AggregateQuery[W] {
	q.spec.add(aggMax, fields...)
	return q
}

// Exec executa a agregação
func (q *AggregateQuery[W]) Exec(ctx context.Context) (*AggregateResult, error) {
	return q.exec.aggregate(ctx, q.model, &q.args, &q.spec)
}

// GroupByQuery é a consulta fluente de GroupBy
type GroupByQuery[W any] struct {
	exec   *Executor
	model  *Model
	by     []string
	args   findArgs
	spec   aggSpec
	having []Having
}

// Where filtra as linhas antes de agrupar
func (q *GroupByQuery[W]) Where(where W) *GroupByQuery[W] {
	q.args.addWhere(where)
	return q
}

// Having filtra os grupos pelas agregações
func (q *GroupByQuery[W]) Having(conditions ...Having) *GroupByQuery[W] {
	q.having = append(q.having, conditions...)
	return q
}

// OrderBy ordena os grupos pelos campos agrupados
func (q *GroupByQuery[W]) OrderBy(orders ...OrderBy) *GroupByQuery[W] {
	q.args.orderBy = append(q.args.orderBy, orders...)
	return q
}

// Take limita a quantidade de grupos
func (q *GroupByQuery[W]) Take(n int) *GroupByQuery[W] {
	q.args.take = &n
	return q
}

// Skip pula n grupos
func (q *GroupByQuery[W]) Skip(n int) *GroupByQuery[W] {
	q.args.skip = &n
	return q
}

// CountAll pede COUNT(*) por grupo
func (q *GroupByQuery[W]) CountAll() *GroupByQuery[W] {
	q.spec.add(aggCount, "_all")
	return q
}

// Count pede a contagem de valores não nulos por grupo
func (q *GroupByQuery[W]) Count(fields ...string) *GroupByQuery[W] {
	q.spec.add(aggCount, fields...)
	return q
}

// Sum pede a soma por grupo
func (q *GroupByQuery[W]) Sum(fields ...string) *GroupByQuery[W] {
	q.spec.add(aggSum, fields...)
	return q
}

// Avg pede a média por grupo
func (q *GroupByQuery[W]) Avg(fields ...string) *GroupByQuery[W] {
	q.spec.add(aggAvg, fields...)
	return q
}

// Min pede o menor valor por grupo
func (q *GroupByQuery[W]) Min(fields ...string) *GroupByQuery[W] {
	q.spec.add(aggMin, fields...)
	return q
}

// Max pede o maior valor por grupo
func (q *GroupByQuery[W]) Max(fields ...string) *GroupByQuery[W] {
	q.spec.add(aggMax, fields...)
	return q
}

// Exec executa o agrupamento
func (q *GroupByQuery[W]) Exec(ctx context.Context) ([]GroupByResult, error) {
	return q.exec.groupBy(ctx, q.model, q.by, &q.args, &q.spec, q.having)
}
