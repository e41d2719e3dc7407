package builder

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/errors"
)

// maxParams fica abaixo do limite de parâmetros de SQLite (32766) e PostgreSQL (65535)
const maxParams = 30000

// now é substituível nos testes
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// prepareData converte e valida os dados de escrita
func prepareData(m *Model, op string, input interface{}) (map[string]interface{}, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	data, err := DataOf(input)
	if err != nil {
		return nil, err
	}
	for name, value := range data {
		f := m.Field(name)
		if f == nil {
			if m.Relation(name) != nil {
				return nil, errors.NewInvalidInputError("escrita aninhada em '%s' não é suportada, grave a FK diretamente", name)
			}
			return nil, errors.NewInvalidInputError("campo desconhecido '%s' em %s", name, m.Name)
		}
		if value == nil && !f.Optional {
			return nil, errors.NewInvalidInputError("campo '%s' de %s não aceita null", name, m.Name)
		}
		data[name] = normalize(f, value)
	}
	return data, nil
}

func validateInput(input interface{}) error {
	v := reflect.ValueOf(input)
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return ValidateStruct(v.Interface())
}

// applyDefaults preenche no cliente os defaults dos campos omitidos
func applyDefaults(m *Model, data map[string]interface{}, at time.Time) {
	for _, f := range m.Fields {
		if _, ok := data[f.Name]; ok {
			continue
		}
		switch {
		case f.Default == DefaultUUID:
			data[f.Name] = uuid.NewString()
		case f.Default == DefaultNow, f.UpdatedAt:
			data[f.Name] = at
		case f.Default == DefaultValue:
			data[f.Name] = normalize(f, f.DefaultValue)
		case f.List:
			data[f.Name] = emptyList(f)
		}
	}
}

func emptyList(f *Field) interface{} {
	switch f.Type {
	case "Int":
		return []int64{}
	case "Float":
		return []float64{}
	case "Boolean":
		return []bool{}
	}
	return []string{}
}

func (e *Executor) beforeWrite(m *Model, op string, data map[string]interface{}) error {
	if m.BeforeWrite == nil {
		return nil
	}
	return m.BeforeWrite(op, data)
}

// beforeUpdate roda BeforeWrite para cada linha que o where alcança,
// com a linha atual mais as alterações. O que o hook mudar nos campos
// alterados volta para data.
func (e *Executor) beforeUpdate(ctx context.Context, m *Model, where Where, data map[string]interface{}) error {
	if m.BeforeWrite == nil {
		return nil
	}
	rows, err := e.findMany(ctx, m, &findArgs{where: []Where{where}}, errors.OpUpdate)
	if err != nil {
		return err
	}
	for i := 0; i < rows.Len(); i++ {
		merged := rowData(m, rows.Index(i))
		for name, value := range data {
			merged[name] = value
		}
		if err := m.BeforeWrite("update", merged); err != nil {
			return err
		}
		for name := range data {
			data[name] = merged[name]
		}
	}
	return nil
}

// rowData copia os campos escalares de uma linha para um mapa
func rowData(m *Model, item reflect.Value) map[string]interface{} {
	data := make(map[string]interface{}, len(m.Fields))
	for _, f := range m.Fields {
		data[f.Name] = deref(item.FieldByIndex(f.index).Interface())
	}
	return data
}

// create insere um registro e devolve a linha gravada
func (e *Executor) create(ctx context.Context, m *Model, input interface{}) (reflect.Value, error) {
	data, err := prepareData(m, "create", input)
	if err != nil {
		return reflect.Value{}, err
	}
	applyDefaults(m, data, now())
	if err := e.beforeWrite(m, "create", data); err != nil {
		return reflect.Value{}, err
	}
	if err := checkRequired(m, data); err != nil {
		return reflect.Value{}, err
	}

	c := newCompiler(e.dialect)
	cols, placeholders := make([]string, 0, len(data)), make([]string, 0, len(data))
	for _, f := range m.Fields {
		if value, ok := data[f.Name]; ok {
			cols = append(cols, c.quote(f.Column))
			placeholders = append(placeholders, c.arg(value))
		}
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		c.quote(m.Table), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if e.dialect.SupportsReturning() {
		item, err := e.returning(ctx, m, errors.OpCreate, query, c.args)
		if err != nil {
			return reflect.Value{}, err
		}
		e.invalidate(m)
		return item, nil
	}

	if _, err := e.exec(ctx, errors.OpCreate, query, c.args); err != nil {
		return reflect.Value{}, err
	}
	e.invalidate(m)
	return e.reselect(ctx, m, idWhere(m, data))
}

// checkRequired acusa campos obrigatórios que continuam ausentes
func checkRequired(m *Model, data map[string]interface{}) error {
	var missing []string
	for _, f := range m.Fields {
		if _, ok := data[f.Name]; !ok && !f.Optional {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return errors.NewValidationError(fmt.Sprintf("%s: campos obrigatórios ausentes: %s", m.Name, strings.Join(missing, ", ")))
	}
	return nil
}

// returning roda uma escrita com RETURNING de todas as colunas
func (e *Executor) returning(ctx context.Context, m *Model, op errors.OperationType, query string, args []interface{}) (reflect.Value, error) {
	c := newCompiler(e.dialect)
	cols := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		cols[i] = c.quote(f.Column)
	}
	query += " RETURNING " + strings.Join(cols, ", ")

	var item reflect.Value
	err := e.query(ctx, op, query, args, func(rows driver.Rows) error {
		scanned, err := scanRow(rows, m.Type, m.Fields)
		if err != nil {
			return err
		}
		if !item.IsValid() {
			item = scanned
		}
		return nil
	})
	if err != nil {
		return reflect.Value{}, err
	}
	if !item.IsValid() {
		return reflect.Value{}, errors.NewNotFoundError(m.Name)
	}
	return item, nil
}

func (e *Executor) reselect(ctx context.Context, m *Model, where Where) (reflect.Value, error) {
	return e.findUnique(ctx, m, &findArgs{where: []Where{where}})
}

func idWhere(m *Model, data map[string]interface{}) Where {
	w := Where{}
	for _, f := range m.IDFields() {
		w[f.Name] = data[f.Name]
	}
	return w
}

func idWhereOf(m *Model, item reflect.Value) Where {
	w := Where{}
	for _, f := range m.IDFields() {
		w[f.Name] = deref(item.FieldByIndex(f.index).Interface())
	}
	return w
}

// createMany insere vários registros num INSERT multi-linha por lote
func (e *Executor) createMany(ctx context.Context, m *Model, inputs []interface{}, opts ...CreateManyOption) (BatchPayload, error) {
	var o createManyOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(inputs) == 0 {
		return BatchPayload{}, nil
	}

	at := now()
	rows := make([]map[string]interface{}, len(inputs))
	present := map[string]bool{}
	for i, input := range inputs {
		data, err := prepareData(m, "create", input)
		if err != nil {
			return BatchPayload{}, fmt.Errorf("item %d: %w", i, err)
		}
		applyDefaults(m, data, at)
		if err := e.beforeWrite(m, "create", data); err != nil {
			return BatchPayload{}, fmt.Errorf("item %d: %w", i, err)
		}
		if err := checkRequired(m, data); err != nil {
			return BatchPayload{}, fmt.Errorf("item %d: %w", i, err)
		}
		for name := range data {
			present[name] = true
		}
		rows[i] = data
	}

	var fields []*Field
	for _, f := range m.Fields {
		if present[f.Name] {
			fields = append(fields, f)
		}
	}
	perBatch := max(1, maxParams/len(fields))

	run := func(x *Executor) (BatchPayload, error) {
		var total int64
		for start := 0; start < len(rows); start += perBatch {
			end := min(start+perBatch, len(rows))
			n, err := x.insertBatch(ctx, m, fields, rows[start:end], o.skipDuplicates)
			if err != nil {
				return BatchPayload{Count: total}, err
			}
			total += n
		}
		return BatchPayload{Count: total}, nil
	}

	if len(rows) <= perBatch || e.tx != nil {
		payload, err := run(e)
		if err == nil {
			e.invalidate(m)
		}
		return payload, err
	}

	var payload BatchPayload
	err := e.Transaction(ctx, func(tx *Executor) error {
		var err error
		payload, err = run(tx)
		return err
	})
	if err != nil {
		return BatchPayload{}, err
	}
	e.invalidate(m)
	return payload, nil
}

func (e *Executor) insertBatch(ctx context.Context, m *Model, fields []*Field, rows []map[string]interface{}, skipDuplicates bool) (int64, error) {
	c := newCompiler(e.dialect)
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = c.quote(f.Column)
	}
	tuples := make([]string, len(rows))
	for i, row := range rows {
		placeholders := make([]string, len(fields))
		for j, f := range fields {
			placeholders[j] = c.arg(row[f.Name])
		}
		tuples[i] = "(" + strings.Join(placeholders, ", ") + ")"
	}

	prefix, suffix := "INSERT INTO", ""
	if skipDuplicates {
		prefix, suffix = e.dialect.InsertIgnore()
	}
	query := fmt.Sprintf("%s %s (%s) VALUES %s%s",
		prefix, c.quote(m.Table), strings.Join(cols, ", "), strings.Join(tuples, ", "), suffix)
	return e.exec(ctx, errors.OpCreate, query, c.args)
}

// setClause monta o SET de um UPDATE, preenchendo @updatedAt
func (e *Executor) setClause(c *compiler, m *Model, data map[string]interface{}) (string, error) {
	at := now()
	for _, f := range m.Fields {
		if f.UpdatedAt {
			if _, ok := data[f.Name]; !ok {
				data[f.Name] = at
			}
		}
	}
	if len(data) == 0 {
		return "", errors.ErrNoFieldsToUpdate
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return fieldPos(m, names[i]) < fieldPos(m, names[j])
	})

	sets := make([]string, len(names))
	for i, name := range names {
		f := m.Field(name)
		if f.ID {
			return "", errors.NewInvalidInputError("o id de %s não pode ser alterado", m.Name)
		}
		sets[i] = c.quote(f.Column) + " = " + c.arg(data[name])
	}
	return strings.Join(sets, ", "), nil
}

func fieldPos(m *Model, name string) int {
	for i, f := range m.Fields {
		if f.Name == name {
			return i
		}
	}
	return len(m.Fields)
}

// update altera um único registro identificado por um where único
func (e *Executor) update(ctx context.Context, m *Model, where Where, input interface{}) (reflect.Value, error) {
	if !m.coversUnique(where) {
		return reflect.Value{}, errors.NewInvalidInputError("where de %s precisa cobrir um campo único: %v", m.Name, uniqueNames(m))
	}
	data, err := prepareData(m, "update", input)
	if err != nil {
		return reflect.Value{}, err
	}
	if len(data) == 0 && !hasUpdatedAt(m) {
		return e.findUnique(ctx, m, &findArgs{where: []Where{where}})
	}
	if err := e.beforeUpdate(ctx, m, where, data); err != nil {
		return reflect.Value{}, err
	}

	if e.dialect.SupportsReturning() {
		c := newCompiler(e.dialect)
		set, err := e.setClause(c, m, data)
		if err != nil {
			return reflect.Value{}, err
		}
		cond, err := c.where(m, m.Table, where)
		if err != nil {
			return reflect.Value{}, err
		}
		query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", c.quote(m.Table), set, cond)
		item, err := e.returning(ctx, m, errors.OpUpdate, query, c.args)
		if err != nil {
			return reflect.Value{}, err
		}
		e.invalidate(m)
		return item, nil
	}

	// sem RETURNING: localiza pelo where, atualiza pelo id e relê
	current, err := e.findUnique(ctx, m, &findArgs{where: []Where{where}})
	if err != nil {
		return reflect.Value{}, err
	}
	byID := idWhereOf(m, current)

	c := newCompiler(e.dialect)
	set, err := e.setClause(c, m, data)
	if err != nil {
		return reflect.Value{}, err
	}
	cond, err := c.where(m, m.Table, byID)
	if err != nil {
		return reflect.Value{}, err
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", c.quote(m.Table), set, cond)
	if _, err := e.exec(ctx, errors.OpUpdate, query, c.args); err != nil {
		return reflect.Value{}, err
	}
	e.invalidate(m)
	return e.reselect(ctx, m, byID)
}

func hasUpdatedAt(m *Model) bool {
	for _, f := range m.Fields {
		if f.UpdatedAt {
			return true
		}
	}
	return false
}

// updateMany altera todos os registros que casam com o where
func (e *Executor) updateMany(ctx context.Context, m *Model, where Where, input interface{}) (BatchPayload, error) {
	data, err := prepareData(m, "update", input)
	if err != nil {
		return BatchPayload{}, err
	}
	if err := e.beforeUpdate(ctx, m, where, data); err != nil {
		return BatchPayload{}, err
	}

	c := newCompiler(e.dialect)
	set, err := e.setClause(c, m, data)
	if err != nil {
		return BatchPayload{}, err
	}
	cond, err := c.where(m, m.Table, where)
	if err != nil {
		return BatchPayload{}, err
	}
	query := fmt.Sprintf("UPDATE %s SET %s", c.quote(m.Table), set)
	if cond != "" {
		query += " WHERE " + cond
	}
	n, err := e.exec(ctx, errors.OpUpdate, query, c.args)
	if err != nil {
		return BatchPayload{}, err
	}
	e.invalidate(m)
	return BatchPayload{Count: n}, nil
}

// upsert procura pelo where único; atualiza se achar, cria se não
func (e *Executor) upsert(ctx context.Context, m *Model, where Where, create, update interface{}) (reflect.Value, error) {
	if !m.coversUnique(where) {
		return reflect.Value{}, errors.NewInvalidInputError("where de %s precisa cobrir um campo único: %v", m.Name, uniqueNames(m))
	}

	_, err := e.findUnique(ctx, m, &findArgs{where: []Where{where}})
	switch {
	case err == nil:
		return e.update(ctx, m, where, update)
	case !errors.IsNotFound(err):
		return reflect.Value{}, err
	}

	item, err := e.create(ctx, m, create)
	if errors.IsUniqueConstraint(err) && e.tx == nil {
		// outro cliente criou o registro entre a busca e o insert
		return e.update(ctx, m, where, update)
	}
	return item, err
}

// delete remove um registro e devolve a linha removida
func (e *Executor) delete(ctx context.Context, m *Model, where Where) (reflect.Value, error) {
	if !m.coversUnique(where) {
		return reflect.Value{}, errors.NewInvalidInputError("where de %s precisa cobrir um campo único: %v", m.Name, uniqueNames(m))
	}

	if e.dialect.SupportsReturning() {
		c := newCompiler(e.dialect)
		cond, err := c.where(m, m.Table, where)
		if err != nil {
			return reflect.Value{}, err
		}
		query := fmt.Sprintf("DELETE FROM %s WHERE %s", c.quote(m.Table), cond)
		item, err := e.returning(ctx, m, errors.OpDelete, query, c.args)
		if err != nil {
			return reflect.Value{}, err
		}
		e.invalidate(m)
		return item, nil
	}

	current, err := e.findUnique(ctx, m, &findArgs{where: []Where{where}})
	if err != nil {
		return reflect.Value{}, err
	}
	c := newCompiler(e.dialect)
	cond, err := c.where(m, m.Table, idWhereOf(m, current))
	if err != nil {
		return reflect.Value{}, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", c.quote(m.Table), cond)
	n, err := e.exec(ctx, errors.OpDelete, query, c.args)
	if err != nil {
		return reflect.Value{}, err
	}
	if n == 0 {
		return reflect.Value{}, errors.NewNotFoundError(m.Name)
	}
	e.invalidate(m)
	return current, nil
}

// deleteMany remove todos os registros que casam com o where
func (e *Executor) deleteMany(ctx context.Context, m *Model, where Where) (BatchPayload, error) {
	c := newCompiler(e.dialect)
	cond, err := c.where(m, m.Table, where)
	if err != nil {
		return BatchPayload{}, err
	}
	query := "DELETE FROM " + c.quote(m.Table)
	if cond != "" {
		query += " WHERE " + cond
	}
	n, err := e.exec(ctx, errors.OpDelete, query, c.args)
	if err != nil {
		return BatchPayload{}, err
	}
	e.invalidate(m)
	return BatchPayload{Count: n}, nil
}

// count conta os registros que casam com o where
func (e *Executor) count(ctx context.Context, m *Model, where Where) (int64, error) {
	c := newCompiler(e.dialect)
	cond, err := c.where(m, m.Table, where)
	if err != nil {
		return 0, err
	}
	query := "SELECT COUNT(*) FROM " + c.quote(m.Table)
	if cond != "" {
		query += " WHERE " + cond
	}
	var n int64
	err = e.query(ctx, errors.OpAggregate, query, c.args, func(rows driver.Rows) error {
		return rows.Scan(&n)
	})
	return n, err
}
