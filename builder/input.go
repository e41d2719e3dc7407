package builder

import (
	"fmt"
	"reflect"

	"github.com/carlosnayan/bemestar/internal/errors"
)

// WhereOf converte um input tipado em Where. Aceita Where, map, structs com
// tag `prisma` (ponteiros para struct também) e nil.
//
// Nas structs:
//   - campos nil são ignorados
//   - campos que implementam Filter viram operadores
//   - ponteiros para escalares viram igualdade
//   - AND, OR e NOT recebem slices de inputs do mesmo tipo
//   - a opção `compound` achata uma chave única composta
func WhereOf(input interface{}) (Where, error) {
	switch in := input.(type) {
	case nil:
		return nil, nil
	case Where:
		return in, nil
	case map[string]interface{}:
		return Where(in), nil
	}

	v := reflect.ValueOf(input)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.NewInvalidInputError("filtro do tipo %T não é suportado", input)
	}

	where := Where{}
	if err := collectWhere(v, where); err != nil {
		return nil, err
	}
	return where, nil
}

func collectWhere(v reflect.Value, where Where) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts := parseTag(sf.Tag.Get("prisma"))
		if name == "" || name == "-" {
			continue
		}
		fv := v.Field(i)
		if isNilValue(fv) {
			continue
		}

		switch {
		case name == "AND" || name == "OR" || name == "NOT":
			list, err := whereList(fv)
			if err != nil {
				return err
			}
			if list != nil {
				where[name] = list
			}
		case opts["compound"]:
			inner := fv
			for inner.Kind() == reflect.Ptr {
				inner = inner.Elem()
			}
			if inner.Kind() != reflect.Struct {
				return errors.NewInvalidInputError("chave composta '%s' precisa ser uma struct", name)
			}
			if err := collectWhere(inner, where); err != nil {
				return err
			}
		default:
			cond, ok := conditionOf(fv.Interface())
			if ok {
				where[name] = cond
			}
		}
	}
	return nil
}

// conditionOf traduz o valor de um campo de WhereInput
func conditionOf(value interface{}) (interface{}, bool) {
	switch c := value.(type) {
	case Filter:
		ops := c.WhereOperators()
		switch len(ops) {
		case 0:
			return nil, false
		case 1:
			return ops[0], true
		}
		return ops, true
	case WhereOperator, []WhereOperator:
		return c, true
	}
	return deref(value), true
}

func whereList(v reflect.Value) ([]Where, error) {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		w, err := WhereOf(v.Interface())
		if err != nil {
			return nil, err
		}
		return []Where{w}, nil
	}
	if v.Kind() != reflect.Slice {
		return nil, errors.NewInvalidInputError("AND/OR/NOT esperam uma lista, recebeu %s", v.Kind())
	}
	list := make([]Where, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		w, err := WhereOf(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, nil
}

// DataOf converte um input de escrita (CreateInput/UpdateInput) em mapa
// campo -> valor. Ponteiros nil e Nullable vazios ficam de fora;
// Null() vira nil.
func DataOf(input interface{}) (map[string]interface{}, error) {
	switch in := input.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		data := make(map[string]interface{}, len(in))
		for k, v := range in {
			data[k] = deref(v)
		}
		return data, nil
	}

	v := reflect.ValueOf(input)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return map[string]interface{}{}, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.NewInvalidInputError("dados do tipo %T não são suportados", input)
	}

	t := v.Type()
	data := make(map[string]interface{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _ := parseTag(sf.Tag.Get("prisma"))
		if name == "" || name == "-" {
			continue
		}
		fv := v.Field(i)
		if n, ok := fv.Interface().(nullableValue); ok {
			if value, set := n.nullable(); set {
				data[name] = value
			}
			continue
		}
		if fv.Kind() == reflect.Ptr && fv.IsNil() {
			continue
		}
		if fv.Kind() == reflect.Slice && fv.IsNil() {
			continue
		}
		data[name] = deref(fv.Interface())
	}
	return data, nil
}

// deref segue ponteiros até o valor; ponteiro nil vira nil
func deref(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Ptr {
		return value
	}
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func isNilPointer(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}

// fieldValues lê de uma struct de model os valores dos campos pedidos
func fieldValues(m *Model, item reflect.Value, names []string) ([]interface{}, error) {
	values := make([]interface{}, len(names))
	for i, name := range names {
		f := m.Field(name)
		if f == nil {
			return nil, fmt.Errorf("model '%s' não tem o campo '%s'", m.Name, name)
		}
		values[i] = deref(item.FieldByIndex(f.index).Interface())
	}
	return values, nil
}
