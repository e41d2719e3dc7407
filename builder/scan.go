package builder

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/carlosnayan/bemestar/internal/driver"
)

// SQLite devolve DATETIME como texto quando a coluna não carrega o tipo
// declarado (RETURNING, MIN/MAX); estes são os formatos aceitos
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// formato de time.Time.String(), usado por alguns drivers
	if i := strings.Index(s, " m="); i > 0 {
		s = s[:i]
	}
	if t, err := time.Parse("2006-01-02 15:04:05.999999999 -0700 MST", s); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data/hora em formato desconhecido: %q", s)
}

// timeScanner lê DATETIME vindo como time.Time, texto ou NULL
type timeScanner struct {
	dest  *time.Time
	valid bool
}

func (s *timeScanner) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		s.valid = false
		return nil
	case time.Time:
		*s.dest, s.valid = v, true
		return nil
	case string:
		t, err := parseTime(v)
		if err != nil {
			return err
		}
		*s.dest, s.valid = t, true
		return nil
	case []byte:
		t, err := parseTime(string(v))
		if err != nil {
			return err
		}
		*s.dest, s.valid = t, true
		return nil
	}
	return fmt.Errorf("não é possível ler %T como data/hora", src)
}

// nullTimeScanner escreve em **time.Time, deixando nil para NULL
type nullTimeScanner struct {
	dest **time.Time
}

func (s nullTimeScanner) Scan(src interface{}) error {
	var t time.Time
	inner := &timeScanner{dest: &t}
	if err := inner.Scan(src); err != nil {
		return err
	}
	if inner.valid {
		*s.dest = &t
	} else {
		*s.dest = nil
	}
	return nil
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	timePtrType = reflect.TypeOf(&time.Time{})
)

// scanDest devolve o destino de Scan para o campo f da struct item
func scanDest(item reflect.Value, f *Field) interface{} {
	fv := item.FieldByIndex(f.index)
	switch fv.Type() {
	case timeType:
		return &timeScanner{dest: fv.Addr().Interface().(*time.Time)}
	case timePtrType:
		return nullTimeScanner{dest: fv.Addr().Interface().(**time.Time)}
	}
	return fv.Addr().Interface()
}

// scanRow lê a linha atual numa nova struct elemType
func scanRow(rows driver.Rows, elemType reflect.Type, fields []*Field) (reflect.Value, error) {
	item := reflect.New(elemType).Elem()
	dest := make([]interface{}, len(fields))
	for i, f := range fields {
		dest[i] = scanDest(item, f)
	}
	if err := rows.Scan(dest...); err != nil {
		return reflect.Value{}, err
	}
	return item, nil
}

// holder guarda um valor escalar lido fora de uma struct (agregações,
// chaves de groupBy, valores de cursor)
type holder struct {
	dest  interface{}
	value func() interface{}
}

func newHolder(f *Field) holder {
	switch f.Type {
	case "Int":
		var v *int64
		return holder{dest: &v, value: func() interface{} {
			if v == nil {
				return nil
			}
			return int(*v)
		}}
	case "Float":
		var v *float64
		return holder{dest: &v, value: func() interface{} { return derefOrNil(v) }}
	case "Boolean":
		var v *bool
		return holder{dest: &v, value: func() interface{} { return derefOrNil(v) }}
	case "DateTime":
		var v *time.Time
		return holder{dest: nullTimeScanner{dest: &v}, value: func() interface{} { return derefOrNil(v) }}
	}
	var v *string
	return holder{dest: &v, value: func() interface{} { return derefOrNil(v) }}
}

func derefOrNil[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
