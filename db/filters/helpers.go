package filters

import "time"

// Atalhos para os filtros mais comuns:
//
//	inputs.ReceitaWhereInput{
//	    Titulo:   filters.ContainsInsensitive("bolo"),
//	    Calorias: filters.IntLte(400),
//	    Tags:     filters.Has("vegano"),
//	}

func Equals(s string) *StringFilter {
	return &StringFilter{Equals: &s}
}

func NotEquals(s string) *StringFilter {
	return &StringFilter{Not: &s}
}

func In(values ...string) *StringFilter {
	if values == nil {
		values = []string{}
	}
	return &StringFilter{In: values}
}

func Contains(s string) *StringFilter {
	return &StringFilter{Contains: &s}
}

func ContainsInsensitive(s string) *StringFilter {
	return &StringFilter{Contains: &s, Mode: ModeInsensitive}
}

func StartsWith(s string) *StringFilter {
	return &StringFilter{StartsWith: &s}
}

func EndsWith(s string) *StringFilter {
	return &StringFilter{EndsWith: &s}
}

// StringIsNull casa campos String opcionais sem valor
func StringIsNull() *StringFilter {
	return &StringFilter{IsNull: ptr(true)}
}

// StringIsSet casa campos String opcionais preenchidos
func StringIsSet() *StringFilter {
	return &StringFilter{IsNull: ptr(false)}
}

func IntEquals(n int) *IntFilter {
	return &IntFilter{Equals: &n}
}

func IntIn(values ...int) *IntFilter {
	if values == nil {
		values = []int{}
	}
	return &IntFilter{In: values}
}

func IntGt(n int) *IntFilter {
	return &IntFilter{Gt: &n}
}

func IntGte(n int) *IntFilter {
	return &IntFilter{Gte: &n}
}

func IntLt(n int) *IntFilter {
	return &IntFilter{Lt: &n}
}

func IntLte(n int) *IntFilter {
	return &IntFilter{Lte: &n}
}

// IntBetween casa min <= n <= max
func IntBetween(min, max int) *IntFilter {
	return &IntFilter{Gte: &min, Lte: &max}
}

func IntIsNull() *IntFilter {
	return &IntFilter{IsNull: ptr(true)}
}

func FloatGte(n float64) *FloatFilter {
	return &FloatFilter{Gte: &n}
}

func FloatLte(n float64) *FloatFilter {
	return &FloatFilter{Lte: &n}
}

func FloatBetween(min, max float64) *FloatFilter {
	return &FloatFilter{Gte: &min, Lte: &max}
}

func BoolEquals(b bool) *BoolFilter {
	return &BoolFilter{Equals: &b}
}

func After(t time.Time) *DateTimeFilter {
	return &DateTimeFilter{Gt: &t}
}

func Before(t time.Time) *DateTimeFilter {
	return &DateTimeFilter{Lt: &t}
}

// Between casa from <= t < to, o formato usual para "um dia" ou "uma semana"
func Between(from, to time.Time) *DateTimeFilter {
	return &DateTimeFilter{Gte: &from, Lt: &to}
}

func DateTimeIsNull() *DateTimeFilter {
	return &DateTimeFilter{IsNull: ptr(true)}
}

func Has(s string) *StringListFilter {
	return &StringListFilter{Has: &s}
}

func HasEvery(values ...string) *StringListFilter {
	if values == nil {
		values = []string{}
	}
	return &StringListFilter{HasEvery: values}
}

func HasSome(values ...string) *StringListFilter {
	if values == nil {
		values = []string{}
	}
	return &StringListFilter{HasSome: values}
}

func HasInt(n int64) *IntListFilter {
	return &IntListFilter{Has: &n}
}

func HasSomeInt(values ...int64) *IntListFilter {
	if values == nil {
		values = []int64{}
	}
	return &IntListFilter{HasSome: values}
}

// Is filtra uma relação to-one
func Is[W any](where W) *RelationFilter[W] {
	return &RelationFilter[W]{Is: &where}
}

// IsNull casa registros sem a relação to-one opcional
func IsNull[W any]() *RelationFilter[W] {
	return &RelationFilter[W]{IsNull: ptr(true)}
}

func Some[W any](where W) *ListRelationFilter[W] {
	return &ListRelationFilter[W]{Some: &where}
}

func Every[W any](where W) *ListRelationFilter[W] {
	return &ListRelationFilter[W]{Every: &where}
}

func None[W any](where W) *ListRelationFilter[W] {
	return &ListRelationFilter[W]{None: &where}
}

func ptr[T any](v T) *T {
	return &v
}
