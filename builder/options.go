package builder

import (
	"fmt"
	"strings"
)

// OrderBy defines sorting for a single field
type OrderBy struct {
	// Field name to sort by
	Field string

	// Order direction: "ASC" or "DESC"
	Order string
}

// Asc orders by field ascending
func Asc(field string) OrderBy {
	return OrderBy{Field: field, Order: "ASC"}
}

// Desc orders by field descending
func Desc(field string) OrderBy {
	return OrderBy{Field: field, Order: "DESC"}
}

func (o OrderBy) direction() (string, error) {
	switch strings.ToUpper(o.Order) {
	case "", "ASC":
		return "ASC", nil
	case "DESC":
		return "DESC", nil
	}
	return "", fmt.Errorf("direção de ordenação inválida '%s' para '%s'", o.Order, o.Field)
}

// Ptr returns a pointer to v. Handy for optional fields in generated inputs.
func Ptr[T any](v T) *T {
	return &v
}

// BatchPayload represents the result of batch operations (CreateMany, UpdateMany, DeleteMany)
type BatchPayload struct {
	// Count is the number of records affected
	Count int64
}

// CreateManyOption configures CreateMany
type CreateManyOption func(*createManyOptions)

type createManyOptions struct {
	skipDuplicates bool
}

// SkipDuplicates ignores rows that violate a unique constraint
func SkipDuplicates() CreateManyOption {
	return func(o *createManyOptions) {
		o.skipDuplicates = true
	}
}

// Nullable is an update value that can also set a column to NULL.
// The zero value leaves the column unchanged.
type Nullable[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns a Nullable that writes v
func Set[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, set: true}
}

// Null returns a Nullable that writes NULL
func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true, null: true}
}

// Get returns the value and whether it is set and not null
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.set && !n.null
}

func (n Nullable[T]) nullable() (interface{}, bool) {
	if !n.set {
		return nil, false
	}
	if n.null {
		return nil, true
	}
	return n.value, true
}

type nullableValue interface {
	nullable() (interface{}, bool)
}
