package builder

// Where represents a map of field conditions for queries, similar to Prisma's where clause.
// Each key is a field or relation name, and the value can be either:
//   - A direct value for equality comparison
//   - A WhereOperator for complex comparisons
//   - A []WhereOperator, combined with AND
//   - nil for IS NULL checks
//
// The keys AND, OR and NOT combine nested Where values.
//
// Example:
//
//	where := builder.Where{
//	    "email":            "ana@example.com",
//	    "metaHidratacaoMl": builder.Gte(2000),
//	    "pesoKg":           nil,
//	    "receitas":         builder.Some(builder.Where{"categoria": "doce"}),
//	}
type Where map[string]interface{}

// And combines conditions with AND
func And(conditions ...Where) Where {
	return Where{"AND": conditions}
}

// Or combines conditions with OR
func Or(conditions ...Where) Where {
	return Where{"OR": conditions}
}

// Not negates the AND of the given conditions
func Not(conditions ...Where) Where {
	return Where{"NOT": conditions}
}

// WhereOperator represents a conditional operator with its value
type WhereOperator struct {
	op          string
	value       interface{}
	insensitive bool
}

// Comparison operators for building WHERE clauses

// Equals creates an equality operator (=)
func Equals(value interface{}) WhereOperator {
	return WhereOperator{op: "=", value: value}
}

// NotEquals creates a not equal operator (!=)
func NotEquals(value interface{}) WhereOperator {
	return WhereOperator{op: "!=", value: value}
}

// Gt creates a greater than operator (>)
func Gt(value interface{}) WhereOperator {
	return WhereOperator{op: ">", value: value}
}

// Gte creates a greater than or equal operator (>=)
func Gte(value interface{}) WhereOperator {
	return WhereOperator{op: ">=", value: value}
}

// Lt creates a less than operator (<)
func Lt(value interface{}) WhereOperator {
	return WhereOperator{op: "<", value: value}
}

// Lte creates a less than or equal operator (<=)
func Lte(value interface{}) WhereOperator {
	return WhereOperator{op: "<=", value: value}
}

// Like creates a LIKE operator with a raw pattern (case-sensitive pattern matching)
func Like(value string) WhereOperator {
	return WhereOperator{op: "LIKE", value: value}
}

// ILike creates a case-insensitive LIKE with a raw pattern
func ILike(value string) WhereOperator {
	return WhereOperator{op: "LIKE", value: value, insensitive: true}
}

// In creates an IN operator for matching any value in a list
func In(values ...interface{}) WhereOperator {
	return WhereOperator{op: "IN", value: values}
}

// NotIn creates a NOT IN operator
func NotIn(values ...interface{}) WhereOperator {
	return WhereOperator{op: "NOT IN", value: values}
}

// IsNull creates an IS NULL operator
func IsNull() WhereOperator {
	return WhereOperator{op: "IS NULL", value: nil}
}

// IsNotNull creates an IS NOT NULL operator
func IsNotNull() WhereOperator {
	return WhereOperator{op: "IS NOT NULL", value: nil}
}

// Contains matches values containing the text. % and _ are matched literally.
func Contains(value string) WhereOperator {
	return WhereOperator{op: "CONTAINS", value: value}
}

// StartsWith matches values starting with the text
func StartsWith(value string) WhereOperator {
	return WhereOperator{op: "STARTS_WITH", value: value}
}

// EndsWith matches values ending with the text
func EndsWith(value string) WhereOperator {
	return WhereOperator{op: "ENDS_WITH", value: value}
}

// ContainsInsensitive is Contains ignoring case
func ContainsInsensitive(value string) WhereOperator {
	return WhereOperator{op: "CONTAINS", value: value, insensitive: true}
}

// StartsWithInsensitive is StartsWith ignoring case
func StartsWithInsensitive(value string) WhereOperator {
	return WhereOperator{op: "STARTS_WITH", value: value, insensitive: true}
}

// EndsWithInsensitive is EndsWith ignoring case
func EndsWithInsensitive(value string) WhereOperator {
	return WhereOperator{op: "ENDS_WITH", value: value, insensitive: true}
}

// Has checks if a list field contains a value
func Has(value interface{}) WhereOperator {
	return WhereOperator{op: "HAS", value: value}
}

// HasEvery checks if a list field contains all values
func HasEvery(values ...interface{}) WhereOperator {
	return WhereOperator{op: "HAS_EVERY", value: values}
}

// HasSome checks if a list field contains any value
func HasSome(values ...interface{}) WhereOperator {
	return WhereOperator{op: "HAS_SOME", value: values}
}

// IsEmpty checks if a list field is empty (true) or not (false)
func IsEmpty(empty bool) WhereOperator {
	return WhereOperator{op: "IS_EMPTY", value: empty}
}

// Relation filters. The value is a Where or a generated WhereInput for the related model.

// Some matches records with at least one related record matching the filter
func Some(where interface{}) WhereOperator {
	return WhereOperator{op: "SOME", value: where}
}

// Every matches records whose related records all match the filter
func Every(where interface{}) WhereOperator {
	return WhereOperator{op: "EVERY", value: where}
}

// None matches records with no related record matching the filter
func None(where interface{}) WhereOperator {
	return WhereOperator{op: "NONE", value: where}
}

// Is matches a to-one relation. Is(nil) matches records without the relation.
func Is(where interface{}) WhereOperator {
	return WhereOperator{op: "IS", value: where}
}

// IsNot negates Is. IsNot(nil) matches records that have the relation.
func IsNot(where interface{}) WhereOperator {
	return WhereOperator{op: "IS_NOT", value: where}
}

// GetOp returns the operator string (exported for internal use)
func (wo WhereOperator) GetOp() string {
	return wo.op
}

// GetValue returns the operator value (exported for internal use)
func (wo WhereOperator) GetValue() interface{} {
	return wo.value
}

// Insensitive reports whether the operator ignores case
func (wo WhereOperator) Insensitive() bool {
	return wo.insensitive
}

// Filter is implemented by the generated filter types (StringFilter, IntFilter...).
// An empty result means the filter imposes no condition.
type Filter interface {
	WhereOperators() []WhereOperator
}
