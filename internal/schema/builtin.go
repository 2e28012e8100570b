package schema

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/rpattn/filterql/internal/filtering"
)

// scalarClass groups member types that share one operation filter input.
type scalarClass struct {
	// TypeName is the operation input emitted for the class, e.g.
	// StringOperationFilterInput.
	TypeName string
	// Scalar is the GraphQL scalar operation arguments are typed with.
	Scalar string
	// Operations lists the capabilities offered, in output order.
	Operations []filtering.Operation
}

var (
	equalityOps = []filtering.Operation{
		filtering.OpEquals, filtering.OpNotEquals,
		filtering.OpIn, filtering.OpNotIn,
	}
	stringOps = []filtering.Operation{
		filtering.OpEquals, filtering.OpNotEquals,
		filtering.OpIn, filtering.OpNotIn,
		filtering.OpContains, filtering.OpStartsWith, filtering.OpEndsWith,
	}
	comparableOps = []filtering.Operation{
		filtering.OpEquals, filtering.OpNotEquals,
		filtering.OpIn, filtering.OpNotIn,
		filtering.OpGreaterThan, filtering.OpGreaterThanOrEquals,
		filtering.OpLowerThan, filtering.OpLowerThanOrEquals,
	}

	stringClass    = scalarClass{TypeName: "StringOperationFilterInput", Scalar: "String", Operations: stringOps}
	intClass       = scalarClass{TypeName: "IntOperationFilterInput", Scalar: "Int", Operations: comparableOps}
	floatClass     = scalarClass{TypeName: "FloatOperationFilterInput", Scalar: "Float", Operations: comparableOps}
	booleanClass   = scalarClass{TypeName: "BooleanOperationFilterInput", Scalar: "Boolean", Operations: equalityOps}
	idClass        = scalarClass{TypeName: "IdOperationFilterInput", Scalar: "ID", Operations: equalityOps}
	timestampClass = scalarClass{TypeName: "TimestampOperationFilterInput", Scalar: "String", Operations: comparableOps}
)

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
)

// classify maps a member type onto its scalar class, unwrapping pointers,
// slices and arrays first. Types with no better fit filter on their string
// form.
func classify(t reflect.Type) scalarClass {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	switch t {
	case timeType:
		return timestampClass
	case uuidType:
		return idClass
	}
	switch t.Kind() {
	case reflect.String:
		return stringClass
	case reflect.Bool:
		return booleanClass
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return intClass
	case reflect.Float32, reflect.Float64:
		return floatClass
	default:
		return stringClass
	}
}

// without returns the class's operations minus the ignored set.
func (c scalarClass) without(ignored []filtering.Operation) []filtering.Operation {
	if len(ignored) == 0 {
		return c.Operations
	}
	drop := make(map[filtering.Operation]struct{}, len(ignored))
	for _, op := range ignored {
		drop[op] = struct{}{}
	}
	kept := make([]filtering.Operation, 0, len(c.Operations))
	for _, op := range c.Operations {
		if _, ok := drop[op]; ok {
			continue
		}
		kept = append(kept, op)
	}
	return kept
}
