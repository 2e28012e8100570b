package filtering

import (
	"reflect"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/rpattn/filterql/internal/entity"
)

// Definition is the frozen result of a finalized descriptor. It never
// mutates after construction and is safe for concurrent reads.
type Definition struct {
	Name        string
	Description string
	Entity      *entity.Type
	Fields      []FieldDefinition
	AllowAnd    bool
	AllowOr     bool
	Binding     Binding
	Directives  ast.DirectiveList
}

// FieldDefinition is one finalized field of a filter input type. Nested is
// non-nil when the field filters into a sub-type of its own.
type FieldDefinition struct {
	Name              string
	Description       string
	Member            entity.Member
	Type              reflect.Type
	Nested            *Definition
	IgnoredOperations []Operation
	Directives        ast.DirectiveList
}

// Field looks up a field definition by output name.
func (d *Definition) Field(name string) (FieldDefinition, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// FieldNames returns the output names in declaration order.
func (d *Definition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}
