package filtering

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/rpattn/filterql/internal/entity"
)

// FieldDescriptor is the mutable builder for one filterable field. Instances
// are obtained from a type descriptor's Field/FieldWith calls; repeated
// declarations of the same member return the same instance, so configuration
// layers rather than overwrites.
type FieldDescriptor struct {
	member   entity.Member
	bound    bool // false only for detached descriptors handed out on error
	explicit bool // declared by the caller, wins over discovery and name suppression
	marker   bool // suppressing marker: feeds the handled-set, never the output

	name          string
	description   string
	ignoredOps    []Operation
	directives    ast.DirectiveList
	configure     func(*NestedDescriptor)
	nestedBinding Binding
}

// Name overrides the field's output name.
func (f *FieldDescriptor) Name(name string) *FieldDescriptor {
	f.name = name
	return f
}

// Description sets the field's schema description.
func (f *FieldDescriptor) Description(description string) *FieldDescriptor {
	f.description = description
	return f
}

// IgnoreOperation disables one comparison capability on this field.
func (f *FieldDescriptor) IgnoreOperation(op Operation) *FieldDescriptor {
	f.ignoredOps = append(f.ignoredOps, op)
	return f
}

// Directive attaches an opaque directive literal to the field.
func (f *FieldDescriptor) Directive(name string, args ...*ast.Argument) *FieldDescriptor {
	f.directives = append(f.directives, &ast.Directive{Name: name, Arguments: args})
	return f
}

// NestedBinding sets the binding behavior the nested descriptor starts with
// before the configuration callback runs. Nested types default to explicit
// binding.
func (f *FieldDescriptor) NestedBinding(b Binding) *FieldDescriptor {
	f.nestedBinding = b
	return f
}
