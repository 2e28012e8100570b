// Package filtering builds GraphQL filter input type definitions from Go
// entity types. A descriptor collects explicit field configuration, fills the
// gaps by reflection under implicit binding, and finalizes into an immutable
// Definition consumed by the schema compiler.
package filtering

import (
	"fmt"
	"reflect"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/rpattn/filterql/internal/entity"
	"github.com/rpattn/filterql/internal/naming"
)

// Binding controls how a descriptor treats entity members it was not told
// about.
type Binding int

const (
	// BindImplicit auto-includes every unhandled member at finalize time.
	BindImplicit Binding = iota
	// BindExplicit includes only declared fields and skips discovery.
	BindExplicit
)

type descriptorState int

const (
	stateOpen descriptorState = iota
	stateFinalizing
	stateFrozen
)

// core carries the builder state shared by the typed and nested descriptor
// surfaces.
type core struct {
	provider   *entity.Provider
	convention naming.Convention
	entity     *entity.Type

	name        string
	description string
	binding     Binding
	allowAnd    bool
	allowOr     bool
	directives  ast.DirectiveList
	ignoredOps  []Operation

	fields       []*FieldDescriptor
	byMember     map[entity.Key]*FieldDescriptor
	ignoredNames map[string]struct{}

	state descriptorState
	err   error
	def   *Definition
}

func newCore(et *entity.Type, provider *entity.Provider, convention naming.Convention) *core {
	return &core{
		provider:     provider,
		convention:   convention,
		entity:       et,
		binding:      BindImplicit,
		allowAnd:     true,
		allowOr:      true,
		byMember:     make(map[entity.Key]*FieldDescriptor),
		ignoredNames: make(map[string]struct{}),
	}
}

func (c *core) open() bool {
	return c.state == stateOpen
}

func (c *core) recordErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// declareField returns the existing descriptor for m, or creates one and
// appends it to the field list. Declaring a member suppressed earlier turns
// the marker back into a positive field.
func (c *core) declareField(m entity.Member) *FieldDescriptor {
	if fd, ok := c.byMember[m.Key()]; ok {
		fd.explicit = true
		fd.marker = false
		return fd
	}
	fd := &FieldDescriptor{member: m, bound: true, explicit: true, nestedBinding: BindExplicit}
	c.fields = append(c.fields, fd)
	c.byMember[m.Key()] = fd
	return fd
}

// ignoreMember inserts a suppressing marker for m. An already-declared
// explicit field is never overridden by suppression.
func (c *core) ignoreMember(m entity.Member) {
	if fd, ok := c.byMember[m.Key()]; ok {
		if !fd.explicit {
			fd.marker = true
		}
		return
	}
	fd := &FieldDescriptor{member: m, bound: true, marker: true}
	c.fields = append(c.fields, fd)
	c.byMember[m.Key()] = fd
}

// detachedField is handed out when a declaration cannot be honored, so
// chained configuration stays harmless while the recorded error surfaces at
// finalize time.
func detachedField() *FieldDescriptor {
	return &FieldDescriptor{nestedBinding: BindExplicit}
}

// Option configures descriptor construction.
type Option func(*options)

type options struct {
	provider   *entity.Provider
	convention naming.Convention
}

// WithProvider overrides the entity metadata provider.
func WithProvider(p *entity.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithConvention overrides the naming convention.
func WithConvention(c naming.Convention) Option {
	return func(o *options) { o.convention = c }
}

// Descriptor is the aggregate builder for a filter input type over the
// entity type T. All configuration methods return the receiver (or a child
// field builder) for chaining; construction faults are recorded and surfaced
// by Finalize.
type Descriptor[T any] struct {
	c *core
}

// New creates an open descriptor for T with implicit binding and both
// logical combinators enabled.
func New[T any](opts ...Option) *Descriptor[T] {
	o := options{provider: entity.DefaultProvider(), convention: naming.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	et, err := o.provider.TypeOf(reflect.TypeFor[T]())
	if err != nil {
		et = &entity.Type{Name: reflect.TypeFor[T]().String()}
	}
	c := newCore(et, o.provider, o.convention)
	if err != nil {
		c.recordErr(fmt.Errorf("filter descriptor: %w", err))
	}
	return &Descriptor[T]{c: c}
}

// Name sets the output type name. Unset names resolve from the entity type
// name at finalize time.
func (d *Descriptor[T]) Name(name string) *Descriptor[T] {
	if d.c.open() {
		d.c.name = name
	}
	return d
}

// Description sets the type's schema description.
func (d *Descriptor[T]) Description(description string) *Descriptor[T] {
	if d.c.open() {
		d.c.description = description
	}
	return d
}

// BindFieldsImplicitly enables discovery of unhandled members.
func (d *Descriptor[T]) BindFieldsImplicitly() *Descriptor[T] {
	if d.c.open() {
		d.c.binding = BindImplicit
	}
	return d
}

// BindFieldsExplicitly restricts the type to declared fields.
func (d *Descriptor[T]) BindFieldsExplicitly() *Descriptor[T] {
	if d.c.open() {
		d.c.binding = BindExplicit
	}
	return d
}

// AllowAnd toggles the `and` combinator on the type.
func (d *Descriptor[T]) AllowAnd(allow bool) *Descriptor[T] {
	if d.c.open() {
		d.c.allowAnd = allow
	}
	return d
}

// AllowOr toggles the `or` combinator on the type.
func (d *Descriptor[T]) AllowOr(allow bool) *Descriptor[T] {
	if d.c.open() {
		d.c.allowOr = allow
	}
	return d
}

// Directive attaches an opaque directive literal to the type.
func (d *Descriptor[T]) Directive(name string, args ...*ast.Argument) *Descriptor[T] {
	if d.c.open() {
		d.c.directives = append(d.c.directives, &ast.Directive{Name: name, Arguments: args})
	}
	return d
}

// Field declares a filterable field for the property the selector addresses.
// Repeated declarations of the same member return the same builder.
func (d *Descriptor[T]) Field(sel func(*T) any) *FieldDescriptor {
	if !d.c.open() {
		return detachedField()
	}
	m, err := resolveSelector(d.c.provider, sel)
	if err != nil {
		d.c.recordErr(err)
		return detachedField()
	}
	return d.c.declareField(m)
}

// FieldWith declares a field whose type is itself a filter type, built by the
// configure callback at finalize time. The nested descriptor starts with
// explicit binding, disabled combinators and no name.
func (d *Descriptor[T]) FieldWith(sel func(*T) any, configure func(*NestedDescriptor)) *FieldDescriptor {
	fd := d.Field(sel)
	fd.configure = configure
	return fd
}

// Ignore suppresses the property the selector addresses, so discovery treats
// it as handled. It never overrides an explicitly declared field.
func (d *Descriptor[T]) Ignore(sel func(*T) any) *Descriptor[T] {
	if !d.c.open() {
		return d
	}
	m, err := resolveSelector(d.c.provider, sel)
	if err != nil {
		d.c.recordErr(err)
		return d
	}
	d.c.ignoreMember(m)
	return d
}

// IgnoreName suppresses any implicitly discovered field whose resolved output
// name matches. Explicit fields are unaffected.
func (d *Descriptor[T]) IgnoreName(name string) *Descriptor[T] {
	if d.c.open() {
		d.c.ignoredNames[name] = struct{}{}
	}
	return d
}

// IgnoreOperation disables one comparison capability on every field of the
// type.
func (d *Descriptor[T]) IgnoreOperation(op Operation) *Descriptor[T] {
	if d.c.open() {
		d.c.ignoredOps = append(d.c.ignoredOps, op)
	}
	return d
}

// Finalize runs discovery, merges and deduplicates fields, builds nested
// types and freezes the result. The descriptor accepts no further
// configuration afterwards; repeated calls return the same definition.
func (d *Descriptor[T]) Finalize() (*Definition, error) {
	return d.c.finalize()
}

// NestedDescriptor configures a filter type for a member whose value is
// itself filterable. Fields are declared by checked member name, validated
// against the nested entity's member list.
type NestedDescriptor struct {
	c *core
}

// Name sets the nested type's output name. Nested types inherit no name, so
// a caller-supplied one stays distinguishable from unset.
func (n *NestedDescriptor) Name(name string) *NestedDescriptor {
	n.c.name = name
	return n
}

// Description sets the nested type's schema description.
func (n *NestedDescriptor) Description(description string) *NestedDescriptor {
	n.c.description = description
	return n
}

// BindFieldsImplicitly enables member discovery on the nested type.
func (n *NestedDescriptor) BindFieldsImplicitly() *NestedDescriptor {
	n.c.binding = BindImplicit
	return n
}

// BindFieldsExplicitly restricts the nested type to declared fields.
func (n *NestedDescriptor) BindFieldsExplicitly() *NestedDescriptor {
	n.c.binding = BindExplicit
	return n
}

// AllowAnd re-enables the `and` combinator, disabled by default on nested
// types.
func (n *NestedDescriptor) AllowAnd(allow bool) *NestedDescriptor {
	n.c.allowAnd = allow
	return n
}

// AllowOr re-enables the `or` combinator, disabled by default on nested
// types.
func (n *NestedDescriptor) AllowOr(allow bool) *NestedDescriptor {
	n.c.allowOr = allow
	return n
}

// Directive attaches an opaque directive literal to the nested type.
func (n *NestedDescriptor) Directive(name string, args ...*ast.Argument) *NestedDescriptor {
	n.c.directives = append(n.c.directives, &ast.Directive{Name: name, Arguments: args})
	return n
}

// Field declares a field for the named member of the nested entity.
func (n *NestedDescriptor) Field(memberName string) *FieldDescriptor {
	m, ok := n.c.entity.Member(memberName)
	if !ok {
		n.c.recordErr(fmt.Errorf("%w: %s has no member %q", ErrInvalidSelectorShape, n.c.entity.Name, memberName))
		return detachedField()
	}
	return n.c.declareField(m)
}

// FieldWith declares a named member as a further nested filter type.
func (n *NestedDescriptor) FieldWith(memberName string, configure func(*NestedDescriptor)) *FieldDescriptor {
	fd := n.Field(memberName)
	fd.configure = configure
	return fd
}

// Ignore suppresses the named member.
func (n *NestedDescriptor) Ignore(memberName string) *NestedDescriptor {
	m, ok := n.c.entity.Member(memberName)
	if !ok {
		n.c.recordErr(fmt.Errorf("%w: %s has no member %q", ErrInvalidSelectorShape, n.c.entity.Name, memberName))
		return n
	}
	n.c.ignoreMember(m)
	return n
}

// IgnoreName suppresses an implicitly discovered field by output name.
func (n *NestedDescriptor) IgnoreName(name string) *NestedDescriptor {
	n.c.ignoredNames[name] = struct{}{}
	return n
}

// IgnoreOperation disables one comparison capability on every field of the
// nested type.
func (n *NestedDescriptor) IgnoreOperation(op Operation) *NestedDescriptor {
	n.c.ignoredOps = append(n.c.ignoredOps, op)
	return n
}
