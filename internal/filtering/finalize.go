package filtering

import (
	"fmt"
	"reflect"
)

// finalize runs the descriptor to its frozen state: discovery under implicit
// binding, earliest-wins merge per member, marker removal, nested factory
// invocation in field declaration order, and name resolution. Repeated calls
// return the already-frozen definition.
func (c *core) finalize() (*Definition, error) {
	if c.def != nil {
		return c.def, nil
	}
	if c.err != nil {
		return nil, c.err
	}
	c.state = stateFinalizing

	if c.binding == BindImplicit {
		c.discoverImplicitFields()
	}

	seenNames := make(map[string]struct{}, len(c.fields))
	fields := make([]FieldDefinition, 0, len(c.fields))
	for _, fd := range c.fields {
		if fd.marker || !fd.bound {
			continue
		}
		name := fd.name
		if name == "" {
			name = c.convention.FieldName(fd.member)
		}
		if _, suppressed := c.ignoredNames[name]; suppressed && !fd.explicit {
			continue
		}
		// Duplicate output names collapse to the earliest declaration.
		if _, dup := seenNames[name]; dup {
			continue
		}
		seenNames[name] = struct{}{}

		field := FieldDefinition{
			Name:              name,
			Description:       fd.description,
			Member:            fd.member,
			Type:              fd.member.Type,
			IgnoredOperations: mergeOperations(c.ignoredOps, fd.ignoredOps),
			Directives:        fd.directives,
		}
		if fd.configure != nil {
			nested, err := c.buildNested(fd, name)
			if err != nil {
				// Record the failure so repeated finalize calls return it
				// without re-running nested factories.
				c.recordErr(err)
				return nil, err
			}
			field.Nested = nested
		}
		fields = append(fields, field)
	}

	name := c.name
	if name == "" {
		name = c.convention.TypeName(c.entity)
	}
	c.def = &Definition{
		Name:        name,
		Description: c.description,
		Entity:      c.entity,
		Fields:      fields,
		AllowAnd:    c.allowAnd,
		AllowOr:     c.allowOr,
		Binding:     c.binding,
		Directives:  c.directives,
	}
	c.state = stateFrozen
	return c.def, nil
}

// buildNested constructs, configures and finalizes the filter type for a
// nested member. The fresh descriptor is scoped to the member's element type
// and starts with disabled combinators and no inherited name.
func (c *core) buildNested(fd *FieldDescriptor, fieldName string) (*Definition, error) {
	target := fd.member.Type
	for target.Kind() == reflect.Pointer || target.Kind() == reflect.Slice || target.Kind() == reflect.Array {
		target = target.Elem()
	}
	et, err := c.provider.TypeOf(target)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", ErrUnresolvableNestedType, fieldName, err)
	}

	nc := newCore(et, c.provider, c.convention)
	nc.binding = fd.nestedBinding
	nc.allowAnd = false
	nc.allowOr = false

	fd.configure(&NestedDescriptor{c: nc})

	nested, err := nc.finalize()
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", fieldName, err)
	}
	if len(nested.Fields) == 0 {
		return nil, fmt.Errorf("%w: field %q: %s declares no fields", ErrUnresolvableNestedType, fieldName, nested.Name)
	}
	return nested, nil
}
