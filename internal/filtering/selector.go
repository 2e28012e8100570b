package filtering

import (
	"fmt"
	"reflect"

	"github.com/rpattn/filterql/internal/entity"
)

// resolveSelector maps a typed selector onto the entity member it addresses.
// The selector must return the address of a property of the probe passed to
// it (`func(b *Book) any { return &b.Title }`); pointer-typed properties may
// also be selected through their value (`return b.Author`). Anything else
// fails with ErrInvalidSelectorShape.
func resolveSelector[T any](provider *entity.Provider, sel func(*T) any) (entity.Member, error) {
	et, err := provider.TypeOf(reflect.TypeFor[T]())
	if err != nil {
		return entity.Member{}, fmt.Errorf("%w: %v", ErrInvalidSelectorShape, err)
	}
	if sel == nil {
		return entity.Member{}, fmt.Errorf("%w: nil selector for %s", ErrInvalidSelectorShape, et.Name)
	}

	probe := new(T)
	root := reflect.ValueOf(probe).Elem()

	// Allocate pointer-typed members so a selector reaching through an
	// optional wrapper still yields an identifiable pointer.
	for _, m := range et.Members {
		if m.Optional {
			root.FieldByIndex(m.Index).Set(reflect.New(m.Type.Elem()))
		}
	}

	out, err := callSelector(probe, sel, et.Name)
	if err != nil {
		return entity.Member{}, err
	}
	if out == nil {
		return entity.Member{}, fmt.Errorf("%w: selector for %s returned nil", ErrInvalidSelectorShape, et.Name)
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return entity.Member{}, fmt.Errorf("%w: selector for %s returned %s, want a property address", ErrInvalidSelectorShape, et.Name, rv.Type())
	}
	target := rv.Pointer()

	// Address-of match first: &probe.Field.
	for _, m := range et.Members {
		f := root.FieldByIndex(m.Index)
		if f.Addr().Pointer() == target && rv.Type() == reflect.PointerTo(m.Type) {
			return m, nil
		}
	}
	// Value match for optional members: probe.Field where Field is a pointer.
	for _, m := range et.Members {
		if !m.Optional {
			continue
		}
		f := root.FieldByIndex(m.Index)
		if f.Pointer() == target && rv.Type() == m.Type {
			return m, nil
		}
	}
	return entity.Member{}, fmt.Errorf("%w: %s does not address a property of %s", ErrInvalidSelectorShape, rv.Type(), et.Name)
}

func callSelector[T any](probe *T, sel func(*T) any, entityName string) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: selector for %s panicked: %v", ErrInvalidSelectorShape, entityName, r)
		}
	}()
	return sel(probe), nil
}
