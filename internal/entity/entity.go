package entity

import "reflect"

// Member describes one readable, data-carrying property of an entity type.
type Member struct {
	// DeclaringType is the struct type the field is declared on. For fields
	// promoted from an embedded struct, this is the embedded type.
	DeclaringType reflect.Type
	// Name is the Go field name.
	Name string
	// Type is the declared field type, pointers included.
	Type reflect.Type
	// Index addresses the field within the outer struct, in the form
	// accepted by reflect.Value.FieldByIndex.
	Index []int
	// Optional reports whether the field is pointer-typed.
	Optional bool
	// TagName holds a name override from the `graphql` struct tag, or "".
	TagName string
}

// Key identifies a member for deduplication purposes.
type Key struct {
	DeclaringType reflect.Type
	Name          string
}

// Key returns the member's identity: declaring type plus field name.
func (m Member) Key() Key {
	return Key{DeclaringType: m.DeclaringType, Name: m.Name}
}

// Type is a read-only description of an entity's filterable members, in
// declaration order.
type Type struct {
	Name    string
	GoType  reflect.Type
	Members []Member
}

// Member looks up a member by its Go field name.
func (t *Type) Member(name string) (Member, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}
