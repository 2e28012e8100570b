package filtering

import "errors"

var (
	// ErrInvalidSelectorShape is reported when a selector does not address a
	// property of the entity type directly. Computed values, indexing, nested
	// property chains and calls all fall in this category.
	ErrInvalidSelectorShape = errors.New("selector is not a direct property access")

	// ErrUnresolvableNestedType is reported at finalize time when a nested
	// filter type cannot be built, typically because its member type is not a
	// struct or the nested configuration declares no fields under explicit
	// binding. It aborts the whole schema build.
	ErrUnresolvableNestedType = errors.New("nested filter type is empty or invalid")
)
