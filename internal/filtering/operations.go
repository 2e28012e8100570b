package filtering

// Operation identifies one comparison capability offered on a filter field.
// The identifiers mirror the predicate translator's contract; this layer
// treats them as opaque beyond set membership.
type Operation string

const (
	OpEquals              Operation = "eq"
	OpNotEquals           Operation = "neq"
	OpIn                  Operation = "in"
	OpNotIn               Operation = "nin"
	OpContains            Operation = "contains"
	OpStartsWith          Operation = "startsWith"
	OpEndsWith            Operation = "endsWith"
	OpGreaterThan         Operation = "gt"
	OpGreaterThanOrEquals Operation = "gte"
	OpLowerThan           Operation = "lt"
	OpLowerThanOrEquals   Operation = "lte"
	OpAnd                 Operation = "and"
	OpOr                  Operation = "or"
)

// mergeOperations combines type-level and field-level ignored operations,
// preserving first-occurrence order.
func mergeOperations(typeLevel, fieldLevel []Operation) []Operation {
	if len(typeLevel) == 0 && len(fieldLevel) == 0 {
		return nil
	}
	seen := make(map[Operation]struct{}, len(typeLevel)+len(fieldLevel))
	merged := make([]Operation, 0, len(typeLevel)+len(fieldLevel))
	for _, ops := range [][]Operation{typeLevel, fieldLevel} {
		for _, op := range ops {
			if _, ok := seen[op]; ok {
				continue
			}
			seen[op] = struct{}{}
			merged = append(merged, op)
		}
	}
	return merged
}
