package filtering

// discoverImplicitFields appends a default field descriptor for every entity
// member absent from the handled-set, in member declaration order. Explicit
// fields and suppressing markers both count as handled. Runs only under
// implicit binding, as the last configuration step before merging.
func (c *core) discoverImplicitFields() {
	for _, m := range c.entity.Members {
		if _, ok := c.byMember[m.Key()]; ok {
			continue
		}
		fd := &FieldDescriptor{member: m, bound: true, nestedBinding: BindExplicit}
		c.fields = append(c.fields, fd)
		c.byMember[m.Key()] = fd
	}
}
