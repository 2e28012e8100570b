package server

// Resolver backs the Query root of the served schema. The filter input types
// have no resolver surface; they exist to be introspected and consumed by
// query documents.
type Resolver struct {
	version string
}

// SchemaVersion resolves the schemaVersion field: the identifier of the
// schema build currently served.
func (r *Resolver) SchemaVersion() string {
	return r.version
}
