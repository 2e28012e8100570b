package catalog

import (
	"github.com/rpattn/filterql/internal/config"
	"github.com/rpattn/filterql/internal/filtering"
	"github.com/rpattn/filterql/internal/schema"
)

// RegisterFilters registers the catalog's filter types. Author registers
// first so the standalone AuthorFilterInput keeps the conventional name; the
// filter nested under Book carries its own.
func RegisterFilters(reg *schema.Registry, cfg config.FilteringConfig) {
	reg.Register(func() (*filtering.Definition, error) {
		return filtering.New[Author]().
			Description("Filters authors by their public attributes.").
			AllowAnd(cfg.AllowAnd).
			AllowOr(cfg.AllowOr).
			Ignore(func(a *Author) any { return &a.Email }).
			Finalize()
	})

	reg.Register(func() (*filtering.Definition, error) {
		d := filtering.New[Book]().
			Description("Filters books in the catalog.").
			AllowAnd(cfg.AllowAnd).
			AllowOr(cfg.AllowOr)
		d.Field(func(b *Book) any { return &b.Title }).
			Description("Matches against the full title.").
			IgnoreOperation(filtering.OpEndsWith)
		d.FieldWith(func(b *Book) any { return &b.Author }, func(n *filtering.NestedDescriptor) {
			n.Name("BookAuthorFilterInput")
			n.Field("Name")
			n.Field("Born")
		})
		return d.Finalize()
	})
}
