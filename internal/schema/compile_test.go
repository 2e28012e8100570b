package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rpattn/filterql/internal/filtering"
)

type book struct {
	Title      string
	Pages      int
	Price      float64
	Published  bool
	ReleasedAt time.Time
	ID         uuid.UUID
	Author     author
}

type author struct {
	Name string
}

func buildOne(t *testing.T, factory Factory) *Schema {
	t.Helper()
	reg := NewRegistry(zerolog.Nop())
	reg.Register(factory)
	s, err := reg.Build()
	if err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}
	return s
}

func TestBuild_EmitsFilterAndOperationInputs(t *testing.T) {
	s := buildOne(t, func() (*filtering.Definition, error) {
		return filtering.New[book]().Name("BookFilterInput").Finalize()
	})

	for _, want := range []string{
		"input BookFilterInput",
		"and: [BookFilterInput!]",
		"or: [BookFilterInput!]",
		"title: StringOperationFilterInput",
		"pages: IntOperationFilterInput",
		"price: FloatOperationFilterInput",
		"published: BooleanOperationFilterInput",
		"releasedAt: TimestampOperationFilterInput",
		"id: IdOperationFilterInput",
		"input StringOperationFilterInput",
		"contains: String",
		"in: [String!]",
		"type Query",
		"schemaVersion: String!",
	} {
		if !strings.Contains(s.SDL, want) {
			t.Fatalf("expected SDL to contain %q, got:\n%s", want, s.SDL)
		}
	}
}

func TestBuild_DisabledCombinatorsAreOmitted(t *testing.T) {
	s := buildOne(t, func() (*filtering.Definition, error) {
		return filtering.New[author]().Name("AuthorFilterInput").AllowAnd(false).AllowOr(false).Finalize()
	})

	if strings.Contains(s.SDL, "and: [AuthorFilterInput!]") || strings.Contains(s.SDL, "or: [AuthorFilterInput!]") {
		t.Fatalf("expected combinator fields to be omitted, got:\n%s", s.SDL)
	}
}

func TestBuild_SuppressedOperationGetsSpecializedInput(t *testing.T) {
	s := buildOne(t, func() (*filtering.Definition, error) {
		d := filtering.New[book]().Name("BookFilterInput")
		d.Field(func(b *book) any { return &b.Title }).IgnoreOperation(filtering.OpEndsWith)
		return d.Finalize()
	})

	if !strings.Contains(s.SDL, "title: BookTitleFilterInput") {
		t.Fatalf("expected specialized input name, got:\n%s", s.SDL)
	}
	start := strings.Index(s.SDL, "input BookTitleFilterInput")
	if start < 0 {
		t.Fatalf("expected specialized input definition, got:\n%s", s.SDL)
	}
	body := s.SDL[start:]
	if end := strings.Index(body, "}"); end >= 0 {
		body = body[:end]
	}
	if strings.Contains(body, "endsWith") {
		t.Fatalf("expected suppressed operation to be absent, got:\n%s", body)
	}
	if !strings.Contains(body, "startsWith") {
		t.Fatalf("expected remaining operations to survive, got:\n%s", body)
	}
}

func TestBuild_NestedDefinitionsAreEmitted(t *testing.T) {
	s := buildOne(t, func() (*filtering.Definition, error) {
		d := filtering.New[book]().Name("BookFilterInput").BindFieldsExplicitly()
		d.FieldWith(func(b *book) any { return &b.Author }, func(n *filtering.NestedDescriptor) {
			n.Name("BookAuthorFilterInput")
			n.Field("Name")
		})
		return d.Finalize()
	})

	for _, want := range []string{
		"author: BookAuthorFilterInput",
		"input BookAuthorFilterInput",
		"name: StringOperationFilterInput",
	} {
		if !strings.Contains(s.SDL, want) {
			t.Fatalf("expected SDL to contain %q, got:\n%s", want, s.SDL)
		}
	}
}

type location struct {
	City    string
	Country string
}

type office struct {
	Head   location
	Branch location
}

func TestBuild_ConflictingNestedDefinitionsAbort(t *testing.T) {
	// Both nested types default to the same conventional name but declare
	// different field sets; aliasing one to the other would silently drop
	// configuration.
	reg := NewRegistry(zerolog.Nop())
	reg.Register(func() (*filtering.Definition, error) {
		d := filtering.New[office]().Name("OfficeFilterInput").BindFieldsExplicitly()
		d.FieldWith(func(o *office) any { return &o.Head }, func(n *filtering.NestedDescriptor) {
			n.Field("City")
		})
		d.FieldWith(func(o *office) any { return &o.Branch }, func(n *filtering.NestedDescriptor) {
			n.Field("Country")
		})
		return d.Finalize()
	})

	if _, err := reg.Build(); err == nil || !strings.Contains(err.Error(), "conflicting definitions") {
		t.Fatalf("expected conflicting nested definitions to abort the build, got %v", err)
	}
}

func TestBuild_EquivalentNestedDefinitionsShareOneEmission(t *testing.T) {
	s := buildOne(t, func() (*filtering.Definition, error) {
		d := filtering.New[office]().Name("OfficeFilterInput").BindFieldsExplicitly()
		d.FieldWith(func(o *office) any { return &o.Head }, func(n *filtering.NestedDescriptor) {
			n.Field("City")
		})
		d.FieldWith(func(o *office) any { return &o.Branch }, func(n *filtering.NestedDescriptor) {
			n.Field("City")
		})
		return d.Finalize()
	})

	for _, want := range []string{
		"head: locationFilterInput",
		"branch: locationFilterInput",
	} {
		if !strings.Contains(s.SDL, want) {
			t.Fatalf("expected SDL to contain %q, got:\n%s", want, s.SDL)
		}
	}
	if n := strings.Count(s.SDL, "input locationFilterInput"); n != 1 {
		t.Fatalf("expected exactly one emission of the shared nested type, got %d", n)
	}
}

func TestBuild_DuplicateTypeNamesAbort(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	reg.Register(func() (*filtering.Definition, error) {
		return filtering.New[book]().Name("CatalogFilterInput").Finalize()
	})
	reg.Register(func() (*filtering.Definition, error) {
		return filtering.New[author]().Name("CatalogFilterInput").Finalize()
	})

	if _, err := reg.Build(); err == nil || !strings.Contains(err.Error(), "duplicate filter type name") {
		t.Fatalf("expected duplicate type name error, got %v", err)
	}
}

func TestBuild_EmptyDefinitionAborts(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	reg.Register(func() (*filtering.Definition, error) {
		return filtering.New[author]().BindFieldsExplicitly().Finalize()
	})

	if _, err := reg.Build(); err == nil || !strings.Contains(err.Error(), "declares no fields") {
		t.Fatalf("expected empty definition error, got %v", err)
	}
}

type pressRelease struct {
	Title string
}

type ticket struct {
	Title int
}

func TestBuild_SpecializedInputNameClashAborts(t *testing.T) {
	// Both fields specialize to XTitleFilterInput, but over different scalars
	// and operation sets; first-emission-wins would publish a wrong type for
	// the second field.
	reg := NewRegistry(zerolog.Nop())
	reg.Register(func() (*filtering.Definition, error) {
		d := filtering.New[pressRelease]().Name("XFilterInput")
		d.Field(func(p *pressRelease) any { return &p.Title }).IgnoreOperation(filtering.OpEndsWith)
		return d.Finalize()
	})
	reg.Register(func() (*filtering.Definition, error) {
		d := filtering.New[ticket]().Name("X")
		d.Field(func(tk *ticket) any { return &tk.Title }).IgnoreOperation(filtering.OpGreaterThan)
		return d.Finalize()
	})

	if _, err := reg.Build(); err == nil || !strings.Contains(err.Error(), "conflicting operation sets") {
		t.Fatalf("expected operation input name clash to abort the build, got %v", err)
	}
}

func TestBuild_FilterTypeNamedLikeOperationInputAborts(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	reg.Register(func() (*filtering.Definition, error) {
		return filtering.New[author]().Finalize()
	})
	reg.Register(func() (*filtering.Definition, error) {
		return filtering.New[pressRelease]().Name("StringOperationFilterInput").Finalize()
	})

	if _, err := reg.Build(); err == nil || !strings.Contains(err.Error(), "collides with an operation input") {
		t.Fatalf("expected filter type name to be rejected, got %v", err)
	}
}

func TestBuild_FailingFactoryAborts(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	reg.Register(func() (*filtering.Definition, error) {
		d := filtering.New[author]()
		d.Field(func(a *author) any { return nil })
		return d.Finalize()
	})

	if _, err := reg.Build(); err == nil {
		t.Fatalf("expected factory error to abort the build")
	}
}

func TestBuild_AssignsBuildID(t *testing.T) {
	s := buildOne(t, func() (*filtering.Definition, error) {
		return filtering.New[author]().Finalize()
	})
	if s.ID == uuid.Nil {
		t.Fatalf("expected a non-zero build id")
	}
	if s.Document.Definitions[0].Name != "Query" {
		t.Fatalf("expected Query to lead the document, got %s", s.Document.Definitions[0].Name)
	}
}
