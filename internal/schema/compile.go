package schema

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/rpattn/filterql/internal/filtering"
)

// compiler lowers frozen filter definitions into a GraphQL schema document.
type compiler struct {
	filters    []*ast.Definition
	operations map[string]*ast.Definition
	opSigs     map[string]string // operation input name -> scalar+operation signature
	named      map[string]*filtering.Definition
}

func newCompiler() *compiler {
	return &compiler{
		operations: make(map[string]*ast.Definition),
		opSigs:     make(map[string]string),
		named:      make(map[string]*filtering.Definition),
	}
}

// add lowers one definition plus its nested definitions, depth-first.
func (c *compiler) add(def *filtering.Definition) error {
	if len(def.Fields) == 0 {
		return fmt.Errorf("filter type %s declares no fields", def.Name)
	}
	if prev, ok := c.named[def.Name]; ok {
		return fmt.Errorf("duplicate filter type name %s (entities %s and %s)", def.Name, prev.Entity.Name, def.Entity.Name)
	}
	if _, ok := c.operations[def.Name]; ok {
		return fmt.Errorf("filter type name %s collides with an operation input", def.Name)
	}
	c.named[def.Name] = def

	out := &ast.Definition{
		Kind:        ast.InputObject,
		Name:        def.Name,
		Description: def.Description,
		Directives:  def.Directives,
	}
	if def.AllowAnd {
		out.Fields = append(out.Fields, &ast.FieldDefinition{
			Name: "and",
			Type: ast.ListType(ast.NonNullNamedType(def.Name, nil), nil),
		})
	}
	if def.AllowOr {
		out.Fields = append(out.Fields, &ast.FieldDefinition{
			Name: "or",
			Type: ast.ListType(ast.NonNullNamedType(def.Name, nil), nil),
		})
	}

	for _, field := range def.Fields {
		typeName, err := c.fieldType(def, field)
		if err != nil {
			return err
		}
		out.Fields = append(out.Fields, &ast.FieldDefinition{
			Name:        field.Name,
			Description: field.Description,
			Type:        ast.NamedType(typeName, nil),
			Directives:  field.Directives,
		})
	}
	c.filters = append(c.filters, out)
	return nil
}

// fieldType resolves the input type a field is declared with: the nested
// filter type when one was configured, a specialized operation input when the
// field suppresses capabilities, or the shared per-scalar operation input.
func (c *compiler) fieldType(def *filtering.Definition, field filtering.FieldDefinition) (string, error) {
	if field.Nested != nil {
		if prev, ok := c.named[field.Nested.Name]; ok {
			if !definitionsEquivalent(prev, field.Nested) {
				return "", fmt.Errorf("filter type name %s bound to conflicting definitions (entity %s)", field.Nested.Name, field.Nested.Entity.Name)
			}
		} else if err := c.add(field.Nested); err != nil {
			return "", err
		}
		return field.Nested.Name, nil
	}

	class := classify(field.Type)
	ops := class.without(field.IgnoredOperations)
	name := class.TypeName
	if len(ops) != len(class.Operations) {
		name = strings.TrimSuffix(def.Name, "FilterInput") + upperFirst(field.Name) + "FilterInput"
	}
	if len(ops) == 0 {
		return "", fmt.Errorf("field %s.%s suppresses every operation", def.Name, field.Name)
	}
	if err := c.operationInput(name, class.Scalar, ops); err != nil {
		return "", fmt.Errorf("field %s.%s: %w", def.Name, field.Name, err)
	}
	return name, nil
}

// definitionsEquivalent reports whether two definitions sharing a type name
// describe the same input type, so one emission can serve both. Anything
// less than full agreement on entity, combinators and field configuration is
// a conflict.
func definitionsEquivalent(a, b *filtering.Definition) bool {
	if a == b {
		return true
	}
	if a.Entity.GoType != b.Entity.GoType || a.AllowAnd != b.AllowAnd || a.AllowOr != b.AllowOr {
		return false
	}
	if a.Description != b.Description || len(a.Fields) != len(b.Fields) || len(a.Directives) != len(b.Directives) {
		return false
	}
	for i := range a.Fields {
		af, bf := a.Fields[i], b.Fields[i]
		if af.Name != bf.Name || af.Description != bf.Description || len(af.Directives) != len(bf.Directives) {
			return false
		}
		if !reflect.DeepEqual(af.IgnoredOperations, bf.IgnoredOperations) {
			return false
		}
		if (af.Nested == nil) != (bf.Nested == nil) {
			return false
		}
		if af.Nested != nil && (af.Nested.Name != bf.Nested.Name || !definitionsEquivalent(af.Nested, bf.Nested)) {
			return false
		}
	}
	return true
}

// operationInput emits (once) the input type carrying one comparison field
// per offered operation. List-shaped operations take a list of the scalar.
// Re-emission under the same name must carry the same scalar and operation
// set; anything else is a name collision.
func (c *compiler) operationInput(name, scalar string, ops []filtering.Operation) error {
	sig := operationSignature(scalar, ops)
	if prev, ok := c.opSigs[name]; ok {
		if prev != sig {
			return fmt.Errorf("operation input %s requested with conflicting operation sets", name)
		}
		return nil
	}
	if _, ok := c.named[name]; ok {
		return fmt.Errorf("operation input %s collides with a filter type name", name)
	}
	def := &ast.Definition{Kind: ast.InputObject, Name: name}
	for _, op := range ops {
		fieldType := ast.NamedType(scalar, nil)
		if op == filtering.OpIn || op == filtering.OpNotIn {
			fieldType = ast.ListType(ast.NonNullNamedType(scalar, nil), nil)
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: string(op),
			Type: fieldType,
		})
	}
	c.operations[name] = def
	c.opSigs[name] = sig
	return nil
}

func operationSignature(scalar string, ops []filtering.Operation) string {
	parts := make([]string, 0, len(ops)+1)
	parts = append(parts, scalar)
	for _, op := range ops {
		parts = append(parts, string(op))
	}
	return strings.Join(parts, "|")
}

// document assembles the final schema document: the Query root, filter types
// in registration order, then operation inputs in name order.
func (c *compiler) document() *ast.SchemaDocument {
	query := &ast.Definition{
		Kind: ast.Object,
		Name: "Query",
		Fields: ast.FieldList{
			&ast.FieldDefinition{
				Name:        "schemaVersion",
				Description: "Identifier of the schema build currently served.",
				Type:        ast.NonNullNamedType("String", nil),
			},
		},
	}

	doc := &ast.SchemaDocument{}
	doc.Definitions = append(doc.Definitions, query)
	doc.Definitions = append(doc.Definitions, c.filters...)

	names := make([]string, 0, len(c.operations))
	for name := range c.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.Definitions = append(doc.Definitions, c.operations[name])
	}
	return doc
}

func render(doc *ast.SchemaDocument) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	return buf.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
