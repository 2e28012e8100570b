package entity

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Provider resolves Go struct types into Type descriptions. Resolution
// happens once per type; the resulting Type is cached and shared read-only.
type Provider struct {
	mu    sync.RWMutex
	cache map[reflect.Type]*Type
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	return &Provider{cache: make(map[reflect.Type]*Type)}
}

var defaultProvider = NewProvider()

// DefaultProvider returns the process-wide shared provider.
func DefaultProvider() *Provider {
	return defaultProvider
}

// TypeOf resolves t (a struct type, or pointer to one) into its member list.
func (p *Provider) TypeOf(t reflect.Type) (*Type, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("entity: %s is not a struct type", t)
	}

	p.mu.RLock()
	cached, ok := p.cache[t]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	et := &Type{
		Name:    t.Name(),
		GoType:  t,
		Members: collectMembers(t, nil),
	}

	p.mu.Lock()
	p.cache[t] = et
	p.mu.Unlock()
	return et, nil
}

// collectMembers walks the exported fields of t in declaration order.
// Embedded structs are flattened one level, so their promoted fields become
// members of the outer entity while keeping the embedded type as declarer.
func collectMembers(t reflect.Type, prefix []int) []Member {
	var members []Member
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tagName, skip := parseTag(f.Tag.Get("graphql"))
		if skip {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct && prefix == nil {
			members = append(members, collectMembers(f.Type, []int{i})...)
			continue
		}
		if !dataCarrying(f.Type) {
			continue
		}
		index := make([]int, 0, len(prefix)+1)
		index = append(index, prefix...)
		index = append(index, i)
		members = append(members, Member{
			DeclaringType: t,
			Name:          f.Name,
			Type:          f.Type,
			Index:         index,
			Optional:      f.Type.Kind() == reflect.Pointer,
			TagName:       tagName,
		})
	}
	return members
}

// parseTag splits a `graphql` tag into a name override and a skip marker.
// Options after a comma are ignored here.
func parseTag(tag string) (name string, skip bool) {
	if tag == "" {
		return "", false
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "-" {
		return "", true
	}
	return tag, false
}

// dataCarrying reports whether a field type can back a filterable member.
// Functions, channels and bare interfaces carry behavior, not data.
func dataCarrying(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}
