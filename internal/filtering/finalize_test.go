package filtering

import (
	"errors"
	"testing"
)

func TestFinalize_Idempotent(t *testing.T) {
	d := New[person]()
	first, err := d.Finalize()
	if err != nil {
		t.Fatalf("expected finalize to succeed, got %v", err)
	}
	second, err := d.Finalize()
	if err != nil {
		t.Fatalf("expected repeated finalize to succeed, got %v", err)
	}
	if first != second {
		t.Fatalf("expected the frozen definition to be shared")
	}
}

func TestFinalize_FrozenDescriptorRejectsMutation(t *testing.T) {
	d := New[person]()
	def, err := d.Finalize()
	if err != nil {
		t.Fatalf("expected finalize to succeed, got %v", err)
	}

	d.AllowAnd(false).Name("Changed")
	d.Field(func(p *person) any { return &p.Name }).Description("late")
	d.Ignore(func(p *person) any { return &p.Age })

	after, err := d.Finalize()
	if err != nil {
		t.Fatalf("expected finalize to stay clean, got %v", err)
	}
	if after != def {
		t.Fatalf("expected the same frozen definition after late mutation")
	}
	if !after.AllowAnd || after.Name == "Changed" {
		t.Fatalf("expected frozen state to be untouched")
	}
	if field, _ := after.Field("name"); field.Description != "" {
		t.Fatalf("expected late field configuration to be discarded")
	}
}

func TestFinalize_SurfacesConfigurationErrors(t *testing.T) {
	d := New[person]()
	d.Field(func(p *person) any { return p.Age })

	if _, err := d.Finalize(); !errors.Is(err, ErrInvalidSelectorShape) {
		t.Fatalf("expected recorded selector error to surface at finalize, got %v", err)
	}
}

func TestFinalize_InvalidSelectorYieldsDetachedBuilder(t *testing.T) {
	d := New[person]()
	good := d.Field(func(p *person) any { return &p.Name })
	bad := d.Field(func(p *person) any { return nil })
	if bad == good {
		t.Fatalf("expected a detached builder for the failed declaration")
	}
	// Configuring the detached builder must not corrupt descriptor state.
	bad.Name("ghost").Description("never seen")

	if _, err := d.Finalize(); !errors.Is(err, ErrInvalidSelectorShape) {
		t.Fatalf("expected finalize to fail with the recorded error, got %v", err)
	}
}

func TestNew_NonStructTypeFailsFinalize(t *testing.T) {
	if _, err := New[int]().Finalize(); err == nil {
		t.Fatalf("expected finalize to fail for a non-struct entity type")
	}
}
