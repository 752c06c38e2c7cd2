package css_test

import (
	"testing"

	"lexhtml/css"
)

func TestDeclarations_SetKeepsFirstPosition(t *testing.T) {
	var d css.Declarations
	d.Set("color", "red")
	d.Set("font-weight", "700")
	d.Set("color", "blue")

	if d.Len() != 2 {
		t.Fatalf("expected 2 declarations, got %d", d.Len())
	}
	if got, want := d.String(), "color: blue; font-weight: 700;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDeclarations_PropertyCase(t *testing.T) {
	var d css.Declarations
	d.Set("Font-Weight", "700")
	d.Set("--Accent", "red")

	if v, ok := d.Get("font-weight"); !ok || v != "700" {
		t.Errorf("Get(font-weight) = %q, %v", v, ok)
	}
	if _, ok := d.Get("--accent"); ok {
		t.Error("custom properties must be case sensitive")
	}
	if v, ok := d.Get("--Accent"); !ok || v != "red" {
		t.Errorf("Get(--Accent) = %q, %v", v, ok)
	}
}

func TestDeclarations_Merge(t *testing.T) {
	base := css.NewDeclarations(
		css.Declaration{Property: "color", Value: "red"},
		css.Declaration{Property: "font-size", Value: "12px"},
	)
	over := css.NewDeclarations(
		css.Declaration{Property: "line-height", Value: "1.5"},
		css.Declaration{Property: "color", Value: "green"},
	)

	merged := base.Clone()
	merged.Merge(over)

	if got, want := merged.String(), "color: green; font-size: 12px; line-height: 1.5;"; got != want {
		t.Errorf("merged = %q, want %q", got, want)
	}
	if got, want := base.String(), "color: red; font-size: 12px;"; got != want {
		t.Errorf("source modified by merge of a clone: %q", got)
	}
}

func TestDeclarations_Empty(t *testing.T) {
	var d css.Declarations
	if !d.IsEmpty() {
		t.Error("zero value must be empty")
	}
	if d.String() != "" {
		t.Errorf("empty set serialized to %q", d.String())
	}
	d.Set("  ", "x")
	if !d.IsEmpty() {
		t.Error("blank property must be ignored")
	}
}

func TestDeclarations_All(t *testing.T) {
	d := css.NewDeclarations(
		css.Declaration{Property: "a", Value: "1"},
		css.Declaration{Property: "b", Value: "2"},
		css.Declaration{Property: "c", Value: "3"},
	)
	var props []string
	for p := range d.All() {
		props = append(props, p)
		if p == "b" {
			break
		}
	}
	if len(props) != 2 || props[0] != "a" || props[1] != "b" {
		t.Errorf("unexpected iteration result %v", props)
	}
}
