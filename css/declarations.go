// Package css keeps ordered CSS declaration sets used for inline styles.
package css

import (
	"iter"
	"strings"
)

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// String returns declaration in inline style form, including trailing
// semicolon.
func (d Declaration) String() string {
	return d.Property + ": " + d.Value + ";"
}

// Declarations is an ordered set of declarations keyed by property name.
// Overwriting a property keeps the position of its first insertion. Zero
// value is an empty set ready to use.
type Declarations struct {
	items []Declaration
}

// NewDeclarations builds a set from pairs, later pairs override earlier ones.
func NewDeclarations(decls ...Declaration) Declarations {
	var d Declarations
	for _, decl := range decls {
		d.Set(decl.Property, decl.Value)
	}
	return d
}

func (d *Declarations) index(property string) int {
	for i := range d.items {
		if d.items[i].Property == property {
			return i
		}
	}
	return -1
}

// Set adds or overrides property value. Property names are case insensitive
// and stored lowercased, custom properties (--name) are kept verbatim.
func (d *Declarations) Set(property, value string) {
	property = normalizeProperty(property)
	if property == "" {
		return
	}
	if i := d.index(property); i >= 0 {
		d.items[i].Value = value
		return
	}
	d.items = append(d.items, Declaration{Property: property, Value: value})
}

// Get returns value of the property and whether it is present.
func (d Declarations) Get(property string) (string, bool) {
	if i := d.index(normalizeProperty(property)); i >= 0 {
		return d.items[i].Value, true
	}
	return "", false
}

// Merge applies every declaration of other on top of d.
func (d *Declarations) Merge(other Declarations) {
	for _, decl := range other.items {
		d.Set(decl.Property, decl.Value)
	}
}

func (d Declarations) Len() int {
	return len(d.items)
}

func (d Declarations) IsEmpty() bool {
	return len(d.items) == 0
}

// All iterates over declarations in insertion order.
func (d Declarations) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, decl := range d.items {
			if !yield(decl.Property, decl.Value) {
				return
			}
		}
	}
}

// Slice returns a copy of the declarations in insertion order.
func (d Declarations) Slice() []Declaration {
	out := make([]Declaration, len(d.items))
	copy(out, d.items)
	return out
}

// Clone returns an independent copy, so the result may be modified without
// affecting the source.
func (d Declarations) Clone() Declarations {
	return Declarations{items: d.Slice()}
}

// String serializes set into inline style attribute value:
// "property: value; property: value;". Empty set produces empty string.
func (d Declarations) String() string {
	var b strings.Builder
	for i, decl := range d.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(decl.String())
	}
	return b.String()
}

func normalizeProperty(property string) string {
	property = strings.TrimSpace(property)
	if strings.HasPrefix(property, "--") {
		return property
	}
	return strings.ToLower(property)
}
