// Package style implements registry of named style states. Every category
// (font family, colors, weight, size...) maps state keys to CSS declarations
// and human readable labels. Registry is immutable once built and is shared
// by all renderers.
package style

import (
	"errors"
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"lexhtml/common"
	"lexhtml/css"
)

var ErrDuplicateState = errors.New("duplicate state key")

// State is a single selectable value of a category.
type State struct {
	Key   string
	Label string
	CSS   css.Declarations
}

// StateDef describes state with declarations in textual form, as they would be
// written in inline style attribute.
type StateDef struct {
	Key   string
	Label string
	CSS   string
}

// CategoryDef groups state definitions of a single category.
type CategoryDef struct {
	Category common.Category
	States   []StateDef
}

// Registry maps category and state key to concrete CSS declarations. It is
// safe for concurrent use.
type Registry struct {
	states map[common.Category]map[string]State
}

// NewRegistry builds registry from definitions. Definitions of the same
// category may be spread across several CategoryDef values, but state keys
// must be unique within category. All problems are reported together.
func NewRegistry(defs ...CategoryDef) (*Registry, error) {
	r := &Registry{states: make(map[common.Category]map[string]State)}

	var err error
	for _, def := range defs {
		if !def.Category.IsValid() {
			err = multierr.Append(err, fmt.Errorf("category %s: %w", def.Category, common.ErrInvalidCategory))
			continue
		}
		states, ok := r.states[def.Category]
		if !ok {
			states = make(map[string]State, len(def.States))
			r.states[def.Category] = states
		}
		for _, sd := range def.States {
			if _, exists := states[sd.Key]; exists {
				err = multierr.Append(err, fmt.Errorf("%s.%s: %w", def.Category, sd.Key, ErrDuplicateState))
				continue
			}
			decls, perr := css.ParseDeclarations(sd.CSS)
			if perr != nil {
				err = multierr.Append(err, fmt.Errorf("%s.%s: %w", def.Category, sd.Key, perr))
				continue
			}
			label := sd.Label
			if label == "" {
				label = sd.Key
			}
			states[sd.Key] = State{Key: sd.Key, Label: label, CSS: decls}
		}
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(defs ...CategoryDef) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns state of the category by exact key match.
func (r *Registry) Lookup(category common.Category, key string) (State, bool) {
	if r == nil {
		return State{}, false
	}
	st, ok := r.states[category][key]
	if !ok {
		return State{}, false
	}
	// callers get their own copy of declarations, registry stays untouched
	st.CSS = st.CSS.Clone()
	return st, true
}

// LookupName is Lookup with category given by its serialized name.
func (r *Registry) LookupName(category, key string) (State, bool) {
	c, err := common.ParseCategory(category)
	if err != nil {
		return State{}, false
	}
	return r.Lookup(c, key)
}

// Resolve merges declarations of all states selected by selection (category
// name to state key). Categories are processed in their fixed order, so
// result does not depend on map iteration. Unknown categories and state keys
// are ignored.
func (r *Registry) Resolve(selection map[string]string) css.Declarations {
	var decls css.Declarations
	if r == nil || len(selection) == 0 {
		return decls
	}
	for _, c := range common.Categories() {
		key, ok := selection[c.String()]
		if !ok {
			continue
		}
		if st, ok := r.states[c][key]; ok {
			decls.Merge(st.CSS)
		}
	}
	return decls
}

// Categories returns categories present in registry, in merge order.
func (r *Registry) Categories() []common.Category {
	if r == nil {
		return nil
	}
	var out []common.Category
	for _, c := range common.Categories() {
		if len(r.states[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Keys returns state keys of the category in natural order ("text-2xl" goes
// before "text-10xl").
func (r *Registry) Keys(category common.Category) []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.states[category]))
	for k := range r.states[category] {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	return keys
}
