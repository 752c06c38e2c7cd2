// Package common keeps enumerations shared by node decoding, style registry and
// rendering, so none of those packages has to import another just for a type.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Format is inline formatting bitmask of a text node. Bits are independent
// and may be combined arbitrarily.
type Format uint32

const (
	FormatBold Format = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatUnderline
	FormatCode
	FormatSubscript
	FormatSuperscript

	// FormatKnown covers every bit which has a markup representation.
	FormatKnown = FormatBold | FormatItalic | FormatStrikethrough | FormatUnderline |
		FormatCode | FormatSubscript | FormatSuperscript
)

var formatNames = []struct {
	flag Format
	name string
}{
	{FormatBold, "bold"},
	{FormatItalic, "italic"},
	{FormatStrikethrough, "strikethrough"},
	{FormatUnderline, "underline"},
	{FormatCode, "code"},
	{FormatSubscript, "subscript"},
	{FormatSuperscript, "superscript"},
}

// Has reports whether all bits of flag are set.
func (f Format) Has(flag Format) bool {
	return flag != 0 && f&flag == flag
}

// Known drops bits without markup representation.
func (f Format) Known() Format {
	return f & FormatKnown
}

// String returns names of known bits joined by "|", or "none".
func (f Format) String() string {
	var parts []string
	for _, fn := range formatNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseFormat converts "|" separated list of format names into bitmask.
func ParseFormat(s string) (Format, error) {
	var f Format
	for part := range strings.SplitSeq(s, "|") {
		name := strings.TrimSpace(part)
		if name == "" || name == "none" {
			continue
		}
		found := false
		for _, fn := range formatNames {
			if strings.EqualFold(fn.name, name) {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%s is %w", name, ErrInvalidFormat)
		}
	}
	return f, nil
}

var ErrInvalidFormat = errors.New("not a valid Format")

// Category is a closed set of style state categories. Declaration order is
// also the order in which categories are merged into inline style, so later
// categories win on property collisions.
type Category int

const (
	CategoryType Category = iota
	CategoryBackground
	CategoryColor
	CategoryFontWeight
	CategorySize
	CategoryThemeColors
)

var ErrInvalidCategory = errors.New("not a valid Category")

// names used as keys of serialized style state
var categoryNames = [...]string{
	CategoryType:        "type",
	CategoryBackground:  "background",
	CategoryColor:       "color",
	CategoryFontWeight:  "fontWeight",
	CategorySize:        "size",
	CategoryThemeColors: "themeColors",
}

func (c Category) IsValid() bool {
	return c >= CategoryType && int(c) < len(categoryNames)
}

func (c Category) String() string {
	if c.IsValid() {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory is exact match, serialized state keys are case sensitive.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%s is %w", name, ErrInvalidCategory)
}

// Categories returns all categories in merge order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

func CategoryNames() []string {
	out := make([]string, len(categoryNames))
	copy(out, categoryNames[:])
	return out
}

// UnknownNodes selects what happens to node types without converter.
type UnknownNodes int

const (
	UnknownNodesSkip UnknownNodes = iota
	UnknownNodesFail
)

var ErrInvalidUnknownNodes = errors.New("not a valid UnknownNodes")

var unknownNodesNames = [...]string{
	UnknownNodesSkip: "skip",
	UnknownNodesFail: "fail",
}

func (u UnknownNodes) String() string {
	if u >= 0 && int(u) < len(unknownNodesNames) {
		return unknownNodesNames[u]
	}
	return fmt.Sprintf("UnknownNodes(%d)", int(u))
}

func ParseUnknownNodes(name string) (UnknownNodes, error) {
	for i, n := range unknownNodesNames {
		if strings.EqualFold(n, name) {
			return UnknownNodes(i), nil
		}
	}
	return 0, fmt.Errorf("%s is %w", name, ErrInvalidUnknownNodes)
}

func (u UnknownNodes) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UnknownNodes) UnmarshalText(text []byte) error {
	v, err := ParseUnknownNodes(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
