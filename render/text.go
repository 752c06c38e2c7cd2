// Package render converts serialized leaf nodes into HTML fragments.
package render

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"lexhtml/common"
	"lexhtml/lexical"
	"lexhtml/style"
)

type wrapper struct {
	flag  common.Format
	tag   string
	style string
}

func (w wrapper) describe() string {
	if w.style == "" {
		return "<" + w.tag + ">"
	}
	return "<" + w.tag + ` style="` + w.style + `">`
}

// Format wrappers, innermost first. Resulting nesting is always
// strong > em > line-through > underline > sup > sub > code > span.
var wrappers = []wrapper{
	{flag: common.FormatCode, tag: "code"},
	{flag: common.FormatSubscript, tag: "sub"},
	{flag: common.FormatSuperscript, tag: "sup"},
	{flag: common.FormatUnderline, tag: "span", style: "text-decoration: underline;"},
	{flag: common.FormatStrikethrough, tag: "span", style: "text-decoration: line-through;"},
	{flag: common.FormatItalic, tag: "em"},
	{flag: common.FormatBold, tag: "strong"},
}

// Text renders text node as HTML fragment. Text always goes into a span
// carrying resolved style state, "style" attribute is omitted when nothing
// resolves. Format bits add wrappers around the span, unknown bits are
// ignored. Nil registry resolves nothing, nil node renders as empty span.
func Text(node *lexical.TextNode, reg *style.Registry) string {
	if node == nil {
		node = &lexical.TextNode{}
	}

	span := etree.NewElement("span")
	if decls := reg.Resolve(node.State); !decls.IsEmpty() {
		span.CreateAttr("style", decls.String())
	}

	el := span
	for _, w := range wrappers {
		if !node.Format.Has(w.flag) {
			continue
		}
		outer := etree.NewElement(w.tag)
		if w.style != "" {
			outer.CreateAttr("style", w.style)
		}
		outer.AddChild(el)
		el = outer
	}

	// Element chain has no text, so the first end tag closes the innermost
	// span. Attribute values never contain "</", '<' is escaped there.
	markup := serialize(el)
	pos := strings.Index(markup, "</")
	return markup[:pos] + textEscaper.Replace(node.Text) + markup[pos:]
}

// etree replaces control characters and invalid UTF-8 when escaping text,
// node text is kept as is except for &, < and >.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// TextJSON decodes serialized text node and renders it.
func TextJSON(data []byte, reg *style.Registry) (string, error) {
	node, err := lexical.DecodeText(data)
	if err != nil {
		return "", err
	}
	return Text(node, reg), nil
}

// serialize writes element without XML declaration. Every element gets
// explicit end tag, since HTML does not know self-closing span.
func serialize(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalEndTags: true,
		CanonicalAttrVal: true,
	}
	doc.SetRoot(el)
	s, err := doc.WriteToString()
	if err != nil {
		// writing into memory does not fail
		panic(fmt.Sprintf("unable to serialize fragment: %v", err))
	}
	return s
}
