package render

import (
	"maps"
	"slices"

	"lexhtml/common"
	"lexhtml/lexical"
	"lexhtml/utils/debug"
)

// Explain describes how every node in data is rendered: decoded fields,
// selected style states, resolved declarations and applied wrappers
// (outermost first). Nodes which cannot be decoded are described with their
// error, so Explain only fails when data itself is not a node or array of
// nodes.
func (r *Renderer) Explain(data []byte) (string, error) {
	parts, err := lexical.Split(data)
	if err != nil {
		return "", err
	}

	tw := debug.NewTreeWriter()
	for i, part := range parts {
		typ, err := lexical.NodeType(part)
		if err != nil {
			tw.Line(0, "node %d: %v", i, err)
			continue
		}
		if typ == "" {
			typ = lexical.TypeText
		}
		if typ != lexical.TypeText {
			_, ok := r.converters[typ]
			tw.Line(0, "node %d: %s (converter: %t)", i, typ, ok)
			continue
		}

		node, err := lexical.DecodeText(part)
		if err != nil {
			tw.Line(0, "node %d: %v", i, err)
			continue
		}
		tw.Line(0, "node %d: %s", i, typ)
		r.explainText(tw, 1, node)
	}
	return tw.String(), nil
}

func (r *Renderer) explainText(tw *debug.TreeWriter, depth int, node *lexical.TextNode) {
	tw.Field(depth, "text", node.Text)
	tw.Line(depth, "format: %s", node.Format)

	if len(node.State) > 0 {
		tw.Line(depth, "state:")
		for _, name := range slices.Sorted(maps.Keys(node.State)) {
			key := node.State[name]
			if st, ok := r.reg.LookupName(name, key); ok {
				tw.Line(depth+1, "%s=%s [%s] %s", name, key, st.Label, st.CSS)
			} else {
				tw.Line(depth+1, "%s=%s (ignored)", name, key)
			}
		}
	}
	tw.Field(depth, "style", r.reg.Resolve(node.State).String())

	var applied []string
	for _, w := range slices.Backward(wrappers) {
		if node.Format.Has(w.flag) {
			applied = append(applied, w.describe())
		}
	}
	if len(applied) > 0 {
		tw.Line(depth, "wrappers:")
		for _, d := range applied {
			tw.Line(depth+1, "%s", d)
		}
	}
	if unknown := node.Format &^ common.FormatKnown; unknown != 0 {
		tw.Line(depth, "ignored format bits: %#x", uint32(unknown))
	}
}
