package lexical

import (
	"maps"
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// EncodeText serializes text node in the shape DecodeText accepts. State
// members are written in key order, so output is stable. Members with empty
// name are not written.
func EncodeText(node *TextNode) ([]byte, error) {
	if node == nil {
		node = &TextNode{}
	}

	data := []byte(`{}`)
	var err error
	if data, err = sjson.SetBytes(data, "type", TypeText); err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "text", node.Text); err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "format", uint32(node.Format)); err != nil {
		return nil, err
	}
	if node.State == nil {
		return data, nil
	}

	state := []byte(`{}`)
	for _, k := range slices.Sorted(maps.Keys(node.State)) {
		if k == "" {
			// DecodeText drops it anyway
			continue
		}
		if state, err = sjson.SetBytes(state, gjson.Escape(k), node.State[k]); err != nil {
			return nil, err
		}
	}
	return sjson.SetRawBytes(data, gjson.Escape(stateKey), state)
}
