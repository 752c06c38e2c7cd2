// Package lexical decodes serialized rich-text leaf nodes. Validation happens
// here, at the boundary, so renderers can trust what they receive.
package lexical

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/tidwall/gjson"

	"lexhtml/common"
)

// ErrInvalidNode reports serialized node of unexpected shape.
var ErrInvalidNode = errors.New("invalid node shape")

const (
	TypeText = "text"

	// member keeping style state selection in serialized node
	stateKey = "$"
)

// TextNode is a leaf node with literal text and formatting metadata.
type TextNode struct {
	Text   string
	Format common.Format
	// State maps style category name to selected state key, nil when node
	// has no style state.
	State map[string]string
}

// Clone returns deep copy of the node.
func (n *TextNode) Clone() *TextNode {
	if n == nil {
		return nil
	}
	c := *n
	if n.State != nil {
		c.State = maps.Clone(n.State)
	}
	return &c
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidNode, fmt.Sprintf(format, args...))
}

func parseObject(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, invalid("malformed JSON")
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return gjson.Result{}, invalid("node must be an object, got %s", res.Type)
	}
	return res, nil
}

// NodeType returns value of "type" member, empty string when absent.
func NodeType(data []byte) (string, error) {
	res, err := parseObject(data)
	if err != nil {
		return "", err
	}
	t := res.Get("type")
	switch t.Type {
	case gjson.Null:
		return "", nil
	case gjson.String:
		return t.Str, nil
	default:
		return "", invalid("type must be a string, got %s", t.Type)
	}
}

// DecodeText decodes serialized text node. Member "text" is required and must
// be a string, "format" defaults to 0, "$" (style state) is optional. State
// members with non string values belong to other editor features and are
// skipped, so are members with empty name.
func DecodeText(data []byte) (*TextNode, error) {
	res, err := parseObject(data)
	if err != nil {
		return nil, err
	}

	// absent and null "type" mean text, as in NodeType
	if t := res.Get("type"); t.Type != gjson.Null && (t.Type != gjson.String || t.Str != TypeText) {
		return nil, invalid("unexpected type %s", t.Raw)
	}

	node := &TextNode{}

	text := res.Get("text")
	if text.Type != gjson.String {
		if !text.Exists() {
			return nil, invalid("text is missing")
		}
		return nil, invalid("text must be a string, got %s", text.Type)
	}
	node.Text = text.Str

	if node.Format, err = decodeFormat(res.Get("format")); err != nil {
		return nil, err
	}

	var state gjson.Result
	res.ForEach(func(key, value gjson.Result) bool {
		if key.Str == stateKey {
			state = value
			return false
		}
		return true
	})
	if node.State, err = decodeState(state); err != nil {
		return nil, err
	}
	return node, nil
}

func decodeFormat(v gjson.Result) (common.Format, error) {
	switch v.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		if v.Num < 0 || v.Num > math.MaxUint32 || math.Trunc(v.Num) != v.Num {
			return 0, invalid("format must be non negative integer, got %s", v.Raw)
		}
		return common.Format(v.Num), nil
	default:
		return 0, invalid("format must be a number, got %s", v.Type)
	}
}

func decodeState(v gjson.Result) (map[string]string, error) {
	if v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsObject() {
		return nil, invalid("style state must be an object, got %s", v.Type)
	}
	state := make(map[string]string)
	v.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String && key.Str != "" {
			state[key.Str] = value.Str
		}
		return true
	})
	return state, nil
}

// Split returns serialized nodes from data which holds either a single node
// object or an array of sibling node objects.
func Split(data []byte) ([][]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, invalid("malformed JSON")
	}
	res := gjson.ParseBytes(data)
	switch {
	case res.IsObject():
		return [][]byte{[]byte(res.Raw)}, nil
	case res.IsArray():
		var (
			out [][]byte
			err error
		)
		res.ForEach(func(_, value gjson.Result) bool {
			if !value.IsObject() {
				err = invalid("array element %d must be an object, got %s", len(out), value.Type)
				return false
			}
			out = append(out, []byte(value.Raw))
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, invalid("expected object or array, got %s", res.Type)
	}
}
