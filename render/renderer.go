package render

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"go.uber.org/zap"

	"lexhtml/common"
	"lexhtml/lexical"
	"lexhtml/style"
)

// ErrUnsupportedNode is returned for node types without converter when
// unknown nodes are not skipped.
var ErrUnsupportedNode = errors.New("unsupported node type")

// Converter renders single serialized node of a particular type.
type Converter func(data []byte, reg *style.Registry) (string, error)

// Converters maps node type to its converter.
type Converters map[string]Converter

// DefaultConverters returns fresh table with all converters this package
// implements.
func DefaultConverters() Converters {
	return Converters{
		lexical.TypeText: TextJSON,
	}
}

// Renderer dispatches serialized nodes to converters. It does not keep any
// mutable state and may be used concurrently.
type Renderer struct {
	reg        *style.Registry
	converters Converters
	unknown    common.UnknownNodes
	log        *zap.Logger
}

type Option func(*Renderer)

// WithConverters adds or replaces converters for the given node types.
func WithConverters(converters Converters) Option {
	return func(r *Renderer) {
		maps.Copy(r.converters, converters)
	}
}

// WithUnknownNodes sets how nodes without converter are handled.
func WithUnknownNodes(mode common.UnknownNodes) Option {
	return func(r *Renderer) {
		r.unknown = mode
	}
}

// New creates renderer using registry to resolve style states. When registry
// is nil built-in default is used.
func New(reg *style.Registry, log *zap.Logger, opts ...Option) *Renderer {
	if reg == nil {
		reg = style.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		reg:        reg,
		converters: DefaultConverters(),
		log:        log.Named("render"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns style registry renderer uses.
func (r *Renderer) Registry() *style.Registry {
	return r.reg
}

// Node renders single serialized node. Node without "type" is treated as
// text.
func (r *Renderer) Node(data []byte) (string, error) {
	typ, err := lexical.NodeType(data)
	if err != nil {
		return "", err
	}
	if typ == "" {
		typ = lexical.TypeText
	}

	conv, ok := r.converters[typ]
	if !ok {
		if r.unknown == common.UnknownNodesFail {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedNode, typ)
		}
		r.log.Debug("Skipping node without converter", zap.String("type", typ))
		return "", nil
	}
	return conv(data, r.reg)
}

// Nodes renders either single node or array of sibling nodes, fragments are
// concatenated in order.
func (r *Renderer) Nodes(data []byte) (string, error) {
	parts, err := lexical.Split(data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, part := range parts {
		out, err := r.Node(part)
		if err != nil {
			return "", fmt.Errorf("node %d: %w", i, err)
		}
		b.WriteString(out)
	}
	r.log.Debug("Rendered nodes", zap.Int("count", len(parts)), zap.Int("bytes", b.Len()))
	return b.String(), nil
}
