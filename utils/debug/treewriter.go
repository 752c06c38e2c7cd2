// Package debug produces indented human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	b strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// Field writes "label: value" line at depth, value is quoted so control
// characters and leading or trailing spaces stay visible. Empty value is
// written as is.
func (tw *TreeWriter) Field(depth int, label, value string) {
	tw.pad(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	tw.b.WriteString(quote(value))
	tw.b.WriteByte('\n')
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.b.WriteString(indent)
	}
}

func quote(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
