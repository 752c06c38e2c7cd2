package debug

import "testing"

func TestTreeWriter_Empty(t *testing.T) {
	if got := NewTreeWriter().String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "node", want: "node\n"},
		{name: "depth 1", depth: 1, format: "indented", want: "  indented\n"},
		{name: "depth 2", depth: 2, format: "double", want: "    double\n"},
		{name: "with formatting", depth: 1, format: "node %d: %s", args: []any{3, "text"}, want: "  node 3: text\n"},
		{name: "negative depth", depth: -1, format: "flat", want: "flat\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Field(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain", value: "Hi", want: `  text: "Hi"` + "\n"},
		{name: "empty", value: "", want: "  text: \n"},
		{name: "control characters", value: "a\tb\n", want: `  text: "a\tb\n"` + "\n"},
		{name: "spaces kept", value: " x ", want: `  text: " x "` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Field(1, "text", tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("Field() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Accumulates(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "node 0: text")
	tw.Field(1, "text", "a")
	tw.Line(1, "format: none")

	want := "node 0: text\n  text: \"a\"\n  format: none\n"
	if got := tw.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
