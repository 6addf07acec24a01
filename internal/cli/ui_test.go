package cli

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestRenderValueScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"integer", json.Number("5074"), "5074"},
		{"float", json.Number("0.8923"), "0.8923"},
		{"string", "QExactive", `"QExactive"`},
		{"empty string", "", `""`},
		{"fallback float64", 3.5, "3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderValue(tt.in, 0); got != tt.want {
				t.Errorf("renderValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderValueArrays(t *testing.T) {
	tests := []struct {
		name string
		in   []any
		want string
	}{
		{"empty", []any{}, "[]"},
		{"single", []any{json.Number("1")}, "[ 1 ]"},
		{
			"inline scalars",
			[]any{json.Number("1"), json.Number("2"), json.Number("3")},
			"[ 1, 2, 3 ]",
		},
		{
			"inline strings",
			[]any{"a", "b"},
			`[ "a", "b" ]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderValue(tt.in, 0); got != tt.want {
				t.Errorf("renderValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderValueLongArrayBreaksLines(t *testing.T) {
	vals := make([]any, inlineArrayLimit+1)
	for i := range vals {
		vals[i] = json.Number("7")
	}
	got := renderValue(vals, 0)
	if !strings.HasPrefix(got, "[\n") {
		t.Errorf("long array should render multi-line, got %q", got)
	}
	if strings.Count(got, "\n") != len(vals)+1 {
		t.Errorf("expected one line per element, got %q", got)
	}
}

func TestRenderValueObjectSortsKeys(t *testing.T) {
	got := renderValue(map[string]any{
		"zeta":  json.Number("2"),
		"alpha": json.Number("1"),
	}, 0)

	alpha := strings.Index(got, "alpha")
	zeta := strings.Index(got, "zeta")
	if alpha < 0 || zeta < 0 || alpha > zeta {
		t.Errorf("object keys not sorted: %q", got)
	}
}

func TestRenderValueEmptyObject(t *testing.T) {
	if got := renderValue(map[string]any{}, 0); got != "{}" {
		t.Errorf("renderValue({}) = %q, want {}", got)
	}
}

func TestRenderValueNestedObject(t *testing.T) {
	got := renderValue(map[string]any{
		"outer": map[string]any{"inner": json.Number("42")},
	}, 0)
	want := "{\n  \"outer\": {\n    \"inner\": 42\n  }\n}"
	if got != want {
		t.Errorf("nested render = %q, want %q", got, want)
	}
}
