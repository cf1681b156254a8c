package simulate

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetParam(t *testing.T) {
	params := map[string]any{}
	assignments := []string{
		"initial_velocity=20",
		"gravity=1.62",
		"titrant_is_acid=true",
		"parent1_genotype=Aa",
		"acid_name=Ácido Clorídrico",
		"output_units.range_unit=km",
		"output_units.height_unit=ft",
		"indicator_name=",
	}
	for _, a := range assignments {
		if err := setParam(params, a); err != nil {
			t.Fatalf("setParam(%q): %v", a, err)
		}
	}

	want := map[string]any{
		"initial_velocity": 20,
		"gravity":          1.62,
		"titrant_is_acid":  true,
		"parent1_genotype": "Aa",
		"acid_name":        "Ácido Clorídrico",
		"output_units":     map[string]any{"range_unit": "km", "height_unit": "ft"},
		"indicator_name":   "",
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestSetParamRejects(t *testing.T) {
	tests := []struct {
		assignment string
		want       string
	}{
		{"launch_angle", "want key=value"},
		{"=45", "want key=value"},
		{"output_units..range_unit=km", "empty key segment"},
		{"output_units.=km", "empty key segment"},
		{"gravity.unit=m", "gravity is not an object"},
	}
	for _, tt := range tests {
		params := map[string]any{"gravity": 9.81}
		err := setParam(params, tt.assignment)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("setParam(%q) = %v, want %q", tt.assignment, err, tt.want)
		}
	}
}

func TestParseValueKeepsCollectionsAsText(t *testing.T) {
	if got := parseValue("[1, 2]"); got != "[1, 2]" {
		t.Fatalf("parseValue = %#v", got)
	}
	if got := parseValue("{a: 1}"); got != "{a: 1}" {
		t.Fatalf("parseValue = %#v", got)
	}
	if got := parseValue("null"); got != "null" {
		t.Fatalf("parseValue = %#v", got)
	}
}
