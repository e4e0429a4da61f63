package cmdshared

import (
	"slices"
	"testing"

	"github.com/horizr/horizr/core"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		answer string
		def    bool
		want   bool
	}{
		{"\n", true, true},
		{"", false, false},
		{"y\n", false, true},
		{"  Yes\r\n", false, true},
		{"n\n", true, false},
		{"whatever", true, false},
	}
	for _, tt := range tests {
		if got := parseAnswer(tt.answer, tt.def); got != tt.want {
			t.Errorf("parseAnswer(%q, %v) = %v, want %v", tt.answer, tt.def, got, tt.want)
		}
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Sodium", 30, "Sodium"},
		{"Lithium", 7, "Lithium"},
		{"Fabric API extensions", 8, "Fabric…"},
		{"Iris Shaders", 6, "Iris…"},
		{"Größenwahn", 4, "Grö…"},
		{"abc", 1, "a"},
	}
	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	options := []string{"sodium", "lithium", "phosphor", "sodium-extra"}
	got := Suggest("sodum", options, 3)
	if len(got) == 0 || got[0] != "sodium" {
		t.Errorf("expected sodium first, got %v", got)
	}
	if got := Suggest("s", options, 1); len(got) != 1 {
		t.Errorf("expected a single suggestion, got %v", got)
	}
	if got := Suggest("xyz", options, 3); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestSideValue(t *testing.T) {
	var v SideValue
	if v.IsSet() {
		t.Error("a fresh flag must not be set")
	}
	if err := v.Set("both"); err != nil {
		t.Fatal(err)
	}
	if v.Side != core.UniversalSide || v.String() != "universal" {
		t.Errorf("unexpected side %s", v.Side)
	}
	if err := v.Set("everywhere"); err == nil {
		t.Error("expected an error for an unknown side")
	}
	if v.Type() != "side" {
		t.Errorf("unexpected type %s", v.Type())
	}
}

func TestSideNames(t *testing.T) {
	if !slices.Equal(sideNames(), []string{"client", "server", "universal"}) {
		t.Errorf("unexpected names %v", sideNames())
	}
}
