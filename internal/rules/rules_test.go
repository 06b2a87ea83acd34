package rules

import (
	"strings"
	"testing"
)

func TestFirst(t *testing.T) {
	t.Parallel()

	rs := []Rule[string, int]{
		{Name: "long", Match: func(s string) bool { return len(s) > 10 }, Then: 3},
		{Name: "prefix", Match: func(s string) bool { return strings.HasPrefix(s, "a") }, Then: 1},
		{Name: "any-a", Match: func(s string) bool { return strings.Contains(s, "a") }, Then: 2},
	}

	tests := []struct {
		name     string
		input    string
		want     int
		wantOK   bool
		wantRule string
	}{
		{"first rule wins over later matches", "abracadabra!", 3, true, "long"},
		{"second rule", "apple", 1, true, "prefix"},
		{"third rule", "banana", 2, true, "any-a"},
		{"no match", "xyz", 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := First(rs, tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("First(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
			if name := FirstName(rs, tt.input); name != tt.wantRule {
				t.Errorf("FirstName(%q) = %q, want %q", tt.input, name, tt.wantRule)
			}
		})
	}
}

func TestFirstEmpty(t *testing.T) {
	t.Parallel()

	if _, ok := First[string, int](nil, "x"); ok {
		t.Error("First(nil) matched, want no match")
	}
}

func TestAny(t *testing.T) {
	t.Parallel()

	isEmpty := func(s string) bool { return s == "" }
	isX := func(s string) bool { return s == "x" }

	if !Any("x", isEmpty, isX) {
		t.Error("Any(x) = false, want true")
	}
	if Any("y", isEmpty, isX) {
		t.Error("Any(y) = true, want false")
	}
}
