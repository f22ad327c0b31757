package search

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   \t ", ""},
		{"trims", "  alice  ", "alice"},
		{"collapses inner whitespace", "alice \t  smith", "alice smith"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Truncates(t *testing.T) {
	long := strings.Repeat("é", MaxQueryRunes+25)
	got := Normalize(long)
	if n := len([]rune(got)); n != MaxQueryRunes {
		t.Errorf("rune count = %d, want %d", n, MaxQueryRunes)
	}
}

func TestTerms(t *testing.T) {
	got := Terms("  Engineering   NEW york ")
	want := []string{"engineering", "new", "york"}
	if len(got) != len(want) {
		t.Fatalf("Terms() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Terms()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := Terms("   "); len(got) != 0 {
		t.Errorf("Terms(blank) = %v, want none", got)
	}
}

func TestMatchAll(t *testing.T) {
	hay := "42 alice smith alice.smith@example.com engineering"
	tests := []struct {
		name  string
		terms []string
		want  bool
	}{
		{"no terms", nil, true},
		{"single hit", []string{"alice"}, true},
		{"all hit", []string{"smith", "engin"}, true},
		{"one miss", []string{"smith", "sales"}, false},
		{"substring of email", []string{"example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchAll(hay, tt.terms); got != tt.want {
				t.Errorf("MatchAll(%v) = %v, want %v", tt.terms, got, tt.want)
			}
		})
	}
}
