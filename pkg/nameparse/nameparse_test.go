package nameparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Name
	}{
		{
			input: "John Smith",
			want:  Name{Full: "John Smith", First: "John", Last: "Smith"},
		},
		{
			input: "John Michael Smith",
			want:  Name{Full: "John Michael Smith", First: "John", Middle: "Michael", Last: "Smith"},
		},
		{
			input: "John Michael David Smith",
			want:  Name{Full: "John Michael David Smith", First: "John", Middle: "Michael David", Last: "Smith"},
		},
		{
			input: "Madonna",
			want:  Name{Full: "Madonna", First: "Madonna"},
		},
		{
			input: "John Smith Jr.",
			want:  Name{Full: "John Smith Jr.", First: "John", Last: "Smith", Suffix: "Jr"},
		},
		{
			input: "Robert Downey III",
			want:  Name{Full: "Robert Downey III", First: "Robert", Last: "Downey", Suffix: "III"},
		},
		{
			input: "Smith, John",
			want:  Name{Full: "Smith, John", First: "John", Last: "Smith"},
		},
		{
			input: "Smith, John Michael",
			want:  Name{Full: "Smith, John Michael", First: "John", Middle: "Michael", Last: "Smith"},
		},
		{
			input: "  John   Smith  ",
			want:  Name{Full: "John Smith", First: "John", Last: "Smith"},
		},
		{
			input: "",
			want:  Name{},
		},
		{
			input: "   ",
			want:  Name{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseNeverErrors(t *testing.T) {
	// Garbage input ends up in First rather than failing.
	inputs := []string{"@@@", "123", "a", ", ,", "…"}
	for _, in := range inputs {
		got := Parse(in)
		if got.Full != in && in != "" {
			// Full preserves trimmed input
			t.Logf("Parse(%q) = %+v", in, got)
		}
	}
}

func TestInitials(t *testing.T) {
	n := Parse("John Michael Smith")
	if got := n.FirstInitial(); got != "j" {
		t.Errorf("FirstInitial() = %q, want %q", got, "j")
	}
	if got := n.MiddleInitial(); got != "m" {
		t.Errorf("MiddleInitial() = %q, want %q", got, "m")
	}
	if got := n.LastInitial(); got != "s" {
		t.Errorf("LastInitial() = %q, want %q", got, "s")
	}

	empty := Name{}
	if got := empty.FirstInitial(); got != "" {
		t.Errorf("FirstInitial() on empty = %q, want empty", got)
	}
}

func TestVariations(t *testing.T) {
	n := Parse("John Smith")
	vars := n.Variations()

	wantPresent := []string{
		"john", "smith",
		"johnsmith", "john.smith", "john-smith", "john_smith",
		"smithjohn", "smith.john",
		"jsmith", "j.smith", "j-smith", "j_smith",
		"johns", "js",
	}
	got := make(map[string]bool, len(vars))
	for _, v := range vars {
		got[v] = true
	}
	for _, w := range wantPresent {
		if !got[w] {
			t.Errorf("Variations() missing %q", w)
		}
	}

	for _, v := range vars {
		if len(v) < 2 {
			t.Errorf("Variations() contains too-short candidate %q", v)
		}
	}
}

func TestVariationsDeduplicated(t *testing.T) {
	vars := Parse("Anna Maria Garcia").Variations()
	seen := make(map[string]bool)
	for _, v := range vars {
		if seen[v] {
			t.Errorf("Variations() contains duplicate %q", v)
		}
		seen[v] = true
	}
}

func TestVariationsDeterministic(t *testing.T) {
	a := Parse("John Michael Smith").Variations()
	b := Parse("John Michael Smith").Variations()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Variations() not deterministic (-first +second):\n%s", diff)
	}
}

func TestVariationsMiddleName(t *testing.T) {
	vars := Parse("John Michael Smith").Variations()
	got := make(map[string]bool, len(vars))
	for _, v := range vars {
		got[v] = true
	}
	for _, w := range []string{"johnmichaelsmith", "john.m.smith", "jms", "j-michael-smith"} {
		if !got[w] {
			t.Errorf("Variations() missing middle-name form %q", w)
		}
	}
}

func TestVariationsEmpty(t *testing.T) {
	if vars := Parse("").Variations(); len(vars) != 0 {
		t.Errorf("Variations() on empty name = %v, want none", vars)
	}
}
