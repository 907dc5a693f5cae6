package match

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"loose", "loose", 0},

		// Empty vs non-empty
		{"", "pre", 3},
		{"post", "", 4},

		// Single edits
		{"lose", "loose", 1},     // insertion
		{"strictt", "strict", 1}, // deletion
		{"bath", "both", 1},      // substitution

		// Multiple edits
		{"kitten", "sitting", 3},
		{"pre", "post", 3},

		// Case-sensitive
		{"OFF", "off", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// Verify symmetry
			resultReverse := Levenshtein(tt.b, tt.a)
			if result != resultReverse {
				t.Errorf("Levenshtein symmetry failed: (%q, %q) = %d, (%q, %q) = %d",
					tt.a, tt.b, result, tt.b, tt.a, resultReverse)
			}
		})
	}
}
