package scoring

import (
	"regexp"
	"testing"
)

var scoreCode = regexp.MustCompile(`^[0-9]{3}$`)

func TestStrict3(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "labelled line wins over other numbers",
			text:     "The pothole is 3 meters wide\nScore: 85\nConfidence: 99",
			expected: "085",
		},
		{
			name:     "relevance score label",
			text:     "The relevance score: 085",
			expected: "085",
		},
		{
			name:     "lone number without label",
			text:     "42",
			expected: "042",
		},
		{
			name:     "first number of first line with digits",
			text:     "no digits here\nthen 7 and 93",
			expected: "007",
		},
		{
			name:     "clamped above range",
			text:     "Score: 150",
			expected: "100",
		},
		{
			name:     "sign before digit run is dropped",
			text:     "Score: -5",
			expected: "005",
		},
		{
			name:     "zero stays zero",
			text:     "Score: 0",
			expected: "000",
		},
		{
			name:     "leading zeros",
			text:     "Score: 007",
			expected: "007",
		},
		{
			name:     "digit run too long clamps",
			text:     "Score: 99999999999999999999",
			expected: "100",
		},
		{
			name:     "case-insensitive label",
			text:     "FINAL SCORE IS 60",
			expected: "060",
		},
		{
			name:     "labelled line without digits falls through",
			text:     "score unknown\n55",
			expected: "055",
		},
		{
			name:     "no digits anywhere",
			text:     "I cannot rate this submission.",
			expected: Fallback,
		},
		{
			name:     "empty reply",
			text:     "",
			expected: Fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strict3(tt.text)
			if got != tt.expected {
				t.Errorf("Strict3(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestStrict3AlwaysThreeDigits(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"Score:",
		"scorescore",
		"±§£€ 12345678901234567890123",
		"Score: 99\nScore: 1",
		"multi\nline\nreply with 1000000 numbers",
	}

	for _, input := range inputs {
		got := Strict3(input)
		if !scoreCode.MatchString(got) {
			t.Errorf("Strict3(%q) = %q, not a 3-digit code", input, got)
		}
	}
}
