package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestExtractOperators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "first appearance order, lowercased, deduplicated",
			input:    "FROM:a to:b from:c",
			expected: []string{"from", "to"},
		},
		{
			name:     "unknown keys are reported too",
			input:    "from:a unknown:x",
			expected: []string{"from", "unknown"},
		},
		{
			name:     "negated operators count",
			input:    "-to:a -spam",
			expected: []string{"to"},
		},
		{
			name:     "plain text has no operators",
			input:    `hello "a:b" world`,
			expected: nil,
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractOperators(tt.input))
		})
	}
}
