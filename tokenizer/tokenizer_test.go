package tokenizer

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "plain words",
			input: "hello world",
			expected: []Token{
				{Type: TEXT, Value: "hello", Raw: "hello", Position: 0},
				{Type: TEXT, Value: "world", Raw: "world", Position: 6},
			},
		},
		{
			name:  "double quoted phrase",
			input: `"A B"`,
			expected: []Token{
				{Type: QUOTED_PHRASE, Value: "A B", Raw: `"A B"`, Position: 0},
			},
		},
		{
			name:  "single quoted phrase",
			input: "'A B'",
			expected: []Token{
				{Type: QUOTED_PHRASE, Value: "A B", Raw: "'A B'", Position: 0},
			},
		},
		{
			name:  "escaped quote inside phrase",
			input: `"a\"b"`,
			expected: []Token{
				{Type: QUOTED_PHRASE, Value: `a"b`, Raw: `"a\"b"`, Position: 0},
			},
		},
		{
			name:  "negated word",
			input: "-spam",
			expected: []Token{
				{Type: NEGATED_ATOM, Value: "spam", Raw: "-spam", Position: 0},
			},
		},
		{
			name:  "negated phrase",
			input: `-"no thanks"`,
			expected: []Token{
				{Type: NEGATED_ATOM, Value: "no thanks", Raw: `-"no thanks"`, Position: 0},
			},
		},
		{
			name:  "dash before space is text",
			input: "- foo",
			expected: []Token{
				{Type: TEXT, Value: "-", Raw: "-", Position: 0},
				{Type: TEXT, Value: "foo", Raw: "foo", Position: 2},
			},
		},
		{
			name:  "dash before group is text",
			input: "-(a)",
			expected: []Token{
				{Type: TEXT, Value: "-", Raw: "-", Position: 0},
				{Type: GROUP_OPEN, Value: "(", Raw: "(", Position: 1},
				{Type: TEXT, Value: "a", Raw: "a", Position: 2},
				{Type: GROUP_CLOSE, Value: ")", Raw: ")", Position: 3},
			},
		},
		{
			name:  "operator atom",
			input: "from:john",
			expected: []Token{
				{Type: OPERATOR_ATOM, Value: "from:john", Raw: "from:john", Position: 0},
			},
		},
		{
			name:  "operator with quoted value",
			input: `to:"Jane Doe"`,
			expected: []Token{
				{Type: OPERATOR_ATOM, Value: `to:"Jane Doe"`, Raw: `to:"Jane Doe"`, Position: 0},
			},
		},
		{
			name:  "operator with quoted list",
			input: `to:"A","B"`,
			expected: []Token{
				{Type: OPERATOR_ATOM, Value: `to:"A","B"`, Raw: `to:"A","B"`, Position: 0},
			},
		},
		{
			name:  "operator with mixed list",
			input: `to:"String 1",String2`,
			expected: []Token{
				{Type: OPERATOR_ATOM, Value: `to:"String 1",String2`, Raw: `to:"String 1",String2`, Position: 0},
			},
		},
		{
			name:  "negated operator list",
			input: `-to:"A","B"`,
			expected: []Token{
				{Type: NEGATED_ATOM, Value: `to:"A","B"`, Raw: `-to:"A","B"`, Position: 0},
			},
		},
		{
			name:  "trailing colon downgrades to text",
			input: "to: x",
			expected: []Token{
				{Type: TEXT, Value: "to:", Raw: "to:", Position: 0},
				{Type: TEXT, Value: "x", Raw: "x", Position: 4},
			},
		},
		{
			name:  "leading colon is text",
			input: ":value",
			expected: []Token{
				{Type: TEXT, Value: ":value", Raw: ":value", Position: 0},
			},
		},
		{
			name:  "or keyword case insensitive",
			input: "a OR b or c",
			expected: []Token{
				{Type: TEXT, Value: "a", Raw: "a", Position: 0},
				{Type: OR_KEYWORD, Value: "OR", Raw: "OR", Position: 2},
				{Type: TEXT, Value: "b", Raw: "b", Position: 5},
				{Type: OR_KEYWORD, Value: "or", Raw: "or", Position: 7},
				{Type: TEXT, Value: "c", Raw: "c", Position: 10},
			},
		},
		{
			name:  "groups",
			input: "(hello world)",
			expected: []Token{
				{Type: GROUP_OPEN, Value: "(", Raw: "(", Position: 0},
				{Type: TEXT, Value: "hello", Raw: "hello", Position: 1},
				{Type: TEXT, Value: "world", Raw: "world", Position: 7},
				{Type: GROUP_CLOSE, Value: ")", Raw: ")", Position: 12},
			},
		},
		{
			name:  "group tight against word",
			input: "a(b)c",
			expected: []Token{
				{Type: TEXT, Value: "a", Raw: "a", Position: 0},
				{Type: GROUP_OPEN, Value: "(", Raw: "(", Position: 1},
				{Type: TEXT, Value: "b", Raw: "b", Position: 2},
				{Type: GROUP_CLOSE, Value: ")", Raw: ")", Position: 3},
				{Type: TEXT, Value: "c", Raw: "c", Position: 4},
			},
		},
		{
			name:  "only space is a delimiter",
			input: "a\tb",
			expected: []Token{
				{Type: TEXT, Value: "a\tb", Raw: "a\tb", Position: 0},
			},
		},
		{
			name:  "hyphen inside word is literal",
			input: "well-known",
			expected: []Token{
				{Type: TEXT, Value: "well-known", Raw: "well-known", Position: 0},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "only spaces",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if tt.expected == nil {
				assert.Equal(t, 0, len(tokens))
				return
			}

			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestUnterminatedQuoteKeepsContent(t *testing.T) {
	tokens := Tokenize(`"unclosed`)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, QUOTED_PHRASE, tokens[0].Type)
	assert.Equal(t, "unclosed", tokens[0].Value)
}

func TestPositionsAreMonotonic(t *testing.T) {
	inputs := []string{
		`from:a to:"B C" -spam (x OR y) "tail`,
		"((((((",
		`a)b)c"`,
		strings.Repeat("-", 50),
	}

	for _, input := range inputs {
		tokens := Tokenize(input)

		last := -1
		for _, token := range tokens {
			assert.True(t, token.Position > last)
			last = token.Position
		}
	}
}

func TestRawPreservesSourceSlice(t *testing.T) {
	input := `subject:"Hi there" -f:boss`
	tokens := Tokenize(input)

	assert.Equal(t, 2, len(tokens))

	for _, token := range tokens {
		assert.Equal(t, token.Raw, input[token.Position:token.Position+len(token.Raw)])
	}
}
