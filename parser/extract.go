package parser

import (
	"strings"

	"github.com/mailquery/mailquery/tokenizer"
)

// ExtractOperators returns the unique operator keys present in input, in
// order of first appearance, lowercased. The registry is not consulted:
// unknown keys are reported too.
func ExtractOperators(input string) []string {
	seen := make(map[string]bool)

	var keys []string

	for _, token := range tokenizer.Tokenize(input) {
		if token.Type != tokenizer.OPERATOR_ATOM && token.Type != tokenizer.NEGATED_ATOM {
			continue
		}

		key, _, found := strings.Cut(token.Value, ":")
		if !found || key == "" {
			continue
		}

		key = strings.ToLower(key)
		if !seen[key] {
			seen[key] = true

			keys = append(keys, key)
		}
	}

	return keys
}
