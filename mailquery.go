// Package mailquery parses Gmail-style search query strings into structured
// search terms usable to build downstream filters: database queries,
// in-memory predicates, or display summaries.
//
// Query syntax by example:
//
//	plain words                  "quoted phrase"       -negated
//	key:value                    key:"quoted value"
//	key:a,b (matches either)     -key:a,b (excludes both)
//	(grouped terms)              alpha OR beta
//	after:-7d                    before:2024-12-31
//	date:2023-01-01-2023-12-31   size:>1mb
package mailquery

import (
	"time"

	"github.com/mailquery/mailquery/dateparse"
	"github.com/mailquery/mailquery/parser"
	"github.com/mailquery/mailquery/tokenizer"
)

// Re-export core types for user convenience
type (
	// Lexer types
	Token            = tokenizer.Token
	TokenType        = tokenizer.TokenType
	ValidationResult = tokenizer.ValidationResult

	// Parser types
	Term               = parser.Term
	TermKind           = parser.TermKind
	SizeFilter         = parser.SizeFilter
	SizeComparison     = parser.SizeComparison
	Options            = parser.Options
	OperatorDefinition = parser.OperatorDefinition
	ValueKind          = parser.ValueKind

	// Date resolution types
	DateRange      = dateparse.Range
	DateResolution = dateparse.Resolution
	DateResolver   = dateparse.Resolver
)

// Parse parses input into an ordered term sequence. A nil opts uses the
// built-in operator table with no policy. The only possible error is a
// policy violation (parser.ErrOperatorNotAllowed); malformed syntax
// degrades to best-effort terms instead.
func Parse(input string, opts *Options) ([]Term, error) {
	return parser.Parse(input, opts)
}

// Tokenize exposes the raw token stream for advanced or custom parsing
func Tokenize(input string) []Token {
	return tokenizer.Tokenize(input)
}

// Validate checks quote and parenthesis balance without parsing
func Validate(input string) ValidationResult {
	return tokenizer.Validate(input)
}

// ExtractOperators returns the unique operator keys present in input,
// lowercased, in order of first appearance
func ExtractOperators(input string) []string {
	return parser.ExtractOperators(input)
}

// ResolveDate resolves a date-valued string against the wall clock
func ResolveDate(value string) *DateResolution {
	return dateparse.Resolve(value)
}

// ResolveRelativeDate subtracts amount units (h, d, w, m, y) from the
// wall-clock now using calendar-aware arithmetic
func ResolveRelativeDate(amount int, unit rune) (time.Time, error) {
	return dateparse.ResolveRelative(amount, unit)
}

// HasTerms reports whether input parses to at least one term under the
// default options. A query rejected by policy never reaches here, so a
// parse error counts as empty.
func HasTerms(input string) bool {
	terms, err := parser.Parse(input, nil)
	return err == nil && len(terms) > 0
}
