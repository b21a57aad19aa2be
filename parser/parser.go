// Package parser turns a raw search query string into a sequence of typed
// terms: plain words, quoted phrases, negated atoms, key:value operator
// filters, OR-groups, and parenthesized groups.
package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mailquery/mailquery/dateparse"
	"github.com/mailquery/mailquery/tokenizer"
)

// ErrOperatorNotAllowed is returned when a query uses an operator rejected
// by the caller's allow/deny policy. It is the only error Parse can return;
// everything else degrades to best-effort terms.
var ErrOperatorNotAllowed = errors.New("operator not allowed")

// Parenthesized groups nested deeper than this are skipped like unmatched
// parentheses, bounding recursion on adversarial input.
const maxGroupDepth = 32

// Options controls parsing behavior. A nil Options is equivalent to the
// zero value: built-in operators only, no policy, wall-clock dates.
type Options struct {
	// Operators registers additional operator definitions. They are
	// consulted before the built-ins, and one whose Name equals a
	// built-in's replaces that built-in.
	Operators []OperatorDefinition

	// Allowed restricts queries to the named operators. Empty = all.
	Allowed []string

	// Disallowed rejects the named operators.
	Disallowed []string

	// Clock supplies "now" for date resolution. Nil = time.Now.
	Clock func() time.Time
}

// Parse tokenizes input and resolves the tokens into an ordered term
// sequence. It fails only on a policy violation; malformed syntax degrades
// to plain-text terms instead.
func Parse(input string, opts *Options) ([]Term, error) {
	if opts == nil {
		opts = &Options{}
	}

	p := &parser{
		registry: newRegistry(opts.Operators),
		opts:     opts,
		dates:    dateparse.Resolver{Now: opts.Clock},
	}

	return p.parseWindow(tokenizer.Tokenize(input), 0)
}

type parser struct {
	registry *registry
	opts     *Options
	dates    dateparse.Resolver
}

// parseWindow resolves one token window (the whole input, or the inside of
// a parenthesis pair) into terms, then collapses OR markers.
func (p *parser) parseWindow(tokens []tokenizer.Token, depth int) ([]Term, error) {
	var terms []Term

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		switch token.Type {
		case tokenizer.GROUP_OPEN:
			end := matchingClose(tokens, i)
			if end < 0 || depth >= maxGroupDepth {
				// unmatched (or too deep) open parenthesis, skip it
				continue
			}

			inner, err := p.parseWindow(tokens[i+1:end], depth+1)
			if err != nil {
				return nil, err
			}

			if len(inner) > 0 {
				terms = append(terms, Term{Kind: KindGroup, SubTerms: inner})
			}

			i = end
		case tokenizer.GROUP_CLOSE:
			// stray close parenthesis, skip it
		case tokenizer.OR_KEYWORD:
			terms = append(terms, orMarker)
		default:
			resolved, err := p.resolveToken(token)
			if err != nil {
				return nil, err
			}

			terms = append(terms, resolved...)
		}
	}

	return collapseOr(terms), nil
}

// matchingClose finds the index of the GROUP_CLOSE matching the GROUP_OPEN
// at open, scanning forward with a balance counter. Returns -1 when the
// window ends before the balance returns to zero.
func matchingClose(tokens []tokenizer.Token, open int) int {
	balance := 0

	for i := open; i < len(tokens); i++ {
		switch tokens[i].Type {
		case tokenizer.GROUP_OPEN:
			balance++
		case tokenizer.GROUP_CLOSE:
			balance--
			if balance == 0 {
				return i
			}
		}
	}

	return -1
}

// orMarker is the transient term an OR keyword resolves to. It only lives
// inside a window; collapseOr consumes every marker before returning.
var orMarker = Term{Kind: KindOr}

func isOrMarker(t Term) bool {
	return t.Kind == KindOr && len(t.SubTerms) == 0
}

// collapseOr implements the OR semantics of a window: with no marker the
// terms are returned unchanged (implicit AND). With markers, the terms are
// partitioned at each marker into maximal runs; a run longer than one is
// wrapped in a group, and the run representatives become the subterms of a
// single Or term that absorbs the whole window.
func collapseOr(terms []Term) []Term {
	found := false

	for _, t := range terms {
		if isOrMarker(t) {
			found = true
			break
		}
	}

	if !found {
		return terms
	}

	var branches []Term

	var run []Term

	flush := func() {
		switch len(run) {
		case 0:
		case 1:
			branches = append(branches, run[0])
		default:
			branches = append(branches, Term{Kind: KindGroup, SubTerms: run})
		}

		run = nil
	}

	for _, t := range terms {
		if isOrMarker(t) {
			flush()
			continue
		}

		run = append(run, t)
	}

	flush()

	if len(branches) == 0 {
		return nil
	}

	return []Term{{Kind: KindOr, SubTerms: branches}}
}

// resolveToken resolves one non-structural token into zero or more terms
func (p *parser) resolveToken(token tokenizer.Token) ([]Term, error) {
	switch token.Type {
	case tokenizer.TEXT:
		return []Term{{Kind: KindPlainText, Value: token.Value}}, nil
	case tokenizer.QUOTED_PHRASE:
		return []Term{{Kind: KindPhrase, Value: token.Value}}, nil
	case tokenizer.NEGATED_ATOM:
		return p.resolveNegated(token)
	case tokenizer.OPERATOR_ATOM:
		return p.resolveOperator(token)
	default:
		return nil, nil
	}
}

// resolveOperator resolves a key:value atom. An unknown key degrades to a
// plain-text term carrying the atom verbatim. A comma-separated value list
// expands into an Or term with one leaf per value.
func (p *parser) resolveOperator(token tokenizer.Token) ([]Term, error) {
	key, value, _ := strings.Cut(token.Value, ":")

	def, ok := p.registry.lookup(key)
	if !ok {
		return []Term{{Kind: KindPlainText, Value: token.Value}}, nil
	}

	if err := p.checkPolicy(def.Name); err != nil {
		return nil, err
	}

	pieces := splitUnquoted(value)
	if len(pieces) == 1 {
		return []Term{p.newLeaf(def, pieces[0], false)}, nil
	}

	or := Term{Kind: KindOr, SubTerms: make([]Term, 0, len(pieces))}
	for _, piece := range pieces {
		or.SubTerms = append(or.SubTerms, p.newLeaf(def, piece, false))
	}

	return []Term{or}, nil
}

// resolveNegated resolves a '-' prefixed atom. A negation-permitting
// operator expands a comma list into independent negated leaves (exclusion
// distributes as AND-of-NOT, unlike the Or expansion of a plain operator
// list). Anything else falls back to negated text, or a negated phrase if
// the source contained a quote.
func (p *parser) resolveNegated(token tokenizer.Token) ([]Term, error) {
	if key, value, found := strings.Cut(token.Value, ":"); found && value != "" {
		if def, ok := p.registry.lookup(key); ok && def.AllowNegation {
			if err := p.checkPolicy(def.Name); err != nil {
				return nil, err
			}

			pieces := splitUnquoted(value)

			terms := make([]Term, 0, len(pieces))
			for _, piece := range pieces {
				terms = append(terms, p.newLeaf(def, piece, true))
			}

			return terms, nil
		}
	}

	kind := KindPlainText
	if strings.ContainsAny(token.Raw, `"'`) {
		kind = KindPhrase
	}

	return []Term{{Kind: kind, Value: token.Value, Negated: true}}, nil
}

// newLeaf builds one operator-typed leaf term, resolving the typed value.
// The raw string stays in Value even when resolution fails.
func (p *parser) newLeaf(def OperatorDefinition, value string, negated bool) Term {
	term := Term{Kind: def.Kind, Value: value, Negated: negated}

	switch def.Value {
	case DateValue:
		if res := p.dates.Resolve(value); res != nil {
			term.Date = res.Date
			term.DateRange = res.Range
		}
	case SizeValue:
		if size, ok := parseSize(value); ok {
			term.Size = &size
		}
	}

	return term
}

// checkPolicy validates an operator name against the allow/deny lists
func (p *parser) checkPolicy(name string) error {
	if len(p.opts.Allowed) > 0 && !containsFold(p.opts.Allowed, name) {
		return fmt.Errorf("%w: %s", ErrOperatorNotAllowed, name)
	}

	if containsFold(p.opts.Disallowed, name) {
		return fmt.Errorf("%w: %s", ErrOperatorNotAllowed, name)
	}

	return nil
}

func containsFold(list []string, name string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, name) {
			return true
		}
	}

	return false
}

// splitUnquoted splits an operator value on commas outside quotes, then
// strips a single layer of matching quotes from each piece
func splitUnquoted(value string) []string {
	var pieces []string

	var quote byte

	start := 0

	for i := 0; i < len(value); i++ {
		ch := value[i]

		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ',':
			pieces = append(pieces, stripQuotes(value[start:i]))
			start = i + 1
		}
	}

	pieces = append(pieces, stripQuotes(value[start:]))

	return pieces
}

// stripQuotes removes one layer of matching surrounding quotes
func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}

var sizePattern = regexp.MustCompile(`(?i)^([<>=])?(\d+)\s*(b|kb|mb|gb)?$`)

// parseSize parses a size literal: optional comparison sign, integer,
// optional binary unit. No sign means equal; no unit means bytes.
func parseSize(value string) (SizeFilter, bool) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return SizeFilter{}, false
	}

	amount, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return SizeFilter{}, false
	}

	var multiplier int64 = 1

	switch strings.ToLower(m[3]) {
	case "kb":
		multiplier = 1 << 10
	case "mb":
		multiplier = 1 << 20
	case "gb":
		multiplier = 1 << 30
	}

	// Bytes must stay non-negative; an overflowing literal is as malformed
	// as a non-numeric one.
	if amount > math.MaxInt64/multiplier {
		return SizeFilter{}, false
	}

	comparison := SizeEqual

	switch m[1] {
	case ">":
		comparison = SizeGreaterThan
	case "<":
		comparison = SizeLessThan
	}

	return SizeFilter{Comparison: comparison, Bytes: amount * multiplier}, true
}
