package mailquery

import (
	"strings"

	"github.com/mailquery/mailquery/parser"
)

// Summarize renders a parsed term sequence as human-readable summary
// lines, grouping terms of the same role: "From: a, b", "Excludes: spam",
// "Any of: alpha OR beta". Groups are flattened into their parent.
func Summarize(terms []Term) []string {
	s := &summarizer{}
	s.collect(terms)

	lines := make([]string, 0, len(s.order))
	for _, label := range s.order {
		lines = append(lines, label+": "+strings.Join(s.values[label], ", "))
	}

	return lines
}

type summarizer struct {
	order  []string
	values map[string][]string
}

func (s *summarizer) add(label, value string) {
	if s.values == nil {
		s.values = make(map[string][]string)
	}

	if _, ok := s.values[label]; !ok {
		s.order = append(s.order, label)
	}

	s.values[label] = append(s.values[label], value)
}

func (s *summarizer) collect(terms []Term) {
	for _, term := range terms {
		switch {
		case term.Negated:
			s.add("Excludes", renderTerm(term))
		case term.Kind == parser.KindOr:
			s.add("Any of", renderBranches(term.SubTerms))
		case term.Kind == parser.KindGroup:
			s.collect(term.SubTerms)
		case term.Kind == parser.KindPlainText:
			s.add("Search", term.Value)
		case term.Kind == parser.KindPhrase:
			s.add("Search", `"`+term.Value+`"`)
		default:
			s.add(kindLabel(term.Kind), term.Value)
		}
	}
}

// renderTerm renders one term compactly, recursing into Or and Group
func renderTerm(term Term) string {
	switch term.Kind {
	case parser.KindPlainText:
		return term.Value
	case parser.KindPhrase:
		return `"` + term.Value + `"`
	case parser.KindOr:
		return renderBranches(term.SubTerms)
	case parser.KindGroup:
		parts := make([]string, 0, len(term.SubTerms))
		for _, sub := range term.SubTerms {
			parts = append(parts, renderTerm(sub))
		}

		return "(" + strings.Join(parts, " ") + ")"
	default:
		return string(term.Kind) + ":" + term.Value
	}
}

func renderBranches(terms []Term) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, renderTerm(term))
	}

	return strings.Join(parts, " OR ")
}

func kindLabel(kind TermKind) string {
	s := string(kind)
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
