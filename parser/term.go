package parser

import (
	"time"

	"github.com/mailquery/mailquery/dateparse"
)

// TermKind identifies the semantic role of a term.
// Operator-typed terms use the operator's registered name as their kind, so
// user-defined operators produce their own kinds without any change here.
type TermKind string

const (
	KindPlainText TermKind = "text"
	KindPhrase    TermKind = "phrase"
	KindOr        TermKind = "or"
	KindGroup     TermKind = "group"

	KindFrom        TermKind = "from"
	KindTo          TermKind = "to"
	KindSubject     TermKind = "subject"
	KindBody        TermKind = "body"
	KindHas         TermKind = "has"
	KindIs          TermKind = "is"
	KindIn          TermKind = "in"
	KindLabel       TermKind = "label"
	KindDate        TermKind = "date"
	KindBefore      TermKind = "before"
	KindAfter       TermKind = "after"
	KindHeaderKey   TermKind = "header-k"
	KindHeaderValue TermKind = "header-v"
	KindSize        TermKind = "size"
)

// SizeComparison is the comparison direction of a size filter
type SizeComparison int

const (
	SizeEqual SizeComparison = iota
	SizeGreaterThan
	SizeLessThan
)

// String returns the string representation of SizeComparison
func (c SizeComparison) String() string {
	switch c {
	case SizeGreaterThan:
		return ">"
	case SizeLessThan:
		return "<"
	default:
		return "="
	}
}

// SizeFilter is the resolved form of a size-valued operator
type SizeFilter struct {
	Comparison SizeComparison `json:"comparison"`
	Bytes      int64          `json:"bytes"`
}

// Term is one resolved unit of a parsed query.
//
// Leaf terms carry Value (and Negated when prefixed with '-'); Or and Group
// terms carry SubTerms instead and are never themselves negated. Date,
// DateRange and Size are populated only when the operator's value kind
// resolves; the raw string stays in Value regardless, so an unparsable
// date or size degrades to a plain leaf rather than disappearing.
type Term struct {
	Kind      TermKind         `json:"kind"`
	Value     string           `json:"value,omitempty"`
	Negated   bool             `json:"negated,omitempty"`
	Date      *time.Time       `json:"date,omitempty"`
	DateRange *dateparse.Range `json:"dateRange,omitempty"`
	Size      *SizeFilter      `json:"size,omitempty"`
	SubTerms  []Term           `json:"subTerms,omitempty"`
}
