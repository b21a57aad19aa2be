package tokenizer

// TokenType represents the type of a token
type TokenType int

const (
	// TEXT is a bare word with no operator or quoting syntax
	TEXT TokenType = iota
	QUOTED_PHRASE // "some phrase" or 'some phrase'
	NEGATED_ATOM  // -word, -"phrase", -key:value
	OPERATOR_ATOM // key:value, key:"value", key:a,b,c
	GROUP_OPEN    // (
	GROUP_CLOSE   // )
	OR_KEYWORD    // bare OR (case-insensitive)
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case TEXT:
		return "TEXT"
	case QUOTED_PHRASE:
		return "QUOTED_PHRASE"
	case NEGATED_ATOM:
		return "NEGATED_ATOM"
	case OPERATOR_ATOM:
		return "OPERATOR_ATOM"
	case GROUP_OPEN:
		return "GROUP_OPEN"
	case GROUP_CLOSE:
		return "GROUP_CLOSE"
	case OR_KEYWORD:
		return "OR_KEYWORD"
	default:
		return "UNKNOWN"
	}
}

// Token represents one lexical unit of a search query.
//
// Value holds the decoded payload: surrounding quotes are stripped and
// backslash escapes resolved for quoted phrases, while operator atoms keep
// the quotes around individual list values (those are stripped later during
// term construction). Raw is the exact source slice, so downstream code can
// tell whether a value was originally quoted. Position is the 0-based byte
// offset of the token's first character in the original input.
type Token struct {
	Type     TokenType
	Value    string
	Raw      string
	Position int
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
