package tokenizer

import "strings"

// Tokenize converts a raw query string into an ordered token sequence.
// It never fails: malformed input (an unterminated quote, a stray
// parenthesis) degrades to a best-effort token stream; structural problems
// are surfaced separately by Validate.
//
// Only the literal space character separates tokens; other whitespace is
// carried inside whatever token surrounds it. A '-' directly followed by
// '(' does not negate the group: negated groups are unsupported syntax and
// the '-' becomes an ordinary TEXT token.
func Tokenize(input string) []Token {
	c := &cursor{input: input}

	tokens := make([]Token, 0, 16)

	for {
		token, ok := c.next()
		if !ok {
			break
		}

		tokens = append(tokens, token)
	}

	return tokens
}

// Internal scanning state
type cursor struct {
	input string
	pos   int
}

// ch returns the current character, 0 at end of input
func (c *cursor) ch() byte {
	if c.pos >= len(c.input) {
		return 0
	}

	return c.input[c.pos]
}

// peek looks ahead at the next character
func (c *cursor) peek() byte {
	if c.pos+1 >= len(c.input) {
		return 0
	}

	return c.input[c.pos+1]
}

// next scans the next token, returning false at end of input
func (c *cursor) next() (Token, bool) {
	for c.ch() == ' ' {
		c.pos++
	}

	start := c.pos

	switch ch := c.ch(); {
	case ch == 0:
		return Token{}, false
	case ch == '(':
		c.pos++
		return Token{Type: GROUP_OPEN, Value: "(", Raw: "(", Position: start}, true
	case ch == ')':
		c.pos++
		return Token{Type: GROUP_CLOSE, Value: ")", Raw: ")", Position: start}, true
	case ch == '"' || ch == '\'':
		value := c.readQuoted(ch)
		return Token{Type: QUOTED_PHRASE, Value: value, Raw: c.input[start:c.pos], Position: start}, true
	case ch == '-' && c.peek() != ' ' && c.peek() != 0:
		return c.readNegated(start)
	default:
		return c.readAtom(start)
	}
}

// readNegated scans an atom prefixed with '-'. The cursor sits on the '-'.
func (c *cursor) readNegated(start int) (Token, bool) {
	c.pos++ // skip '-'

	if ch := c.ch(); ch == '"' || ch == '\'' {
		value := c.readQuoted(ch)
		return Token{Type: NEGATED_ATOM, Value: value, Raw: c.input[start:c.pos], Position: start}, true
	}

	value := c.readAtomValue()
	if value == "" {
		// '-' directly before a delimiter negates nothing
		return Token{Type: TEXT, Value: "-", Raw: "-", Position: start}, true
	}

	return Token{Type: NEGATED_ATOM, Value: value, Raw: c.input[start:c.pos], Position: start}, true
}

// readAtom scans a bare atom and classifies it
func (c *cursor) readAtom(start int) (Token, bool) {
	value := c.readAtomValue()
	raw := c.input[start:c.pos]

	if strings.EqualFold(value, "OR") {
		return Token{Type: OR_KEYWORD, Value: value, Raw: raw, Position: start}, true
	}

	if isOperatorAtom(value) {
		return Token{Type: OPERATOR_ATOM, Value: value, Raw: raw, Position: start}, true
	}

	return Token{Type: TEXT, Value: value, Raw: raw, Position: start}, true
}

// readAtomValue reads a bare run of characters up to the next delimiter.
// When the run so far is an operator key still expecting a value ("key:" or
// "key:a",) a directly following quoted string is folded into the same atom
// with its quotes preserved, and a ',' after it keeps the list going, so
// to:"A","B" lexes as one token.
func (c *cursor) readAtomValue() string {
	var builder strings.Builder

	for {
		for !isDelimiter(c.ch()) {
			builder.WriteByte(c.ch())
			c.pos++
		}

		s := builder.String()
		if (c.ch() == '"' || c.ch() == '\'') && operatorNeedsValue(s) {
			quoteStart := c.pos
			c.readQuoted(c.ch())
			builder.WriteString(c.input[quoteStart:c.pos])

			if c.ch() == ',' {
				builder.WriteByte(',')
				c.pos++
				continue
			}
		}

		return builder.String()
	}
}

// readQuoted decodes a quoted string. The cursor sits on the opening quote;
// afterwards it sits past the closing quote. '\' escapes the following
// character. An unterminated quote ends at end of input and the partial
// content read so far is kept.
func (c *cursor) readQuoted(delimiter byte) string {
	var builder strings.Builder

	c.pos++ // skip opening quote

	for c.ch() != 0 && c.ch() != delimiter {
		if c.ch() == '\\' && c.peek() != 0 {
			c.pos++
		}

		builder.WriteByte(c.ch())
		c.pos++
	}

	if c.ch() == delimiter {
		c.pos++ // skip closing quote
	}

	return builder.String()
}

// isDelimiter reports whether ch terminates a bare run
func isDelimiter(ch byte) bool {
	return ch == 0 || ch == ' ' || ch == '(' || ch == ')' || ch == '"' || ch == '\''
}

// isOperatorAtom reports whether a bare run has the key:value shape:
// a non-empty key before the first ':' and a non-empty remainder after it.
func isOperatorAtom(s string) bool {
	idx := strings.IndexByte(s, ':')
	return idx > 0 && idx < len(s)-1
}

// operatorNeedsValue reports whether s is an operator key (or a partial
// value list) still expecting a value, i.e. "key:" or "key:...,".
func operatorNeedsValue(s string) bool {
	idx := strings.IndexByte(s, ':')
	if idx <= 0 {
		return false
	}

	return strings.HasSuffix(s, ":") || strings.HasSuffix(s, ",")
}
